package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"flowplate/internal/errors"
)

// envPrefix namespaces the environment variables that override config file
// values, e.g. FLOWPLATE_LOGGING_LEVEL.
const envPrefix = "FLOWPLATE"

// Config is the complete application configuration: defaults, overlaid by an
// optional YAML file, overlaid by environment variables, then validated.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// AnalysisConfig holds the default analysis options; command-line flags
// override these per run.
type AnalysisConfig struct {
	Mode           string `yaml:"mode" envconfig:"MODE" validate:"oneof=individual mean_sd mean_sem"`
	Format         string `yaml:"format" envconfig:"FORMAT" validate:"oneof=standard single_row"`
	IncludeHeaders bool   `yaml:"include_headers" envconfig:"INCLUDE_HEADERS"`
	Delimiter      string `yaml:"delimiter" envconfig:"DELIMITER" validate:"oneof=comma tab"`
}

// PathsConfig locates the working directories.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: filepath.Join("logs", "flowplate.log"),
		},
		Analysis: AnalysisConfig{
			Mode:           "individual",
			Format:         "standard",
			IncludeHeaders: true,
			Delimiter:      "comma",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}

// Load builds the effective configuration. A missing config file is not an
// error; a present but unreadable or invalid one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, errors.NewConfigError("failed to read environment overrides", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewConfigError("failed to read config file", err).
			WithContext("path", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewConfigError("failed to parse config file", err).
			WithContext("path", path)
	}
	return nil
}

// ReportPath joins a file name onto the reports directory.
func (p PathsConfig) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath joins a file name onto the logs directory.
func (p PathsConfig) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates the working directories if they do not exist.
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewConfigError("failed to create directory", err).
				WithContext("dir", dir)
		}
	}
	return nil
}
