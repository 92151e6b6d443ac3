package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"flowplate/internal/config"
	"flowplate/internal/dataprocessing"
	"flowplate/internal/exporter"
	"flowplate/internal/files"
	"flowplate/internal/infrastructure"
	"flowplate/pkg/contracts/domain"
)

func main() {
	configPath := flag.String("config", "flowplate.yaml", "path to the YAML config file (missing file uses defaults)")
	samplePath := flag.String("samples", "", "sample plate map file (.xlsx, .xlsm, .csv or .tsv)")
	groupPath := flag.String("groups", "", "group plate map file")
	dataPath := flag.String("data", "", "instrument measurement export file")
	inDir := flag.String("indir", "", "directory to discover the newest sample/group/data files in, used for inputs not given explicitly")
	sheet := flag.String("sheet", "", "workbook sheet name (defaults to the first sheet)")
	measurement := flag.String("measurement", "", "measurement column to analyze (defaults to the first column)")
	mode := flag.String("mode", "", "aggregation mode: individual, mean_sd or mean_sem (defaults to config)")
	format := flag.String("format", "", "export layout: standard or single_row (defaults to config)")
	outPath := flag.String("out", "", "output file, or - for tab-separated stdout (defaults to the reports directory)")
	noHeader := flag.Bool("no-header", false, "omit the header row")
	filterSamples := flag.String("filter-samples", "", "comma-separated sample names to include (default all)")
	filterGroups := flag.String("filter-groups", "", "comma-separated group names to include (default all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	req := dataprocessing.AnalysisRequest{
		Sheet:          *sheet,
		Measurement:    *measurement,
		IncludeHeaders: cfg.Analysis.IncludeHeaders && !*noHeader,
		SampleFilter:   splitList(*filterSamples),
		GroupFilter:    splitList(*filterGroups),
	}

	modeName := cfg.Analysis.Mode
	if *mode != "" {
		modeName = *mode
	}
	req.Mode, err = domain.ParseAggregationMode(modeName)
	if err != nil {
		logger.ErrorContext(ctx, "invalid aggregation mode", "error", err)
		os.Exit(1)
	}

	formatName := cfg.Analysis.Format
	if *format != "" {
		formatName = *format
	}
	req.Format, err = domain.ParseExportFormat(formatName)
	if err != nil {
		logger.ErrorContext(ctx, "invalid export format", "error", err)
		os.Exit(1)
	}

	req.SampleMapPath, err = resolveInput(*samplePath, *inDir, "samples", "sample")
	if err != nil {
		logger.ErrorContext(ctx, "cannot resolve sample map", "error", err)
		os.Exit(1)
	}
	req.GroupMapPath, err = resolveInput(*groupPath, *inDir, "groups", "group")
	if err != nil {
		logger.ErrorContext(ctx, "cannot resolve group map", "error", err)
		os.Exit(1)
	}
	req.DataPath, err = resolveInput(*dataPath, *inDir, "data", "data")
	if err != nil {
		logger.ErrorContext(ctx, "cannot resolve measurement data", "error", err)
		os.Exit(1)
	}

	processor := dataprocessing.NewProcessor(logger)
	result, err := processor.Run(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "analysis failed", "error", err)
		os.Exit(1)
	}

	for _, missing := range result.Unmapped {
		logger.WarnContext(ctx, "measurement well not found in plate maps",
			slog.String("well", missing.Well.String()),
			slog.String("source_name", missing.SourceName),
			slog.Bool("missing_from_sample_map", missing.MissingSample),
			slog.Bool("missing_from_group_map", missing.MissingGroup))
	}

	if err := writeResult(cfg, *outPath, req, result.Table); err != nil {
		logger.ErrorContext(ctx, "failed to write export", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "export written",
		slog.Int("records", result.Records),
		slog.Int("unmapped_wells", len(result.Unmapped)))
}

// resolveInput picks an explicit path when given, otherwise discovers the
// newest matching file in the input directory.
func resolveInput(path, inDir, flagName, keyword string) (string, error) {
	if path != "" {
		return files.ResolveInput(path)
	}
	if inDir == "" {
		return "", fmt.Errorf("no -%s flag and no -indir to discover a %s file in", flagName, keyword)
	}
	found, err := files.NewDiscovery(inDir).LatestMatching(".", keyword)
	if err != nil {
		return "", err
	}
	return found.Path, nil
}

// writeResult sends the table to stdout or to a delimited file under the
// reports directory.
func writeResult(cfg *config.Config, outPath string, req dataprocessing.AnalysisRequest, table *domain.ExportTable) error {
	if outPath == "-" {
		return exporter.NewTSVWriter().Encode(os.Stdout, table)
	}

	tab := cfg.Analysis.Delimiter == "tab"
	if outPath == "" {
		ext := ".csv"
		if tab {
			ext = ".tsv"
		}
		if err := cfg.Paths.EnsureDirectories(); err != nil {
			return err
		}
		outPath = cfg.Paths.ReportPath("analysis_" + string(req.Mode) + "_" + string(req.Format) + ext)
	}

	// An explicit file extension wins over the configured delimiter.
	writer := exporter.NewCSVWriter()
	switch {
	case strings.HasSuffix(strings.ToLower(outPath), ".tsv"):
		writer = exporter.NewTSVWriter()
	case strings.HasSuffix(strings.ToLower(outPath), ".csv"):
	default:
		if tab {
			writer = exporter.NewTSVWriter()
		}
	}
	return writer.WriteTable(outPath, table)
}

// splitList parses a comma-separated flag value into a filter list; empty
// input means no filter.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
