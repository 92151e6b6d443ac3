// Package files resolves and discovers the spreadsheet inputs of an
// analysis run.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"flowplate/internal/errors"
)

// supportedExtensions lists the input formats the grid loader understands.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
	".tsv":  true,
}

// FileInfo describes a discovered input file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates input files under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindInputFiles lists every supported spreadsheet in the directory, sorted
// by modification time, oldest first.
func (d *Discovery) FindInputFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, errors.NewStorageError(
			fmt.Sprintf("failed to read directory %s", fullPath), err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].ModTime.Before(found[j].ModTime)
	})

	return found, nil
}

// LatestMatching returns the most recently modified input file whose name
// contains the keyword, case-insensitively. Used to pick up the newest
// "sample", "group" and "data" files from a watched directory.
func (d *Discovery) LatestMatching(dir, keyword string) (FileInfo, error) {
	found, err := d.FindInputFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}

	lowered := strings.ToLower(keyword)
	for i := len(found) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(found[i].Name), lowered) {
			return found[i], nil
		}
	}
	return FileInfo{}, errors.NewNotFoundError(
		fmt.Sprintf("input file matching %q in %s", keyword, dir))
}

// ResolveInput validates an explicitly named input file: it must exist, be a
// regular file and carry a supported extension. The returned path is
// absolute.
func ResolveInput(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.NewStorageError("failed to resolve path", err).
			WithContext("path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFoundError(fmt.Sprintf("input file %s", path))
		}
		return "", errors.NewStorageError("failed to stat input file", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		return "", errors.NewValidationError(
			fmt.Sprintf("%s is a directory, not an input file", path))
	}
	if !supportedExtensions[strings.ToLower(filepath.Ext(abs))] {
		return "", errors.NewValidationError(
			fmt.Sprintf("%s has an unsupported extension (want .xlsx, .xlsm, .csv or .tsv)", path))
	}

	return abs, nil
}
