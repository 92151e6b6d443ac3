package exporter

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"flowplate/internal/errors"
	"flowplate/pkg/contracts/domain"
)

// CSVWriter writes export tables as delimited text files.
type CSVWriter struct {
	// Comma is the field separator.
	Comma rune
	// BOM prefixes the file with a UTF-8 BOM so Excel recognizes the
	// encoding.
	BOM bool
}

// NewCSVWriter creates a writer for comma-separated output with a BOM.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{Comma: ',', BOM: true}
}

// NewTSVWriter creates a writer for tab-separated output without a BOM,
// suitable for pasting into a spreadsheet.
func NewTSVWriter() *CSVWriter {
	return &CSVWriter{Comma: '\t'}
}

// WriteTable writes the table to a file, creating parent directories as
// needed.
func (w *CSVWriter) WriteTable(path string, table *domain.ExportTable) error {
	slog.Info("writing export table",
		slog.String("path", path),
		slog.Int("row_count", len(table.Rows)),
		slog.Bool("headers", table.Headers != nil))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create output file", err).
			WithContext("path", path)
	}
	defer file.Close()

	if w.BOM {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err).
				WithContext("path", path)
		}
	}

	return w.Encode(file, table)
}

// Encode writes the table to an arbitrary writer without a BOM prefix.
func (w *CSVWriter) Encode(out io.Writer, table *domain.ExportTable) error {
	writer := csv.NewWriter(out)
	if w.Comma != 0 {
		writer.Comma = w.Comma
	}
	defer writer.Flush()

	if table.Headers != nil {
		if err := writer.Write(table.Headers); err != nil {
			return errors.NewStorageError("failed to write header row", err)
		}
	}
	for i, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write data row", err).
				WithContext("row", i)
		}
	}

	writer.Flush()
	return writer.Error()
}
