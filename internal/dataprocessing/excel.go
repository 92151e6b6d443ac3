package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"flowplate/internal/errors"
)

// LoadGrid decodes a spreadsheet file into a raw grid of cell strings. This
// is the black-box boundary between file formats and the pipeline: the
// builders downstream only ever see rows and columns of text. Excel
// workbooks read the first sheet unless a sheet name is given; CSV and TSV
// files ignore the sheet name.
func LoadGrid(path, sheet string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return loadWorkbookGrid(path, sheet)
	case ".csv":
		return loadDelimitedGrid(path, ',')
	case ".tsv":
		return loadDelimitedGrid(path, '\t')
	default:
		return nil, errors.NewValidationError(
			fmt.Sprintf("unsupported input format %q (want .xlsx, .xlsm, .csv or .tsv)", ext)).
			WithContext("path", path)
	}
}

func loadWorkbookGrid(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewStorageError("workbook has no sheets", nil).
				WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewStorageError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}
	return rows, nil
}

func loadDelimitedGrid(path string, comma rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	// Plate-map grids are ragged by nature; the builders enforce shape.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewStorageError("failed to decode delimited file", err).
			WithContext("path", path)
	}
	return rows, nil
}
