package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"flowplate/internal/errors"
	"flowplate/pkg/contracts/domain"
)

// BuildMeasurementTable interprets a raw spreadsheet grid as an instrument
// measurement export. Row 0 is the header: the first cell names the
// sample-name column and every remaining cell names one measurement column.
// Each data row carries a sample name whose tail encodes the well position,
// followed by one numeric value per measurement column.
//
// Instrument exports append "Mean" and "SD" summary rows; those are skipped.
// A trailing percent sign and thousands separators are stripped before
// numeric coercion. Any other non-numeric cell is a hard
// NON_NUMERIC_MEASUREMENT failure identifying the grid row and column —
// never a silent zero. Row numbers in errors are grid indices, with the
// header at row 0.
func BuildMeasurementTable(grid [][]string) (*domain.MeasurementTable, error) {
	if len(grid) == 0 {
		return nil, errors.NewValidationError("measurement sheet is empty")
	}

	columns, err := measurementColumns(grid[0])
	if err != nil {
		return nil, err
	}

	table := &domain.MeasurementTable{Columns: columns}

	for r := 1; r < len(grid); r++ {
		row := grid[r]
		if isBlankRow(row) {
			continue
		}

		sourceName := strings.TrimSpace(row[0])
		if isSummaryRow(sourceName) {
			continue
		}

		well, err := ParseWell(sourceName)
		if err != nil {
			if errors.IsType(err, errors.ErrTypeInvalidWellFormat) {
				return nil, errors.NewMissingWellError(sourceName, r, err)
			}
			return nil, err
		}

		values := make([]float64, len(columns))
		for i, column := range columns {
			cell := ""
			if i+1 < len(row) {
				cell = row[i+1]
			}
			value, err := coerceNumeric(cell)
			if err != nil {
				return nil, errors.NewNonNumericError(r, column, cell)
			}
			values[i] = value
		}

		// Cells past the declared schema mean the row does not match the
		// header.
		for i := len(columns) + 1; i < len(row); i++ {
			if strings.TrimSpace(row[i]) != "" {
				return nil, errors.NewColumnsError(
					fmt.Sprintf("row %d has %d cells but the header defines %d measurement columns",
						r, len(row)-1, len(columns)), r)
			}
		}

		table.Rows = append(table.Rows, domain.MeasurementRow{
			SourceName: sourceName,
			Well:       well,
			Values:     values,
		})
	}

	return table, nil
}

// measurementColumns extracts the measurement column names from the header
// row, dropping trailing blanks and rejecting gaps in the schema.
func measurementColumns(header []string) ([]string, error) {
	if len(header) < 2 {
		return nil, errors.NewColumnsError("header row defines no measurement columns", 0)
	}

	columns := make([]string, 0, len(header)-1)
	for _, cell := range header[1:] {
		columns = append(columns, strings.TrimSpace(cell))
	}
	for len(columns) > 0 && columns[len(columns)-1] == "" {
		columns = columns[:len(columns)-1]
	}
	if len(columns) == 0 {
		return nil, errors.NewColumnsError("header row defines no measurement columns", 0)
	}
	for i, column := range columns {
		if column == "" {
			return nil, errors.NewColumnsError(
				fmt.Sprintf("measurement column %d has an empty name", i+1), 0)
		}
	}
	return columns, nil
}

// isSummaryRow reports whether a sample name is one of the summary rows the
// instrument appends below the per-well data.
func isSummaryRow(sourceName string) bool {
	return sourceName == "Mean" || sourceName == "SD"
}

// coerceNumeric converts a measurement cell to a float. Percent suffixes and
// thousands separators are presentation artifacts of the export and are
// stripped; anything else non-numeric is an error for the caller to classify.
func coerceNumeric(cell string) (float64, error) {
	trimmed := strings.TrimSpace(cell)
	trimmed = strings.TrimSuffix(trimmed, "%")
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	if trimmed == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(trimmed, 64)
}
