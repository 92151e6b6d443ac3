package dataprocessing

import (
	"fmt"
	"strings"

	"flowplate/internal/errors"
	"flowplate/pkg/contracts/domain"
)

// orderColumnIndex is the fixed position of the optional display-order
// column in a plate-map grid: the first column past a full 12-column plate
// body (the 14th spreadsheet column).
const orderColumnIndex = 13

// BuildPlateMap interprets a raw spreadsheet grid as a plate map. Row 0
// holds the column numbers, column 0 the row letters, and the top-left cell
// is ignored. Every non-blank body cell becomes one Well → label entry;
// blank cells stay absent. An optional order column to the right of the
// plate body lists labels in preferred display order, top to bottom.
//
// The grid is rejected with a MALFORMED_GRID error when the headers do not
// validate, a row or column appears twice, or labels appear outside the
// declared plate body.
func BuildPlateMap(grid [][]string) (*domain.PlateMap, error) {
	if len(grid) < 2 {
		return nil, errors.NewGridError("plate map needs a header row and at least one plate row")
	}

	header := grid[0]
	if len(header) < 2 {
		return nil, errors.NewGridError("plate map header row has no column numbers")
	}

	// Parse the column-number header. Header cells past the 12-column plate
	// body belong to the order column and are ignored here.
	bodyWidth := len(header) - 1
	if bodyWidth > domain.PlateColCount {
		bodyWidth = domain.PlateColCount
	}
	columns := make([]int, bodyWidth)
	seenCols := make(map[int]bool, bodyWidth)
	for i := 0; i < bodyWidth; i++ {
		column, err := parseColumnNumber(header[i+1])
		if err != nil {
			return nil, errors.NewGridError(
				fmt.Sprintf("column header %d is not a valid column number: %q", i+1, header[i+1]))
		}
		if seenCols[column] {
			return nil, errors.NewGridError(fmt.Sprintf("duplicate column number %d in header", column))
		}
		seenCols[column] = true
		columns[i] = column
	}

	labels := make(map[domain.Well]string)
	var order []string
	seenRows := make(map[rune]bool)

	for r := 1; r < len(grid); r++ {
		row := grid[r]
		if isBlankRow(row) {
			continue
		}

		letter, err := parseRowLetter(row[0])
		if err != nil {
			return nil, errors.NewGridError(
				fmt.Sprintf("row header in grid row %d is not a valid row letter: %q", r, row[0]))
		}
		if seenRows[letter] {
			return nil, errors.NewGridError(fmt.Sprintf("duplicate row letter %c", letter))
		}
		seenRows[letter] = true

		for i := 1; i < len(row); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			switch {
			case i <= bodyWidth:
				labels[domain.Well{Row: letter, Column: columns[i-1]}] = cell
			case i == orderColumnIndex:
				order = append(order, cell)
			default:
				return nil, errors.NewGridError(
					fmt.Sprintf("grid is not rectangular: unexpected cell %q at row %d column %d", cell, r, i))
			}
		}
	}

	return domain.NewPlateMap(labels, order), nil
}

// isBlankRow reports whether every cell of the row is empty or whitespace.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
