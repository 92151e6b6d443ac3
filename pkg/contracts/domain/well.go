package domain

import (
	"fmt"
)

// Plate geometry for a standard 96-well microplate.
const (
	FirstPlateRow   = 'A'
	LastPlateRow    = 'H'
	FirstPlateCol   = 1
	LastPlateCol    = 12
	PlateRowCount   = int(LastPlateRow-FirstPlateRow) + 1
	PlateColCount   = LastPlateCol - FirstPlateCol + 1
	PlateWellCount  = PlateRowCount * PlateColCount
)

// Well identifies a single microplate position by row letter and column number.
// The zero value is not a valid well; wells are produced by parsing or by the
// plate-map builder, both of which enforce the geometry bounds.
type Well struct {
	Row    rune `json:"row"`
	Column int  `json:"column"`
}

// Valid reports whether the well lies inside the A-H x 1-12 plate geometry.
func (w Well) Valid() bool {
	return w.Row >= FirstPlateRow && w.Row <= LastPlateRow &&
		w.Column >= FirstPlateCol && w.Column <= LastPlateCol
}

// String renders the canonical form: row letter plus zero-padded two-digit
// column, e.g. "A01". Coordinates that originate from different spellings
// ("A1", "a01", "..._A01.fcs") compare equal through this form.
func (w Well) String() string {
	return fmt.Sprintf("%c%02d", w.Row, w.Column)
}
