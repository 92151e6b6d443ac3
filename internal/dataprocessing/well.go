package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"flowplate/internal/errors"
	"flowplate/pkg/contracts/domain"
)

var (
	// wellTokenPattern matches a candidate well token: one letter followed by
	// one or two digits. Range checks happen afterwards so that "Z99" is
	// reported as out of range rather than as an unrecognized format.
	wellTokenPattern = regexp.MustCompile(`^([A-Za-z])([0-9]{1,2})$`)

	// extensionPattern strips a trailing file extension such as ".fcs" from
	// the last segment of an instrument sample name.
	extensionPattern = regexp.MustCompile(`\.[A-Za-z0-9]+$`)
)

// ParseWell extracts and validates a well position from heterogeneous text.
// Accepted shapes are bare coordinates ("A1", "a01") and instrument sample
// names whose last underscore-delimited segment carries the coordinate
// ("Specimen_001_A01.fcs"). The returned well always renders canonically via
// its String method, so differently spelled inputs compare equal.
func ParseWell(text string) (domain.Well, error) {
	token := strings.TrimSpace(text)
	if idx := strings.LastIndex(token, "_"); idx >= 0 {
		token = token[idx+1:]
	}
	token = extensionPattern.ReplaceAllString(token, "")

	match := wellTokenPattern.FindStringSubmatch(token)
	if match == nil {
		return domain.Well{}, errors.NewWellFormatError(text)
	}

	row := unicode.ToUpper(rune(match[1][0]))
	column, err := strconv.Atoi(match[2])
	if err != nil {
		return domain.Well{}, errors.NewWellFormatError(text)
	}

	well := domain.Well{Row: row, Column: column}
	if !well.Valid() {
		return domain.Well{}, errors.NewWellRangeError(token)
	}
	return well, nil
}

// parseRowLetter validates a plate-map row header cell ("A".."H",
// case-insensitive).
func parseRowLetter(cell string) (rune, error) {
	trimmed := strings.TrimSpace(cell)
	if len(trimmed) != 1 {
		return 0, errors.NewWellFormatError(cell)
	}
	row := unicode.ToUpper(rune(trimmed[0]))
	if row < domain.FirstPlateRow || row > domain.LastPlateRow {
		return 0, errors.NewWellRangeError(trimmed)
	}
	return row, nil
}

// parseColumnNumber validates a plate-map column header cell ("1".."12",
// numeric text or spreadsheet-rendered numbers like "1.0" are not accepted).
func parseColumnNumber(cell string) (int, error) {
	trimmed := strings.TrimSpace(cell)
	column, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errors.NewWellFormatError(cell)
	}
	if column < domain.FirstPlateCol || column > domain.LastPlateCol {
		return 0, errors.NewWellRangeError(trimmed)
	}
	return column, nil
}
