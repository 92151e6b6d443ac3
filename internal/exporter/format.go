package exporter

import (
	"fmt"
)

// formatValue formats a measurement value for table output with exactly 2
// decimal places, so values like 13.4 render as 13.40 in every cell.
func formatValue(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
