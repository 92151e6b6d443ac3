package domain

import (
	"fmt"
)

// AggregationMode defines how replicate measurements sharing a
// (sample, group) assignment are reduced.
type AggregationMode string

const (
	// ModeIndividual keeps every replicate as its own value.
	ModeIndividual AggregationMode = "individual"
	// ModeMeanSD reduces replicates to mean and sample standard deviation.
	ModeMeanSD AggregationMode = "mean_sd"
	// ModeMeanSEM reduces replicates to mean and standard error of the mean.
	ModeMeanSEM AggregationMode = "mean_sem"
)

// Aggregated reports whether the mode reduces replicates to mean/dispersion
// pairs rather than keeping them individually.
func (m AggregationMode) Aggregated() bool {
	return m == ModeMeanSD || m == ModeMeanSEM
}

// DispersionLabel returns the column suffix for the mode's dispersion
// statistic ("SD" or "SEM"), or an empty string for individual mode.
func (m AggregationMode) DispersionLabel() string {
	switch m {
	case ModeMeanSD:
		return "SD"
	case ModeMeanSEM:
		return "SEM"
	default:
		return ""
	}
}

// ParseAggregationMode converts a user-supplied mode name.
func ParseAggregationMode(s string) (AggregationMode, error) {
	switch AggregationMode(s) {
	case ModeIndividual, ModeMeanSD, ModeMeanSEM:
		return AggregationMode(s), nil
	}
	return "", fmt.Errorf("unknown aggregation mode %q (want individual, mean_sd or mean_sem)", s)
}

// ExportFormat selects the output reshaping strategy.
type ExportFormat string

const (
	// FormatStandard lays samples out as rows and groups as columns.
	FormatStandard ExportFormat = "standard"
	// FormatSingleRow flattens everything into one row with composite
	// <sample>_<group> column headers.
	FormatSingleRow ExportFormat = "single_row"
)

// ParseExportFormat converts a user-supplied format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatStandard, FormatSingleRow:
		return ExportFormat(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (want standard or single_row)", s)
}

// AggregatedKey addresses one cell of the aggregation result.
type AggregatedKey struct {
	Sample string
	Group  string
	Column string
}

// AggregatedCell holds the reduced values for one (sample, group, column)
// key. Individual mode fills Values with every replicate in record order;
// the mean modes fill Mean and Dispersion instead.
type AggregatedCell struct {
	Values     []float64 `json:"values,omitempty"`
	Mean       float64   `json:"mean"`
	Dispersion float64   `json:"dispersion"`
	Count      int       `json:"count"`
}

// AggregatedSet is the aggregation result. Samples and Groups list the keys
// in order of first appearance in the merged record sequence, preserving
// plate-scan order for the exporters.
type AggregatedSet struct {
	Mode    AggregationMode
	Columns []string
	Samples []string
	Groups  []string
	Cells   map[AggregatedKey]AggregatedCell
}

// Cell looks up the aggregated cell for one sample/group/column key.
func (s *AggregatedSet) Cell(sample, group, column string) (AggregatedCell, bool) {
	cell, ok := s.Cells[AggregatedKey{Sample: sample, Group: group, Column: column}]
	return cell, ok
}

// ExportTable is a generic labeled 2-D table ready for CSV or clipboard
// output. Headers is nil when the caller asked for no header row.
type ExportTable struct {
	Headers []string
	Rows    [][]string
}
