package domain

// MeasurementRow is one instrument-exported row: the free-text sample name it
// arrived with, the well extracted from that name, and the numeric values in
// the same order as the owning table's Columns.
type MeasurementRow struct {
	SourceName string    `json:"source_name"`
	Well       Well      `json:"well"`
	Values     []float64 `json:"values"`
}

// MeasurementTable is the decoded instrument export. The header row of the
// source file defines Columns; every row carries exactly one value per
// column, positionally aligned.
type MeasurementTable struct {
	Columns []string         `json:"columns"`
	Rows    []MeasurementRow `json:"rows"`
}

// ColumnIndex returns the position of a measurement column, or -1 when the
// table has no column of that name.
func (t *MeasurementTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// AnnotatedRecord joins one measurement row with the sample and group labels
// looked up from the two plate maps. Labels are value copies; records remain
// valid after the maps they were built from are gone.
type AnnotatedRecord struct {
	Well   Well      `json:"well"`
	Sample string    `json:"sample"`
	Group  string    `json:"group"`
	Values []float64 `json:"values"`
}

// AnnotatedSet is the merger output: records in measurement-row order plus
// the measurement column schema they are aligned to.
type AnnotatedSet struct {
	Columns []string          `json:"columns"`
	Records []AnnotatedRecord `json:"records"`
}

// UnmappedWell is a soft diagnostic for a measurement row whose well is
// absent from one or both plate maps. The row is excluded from the annotated
// records but the diagnostic is always surfaced to the caller.
type UnmappedWell struct {
	Well          Well   `json:"well"`
	SourceName    string `json:"source_name"`
	MissingSample bool   `json:"missing_sample"`
	MissingGroup  bool   `json:"missing_group"`
}
