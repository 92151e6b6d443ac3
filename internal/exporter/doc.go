// Package exporter reshapes aggregated plate data into export tables and
// writes them as CSV or TSV.
//
// Two layouts are supported:
//
// ExportStandard: a grouped matrix with samples as rows and groups as
// columns. Individual mode gives each group one column per replicate; the
// mean modes give each group an adjacent mean/dispersion column pair.
//
// ExportSingleRow: a single flattened data row whose column headers encode
// <sample>_<group>, with _Mean and _SD/_SEM suffixes when aggregated.
//
// Both layouts accept an inclusion filter on sample and group names; labels
// outside the filter are dropped entirely, never rendered blank. Header
// inclusion is a formatting toggle only and never changes computed values.
//
// CSVWriter handles the final byte output, including the UTF-8 BOM Excel
// needs and a tab-separated mode for clipboard-style paste.
package exporter
