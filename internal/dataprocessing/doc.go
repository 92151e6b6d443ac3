// Package dataprocessing implements the core analysis pipeline: it turns raw
// spreadsheet grids into plate maps and measurement tables, joins measurement
// rows to sample and group labels by well position, and reduces replicates
// per (sample, group).
//
// # Data Flow
//
// The typical flow through this package:
//
//	Plate map grids → BuildPlateMap ×2 ┐
//	Measurement grid → BuildMeasurementTable ┴→ Merge → Aggregate → exporter
//
// Processor wires the whole chain for one analysis run, loading the three
// input files concurrently.
//
// # Error Handling
//
// Parse failures are fatal to the offending input file and identify the
// offending cell or row via the errors package context. Wells missing from a
// plate map are the one soft failure: they are reported as UnmappedWell
// diagnostics alongside the merge output, and the affected rows are excluded
// rather than aborting the run, because partially filled plates are common.
//
// Every operation here is a pure function of its inputs; nothing is cached
// between runs and re-running with the same inputs yields the same outputs.
package dataprocessing
