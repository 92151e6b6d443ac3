package exporter

import (
	"flowplate/pkg/contracts/domain"
)

// ExportStandard reshapes an aggregated set into the grouped matrix layout:
// one row per sample, the first column carrying the sample name. In
// individual mode each group contributes one column per replicate (ragged
// replicate counts leave trailing blanks); in the mean modes each group
// contributes a mean column and an adjacent dispersion column. Groups and
// samples excluded by the filter are dropped entirely.
func ExportStandard(set *domain.AggregatedSet, opts Options) (*domain.ExportTable, error) {
	column, err := selectColumn(set, opts.Column)
	if err != nil {
		return nil, err
	}

	samples := resolveLabels(set.Samples, opts.SampleOrder, opts.SampleFilter)
	groups := resolveLabels(set.Groups, opts.GroupOrder, opts.GroupFilter)

	if set.Mode.Aggregated() {
		return standardAggregated(set, column, samples, groups, opts.IncludeHeaders), nil
	}
	return standardIndividual(set, column, samples, groups, opts.IncludeHeaders), nil
}

func standardIndividual(set *domain.AggregatedSet, column string, samples, groups []string, includeHeaders bool) *domain.ExportTable {
	// Replicate counts are ragged across samples; each group gets as many
	// columns as its widest sample.
	repCounts := make(map[string]int, len(groups))
	var kept []string
	for _, group := range groups {
		max := 0
		for _, sample := range samples {
			if cell, ok := set.Cell(sample, group, column); ok && len(cell.Values) > max {
				max = len(cell.Values)
			}
		}
		if max > 0 {
			repCounts[group] = max
			kept = append(kept, group)
		}
	}

	table := &domain.ExportTable{}
	if includeHeaders {
		headers := []string{""}
		for _, group := range kept {
			for i := 0; i < repCounts[group]; i++ {
				headers = append(headers, group)
			}
		}
		table.Headers = headers
	}

	for _, sample := range samples {
		row := []string{sample}
		for _, group := range kept {
			cell, _ := set.Cell(sample, group, column)
			for i := 0; i < repCounts[group]; i++ {
				if i < len(cell.Values) {
					row = append(row, formatValue(cell.Values[i]))
				} else {
					row = append(row, "")
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

func standardAggregated(set *domain.AggregatedSet, column string, samples, groups []string, includeHeaders bool) *domain.ExportTable {
	dispersion := set.Mode.DispersionLabel()

	// Groups left without any cell after sample filtering disappear rather
	// than rendering as blank column pairs.
	var kept []string
	for _, group := range groups {
		for _, sample := range samples {
			if _, ok := set.Cell(sample, group, column); ok {
				kept = append(kept, group)
				break
			}
		}
	}

	table := &domain.ExportTable{}
	if includeHeaders {
		headers := []string{""}
		for _, group := range kept {
			headers = append(headers, group+"_Mean", group+"_"+dispersion)
		}
		table.Headers = headers
	}

	for _, sample := range samples {
		row := []string{sample}
		for _, group := range kept {
			if cell, ok := set.Cell(sample, group, column); ok {
				row = append(row, formatValue(cell.Mean), formatValue(cell.Dispersion))
			} else {
				row = append(row, "", "")
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}
