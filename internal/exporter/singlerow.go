package exporter

import (
	"fmt"

	"flowplate/pkg/contracts/domain"
)

// ExportSingleRow flattens an aggregated set into exactly one data row.
// Column headers encode <sample>_<group>; the mean modes append _Mean and
// _SD/_SEM suffixes. In individual mode every (sample, group) pair is padded
// to the widest replicate count so replicate columns stay aligned across
// pairs. Pairs with no data are skipped entirely.
func ExportSingleRow(set *domain.AggregatedSet, opts Options) (*domain.ExportTable, error) {
	column, err := selectColumn(set, opts.Column)
	if err != nil {
		return nil, err
	}

	samples := resolveLabels(set.Samples, opts.SampleOrder, opts.SampleFilter)
	groups := resolveLabels(set.Groups, opts.GroupOrder, opts.GroupFilter)

	if set.Mode.Aggregated() {
		return singleRowAggregated(set, column, samples, groups, opts.IncludeHeaders), nil
	}
	return singleRowIndividual(set, column, samples, groups, opts.IncludeHeaders), nil
}

func singleRowIndividual(set *domain.AggregatedSet, column string, samples, groups []string, includeHeaders bool) *domain.ExportTable {
	maxReplicates := 0
	for _, sample := range samples {
		for _, group := range groups {
			if cell, ok := set.Cell(sample, group, column); ok && len(cell.Values) > maxReplicates {
				maxReplicates = len(cell.Values)
			}
		}
	}

	var headers []string
	var row []string
	for _, sample := range samples {
		for _, group := range groups {
			cell, ok := set.Cell(sample, group, column)
			if !ok {
				continue
			}
			name := fmt.Sprintf("%s_%s", sample, group)
			for i := 0; i < maxReplicates; i++ {
				headers = append(headers, name)
				if i < len(cell.Values) {
					row = append(row, formatValue(cell.Values[i]))
				} else {
					row = append(row, "")
				}
			}
		}
	}

	table := &domain.ExportTable{Rows: [][]string{row}}
	if includeHeaders {
		table.Headers = headers
	}
	return table
}

func singleRowAggregated(set *domain.AggregatedSet, column string, samples, groups []string, includeHeaders bool) *domain.ExportTable {
	dispersion := set.Mode.DispersionLabel()

	var headers []string
	var row []string
	for _, sample := range samples {
		for _, group := range groups {
			cell, ok := set.Cell(sample, group, column)
			if !ok {
				continue
			}
			name := fmt.Sprintf("%s_%s", sample, group)
			headers = append(headers, name+"_Mean", name+"_"+dispersion)
			row = append(row, formatValue(cell.Mean), formatValue(cell.Dispersion))
		}
	}

	table := &domain.ExportTable{Rows: [][]string{row}}
	if includeHeaders {
		table.Headers = headers
	}
	return table
}
