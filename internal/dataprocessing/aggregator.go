package dataprocessing

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"flowplate/internal/errors"
	"flowplate/pkg/contracts/domain"
)

// Aggregate reduces the annotated records per (sample, group, column) key.
// Individual mode keeps every replicate as a sequence in record order; the
// mean modes compute the arithmetic mean plus sample standard deviation
// (ddof=1) or SEM. A key with a single replicate reports dispersion 0 rather
// than NaN, matching what downstream plotting tools expect.
//
// Sample and group key order is the order of first appearance in the record
// sequence, preserving plate-scan order for the exporters. An empty columns
// selection means every column of the set.
func Aggregate(set *domain.AnnotatedSet, mode domain.AggregationMode, columns []string) (*domain.AggregatedSet, error) {
	if _, err := domain.ParseAggregationMode(string(mode)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if len(columns) == 0 {
		columns = append([]string(nil), set.Columns...)
	}
	columnIndex := make(map[string]int, len(set.Columns))
	for i, column := range set.Columns {
		columnIndex[column] = i
	}
	for _, column := range columns {
		if _, ok := columnIndex[column]; !ok {
			return nil, errors.NewValidationError(
				fmt.Sprintf("unknown measurement column %q", column))
		}
	}

	result := &domain.AggregatedSet{
		Mode:    mode,
		Columns: append([]string(nil), columns...),
		Cells:   make(map[domain.AggregatedKey]domain.AggregatedCell),
	}

	// Insertion-ordered key registries: a seen-set plus the ordered slices on
	// the result itself.
	seenSamples := make(map[string]bool)
	seenGroups := make(map[string]bool)
	replicates := make(map[domain.AggregatedKey][]float64)
	var keys []domain.AggregatedKey

	for _, record := range set.Records {
		if !seenSamples[record.Sample] {
			seenSamples[record.Sample] = true
			result.Samples = append(result.Samples, record.Sample)
		}
		if !seenGroups[record.Group] {
			seenGroups[record.Group] = true
			result.Groups = append(result.Groups, record.Group)
		}
		for _, column := range columns {
			key := domain.AggregatedKey{Sample: record.Sample, Group: record.Group, Column: column}
			if _, ok := replicates[key]; !ok {
				keys = append(keys, key)
			}
			replicates[key] = append(replicates[key], record.Values[columnIndex[column]])
		}
	}

	for _, key := range keys {
		cell, err := reduce(replicates[key], mode)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s/%s/%s: %w", key.Sample, key.Group, key.Column, err)
		}
		result.Cells[key] = cell
	}

	return result, nil
}

// reduce collapses one key's replicate values according to the mode.
func reduce(values []float64, mode domain.AggregationMode) (domain.AggregatedCell, error) {
	cell := domain.AggregatedCell{Count: len(values)}

	if mode == domain.ModeIndividual {
		cell.Values = values
		return cell, nil
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return domain.AggregatedCell{}, err
	}
	cell.Mean = mean

	// A single replicate has no spread; report 0, never NaN.
	if len(values) < 2 {
		return cell, nil
	}

	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return domain.AggregatedCell{}, err
	}
	if mode == domain.ModeMeanSEM {
		cell.Dispersion = sd / math.Sqrt(float64(len(values)))
	} else {
		cell.Dispersion = sd
	}
	return cell, nil
}
