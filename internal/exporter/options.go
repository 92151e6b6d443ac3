package exporter

import (
	"sort"

	"flowplate/internal/errors"
	"flowplate/pkg/contracts/domain"
)

// Options configures the reshaping of one aggregated set.
type Options struct {
	// Column selects the measurement column to reshape. Empty means the
	// first column of the set.
	Column string

	// SampleOrder and GroupOrder override the set's first-appearance
	// ordering, typically with the display order declared in a plate map.
	// Labels not present in the set are ignored; nil keeps the set order.
	SampleOrder []string
	GroupOrder  []string

	// SampleFilter and GroupFilter are inclusion filters. Labels outside the
	// filter are dropped entirely. Nil means no filtering.
	SampleFilter []string
	GroupFilter  []string

	// IncludeHeaders emits the header row. Purely cosmetic; values are
	// identical either way.
	IncludeHeaders bool
}

// ApplyPreferredOrder arranges present labels by a preferred order list:
// labels named by the preference come first, in preference order, and any
// remaining labels follow alphabetically. An empty preference keeps the
// present order untouched.
func ApplyPreferredOrder(present, preferred []string) []string {
	if len(preferred) == 0 {
		return append([]string(nil), present...)
	}

	presentSet := make(map[string]bool, len(present))
	for _, label := range present {
		presentSet[label] = true
	}

	ordered := make([]string, 0, len(present))
	taken := make(map[string]bool, len(present))
	for _, label := range preferred {
		if presentSet[label] && !taken[label] {
			ordered = append(ordered, label)
			taken[label] = true
		}
	}

	var remaining []string
	for _, label := range present {
		if !taken[label] {
			remaining = append(remaining, label)
		}
	}
	sort.Strings(remaining)

	return append(ordered, remaining...)
}

// selectColumn resolves and validates the measurement column choice.
func selectColumn(set *domain.AggregatedSet, column string) (string, error) {
	if len(set.Columns) == 0 {
		return "", errors.NewValidationError("aggregated set has no measurement columns")
	}
	if column == "" {
		return set.Columns[0], nil
	}
	for _, candidate := range set.Columns {
		if candidate == column {
			return column, nil
		}
	}
	return "", errors.NewValidationError("aggregated set has no column " + column)
}

// resolveLabels produces the final ordered label list: the override order
// (or the set order) restricted to labels the set actually contains, then
// restricted to the inclusion filter.
func resolveLabels(setOrder, override, filter []string) []string {
	known := make(map[string]bool, len(setOrder))
	for _, label := range setOrder {
		known[label] = true
	}

	base := setOrder
	if len(override) > 0 {
		base = override
	}

	var included map[string]bool
	if filter != nil {
		included = make(map[string]bool, len(filter))
		for _, label := range filter {
			included[label] = true
		}
	}

	labels := make([]string, 0, len(base))
	seen := make(map[string]bool, len(base))
	for _, label := range base {
		if !known[label] || seen[label] {
			continue
		}
		if included != nil && !included[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
