package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flowplate/pkg/contracts/domain"
)

func TestApplyPreferredOrder(t *testing.T) {
	tests := []struct {
		name      string
		present   []string
		preferred []string
		want      []string
	}{
		{
			name:      "no preference keeps present order",
			present:   []string{"B", "A", "C"},
			preferred: nil,
			want:      []string{"B", "A", "C"},
		},
		{
			name:      "preferred labels lead",
			present:   []string{"A", "B", "C"},
			preferred: []string{"C", "A"},
			want:      []string{"C", "A", "B"},
		},
		{
			name:      "remaining labels sort alphabetically",
			present:   []string{"D", "B", "A", "C"},
			preferred: []string{"C"},
			want:      []string{"C", "A", "B", "D"},
		},
		{
			name:      "absent preferred labels ignored",
			present:   []string{"A", "B"},
			preferred: []string{"X", "B"},
			want:      []string{"B", "A"},
		},
		{
			name:      "duplicate preference ignored",
			present:   []string{"A", "B"},
			preferred: []string{"B", "B"},
			want:      []string{"B", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyPreferredOrder(tt.present, tt.preferred))
		})
	}
}

func TestApplyPreferredOrder_DoesNotMutateInput(t *testing.T) {
	present := []string{"B", "A"}
	_ = ApplyPreferredOrder(present, []string{"A"})
	assert.Equal(t, []string{"B", "A"}, present)
}

func TestResolveLabels(t *testing.T) {
	setOrder := []string{"S1", "S2", "S3"}

	tests := []struct {
		name     string
		override []string
		filter   []string
		want     []string
	}{
		{name: "defaults to set order", want: []string{"S1", "S2", "S3"}},
		{name: "override reorders", override: []string{"S3", "S1", "S2"}, want: []string{"S3", "S1", "S2"}},
		{name: "override restricted to known labels", override: []string{"S2", "SX"}, want: []string{"S2"}},
		{name: "filter drops labels", filter: []string{"S2"}, want: []string{"S2"}},
		{name: "empty filter drops everything", filter: []string{}, want: []string{}},
		{name: "override then filter", override: []string{"S3", "S2", "S1"}, filter: []string{"S1", "S3"}, want: []string{"S3", "S1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLabels(setOrder, tt.override, tt.filter))
		})
	}
}

func TestSelectColumn(t *testing.T) {
	set := &domain.AggregatedSet{Columns: []string{"Freq", "Count"}}

	column, err := selectColumn(set, "")
	assert.NoError(t, err)
	assert.Equal(t, "Freq", column)

	column, err = selectColumn(set, "Count")
	assert.NoError(t, err)
	assert.Equal(t, "Count", column)

	_, err = selectColumn(set, "nope")
	assert.Error(t, err)

	_, err = selectColumn(&domain.AggregatedSet{}, "")
	assert.Error(t, err)
}
