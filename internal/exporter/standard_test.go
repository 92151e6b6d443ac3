package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowplate/pkg/contracts/domain"
)

func individualSet() *domain.AggregatedSet {
	return &domain.AggregatedSet{
		Mode:    domain.ModeIndividual,
		Columns: []string{"Freq"},
		Samples: []string{"S1", "S2"},
		Groups:  []string{"G1", "G2"},
		Cells: map[domain.AggregatedKey]domain.AggregatedCell{
			{Sample: "S1", Group: "G1", Column: "Freq"}: {Values: []float64{1, 2}, Count: 2},
			{Sample: "S1", Group: "G2", Column: "Freq"}: {Values: []float64{3}, Count: 1},
			{Sample: "S2", Group: "G1", Column: "Freq"}: {Values: []float64{4}, Count: 1},
		},
	}
}

func meanSet(mode domain.AggregationMode) *domain.AggregatedSet {
	return &domain.AggregatedSet{
		Mode:    mode,
		Columns: []string{"Freq"},
		Samples: []string{"S1", "S2"},
		Groups:  []string{"G1", "G2"},
		Cells: map[domain.AggregatedKey]domain.AggregatedCell{
			{Sample: "S1", Group: "G1", Column: "Freq"}: {Mean: 15, Dispersion: 7.0710678, Count: 2},
			{Sample: "S1", Group: "G2", Column: "Freq"}: {Mean: 3, Dispersion: 0, Count: 1},
			{Sample: "S2", Group: "G1", Column: "Freq"}: {Mean: 4, Dispersion: 0, Count: 1},
		},
	}
}

func TestExportStandard_Individual(t *testing.T) {
	table, err := ExportStandard(individualSet(), Options{IncludeHeaders: true})
	require.NoError(t, err)

	// G1 is two replicates wide (its widest sample), G2 one.
	assert.Equal(t, []string{"", "G1", "G1", "G2"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"S1", "1.00", "2.00", "3.00"}, table.Rows[0])
	assert.Equal(t, []string{"S2", "4.00", "", ""}, table.Rows[1])
}

func TestExportStandard_MeanSD(t *testing.T) {
	table, err := ExportStandard(meanSet(domain.ModeMeanSD), Options{IncludeHeaders: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G1_Mean", "G1_SD", "G2_Mean", "G2_SD"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"S1", "15.00", "7.07", "3.00", "0.00"}, table.Rows[0])
	assert.Equal(t, []string{"S2", "4.00", "0.00", "", ""}, table.Rows[1])
}

func TestExportStandard_MeanSEMHeaders(t *testing.T) {
	table, err := ExportStandard(meanSet(domain.ModeMeanSEM), Options{IncludeHeaders: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G1_Mean", "G1_SEM", "G2_Mean", "G2_SEM"}, table.Headers)
}

func TestExportStandard_HeaderToggleDoesNotChangeValues(t *testing.T) {
	withHeaders, err := ExportStandard(individualSet(), Options{IncludeHeaders: true})
	require.NoError(t, err)
	withoutHeaders, err := ExportStandard(individualSet(), Options{IncludeHeaders: false})
	require.NoError(t, err)

	assert.Nil(t, withoutHeaders.Headers)
	assert.Equal(t, withHeaders.Rows, withoutHeaders.Rows)
}

func TestExportStandard_FullFilterMatchesNoFilter(t *testing.T) {
	unfiltered, err := ExportStandard(individualSet(), Options{IncludeHeaders: true})
	require.NoError(t, err)

	filtered, err := ExportStandard(individualSet(), Options{
		IncludeHeaders: true,
		SampleFilter:   []string{"S1", "S2"},
		GroupFilter:    []string{"G1", "G2"},
	})
	require.NoError(t, err)

	assert.Equal(t, unfiltered, filtered)
}

func TestExportStandard_FilterDropsEntirely(t *testing.T) {
	table, err := ExportStandard(individualSet(), Options{
		IncludeHeaders: true,
		SampleFilter:   []string{"S1"},
		GroupFilter:    []string{"G2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G2"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"S1", "3.00"}, table.Rows[0])
}

func TestExportStandard_GroupEmptiedByFilterDisappears(t *testing.T) {
	// Filtering to S2 leaves G2 with no data at all; it must not linger as
	// blank columns.
	table, err := ExportStandard(individualSet(), Options{
		IncludeHeaders: true,
		SampleFilter:   []string{"S2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G1"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"S2", "4.00"}, table.Rows[0])
}

func TestExportStandard_OrderOverride(t *testing.T) {
	table, err := ExportStandard(individualSet(), Options{
		IncludeHeaders: true,
		SampleOrder:    []string{"S2", "S1"},
		GroupOrder:     []string{"G2", "G1"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G2", "G1", "G1"}, table.Headers)
	assert.Equal(t, "S2", table.Rows[0][0])
	assert.Equal(t, "S1", table.Rows[1][0])
}

func TestExportStandard_UnknownColumn(t *testing.T) {
	_, err := ExportStandard(individualSet(), Options{Column: "nope"})
	assert.Error(t, err)
}

func TestExportStandard_ScenarioFromPlate(t *testing.T) {
	// Sample map {A01:S1, A02:S1}, group map {A01:G1, A02:G2}, measurements
	// x_A01=5, y_A02=7: one row S1 with G1=5 and G2=7.
	set := &domain.AggregatedSet{
		Mode:    domain.ModeIndividual,
		Columns: []string{"Freq"},
		Samples: []string{"S1"},
		Groups:  []string{"G1", "G2"},
		Cells: map[domain.AggregatedKey]domain.AggregatedCell{
			{Sample: "S1", Group: "G1", Column: "Freq"}: {Values: []float64{5}, Count: 1},
			{Sample: "S1", Group: "G2", Column: "Freq"}: {Values: []float64{7}, Count: 1},
		},
	}

	table, err := ExportStandard(set, Options{IncludeHeaders: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G1", "G2"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"S1", "5.00", "7.00"}, table.Rows[0])
}
