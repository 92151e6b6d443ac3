package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowplate/pkg/contracts/domain"
)

func writeTempCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func scenarioRequest(t *testing.T) AnalysisRequest {
	t.Helper()
	dir := t.TempDir()
	return AnalysisRequest{
		SampleMapPath: writeTempCSV(t, dir, "sample_map.csv",
			",1,2,3\nA,S1,S1,\n"),
		GroupMapPath: writeTempCSV(t, dir, "group_map.csv",
			",1,2,3\nA,G1,G2,\n"),
		DataPath: writeTempCSV(t, dir, "flow_data.csv",
			"Sample Name,Freq\nx_A01.fcs,5\ny_A02.fcs,7\n"),
		Mode:           domain.ModeIndividual,
		Format:         domain.FormatStandard,
		IncludeHeaders: true,
	}
}

func TestProcessor_Run(t *testing.T) {
	processor := NewProcessor(nil)

	result, err := processor.Run(context.Background(), scenarioRequest(t))
	require.NoError(t, err)

	assert.Empty(t, result.Unmapped)
	assert.Equal(t, 2, result.Records)
	assert.Equal(t, []string{"Freq"}, result.Columns)

	require.NotNil(t, result.Table)
	assert.Equal(t, []string{"", "G1", "G2"}, result.Table.Headers)
	require.Len(t, result.Table.Rows, 1)
	assert.Equal(t, []string{"S1", "5.00", "7.00"}, result.Table.Rows[0])
}

func TestProcessor_Run_UnmappedWellSurvives(t *testing.T) {
	req := scenarioRequest(t)
	dir := t.TempDir()
	req.DataPath = writeTempCSV(t, dir, "flow_data.csv",
		"Sample Name,Freq\nx_A01.fcs,5\ny_A02.fcs,7\nz_A03.fcs,9\n")

	result, err := NewProcessor(nil).Run(context.Background(), req)
	require.NoError(t, err)

	// A03 is absent from both maps: excluded from the table, reported as a
	// diagnostic.
	require.Len(t, result.Unmapped, 1)
	assert.Equal(t, "A03", result.Unmapped[0].Well.String())
	assert.True(t, result.Unmapped[0].MissingSample)
	assert.True(t, result.Unmapped[0].MissingGroup)

	assert.Equal(t, 2, result.Records)
	require.Len(t, result.Table.Rows, 1)
	assert.Equal(t, []string{"S1", "5.00", "7.00"}, result.Table.Rows[0])
}

func TestProcessor_Run_MeanSD(t *testing.T) {
	dir := t.TempDir()
	req := AnalysisRequest{
		SampleMapPath: writeTempCSV(t, dir, "sample_map.csv",
			",1,2\nA,S1,S1\n"),
		GroupMapPath: writeTempCSV(t, dir, "group_map.csv",
			",1,2\nA,G1,G1\n"),
		DataPath: writeTempCSV(t, dir, "flow_data.csv",
			"Sample Name,Freq\nx_A01.fcs,10\ny_A02.fcs,20\n"),
		Mode:           domain.ModeMeanSD,
		Format:         domain.FormatStandard,
		IncludeHeaders: true,
	}

	result, err := NewProcessor(nil).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G1_Mean", "G1_SD"}, result.Table.Headers)
	require.Len(t, result.Table.Rows, 1)
	assert.Equal(t, []string{"S1", "15.00", "7.07"}, result.Table.Rows[0])
}

func TestProcessor_Run_SingleRowFormat(t *testing.T) {
	req := scenarioRequest(t)
	req.Format = domain.FormatSingleRow

	result, err := NewProcessor(nil).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"S1_G1", "S1_G2"}, result.Table.Headers)
	require.Len(t, result.Table.Rows, 1)
	assert.Equal(t, []string{"5.00", "7.00"}, result.Table.Rows[0])
}

func TestProcessor_Run_PlateOrderAppliedToExport(t *testing.T) {
	dir := t.TempDir()
	// Group map declares display order G2 before G1 in its order column.
	groupHeader := ",1,2,3,4,5,6,7,8,9,10,11,12,Order\n"
	req := AnalysisRequest{
		SampleMapPath: writeTempCSV(t, dir, "sample_map.csv",
			",1,2\nA,S1,S1\n"),
		GroupMapPath: writeTempCSV(t, dir, "group_map.csv",
			groupHeader+"A,G1,G2,,,,,,,,,,,G2\nB,,,,,,,,,,,,,G1\n"),
		DataPath: writeTempCSV(t, dir, "flow_data.csv",
			"Sample Name,Freq\nx_A01.fcs,5\ny_A02.fcs,7\n"),
		Mode:           domain.ModeIndividual,
		Format:         domain.FormatStandard,
		IncludeHeaders: true,
	}

	result, err := NewProcessor(nil).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G2", "G1"}, result.Table.Headers)
	assert.Equal(t, []string{"S1", "7.00", "5.00"}, result.Table.Rows[0])
}

func TestProcessor_Run_Filters(t *testing.T) {
	req := scenarioRequest(t)
	req.GroupFilter = []string{"G2"}

	result, err := NewProcessor(nil).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "G2"}, result.Table.Headers)
	assert.Equal(t, []string{"S1", "7.00"}, result.Table.Rows[0])
}

func TestProcessor_Run_InputErrors(t *testing.T) {
	dir := t.TempDir()
	good := scenarioRequest(t)

	t.Run("missing file", func(t *testing.T) {
		req := good
		req.DataPath = filepath.Join(dir, "nope.csv")
		_, err := NewProcessor(nil).Run(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("malformed plate map", func(t *testing.T) {
		req := good
		req.SampleMapPath = writeTempCSV(t, dir, "bad_map.csv", ",1,x\nA,S1,S2\n")
		_, err := NewProcessor(nil).Run(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		req := good
		req.Format = domain.ExportFormat("wide")
		_, err := NewProcessor(nil).Run(context.Background(), req)
		assert.Error(t, err)
	})
}
