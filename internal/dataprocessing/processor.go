package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"flowplate/internal/errors"
	"flowplate/internal/exporter"
	"flowplate/pkg/contracts/domain"
)

// Processor runs one complete analysis: load the two plate maps and the
// measurement export, merge, aggregate, reshape. It holds no state between
// runs; every Run recomputes from its inputs.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a processor. A nil logger falls back to the default.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger}
}

// AnalysisRequest describes one analysis run.
type AnalysisRequest struct {
	SampleMapPath string
	GroupMapPath  string
	DataPath      string

	// Sheet overrides the workbook sheet for all three inputs; empty means
	// the first sheet.
	Sheet string

	// Measurement selects the column to analyze; empty means the first
	// column of the measurement file.
	Measurement string

	Mode           domain.AggregationMode
	Format         domain.ExportFormat
	IncludeHeaders bool

	// Inclusion filters forwarded to the exporter; nil means no filtering.
	SampleFilter []string
	GroupFilter  []string
}

// AnalysisResult carries the reshaped table plus everything the caller needs
// to warn about or display: the soft unmapped-well diagnostics and the full
// measurement column list.
type AnalysisResult struct {
	Table    *domain.ExportTable
	Unmapped []domain.UnmappedWell
	Columns  []string
	Records  int
}

// Run executes the pipeline for one request. The three input files are
// loaded and built concurrently; everything after that is a pure
// single-threaded computation over immutable inputs.
func (p *Processor) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	if _, err := domain.ParseExportFormat(string(req.Format)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	p.logger.InfoContext(ctx, "starting analysis run",
		slog.String("sample_map", req.SampleMapPath),
		slog.String("group_map", req.GroupMapPath),
		slog.String("data", req.DataPath),
		slog.String("mode", string(req.Mode)),
		slog.String("format", string(req.Format)))

	var (
		sampleMap *domain.PlateMap
		groupMap  *domain.PlateMap
		table     *domain.MeasurementTable
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sampleMap, err = p.loadPlateMap(req.SampleMapPath, req.Sheet)
		if err != nil {
			return fmt.Errorf("sample map: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		groupMap, err = p.loadPlateMap(req.GroupMapPath, req.Sheet)
		if err != nil {
			return fmt.Errorf("group map: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		grid, err := LoadGrid(req.DataPath, req.Sheet)
		if err != nil {
			return fmt.Errorf("measurement data: %w", err)
		}
		table, err = BuildMeasurementTable(grid)
		if err != nil {
			return fmt.Errorf("measurement data: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "inputs loaded",
		slog.Int("sample_wells", sampleMap.Len()),
		slog.Int("group_wells", groupMap.Len()),
		slog.Int("measurement_rows", len(table.Rows)),
		slog.Int("measurement_columns", len(table.Columns)))

	annotated, unmapped := Merge(table, sampleMap, groupMap)
	if len(unmapped) > 0 {
		p.logger.WarnContext(ctx, "measurement wells missing from plate maps",
			slog.Int("unmapped_count", len(unmapped)))
	}

	var columns []string
	if req.Measurement != "" {
		columns = []string{req.Measurement}
	}
	aggregated, err := Aggregate(annotated, req.Mode, columns)
	if err != nil {
		return nil, err
	}

	opts := exporter.Options{
		Column:         req.Measurement,
		SampleOrder:    exporter.ApplyPreferredOrder(aggregated.Samples, sampleMap.Order()),
		GroupOrder:     exporter.ApplyPreferredOrder(aggregated.Groups, groupMap.Order()),
		SampleFilter:   req.SampleFilter,
		GroupFilter:    req.GroupFilter,
		IncludeHeaders: req.IncludeHeaders,
	}

	var result *domain.ExportTable
	switch req.Format {
	case domain.FormatSingleRow:
		result, err = exporter.ExportSingleRow(aggregated, opts)
	default:
		result, err = exporter.ExportStandard(aggregated, opts)
	}
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "analysis run complete",
		slog.Int("records", len(annotated.Records)),
		slog.Int("export_rows", len(result.Rows)))

	return &AnalysisResult{
		Table:    result,
		Unmapped: unmapped,
		Columns:  table.Columns,
		Records:  len(annotated.Records),
	}, nil
}

// loadPlateMap decodes and builds one plate-map input.
func (p *Processor) loadPlateMap(path, sheet string) (*domain.PlateMap, error) {
	grid, err := LoadGrid(path, sheet)
	if err != nil {
		return nil, err
	}
	return BuildPlateMap(grid)
}
