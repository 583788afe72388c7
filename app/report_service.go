package app

import (
	"context"
	"time"

	"bmireport/adapters/stats/senses"
	"bmireport/domain/bmi"
	"bmireport/domain/core"
	"bmireport/domain/dataset"
	"bmireport/internal"
	"bmireport/internal/errors"
	"bmireport/internal/profiling"
)

// ReportService derives the BMI report from a parsed table. It holds no
// per-request state, so one instance can serve concurrent callers.
type ReportService struct {
	engine   *senses.SenseEngine
	profiler *profiling.CategoryProfiler
	logger   *internal.Logger
	now      func() time.Time
}

// NewReportService creates a report service
func NewReportService(logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{
		engine:   senses.NewSenseEngine(),
		profiler: profiling.NewCategoryProfiler(),
		logger:   logger,
		now:      time.Now,
	}
}

// BuildReport annotates every record, correlates BMI with the stated Index over
// the valid rows and builds the mapping grid. Invalid rows are kept in the table
// and counted, never thrown; an empty table or one with no valid rows fails with
// an EMPTY_INPUT error.
func (s *ReportService) BuildReport(ctx context.Context, ds *dataset.Dataset, opts Options) (*Report, error) {
	start := s.now()
	if ds.Len() == 0 {
		return nil, errors.Wrap(core.ErrEmptyInput, "dataset has no records")
	}

	rows := bmi.Annotate(ds.Records)
	valid := bmi.ValidRows(rows)
	agreement := bmi.Summarize(rows)
	s.logger.Debug("[ReportService] %s: %d rows, %d valid, %d included",
		ds.Name, agreement.Total, len(valid), agreement.Included)

	if len(valid) == 0 {
		return nil, errors.Wrap(core.ErrEmptyInput, "dataset has no valid rows")
	}

	report := &Report{
		ID:          core.NewReportID(),
		DatasetName: ds.Name,
		TableHash:   ds.Hash(),
		GeneratedAt: start,
		Rows:        rows,
		Preview:     head(rows, opts.PreviewRows),
		Agreement:   agreement,
		Thresholds:  bmi.Thresholds(),
		Warnings:    ds.Warnings,
	}

	correlations, err := s.correlate(ctx, valid)
	if err != nil {
		return nil, err
	}
	report.Correlations = correlations
	report.IncludedSpearman = s.includedSpearman(ctx, valid)

	bmiValues, _ := columns(valid)
	if report.ProfileAll, err = s.profiler.ProfileColumn(bmiValues); err != nil {
		return nil, errors.Wrap(err, "profiling BMI")
	}
	if report.ProfilesComputed, err = s.profiler.ProfileByCategory(rows, false); err != nil {
		return nil, errors.Wrap(err, "profiling computed categories")
	}
	if report.ProfilesStated, err = s.profiler.ProfileByCategory(rows, true); err != nil {
		return nil, errors.Wrap(err, "profiling stated categories")
	}

	if !opts.SkipGrid {
		grid, err := s.BuildGrid(opts.Grid)
		if err != nil {
			return nil, err
		}
		report.GridRange = opts.Grid
		report.Grid = grid
		report.GridCounts = bmi.CategoryCounts(grid)
	}

	s.logger.Info("[ReportService] report %s for %s built in %s (spearman=%.4f)",
		report.ID, ds.Name, s.now().Sub(start), report.Spearman().Rounded)
	return report, nil
}

// BuildGrid enumerates the decision surface for the given range
func (s *ReportService) BuildGrid(g bmi.GridRange) ([]bmi.GridCell, error) {
	grid, err := bmi.BuildGrid(g)
	if err != nil {
		return nil, errors.Wrap(err, "building mapping grid")
	}
	return grid, nil
}

// correlate runs every sense on (BMI, stated Index). A zero-variance column is
// reported as an undefined coefficient; any other failure is fatal.
func (s *ReportService) correlate(ctx context.Context, valid []bmi.AnnotatedRecord) ([]Correlation, error) {
	x, y := columns(valid)

	results, err := s.engine.AnalyzeAll(ctx, x, y, core.VarBMI, core.VarIndex)
	if err != nil {
		return nil, errors.Wrap(err, "correlating BMI with Index")
	}

	out := make([]Correlation, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			s.logger.Warn("[ReportService] %s correlation undefined: %v", result.SenseName, result.Err)
		}
		out = append(out, correlationFrom(result, result.Err))
	}
	return out, nil
}

func (s *ReportService) includedSpearman(ctx context.Context, valid []bmi.AnnotatedRecord) Correlation {
	included := make([]bmi.AnnotatedRecord, 0, len(valid))
	for _, r := range valid {
		if r.Flag == bmi.FlagIncluded {
			included = append(included, r)
		}
	}
	x, y := columns(included)
	result, _, err := s.engine.AnalyzeSingle(ctx, "spearman", x, y, core.VarBMI, core.VarIndex)
	return correlationFrom(result, err)
}

func columns(rows []bmi.AnnotatedRecord) (bmiValues, index []float64) {
	bmiValues = make([]float64, len(rows))
	index = make([]float64, len(rows))
	for i, r := range rows {
		bmiValues[i] = r.BMI
		index[i] = float64(r.Index)
	}
	return bmiValues, index
}

// head returns the first n rows; n <= 0 yields an empty preview
func head(rows []bmi.AnnotatedRecord, n int) []bmi.AnnotatedRecord {
	if n <= 0 {
		return []bmi.AnnotatedRecord{}
	}
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}
