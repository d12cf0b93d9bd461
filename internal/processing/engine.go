package processing

import (
	"context"
	"log/slog"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const DEFAULT_WORKERS = 8

// Engine runs detection over records on a bounded worker pool and folds the
// results into a single Aggregator.
type Engine struct {
	detector *MentionDetector
	workers  int
}

func NewEngine(detector *MentionDetector, workers int) *Engine {
	if workers <= 0 {
		workers = DEFAULT_WORKERS
	}
	return &Engine{detector: detector, workers: workers}
}

// Aggregate detects mentions in every record of every outcome and returns the
// run totals. The result does not depend on record order.
func (e *Engine) Aggregate(ctx context.Context, brands []string, outcomes []models.SourceOutcome) (Aggregates, error) {
	aggregator := NewAggregator(brands)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, outcome := range outcomes {
		for _, record := range outcome.Records {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				counts := e.detector.DetectRecord(record, brands)
				aggregator.MergeUnit(counts, RecordEngagement(record))
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregator.Snapshot(), nil
}

// Analyze produces the full report for one run.
func (e *Engine) Analyze(ctx context.Context, run models.RunConfig, outcomes []models.SourceOutcome) (models.Report, error) {
	start := time.Now()

	totals, err := e.Aggregate(ctx, run.Brands, outcomes)
	if err != nil {
		slog.Warn("[Engine] Run abandoned",
			slog.String("query", run.Query),
			slog.String("error", err.Error()))
		return models.Report{}, err
	}

	rows, allZero := ComputeShareOfVoice(run.Brands, totals, run.Weights)

	summaries := make([]models.SourceSummary, 0, len(outcomes))
	records := 0
	for _, o := range outcomes {
		summaries = append(summaries, o.Summary())
		records += len(o.Records)
	}

	report := models.Report{
		Meta: models.ReportMeta{
			RunID:       uuid.NewString(),
			Query:       run.Query,
			PerPlatform: run.PerPlatform,
			Brands:      run.Brands,
			Weights:     run.Weights,
			AllZero:     allZero,
			Sources:     summaries,
		},
		Summary: rows,
		Raw:     totals,
	}

	slog.Info("[Engine] Run complete",
		slog.String("run_id", report.Meta.RunID),
		slog.String("query", run.Query),
		slog.Int("records", records),
		slog.Bool("all_zero", allZero),
		slog.Duration("elapsed", time.Since(start)))

	return report, nil
}
