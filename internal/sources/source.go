package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"golang.org/x/sync/errgroup"
)

// Source fetches content for a query. Failures are reported through the
// outcome's Reason; a Source never returns an error.
type Source interface {
	Name() string
	Fetch(ctx context.Context, run models.RunConfig) models.SourceOutcome
}

// Collect fetches every source concurrently and returns outcomes in source order.
func Collect(ctx context.Context, run models.RunConfig, srcs ...Source) []models.SourceOutcome {
	outcomes := make([]models.SourceOutcome, len(srcs))
	start := time.Now()

	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			outcomes[i] = src.Fetch(ctx, run)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		if o.Reason != "" {
			slog.Warn("[Collect] Source returned no data",
				slog.String("platform", o.Platform),
				slog.String("reason", o.Reason))
			continue
		}
		slog.Info("[Collect] Source fetched",
			slog.String("platform", o.Platform),
			slog.Int("records", len(o.Records)))
	}
	slog.Info("[Collect] All sources done",
		slog.String("query", run.Query),
		slog.Duration("elapsed", time.Since(start)))

	return outcomes
}

func empty(platform string, reason string) models.SourceOutcome {
	return models.SourceOutcome{Platform: platform, Records: []models.Record{}, Reason: reason}
}
