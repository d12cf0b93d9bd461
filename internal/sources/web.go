package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
)

type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.WebResult, error)
}

// WebSearchSource turns search results into records of "<title>. <snippet>".
type WebSearchSource struct {
	searcher WebSearcher
}

func NewWebSearchSource(searcher WebSearcher) *WebSearchSource {
	return &WebSearchSource{searcher: searcher}
}

func (s *WebSearchSource) Name() string { return models.PlatformWeb }

func (s *WebSearchSource) Fetch(ctx context.Context, run models.RunConfig) models.SourceOutcome {
	results, err := s.searcher.Search(ctx, run.Query, run.PerPlatform)
	if err != nil && len(results) == 0 {
		return empty(s.Name(), err.Error())
	}
	if err != nil {
		slog.Warn("[WebSearchSource] Using partial results",
			slog.Int("count", len(results)),
			slog.String("error", err.Error()))
	}

	records := make([]models.Record, 0, len(results))
	for i, r := range results {
		id := r.Link
		if id == "" {
			id = fmt.Sprintf("web-%d", i)
		}
		records = append(records, models.Record{
			Platform:  models.PlatformWeb,
			ContentID: id,
			Texts:     []string{fmt.Sprintf("%s. %s", r.Title, r.Snippet)},
		})
	}

	return models.SourceOutcome{Platform: s.Name(), Records: records}
}
