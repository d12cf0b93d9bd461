package analysis

import (
	"log/slog"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/config"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/processing"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/sentiment"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/sources"
)

// NewFromConfig builds the production service: web search and YouTube sources
// backed by their API clients, optionally cached, and a VADER-scored engine.
// cache may be nil.
func NewFromConfig(cfg config.AppConfig, cache sources.Cache) *Service {
	srcs := []sources.Source{
		sources.NewWebSearchSource(clients.NewGoogleCSEClient(cfg.CSEAPIKey, cfg.CSECX)),
		sources.NewYouTubeSource(clients.NewYouTubeClient(cfg.YouTubeAPIKey)),
	}

	if cache != nil {
		for i, src := range srcs {
			srcs[i] = sources.NewCachedSource(src, cache, cfg.SourceCacheTTL)
		}
		slog.Info("[AnalysisService] Source cache enabled", slog.Duration("ttl", cfg.SourceCacheTTL))
	}

	detector := processing.NewMentionDetector(sentiment.NewVADERClassifier())
	engine := processing.NewEngine(detector, cfg.AnalysisWorkers)

	return NewService(cfg.Defaults(), engine, srcs...)
}
