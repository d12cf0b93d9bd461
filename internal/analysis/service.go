package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/processing"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/sources"
)

// Service runs one share-of-voice analysis per request: it resolves the run
// configuration, collects every source and hands the records to the engine.
type Service struct {
	defaults models.RunConfig
	engine   *processing.Engine
	sources  []sources.Source
}

func NewService(defaults models.RunConfig, engine *processing.Engine, srcs ...sources.Source) *Service {
	return &Service{defaults: defaults, engine: engine, sources: srcs}
}

func (s *Service) Defaults() models.RunConfig {
	return s.defaults
}

func (s *Service) Analyze(ctx context.Context, req models.AnalyzeRequest) (models.Report, error) {
	run, err := BuildRunConfig(s.defaults, req)
	if err != nil {
		return models.Report{}, err
	}

	slog.Info("[AnalysisService] Starting run",
		slog.String("query", run.Query),
		slog.Int("per_platform", run.PerPlatform),
		slog.String("brands", strings.Join(run.Brands, ",")))

	outcomes := sources.Collect(ctx, run, s.sources...)

	report, err := s.engine.Analyze(ctx, run, outcomes)
	if err != nil {
		return models.Report{}, fmt.Errorf("[AnalysisService] analysis failed: %w", err)
	}
	return report, nil
}

// BuildRunConfig copies the defaults and applies whatever the request sets.
// Brands given explicitly must leave at least one usable name.
func BuildRunConfig(defaults models.RunConfig, req models.AnalyzeRequest) (models.RunConfig, error) {
	run := defaults

	if q := strings.TrimSpace(req.Query); q != "" {
		run.Query = q
	}
	if req.PerPlatform > 0 {
		run.PerPlatform = req.PerPlatform
	}
	if validWeights(req.Weights, len(run.Weights)) {
		copy(run.Weights[:], req.Weights)
	} else if req.Weights != nil {
		slog.Warn("[AnalysisService] Ignoring invalid weights, using defaults",
			slog.Any("weights", req.Weights))
	}

	rawBrands := defaults.Brands
	if req.Brands != nil {
		rawBrands = req.Brands
	}
	brands, err := processing.NormalizeBrands(rawBrands)
	if err != nil {
		return models.RunConfig{}, err
	}
	run.Brands = brands

	return run, nil
}

// validWeights accepts exactly n finite, non-negative weights.
func validWeights(w []float64, n int) bool {
	if len(w) != n {
		return false
	}
	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}
