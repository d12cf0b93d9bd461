package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/processing"
)

const MAX_BODY_BYTES = 1 << 20

type Analyzer interface {
	Defaults() models.RunConfig
	Analyze(ctx context.Context, req models.AnalyzeRequest) (models.Report, error)
}

type AnalysisHandler struct {
	analyzer     Analyzer
	cacheHealthy *atomic.Bool
}

func NewAnalysisHandler(analyzer Analyzer, cacheHealthy *atomic.Bool) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, cacheHealthy: cacheHealthy}
}

type defaultsResponse struct {
	Query       string         `json:"query"`
	Brands      []string       `json:"brands"`
	PerPlatform int            `json:"per_platform"`
	Weights     models.Weights `json:"weights"`
}

// GetDefaults describes what an empty analyze request would run with.
func (h *AnalysisHandler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	d := h.analyzer.Defaults()
	respondWithJSON(w, http.StatusOK, defaultsResponse{
		Query:       d.Query,
		Brands:      d.Brands,
		PerPlatform: d.PerPlatform,
		Weights:     d.Weights,
	})
}

func (h *AnalysisHandler) Health(w http.ResponseWriter, r *http.Request) {
	cache := "disabled"
	if h.cacheHealthy != nil {
		cache = "down"
		if h.cacheHealthy.Load() {
			cache = "up"
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "cache": cache})
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.RequestID == "" {
		req.RequestID = middleware.GetReqID(r.Context())
	}

	report, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, processing.ErrNoBrands):
			respondWithError(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			respondWithError(w, http.StatusGatewayTimeout, "Analysis timed out", err)
		default:
			respondWithError(w, http.StatusInternalServerError, "Analysis failed", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("[Server] Failed to marshal response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		attrs := []any{slog.Int("code", code), slog.String("error", err.Error())}
		if code >= 500 {
			slog.Error("[Server] "+message, attrs...)
		} else {
			slog.Warn("[Server] "+message, attrs...)
		}
	}

	respondWithJSON(w, code, map[string]string{"error": message})
}
