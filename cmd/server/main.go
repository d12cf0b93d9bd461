package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/config"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/analysis"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/logging"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/monitoring"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/server"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/sources"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

func main() {
	env := config.Env()
	config.LoadEnv(env)
	logging.InitLogger(env)

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache sources.Cache
	var cacheHealthy *atomic.Bool
	if cfg.Valkey.Address != "" {
		vc, err := clients.NewValkeyClient(cfg.Valkey)
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, running without source cache",
				slog.String("error", err.Error()))
		} else {
			defer vc.Close()
			cache = vc
			cacheHealthy = &atomic.Bool{}
			cacheHealthy.Store(true)
			go monitoring.MonitorHealth(ctx, "valkey", vc.Ping, cacheHealthy)
		}
	}

	svc := analysis.NewFromConfig(cfg, cache)
	srv := server.NewServer(cfg.Server, svc, cacheHealthy)

	go func() {
		slog.Info("[Main] HTTP server listening", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] HTTP server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
