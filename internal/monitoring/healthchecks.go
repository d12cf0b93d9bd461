package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15

type HealthCheck func(ctx context.Context) bool

// MonitorHealth runs check once immediately and then every HEALTHCHECK_TIMER
// seconds, storing the result in healthy until ctx is cancelled.
func MonitorHealth(ctx context.Context, name string, check HealthCheck, healthy *atomic.Bool) {
	monitorHealth(ctx, name, check, healthy, time.Second*HEALTHCHECK_TIMER)
}

func monitorHealth(ctx context.Context, name string, check HealthCheck, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe := func() {
		isHealthy := check(ctx)
		if was := healthy.Swap(isHealthy); was != isHealthy {
			if isHealthy {
				slog.Info("[HealthCheck] Dependency recovered", slog.String("name", name))
			} else {
				slog.Warn("[HealthCheck] Dependency is unhealthy", slog.String("name", name))
			}
		}
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
