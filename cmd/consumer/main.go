package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/config"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/analysis"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients/kafka_client"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/consumers"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/logging"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/sources"
)

const KAFKA_INIT_RETRY_DELAY = 5 * time.Second

func main() {
	env := config.Env()
	config.LoadEnv(env)
	logging.InitLogger(env)

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		err := kafka_client.InitKafkaProducer(cfg.Kafka)
		if err == nil {
			break
		}

		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return
		case <-time.After(KAFKA_INIT_RETRY_DELAY):
		}
	}
	defer kafka_client.CloseKafkaProducer()

	var cache sources.Cache
	if cfg.Valkey.Address != "" {
		vc, err := clients.NewValkeyClient(cfg.Valkey)
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, running without source cache",
				slog.String("error", err.Error()))
		} else {
			defer vc.Close()
			cache = vc
		}
	}

	svc := analysis.NewFromConfig(cfg, cache)
	requestConsumer := consumers.NewAnalysisRequestConsumer(svc, kafka_client.PublishToKafka, cfg.Kafka.ResultsTopic)

	kafka_client.RegisterConsumer(cfg.Kafka.RequestTopic, requestConsumer.Start)

	if err := kafka_client.StartConsumer(ctx, cfg.Kafka); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
