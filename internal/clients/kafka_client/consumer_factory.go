package kafka_client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var consumerRegistry = make(map[string]func(context.Context, *kafka.Consumer))

func RegisterConsumer(topic string, consumerFunc func(context.Context, *kafka.Consumer)) {
	consumerRegistry[topic] = consumerFunc
}

// StartConsumer runs the handler registered for cfg.RequestTopic until ctx is
// cancelled.
func StartConsumer(ctx context.Context, cfg KafkaConfig) error {
	consumerFunc, exists := consumerRegistry[cfg.RequestTopic]
	if !exists {
		return fmt.Errorf("[ConsumerFactory] No consumer found for topic: %s", cfg.RequestTopic)
	}

	consumer, err := NewConsumer(cfg)
	if err != nil {
		return fmt.Errorf("[ConsumerFactory] Failed to initialize Kafka consumer: %w", err)
	}
	defer consumer.Close()

	slog.Info("[ConsumerFactory] Starting consumer for topic...", slog.String("topic", cfg.RequestTopic))
	consumerFunc(ctx, consumer)

	return nil
}
