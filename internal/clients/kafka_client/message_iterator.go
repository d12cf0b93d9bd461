package kafka_client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type KafkaMessageIterator struct {
	consumer *kafka.Consumer
	ctx      context.Context
}

func NewKafkaMessageIterator(ctx context.Context, consumer *kafka.Consumer) *KafkaMessageIterator {
	return &KafkaMessageIterator{
		consumer: consumer,
		ctx:      ctx,
	}
}

// Next blocks until a message arrives or the context is cancelled. Poll
// timeouts are not counted as failures.
func (it *KafkaMessageIterator) Next() (*kafka.Message, error) {
	if it.consumer == nil {
		return nil, errors.New("[KafkaIterator] Kafka consumer has not been initialized")
	}

	failures := 0
	for failures < MAX_RETRIES {
		if err := it.ctx.Err(); err != nil {
			slog.Warn("[KafkaIterator] Context cancelled, stopping iterator")
			return nil, err
		}

		msg, err := it.consumer.ReadMessage(POLL_TIMEOUT)
		if err == nil {
			return msg, nil
		}

		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) {
			switch kafkaErr.Code() {
			case kafka.ErrTimedOut:
				continue
			case kafka.ErrAllBrokersDown:
				slog.Error("[KafkaIterator] All Kafka brokers are down. Aborting")
				return nil, err
			}
		}

		failures++
		slog.Warn("[KafkaIterator] Failed to read message, retrying...",
			slog.Int("attempt", failures),
			slog.Int("max_retries", MAX_RETRIES),
			slog.String("error", err.Error()))

		select {
		case <-it.ctx.Done():
			return nil, it.ctx.Err()
		case <-time.After(RETRY_DELAY):
		}
	}
	return nil, errors.New("[KafkaIterator] Failed to read message after retries")
}
