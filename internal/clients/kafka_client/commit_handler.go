package kafka_client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients/kafka_client/utils"
	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type KafkaCommitHandler struct {
	consumer *kafka.Consumer
	ctx      context.Context
}

func NewCommitHandler(ctx context.Context, consumer *kafka.Consumer) *KafkaCommitHandler {
	return &KafkaCommitHandler{
		consumer: consumer,
		ctx:      ctx,
	}
}

func (ch *KafkaCommitHandler) Commit(msg *kafka.Message) error {
	if ch.consumer == nil {
		return errors.New("[KafkaCommitHandler] Kafka consumer has not been initialized")
	}

	var err error
	for i := 0; i < MAX_RETRIES; i++ {
		if ctxErr := ch.ctx.Err(); ctxErr != nil {
			slog.Warn("[KafkaCommitHandler] Context canceled, stopping commit")
			return ctxErr
		}

		if _, err = ch.consumer.CommitMessage(msg); err == nil {
			slog.Debug("[KafkaCommitHandler] Successfully committed offset",
				slog.Int("partition", int(msg.TopicPartition.Partition)),
				slog.Int64("offset", int64(msg.TopicPartition.Offset)))
			return nil
		}

		slog.Warn("[KafkaCommitHandler] Failed to commit offset, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()),
			slog.Int("partition", int(msg.TopicPartition.Partition)),
			slog.Int64("offset", int64(msg.TopicPartition.Offset)))

		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrAllBrokersDown {
			slog.Error("[KafkaCommitHandler] All Kafka brokers are down. Aborting commit")
			return err
		}

		time.Sleep(RETRY_DELAY)
	}

	return errors.Join(errors.New("[KafkaCommitHandler] Failed to commit message after retries"), err)
}

// Rewind moves the consumer's fetch position back to msg so the next read
// returns it again.
func (ch *KafkaCommitHandler) Rewind(msg *kafka.Message) error {
	if ch.consumer == nil {
		return errors.New("[KafkaCommitHandler] Kafka consumer has not been initialized")
	}

	if err := ch.consumer.Seek(msg.TopicPartition, SEEK_TIMEOUT_MS); err != nil {
		return err
	}
	slog.Warn("[KafkaCommitHandler] Rewound to uncommitted message", utils.MessageAttrs(msg)...)
	return nil
}
