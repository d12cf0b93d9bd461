package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients/kafka_client/utils"
	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var producer *kafka.Producer

func InitKafkaProducer(cfg KafkaConfig) error {
	slog.Info("[KafkaClient] Initializing Kafka Producer...", slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"transactional.id":                      TRANSACTIONAL_ID,
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(context.Background()); err != nil {
		p.Close()
		return fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	producer = p
	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return nil
}

func CloseKafkaProducer() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if producer != nil {
		if remaining := producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		producer.Close()
		producer = nil
		slog.Info("[KafkaClient] Kafka producer shut down")
	}
}

// PublishToKafka serializes value and produces it to topic under key inside a
// single transaction.
func PublishToKafka(ctx context.Context, topic, key string, value any) error {
	if producer == nil {
		return errors.New("[KafkaClient] Kafka producer has not been initialized")
	}

	data, err := utils.SerializeToJSON(value)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to serialize message: %w", err)
	}

	if err := producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          data,
	}

	for i := 0; i < MAX_RETRIES; i++ {
		if err = producer.Produce(msg, nil); err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		if abortErr := producer.AbortTransaction(ctx); abortErr != nil {
			return fmt.Errorf("[KafkaClient] failed to abort transaction after produce error: %w", errors.Join(err, abortErr))
		}
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	for i := 0; i < MAX_RETRIES; i++ {
		if err = producer.CommitTransaction(ctx); err == nil {
			break
		}
		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) && kafkaErr.TxnRequiresAbort() {
			break
		}
		slog.Warn("[KafkaClient] Failed to commit transaction, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		if abortErr := producer.AbortTransaction(ctx); abortErr != nil {
			slog.Error("[KafkaClient] Failed to abort transaction",
				slog.String("error", abortErr.Error()))
		}
		return fmt.Errorf("[KafkaClient] failed to commit transaction: %w", err)
	}

	slog.Info("[KafkaClient] Published message transactionally",
		slog.String("topic", topic),
		slog.String("key", key),
		slog.Int("bytes", len(data)))

	return nil
}
