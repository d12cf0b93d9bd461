package utils

import (
	"encoding/json"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

func SerializeToJSON(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("[KafkaUtils] Failed to serialize JSON",
			slog.String("error", err.Error()))
		return nil, err
	}
	return data, nil
}

func DeserializeFromJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("[KafkaUtils] Failed to deserialize JSON",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// HandleConsumerError logs err along with where it happened. msg is nil when
// the failure occurred before a message was read.
func HandleConsumerError(err error, msg *kafka.Message) {
	if err == nil {
		return
	}
	slog.Error("[KafkaUtils] Kafka Consumer Error", append(MessageAttrs(msg), slog.String("error", err.Error()))...)
}

// MessageAttrs describes a message's position for log lines.
func MessageAttrs(msg *kafka.Message) []any {
	if msg == nil {
		return nil
	}
	topic := ""
	if msg.TopicPartition.Topic != nil {
		topic = *msg.TopicPartition.Topic
	}
	return []any{
		slog.String("topic", topic),
		slog.Int("partition", int(msg.TopicPartition.Partition)),
		slog.Int64("offset", int64(msg.TopicPartition.Offset)),
		slog.String("key", string(msg.Key)),
	}
}
