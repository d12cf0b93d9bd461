package utils

import (
	"log/slog"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageAttrs(t *testing.T) {
	assert.Nil(t, MessageAttrs(nil))

	topic := "sov-requests"
	attrs := MessageAttrs(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: 2, Offset: 41},
		Key:            []byte("req-1"),
	})

	expected := []slog.Attr{
		slog.String("topic", "sov-requests"),
		slog.Int("partition", 2),
		slog.Int64("offset", 41),
		slog.String("key", "req-1"),
	}
	require.Len(t, attrs, len(expected))
	for i, want := range expected {
		got, ok := attrs[i].(slog.Attr)
		require.True(t, ok)
		assert.True(t, want.Equal(got), "attr %d: got %v, want %v", i, got, want)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	data, err := SerializeToJSON(map[string]int{"a": 1})
	require.NoError(t, err)

	var out map[string]int
	require.NoError(t, DeserializeFromJSON(data, &out))
	assert.Equal(t, 1, out["a"])

	assert.Error(t, DeserializeFromJSON([]byte("{"), &out))
}
