package consumers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/processing"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	report models.Report
	err    error
	got    []models.AnalyzeRequest
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (models.Report, error) {
	f.got = append(f.got, req)
	return f.report, f.err
}

type published struct {
	topic string
	key   string
	value models.AnalysisResult
}

type recordingPublisher struct {
	messages []published
	err      error
}

func (p *recordingPublisher) publish(ctx context.Context, topic, key string, value any) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{topic: topic, key: key, value: value.(models.AnalysisResult)})
	return nil
}

func TestHandle_PublishesReportKeyedByRunID(t *testing.T) {
	analyzer := &fakeAnalyzer{report: models.Report{Meta: models.ReportMeta{RunID: "run-1", Query: "fan"}}}
	pub := &recordingPublisher{}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "sov-results")

	err := c.Handle(context.Background(), []byte("req-7"), []byte(`{"query":"fan","brands":["Atomberg"]}`))
	require.NoError(t, err)

	require.Len(t, analyzer.got, 1)
	assert.Equal(t, "req-7", analyzer.got[0].RequestID)
	assert.Equal(t, []string{"Atomberg"}, analyzer.got[0].Brands)

	require.Len(t, pub.messages, 1)
	msg := pub.messages[0]
	assert.Equal(t, "sov-results", msg.topic)
	assert.Equal(t, "run-1", msg.key)
	assert.Equal(t, "req-7", msg.value.RequestID)
	require.NotNil(t, msg.value.Report)
	assert.Equal(t, "fan", msg.value.Report.Meta.Query)
	assert.Empty(t, msg.value.Error)
}

func TestHandle_RequestIDFromPayloadWins(t *testing.T) {
	analyzer := &fakeAnalyzer{report: models.Report{Meta: models.ReportMeta{RunID: "run-2"}}}
	pub := &recordingPublisher{}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "out")

	require.NoError(t, c.Handle(context.Background(), []byte("key"), []byte(`{"request_id":"abc"}`)))
	assert.Equal(t, "abc", pub.messages[0].value.RequestID)
}

func TestHandle_GeneratesRequestID(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	pub := &recordingPublisher{}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "out")

	require.NoError(t, c.Handle(context.Background(), nil, []byte(`{}`)))
	assert.NotEmpty(t, analyzer.got[0].RequestID)
}

func TestHandle_MalformedPayloadIsSkipped(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	pub := &recordingPublisher{}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "out")

	err := c.Handle(context.Background(), []byte("k"), []byte(`{not json`))
	assert.NoError(t, err)
	assert.Empty(t, analyzer.got)
	assert.Empty(t, pub.messages)
}

func TestHandle_RejectedRequestPublishesError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: processing.ErrNoBrands}
	pub := &recordingPublisher{}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "out")

	err := c.Handle(context.Background(), []byte("req-9"), []byte(`{"brands":[]}`))
	require.NoError(t, err)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "req-9", pub.messages[0].key)
	assert.Nil(t, pub.messages[0].value.Report)
	assert.Equal(t, processing.ErrNoBrands.Error(), pub.messages[0].value.Error)
}

func TestHandle_CancelledRunIsNotCommitted(t *testing.T) {
	analyzer := &fakeAnalyzer{err: context.Canceled}
	pub := &recordingPublisher{}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "out")

	err := c.Handle(context.Background(), []byte("k"), []byte(`{}`))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pub.messages)
}

func TestHandle_PublishFailureIsReturned(t *testing.T) {
	boom := errors.New("broker gone")
	analyzer := &fakeAnalyzer{report: models.Report{Meta: models.ReportMeta{RunID: "r"}}}
	pub := &recordingPublisher{err: boom}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "out")

	err := c.Handle(context.Background(), []byte("k"), []byte(`{}`))
	assert.ErrorIs(t, err, boom)
}

type flakyPublisher struct {
	failures int
	requests []string
}

func (p *flakyPublisher) publish(ctx context.Context, topic, key string, value any) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	p.requests = append(p.requests, value.(models.AnalysisResult).RequestID)
	return nil
}

// partitionLog hands out messages in offset order and honours rewinds the way
// a seek on a single partition does.
type partitionLog struct {
	messages  []*kafka.Message
	pos       int
	committed []kafka.Offset
	rewinds   int
	rewindErr error
	cancel    context.CancelFunc
}

func newPartitionLog(cancel context.CancelFunc, payloads ...string) *partitionLog {
	topic := "sov-requests"
	l := &partitionLog{cancel: cancel}
	for i, p := range payloads {
		l.messages = append(l.messages, &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: 0, Offset: kafka.Offset(i + 5)},
			Key:            []byte(p),
			Value:          []byte(`{"request_id":"` + p + `"}`),
		})
	}
	return l
}

func (l *partitionLog) next() (*kafka.Message, error) {
	if l.pos >= len(l.messages) {
		l.cancel()
		return nil, context.Canceled
	}
	msg := l.messages[l.pos]
	l.pos++
	return msg, nil
}

func (l *partitionLog) commit(msg *kafka.Message) error {
	l.committed = append(l.committed, msg.TopicPartition.Offset)
	return nil
}

func (l *partitionLog) rewind(msg *kafka.Message) error {
	l.rewinds++
	if l.rewindErr != nil {
		return l.rewindErr
	}
	for i, m := range l.messages {
		if m.TopicPartition.Offset == msg.TopicPartition.Offset {
			l.pos = i
		}
	}
	return nil
}

func TestRun_FailedRequestIsRetriedBeforeLaterOffsetsCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analyzer := &fakeAnalyzer{}
	pub := &flakyPublisher{failures: 2}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "sov-results")
	c.retryDelay = time.Millisecond

	log := newPartitionLog(cancel, "req-5", "req-6")
	c.run(ctx, log.next, log.commit, log.rewind)

	assert.Equal(t, 2, log.rewinds)
	assert.Equal(t, []kafka.Offset{5, 6}, log.committed)
	assert.Equal(t, []string{"req-5", "req-6"}, pub.requests)
}

func TestRun_StopsWhenRewindFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analyzer := &fakeAnalyzer{}
	pub := &flakyPublisher{failures: 1}
	c := NewAnalysisRequestConsumer(analyzer, pub.publish, "sov-results")
	c.retryDelay = time.Millisecond

	log := newPartitionLog(cancel, "req-5", "req-6")
	log.rewindErr = errors.New("partition revoked")
	c.run(ctx, log.next, log.commit, log.rewind)

	assert.Empty(t, log.committed)
	assert.Equal(t, 1, log.pos)
	assert.Empty(t, pub.requests)
}
