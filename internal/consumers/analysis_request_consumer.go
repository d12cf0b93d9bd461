package consumers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients/kafka_client"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/clients/kafka_client/utils"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
)

type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (models.Report, error)
}

// PublishFunc matches kafka_client.PublishToKafka.
type PublishFunc func(ctx context.Context, topic, key string, value any) error

type AnalysisRequestConsumer struct {
	analyzer     Analyzer
	publish      PublishFunc
	resultsTopic string
	retryDelay   time.Duration
}

func NewAnalysisRequestConsumer(analyzer Analyzer, publish PublishFunc, resultsTopic string) *AnalysisRequestConsumer {
	return &AnalysisRequestConsumer{
		analyzer:     analyzer,
		publish:      publish,
		resultsTopic: resultsTopic,
		retryDelay:   kafka_client.RETRY_DELAY,
	}
}

// Start reads requests until ctx is cancelled. A request's offset is committed
// only once its result has been published, so a crash mid-run replays it.
func (c *AnalysisRequestConsumer) Start(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	c.run(ctx, iterator.Next, committer.Commit, committer.Rewind)
}

// run is the consume loop. A request that fails is rewound and retried before
// anything after it is read, since committing a later offset would skip it.
// If the rewind itself fails the loop stops so a restart resumes from the
// last committed offset.
func (c *AnalysisRequestConsumer) run(
	ctx context.Context,
	next func() (*kafka.Message, error),
	commit func(*kafka.Message) error,
	rewind func(*kafka.Message) error,
) {
	for {
		if ctx.Err() != nil {
			slog.Info("[AnalysisRequestConsumer] Shutting down")
			return
		}

		msg, err := next()
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			utils.HandleConsumerError(err, nil)
			continue
		}

		if err := c.Handle(ctx, msg.Key, msg.Value); err != nil {
			utils.HandleConsumerError(err, msg)
			if ctx.Err() != nil {
				continue
			}
			if rewindErr := rewind(msg); rewindErr != nil {
				slog.Error("[AnalysisRequestConsumer] Cannot rewind to failed request, stopping",
					slog.Int64("offset", int64(msg.TopicPartition.Offset)),
					slog.String("error", rewindErr.Error()))
				return
			}
			select {
			case <-ctx.Done():
			case <-time.After(c.retryDelay):
			}
			continue
		}

		if err := commit(msg); err != nil {
			slog.Warn("[AnalysisRequestConsumer] Failed to commit offset",
				slog.String("error", err.Error()))
		}
	}
}

// Handle runs one request and publishes its result. It returns an error only
// when the message should not be committed.
func (c *AnalysisRequestConsumer) Handle(ctx context.Context, key, value []byte) error {
	var req models.AnalyzeRequest
	if err := utils.DeserializeFromJSON(value, &req); err != nil {
		slog.Warn("[AnalysisRequestConsumer] Skipping malformed request",
			slog.String("key", string(key)))
		return nil
	}

	if req.RequestID == "" {
		req.RequestID = string(key)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	report, err := c.analyzer.Analyze(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		slog.Warn("[AnalysisRequestConsumer] Request rejected",
			slog.String("request_id", req.RequestID),
			slog.String("error", err.Error()))
		return c.publish(ctx, c.resultsTopic, req.RequestID, models.AnalysisResult{
			RequestID: req.RequestID,
			Error:     err.Error(),
		})
	}

	return c.publish(ctx, c.resultsTopic, report.Meta.RunID, models.AnalysisResult{
		RequestID: req.RequestID,
		Report:    &report,
	})
}
