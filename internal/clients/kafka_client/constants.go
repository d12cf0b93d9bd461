package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_REQUEST = "sov-requests" // analysis requests from upstream callers
	KAFKA_TOPIC_ANALYSIS_RESULTS = "sov-results"  // finished reports, keyed by run id
)

const (
	MAX_RETRIES      = 5
	RETRY_DELAY      = 2 * time.Second
	POLL_TIMEOUT     = 500 * time.Millisecond
	FLUSH_TIMEOUT_MS = 5000
	SEEK_TIMEOUT_MS  = 5000
	TRANSACTIONAL_ID = "sov-producer-1"
)
