package clients

import (
	"errors"
	"time"
)

const (
	MAX_RETRIES     = 5
	INITIAL_BACKOFF = 1 * time.Second
	MAX_BACKOFF     = 32 * time.Second
	REQUEST_TIMEOUT = 20 * time.Second
	USER_AGENT      = "share-of-voice-analyzer/1.0"
)

var ErrMissingAPIKey = errors.New("api key not configured")
