package processing

import (
	"strings"
	"sync/atomic"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/sentiment"
)

// stubClassifier labels text by keyword and counts its calls.
type stubClassifier struct {
	calls atomic.Int64
}

func (s *stubClassifier) Classify(text string) sentiment.Result {
	s.calls.Add(1)
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "better"), strings.Contains(lowered, "love"):
		return sentiment.Result{Compound: 0.6, Label: sentiment.Positive}
	case strings.Contains(lowered, "worse"), strings.Contains(lowered, "hate"):
		return sentiment.Result{Compound: -0.6, Label: sentiment.Negative}
	default:
		return sentiment.Result{Compound: 0, Label: sentiment.Neutral}
	}
}

type constClassifier sentiment.Label

func (c constClassifier) Classify(string) sentiment.Result {
	return sentiment.Result{Label: sentiment.Label(c)}
}
