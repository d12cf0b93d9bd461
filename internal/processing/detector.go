package processing

import (
	"strings"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/sentiment"
)

type SentimentClassifier interface {
	Classify(text string) sentiment.Result
}

// MentionDetector finds brand names in text and labels each hit with the
// sentiment of the whole text.
type MentionDetector struct {
	classifier SentimentClassifier
}

func NewMentionDetector(classifier SentimentClassifier) *MentionDetector {
	return &MentionDetector{classifier: classifier}
}

// Detect returns counters for every brand. A brand is mentioned when its name
// appears anywhere in the text, case-insensitively; repeats count once.
func (d *MentionDetector) Detect(text string, brands []string) map[string]models.MentionCounters {
	out := make(map[string]models.MentionCounters, len(brands))
	for _, brand := range brands {
		out[brand] = models.MentionCounters{}
	}
	if text == "" {
		return out
	}

	lowered := strings.ToLower(text)
	for _, brand := range brands {
		if brand == "" || !strings.Contains(lowered, strings.ToLower(brand)) {
			continue
		}

		// one classifier call per matched brand, always on the full text
		res := d.classifier.Classify(text)
		out[brand] = countLabel(out[brand], res.Label)
	}

	return out
}

// DetectRecord sums detection over a record's own text and its comments.
func (d *MentionDetector) DetectRecord(record models.Record, brands []string) map[string]models.MentionCounters {
	total := make(map[string]models.MentionCounters, len(brands))
	for _, brand := range brands {
		total[brand] = models.MentionCounters{}
	}

	for _, text := range record.Texts {
		for brand, c := range d.Detect(text, brands) {
			total[brand] = total[brand].Add(c)
		}
	}
	return total
}

func countLabel(c models.MentionCounters, label sentiment.Label) models.MentionCounters {
	c.Mentions++
	switch label {
	case sentiment.Positive:
		c.Positive++
	case sentiment.Negative:
		c.Negative++
	default:
		c.Neutral++
	}
	return c
}
