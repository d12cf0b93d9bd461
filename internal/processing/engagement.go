package processing

import (
	"math"
	"strconv"
	"strings"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
)

const (
	ViewWeight    = 1
	LikeWeight    = 25
	CommentWeight = 60

	// WebResultEngagement is credited for a content item without audience
	// metrics, e.g. a search result.
	WebResultEngagement int64 = 1
)

// ScoreEngagement weighs likes and comments above passive views. Negative
// counts are treated as missing; the score saturates at math.MaxInt64.
func ScoreEngagement(m models.EngagementMetrics) int64 {
	var score int64
	score = models.AddEngagement(score, weighted(m.ViewCount, ViewWeight))
	score = models.AddEngagement(score, weighted(m.LikeCount, LikeWeight))
	score = models.AddEngagement(score, weighted(m.CommentCount, CommentWeight))
	return score
}

func weighted(n, weight int64) int64 {
	n = nonNegative(n)
	if n > math.MaxInt64/weight {
		return math.MaxInt64
	}
	return n * weight
}

// ParseEngagementMetrics converts API statistics to metrics. Any field that is
// missing or not a number becomes 0.
func ParseEngagementMetrics(stats models.YouTubeStatistics) models.EngagementMetrics {
	return models.EngagementMetrics{
		ViewCount:    parseCount(stats.ViewCount),
		LikeCount:    parseCount(stats.LikeCount),
		CommentCount: parseCount(stats.CommentCount),
	}
}

// RecordEngagement is the engagement a record contributes to each brand it mentions.
func RecordEngagement(r models.Record) int64 {
	if r.Metrics == nil {
		return WebResultEngagement
	}
	return ScoreEngagement(*r.Metrics)
}

func parseCount(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return nonNegative(n)
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
