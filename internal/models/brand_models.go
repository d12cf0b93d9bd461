package models

import "math"

// MentionCounters holds mention and sentiment counts for a single brand, either
// for one text unit or accumulated over a whole run.
type MentionCounters struct {
	Mentions int `json:"mentions"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

func (c MentionCounters) Add(other MentionCounters) MentionCounters {
	return MentionCounters{
		Mentions: c.Mentions + other.Mentions,
		Positive: c.Positive + other.Positive,
		Negative: c.Negative + other.Negative,
		Neutral:  c.Neutral + other.Neutral,
	}
}

func (c MentionCounters) IsZero() bool {
	return c == MentionCounters{}
}

// BrandAggregate is the running per-brand total of one analysis run.
type BrandAggregate struct {
	MentionCounters
	Engagement int64 `json:"engagement"`
}

func (a BrandAggregate) Add(other BrandAggregate) BrandAggregate {
	return BrandAggregate{
		MentionCounters: a.MentionCounters.Add(other.MentionCounters),
		Engagement:      AddEngagement(a.Engagement, other.Engagement),
	}
}

// AddEngagement sums two non-negative engagement values, saturating at
// math.MaxInt64 instead of wrapping.
func AddEngagement(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

// ScoreRow is one brand's row of the final report.
type ScoreRow struct {
	Brand            string  `json:"brand"`
	Mentions         int     `json:"mentions"`
	Engagement       int64   `json:"engagement"`
	PositiveMentions int     `json:"positive_mentions"`
	PositiveRate     float64 `json:"positive_rate"`
	SoVScore         float64 `json:"SoV_score"`
	SoPV             float64 `json:"SoPV"`
}
