package models

const (
	PlatformWeb     = "web"
	PlatformYouTube = "youtube"
)

// EngagementMetrics are the raw audience numbers of one content item.
type EngagementMetrics struct {
	ViewCount    int64 `json:"viewCount"`
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
}

// Record is one content item handed to the engine. Texts[0] is the item's own
// text, any further entries are comments on it. Metrics is nil for content
// that carries no audience numbers (web results).
type Record struct {
	Platform  string             `json:"platform"`
	ContentID string             `json:"content_id"`
	Texts     []string           `json:"texts"`
	Metrics   *EngagementMetrics `json:"metrics,omitempty"`
}

// SourceOutcome is what a source hands back for one query. A failed fetch is an
// empty outcome with a Reason, never an error.
type SourceOutcome struct {
	Platform string   `json:"platform"`
	Records  []Record `json:"records"`
	Reason   string   `json:"reason,omitempty"`
}

func (o SourceOutcome) Summary() SourceSummary {
	return SourceSummary{
		Platform: o.Platform,
		Records:  len(o.Records),
		Reason:   o.Reason,
	}
}
