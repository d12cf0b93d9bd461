package models

// Weights is the [mentions, engagement, sentiment] weight vector of a run.
type Weights [3]float64

var DefaultWeights = Weights{0.4, 0.4, 0.2}

func (w Weights) Mentions() float64   { return w[0] }
func (w Weights) Engagement() float64 { return w[1] }
func (w Weights) Sentiment() float64  { return w[2] }

// RunConfig is everything one analysis run needs. It is copied per run so
// concurrent runs with different brands or weights never share state.
type RunConfig struct {
	Query               string   `json:"query"`
	Brands              []string `json:"brands"`
	Weights             Weights  `json:"weights"`
	PerPlatform         int      `json:"per_platform"`
	MaxCommentsPerVideo int      `json:"max_comments_per_video"`
}

// AnalyzeRequest is the payload accepted over HTTP and Kafka. Omitted fields
// fall back to the process defaults.
type AnalyzeRequest struct {
	RequestID   string    `json:"request_id,omitempty"`
	Query       string    `json:"query,omitempty"`
	PerPlatform int       `json:"per_platform,omitempty"`
	Brands      []string  `json:"brands,omitempty"`
	Weights     []float64 `json:"weights,omitempty"`
}

type SourceSummary struct {
	Platform string `json:"platform"`
	Records  int    `json:"records"`
	Reason   string `json:"reason,omitempty"`
}

type ReportMeta struct {
	RunID       string          `json:"run_id"`
	Query       string          `json:"query"`
	PerPlatform int             `json:"per_platform"`
	Brands      []string        `json:"brands"`
	Weights     Weights         `json:"weights"`
	AllZero     bool            `json:"all_zero"`
	Sources     []SourceSummary `json:"sources"`
}

type Report struct {
	Meta    ReportMeta                `json:"meta"`
	Summary []ScoreRow                `json:"summary"`
	Raw     map[string]BrandAggregate `json:"raw"`
}

// AnalysisResult is what the Kafka consumer publishes for each request: either
// a report or the reason the request was rejected.
type AnalysisResult struct {
	RequestID string  `json:"request_id,omitempty"`
	Report    *Report `json:"report,omitempty"`
	Error     string  `json:"error,omitempty"`
}
