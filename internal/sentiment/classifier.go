package sentiment

// Label is the three-way sentiment of a text unit.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Compound score cut-offs. A score on a threshold takes the polar label.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

type Result struct {
	Compound float64 `json:"compound"`
	Label    Label   `json:"label"`
}

// PolarityScorer returns a compound polarity in [-1, 1] for a piece of text.
type PolarityScorer interface {
	Compound(text string) float64
}

type Classifier struct {
	scorer PolarityScorer
}

func NewClassifier(scorer PolarityScorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// NewVADERClassifier returns a classifier backed by the VADER lexicon.
func NewVADERClassifier() *Classifier {
	return NewClassifier(NewVADERScorer())
}

// Classify labels text. Empty text is neutral and never reaches the scorer.
func (c *Classifier) Classify(text string) Result {
	if text == "" {
		return Result{Compound: 0, Label: Neutral}
	}

	compound := clamp(c.scorer.Compound(text))
	return Result{Compound: compound, Label: LabelFor(compound)}
}

func LabelFor(compound float64) Label {
	switch {
	case compound >= PositiveThreshold:
		return Positive
	case compound <= NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
