package processing

import (
	"math"
	"sort"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
)

const (
	ScorePrecision = 6
	RatePrecision  = 3
)

// ComputeShareOfVoice turns run totals into ranked score rows. Rows follow
// brands order before ranking so ties keep that order. The second return value
// reports whether no brand had any mention or engagement.
func ComputeShareOfVoice(brands []string, totals Aggregates, weights models.Weights) ([]models.ScoreRow, bool) {
	var mTotal, pTotal int
	var eTotal int64
	for _, brand := range brands {
		agg := totals[brand]
		mTotal += agg.Mentions
		eTotal = models.AddEngagement(eTotal, agg.Engagement)
		pTotal += agg.Positive
	}

	rows := make([]models.ScoreRow, 0, len(brands))
	allZero := true
	for _, brand := range brands {
		agg := totals[brand]
		m, e, p := agg.Mentions, agg.Engagement, agg.Positive

		mNorm := ratio(float64(m), float64(mTotal))
		eNorm := ratio(float64(e), float64(eTotal))

		var sNorm float64
		switch {
		case pTotal > 0:
			sNorm = float64(p) / float64(pTotal)
		case m > 0:
			// nobody has positives: fall back to the brand's own positive ratio
			sNorm = float64(p) / float64(m)
		}

		sov := weights.Mentions()*mNorm + weights.Engagement()*eNorm + weights.Sentiment()*sNorm

		rows = append(rows, models.ScoreRow{
			Brand:            brand,
			Mentions:         m,
			Engagement:       e,
			PositiveMentions: p,
			PositiveRate:     round(ratio(float64(p), float64(m)), RatePrecision),
			SoVScore:         round(sov, ScorePrecision),
			SoPV:             round(ratio(float64(p), float64(pTotal)), ScorePrecision),
		})

		if m != 0 || e != 0 {
			allZero = false
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SoVScore > rows[j].SoVScore
	})

	return rows, allZero
}

func ratio(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
