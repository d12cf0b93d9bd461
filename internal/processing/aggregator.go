package processing

import (
	"sync"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
)

// Aggregates maps a brand to its running totals.
type Aggregates map[string]models.BrandAggregate

// NewAggregates starts every requested brand at zero so brands that are never
// mentioned still show up in the report.
func NewAggregates(brands []string) Aggregates {
	a := make(Aggregates, len(brands))
	for _, brand := range brands {
		a[brand] = models.BrandAggregate{}
	}
	return a
}

// Merge folds one unit's counters into the totals. Engagement is only credited
// to brands the unit actually mentions; brands absent from counts are untouched.
func (a Aggregates) Merge(counts map[string]models.MentionCounters, engagement map[string]int64) {
	for brand, c := range counts {
		agg := a[brand]
		agg.MentionCounters = agg.MentionCounters.Add(c)
		if c.Mentions > 0 {
			agg.Engagement = models.AddEngagement(agg.Engagement, nonNegative(engagement[brand]))
		}
		a[brand] = agg
	}
}

// MergeUnit merges counters where one engagement value applies to the whole unit.
func (a Aggregates) MergeUnit(counts map[string]models.MentionCounters, engagement int64) {
	perBrand := make(map[string]int64, len(counts))
	for brand := range counts {
		perBrand[brand] = engagement
	}
	a.Merge(counts, perBrand)
}

// Combine returns the brand-wise sum of a and other without modifying either.
func (a Aggregates) Combine(other Aggregates) Aggregates {
	out := a.Clone()
	for brand, agg := range other {
		out[brand] = out[brand].Add(agg)
	}
	return out
}

func (a Aggregates) Clone() Aggregates {
	out := make(Aggregates, len(a))
	for brand, agg := range a {
		out[brand] = agg
	}
	return out
}

// Aggregator is the single writer of a run's totals; concurrent producers go
// through its mutex.
type Aggregator struct {
	mu     sync.Mutex
	totals Aggregates
}

func NewAggregator(brands []string) *Aggregator {
	return &Aggregator{totals: NewAggregates(brands)}
}

func (ag *Aggregator) MergeUnit(counts map[string]models.MentionCounters, engagement int64) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.totals.MergeUnit(counts, engagement)
}

func (ag *Aggregator) Snapshot() Aggregates {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.totals.Clone()
}
