// Package scoring derives ratings and team performance figures from member
// attributes. Everything here is pure arithmetic over in-memory records.
package scoring

import (
	"math"

	"github.com/vbonduro/boxbox/internal/domain"
)

// Metrics are the team performance scores, each in [0, 10] with one decimal.
type Metrics struct {
	Speed       float64 `json:"speed"`
	Reliability float64 `json:"reliability"`
	Strategy    float64 `json:"strategy"`
	Innovation  float64 `json:"innovation"`
	PitCrew     float64 `json:"pitCrew"`
	Overall     float64 `json:"overall"`
}

// Get returns the value of a scored metric.
func (m Metrics) Get(metric Metric) float64 {
	switch metric {
	case MetricSpeed:
		return m.Speed
	case MetricReliability:
		return m.Reliability
	case MetricStrategy:
		return m.Strategy
	case MetricInnovation:
		return m.Innovation
	case MetricPitCrew:
		return m.PitCrew
	default:
		return 0
	}
}

type accumulator struct {
	num, den float64
}

// Aggregate folds the members into team metrics. For every member the
// role's weight table adds weight*value to a metric's numerator and weight to
// its denominator; attributes the member has no rating for are skipped. A
// metric nobody contributed to is 0.
func Aggregate(members []*domain.TeamMember) Metrics {
	acc := make(map[Metric]*accumulator, len(scoredMetrics))
	for _, m := range scoredMetrics {
		acc[m] = &accumulator{}
	}

	for _, member := range members {
		if member == nil {
			continue
		}
		for metric, weights := range weightsFor(member.Role) {
			a := acc[metric]
			for _, w := range weights {
				v, ok := member.Attributes.Get(w.attr)
				if !ok {
					continue
				}
				a.num += float64(v) * w.factor
				a.den += w.factor
			}
		}
	}

	score := func(m Metric) float64 {
		a := acc[m]
		if a.den == 0 {
			return 0
		}
		return clamp(round1(a.num/a.den), 0, 10)
	}

	out := Metrics{
		Speed:       score(MetricSpeed),
		Reliability: score(MetricReliability),
		Strategy:    score(MetricStrategy),
		Innovation:  score(MetricInnovation),
		PitCrew:     score(MetricPitCrew),
	}
	out.Overall = round1((out.Speed + out.Reliability + out.Strategy + out.Innovation + out.PitCrew) / 5)
	return out
}

// Rating is the member's overall rating: the rounded mean of every attribute
// value present, or 0 when there are none.
func Rating(attrs domain.Attributes) int {
	if len(attrs) == 0 {
		return 0
	}
	sum := 0
	for _, v := range attrs {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(attrs))))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
