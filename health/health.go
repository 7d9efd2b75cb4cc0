package health

import (
	"errors"
	"fmt"
)

// Tier is the display tier derived from a node's health score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierPoor      Tier = "poor"
)

var (
	ErrInvalidScore      = errors.New("invalid health score")
	ErrInvalidThresholds = errors.New("invalid health thresholds")
)

// Thresholds holds the lower bound of each tier. Poor is a floor label only:
// every score below Good classifies as poor regardless of its value.
type Thresholds struct {
	Excellent int `json:"excellent" mapstructure:"excellent"`
	Good      int `json:"good" mapstructure:"good"`
	Poor      int `json:"poor" mapstructure:"poor"`
}

// DefaultThresholds is the table used by Classify.
var DefaultThresholds = Thresholds{Excellent: 90, Good: 70, Poor: 50}

// Classify maps score to a tier using DefaultThresholds.
func Classify(score int) Tier {
	return DefaultThresholds.Classify(score)
}

// Classify maps score to a tier. A score equal to a threshold belongs to the
// higher tier.
func (t Thresholds) Classify(score int) Tier {
	if score >= t.Excellent {
		return TierExcellent
	}
	if score >= t.Good {
		return TierGood
	}
	return TierPoor
}

// Validate checks the cut points are ordered and inside the score range.
func (t Thresholds) Validate() error {
	if t.Good < 0 || t.Excellent > 100 {
		return fmt.Errorf("%w: cut points must lie in [0, 100], got good=%d excellent=%d", ErrInvalidThresholds, t.Good, t.Excellent)
	}
	if t.Excellent <= t.Good {
		return fmt.Errorf("%w: excellent (%d) must be greater than good (%d)", ErrInvalidThresholds, t.Excellent, t.Good)
	}
	return nil
}

// ValidateScore checks score is within [0, 100].
func ValidateScore(score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: %d out of range [0, 100]", ErrInvalidScore, score)
	}
	return nil
}

// Summary aggregates the health of a set of nodes.
type Summary struct {
	Total        int          `json:"total"`
	AverageScore float64      `json:"average_score"`
	Tiers        map[Tier]int `json:"tiers"`
}

// Summarize classifies each score and averages them. An empty input yields
// a zero average.
func (t Thresholds) Summarize(scores []int) Summary {
	s := Summary{
		Total: len(scores),
		Tiers: map[Tier]int{TierExcellent: 0, TierGood: 0, TierPoor: 0},
	}
	if len(scores) == 0 {
		return s
	}

	sum := 0
	for _, score := range scores {
		sum += score
		s.Tiers[t.Classify(score)]++
	}
	s.AverageScore = float64(sum) / float64(len(scores))
	return s
}
