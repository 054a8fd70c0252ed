package services

import (
	"math"

	"alfredoptarigan/talent-ats/internal/config"
	"alfredoptarigan/talent-ats/internal/models"
)

const (
	minConfidence = 60
	maxConfidence = 95
)

type Weights struct {
	Skills      float64
	Experience  float64
	CulturalFit float64
}

// Thresholds are the lower bounds of the verdict bands. A score equal to a
// bound belongs to the higher band.
type Thresholds struct {
	HighlyRecommended float64
	Recommended       float64
	Consider          float64
}

func DefaultWeights() Weights {
	return Weights{Skills: 0.40, Experience: 0.35, CulturalFit: 0.25}
}

func DefaultThresholds() Thresholds {
	return Thresholds{HighlyRecommended: 0.85, Recommended: 0.70, Consider: 0.50}
}

// Aggregate is the arithmetic part of a fit analysis.
type Aggregate struct {
	OverallScore float64
	Verdict      models.Verdict
	Confidence   int
}

type ScoreAggregator struct {
	weights    Weights
	thresholds Thresholds
}

func NewScoreAggregator(weights Weights, thresholds Thresholds) *ScoreAggregator {
	return &ScoreAggregator{weights: weights, thresholds: thresholds}
}

// NewScoreAggregatorFromConfig uses the configured weights and bands.
func NewScoreAggregatorFromConfig(cfg config.ScoringConfig) *ScoreAggregator {
	return NewScoreAggregator(
		Weights{
			Skills:      cfg.SkillsWeight,
			Experience:  cfg.ExperienceWeight,
			CulturalFit: cfg.CulturalFitWeight,
		},
		Thresholds{
			HighlyRecommended: cfg.HighlyRecommendedMinScore,
			Recommended:       cfg.RecommendedMinScore,
			Consider:          cfg.ConsiderMinScore,
		},
	)
}

func (a *ScoreAggregator) Aggregate(skills, experience, culturalFit float64) Aggregate {
	overall := a.OverallScore(skills, experience, culturalFit)
	return Aggregate{
		OverallScore: overall,
		Verdict:      a.Verdict(overall),
		Confidence:   Confidence(skills, experience, culturalFit),
	}
}

// OverallScore is the weighted sum rounded to two decimals.
func (a *ScoreAggregator) OverallScore(skills, experience, culturalFit float64) float64 {
	// Explicit conversions keep the products from being fused (FMA).
	sum := float64(a.weights.Skills*skills) +
		float64(a.weights.Experience*experience) +
		float64(a.weights.CulturalFit*culturalFit)
	return round2(sum)
}

func (a *ScoreAggregator) Verdict(overall float64) models.Verdict {
	switch {
	case overall >= a.thresholds.HighlyRecommended:
		return models.VerdictHighlyRecommended
	case overall >= a.thresholds.Recommended:
		return models.VerdictRecommended
	case overall >= a.thresholds.Consider:
		return models.VerdictConsider
	default:
		return models.VerdictNotRecommended
	}
}

// Confidence rewards a high mean and agreement between the three scores.
// The result is always within [60, 95].
func Confidence(scores ...float64) int {
	if len(scores) == 0 {
		return minConfidence
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	sigma := math.Sqrt(variance / float64(len(scores)))

	consistency := math.Max(0, 1-2*sigma)
	raw := int(math.Round(100 * (float64(0.7*mean) + float64(0.3*consistency))))

	if raw < minConfidence {
		return minConfidence
	}
	if raw > maxConfidence {
		return maxConfidence
	}
	return raw
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
