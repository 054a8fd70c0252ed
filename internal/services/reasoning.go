package services

import (
	"strings"

	"alfredoptarigan/talent-ats/internal/models"
)

var openingSentences = map[models.Verdict]string{
	models.VerdictHighlyRecommended: "This candidate is an excellent match for the position and should be prioritized.",
	models.VerdictRecommended:       "This candidate is a strong match for the position with minor gaps.",
	models.VerdictConsider:          "This candidate is a partial match and may be worth considering with further screening.",
	models.VerdictNotRecommended:    "This candidate does not currently meet the core requirements of the position.",
}

// ReasoningComposer turns the dimension explanations into one paragraph.
type ReasoningComposer struct {
	aggregator *ScoreAggregator
}

func NewReasoningComposer(aggregator *ScoreAggregator) *ReasoningComposer {
	return &ReasoningComposer{aggregator: aggregator}
}

func (r *ReasoningComposer) Compose(overall float64, skills, experience, culturalFit DimensionScore) string {
	parts := []string{
		openingSentences[r.aggregator.Verdict(overall)],
		"Skills analysis: " + skills.Explanation,
		"Experience evaluation: " + experience.Explanation,
		"Cultural fit assessment: " + culturalFit.Explanation,
	}

	if note := placeholderNote(skills, experience, culturalFit); note != "" {
		parts = append(parts, note)
	}

	return strings.Join(parts, " ")
}

func placeholderNote(skills, experience, culturalFit DimensionScore) string {
	var missing []string
	if skills.Source == models.SourceFallback {
		missing = append(missing, "skills")
	}
	if experience.Source == models.SourceFallback {
		missing = append(missing, "experience")
	}
	if culturalFit.Source == models.SourceFallback {
		missing = append(missing, "cultural fit")
	}
	if len(missing) == 0 {
		return ""
	}
	return "Note: the " + strings.Join(missing, ", ") + " score used a placeholder value because the analysis was unavailable."
}
