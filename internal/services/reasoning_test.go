package services

import (
	"strings"
	"testing"

	"alfredoptarigan/talent-ats/internal/models"
)

func modelScore(explanation string) DimensionScore {
	return DimensionScore{Score: 0.8, Explanation: explanation, Source: models.SourceModel}
}

func TestComposeIncludesLabeledExplanations(t *testing.T) {
	composer := NewReasoningComposer(NewScoreAggregator(DefaultWeights(), DefaultThresholds()))

	got := composer.Compose(0.82, modelScore("Go matches."), modelScore("Five years."), modelScore("Hybrid works."))

	if !strings.HasPrefix(got, openingSentences[models.VerdictRecommended]) {
		t.Fatalf("expected recommended opening, got %q", got)
	}
	if !containsAll(got,
		"Skills analysis: Go matches.",
		"Experience evaluation: Five years.",
		"Cultural fit assessment: Hybrid works.",
	) {
		t.Fatalf("missing labeled explanation in %q", got)
	}
	if strings.Contains(got, "placeholder") {
		t.Fatalf("unexpected placeholder note in %q", got)
	}
}

func TestComposeOpeningFollowsVerdictBands(t *testing.T) {
	composer := NewReasoningComposer(NewScoreAggregator(DefaultWeights(), DefaultThresholds()))
	s := modelScore("x")

	tests := []struct {
		overall float64
		verdict models.Verdict
	}{
		{0.85, models.VerdictHighlyRecommended},
		{0.70, models.VerdictRecommended},
		{0.50, models.VerdictConsider},
		{0.49, models.VerdictNotRecommended},
	}

	seen := make(map[string]bool)
	for _, tt := range tests {
		got := composer.Compose(tt.overall, s, s, s)
		opening := openingSentences[tt.verdict]
		if !strings.HasPrefix(got, opening) {
			t.Errorf("overall %v: expected opening %q, got %q", tt.overall, opening, got)
		}
		seen[opening] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected four distinct openings, got %d", len(seen))
	}
}

func TestComposeNotesPlaceholderDimensions(t *testing.T) {
	composer := NewReasoningComposer(NewScoreAggregator(DefaultWeights(), DefaultThresholds()))

	got := composer.Compose(0.6, fallbackScore(DimensionSkills), modelScore("ok"), fallbackScore(DimensionCulturalFit))

	if !strings.Contains(got, "Note: the skills, cultural fit score used a placeholder value") {
		t.Fatalf("expected placeholder note naming skills and cultural fit, got %q", got)
	}
}
