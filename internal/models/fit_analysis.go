package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Verdict string

const (
	VerdictHighlyRecommended Verdict = "highly_recommended"
	VerdictRecommended       Verdict = "recommended"
	VerdictConsider          Verdict = "consider"
	VerdictNotRecommended    Verdict = "not_recommended"
)

// ScoreSource tells whether a dimension value came from the model or is a placeholder.
type ScoreSource string

const (
	SourceModel    ScoreSource = "model"
	SourceFallback ScoreSource = "fallback"
)

// FitAnalysis is the cached verdict on one candidate for one job within one company.
// (CandidateID, JobID, CompanyID) is unique.
type FitAnalysis struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID uint      `gorm:"not null;uniqueIndex:idx_fit_analyses_triple" json:"candidate_id"`
	JobID       uint      `gorm:"not null;uniqueIndex:idx_fit_analyses_triple;index" json:"job_id"`
	CompanyID   uint      `gorm:"not null;uniqueIndex:idx_fit_analyses_triple" json:"company_id"`

	OverallScore float64 `gorm:"not null" json:"overall_score"`
	Verdict      Verdict `gorm:"type:text;not null" json:"verdict"`
	Confidence   int     `gorm:"not null" json:"confidence"`

	SkillsMatchScore       float64     `json:"skills_match_score"`
	SkillsExplanation      string      `gorm:"type:text" json:"skills_explanation"`
	SkillsSource           ScoreSource `gorm:"type:text" json:"skills_source"`
	ExperienceMatchScore   float64     `json:"experience_match_score"`
	ExperienceExplanation  string      `gorm:"type:text" json:"experience_explanation"`
	ExperienceSource       ScoreSource `gorm:"type:text" json:"experience_source"`
	CulturalFitScore       float64     `json:"cultural_fit_score"`
	CulturalFitExplanation string      `gorm:"type:text" json:"cultural_fit_explanation"`
	CulturalFitSource      ScoreSource `gorm:"type:text" json:"cultural_fit_source"`

	Reasoning      string                      `gorm:"type:text" json:"reasoning"`
	Strengths      datatypes.JSONSlice[string] `json:"strengths"`
	Weaknesses     datatypes.JSONSlice[string] `json:"weaknesses"`
	InsightsSource ScoreSource                 `gorm:"type:text" json:"insights_source"`
	AIModel        string                      `gorm:"type:text" json:"ai_model"`
	AnalyzedAt     time.Time                   `gorm:"not null" json:"analyzed_at"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (FitAnalysis) TableName() string {
	return "fit_analyses"
}

func (f *FitAnalysis) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Degraded reports whether any part of the analysis is a fallback placeholder.
func (f *FitAnalysis) Degraded() bool {
	return f.SkillsSource == SourceFallback ||
		f.ExperienceSource == SourceFallback ||
		f.CulturalFitSource == SourceFallback ||
		f.InsightsSource == SourceFallback
}
