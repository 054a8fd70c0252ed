package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/talent-ats/internal/models"
)

type FitAnalysisRepository interface {
	// Find returns the stored analysis for the triple, or ErrNotFound.
	Find(ctx context.Context, candidateID, jobID, companyID uint) (*models.FitAnalysis, error)
	// Upsert inserts the analysis or overwrites the row with the same triple.
	Upsert(ctx context.Context, analysis *models.FitAnalysis) error
	ListByJob(ctx context.Context, companyID, jobID uint) ([]models.FitAnalysis, error)
}

type fitAnalysisRepository struct {
	db *gorm.DB
}

func NewFitAnalysisRepository(db *gorm.DB) FitAnalysisRepository {
	return &fitAnalysisRepository{db: db}
}

var fitAnalysisTriple = []clause.Column{
	{Name: "candidate_id"},
	{Name: "job_id"},
	{Name: "company_id"},
}

var fitAnalysisUpdatable = []string{
	"overall_score",
	"verdict",
	"confidence",
	"skills_match_score",
	"skills_explanation",
	"skills_source",
	"experience_match_score",
	"experience_explanation",
	"experience_source",
	"cultural_fit_score",
	"cultural_fit_explanation",
	"cultural_fit_source",
	"reasoning",
	"strengths",
	"weaknesses",
	"insights_source",
	"ai_model",
	"analyzed_at",
	"updated_at",
}

func (r *fitAnalysisRepository) Find(ctx context.Context, candidateID, jobID, companyID uint) (*models.FitAnalysis, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var analysis models.FitAnalysis
	err = q.Where("candidate_id = ? AND job_id = ?", candidateID, jobID).First(&analysis).Error
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("fit analysis not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find fit analysis: %w", err)
	}
	return &analysis, nil
}

func (r *fitAnalysisRepository) Upsert(ctx context.Context, analysis *models.FitAnalysis) error {
	if analysis.CompanyID == 0 {
		return ErrTenantRequired
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   fitAnalysisTriple,
			DoUpdates: clause.AssignmentColumns(fitAnalysisUpdatable),
		}).Create(analysis).Error; err != nil {
			return err
		}

		// On conflict the stored row keeps its original id and created_at.
		var stored models.FitAnalysis
		if err := tx.Scopes(TenantScope(analysis.CompanyID)).
			Where("candidate_id = ? AND job_id = ?", analysis.CandidateID, analysis.JobID).
			First(&stored).Error; err != nil {
			return err
		}
		*analysis = stored
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert fit analysis: %w", err)
	}
	return nil
}

func (r *fitAnalysisRepository) ListByJob(ctx context.Context, companyID, jobID uint) ([]models.FitAnalysis, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var analyses []models.FitAnalysis
	if err := q.Where("job_id = ?", jobID).Order("overall_score DESC").Find(&analyses).Error; err != nil {
		return nil, fmt.Errorf("failed to list fit analyses: %w", err)
	}
	return analyses, nil
}
