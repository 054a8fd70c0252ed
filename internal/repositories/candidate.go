package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/talent-ats/internal/models"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.CandidateApplication) error
	FindByID(ctx context.Context, companyID, id uint) (*models.CandidateApplication, error)
	ListByJob(ctx context.Context, companyID, jobID uint) ([]models.CandidateApplication, error)
	ListByCompany(ctx context.Context, companyID uint) ([]models.CandidateApplication, error)
	FindByIDs(ctx context.Context, companyID uint, ids []uint) ([]models.CandidateApplication, error)
	UpdateResumeText(ctx context.Context, companyID, id uint, text string) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.CandidateApplication) error {
	if candidate.CompanyID == 0 {
		return ErrTenantRequired
	}
	if err := r.db.WithContext(ctx).Omit("Job").Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate application: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(ctx context.Context, companyID, id uint) (*models.CandidateApplication, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var candidate models.CandidateApplication
	if err := q.Where("id = ?", id).First(&candidate).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("candidate not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) ListByJob(ctx context.Context, companyID, jobID uint) ([]models.CandidateApplication, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var candidates []models.CandidateApplication
	if err := q.Where("job_id = ?", jobID).Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) ListByCompany(ctx context.Context, companyID uint) ([]models.CandidateApplication, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var candidates []models.CandidateApplication
	if err := q.Order("id ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindByIDs(ctx context.Context, companyID uint, ids []uint) ([]models.CandidateApplication, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var candidates []models.CandidateApplication
	if err := q.Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) UpdateResumeText(ctx context.Context, companyID, id uint, text string) error {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return err
	}

	result := q.Model(&models.CandidateApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resume_text": text,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update resume text: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found: %w", ErrNotFound)
	}
	return nil
}
