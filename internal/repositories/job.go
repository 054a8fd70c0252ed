package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/talent-ats/internal/models"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, companyID, id uint) (*models.Job, error)
	List(ctx context.Context, companyID uint, status models.JobStatus) ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.CompanyID == 0 {
		return ErrTenantRequired
	}
	if err := r.db.WithContext(ctx).Omit("Company").Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindByID loads the job together with its company.
func (r *jobRepository) FindByID(ctx context.Context, companyID, id uint) (*models.Job, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var job models.Job
	if err := q.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("job not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, companyID uint, status models.JobStatus) ([]models.Job, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}
