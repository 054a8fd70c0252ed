package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/talent-ats/internal/models"
)

type AnalysisRunRepository interface {
	Create(ctx context.Context, run *models.AnalysisRun) error
	CreateBatch(ctx context.Context, runs []models.AnalysisRun) error
	FindByID(ctx context.Context, companyID uint, id uuid.UUID) (*models.AnalysisRun, error)
	UpdateStatus(ctx context.Context, companyID uint, id uuid.UUID, status models.AnalysisRunStatus) error
	UpdateResult(ctx context.Context, companyID uint, id uuid.UUID, fitAnalysisID uuid.UUID) error
	UpdateError(ctx context.Context, companyID uint, id uuid.UUID, errorMsg string) error
	// FindQueued is not tenant scoped; only the background worker uses it.
	FindQueued(ctx context.Context, limit int) ([]models.AnalysisRun, error)
}

type analysisRunRepository struct {
	db *gorm.DB
}

func NewAnalysisRunRepository(db *gorm.DB) AnalysisRunRepository {
	return &analysisRunRepository{db: db}
}

func (r *analysisRunRepository) Create(ctx context.Context, run *models.AnalysisRun) error {
	if run.CompanyID == 0 {
		return ErrTenantRequired
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create analysis run: %w", err)
	}
	return nil
}

func (r *analysisRunRepository) CreateBatch(ctx context.Context, runs []models.AnalysisRun) error {
	if len(runs) == 0 {
		return nil
	}
	for i := range runs {
		if runs[i].CompanyID == 0 {
			return ErrTenantRequired
		}
	}
	if err := r.db.WithContext(ctx).Create(&runs).Error; err != nil {
		return fmt.Errorf("failed to create analysis runs: %w", err)
	}
	return nil
}

func (r *analysisRunRepository) FindByID(ctx context.Context, companyID uint, id uuid.UUID) (*models.AnalysisRun, error) {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var run models.AnalysisRun
	if err := q.Where("id = ?", id).First(&run).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("analysis run not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis run: %w", err)
	}
	return &run, nil
}

func (r *analysisRunRepository) UpdateStatus(ctx context.Context, companyID uint, id uuid.UUID, status models.AnalysisRunStatus) error {
	return r.update(ctx, companyID, id, map[string]interface{}{
		"status": status,
	}, "status")
}

func (r *analysisRunRepository) UpdateResult(ctx context.Context, companyID uint, id uuid.UUID, fitAnalysisID uuid.UUID) error {
	return r.update(ctx, companyID, id, map[string]interface{}{
		"status":          models.RunStatusCompleted,
		"fit_analysis_id": fitAnalysisID,
		"error_message":   nil,
	}, "result")
}

func (r *analysisRunRepository) UpdateError(ctx context.Context, companyID uint, id uuid.UUID, errorMsg string) error {
	return r.update(ctx, companyID, id, map[string]interface{}{
		"status":        models.RunStatusFailed,
		"error_message": errorMsg,
	}, "error")
}

func (r *analysisRunRepository) update(ctx context.Context, companyID uint, id uuid.UUID, updates map[string]interface{}, what string) error {
	q, err := tenantDB(r.db.WithContext(ctx), companyID)
	if err != nil {
		return err
	}
	updates["updated_at"] = time.Now()

	result := q.Model(&models.AnalysisRun{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis run not found: %w", ErrNotFound)
	}

	return nil
}

func (r *analysisRunRepository) FindQueued(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	var runs []models.AnalysisRun
	err := r.db.WithContext(ctx).
		Where("status = ?", models.RunStatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find queued runs: %w", err)
	}

	return runs, nil
}
