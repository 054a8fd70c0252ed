package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/talent-ats/internal/models"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id uint) (*models.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	if id == 0 {
		return nil, ErrTenantRequired
	}

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("company not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}
