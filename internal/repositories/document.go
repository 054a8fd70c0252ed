package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/talent-ats/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	FindByID(ctx context.Context, companyID uint, id uuid.UUID) (*models.Document, error)
	Delete(ctx context.Context, companyID uint, id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(ctx context.Context, document *models.Document) error {
	if document.CompanyID == 0 {
		return ErrTenantRequired
	}
	if err := d.db.WithContext(ctx).Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(ctx context.Context, companyID uint, id uuid.UUID) (*models.Document, error) {
	q, err := tenantDB(d.db.WithContext(ctx), companyID)
	if err != nil {
		return nil, err
	}

	var doc models.Document
	if err := q.Where("id = ?", id).First(&doc).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("document not found: %w", ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// Delete implements DocumentRepository.
func (d *documentRepository) Delete(ctx context.Context, companyID uint, id uuid.UUID) error {
	q, err := tenantDB(d.db.WithContext(ctx), companyID)
	if err != nil {
		return err
	}

	if err := q.Where("id = ?", id).Delete(&models.Document{}).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
