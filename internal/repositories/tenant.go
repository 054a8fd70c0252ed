package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrTenantRequired = errors.New("company id is required")
)

// TenantScope restricts a query to rows owned by companyID.
func TenantScope(companyID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// tenantDB returns db limited to companyID, or ErrTenantRequired.
func tenantDB(db *gorm.DB, companyID uint) (*gorm.DB, error) {
	if companyID == 0 {
		return nil, ErrTenantRequired
	}
	return db.Scopes(TenantScope(companyID)), nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
