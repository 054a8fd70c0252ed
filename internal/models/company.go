package models

import "time"

// Company is a tenant. Every job, application and analysis belongs to exactly one.
type Company struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Industry  string    `gorm:"type:text" json:"industry,omitempty"`
	Culture   string    `gorm:"type:text" json:"culture,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
