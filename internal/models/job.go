package models

import (
	"time"

	"github.com/lib/pq"
)

type WorkType string

const (
	WorkTypeRemote WorkType = "remote"
	WorkTypeHybrid WorkType = "hybrid"
	WorkTypeOnsite WorkType = "onsite"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

type Job struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID       uint           `gorm:"not null;index" json:"company_id"`
	Title           string         `gorm:"type:text;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	City            string         `gorm:"type:text" json:"city"`
	JobType         string         `gorm:"type:text" json:"job_type"`
	WorkType        WorkType       `gorm:"type:text" json:"work_type"`
	RequiredSkills  pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	ExperienceLevel string         `gorm:"type:text" json:"experience_level"`
	SalaryMin       *int64         `json:"salary_min,omitempty"`
	SalaryMax       *int64         `json:"salary_max,omitempty"`
	SalaryCurrency  string         `gorm:"type:text" json:"salary_currency,omitempty"`
	Status          JobStatus      `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}
