package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PipelineStage is the position of an application on the hiring board.
type PipelineStage string

const (
	StageApplied   PipelineStage = "applied"
	StageScreening PipelineStage = "screening"
	StageInterview PipelineStage = "interview"
	StageOffer     PipelineStage = "offer"
	StageHired     PipelineStage = "hired"
	StageRejected  PipelineStage = "rejected"
)

// CandidateApplication is one candidate's application to one job.
type CandidateApplication struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID        uint           `gorm:"not null;index" json:"company_id"`
	JobID            uint           `gorm:"not null;index" json:"job_id"`
	FullName         string         `gorm:"type:text;not null" json:"full_name"`
	Email            string         `gorm:"type:text" json:"email"`
	Phone            string         `gorm:"type:text" json:"phone,omitempty"`
	CurrentLocation  string         `gorm:"type:text" json:"current_location,omitempty"`
	Skills           pq.StringArray `gorm:"type:text[]" json:"skills"`
	Experience       string         `gorm:"type:text" json:"experience,omitempty"`
	RemoteWork       bool           `gorm:"not null;default:false" json:"remote_work"`
	ExpectedSalary   string         `gorm:"type:text" json:"expected_salary,omitempty"`
	NoticePeriod     string         `gorm:"type:text" json:"notice_period,omitempty"`
	ResumeDocumentID *uuid.UUID     `gorm:"type:uuid" json:"resume_document_id,omitempty"`
	ResumeText       string         `gorm:"type:text" json:"-"`
	Stage            PipelineStage  `gorm:"type:text;not null;default:'applied'" json:"stage"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (CandidateApplication) TableName() string {
	return "candidate_applications"
}
