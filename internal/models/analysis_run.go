package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisRunStatus string

const (
	RunStatusQueued     AnalysisRunStatus = "queued"
	RunStatusProcessing AnalysisRunStatus = "processing"
	RunStatusCompleted  AnalysisRunStatus = "completed"
	RunStatusFailed     AnalysisRunStatus = "failed"
)

// AnalysisRun is a queued request to compute the fit analysis of one application.
type AnalysisRun struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uint              `gorm:"not null;index" json:"company_id"`
	JobID         uint              `gorm:"not null;index" json:"job_id"`
	CandidateID   uint              `gorm:"not null" json:"candidate_id"`
	Refresh       bool              `gorm:"not null;default:false" json:"refresh"`
	Status        AnalysisRunStatus `gorm:"type:text;not null;default:'queued';index" json:"status"`
	FitAnalysisID *uuid.UUID        `gorm:"type:uuid" json:"fit_analysis_id,omitempty"`
	ErrorMessage  *string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (AnalysisRun) TableName() string {
	return "analysis_runs"
}

func (r *AnalysisRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
