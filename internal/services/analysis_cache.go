package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

const DefaultAnalysisTTL = 24 * time.Hour

// AnalysisCache serves stored fit analyses younger than the TTL. Store
// failures are logged and reported as misses.
type AnalysisCache struct {
	repo   repositories.FitAnalysisRepository
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewAnalysisCache(repo repositories.FitAnalysisRepository, ttl time.Duration, log *zap.Logger) *AnalysisCache {
	if ttl <= 0 {
		ttl = DefaultAnalysisTTL
	}
	return &AnalysisCache{
		repo:   repo,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.OrNop(log),
	}
}

// WithClock replaces the time source.
func (c *AnalysisCache) WithClock(now func() time.Time) *AnalysisCache {
	c.now = now
	return c
}

func (c *AnalysisCache) Get(ctx context.Context, candidateID, jobID, companyID uint) (*models.FitAnalysis, bool) {
	analysis, err := c.repo.Find(ctx, candidateID, jobID, companyID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			c.logger.Warn("analysis cache read failed",
				zap.Uint("candidate_id", candidateID),
				zap.Uint("job_id", jobID),
				zap.Uint("company_id", companyID),
				zap.Error(err),
			)
		}
		return nil, false
	}

	if c.now().Sub(analysis.AnalyzedAt) >= c.ttl {
		return nil, false
	}
	return analysis, true
}

// Put overwrites whatever is stored for the analysis triple.
func (c *AnalysisCache) Put(ctx context.Context, analysis *models.FitAnalysis) error {
	if err := c.repo.Upsert(ctx, analysis); err != nil {
		c.logger.Warn("analysis cache write failed",
			zap.Uint("candidate_id", analysis.CandidateID),
			zap.Uint("job_id", analysis.JobID),
			zap.Uint("company_id", analysis.CompanyID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
