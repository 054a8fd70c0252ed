package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

// RunRef addresses one analysis run inside its tenant.
type RunRef struct {
	ID        uuid.UUID
	CompanyID uint
}

// AnalysisResolver produces the fit analysis for a run.
type AnalysisResolver interface {
	Resolve(
		ctx context.Context,
		candidate *models.CandidateApplication,
		job *models.Job,
		company *models.Company,
		refresh bool,
	) (*models.FitAnalysis, bool, error)
}

type RunProcessor interface {
	Process(ctx context.Context, ref RunRef) error
}

type runProcessor struct {
	runRepo       repositories.AnalysisRunRepository
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	companyRepo   repositories.CompanyRepository
	resolver      AnalysisResolver
	logger        *zap.Logger
}

func NewRunProcessor(
	runRepo repositories.AnalysisRunRepository,
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	resolver AnalysisResolver,
	log *zap.Logger,
) RunProcessor {
	return &runProcessor{
		runRepo:       runRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		companyRepo:   companyRepo,
		resolver:      resolver,
		logger:        logger.OrNop(log),
	}
}

// Process moves a run from queued through processing to completed or failed.
func (p *runProcessor) Process(ctx context.Context, ref RunRef) error {
	log := p.logger.With(zap.String("run_id", ref.ID.String()), zap.Uint("company_id", ref.CompanyID))

	if err := p.runRepo.UpdateStatus(ctx, ref.CompanyID, ref.ID, models.RunStatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	log.Info("🔄 starting analysis run")

	run, err := p.runRepo.FindByID(ctx, ref.CompanyID, ref.ID)
	if err != nil {
		return p.fail(ctx, ref, fmt.Errorf("failed to get analysis run: %w", err))
	}

	company, err := p.companyRepo.FindByID(ctx, run.CompanyID)
	if err != nil {
		return p.fail(ctx, ref, fmt.Errorf("failed to get company: %w", err))
	}

	job, err := p.jobRepo.FindByID(ctx, run.CompanyID, run.JobID)
	if err != nil {
		return p.fail(ctx, ref, fmt.Errorf("failed to get job: %w", err))
	}

	candidate, err := p.candidateRepo.FindByID(ctx, run.CompanyID, run.CandidateID)
	if err != nil {
		return p.fail(ctx, ref, fmt.Errorf("failed to get candidate: %w", err))
	}

	analysis, cached, err := p.resolver.Resolve(ctx, candidate, job, company, run.Refresh)
	if err != nil {
		return p.fail(ctx, ref, fmt.Errorf("failed to store fit analysis: %w", err))
	}

	if err := p.runRepo.UpdateResult(ctx, ref.CompanyID, ref.ID, analysis.ID); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Info("✅ analysis run completed",
		zap.Uint("candidate_id", run.CandidateID),
		zap.Uint("job_id", run.JobID),
		zap.Bool("cached", cached),
		zap.String("verdict", string(analysis.Verdict)),
	)
	return nil
}

func (p *runProcessor) fail(ctx context.Context, ref RunRef, cause error) error {
	if err := p.runRepo.UpdateError(ctx, ref.CompanyID, ref.ID, cause.Error()); err != nil {
		p.logger.Error("failed to record run error",
			zap.String("run_id", ref.ID.String()),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
	return cause
}
