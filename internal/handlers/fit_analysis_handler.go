package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/middleware"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

// FitScorer is implemented by services.FitAnalyzer.
type FitScorer interface {
	GetOrAnalyze(ctx context.Context, candidate *models.CandidateApplication, job *models.Job, company *models.Company, refresh bool) (*models.FitAnalysis, bool)
}

type FitAnalysisHandler struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	scorer        FitScorer
	logger        *zap.Logger
}

func NewFitAnalysisHandler(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	scorer FitScorer,
	log *zap.Logger,
) *FitAnalysisHandler {
	return &FitAnalysisHandler{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		scorer:        scorer,
		logger:        logger.OrNop(log),
	}
}

// HandleGet handles GET /candidates/:id/jobs/:jobId/fit-analysis?refresh=true
func (h *FitAnalysisHandler) HandleGet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	company := middleware.Company(c)
	if company == nil {
		return errorJSON(c, fiber.StatusBadRequest, "company is required")
	}

	candidateID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid candidate ID format")
	}
	jobID, ok := paramID(c, "jobId")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	candidate, err := h.candidateRepo.FindByID(ctx, company.ID, candidateID)
	if err != nil {
		return lookupError(c, err, "Candidate")
	}
	job, err := h.jobRepo.FindByID(ctx, company.ID, jobID)
	if err != nil {
		return lookupError(c, err, "Job")
	}

	analysis, cached := h.scorer.GetOrAnalyze(ctx, candidate, job, company, c.QueryBool("refresh"))

	h.logger.Info("fit analysis served",
		zap.Uint("company_id", company.ID),
		zap.Uint("candidate_id", candidate.ID),
		zap.Uint("job_id", job.ID),
		zap.Float64("overall_score", analysis.OverallScore),
		zap.Bool("cached", cached),
	)

	return c.JSON(models.FitAnalysisResponse{
		Analysis: analysis,
		Cached:   cached,
		Degraded: analysis.Degraded(),
	})
}
