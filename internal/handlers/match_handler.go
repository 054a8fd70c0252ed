package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/middleware"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
	"alfredoptarigan/talent-ats/internal/services"
)

// CandidateMatcher is implemented by services.MatchService.
type CandidateMatcher interface {
	MatchCandidates(ctx context.Context, companyID uint, job *models.Job, minScore float64, limit int) ([]models.CandidateMatch, error)
}

type MatchHandler struct {
	jobRepo repositories.JobRepository
	matcher CandidateMatcher
	logger  *zap.Logger
}

func NewMatchHandler(jobRepo repositories.JobRepository, matcher CandidateMatcher, log *zap.Logger) *MatchHandler {
	return &MatchHandler{
		jobRepo: jobRepo,
		matcher: matcher,
		logger:  logger.OrNop(log),
	}
}

// HandleMatch handles GET /jobs/:id/matches?min_score=0.3&limit=10
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	ctx := c.UserContext()
	companyID := middleware.CompanyID(c)

	jobID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	minScore := c.QueryFloat("min_score", services.DefaultMatchMinScore)
	if minScore < 0 || minScore > 1 {
		return errorJSON(c, fiber.StatusBadRequest, "min_score must be between 0 and 1")
	}
	limit := c.QueryInt("limit", services.DefaultMatchLimit)
	if limit <= 0 || limit > 100 {
		return errorJSON(c, fiber.StatusBadRequest, "limit must be between 1 and 100")
	}

	job, err := h.jobRepo.FindByID(ctx, companyID, jobID)
	if err != nil {
		return lookupError(c, err, "Job")
	}

	matches, err := h.matcher.MatchCandidates(ctx, companyID, job, minScore, limit)
	if err != nil {
		h.logger.Error("candidate matching failed", zap.Uint("job_id", job.ID), zap.Error(err))
		return errorJSON(c, fiber.StatusBadGateway, "Candidate matching is unavailable")
	}
	if matches == nil {
		matches = []models.CandidateMatch{}
	}

	return c.JSON(models.MatchResponse{
		JobID:      job.ID,
		MinScore:   minScore,
		Candidates: matches,
	})
}
