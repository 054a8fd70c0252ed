package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/middleware"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
	"alfredoptarigan/talent-ats/internal/services"
)

type CreateAnalysisRunsRequest struct {
	CandidateIDs []uint `json:"candidate_ids"`
	Refresh      bool   `json:"refresh"`
}

type AnalysisRunHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	runRepo       repositories.AnalysisRunRepository
	fitRepo       repositories.FitAnalysisRepository
	worker        services.Worker
	logger        *zap.Logger
}

func NewAnalysisRunHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	runRepo repositories.AnalysisRunRepository,
	fitRepo repositories.FitAnalysisRepository,
	worker services.Worker,
	log *zap.Logger,
) *AnalysisRunHandler {
	return &AnalysisRunHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		runRepo:       runRepo,
		fitRepo:       fitRepo,
		worker:        worker,
		logger:        logger.OrNop(log),
	}
}

// HandleCreate handles POST /jobs/:id/analysis-runs. Without candidate_ids
// every application to the job is scored.
func (h *AnalysisRunHandler) HandleCreate(c *fiber.Ctx) error {
	ctx := c.UserContext()
	companyID := middleware.CompanyID(c)

	jobID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	var req CreateAnalysisRunsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
		}
	}
	if c.QueryBool("refresh") {
		req.Refresh = true
	}

	job, err := h.jobRepo.FindByID(ctx, companyID, jobID)
	if err != nil {
		return lookupError(c, err, "Job")
	}

	var candidates []models.CandidateApplication
	if len(req.CandidateIDs) > 0 {
		candidates, err = h.candidateRepo.FindByIDs(ctx, companyID, req.CandidateIDs)
		if err == nil && len(candidates) != len(uniqueIDs(req.CandidateIDs)) {
			return errorJSON(c, fiber.StatusNotFound, "Candidate not found")
		}
	} else {
		candidates, err = h.candidateRepo.ListByJob(ctx, companyID, job.ID)
	}
	if err != nil {
		return lookupError(c, err, "candidates")
	}
	if len(candidates) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Job has no candidates to analyze")
	}

	runs := make([]models.AnalysisRun, 0, len(candidates))
	for _, candidate := range candidates {
		runs = append(runs, models.AnalysisRun{
			CompanyID:   companyID,
			JobID:       job.ID,
			CandidateID: candidate.ID,
			Refresh:     req.Refresh,
			Status:      models.RunStatusQueued,
		})
	}
	if err := h.runRepo.CreateBatch(ctx, runs); err != nil {
		h.logger.Error("failed to create analysis runs", zap.Uint("job_id", job.ID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create analysis runs")
	}

	resp := models.AnalysisRunsResponse{JobID: job.ID}
	for _, run := range runs {
		// Runs that miss the queue stay queued and are picked up by the poller.
		h.worker.EnqueueRun(services.RunRef{ID: run.ID, CompanyID: run.CompanyID})
		resp.Runs = append(resp.Runs, models.RunReference{
			ID:          run.ID.String(),
			CandidateID: run.CandidateID,
			Status:      string(run.Status),
		})
	}

	h.logger.Info("analysis runs queued", zap.Uint("job_id", job.ID), zap.Int("count", len(runs)))
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// HandleGet handles GET /analysis-runs/:id
func (h *AnalysisRunHandler) HandleGet(c *fiber.Ctx) error {
	ctx := c.UserContext()
	companyID := middleware.CompanyID(c)

	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid analysis run ID format")
	}

	run, err := h.runRepo.FindByID(ctx, companyID, runID)
	if err != nil {
		return lookupError(c, err, "Analysis run")
	}

	resp := models.RunResultResponse{
		ID:           run.ID.String(),
		Status:       string(run.Status),
		ErrorMessage: run.ErrorMessage,
	}
	if run.Status == models.RunStatusCompleted {
		analysis, err := h.fitRepo.Find(ctx, run.CandidateID, run.JobID, run.CompanyID)
		switch {
		case err == nil:
			resp.Result = analysis
		case errors.Is(err, repositories.ErrNotFound):
			h.logger.Warn("completed run has no stored analysis", zap.String("run_id", run.ID.String()))
		default:
			return lookupError(c, err, "fit analysis")
		}
	}

	return c.JSON(resp)
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen
}
