package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/talent-ats/internal/middleware"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

type JobHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	fitRepo       repositories.FitAnalysisRepository
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	fitRepo repositories.FitAnalysisRepository,
) *JobHandler {
	return &JobHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		fitRepo:       fitRepo,
	}
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return errorJSON(c, fiber.StatusBadRequest, "title is required")
	}

	switch req.WorkType {
	case "", models.WorkTypeRemote, models.WorkTypeHybrid, models.WorkTypeOnsite:
	default:
		return errorJSON(c, fiber.StatusBadRequest, "work_type must be remote, hybrid or onsite")
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return errorJSON(c, fiber.StatusBadRequest, "salary_min must not exceed salary_max")
	}

	job := &models.Job{
		CompanyID:       middleware.CompanyID(c),
		Title:           title,
		Description:     req.Description,
		City:            strings.TrimSpace(req.City),
		JobType:         strings.TrimSpace(req.JobType),
		WorkType:        req.WorkType,
		RequiredSkills:  models.SplitList(req.RequiredSkills...),
		ExperienceLevel: strings.TrimSpace(req.ExperienceLevel),
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		SalaryCurrency:  strings.TrimSpace(req.SalaryCurrency),
		Status:          models.JobStatusOpen,
	}

	if err := h.jobRepo.Create(c.UserContext(), job); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create job")
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleList handles GET /jobs?status=open
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.List(c.UserContext(), middleware.CompanyID(c), models.JobStatus(c.Query("status")))
	if err != nil {
		return lookupError(c, err, "jobs")
	}
	return c.JSON(fiber.Map{
		"jobs": jobs,
	})
}

// HandleGet handles GET /jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	jobID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	job, err := h.jobRepo.FindByID(c.UserContext(), middleware.CompanyID(c), jobID)
	if err != nil {
		return lookupError(c, err, "Job")
	}
	return c.JSON(job)
}

// HandleListCandidates handles GET /jobs/:id/candidates
func (h *JobHandler) HandleListCandidates(c *fiber.Ctx) error {
	companyID := middleware.CompanyID(c)
	jobID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	if _, err := h.jobRepo.FindByID(c.UserContext(), companyID, jobID); err != nil {
		return lookupError(c, err, "Job")
	}

	candidates, err := h.candidateRepo.ListByJob(c.UserContext(), companyID, jobID)
	if err != nil {
		return lookupError(c, err, "candidates")
	}
	return c.JSON(fiber.Map{
		"job_id":     jobID,
		"candidates": candidates,
	})
}

// HandleListFitAnalyses handles GET /jobs/:id/fit-analyses, best score first.
func (h *JobHandler) HandleListFitAnalyses(c *fiber.Ctx) error {
	companyID := middleware.CompanyID(c)
	jobID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	if _, err := h.jobRepo.FindByID(c.UserContext(), companyID, jobID); err != nil {
		return lookupError(c, err, "Job")
	}

	analyses, err := h.fitRepo.ListByJob(c.UserContext(), companyID, jobID)
	if err != nil {
		return lookupError(c, err, "fit analyses")
	}
	return c.JSON(fiber.Map{
		"job_id":   jobID,
		"analyses": analyses,
	})
}
