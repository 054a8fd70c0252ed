package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/middleware"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
	"alfredoptarigan/talent-ats/internal/services"
)

// ResumeIndexer is the part of services.ResumeIndexer the handler needs.
type ResumeIndexer interface {
	IndexResume(ctx context.Context, companyID, candidateID uint, text string) (int, error)
}

type ApplicationHandler struct {
	jobRepo        repositories.JobRepository
	candidateRepo  repositories.CandidateRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	indexer        ResumeIndexer
	maxFileSize    int64
	logger         *zap.Logger
}

func NewApplicationHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	indexer ResumeIndexer,
	maxFileSize int64,
	log *zap.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		jobRepo:        jobRepo,
		candidateRepo:  candidateRepo,
		docRepo:        docRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		indexer:        indexer,
		maxFileSize:    maxFileSize,
		logger:         logger.OrNop(log),
	}
}

// HandleApply handles POST /jobs/:id/applications (multipart, optional "resume" PDF)
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	companyID := middleware.CompanyID(c)

	jobID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	job, err := h.jobRepo.FindByID(ctx, companyID, jobID)
	if err != nil {
		return lookupError(c, err, "Job")
	}
	if job.Status == models.JobStatusClosed {
		return errorJSON(c, fiber.StatusConflict, "Job is closed")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	candidate := &models.CandidateApplication{
		CompanyID:       companyID,
		JobID:           job.ID,
		FullName:        value("full_name"),
		Email:           value("email"),
		Phone:           value("phone"),
		CurrentLocation: value("current_location"),
		Skills:          models.SplitList(form.Value["skills"]...),
		Experience:      value("experience"),
		ExpectedSalary:  value("expected_salary"),
		NoticePeriod:    value("notice_period"),
		Stage:           models.StageApplied,
	}
	if candidate.FullName == "" {
		return errorJSON(c, fiber.StatusBadRequest, "full_name is required")
	}
	if raw := value("remote_work"); raw != "" {
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "remote_work must be true or false")
		}
		candidate.RemoteWork = remote
	}

	var (
		resume *models.UploadResponse
		doc    *models.Document
	)
	if files := form.File["resume"]; len(files) > 0 {
		file := files[0]
		if file.Size > h.maxFileSize {
			return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
		}

		filename, filePath, err := h.storageService.SaveFile(file, companyID, "resume")
		if err != nil {
			if errors.Is(err, services.ErrInvalidFileType) {
				return errorJSON(c, fiber.StatusBadRequest, err.Error())
			}
			return errorJSON(c, fiber.StatusInternalServerError, "failed to save resume file")
		}

		doc = &models.Document{
			CompanyID:        companyID,
			Filename:         filename,
			OriginalFileName: file.Filename,
			FileType:         "resume",
			FilePath:         filePath,
			SizeBytes:        file.Size,
		}
		if err := h.docRepo.Create(ctx, doc); err != nil {
			// Cleanup uploaded file if database insert fails
			_ = h.storageService.DeleteFile(companyID, filename)
			return errorJSON(c, fiber.StatusInternalServerError, "failed to save resume document record")
		}
		candidate.ResumeDocumentID = &doc.ID

		// A resume that cannot be parsed is kept but not indexed.
		if content, err := h.pdfParser.ExtractText(filePath); err != nil {
			h.logger.Warn("resume text extraction failed", zap.String("document_id", doc.ID.String()), zap.Error(err))
		} else {
			candidate.ResumeText = content.Text
		}

		resume = &models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			FileType:     doc.FileType,
		}
	}

	if err := h.candidateRepo.Create(ctx, candidate); err != nil {
		if doc != nil {
			h.discardResume(ctx, doc)
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create application")
	}

	indexed := false
	if candidate.ResumeText != "" && h.indexer != nil {
		if _, err := h.indexer.IndexResume(ctx, companyID, candidate.ID, candidate.ResumeText); err != nil {
			h.logger.Warn("resume indexing failed",
				zap.Uint("company_id", companyID),
				zap.Uint("candidate_id", candidate.ID),
				zap.Error(err),
			)
		} else {
			indexed = true
		}
	}

	return c.Status(fiber.StatusCreated).JSON(models.ApplicationResponse{
		Application: candidate,
		Resume:      resume,
		Indexed:     indexed,
	})
}

// discardResume removes the stored file and document row of an application
// that could not be saved.
func (h *ApplicationHandler) discardResume(ctx context.Context, doc *models.Document) {
	if err := h.docRepo.Delete(ctx, doc.CompanyID, doc.ID); err != nil {
		h.logger.Warn("failed to delete orphaned resume document", zap.String("document_id", doc.ID.String()), zap.Error(err))
	}
	if err := h.storageService.DeleteFile(doc.CompanyID, doc.Filename); err != nil {
		h.logger.Warn("failed to delete orphaned resume file", zap.String("filename", doc.Filename), zap.Error(err))
	}
}

// HandleGetCandidate handles GET /candidates/:id
func (h *ApplicationHandler) HandleGetCandidate(c *fiber.Ctx) error {
	candidateID, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid candidate ID format")
	}

	candidate, err := h.candidateRepo.FindByID(c.UserContext(), middleware.CompanyID(c), candidateID)
	if err != nil {
		return lookupError(c, err, "Candidate")
	}
	return c.JSON(candidate)
}
