package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

type CompanyHandler struct {
	companyRepo repositories.CompanyRepository
}

func NewCompanyHandler(companyRepo repositories.CompanyRepository) *CompanyHandler {
	return &CompanyHandler{
		companyRepo: companyRepo,
	}
}

// HandleCreate handles POST /companies
func (h *CompanyHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return errorJSON(c, fiber.StatusBadRequest, "name is required")
	}

	company := &models.Company{
		Name:     name,
		Industry: strings.TrimSpace(req.Industry),
		Culture:  strings.TrimSpace(req.Culture),
	}
	if err := h.companyRepo.Create(c.UserContext(), company); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create company")
	}

	return c.Status(fiber.StatusCreated).JSON(company)
}
