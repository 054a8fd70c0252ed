package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

const (
	CompanyHeader = "X-Company-ID"
	companyKey    = "company"
)

// Tenant resolves the company named by the X-Company-ID header and stores
// it for the handlers. Requests without a known company are rejected.
func Tenant(companies repositories.CompanyRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(CompanyHeader)
		if raw == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": CompanyHeader + " header is required",
			})
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid " + CompanyHeader + " header",
			})
		}

		company, err := companies.FindByID(c.UserContext(), uint(id))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Company not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve company",
			})
		}

		c.Locals(companyKey, company)
		return c.Next()
	}
}

// Company returns the tenant stored by Tenant, or nil outside it.
func Company(c *fiber.Ctx) *models.Company {
	company, _ := c.Locals(companyKey).(*models.Company)
	return company
}

// CompanyID returns the tenant id, or 0 outside Tenant.
func CompanyID(c *fiber.Ctx) uint {
	if company := Company(c); company != nil {
		return company.ID
	}
	return 0
}
