package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

type stubCompanies struct {
	rows map[uint]*models.Company
	err  error
}

func (s *stubCompanies) Create(ctx context.Context, company *models.Company) error {
	return errors.New("not implemented")
}

func (s *stubCompanies) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	if c, ok := s.rows[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("company not found: %w", repositories.ErrNotFound)
}

func newTenantApp(repo repositories.CompanyRepository) *fiber.App {
	app := fiber.New()
	app.Use(Tenant(repo))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("%d:%s", CompanyID(c), Company(c).Name))
	})
	return app
}

func TestTenantResolvesCompany(t *testing.T) {
	app := newTenantApp(&stubCompanies{rows: map[uint]*models.Company{7: {ID: 7, Name: "Acme"}}})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(CompanyHeader, "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK || string(body) != "7:Acme" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}
}

func TestTenantRejectsRequests(t *testing.T) {
	tests := []struct {
		name   string
		header string
		repo   *stubCompanies
		status int
	}{
		{"missing header", "", &stubCompanies{}, http.StatusBadRequest},
		{"not a number", "acme", &stubCompanies{}, http.StatusBadRequest},
		{"zero", "0", &stubCompanies{}, http.StatusBadRequest},
		{"unknown company", "9", &stubCompanies{}, http.StatusNotFound},
		{"store failure", "9", &stubCompanies{err: errors.New("connection refused")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTenantApp(tt.repo)
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(CompanyHeader, tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestCompanyIDOutsideTenant(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if CompanyID(c) != 0 || Company(c) != nil {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}
