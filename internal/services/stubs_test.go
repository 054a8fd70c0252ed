package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

type stubResponse struct {
	text string
	err  error
}

// stubGenerator answers by request purpose, e.g. "skills_analysis".
type stubGenerator struct {
	mu        sync.Mutex
	responses map[string]stubResponse
	requests  []GenerationRequest
}

func newStubGenerator() *stubGenerator {
	return &stubGenerator{responses: make(map[string]stubResponse)}
}

func (s *stubGenerator) respond(purpose, text string) *stubGenerator {
	s.responses[purpose] = stubResponse{text: text}
	return s
}

func (s *stubGenerator) fail(purpose string, err error) *stubGenerator {
	s.responses[purpose] = stubResponse{err: err}
	return s
}

func (s *stubGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	res, ok := s.responses[req.Purpose]
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("unexpected purpose %q", req.Purpose)
	}
	return res.text, res.err
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *stubGenerator) request(purpose string) (GenerationRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.Purpose == purpose {
			return r, true
		}
	}
	return GenerationRequest{}, false
}

// healthyGenerator answers every analyzer with valid JSON.
func healthyGenerator() *stubGenerator {
	return newStubGenerator().
		respond("skills_analysis", `{"score": 0.9, "explanation": "Strong Go and PostgreSQL background."}`).
		respond("experience_analysis", `{"score": 0.8, "explanation": "Five years matches the senior level."}`).
		respond("cultural_fit_analysis", `{"score": 0.7, "explanation": "Remote preference fits the hybrid setup."}`).
		respond("strengths_weaknesses_analysis", `{"strengths": ["Go", "SQL", "Mentoring"], "weaknesses": ["No Kubernetes", "Limited frontend"]}`)
}

type fitKey struct {
	candidateID, jobID, companyID uint
}

type memoryFitRepo struct {
	mu      sync.Mutex
	rows    map[fitKey]models.FitAnalysis
	findErr error
	saveErr error
}

func newMemoryFitRepo() *memoryFitRepo {
	return &memoryFitRepo{rows: make(map[fitKey]models.FitAnalysis)}
}

func (m *memoryFitRepo) Find(ctx context.Context, candidateID, jobID, companyID uint) (*models.FitAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	row, ok := m.rows[fitKey{candidateID, jobID, companyID}]
	if !ok {
		return nil, fmt.Errorf("fit analysis not found: %w", repositories.ErrNotFound)
	}
	return &row, nil
}

func (m *memoryFitRepo) Upsert(ctx context.Context, analysis *models.FitAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if analysis.CompanyID == 0 {
		return repositories.ErrTenantRequired
	}
	key := fitKey{analysis.CandidateID, analysis.JobID, analysis.CompanyID}
	if existing, ok := m.rows[key]; ok {
		analysis.ID = existing.ID
	} else if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	m.rows[key] = *analysis
	return nil
}

func (m *memoryFitRepo) ListByJob(ctx context.Context, companyID, jobID uint) ([]models.FitAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FitAnalysis
	for k, row := range m.rows {
		if k.companyID == companyID && k.jobID == jobID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryFitRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

var errUnavailable = errors.New("model unavailable")

func sampleCompany() *models.Company {
	return &models.Company{ID: 1, Name: "Acme", Industry: "Software", Culture: "Async, remote friendly"}
}

func sampleJob() *models.Job {
	low, high := int64(90000), int64(120000)
	return &models.Job{
		ID:              10,
		CompanyID:       1,
		Title:           "Senior Backend Engineer",
		City:            "Berlin",
		JobType:         "full_time",
		WorkType:        models.WorkTypeHybrid,
		RequiredSkills:  []string{"Go", "PostgreSQL", "Kubernetes"},
		ExperienceLevel: "Senior (5+ years)",
		SalaryMin:       &low,
		SalaryMax:       &high,
		SalaryCurrency:  "EUR",
	}
}

func sampleCandidate() *models.CandidateApplication {
	return &models.CandidateApplication{
		ID:              5,
		CompanyID:       1,
		JobID:           10,
		FullName:        "Dana Smith",
		Email:           "dana@example.com",
		CurrentLocation: "Hamburg",
		Skills:          []string{"Go", "PostgreSQL", "gRPC"},
		Experience:      "5 years",
		RemoteWork:      true,
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
