package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/talent-ats/internal/middleware"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
	"alfredoptarigan/talent-ats/internal/services"
)

type memoryCompanies struct {
	rows map[uint]*models.Company
}

func (m *memoryCompanies) Create(ctx context.Context, company *models.Company) error {
	company.ID = uint(len(m.rows) + 1)
	m.rows[company.ID] = company
	return nil
}

func (m *memoryCompanies) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	if c, ok := m.rows[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("company not found: %w", repositories.ErrNotFound)
}

type memoryJobs struct {
	rows map[uint]models.Job
}

func (m *memoryJobs) Create(ctx context.Context, job *models.Job) error {
	job.ID = uint(len(m.rows) + 100)
	m.rows[job.ID] = *job
	return nil
}

func (m *memoryJobs) FindByID(ctx context.Context, companyID, id uint) (*models.Job, error) {
	row, ok := m.rows[id]
	if !ok || row.CompanyID != companyID {
		return nil, fmt.Errorf("job not found: %w", repositories.ErrNotFound)
	}
	return &row, nil
}

func (m *memoryJobs) List(ctx context.Context, companyID uint, status models.JobStatus) ([]models.Job, error) {
	var out []models.Job
	for _, row := range m.rows {
		if row.CompanyID == companyID && (status == "" || row.Status == status) {
			out = append(out, row)
		}
	}
	return out, nil
}

type memoryCandidates struct {
	rows      map[uint]models.CandidateApplication
	createErr error
}

func (m *memoryCandidates) Create(ctx context.Context, c *models.CandidateApplication) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = uint(len(m.rows) + 500)
	m.rows[c.ID] = *c
	return nil
}

func (m *memoryCandidates) FindByID(ctx context.Context, companyID, id uint) (*models.CandidateApplication, error) {
	row, ok := m.rows[id]
	if !ok || row.CompanyID != companyID {
		return nil, fmt.Errorf("candidate not found: %w", repositories.ErrNotFound)
	}
	return &row, nil
}

func (m *memoryCandidates) ListByJob(ctx context.Context, companyID, jobID uint) ([]models.CandidateApplication, error) {
	var out []models.CandidateApplication
	for _, row := range m.rows {
		if row.CompanyID == companyID && row.JobID == jobID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryCandidates) ListByCompany(ctx context.Context, companyID uint) ([]models.CandidateApplication, error) {
	var out []models.CandidateApplication
	for _, row := range m.rows {
		if row.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryCandidates) FindByIDs(ctx context.Context, companyID uint, ids []uint) ([]models.CandidateApplication, error) {
	var out []models.CandidateApplication
	for id := range uniqueIDs(ids) {
		if row, ok := m.rows[id]; ok && row.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryCandidates) UpdateResumeText(ctx context.Context, companyID, id uint, text string) error {
	return errors.New("not implemented")
}

type memoryFits struct {
	rows []models.FitAnalysis
}

func (m *memoryFits) Find(ctx context.Context, candidateID, jobID, companyID uint) (*models.FitAnalysis, error) {
	for _, row := range m.rows {
		if row.CandidateID == candidateID && row.JobID == jobID && row.CompanyID == companyID {
			r := row
			return &r, nil
		}
	}
	return nil, fmt.Errorf("fit analysis not found: %w", repositories.ErrNotFound)
}

func (m *memoryFits) Upsert(ctx context.Context, analysis *models.FitAnalysis) error {
	m.rows = append(m.rows, *analysis)
	return nil
}

func (m *memoryFits) ListByJob(ctx context.Context, companyID, jobID uint) ([]models.FitAnalysis, error) {
	var out []models.FitAnalysis
	for _, row := range m.rows {
		if row.CompanyID == companyID && row.JobID == jobID {
			out = append(out, row)
		}
	}
	return out, nil
}

type memoryRuns struct {
	rows map[uuid.UUID]models.AnalysisRun
}

func (m *memoryRuns) Create(ctx context.Context, run *models.AnalysisRun) error {
	return m.CreateBatch(ctx, []models.AnalysisRun{*run})
}

func (m *memoryRuns) CreateBatch(ctx context.Context, runs []models.AnalysisRun) error {
	for i := range runs {
		if runs[i].CompanyID == 0 {
			return repositories.ErrTenantRequired
		}
		runs[i].ID = uuid.New()
		m.rows[runs[i].ID] = runs[i]
	}
	return nil
}

func (m *memoryRuns) FindByID(ctx context.Context, companyID uint, id uuid.UUID) (*models.AnalysisRun, error) {
	row, ok := m.rows[id]
	if !ok || row.CompanyID != companyID {
		return nil, fmt.Errorf("analysis run not found: %w", repositories.ErrNotFound)
	}
	return &row, nil
}

func (m *memoryRuns) UpdateStatus(ctx context.Context, companyID uint, id uuid.UUID, status models.AnalysisRunStatus) error {
	return errors.New("not implemented")
}

func (m *memoryRuns) UpdateResult(ctx context.Context, companyID uint, id uuid.UUID, fitAnalysisID uuid.UUID) error {
	return errors.New("not implemented")
}

func (m *memoryRuns) UpdateError(ctx context.Context, companyID uint, id uuid.UUID, errorMsg string) error {
	return errors.New("not implemented")
}

func (m *memoryRuns) FindQueued(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	return nil, nil
}

type memoryDocuments struct {
	rows []models.Document
	err  error
}

func (m *memoryDocuments) Create(ctx context.Context, doc *models.Document) error {
	if m.err != nil {
		return m.err
	}
	doc.ID = uuid.New()
	m.rows = append(m.rows, *doc)
	return nil
}

func (m *memoryDocuments) FindByID(ctx context.Context, companyID uint, id uuid.UUID) (*models.Document, error) {
	return nil, fmt.Errorf("document not found: %w", repositories.ErrNotFound)
}

func (m *memoryDocuments) Delete(ctx context.Context, companyID uint, id uuid.UUID) error {
	for i, row := range m.rows {
		if row.ID == id && row.CompanyID == companyID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("document not found: %w", repositories.ErrNotFound)
}

type stubStorage struct {
	saved   []string
	deleted []string
}

func (s *stubStorage) SaveFile(file *multipart.FileHeader, companyID uint, fileType string) (string, string, error) {
	name := fmt.Sprintf("%s_%d.pdf", fileType, len(s.saved)+1)
	s.saved = append(s.saved, name)
	return name, "/uploads/company_" + strconv.FormatUint(uint64(companyID), 10) + "/" + name, nil
}

func (s *stubStorage) GetFilePath(companyID uint, filename string) string { return filename }

func (s *stubStorage) DeleteFile(companyID uint, filename string) error {
	s.deleted = append(s.deleted, filename)
	return nil
}

func (s *stubStorage) EnsureUploadDir() error { return nil }

type stubParser struct {
	text string
	err  error
}

func (s *stubParser) ExtractText(filePath string) (*services.PDFContent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.PDFContent{Text: s.text, PageCount: 1, FilePath: filePath}, nil
}

type stubIndexer struct {
	calls []uint
	err   error
}

func (s *stubIndexer) IndexResume(ctx context.Context, companyID, candidateID uint, text string) (int, error) {
	s.calls = append(s.calls, candidateID)
	if s.err != nil {
		return 0, s.err
	}
	return 1, nil
}

type stubWorker struct {
	mu   sync.Mutex
	refs []services.RunRef
}

func (w *stubWorker) Start(ctx context.Context) {}
func (w *stubWorker) Stop() {}

func (w *stubWorker) EnqueueRun(ref services.RunRef) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.refs = append(w.refs, ref)
	return true
}

type stubScorer struct {
	cached  bool
	refresh []bool
}

func (s *stubScorer) GetOrAnalyze(ctx context.Context, candidate *models.CandidateApplication, job *models.Job, company *models.Company, refresh bool) (*models.FitAnalysis, bool) {
	s.refresh = append(s.refresh, refresh)
	return &models.FitAnalysis{
		CandidateID:       candidate.ID,
		JobID:             job.ID,
		CompanyID:         company.ID,
		OverallScore:      0.78,
		Verdict:           models.VerdictRecommended,
		Confidence:        88,
		SkillsSource:      models.SourceModel,
		ExperienceSource:  models.SourceModel,
		CulturalFitSource: models.SourceFallback,
		InsightsSource:    models.SourceModel,
	}, s.cached && !refresh
}

type stubMatcher struct {
	matches []models.CandidateMatch
	err     error
	got     struct {
		minScore float64
		limit    int
	}
}

func (s *stubMatcher) MatchCandidates(ctx context.Context, companyID uint, job *models.Job, minScore float64, limit int) ([]models.CandidateMatch, error) {
	s.got.minScore, s.got.limit = minScore, limit
	return s.matches, s.err
}

// fixture holds two tenants: company 1 owns job 10 (open) and 11 (closed)
// with candidate 5; company 2 owns job 20 with candidate 6.
type fixture struct {
	companies  *memoryCompanies
	jobs       *memoryJobs
	candidates *memoryCandidates
	fits       *memoryFits
	runs       *memoryRuns
}

func newFixture() *fixture {
	return &fixture{
		companies: &memoryCompanies{rows: map[uint]*models.Company{
			1: {ID: 1, Name: "Acme", Culture: "Ownership"},
			2: {ID: 2, Name: "Globex"},
		}},
		jobs: &memoryJobs{rows: map[uint]models.Job{
			10: {ID: 10, CompanyID: 1, Title: "Backend Engineer", Status: models.JobStatusOpen},
			11: {ID: 11, CompanyID: 1, Title: "Old Role", Status: models.JobStatusClosed},
			20: {ID: 20, CompanyID: 2, Title: "Designer", Status: models.JobStatusOpen},
		}},
		candidates: &memoryCandidates{rows: map[uint]models.CandidateApplication{
			5: {ID: 5, CompanyID: 1, JobID: 10, FullName: "Dana Smith", Skills: []string{"Go"}},
			6: {ID: 6, CompanyID: 2, JobID: 20, FullName: "Other Tenant"},
		}},
		fits: &memoryFits{},
		runs: &memoryRuns{rows: make(map[uuid.UUID]models.AnalysisRun)},
	}
}

// app returns a tenant-scoped app with routes registered by register.
func (f *fixture) app(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Tenant(f.companies))
	register(app)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request, company string) (int, []byte) {
	t.Helper()
	if company != "" {
		req.Header.Set(middleware.CompanyHeader, company)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func jsonRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}
