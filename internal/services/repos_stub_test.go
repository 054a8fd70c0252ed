package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

type memoryCandidates struct {
	rows map[uint]models.CandidateApplication
}

func newMemoryCandidates(rows ...*models.CandidateApplication) *memoryCandidates {
	m := &memoryCandidates{rows: make(map[uint]models.CandidateApplication)}
	for _, r := range rows {
		m.rows[r.ID] = *r
	}
	return m
}

func (m *memoryCandidates) Create(ctx context.Context, c *models.CandidateApplication) error {
	c.ID = uint(len(m.rows) + 1)
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
	for _, id := range ids {
		if row, ok := m.rows[id]; ok && row.CompanyID == companyID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryCandidates) UpdateResumeText(ctx context.Context, companyID, id uint, text string) error {
	row, ok := m.rows[id]
	if !ok || row.CompanyID != companyID {
		return fmt.Errorf("candidate not found: %w", repositories.ErrNotFound)
	}
	row.ResumeText = text
	m.rows[id] = row
	return nil
}

type memoryJobs struct {
	rows map[uint]models.Job
}

func newMemoryJobs(rows ...*models.Job) *memoryJobs {
	m := &memoryJobs{rows: make(map[uint]models.Job)}
	for _, r := range rows {
		m.rows[r.ID] = *r
	}
	return m
}

func (m *memoryJobs) Create(ctx context.Context, job *models.Job) error {
	job.ID = uint(len(m.rows) + 1)
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

type memoryCompanies struct {
	rows map[uint]models.Company
}

func newMemoryCompanies(rows ...*models.Company) *memoryCompanies {
	m := &memoryCompanies{rows: make(map[uint]models.Company)}
	for _, r := range rows {
		m.rows[r.ID] = *r
	}
	return m
}

func (m *memoryCompanies) Create(ctx context.Context, c *models.Company) error {
	c.ID = uint(len(m.rows) + 1)
	m.rows[c.ID] = *c
	return nil
}

func (m *memoryCompanies) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("company not found: %w", repositories.ErrNotFound)
	}
	return &row, nil
}

type memoryRuns struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.AnalysisRun
}

func newMemoryRuns(rows ...models.AnalysisRun) *memoryRuns {
	m := &memoryRuns{rows: make(map[uuid.UUID]models.AnalysisRun)}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (m *memoryRuns) Create(ctx context.Context, run *models.AnalysisRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	m.rows[run.ID] = *run
	return nil
}

func (m *memoryRuns) CreateBatch(ctx context.Context, runs []models.AnalysisRun) error {
	for i := range runs {
		if err := m.Create(ctx, &runs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryRuns) FindByID(ctx context.Context, companyID uint, id uuid.UUID) (*models.AnalysisRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.CompanyID != companyID {
		return nil, fmt.Errorf("analysis run not found: %w", repositories.ErrNotFound)
	}
	return &row, nil
}

func (m *memoryRuns) update(companyID uint, id uuid.UUID, fn func(*models.AnalysisRun)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.CompanyID != companyID {
		return fmt.Errorf("analysis run not found: %w", repositories.ErrNotFound)
	}
	fn(&row)
	m.rows[id] = row
	return nil
}

func (m *memoryRuns) UpdateStatus(ctx context.Context, companyID uint, id uuid.UUID, status models.AnalysisRunStatus) error {
	return m.update(companyID, id, func(r *models.AnalysisRun) { r.Status = status })
}

func (m *memoryRuns) UpdateResult(ctx context.Context, companyID uint, id uuid.UUID, fitAnalysisID uuid.UUID) error {
	return m.update(companyID, id, func(r *models.AnalysisRun) {
		r.Status = models.RunStatusCompleted
		r.FitAnalysisID = &fitAnalysisID
		r.ErrorMessage = nil
	})
}

func (m *memoryRuns) UpdateError(ctx context.Context, companyID uint, id uuid.UUID, errorMsg string) error {
	return m.update(companyID, id, func(r *models.AnalysisRun) {
		r.Status = models.RunStatusFailed
		r.ErrorMessage = &errorMsg
	})
}

func (m *memoryRuns) FindQueued(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AnalysisRun
	for _, row := range m.rows {
		if row.Status == models.RunStatusQueued && len(out) < limit {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryRuns) get(id uuid.UUID) models.AnalysisRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

var (
	_ repositories.CandidateRepository   = (*memoryCandidates)(nil)
	_ repositories.JobRepository         = (*memoryJobs)(nil)
	_ repositories.CompanyRepository     = (*memoryCompanies)(nil)
	_ repositories.AnalysisRunRepository = (*memoryRuns)(nil)
	_ repositories.FitAnalysisRepository = (*memoryFitRepo)(nil)
)
