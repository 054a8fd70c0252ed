package models

import "strings"

type CreateCompanyRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Culture  string `json:"culture"`
}

type CreateJobRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	City            string   `json:"city"`
	JobType         string   `json:"job_type"`
	WorkType        WorkType `json:"work_type"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceLevel string   `json:"experience_level"`
	SalaryMin       *int64   `json:"salary_min"`
	SalaryMax       *int64   `json:"salary_max"`
	SalaryCurrency  string   `json:"salary_currency"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

type ApplicationResponse struct {
	Application *CandidateApplication `json:"application"`
	Resume      *UploadResponse       `json:"resume,omitempty"`
	Indexed     bool                  `json:"indexed"`
}

type FitAnalysisResponse struct {
	Analysis *FitAnalysis `json:"analysis"`
	Cached   bool         `json:"cached"`
	Degraded bool         `json:"degraded"`
}

type AnalysisRunsResponse struct {
	JobID uint           `json:"job_id"`
	Runs  []RunReference `json:"runs"`
}

type RunReference struct {
	ID          string `json:"id"`
	CandidateID uint   `json:"candidate_id"`
	Status      string `json:"status"`
}

type RunResultResponse struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Result       *FitAnalysis `json:"result,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
}

type CandidateMatch struct {
	CandidateID uint    `json:"candidate_id"`
	FullName    string  `json:"full_name,omitempty"`
	Score       float64 `json:"score"`
	Rating      string  `json:"rating"`
	Excerpt     string  `json:"excerpt,omitempty"`
}

type MatchResponse struct {
	JobID      uint             `json:"job_id"`
	MinScore   float64          `json:"min_score"`
	Candidates []CandidateMatch `json:"candidates"`
}

// SplitList turns comma separated text into a trimmed list. It is only used
// at the HTTP edge; storage keeps real arrays.
func SplitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
