package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/talent-ats/internal/models"
)

const notSpecified = "Not specified"

// CandidateProfile is the flat view of an application the analyzers read.
type CandidateProfile struct {
	FullName        string
	Email           string
	Phone           string
	CurrentLocation string
	Skills          []string
	Experience      string
	RemoteWork      bool
	ExpectedSalary  string
	NoticePeriod    string
}

// JobRequirement is the flat view of a job posting the analyzers read.
type JobRequirement struct {
	Title           string
	CompanyName     string
	Industry        string
	CompanyCulture  string
	Location        string
	JobType         string
	WorkType        string
	RequiredSkills  []string
	ExperienceLevel string
	SalaryRange     string
}

// ExtractCandidateProfile never fails; missing fields become safe defaults.
func ExtractCandidateProfile(c *models.CandidateApplication) CandidateProfile {
	if c == nil {
		return CandidateProfile{
			FullName:        notSpecified,
			Email:           notSpecified,
			Phone:           notSpecified,
			CurrentLocation: notSpecified,
			Skills:          []string{},
			Experience:      notSpecified,
			ExpectedSalary:  notSpecified,
			NoticePeriod:    notSpecified,
		}
	}

	return CandidateProfile{
		FullName:        orNotSpecified(c.FullName),
		Email:           orNotSpecified(c.Email),
		Phone:           orNotSpecified(c.Phone),
		CurrentLocation: orNotSpecified(c.CurrentLocation),
		Skills:          normalizeSkills(c.Skills),
		Experience:      orNotSpecified(c.Experience),
		RemoteWork:      c.RemoteWork,
		ExpectedSalary:  orNotSpecified(c.ExpectedSalary),
		NoticePeriod:    orNotSpecified(c.NoticePeriod),
	}
}

// ExtractJobRequirement never fails. company may be nil, in which case the
// preloaded job.Company is used when present.
func ExtractJobRequirement(job *models.Job, company *models.Company) JobRequirement {
	req := JobRequirement{
		Title:           notSpecified,
		CompanyName:     notSpecified,
		Industry:        notSpecified,
		CompanyCulture:  notSpecified,
		Location:        notSpecified,
		JobType:         notSpecified,
		WorkType:        notSpecified,
		RequiredSkills:  []string{},
		ExperienceLevel: notSpecified,
		SalaryRange:     notSpecified,
	}
	if job == nil {
		return req
	}

	if company == nil && job.Company.ID != 0 {
		company = &job.Company
	}
	if company != nil {
		req.CompanyName = orNotSpecified(company.Name)
		req.Industry = orNotSpecified(company.Industry)
		req.CompanyCulture = orNotSpecified(company.Culture)
	}

	req.Title = orNotSpecified(job.Title)
	req.Location = orNotSpecified(job.City)
	req.JobType = orNotSpecified(job.JobType)
	req.WorkType = orNotSpecified(string(job.WorkType))
	req.RequiredSkills = normalizeSkills(job.RequiredSkills)
	req.ExperienceLevel = orNotSpecified(job.ExperienceLevel)
	req.SalaryRange = salaryRange(job.SalaryMin, job.SalaryMax, job.SalaryCurrency)

	return req
}

// normalizeSkills trims entries and drops blanks and case-insensitive
// duplicates. Entries are kept whole; commas inside a skill are part of it.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func salaryRange(low, high *int64, currency string) string {
	currency = strings.TrimSpace(currency)
	if currency != "" {
		currency = " " + currency
	}

	switch {
	case low != nil && high != nil:
		return fmt.Sprintf("%d - %d%s", *low, *high, currency)
	case low != nil:
		return fmt.Sprintf("from %d%s", *low, currency)
	case high != nil:
		return fmt.Sprintf("up to %d%s", *high, currency)
	default:
		return notSpecified
	}
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notSpecified
	}
	return s
}

// joinOrNone renders a list for a prompt.
func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None listed"
	}
	return strings.Join(items, ", ")
}
