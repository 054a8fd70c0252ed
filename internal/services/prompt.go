package services

import (
	"fmt"
)

const recruiterSystemInstruction = "You are an expert HR recruiter providing fair and accurate candidate assessments. " +
	"Be intelligent about skill recognition and transferable abilities. Respond only with valid JSON."

const scoringBands = `SCORING GUIDELINES:
- 0.8 - 1.0: Excellent match
- 0.6 - 0.8: Good match
- 0.4 - 0.6: Fair match
- 0.2 - 0.4: Poor match
- 0.0 - 0.2: Very poor match`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSkillsPrompt creates the prompt for the skills dimension.
func (pb *PromptBuilder) BuildSkillsPrompt(candidateSkills, requiredSkills []string, jobTitle string) string {
	return fmt.Sprintf(`Analyze how well the candidate's skills match the requirements of a %s position.

CANDIDATE SKILLS:
%s

REQUIRED SKILLS:
%s

Consider exact matches, closely related technologies and transferable skills.
Missing core skills should lower the score more than missing secondary ones.

%s

Return your response in the following JSON format:
{
  "score": <number between 0.0 and 1.0>,
  "explanation": "<2-3 sentences explaining the skills match>"
}`,
		jobTitle, joinOrNone(candidateSkills), joinOrNone(requiredSkills), scoringBands)
}

// BuildExperiencePrompt creates the prompt for the experience dimension.
func (pb *PromptBuilder) BuildExperiencePrompt(candidateExperience, experienceLevel, jobTitle string) string {
	return fmt.Sprintf(`Evaluate whether the candidate's experience fits the level required for a %s position.

CANDIDATE EXPERIENCE:
%s

REQUIRED EXPERIENCE LEVEL:
%s

Consider both under- and over-qualification. A candidate slightly below the level with
strong relevant background can still be a good match.

%s

Return your response in the following JSON format:
{
  "score": <number between 0.0 and 1.0>,
  "explanation": "<2-3 sentences explaining the experience fit>"
}`,
		jobTitle, candidateExperience, experienceLevel, scoringBands)
}

// BuildCulturalFitPrompt creates the prompt for the cultural fit dimension.
func (pb *PromptBuilder) BuildCulturalFitPrompt(candidate CandidateProfile, job JobRequirement) string {
	return fmt.Sprintf(`Assess the cultural and logistical fit between the candidate and the company.

COMPANY:
- Name: %s
- Industry: %s
- Culture: %s

POSITION:
- Title: %s
- Location: %s
- Job type: %s
- Work type: %s
- Salary range: %s

CANDIDATE:
- Current location: %s
- Prefers remote work: %t
- Expected salary: %s
- Notice period: %s

Consider location and work-type compatibility, remote preference, salary alignment and availability.

%s

Return your response in the following JSON format:
{
  "score": <number between 0.0 and 1.0>,
  "explanation": "<2-3 sentences explaining the cultural fit>"
}`,
		job.CompanyName, job.Industry, job.CompanyCulture,
		job.Title, job.Location, job.JobType, job.WorkType, job.SalaryRange,
		candidate.CurrentLocation, candidate.RemoteWork, candidate.ExpectedSalary, candidate.NoticePeriod,
		scoringBands)
}

// BuildStrengthsPrompt creates the prompt for the strengths and weaknesses list.
func (pb *PromptBuilder) BuildStrengthsPrompt(candidate CandidateProfile, job JobRequirement) string {
	return fmt.Sprintf(`Identify the candidate's key strengths and weaknesses for a %s position at %s.

CANDIDATE:
- Skills: %s
- Experience: %s
- Location: %s
- Prefers remote work: %t

POSITION:
- Required skills: %s
- Experience level: %s
- Work type: %s
- Location: %s

Return your response in the following JSON format:
{
  "strengths": ["<3 to 5 short strengths>"],
  "weaknesses": ["<2 to 3 short weaknesses or gaps>"]
}`,
		job.Title, job.CompanyName,
		joinOrNone(candidate.Skills), candidate.Experience, candidate.CurrentLocation, candidate.RemoteWork,
		joinOrNone(job.RequiredSkills), job.ExperienceLevel, job.WorkType, job.Location)
}

// BuildJobQuery creates the text embedded to search resumes for a job.
func (pb *PromptBuilder) BuildJobQuery(job JobRequirement, description string) string {
	return fmt.Sprintf("%s\nRequired skills: %s\nExperience level: %s\n%s",
		job.Title, joinOrNone(job.RequiredSkills), job.ExperienceLevel, description)
}
