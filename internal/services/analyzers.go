package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/config"
	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/models"
)

type Dimension string

const (
	DimensionSkills      Dimension = "skills"
	DimensionExperience  Dimension = "experience"
	DimensionCulturalFit Dimension = "cultural_fit"
	DimensionInsights    Dimension = "strengths_weaknesses"
)

const (
	FallbackSkillsScore      = 0.5
	FallbackExperienceScore  = 0.5
	FallbackCulturalFitScore = 0.6
)

// DimensionScore is one scored axis of a fit analysis.
type DimensionScore struct {
	Score       float64
	Explanation string
	Source      models.ScoreSource
}

// Insights is the unscored strengths and weaknesses list.
type Insights struct {
	Strengths  []string
	Weaknesses []string
	Source     models.ScoreSource
}

func fallbackScore(d Dimension) DimensionScore {
	switch d {
	case DimensionSkills:
		return DimensionScore{
			Score:       FallbackSkillsScore,
			Explanation: "Skills analysis was unavailable; a neutral placeholder score was used.",
			Source:      models.SourceFallback,
		}
	case DimensionExperience:
		return DimensionScore{
			Score:       FallbackExperienceScore,
			Explanation: "Experience analysis was unavailable; a neutral placeholder score was used.",
			Source:      models.SourceFallback,
		}
	default:
		return DimensionScore{
			Score:       FallbackCulturalFitScore,
			Explanation: "Cultural fit analysis was unavailable; a neutral placeholder score was used.",
			Source:      models.SourceFallback,
		}
	}
}

func fallbackInsights() Insights {
	return Insights{
		Strengths:  []string{"Relevant background for the role", "Application submitted with complete profile"},
		Weaknesses: []string{"Detailed assessment unavailable", "Further evaluation recommended"},
		Source:     models.SourceFallback,
	}
}

// AnalysisTarget identifies the analysis in logs.
type AnalysisTarget struct {
	CandidateID uint
	JobID       uint
	CompanyID   uint
}

func (t AnalysisTarget) fields() []zap.Field {
	return []zap.Field{
		zap.Uint("candidate_id", t.CandidateID),
		zap.Uint("job_id", t.JobID),
		zap.Uint("company_id", t.CompanyID),
	}
}

type promptFunc func(pb *PromptBuilder, candidate CandidateProfile, job JobRequirement) string

// DimensionAnalyzer scores one axis with a single model call. It never
// returns an error; failures yield the dimension's fallback score.
type DimensionAnalyzer struct {
	dimension Dimension
	generator TextGenerator
	prompts   *PromptBuilder
	prompt    promptFunc
	gen       config.GeminiConfig
	logger    *zap.Logger
}

func newDimensionAnalyzer(d Dimension, prompt promptFunc, generator TextGenerator, gen config.GeminiConfig, log *zap.Logger) *DimensionAnalyzer {
	return &DimensionAnalyzer{
		dimension: d,
		generator: generator,
		prompts:   NewPromptBuilder(),
		prompt:    prompt,
		gen:       gen,
		logger:    logger.OrNop(log).With(zap.String("dimension", string(d))),
	}
}

// NewSkillsAnalyzer only shows the model the two skill lists and the job title.
func NewSkillsAnalyzer(generator TextGenerator, gen config.GeminiConfig, log *zap.Logger) *DimensionAnalyzer {
	return newDimensionAnalyzer(DimensionSkills, func(pb *PromptBuilder, c CandidateProfile, j JobRequirement) string {
		return pb.BuildSkillsPrompt(c.Skills, j.RequiredSkills, j.Title)
	}, generator, gen, log)
}

func NewExperienceAnalyzer(generator TextGenerator, gen config.GeminiConfig, log *zap.Logger) *DimensionAnalyzer {
	return newDimensionAnalyzer(DimensionExperience, func(pb *PromptBuilder, c CandidateProfile, j JobRequirement) string {
		return pb.BuildExperiencePrompt(c.Experience, j.ExperienceLevel, j.Title)
	}, generator, gen, log)
}

func NewCulturalFitAnalyzer(generator TextGenerator, gen config.GeminiConfig, log *zap.Logger) *DimensionAnalyzer {
	return newDimensionAnalyzer(DimensionCulturalFit, func(pb *PromptBuilder, c CandidateProfile, j JobRequirement) string {
		return pb.BuildCulturalFitPrompt(c, j)
	}, generator, gen, log)
}

func (a *DimensionAnalyzer) Dimension() Dimension {
	return a.dimension
}

func (a *DimensionAnalyzer) Analyze(ctx context.Context, target AnalysisTarget, candidate CandidateProfile, job JobRequirement) DimensionScore {
	score, err := a.analyze(ctx, candidate, job)
	if err != nil {
		a.logger.Warn("dimension analysis failed, using fallback score",
			append(target.fields(), zap.Error(err))...)
		return fallbackScore(a.dimension)
	}
	return score
}

func (a *DimensionAnalyzer) analyze(ctx context.Context, candidate CandidateProfile, job JobRequirement) (DimensionScore, error) {
	response, err := a.generator.Generate(ctx, GenerationRequest{
		Purpose:           string(a.dimension) + "_analysis",
		SystemInstruction: recruiterSystemInstruction,
		Prompt:            a.prompt(a.prompts, candidate, job),
		Temperature:       a.gen.Temperature,
		MaxOutputTokens:   a.gen.MaxOutputTokens,
		JSON:              true,
	})
	if err != nil {
		return DimensionScore{}, err
	}

	return parseDimensionScore(response)
}

func parseDimensionScore(response string) (DimensionScore, error) {
	data, err := decodeObject(response)
	if err != nil {
		return DimensionScore{}, err
	}

	raw, ok := data["score"]
	if !ok {
		return DimensionScore{}, fmt.Errorf("score: %w", errMissingField)
	}
	score := coerceFloat(raw)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return DimensionScore{}, fmt.Errorf("score is not a number: %v", raw)
	}

	explanation := coerceString(data["explanation"])
	if explanation == "" {
		return DimensionScore{}, fmt.Errorf("explanation: %w", errMissingField)
	}

	return DimensionScore{
		Score:       clamp01(score),
		Explanation: explanation,
		Source:      models.SourceModel,
	}, nil
}

// StrengthsAnalyzer lists strengths and weaknesses with a single model call.
type StrengthsAnalyzer struct {
	generator TextGenerator
	prompts   *PromptBuilder
	gen       config.GeminiConfig
	logger    *zap.Logger
}

func NewStrengthsAnalyzer(generator TextGenerator, gen config.GeminiConfig, log *zap.Logger) *StrengthsAnalyzer {
	return &StrengthsAnalyzer{
		generator: generator,
		prompts:   NewPromptBuilder(),
		gen:       gen,
		logger:    logger.OrNop(log).With(zap.String("dimension", string(DimensionInsights))),
	}
}

func (a *StrengthsAnalyzer) Analyze(ctx context.Context, target AnalysisTarget, candidate CandidateProfile, job JobRequirement) Insights {
	insights, err := a.analyze(ctx, candidate, job)
	if err != nil {
		a.logger.Warn("strengths analysis failed, using fallback insights",
			append(target.fields(), zap.Error(err))...)
		return fallbackInsights()
	}
	return insights
}

func (a *StrengthsAnalyzer) analyze(ctx context.Context, candidate CandidateProfile, job JobRequirement) (Insights, error) {
	response, err := a.generator.Generate(ctx, GenerationRequest{
		Purpose:           string(DimensionInsights) + "_analysis",
		SystemInstruction: recruiterSystemInstruction,
		Prompt:            a.prompts.BuildStrengthsPrompt(candidate, job),
		Temperature:       a.gen.Temperature,
		MaxOutputTokens:   a.gen.MaxOutputTokens,
		JSON:              true,
	})
	if err != nil {
		return Insights{}, err
	}

	return parseInsights(response)
}

func parseInsights(response string) (Insights, error) {
	data, err := decodeObject(response)
	if err != nil {
		return Insights{}, err
	}

	strengths := coerceStrings(data["strengths"])
	if len(strengths) == 0 {
		return Insights{}, fmt.Errorf("strengths: %w", errMissingField)
	}
	weaknesses := coerceStrings(data["weaknesses"])
	if len(weaknesses) == 0 {
		return Insights{}, fmt.Errorf("weaknesses: %w", errMissingField)
	}

	return Insights{
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Source:     models.SourceModel,
	}, nil
}
