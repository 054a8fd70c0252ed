package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/talent-ats/internal/config"
	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/models"
)

// FitAnalyzer runs the four analyzers concurrently, aggregates their output
// and caches the result per (candidate, job, company).
type FitAnalyzer struct {
	skills      *DimensionAnalyzer
	experience  *DimensionAnalyzer
	culturalFit *DimensionAnalyzer
	insights    *StrengthsAnalyzer
	aggregator  *ScoreAggregator
	composer    *ReasoningComposer
	cache       *AnalysisCache
	model       string
	timeout     time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewFitAnalyzer wires the pipeline. cache may be nil, in which case every
// request is analyzed and nothing is stored.
func NewFitAnalyzer(
	generator TextGenerator,
	cache *AnalysisCache,
	gen config.GeminiConfig,
	scoring config.ScoringConfig,
	log *zap.Logger,
) *FitAnalyzer {
	log = logger.OrNop(log)
	aggregator := NewScoreAggregatorFromConfig(scoring)

	return &FitAnalyzer{
		skills:      NewSkillsAnalyzer(generator, gen, log),
		experience:  NewExperienceAnalyzer(generator, gen, log),
		culturalFit: NewCulturalFitAnalyzer(generator, gen, log),
		insights:    NewStrengthsAnalyzer(generator, gen, log),
		aggregator:  aggregator,
		composer:    NewReasoningComposer(aggregator),
		cache:       cache,
		model:       generator.Model(),
		timeout:     scoring.AnalyzerTimeout,
		now:         time.Now,
		logger:      log,
	}
}

// Analyze always returns a complete analysis. Analyzer failures are replaced
// by fallback values tagged models.SourceFallback.
func (f *FitAnalyzer) Analyze(
	ctx context.Context,
	candidate *models.CandidateApplication,
	job *models.Job,
	company *models.Company,
) *models.FitAnalysis {
	target := analysisTarget(candidate, job, company)
	profile := ExtractCandidateProfile(candidate)
	requirement := ExtractJobRequirement(job, company)

	start := time.Now()
	var (
		skills, experience, culturalFit DimensionScore
		insights                        Insights
		g                               errgroup.Group
	)

	g.Go(func() error {
		actx, cancel := f.analyzerContext(ctx)
		defer cancel()
		skills = f.skills.Analyze(actx, target, profile, requirement)
		return nil
	})
	g.Go(func() error {
		actx, cancel := f.analyzerContext(ctx)
		defer cancel()
		experience = f.experience.Analyze(actx, target, profile, requirement)
		return nil
	})
	g.Go(func() error {
		actx, cancel := f.analyzerContext(ctx)
		defer cancel()
		culturalFit = f.culturalFit.Analyze(actx, target, profile, requirement)
		return nil
	})
	g.Go(func() error {
		actx, cancel := f.analyzerContext(ctx)
		defer cancel()
		insights = f.insights.Analyze(actx, target, profile, requirement)
		return nil
	})
	_ = g.Wait()

	agg := f.aggregator.Aggregate(skills.Score, experience.Score, culturalFit.Score)

	analysis := &models.FitAnalysis{
		CandidateID:            target.CandidateID,
		JobID:                  target.JobID,
		CompanyID:              target.CompanyID,
		OverallScore:           agg.OverallScore,
		Verdict:                agg.Verdict,
		Confidence:             agg.Confidence,
		SkillsMatchScore:       skills.Score,
		SkillsExplanation:      skills.Explanation,
		SkillsSource:           skills.Source,
		ExperienceMatchScore:   experience.Score,
		ExperienceExplanation:  experience.Explanation,
		ExperienceSource:       experience.Source,
		CulturalFitScore:       culturalFit.Score,
		CulturalFitExplanation: culturalFit.Explanation,
		CulturalFitSource:      culturalFit.Source,
		Reasoning:              f.composer.Compose(agg.OverallScore, skills, experience, culturalFit),
		Strengths:              insights.Strengths,
		Weaknesses:             insights.Weaknesses,
		InsightsSource:         insights.Source,
		AIModel:                f.model,
		AnalyzedAt:             f.now().UTC(),
	}

	f.logger.Info("fit analysis completed",
		append(target.fields(),
			zap.Float64("overall_score", analysis.OverallScore),
			zap.String("verdict", string(analysis.Verdict)),
			zap.Int("confidence", analysis.Confidence),
			zap.Bool("degraded", analysis.Degraded()),
			zap.Duration("elapsed", time.Since(start)),
		)...)

	return analysis
}

// GetOrAnalyze serves a fresh cached analysis unless refresh is set. The
// boolean reports whether the result came from the cache.
func (f *FitAnalyzer) GetOrAnalyze(
	ctx context.Context,
	candidate *models.CandidateApplication,
	job *models.Job,
	company *models.Company,
	refresh bool,
) (*models.FitAnalysis, bool) {
	analysis, cached, _ := f.Resolve(ctx, candidate, job, company, refresh)
	return analysis, cached
}

// Resolve is GetOrAnalyze that also reports a failed cache write. The
// returned analysis is complete even when err is non-nil.
func (f *FitAnalyzer) Resolve(
	ctx context.Context,
	candidate *models.CandidateApplication,
	job *models.Job,
	company *models.Company,
	refresh bool,
) (*models.FitAnalysis, bool, error) {
	target := analysisTarget(candidate, job, company)

	if f.cache != nil && !refresh {
		if analysis, ok := f.cache.Get(ctx, target.CandidateID, target.JobID, target.CompanyID); ok {
			f.logger.Debug("fit analysis served from cache", target.fields()...)
			return analysis, true, nil
		}
	}

	analysis := f.Analyze(ctx, candidate, job, company)
	if f.cache == nil {
		return analysis, false, nil
	}
	if err := f.cache.Put(ctx, analysis); err != nil {
		return analysis, false, err
	}
	return analysis, false, nil
}

func (f *FitAnalyzer) analyzerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.timeout)
}

func analysisTarget(candidate *models.CandidateApplication, job *models.Job, company *models.Company) AnalysisTarget {
	var t AnalysisTarget
	if candidate != nil {
		t.CandidateID = candidate.ID
		t.CompanyID = candidate.CompanyID
	}
	if job != nil {
		t.JobID = job.ID
		if t.CompanyID == 0 {
			t.CompanyID = job.CompanyID
		}
	}
	if company != nil && company.ID != 0 {
		t.CompanyID = company.ID
	}
	return t
}
