package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/repositories"
)

const (
	DefaultMatchMinScore = 0.1
	DefaultMatchLimit    = 20
	maxExcerptLength     = 280
	// Several chunks usually belong to one candidate, so search wider than
	// the number of candidates requested.
	chunksPerCandidate = 5
)

// MatchService ranks a company's candidates for a job by resume similarity.
type MatchService struct {
	embedder   Embedder
	index      QdrantService
	candidates repositories.CandidateRepository
	prompts    *PromptBuilder
	logger     *zap.Logger
}

func NewMatchService(embedder Embedder, index QdrantService, candidates repositories.CandidateRepository, log *zap.Logger) *MatchService {
	return &MatchService{
		embedder:   embedder,
		index:      index,
		candidates: candidates,
		prompts:    NewPromptBuilder(),
		logger:     logger.OrNop(log),
	}
}

func (m *MatchService) MatchCandidates(ctx context.Context, companyID uint, job *models.Job, minScore float64, limit int) ([]models.CandidateMatch, error) {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	query := m.prompts.BuildJobQuery(ExtractJobRequirement(job, nil), job.Description)
	embedding, err := m.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	results, err := m.index.Search(ctx, companyID, embedding, limit*chunksPerCandidate)
	if err != nil {
		return nil, err
	}

	matches := bestMatches(results, minScore, limit)
	if len(matches) == 0 {
		return matches, nil
	}

	ids := make([]uint, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, match.CandidateID)
	}
	found, err := m.candidates.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(found))
	for _, c := range found {
		names[c.ID] = c.FullName
	}

	// Points whose application no longer exists are dropped.
	out := matches[:0]
	for _, match := range matches {
		name, ok := names[match.CandidateID]
		if !ok {
			continue
		}
		match.FullName = name
		out = append(out, match)
	}

	m.logger.Debug("candidate matching finished",
		zap.Uint("company_id", companyID),
		zap.Uint("job_id", job.ID),
		zap.Int("points", len(results)),
		zap.Int("matches", len(out)),
	)
	return out, nil
}

// bestMatches keeps the highest scoring chunk per candidate, drops those
// below minScore and returns at most limit matches, best first.
func bestMatches(results []SearchResult, minScore float64, limit int) []models.CandidateMatch {
	best := make(map[uint]SearchResult)
	for _, r := range results {
		if prev, ok := best[r.CandidateID]; !ok || r.Score > prev.Score {
			best[r.CandidateID] = r
		}
	}

	matches := make([]models.CandidateMatch, 0, len(best))
	for id, r := range best {
		score := round2(float64(r.Score))
		if score < minScore {
			continue
		}
		matches = append(matches, models.CandidateMatch{
			CandidateID: id,
			Score:       score,
			Rating:      MatchRating(score),
			Excerpt:     excerpt(r.Text, maxExcerptLength),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].CandidateID < matches[j].CandidateID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func MatchRating(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent"
	case score >= 0.8:
		return "Strong"
	case score >= 0.7:
		return "Good"
	case score >= 0.6:
		return "Moderate"
	case score >= 0.4:
		return "Fair"
	default:
		return "Poor"
	}
}
