package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/logger"
)

// ResumeIndexer embeds resume text chunk by chunk into the vector index.
type ResumeIndexer struct {
	embedder Embedder
	index    QdrantService
	chunker  *TextChunker
	logger   *zap.Logger
}

func NewResumeIndexer(embedder Embedder, index QdrantService, chunker *TextChunker, log *zap.Logger) *ResumeIndexer {
	if chunker == nil {
		chunker = NewTextChunker(defaultChunkSize, defaultChunkOverlap)
	}
	return &ResumeIndexer{
		embedder: embedder,
		index:    index,
		chunker:  chunker,
		logger:   logger.OrNop(log),
	}
}

// IndexResume replaces the candidate's indexed chunks and returns how many
// were written.
func (r *ResumeIndexer) IndexResume(ctx context.Context, companyID, candidateID uint, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("resume text is empty")
	}

	pieces := r.chunker.Chunk(text)
	chunks := make([]ResumeChunk, 0, len(pieces))
	for i, piece := range pieces {
		embedding, err := r.embedder.GenerateEmbedding(ctx, piece)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		chunks = append(chunks, ResumeChunk{Index: i, Text: piece, Embedding: embedding})
	}

	// Chunk ids are stable, but a shorter resume would leave stale tail chunks.
	if err := r.index.DeleteCandidate(ctx, companyID, candidateID); err != nil {
		return 0, err
	}
	if err := r.index.UpsertChunks(ctx, companyID, candidateID, chunks); err != nil {
		return 0, err
	}

	r.logger.Info("📦 resume indexed",
		zap.Uint("company_id", companyID),
		zap.Uint("candidate_id", candidateID),
		zap.Int("chunks", len(chunks)),
	)
	return len(chunks), nil
}
