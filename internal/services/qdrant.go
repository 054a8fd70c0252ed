package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/config"
	"alfredoptarigan/talent-ats/internal/logger"
)

// QdrantService stores resume chunk embeddings. Every point carries the
// owning company id and every search is filtered by it.
type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertChunks(ctx context.Context, companyID, candidateID uint, chunks []ResumeChunk) error
	Search(ctx context.Context, companyID uint, queryEmbedding []float32, limit int) ([]SearchResult, error)
	DeleteCandidate(ctx context.Context, companyID, candidateID uint) error
}

type ResumeChunk struct {
	Index     int
	Text      string
	Embedding []float32
}

type SearchResult struct {
	CandidateID uint
	ChunkIndex  int
	Score       float32
	Text        string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantService(cfg config.QdrantConfig, log *zap.Logger) (QdrantService, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	vectorSize := cfg.VectorSize
	if vectorSize == 0 {
		vectorSize = 768
	}

	return &qdrantService{
		client:         client,
		collectionName: cfg.Collection,
		vectorSize:     vectorSize,
		logger:         logger.OrNop(log).With(zap.String("collection", cfg.Collection)),
	}, nil
}

func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Info("✅ Qdrant collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	for _, field := range []string{"company_id", "candidate_id"} {
		if _, err := q.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: q.collectionName,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		}); err != nil {
			return fmt.Errorf("failed to index payload field %s: %w", field, err)
		}
	}

	q.logger.Info("✅ Qdrant collection created", zap.Uint64("vector_size", q.vectorSize))
	return nil
}

func (q *qdrantService) UpsertChunks(ctx context.Context, companyID, candidateID uint, chunks []ResumeChunk) error {
	if companyID == 0 {
		return fmt.Errorf("company id is required")
	}
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for _, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(chunkPointID(companyID, candidateID, chunk.Index)),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"company_id":   strconv.FormatUint(uint64(companyID), 10),
				"candidate_id": strconv.FormatUint(uint64(candidateID), 10),
				"chunk_index":  int64(chunk.Index),
				"text":         chunk.Text,
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

func (q *qdrantService) Search(ctx context.Context, companyID uint, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company id is required")
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("company_id", strconv.FormatUint(uint64(companyID), 10)),
			},
		},
		Limit:       qdrant.PtrOf(uint64(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		payload := point.Payload

		candidateID, err := strconv.ParseUint(payload["candidate_id"].GetStringValue(), 10, 64)
		if err != nil {
			q.logger.Warn("skipping point without candidate id", zap.Error(err))
			continue
		}

		results = append(results, SearchResult{
			CandidateID: uint(candidateID),
			ChunkIndex:  int(payload["chunk_index"].GetIntegerValue()),
			Score:       point.Score,
			Text:        payload["text"].GetStringValue(),
		})
	}

	return results, nil
}

func (q *qdrantService) DeleteCandidate(ctx context.Context, companyID, candidateID uint) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("company_id", strconv.FormatUint(uint64(companyID), 10)),
			qdrant.NewMatch("candidate_id", strconv.FormatUint(uint64(candidateID), 10)),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete candidate points: %w", err)
	}

	return nil
}

// chunkPointID is stable so re-indexing a resume overwrites its points.
func chunkPointID(companyID, candidateID uint, index int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d:%d", companyID, candidateID, index)
	return h.Sum64()
}
