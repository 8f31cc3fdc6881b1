package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"smartresume/resume-analyzer/internal/models"
)

// VectorIndex maintains a Qdrant collection of embedded resume chunks so
// completed analyses can be searched for similar candidates. It sits
// outside the request pipeline; indexing happens in the background worker.
type VectorIndex interface {
	InitCollection() error
	IndexAnalysis(ctx context.Context, analysis *models.Analysis) error
	FindSimilar(ctx context.Context, analysis *models.Analysis, limit int) ([]models.SimilarMatch, error)
}

type qdrantIndex struct {
	client         *qdrant.Client
	gemini         GeminiService
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewVectorIndex(urlStr, apiKey, collectionName string, gemini GeminiService) (VectorIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		gemini:         gemini,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
	}, nil
}

// InitCollection implements VectorIndex.
func (q *qdrantIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
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

	log.Printf("✅ Qdrant collection '%s' created successfully", q.collectionName)
	return nil
}

// IndexAnalysis implements VectorIndex. The extracted text is chunked,
// each chunk embedded and upserted with enough payload to map hits back
// to their analysis.
func (q *qdrantIndex) IndexAnalysis(ctx context.Context, analysis *models.Analysis) error {
	chunks := q.chunker.ChunkText(analysis.ExtractedText, 1000, 200)
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks produced for analysis %s", analysis.ID)
	}

	for i, chunk := range chunks {
		embedding, err := q.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		point := &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(uuid.New().ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"analysis_id": analysis.ID.String(),
				"chunk_index": i,
				"text":        chunk,
			}),
		}

		_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: q.collectionName,
			Points:         []*qdrant.PointStruct{point},
		})
		if err != nil {
			return fmt.Errorf("failed to upsert chunk %d: %w", i, err)
		}
	}

	return nil
}

// FindSimilar implements VectorIndex. The analysis text is embedded and
// the nearest chunks from other analyses are aggregated per analysis.
func (q *qdrantIndex) FindSimilar(ctx context.Context, analysis *models.Analysis, limit int) ([]models.SimilarMatch, error) {
	queryText := analysis.ExtractedText
	if chunks := q.chunker.ChunkText(queryText, 1000, 0); len(chunks) > 0 {
		queryText = chunks[0]
	}

	embedding, err := q.gemini.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	filter := &qdrant.Filter{
		MustNot: []*qdrant.Condition{
			qdrant.NewMatch("analysis_id", analysis.ID.String()),
		},
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit * 4)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	// Keep the best-scoring chunk per analysis.
	best := make(map[string]models.SimilarMatch)
	for _, point := range points {
		var id, snippet string
		if v, ok := point.Payload["analysis_id"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				id = s.StringValue
			}
		}
		if v, ok := point.Payload["text"]; ok {
			if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				snippet = truncateChars(s.StringValue, 160)
			}
		}
		if id == "" {
			continue
		}
		if prev, ok := best[id]; !ok || point.Score > prev.Score {
			best[id] = models.SimilarMatch{
				AnalysisID: id,
				Score:      point.Score,
				Snippet:    snippet,
			}
		}
	}

	matches := make([]models.SimilarMatch, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
