package services

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"smartresume/resume-analyzer/internal/models"
)

// AnalyzerService runs the full pipeline for one uploaded resume:
// extract text, verify it is non-empty, extract entities, score against
// the job description, generate suggestions, assemble the result.
type AnalyzerService interface {
	Analyze(ctx context.Context, data []byte, filename, jobDescription string) (*models.Analysis, error)
}

type analyzerService struct {
	extractor TextExtractor
	entities  EntityExtractor
	scorer    SimilarityScorer
	suggester SuggestionGenerator
}

func NewAnalyzerService(
	extractor TextExtractor,
	entities EntityExtractor,
	scorer SimilarityScorer,
	suggester SuggestionGenerator,
) AnalyzerService {
	return &analyzerService{
		extractor: extractor,
		entities:  entities,
		scorer:    scorer,
		suggester: suggester,
	}
}

// Analyze implements AnalyzerService. Only extraction failures and the
// emptiness check propagate; scoring and suggestion generation degrade
// internally and always produce a result.
func (a *analyzerService) Analyze(ctx context.Context, data []byte, filename, jobDescription string) (*models.Analysis, error) {
	start := time.Now()

	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	text, err := a.extractor.Extract(data, format)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyText
	}

	profile := a.entities.Extract(text)

	score := clampScore(a.scorer.Score(text, jobDescription))

	// The only stage that may touch the network.
	suggestions := a.suggester.Generate(ctx, text, jobDescription, profile, score)

	analysis := &models.Analysis{
		ID:             uuid.New(),
		ExtractedText:  text,
		Skills:         profile.Skills,
		Experience:     profile.Experience,
		Education:      profile.Education,
		ContactInfo:    profile.ContactInfo,
		JobMatchScore:  score,
		Suggestions:    suggestions,
		ProcessingTime: roundTo(time.Since(start).Seconds(), 2),
		CreatedAt:      time.Now().UTC(),
	}

	log.Printf("✅ Analysis %s completed in %.2fs (score %.1f, %d skills)",
		analysis.ID, analysis.ProcessingTime, analysis.JobMatchScore, len(analysis.Skills))

	return analysis, nil
}

// clampScore constrains a raw score to [0, 100] at one decimal.
func clampScore(score float64) float64 {
	if score < 0 || math.IsNaN(score) {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return roundTo(score, 1)
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
