package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() AnalyzerService {
	return NewAnalyzerService(
		NewTextExtractor(),
		NewEntityExtractor(nil, nil),
		NewSimilarityScorer(),
		NewRuleSuggester(),
	)
}

func TestAnalyzePlainTextResume(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := "We are hiring a developer with Python, JavaScript and React experience."
	analysis, err := analyzer.Analyze(context.Background(), []byte(sampleResume), "resume.txt", job)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, analysis.ID)
	assert.NotEmpty(t, analysis.ExtractedText)
	assert.False(t, analysis.CreatedAt.IsZero())
	assert.GreaterOrEqual(t, analysis.ProcessingTime, 0.0)

	assert.Subset(t, analysis.Skills, []string{"python", "javascript", "react"})
	assert.Equal(t, "john.smith@email.com", analysis.ContactInfo.Email)
	assert.Equal(t, "(555) 123-4567", analysis.ContactInfo.Phone)

	assert.GreaterOrEqual(t, analysis.JobMatchScore, 0.0)
	assert.LessOrEqual(t, analysis.JobMatchScore, 100.0)
	assert.Greater(t, analysis.JobMatchScore, 0.0)

	assert.NotEmpty(t, analysis.Suggestions)
	assert.LessOrEqual(t, len(analysis.Suggestions), 5)
}

func TestAnalyzeEmptyFile(t *testing.T) {
	analyzer := newTestAnalyzer()

	_, err := analyzer.Analyze(context.Background(), []byte(""), "resume.txt", "any job")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestAnalyzeWhitespaceOnlyFile(t *testing.T) {
	analyzer := newTestAnalyzer()

	_, err := analyzer.Analyze(context.Background(), []byte("   \n\t  \n"), "resume.txt", "any job")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestAnalyzeUnsupportedExtension(t *testing.T) {
	analyzer := newTestAnalyzer()

	_, err := analyzer.Analyze(context.Background(), []byte("content"), "resume.xyz", "any job")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestAnalyzeIdenticalTextsScoreNearMax(t *testing.T) {
	analyzer := newTestAnalyzer()

	text := "Backend engineer building Go services with PostgreSQL and Docker"
	analysis, err := analyzer.Analyze(context.Background(), []byte(text), "resume.txt", text)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, analysis.JobMatchScore, 99.0)
}

func TestAnalyzeDisjointTextsScoreZero(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze(context.Background(),
		[]byte("alpha bravo charlie"), "resume.txt", "echo foxtrot golf")
	require.NoError(t, err)

	assert.Equal(t, 0.0, analysis.JobMatchScore)
}

func TestAnalyzeRepeatableProfile(t *testing.T) {
	analyzer := newTestAnalyzer()

	job := "Python developer"
	first, err := analyzer.Analyze(context.Background(), []byte(sampleResume), "resume.txt", job)
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), []byte(sampleResume), "resume.txt", job)
	require.NoError(t, err)

	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, first.Experience, second.Experience)
	assert.Equal(t, first.Education, second.Education)
	assert.Equal(t, first.JobMatchScore, second.JobMatchScore)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.34, 42.3},
		{42.35, 42.4},
		{99.99, 100},
		{150, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampScore(tt.in), "clampScore(%v)", tt.in)
	}
}
