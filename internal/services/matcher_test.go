package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIdenticalTexts(t *testing.T) {
	scorer := NewSimilarityScorer()

	text := "Senior backend engineer with Go, PostgreSQL and Kubernetes experience building distributed systems"
	score := scorer.Score(text, text)

	assert.InDelta(t, 100, score, 0.5)
}

func TestScoreDisjointTexts(t *testing.T) {
	scorer := NewSimilarityScorer()

	score := scorer.Score("alpha bravo charlie delta", "echo foxtrot golf hotel")
	assert.Equal(t, 0.0, score)
}

func TestScoreEmptyJobDescription(t *testing.T) {
	scorer := NewSimilarityScorer()

	score := scorer.Score("a perfectly fine resume text", "")
	assert.Equal(t, 0.0, score)
}

func TestScoreEmptyResume(t *testing.T) {
	scorer := NewSimilarityScorer()

	score := scorer.Score("", "backend engineer wanted")
	assert.Equal(t, 0.0, score)
}

func TestScoreAlwaysInRange(t *testing.T) {
	scorer := NewSimilarityScorer()

	pairs := [][2]string{
		{"a", "b"},
		{"a", "a"},
		{"x", "x x x x x x x x"},
		{"the and of", "of the and"},
		{"!!! ??? ...", "###"},
		{strings.Repeat("engineer ", 500), "engineer"},
		{"résumé naïve café", "café naïve"},
	}

	for _, p := range pairs {
		score := p
		got := scorer.Score(score[0], score[1])
		assert.GreaterOrEqual(t, got, 0.0, "pair %q", p)
		assert.LessOrEqual(t, got, 100.0, "pair %q", p)
	}
}

func TestScoreSharedSkillsBeatDisjoint(t *testing.T) {
	scorer := NewSimilarityScorer()

	resume := "Experienced developer skilled in python javascript react building web applications"
	matching := "Looking for a developer with python javascript react skills for web applications"
	unrelated := "Chef needed for italian restaurant kitchen pasta pizza"

	assert.Greater(t, scorer.Score(resume, matching), scorer.Score(resume, unrelated))
}

func TestOverlapRatioAsymmetric(t *testing.T) {
	// common words / distinct job words, not Jaccard
	score := overlapRatio("go rust python java kotlin swift", "go rust")
	assert.Equal(t, 100.0, score)

	reverse := overlapRatio("go rust", "go rust python java kotlin swift")
	assert.InDelta(t, 100.0/3.0, reverse, 0.01)
}

func TestOverlapRatioNoJobTokens(t *testing.T) {
	assert.Equal(t, 0.0, overlapRatio("resume text", "   "))
}

func TestContentTokensDropStopWordsAndShortTokens(t *testing.T) {
	tokens := contentTokens("the quick brown fox is a go pro")

	assert.Contains(t, tokens, "quick")
	assert.Contains(t, tokens, "brown")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "is")
	assert.NotContains(t, tokens, "a")
}
