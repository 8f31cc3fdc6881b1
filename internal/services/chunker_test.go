package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextEmpty(t *testing.T) {
	chunker := NewTextChunker()

	assert.Nil(t, chunker.ChunkText("", 1000, 200))
	assert.Nil(t, chunker.ChunkText("   \n\n  \n\n", 1000, 200))
}

func TestChunkTextSingleParagraph(t *testing.T) {
	chunker := NewTextChunker()

	text := "A short resume paragraph that fits comfortably in one chunk."
	chunks := chunker.ChunkText(text, 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkTextPacksSmallParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("First paragraph.\n\nSecond paragraph.", 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, "First paragraph. Second paragraph.", chunks[0])
}

func TestChunkTextOverlap(t *testing.T) {
	chunker := NewTextChunker()

	first := strings.Repeat("a", 400)
	second := strings.Repeat("b", 400)
	chunks := chunker.ChunkText(first+"\n\n"+second, 500, 100)

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])

	// The second chunk carries the tail of the first.
	tail := first[len(first)-100:]
	assert.True(t, strings.HasPrefix(chunks[1], tail+" "))
	assert.Contains(t, chunks[1], second)
}

func TestChunkTextSplitsOversizedParagraph(t *testing.T) {
	chunker := NewTextChunker()

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString(strings.Repeat("x", 80))
		sb.WriteString(". ")
	}
	chunks := chunker.ChunkText(sb.String(), 200, 0)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 200)
	}
}

func TestChunkTextDefaults(t *testing.T) {
	chunker := NewTextChunker()

	// Non-positive size and out-of-range overlap fall back to sane values.
	chunks := chunker.ChunkText("some resume text", 0, -1)
	require.Len(t, chunks, 1)
	assert.Equal(t, "some resume text", chunks[0])
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First sentence. Second one! Third? ")
	assert.Equal(t, []string{"First sentence", "Second one", "Third"}, got)
}

func TestLastChars(t *testing.T) {
	assert.Equal(t, "def", lastChars("abcdef", 3))
	assert.Equal(t, "ab", lastChars("ab", 5))
	assert.Equal(t, "né", lastChars("résumé né", 2))
}
