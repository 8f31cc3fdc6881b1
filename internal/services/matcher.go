package services

import (
	"math"
	"regexp"
	"strings"
)

// SimilarityScorer compares resume text against a job description and
// returns a 0-100 match score. It never fails: degenerate inputs drop to
// a keyword-overlap ratio.
type SimilarityScorer interface {
	Score(resumeText, jobText string) float64
}

type tfidfScorer struct{}

func NewSimilarityScorer() SimilarityScorer {
	return &tfidfScorer{}
}

func (s *tfidfScorer) Score(resumeText, jobText string) float64 {
	if sim, ok := cosineTFIDF(strings.ToLower(resumeText), strings.ToLower(jobText)); ok {
		return sim * 100
	}
	return overlapRatio(resumeText, jobText)
}

var wordRe = regexp.MustCompile(`\b\w\w+\b`)

// contentTokens splits lower-cased text into word tokens of at least two
// characters with stop-words removed.
func contentTokens(text string) []string {
	raw := wordRe.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// ngramCounts builds unigram and bigram term frequencies.
func ngramCounts(tokens []string) map[string]float64 {
	counts := make(map[string]float64, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}

// cosineTFIDF vectorizes the two texts jointly with smoothed idf over the
// two-document corpus and returns their cosine similarity. ok is false
// when the vocabulary collapses and the caller should fall back.
func cosineTFIDF(a, b string) (float64, bool) {
	ca := ngramCounts(contentTokens(a))
	cb := ngramCounts(contentTokens(b))
	if len(ca) == 0 || len(cb) == 0 {
		return 0, false
	}

	idf := func(term string) float64 {
		df := 0.0
		if ca[term] > 0 {
			df++
		}
		if cb[term] > 0 {
			df++
		}
		// smoothed: ln((1+n)/(1+df)) + 1 with n = 2 documents
		return math.Log(3.0/(1.0+df)) + 1.0
	}

	var dot, normA, normB float64
	for term, tf := range ca {
		w := tf * idf(term)
		normA += w * w
		if tfB, ok := cb[term]; ok {
			dot += w * tfB * idf(term)
		}
	}
	for term, tf := range cb {
		w := tf * idf(term)
		normB += w * w
	}

	if normA == 0 || normB == 0 {
		return 0, false
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

// overlapRatio is the degraded-mode score: the share of distinct job
// description words also present in the resume. The ratio is deliberately
// asymmetric (divided by job-description vocabulary only).
func overlapRatio(resumeText, jobText string) float64 {
	resumeWords := distinctWords(resumeText)
	jobWords := distinctWords(jobText)
	if len(jobWords) == 0 {
		return 0
	}

	common := 0
	for word := range jobWords {
		if _, ok := resumeWords[word]; ok {
			common++
		}
	}

	return float64(common) / float64(len(jobWords)) * 100
}

func distinctWords(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = struct{}{}
	}
	return words
}

var stopWords = func() map[string]struct{} {
	list := []string{
		"about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "did", "do",
		"does", "doing", "down", "during", "each", "few", "for", "from",
		"further", "had", "has", "have", "having", "he", "her", "here",
		"hers", "herself", "him", "himself", "his", "how", "if", "in",
		"into", "is", "it", "its", "itself", "just", "me", "more", "most",
		"my", "myself", "no", "nor", "not", "now", "of", "off", "on",
		"once", "only", "or", "other", "our", "ours", "ourselves", "out",
		"over", "own", "same", "she", "should", "so", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "themselves",
		"then", "there", "these", "they", "this", "those", "through", "to",
		"too", "under", "until", "up", "very", "was", "we", "were", "what",
		"when", "where", "which", "while", "who", "whom", "why", "will",
		"with", "you", "your", "yours", "yourself", "yourselves",
	}
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		set[w] = struct{}{}
	}
	return set
}()
