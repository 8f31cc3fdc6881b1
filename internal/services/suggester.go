package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"smartresume/resume-analyzer/internal/models"
)

const maxSuggestions = 5

// SuggestionGenerator produces up to five ranked improvement suggestions.
// Implementations never fail; the LLM-backed generator degrades silently
// to its deterministic fallback.
type SuggestionGenerator interface {
	Generate(ctx context.Context, resumeText, jobText string, profile models.CandidateProfile, score float64) []string
}

type ruleSuggester struct{}

// NewRuleSuggester returns the deterministic rule-based generator.
func NewRuleSuggester() SuggestionGenerator {
	return ruleSuggester{}
}

func (ruleSuggester) Generate(_ context.Context, _, _ string, profile models.CandidateProfile, score float64) []string {
	var suggestions []string

	if score < 30 {
		suggestions = append(suggestions, "Your resume has low similarity to the job requirements. Consider tailoring it more specifically to the role.")
	} else if score < 60 {
		suggestions = append(suggestions, "Good foundation, but there's room for improvement in aligning your experience with job requirements.")
	}

	if len(profile.Skills) < 5 {
		suggestions = append(suggestions, "Add more relevant technical and soft skills that match the job description.")
	}

	if len(profile.Experience) < 2 {
		suggestions = append(suggestions, "Include more detailed work experience with specific achievements and responsibilities.")
	}

	suggestions = append(suggestions,
		"Use action verbs to describe your accomplishments (achieved, implemented, led, etc.)",
		"Include quantifiable results and metrics where possible (increased sales by 20%, managed team of 10, etc.)",
		"Ensure your resume is ATS-friendly with clear section headers and standard formatting",
	)

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

type llmSuggester struct {
	gemini   GeminiService
	fallback SuggestionGenerator
	timeout  time.Duration
}

// NewLLMSuggester decorates the fallback generator with a Gemini-backed
// one. Any transport error, timeout, or unparsable response falls through
// to the fallback; nothing here surfaces as a request-level error.
func NewLLMSuggester(gemini GeminiService, fallback SuggestionGenerator, timeout time.Duration) SuggestionGenerator {
	return &llmSuggester{
		gemini:   gemini,
		fallback: fallback,
		timeout:  timeout,
	}
}

func (s *llmSuggester) Generate(ctx context.Context, resumeText, jobText string, profile models.CandidateProfile, score float64) []string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildSuggestionPrompt(resumeText, jobText, profile, score)

	response, err := s.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		log.Printf("⚠️  Suggestion generation failed, using fallback: %v", err)
		return s.fallback.Generate(ctx, resumeText, jobText, profile, score)
	}

	suggestions := parseSuggestionLines(response)
	if len(suggestions) == 0 {
		return s.fallback.Generate(ctx, resumeText, jobText, profile, score)
	}

	return suggestions
}

// buildSuggestionPrompt assembles a bounded single-turn prompt: resume
// capped at 2000 chars, job description at 1000, plus a slice of the
// extracted profile and the score.
func buildSuggestionPrompt(resumeText, jobText string, profile models.CandidateProfile, score float64) string {
	var sb strings.Builder

	sb.WriteString("You are an expert resume analyst and career advisor. Analyze this resume against the job description and provide specific improvement suggestions.\n\n")

	sb.WriteString("RESUME CONTENT:\n")
	sb.WriteString(truncateChars(resumeText, 2000))
	sb.WriteString("\n\nJOB DESCRIPTION:\n")
	sb.WriteString(truncateChars(jobText, 1000))

	sb.WriteString("\n\nEXTRACTED DATA:\n")
	sb.WriteString("- Skills: " + strings.Join(capList(profile.Skills, 10), ", ") + "\n")
	sb.WriteString("- Experience: " + strings.Join(capList(profile.Experience, 5), ", ") + "\n")
	sb.WriteString("- Education: " + strings.Join(capList(profile.Education, 3), ", ") + "\n")

	sb.WriteString(fmt.Sprintf("\nMATCH SCORE: %.1f%%\n\n", score))

	sb.WriteString("Please provide 3-5 specific, actionable suggestions to improve this resume for the target job. Focus on:\n")
	sb.WriteString("1. Missing skills or keywords from the job description\n")
	sb.WriteString("2. Experience gaps or improvements\n")
	sb.WriteString("3. Format and presentation enhancements\n")
	sb.WriteString("4. Quantifiable achievements to add\n\n")
	sb.WriteString("Return ONLY the suggestions as a numbered list, one suggestion per line.")

	return sb.String()
}

var bulletPrefixRe = regexp.MustCompile(`^[\d\-•.)\s]+`)

// parseSuggestionLines keeps lines opening with a digit, dash, or bullet,
// strips the marker, and collects up to five non-empty results.
func parseSuggestionLines(response string) []string {
	var suggestions []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		first, _ := utf8.DecodeRuneInString(line)
		if !unicode.IsDigit(first) && first != '-' && first != '•' {
			continue
		}

		clean := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
		if clean == "" {
			continue
		}

		suggestions = append(suggestions, clean)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func truncateChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func capList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
