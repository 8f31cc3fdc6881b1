package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"smartresume/resume-analyzer/internal/models"
)

// EntityExtractor turns extracted resume text into a structured candidate
// profile. The strategy (model-backed or pattern-based) is fixed at
// construction time.
type EntityExtractor interface {
	Extract(text string) models.CandidateProfile
}

// NewEntityExtractor selects the extraction strategy. With a language
// model the primary strategy runs a linguistic parse as preprocessing and
// then applies the shared pattern rules; without one the pattern-based
// fallback handles the whole operation. Both share identical rule
// semantics. A nil vocab uses the built-in skill vocabulary.
func NewEntityExtractor(vocab []string, model LanguageModel) EntityExtractor {
	if vocab == nil {
		vocab = DefaultSkillVocabulary()
	}
	fallback := &patternExtractor{vocab: vocab}
	if model == nil {
		return fallback
	}
	return &modelExtractor{model: model, fallback: fallback}
}

type modelExtractor struct {
	model    LanguageModel
	fallback *patternExtractor
}

func (m *modelExtractor) Extract(text string) models.CandidateProfile {
	// The parse is preprocessing only: it validates the text is
	// linguistically tokenizable. The extraction rules themselves are the
	// same pattern rules the fallback applies.
	if _, err := m.model.Tokenize(text); err != nil {
		return m.fallback.Extract(text)
	}
	return applyEntityRules(text, m.fallback.vocab)
}

type patternExtractor struct {
	vocab []string
}

func (p *patternExtractor) Extract(text string) models.CandidateProfile {
	return applyEntityRules(text, p.vocab)
}

// DefaultSkillVocabulary returns the curated skill terms matched against
// resume text. Entries are matched by case-insensitive containment.
func DefaultSkillVocabulary() []string {
	return []string{
		// Technical skills
		"python", "javascript", "react", "angular", "vue", "node.js", "express",
		"sql", "mysql", "postgresql", "mongodb", "html", "css", "java", "c++",
		"c#", "php", "ruby", "go", "rust", "swift", "kotlin", "dart", "flutter",
		"machine learning", "data science", "artificial intelligence", "deep learning",
		"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "matplotlib",
		"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "github",
		"gitlab", "ci/cd", "devops", "agile", "scrum", "project management",

		// Soft skills
		"leadership", "communication", "teamwork", "problem solving", "analytical",
		"critical thinking", "time management", "adaptability", "creativity",
		"attention to detail", "multitasking", "interpersonal", "negotiation",
	}
}

// patternRule pairs a regular expression with a formatter producing one
// entry per match. A formatter returning "" drops the match.
type patternRule struct {
	re     *regexp.Regexp
	format func(match []string) string
}

var (
	experienceHeaderRe = regexp.MustCompile(`(?i)\b(?:experience|work history|employment)\b`)
	blankLineRe        = regexp.MustCompile(`\n\s*\n`)
	capitalLineRe      = regexp.MustCompile(`\n[A-Z]`)
	yearsOfExpRe       = regexp.MustCompile(`(?i)(\d+)[\s-]*(?:year|yr)s?\s*(?:of\s*)?(?:experience|exp)`)
	emailRe            = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe            = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
)

// experienceSectionRules run inside each experience section.
var experienceSectionRules = []patternRule{
	{
		// "2019-2021 Acme Corp" or "2020 - present: Staff Engineer"
		re: regexp.MustCompile(`(\d{4}\s*[-–]\s*(?:\d{4}|[Pp]resent|[Cc]urrent))\s*[:\-]?\s*([A-Z][A-Za-z\s&,.]+)`),
		format: func(m []string) string {
			name := strings.TrimSpace(m[2])
			if len(name) <= 3 {
				return ""
			}
			return name + " (" + collapseSpaces(m[1]) + ")"
		},
	},
}

var educationRules = []patternRule{
	{
		// Degree keyword with an optional field of study
		re: regexp.MustCompile(`(?i)\b(?:bachelor|master|phd|doctorate|degree|diploma|certification|bs|ms|mba|ba|ma)\b(?:\s+(?:of|in)\s+[A-Za-z][A-Za-z ]*)?`),
		format: func(m []string) string {
			return strings.TrimSpace(m[0])
		},
	},
	{
		// "Stanford University", "Boston College", ...
		re: regexp.MustCompile(`\b[A-Z][a-z]+\s+(?:[Uu]niversity|[Cc]ollege|[Ii]nstitute)\b`),
		format: func(m []string) string {
			return strings.TrimSpace(m[0])
		},
	},
}

// applyEntityRules holds the rule semantics shared by both strategies.
func applyEntityRules(text string, vocab []string) models.CandidateProfile {
	return models.CandidateProfile{
		Skills:      extractSkills(text, vocab),
		Experience:  extractExperience(text),
		Education:   extractEducation(text),
		ContactInfo: extractContactInfo(text),
	}
}

func extractSkills(text string, vocab []string) []string {
	textLower := strings.ToLower(text)

	skills := make(map[string]struct{})
	for _, skill := range vocab {
		if strings.Contains(textLower, skill) {
			skills[strings.ToLower(skill)] = struct{}{}
		}
	}

	return sortedSet(skills)
}

func extractExperience(text string) []string {
	entries := make(map[string]struct{})

	for _, section := range experienceSections(text) {
		for _, rule := range experienceSectionRules {
			for _, m := range rule.re.FindAllStringSubmatch(section, -1) {
				if entry := rule.format(m); entry != "" {
					entries[entry] = struct{}{}
				}
			}
		}
	}

	// "N years of experience" phrases anywhere in the text; keep the max N.
	maxYears := -1
	for _, m := range yearsOfExpRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxYears {
			maxYears = n
		}
	}
	if maxYears >= 0 {
		entries[strconv.Itoa(maxYears)+" years of experience"] = struct{}{}
	}

	return sortedSet(entries)
}

// experienceSections slices out regions introduced by an experience-style
// header, running to the next blank line or the next capitalized header.
func experienceSections(text string) []string {
	var sections []string
	for _, loc := range experienceHeaderRe.FindAllStringIndex(text, -1) {
		rest := text[loc[0]:]
		end := len(rest)
		if b := blankLineRe.FindStringIndex(rest); b != nil && b[0] < end {
			end = b[0]
		}
		if c := capitalLineRe.FindStringIndex(rest); c != nil && c[0] < end {
			end = c[0]
		}
		sections = append(sections, rest[:end])
	}
	return sections
}

func extractEducation(text string) []string {
	entries := make(map[string]struct{})
	for _, rule := range educationRules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			if entry := rule.format(m); entry != "" {
				entries[entry] = struct{}{}
			}
		}
	}
	return sortedSet(entries)
}

func extractContactInfo(text string) models.ContactInfo {
	var info models.ContactInfo
	if email := emailRe.FindString(text); email != "" {
		info.Email = email
	}
	if phone := phoneRe.FindString(text); phone != "" {
		info.Phone = phone
	}
	return info
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for entry := range set {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
