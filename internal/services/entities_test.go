package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Smith
Email: john.smith@email.com
Phone: (555) 123-4567

Skills: Python, JavaScript, React, Docker, Leadership

Work Experience
2019-2021 Acme Corporation
2021 - present Globex Inc

5 years of experience in software development.

Education
Bachelor of Science in Computer Science
Stanford University`

func TestExtractProfileFromSampleResume(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)
	profile := extractor.Extract(sampleResume)

	assert.Subset(t, profile.Skills, []string{"python", "javascript", "react", "docker", "leadership"})
	assert.Equal(t, "john.smith@email.com", profile.ContactInfo.Email)
	assert.Equal(t, "(555) 123-4567", profile.ContactInfo.Phone)
	assert.Contains(t, profile.Experience, "5 years of experience")
	assert.Contains(t, profile.Education, "Stanford University")
}

func TestExtractSkillsDeduplicated(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)

	text := "Python developer. Python, python and more Python. Also Docker and docker."
	profile := extractor.Extract(text)

	counts := make(map[string]int)
	for _, s := range profile.Skills {
		counts[s]++
	}
	assert.Equal(t, 1, counts["python"])
	assert.Equal(t, 1, counts["docker"])
}

func TestExtractSkillsLowercased(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)
	profile := extractor.Extract("Expert in PYTHON and Machine Learning")

	assert.Contains(t, profile.Skills, "python")
	assert.Contains(t, profile.Skills, "machine learning")
}

func TestExtractExperienceDateRanges(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)

	text := "Experience\n2018-2020 Initech Systems\n2020 - present Hooli Labs"
	profile := extractor.Extract(text)

	assert.Contains(t, profile.Experience, "Initech Systems (2018-2020)")
	assert.Contains(t, profile.Experience, "Hooli Labs (2020 - present)")
}

func TestExtractExperienceYearsKeepsMax(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)

	text := "3 years of experience with Go. Previously 10 years of experience in ops. 7 yrs experience overall."
	profile := extractor.Extract(text)

	assert.Contains(t, profile.Experience, "10 years of experience")
	assert.NotContains(t, profile.Experience, "3 years of experience")
	assert.NotContains(t, profile.Experience, "7 years of experience")
}

func TestExtractExperienceStopsAtBlankLine(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)

	text := "Employment\n2015-2017 Wayne Enterprises\n\n2018-2019 Stark Industries"
	profile := extractor.Extract(text)

	assert.Contains(t, profile.Experience, "Wayne Enterprises (2015-2017)")
	assert.NotContains(t, profile.Experience, "Stark Industries (2018-2019)")
}

func TestExtractEducationDegrees(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"bachelor with field", "Earned a Bachelor of Science.", "Bachelor of Science"},
		{"master keyword", "Holds a Master of Engineering.", "Master of Engineering"},
		{"degree keyword", "Completed a degree in Physics", "degree in Physics"},
		{"mba", "MBA, class of 2015", "MBA"},
		{"institution", "Graduated from Cornell University in 2012", "Cornell University"},
		{"college", "Attended Boston College", "Boston College"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := extractor.Extract(tt.text)
			assert.Contains(t, profile.Education, tt.want)
		})
	}
}

func TestExtractEducationDeduplicated(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)

	profile := extractor.Extract("Stanford University. Later returned to Stanford University.")

	count := 0
	for _, e := range profile.Education {
		if e == "Stanford University" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractContactInfoAbsent(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)
	profile := extractor.Extract("A resume with no contact details at all")

	assert.Empty(t, profile.ContactInfo.Email)
	assert.Empty(t, profile.ContactInfo.Phone)
}

func TestExtractContactInfoFirstMatchWins(t *testing.T) {
	extractor := NewEntityExtractor(nil, nil)

	text := "first@example.com and second@example.com\n555-111-2222 or 555-333-4444"
	profile := extractor.Extract(text)

	assert.Equal(t, "first@example.com", profile.ContactInfo.Email)
	assert.Equal(t, "555-111-2222", profile.ContactInfo.Phone)
}

type failingModel struct{}

func (failingModel) Tokenize(string) ([]string, error) {
	return nil, errors.New("model unavailable")
}

type passthroughModel struct{}

func (passthroughModel) Tokenize(text string) ([]string, error) {
	return []string{text}, nil
}

func TestModelStrategyMatchesFallback(t *testing.T) {
	withModel := NewEntityExtractor(nil, passthroughModel{})
	fallback := NewEntityExtractor(nil, nil)

	a := withModel.Extract(sampleResume)
	b := fallback.Extract(sampleResume)

	assert.Equal(t, b, a)
}

func TestModelFailureDelegatesToFallback(t *testing.T) {
	withModel := NewEntityExtractor(nil, failingModel{})
	fallback := NewEntityExtractor(nil, nil)

	require.Equal(t, fallback.Extract(sampleResume), withModel.Extract(sampleResume))
}
