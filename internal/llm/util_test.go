package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestBuildEvaluatePrompt_FillsAllPlaceholders(t *testing.T) {
	profile := ProfileSummary{
		Skills:          []string{"Go", "SQL"},
		ExperienceYears: 5,
		Locations:       []string{"Singapore"},
		WorkModes:       []string{"remote"},
		Narrative:       "Backend engineer.",
	}
	job := JobSummary{
		Title:              "Platform Engineer",
		RequiredSkills:     []string{"Go (advanced, mandatory)"},
		MinExperienceYears: 3,
		Location:           "Singapore",
		WorkMode:           "onsite",
		Description:        "Build the platform.",
	}

	prompt := buildEvaluatePrompt(profile, job)
	assert.NotContains(t, prompt, "{{.")
	assert.Contains(t, prompt, "Go, SQL")
	assert.Contains(t, prompt, "Platform Engineer")
}

func TestBuildEvaluatePrompt_EmptyFields(t *testing.T) {
	prompt := buildEvaluatePrompt(ProfileSummary{}, JobSummary{})
	assert.NotContains(t, prompt, "{{.")
	assert.Contains(t, prompt, "Not specified")
}
