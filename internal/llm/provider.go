// Package llm provides the external scoring provider contract, a Gemini
// implementation, and the fallback chain the scorer calls through.
package llm

import (
	"context"
	"strings"
)

// ProfileSummary is the structured candidate summary sent to a provider.
// It is deliberately flat: providers receive text, not internal types.
type ProfileSummary struct {
	Skills          []string
	ExperienceYears float64
	Locations       []string
	WorkModes       []string
	Narrative       string
}

// JobSummary is the structured job summary sent to a provider.
type JobSummary struct {
	Title              string
	RequiredSkills     []string
	MinExperienceYears float64
	Location           string
	WorkMode           string
	Description        string
}

// Evaluation is a provider's qualitative judgement of a (profile, job)
// pair. Score is in [0,1].
type Evaluation struct {
	Score     float64 `json:"qualitative_score"`
	Reasoning string  `json:"reasoning"`
}

// Provider is an external qualitative-reasoning service. Implementations
// must respect ctx cancellation; a timeout is treated by the chain exactly
// like an explicit failure.
type Provider interface {
	Name() string
	Evaluate(ctx context.Context, profile ProfileSummary, job JobSummary) (*Evaluation, error)
}

// StaticProvider returns a fixed evaluation for every pair. Used in tests
// and for offline runs where no remote provider is configured.
type StaticProvider struct {
	Score     float64
	Reasoning string
	Err       error
}

// Name identifies the provider in logs.
func (s *StaticProvider) Name() string { return "static" }

// Evaluate returns the fixed response, or the fixed error.
func (s *StaticProvider) Evaluate(ctx context.Context, profile ProfileSummary, job JobSummary) (*Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	reasoning := s.Reasoning
	if reasoning == "" {
		reasoning = "Fixed-response evaluation for " + strings.TrimSpace(job.Title) + "."
	}
	return &Evaluation{Score: s.Score, Reasoning: reasoning}, nil
}
