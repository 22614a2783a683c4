package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/skillmatch/internal/prompts"
	"github.com/jonathan/skillmatch/internal/schemas"
)

// GeminiProvider evaluates (profile, job) pairs with Google Gemini.
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a Gemini-backed scoring provider.
func NewGeminiProvider(ctx context.Context, config *Config, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, config: config}, nil
}

// Name identifies the provider in logs and chain transitions.
func (g *GeminiProvider) Name() string { return "gemini" }

// Evaluate sends the pair summary to Gemini in JSON response mode and
// validates the reply against the evaluation schema. Any malformed
// response is returned as an error so the chain can advance.
func (g *GeminiProvider) Evaluate(ctx context.Context, profile ProfileSummary, job JobSummary) (*Evaluation, error) {
	modelName := g.config.Model(TierLite)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured")
	}

	model := g.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildEvaluatePrompt(profile, job)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	text = CleanJSONBlock(text)

	if err := schemas.ValidateEvaluation([]byte(text)); err != nil {
		return nil, fmt.Errorf("provider response rejected: %w", err)
	}

	var evaluation Evaluation
	if err := json.Unmarshal([]byte(text), &evaluation); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w (content: %s)", err, text)
	}

	return &evaluation, nil
}

// Close releases the underlying client.
func (g *GeminiProvider) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// buildEvaluatePrompt fills the evaluate-pair template with the summaries.
func buildEvaluatePrompt(profile ProfileSummary, job JobSummary) string {
	template := prompts.MustGet("scoring.json", "evaluate-pair")
	return prompts.Format(template, map[string]string{
		"ProfileSkills":      orUnspecified(strings.Join(profile.Skills, ", ")),
		"ExperienceYears":    fmt.Sprintf("%.1f", profile.ExperienceYears),
		"Locations":          orUnspecified(strings.Join(profile.Locations, ", ")),
		"WorkModes":          orUnspecified(strings.Join(profile.WorkModes, ", ")),
		"Narrative":          orUnspecified(truncate(profile.Narrative, 1200)),
		"JobTitle":           orUnspecified(job.Title),
		"RequiredSkills":     orUnspecified(strings.Join(job.RequiredSkills, ", ")),
		"MinExperienceYears": fmt.Sprintf("%.1f", job.MinExperienceYears),
		"JobLocation":        orUnspecified(job.Location),
		"JobWorkMode":        orUnspecified(job.WorkMode),
		"Description":        orUnspecified(truncate(job.Description, 1200)),
	})
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
