package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/engine"
	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/scoring"
	"github.com/jonathan/skillmatch/internal/store"
	"github.com/jonathan/skillmatch/internal/taxonomy"
	"github.com/jonathan/skillmatch/internal/types"
)

// loadConfig reads the config file when given, otherwise defaults plus
// environment.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// loadProfiles reads a JSON array of profiles into the store.
func loadProfiles(mem *store.Memory, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}

	var profiles []types.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return 0, fmt.Errorf("failed to unmarshal profiles JSON: %w", err)
	}

	for i := range profiles {
		if err := profiles[i].Validate(); err != nil {
			return 0, fmt.Errorf("invalid profile %q: %w", profiles[i].ID, err)
		}
		mem.PutProfile(&profiles[i])
	}
	return len(profiles), nil
}

// loadJobs reads a JSON array of job postings into the store.
func loadJobs(mem *store.Memory, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read jobs file %s: %w", path, err)
	}

	var jobs []types.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		return 0, fmt.Errorf("failed to unmarshal jobs JSON: %w", err)
	}

	for i := range jobs {
		if err := jobs[i].Validate(); err != nil {
			return 0, fmt.Errorf("invalid job posting %q: %w", jobs[i].ID, err)
		}
		mem.PutJob(&jobs[i])
	}
	return len(jobs), nil
}

// buildMatcher assembles the full engine from config and file-loaded data.
// The returned cleanup releases provider clients.
func buildMatcher(ctx context.Context, cfg *config.Config, profilesPath, jobsPath string) (*engine.Matcher, func(), error) {
	level := cfg.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tax, err := taxonomy.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load skill taxonomy: %w", err)
	}

	mem := store.NewMemory()
	if _, err := loadProfiles(mem, profilesPath); err != nil {
		return nil, nil, err
	}
	if _, err := loadJobs(mem, jobsPath); err != nil {
		return nil, nil, err
	}

	var providers []llm.Provider
	cleanup := func() { _ = log.Sync() }
	if cfg.APIKey != "" {
		gemini, err := llm.NewGeminiProvider(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini provider: %w", err)
		}
		providers = append(providers, gemini)
		cleanup = func() {
			_ = gemini.Close()
			_ = log.Sync()
		}
	} else {
		log.Warn("no API key configured, qualitative scoring disabled",
			zap.String("env", "GEMINI_API_KEY"))
	}

	chain := llm.NewChain(providers, cfg.ProviderTimeout(), log)
	scorer := scoring.New(tax, chain, cfg.ScorerOptions(), log)
	resultCache := cache.New(cache.WithMaxSize(cfg.CacheMaxSize))

	matcher := engine.New(mem, mem, scorer, resultCache, engine.Config{
		Weights:       cfg.EffectiveWeights(),
		CacheTTL:      cfg.CacheTTL(),
		ConfigVersion: cfg.ConfigVersion,
	}, log)

	if err := matcher.RebuildIndex(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to build term vector index: %w", err)
	}

	return matcher, cleanup, nil
}

// writeJSON marshals v with indentation to path, or stdout when path is
// empty.
func writeJSON(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(jsonOutput))
		return err
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
