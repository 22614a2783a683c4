package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/store"
	"github.com/jonathan/skillmatch/internal/types"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const profilesFixture = `[
  {
    "id": "profile-1",
    "narrative_text": "Senior backend engineer working with Python and PostgreSQL",
    "skills": [
      {"skill_id": "python", "proficiency_level": "expert", "years": 6},
      {"skill_id": "postgres", "proficiency_level": "advanced"}
    ],
    "total_experience_years": 6
  }
]`

const jobsFixture = `[
  {
    "id": "job-1",
    "title": "Python Developer",
    "description_text": "Develop Python services with PostgreSQL storage",
    "required_skills": [
      {"skill_id": "python", "min_level": "intermediate", "importance_weight": 1.0}
    ],
    "active": true
  },
  {
    "id": "job-2",
    "title": "Data Scientist",
    "description_text": "Machine learning model development",
    "required_skills": [
      {"skill_id": "machine_learning", "min_level": "advanced", "importance_weight": 1.0, "mandatory": true}
    ],
    "active": true
  }
]`

func TestLoadProfilesAndJobs(t *testing.T) {
	mem := store.NewMemory()

	n, err := loadProfiles(mem, writeFixture(t, "profiles.json", profilesFixture))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = loadJobs(mem, writeFixture(t, "jobs.json", jobsFixture))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	profile, err := mem.GetProfile(context.Background(), "profile-1")
	require.NoError(t, err)
	assert.Len(t, profile.Skills, 2)
}

func TestLoadProfiles_BadInput(t *testing.T) {
	mem := store.NewMemory()

	_, err := loadProfiles(mem, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = loadProfiles(mem, writeFixture(t, "bad.json", `{"not": "an array"}`))
	assert.Error(t, err)
}

func TestBuildMatcher_EndToEnd(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	profiles := writeFixture(t, "profiles.json", profilesFixture)
	jobs := writeFixture(t, "jobs.json", jobsFixture)

	cfg := config.Default()
	cfg.LogLevel = "error"
	require.NoError(t, cfg.Validate())

	matcher, cleanup, err := buildMatcher(context.Background(), cfg, profiles, jobs)
	require.NoError(t, err)
	defer cleanup()

	results, err := matcher.Match(context.Background(), "profile-1", nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The Python role clearly beats the mandatory-gap data science role.
	assert.Equal(t, "job-1", results[0].JobID)
	assert.Greater(t, results[0].OverallScore, results[1].OverallScore)
	assert.True(t, results[1].OverallScore < 40)
}

func TestWriteJSON_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	require.NoError(t, writeJSON(path, []types.MatchResult{{JobID: "job-1"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var results []types.MatchResult
	require.NoError(t, json.Unmarshal(data, &results))
	assert.Equal(t, "job-1", results[0].JobID)
}
