package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/types"
)

// heuristicOnlyWeights exercise the scorer without a provider chain.
var heuristicOnlyWeights = Weights{Skills: 0.6, Experience: 0.25, Location: 0.15}

func newTestScorer(t *testing.T, chain *llm.Chain) *Scorer {
	t.Helper()
	opts := DefaultOptions()
	opts.TextSimilarityBlend = 0 // sub-score assertions stay exact
	return New(mustTaxonomy(t), chain, opts, zap.NewNop())
}

func testProfile() *types.Profile {
	return &types.Profile{
		ID: "profile-1",
		Skills: []types.ProfileSkill{
			{SkillID: "python", Level: types.LevelExpert, Years: 5},
			{SkillID: "sql", Level: types.LevelIntermediate},
		},
		TotalExperienceYears: 5,
		PreferredLocations:   []string{"Singapore"},
		PreferredWorkModes:   []types.WorkMode{types.WorkModeRemote},
	}
}

func TestScorer_InvalidWeights(t *testing.T) {
	scorer := newTestScorer(t, nil)

	_, err := scorer.Score(context.Background(), testProfile(), []*types.JobPosting{{ID: "job-1"}}, Weights{Skills: 0.9}, nil)

	var invalidErr *InvalidWeightsError
	require.Error(t, err)
	assert.True(t, errors.As(err, &invalidErr))
}

func TestScorer_RejectsOutOfRangeWeights(t *testing.T) {
	scorer := newTestScorer(t, nil)

	// Sums to 1.0, but the negative term would let a full skill match
	// score above 100.
	bad := Weights{Skills: 1.5, Experience: -0.5}

	job := &types.JobPosting{
		ID: "job-1",
		RequiredSkills: []types.RequiredSkill{
			{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0},
		},
	}

	_, err := scorer.ScoreOne(context.Background(), testProfile(), job, bad, nil)
	require.Error(t, err)
}

func TestScorer_EmptyInputs(t *testing.T) {
	scorer := newTestScorer(t, nil)

	_, err := scorer.Score(context.Background(), nil, []*types.JobPosting{{ID: "job-1"}}, heuristicOnlyWeights, nil)
	assert.Error(t, err)

	_, err = scorer.Score(context.Background(), testProfile(), nil, heuristicOnlyWeights, nil)
	assert.Error(t, err)
}

func TestScorer_MissingMandatorySkillSuppressesScore(t *testing.T) {
	scorer := newTestScorer(t, nil)

	job := &types.JobPosting{
		ID:       "job-1",
		Title:    "Backend Engineer",
		Location: "Singapore",
		WorkMode: types.WorkModeOnsite,
		RequiredSkills: []types.RequiredSkill{
			{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 0.7, Mandatory: true},
			{SkillID: "aws", MinLevel: types.LevelAdvanced, ImportanceWeight: 0.3, Mandatory: true},
		},
		MinExperienceYears: 3,
	}

	result, err := scorer.ScoreOne(context.Background(), testProfile(), job, heuristicOnlyWeights, nil)
	require.NoError(t, err)

	// Skill 0.7, experience 1.0, preference avg(location 1.0, mode 0.0)
	// = 0.5; the mandatory aws gap then suppresses the weighted sum.
	assert.InDelta(t, 0.7, result.SubScores.Skills, 1e-9)
	assert.InDelta(t, 1.0, result.SubScores.Experience, 1e-9)
	assert.InDelta(t, 0.5, result.SubScores.Location, 1e-9)
	assert.InDelta(t, 22.35, result.OverallScore, 1e-6)
	assert.LessOrEqual(t, result.OverallScore, 30.0)
	assert.False(t, result.Degraded)

	require.Len(t, result.MissingSkills, 1)
	assert.Equal(t, "aws", result.MissingSkills[0].SkillID)
	assert.NotEmpty(t, result.Reasoning)
	assert.False(t, result.ComputedAt.IsZero())
}

func TestScorer_RankingIsDeterministic(t *testing.T) {
	scorer := newTestScorer(t, nil)

	jobs := []*types.JobPosting{
		{
			ID: "job-weak",
			RequiredSkills: []types.RequiredSkill{
				{SkillID: "rust", MinLevel: types.LevelExpert, ImportanceWeight: 1.0},
			},
		},
		{
			ID: "job-strong",
			RequiredSkills: []types.RequiredSkill{
				{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0},
			},
		},
		{
			ID: "job-medium",
			RequiredSkills: []types.RequiredSkill{
				{SkillID: "sql", MinLevel: types.LevelAdvanced, ImportanceWeight: 1.0},
			},
		},
	}

	first, err := scorer.Score(context.Background(), testProfile(), jobs, heuristicOnlyWeights, nil)
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), testProfile(), jobs, heuristicOnlyWeights, nil)
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, "job-strong", first[0].JobID)

	for i := range first {
		assert.Equal(t, first[i].JobID, second[i].JobID)
		assert.InDelta(t, first[i].OverallScore, second[i].OverallScore, 1e-9)
	}
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].OverallScore, first[i].OverallScore)
	}
}

func TestScorer_TiesBreakOnJobID(t *testing.T) {
	scorer := newTestScorer(t, nil)

	// Identical requirements, identical scores.
	jobs := []*types.JobPosting{
		{ID: "job-b", RequiredSkills: []types.RequiredSkill{{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0}}},
		{ID: "job-a", RequiredSkills: []types.RequiredSkill{{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0}}},
	}

	results, err := scorer.Score(context.Background(), testProfile(), jobs, heuristicOnlyWeights, nil)
	require.NoError(t, err)

	assert.Equal(t, "job-a", results[0].JobID)
	assert.Equal(t, "job-b", results[1].JobID)
}

func TestScorer_QualitativeFromProvider(t *testing.T) {
	chain := llm.NewChain([]llm.Provider{
		&llm.StaticProvider{Score: 0.9, Reasoning: "Strong domain background."},
	}, 0, zap.NewNop())
	scorer := newTestScorer(t, chain)

	job := &types.JobPosting{
		ID: "job-1",
		RequiredSkills: []types.RequiredSkill{
			{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0},
		},
	}

	result, err := scorer.ScoreOne(context.Background(), testProfile(), job, DefaultWeights(), nil)
	require.NoError(t, err)

	require.NotNil(t, result.SubScores.Qualitative)
	assert.InDelta(t, 0.9, *result.SubScores.Qualitative, 1e-9)
	assert.False(t, result.Degraded)
	assert.Contains(t, result.Reasoning, "Strong domain background.")
}

func TestScorer_DegradesWhenAllProvidersFail(t *testing.T) {
	chain := llm.NewChain([]llm.Provider{
		&llm.StaticProvider{Err: errors.New("quota exhausted")},
		&llm.StaticProvider{Err: errors.New("service unavailable")},
	}, 0, zap.NewNop())
	scorer := newTestScorer(t, chain)

	jobs := []*types.JobPosting{
		{ID: "job-1", RequiredSkills: []types.RequiredSkill{{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0}}},
		{ID: "job-2", RequiredSkills: []types.RequiredSkill{{SkillID: "sql", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0}}},
	}

	results, err := scorer.Score(context.Background(), testProfile(), jobs, DefaultWeights(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.True(t, result.Degraded)
		assert.Nil(t, result.SubScores.Qualitative)
		assert.Greater(t, result.OverallScore, 0.0)
	}
}

func TestScorer_DegradedEqualsRedistributedHeuristics(t *testing.T) {
	failing := llm.NewChain([]llm.Provider{
		&llm.StaticProvider{Err: errors.New("down")},
	}, 0, zap.NewNop())

	job := &types.JobPosting{
		ID: "job-1",
		RequiredSkills: []types.RequiredSkill{
			{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 1.0},
		},
	}

	degraded, err := newTestScorer(t, failing).ScoreOne(context.Background(), testProfile(), job, DefaultWeights(), nil)
	require.NoError(t, err)

	baseline, err := newTestScorer(t, nil).ScoreOne(context.Background(), testProfile(), job, DefaultWeights().WithoutQualitative(), nil)
	require.NoError(t, err)

	assert.InDelta(t, baseline.OverallScore, degraded.OverallScore, 1e-9)
}

func TestScorer_TextSimilarityBlendsIntoSkills(t *testing.T) {
	opts := DefaultOptions()
	opts.TextSimilarityBlend = 0.5
	scorer := New(mustTaxonomy(t), nil, opts, zap.NewNop())

	// No requirements: assessment contributes 1.0, similarity 0.0.
	job := &types.JobPosting{ID: "job-1"}

	result, err := scorer.ScoreOne(context.Background(), testProfile(), job, heuristicOnlyWeights, func(*types.JobPosting) float64 {
		return 0.0
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.SubScores.Skills, 1e-9)
}

func TestScorer_ReasoningMentionsSkillGaps(t *testing.T) {
	scorer := newTestScorer(t, nil)

	job := &types.JobPosting{
		ID: "job-1",
		RequiredSkills: []types.RequiredSkill{
			{SkillID: "python", MinLevel: types.LevelIntermediate, ImportanceWeight: 0.5},
			{SkillID: "kubernetes", MinLevel: types.LevelAdvanced, ImportanceWeight: 0.5},
		},
	}

	result, err := scorer.ScoreOne(context.Background(), testProfile(), job, heuristicOnlyWeights, nil)
	require.NoError(t, err)

	assert.Contains(t, result.Reasoning, "Python")
	assert.Contains(t, result.Reasoning, "Kubernetes")
}
