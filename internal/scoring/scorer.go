// Package scoring computes weighted multi-factor compatibility scores
// between a candidate profile and job postings, producing ranked,
// explainable results.
package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/taxonomy"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// DefaultMandatoryPenalty multiplies the overall score when a
	// mandatory skill is missing. Multiplicative rather than an additive
	// floor: the suppression must hold regardless of how favorable the
	// other sub-scores are.
	DefaultMandatoryPenalty = 0.3

	// DefaultTextSimilarityBlend is the share of the skill sub-score
	// contributed by narrative/description cosine similarity.
	DefaultTextSimilarityBlend = 0.2

	// DefaultMaxConcurrency bounds the per-job scoring fan-out.
	DefaultMaxConcurrency = 4
)

// SimilarityFn supplies the textual similarity in [0,1] between the
// profile narrative and a job description. The engine backs this with the
// term vector index; tests use fixed values.
type SimilarityFn func(job *types.JobPosting) float64

// Options tune the scorer's fixed constants.
type Options struct {
	MandatoryPenalty    float64 // ≤ 1.0
	TextSimilarityBlend float64 // ∈ [0,1]
	MaxConcurrency      int
}

// DefaultOptions returns the standard scoring constants.
func DefaultOptions() Options {
	return Options{
		MandatoryPenalty:    DefaultMandatoryPenalty,
		TextSimilarityBlend: DefaultTextSimilarityBlend,
		MaxConcurrency:      DefaultMaxConcurrency,
	}
}

// Scorer combines skill overlap, experience fit, preference alignment,
// textual similarity, and an optional provider-sourced qualitative signal
// into ranked match results.
type Scorer struct {
	tax   *taxonomy.Taxonomy
	chain *llm.Chain
	opts  Options
	log   *zap.Logger
	now   func() time.Time
}

// New creates a scorer. The chain may be nil, in which case every result
// is computed degraded (no qualitative term).
func New(tax *taxonomy.Taxonomy, chain *llm.Chain, opts Options, log *zap.Logger) *Scorer {
	if opts.MandatoryPenalty <= 0 || opts.MandatoryPenalty > 1 {
		opts.MandatoryPenalty = DefaultMandatoryPenalty
	}
	if opts.TextSimilarityBlend < 0 || opts.TextSimilarityBlend > 1 {
		opts.TextSimilarityBlend = DefaultTextSimilarityBlend
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	return &Scorer{
		tax:   tax,
		chain: chain,
		opts:  opts,
		log:   logger.Safe(log),
		now:   time.Now,
	}
}

// Score ranks the given jobs for the profile. The returned order is fully
// deterministic for fixed inputs: overall score descending, then skill
// sub-score descending, then job id ascending.
func (s *Scorer) Score(ctx context.Context, profile *types.Profile, jobs []*types.JobPosting, weights Weights, textSim SimilarityFn) ([]types.MatchResult, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("job set is empty")
	}

	profileSkills := normalizeProfileSkills(s.tax, profile)
	profileSummary := s.profileSummary(profile, profileSkills)

	results := make([]types.MatchResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			// A missing similarity source skips the blend entirely rather
			// than diluting the assessment with a zero term.
			sim := -1.0
			if textSim != nil {
				sim = textSim(job)
			}
			results[i] = s.scoreJob(gctx, profile, profileSkills, profileSummary, job, weights, sim)
			return nil
		})
	}

	// Workers return no errors; per-job degradation is recorded on the
	// result instead of failing the batch.
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		if results[i].SubScores.Skills != results[j].SubScores.Skills {
			return results[i].SubScores.Skills > results[j].SubScores.Skills
		}
		return results[i].JobID < results[j].JobID
	})

	return results, nil
}

// ScoreOne computes the detailed result for a single (profile, job) pair.
func (s *Scorer) ScoreOne(ctx context.Context, profile *types.Profile, job *types.JobPosting, weights Weights, textSim SimilarityFn) (*types.MatchResult, error) {
	results, err := s.Score(ctx, profile, []*types.JobPosting{job}, weights, textSim)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// scoreJob computes one MatchResult. Heuristic sub-scores always complete;
// only the qualitative term depends on ctx.
func (s *Scorer) scoreJob(ctx context.Context, profile *types.Profile, profileSkills map[string]types.ProfileSkill, profileSummary llm.ProfileSummary, job *types.JobPosting, weights Weights, sim float64) types.MatchResult {
	assessment := assessSkills(s.tax, profileSkills, job)

	skillScore := assessment.score
	if sim >= 0 {
		blend := s.opts.TextSimilarityBlend
		skillScore = assessment.score*(1-blend) + sim*blend
	}

	expScore := experienceSubScore(profile.TotalExperienceYears, job.MinExperienceYears)
	locScore := locationSubScore(profile, job)

	result := types.MatchResult{
		JobID: job.ID,
		SubScores: types.SubScores{
			Skills:     skillScore,
			Experience: expScore,
			Location:   locScore,
		},
		MatchedSkills: assessment.matched,
		MissingSkills: assessment.missing,
		Strengths:     assessment.strengths,
		ComputedAt:    s.now().UTC(),
	}

	providerReasoning := ""
	effective := weights

	if weights.Qualitative > 0 && s.chain != nil {
		outcome := s.chain.Evaluate(ctx, profileSummary, s.jobSummary(job))
		if outcome.State == llm.StateDone {
			score := outcome.Evaluation.Score
			result.SubScores.Qualitative = &score
			providerReasoning = outcome.Evaluation.Reasoning
		}
	}

	if result.SubScores.Qualitative == nil {
		effective = weights.WithoutQualitative()
		result.Degraded = weights.Qualitative > 0
	}

	overall := effective.Skills*skillScore +
		effective.Experience*expScore +
		effective.Location*locScore
	if result.SubScores.Qualitative != nil {
		overall += effective.Qualitative * *result.SubScores.Qualitative
	}

	overall *= 100
	if assessment.missingMandatory {
		overall *= s.opts.MandatoryPenalty
	}
	result.OverallScore = overall

	result.Reasoning = buildReasoning(s.tax, &result, providerReasoning)

	s.log.Debug("scored job",
		zap.String(logger.FieldProfile, profile.ID),
		zap.String(logger.FieldJob, job.ID),
		zap.Float64("overall", result.OverallScore),
		zap.Bool("degraded", result.Degraded),
		zap.Bool("missing_mandatory", assessment.missingMandatory))

	return result
}

// profileSummary flattens the profile for provider consumption using
// canonical skill names.
func (s *Scorer) profileSummary(profile *types.Profile, profileSkills map[string]types.ProfileSkill) llm.ProfileSummary {
	ids := make([]string, 0, len(profileSkills))
	for id := range profileSkills {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	skills := make([]string, 0, len(ids))
	for _, id := range ids {
		name := id
		if skill, ok := s.tax.Skill(id); ok {
			name = skill.Name
		}
		skills = append(skills, fmt.Sprintf("%s (%s)", name, profileSkills[id].Level))
	}

	modes := make([]string, 0, len(profile.PreferredWorkModes))
	for _, m := range profile.PreferredWorkModes {
		modes = append(modes, string(m))
	}

	return llm.ProfileSummary{
		Skills:          skills,
		ExperienceYears: profile.TotalExperienceYears,
		Locations:       profile.PreferredLocations,
		WorkModes:       modes,
		Narrative:       profile.NarrativeText,
	}
}

// jobSummary flattens a posting for provider consumption.
func (s *Scorer) jobSummary(job *types.JobPosting) llm.JobSummary {
	skills := make([]string, 0, len(job.RequiredSkills))
	for _, rs := range job.RequiredSkills {
		label := fmt.Sprintf("%s (%s)", rs.SkillID, rs.MinLevel)
		if rs.Mandatory {
			label += " [mandatory]"
		}
		skills = append(skills, label)
	}

	return llm.JobSummary{
		Title:              job.Title,
		RequiredSkills:     skills,
		MinExperienceYears: job.MinExperienceYears,
		Location:           job.Location,
		WorkMode:           string(job.WorkMode),
		Description:        job.DescriptionText,
	}
}
