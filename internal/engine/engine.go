// Package engine wires the stores, term vector index, scorer, cache, and
// provider chain into the matching operations exposed to callers.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/index"
	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/scoring"
	"github.com/jonathan/skillmatch/internal/store"
	"github.com/jonathan/skillmatch/internal/types"
)

// Matcher is the top-level match service. The index is rebuilt
// wholesale and swapped atomically, so Match never observes a
// half-built index.
type Matcher struct {
	profiles store.ProfileStore
	jobs     store.JobStore
	scorer   *scoring.Scorer
	cache    *cache.Cache
	weights  scoring.Weights
	cacheTTL time.Duration
	version  string
	log      *zap.Logger

	idx atomic.Pointer[index.Index]
}

// Config carries the Matcher's tunables.
type Config struct {
	Weights       scoring.Weights
	CacheTTL      time.Duration
	ConfigVersion string // part of every cache key; bump to invalidate all cached results
}

// New creates a Matcher. The cache may be nil to disable caching.
func New(profiles store.ProfileStore, jobs store.JobStore, scorer *scoring.Scorer, resultCache *cache.Cache, cfg Config, log *zap.Logger) *Matcher {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = cache.DefaultTTL
	}
	return &Matcher{
		profiles: profiles,
		jobs:     jobs,
		scorer:   scorer,
		cache:    resultCache,
		weights:  cfg.Weights,
		cacheTTL: cfg.CacheTTL,
		version:  cfg.ConfigVersion,
		log:      logger.Safe(log),
	}
}

// RebuildIndex re-vectorizes every active job posting and swaps the new
// index in. Cached results stay valid: posting content is immutable
// between store updates, which go through InvalidateJob.
func (m *Matcher) RebuildIndex(ctx context.Context) error {
	jobs, err := m.jobs.ListActiveJobs(ctx)
	if err != nil {
		return err
	}

	documents := make([]index.Document, 0, len(jobs))
	for _, job := range jobs {
		documents = append(documents, index.Document{
			ID:   job.ID,
			Text: job.Title + " " + job.DescriptionText,
		})
	}

	idx, err := index.Build(documents)
	if err != nil {
		return err
	}

	m.idx.Store(idx)
	m.log.Info("term vector index rebuilt", zap.Int("documents", idx.Len()))
	return nil
}

// Match ranks the given jobs for a profile. An empty jobIDs slice means
// every active posting. A nil weights argument uses the configured
// preset; explicit weights are honored but bypass the result cache,
// which is keyed to the configured preset via the config version.
func (m *Matcher) Match(ctx context.Context, profileID string, jobIDs []string, weights *scoring.Weights) ([]types.MatchResult, error) {
	runID := uuid.NewString()
	log := m.log.With(
		zap.String(logger.FieldRun, runID),
		zap.String(logger.FieldProfile, profileID))

	profile, err := m.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var jobs []*types.JobPosting
	if len(jobIDs) == 0 {
		jobs, err = m.jobs.ListActiveJobs(ctx)
		if err != nil {
			return nil, err
		}
		jobIDs = make([]string, 0, len(jobs))
		for _, job := range jobs {
			jobIDs = append(jobIDs, job.ID)
		}
	}

	effectiveWeights := m.weights
	useCache := m.cache != nil
	if weights != nil {
		effectiveWeights = *weights
		useCache = false
	}

	key := cache.NewKey(profileID, profile.ContentHash(), jobIDs, m.version)
	if useCache {
		if results, ok := m.cache.Get(key); ok {
			log.Debug("match served from cache",
				zap.String(logger.FieldFingerprint, key.Fingerprint()),
				zap.Int("jobs", len(results)))
			return results, nil
		}
	}

	if jobs == nil {
		jobs, err = m.jobs.ListJobs(ctx, jobIDs)
		if err != nil {
			return nil, err
		}
	}

	results, err := m.scorer.Score(ctx, profile, jobs, effectiveWeights, m.similarityFn(profile))
	if err != nil {
		return nil, err
	}

	if useCache {
		m.cache.Put(key, results, m.cacheTTL)
	}

	log.Info("match computed",
		zap.String(logger.FieldFingerprint, key.Fingerprint()),
		zap.Int("jobs", len(results)))
	return results, nil
}

// Explain scores a single profile/job pair with full detail, bypassing
// the result cache.
func (m *Matcher) Explain(ctx context.Context, profileID, jobID string) (*types.MatchResult, error) {
	profile, err := m.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	job, err := m.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return m.scorer.ScoreOne(ctx, profile, job, m.weights, m.similarityFn(profile))
}

// InvalidateProfile drops every cached result for the profile. Called
// after a profile edit.
func (m *Matcher) InvalidateProfile(profileID string) int {
	if m.cache == nil {
		return 0
	}
	removed := m.cache.Invalidate(cache.MatchProfile(profileID))
	m.log.Debug("profile cache invalidated",
		zap.String(logger.FieldProfile, profileID),
		zap.Int("removed", removed))
	return removed
}

// InvalidateJob drops every cached result whose job set includes the
// posting. Called after a posting edit or deactivation.
func (m *Matcher) InvalidateJob(jobID string) int {
	if m.cache == nil {
		return 0
	}
	removed := m.cache.Invalidate(cache.MatchJob(jobID))
	m.log.Debug("job cache invalidated",
		zap.String(logger.FieldJob, jobID),
		zap.Int("removed", removed))
	return removed
}

// CacheStats exposes cache hit/miss/eviction counters.
func (m *Matcher) CacheStats() cache.Stats {
	if m.cache == nil {
		return cache.Stats{}
	}
	return m.cache.Stats()
}

// similarityFn adapts the current index to the scorer's similarity
// callback. Without an index, or for a job the index has not seen,
// similarity is zero and the skill assessment carries the dimension.
func (m *Matcher) similarityFn(profile *types.Profile) scoring.SimilarityFn {
	idx := m.idx.Load()
	if idx == nil || profile.NarrativeText == "" {
		return nil
	}

	profileVector := idx.Vectorize(profile.NarrativeText)
	return func(job *types.JobPosting) float64 {
		jobVector, ok := idx.Vector(job.ID)
		if !ok {
			// Posting added since the last rebuild; vectorize on the fly
			// against the existing vocabulary.
			jobVector = idx.Vectorize(job.Title + " " + job.DescriptionText)
		}
		return index.CosineSimilarity(profileVector, jobVector)
	}
}
