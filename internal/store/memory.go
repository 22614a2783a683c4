package store

import (
	"context"
	"sort"
	"sync"

	"github.com/jonathan/skillmatch/internal/types"
)

// Memory is an in-memory store backing tests, the CLI's file-loaded mode,
// and small deployments. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	profiles map[string]*types.Profile
	jobs     map[string]*types.JobPosting
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]*types.Profile),
		jobs:     make(map[string]*types.JobPosting),
	}
}

// PutProfile stores or replaces a profile.
func (m *Memory) PutProfile(profile *types.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
}

// PutJob stores or replaces a job posting.
func (m *Memory) PutJob(job *types.JobPosting) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
}

// GetProfile implements ProfileStore.
func (m *Memory) GetProfile(_ context.Context, id string) (*types.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.profiles[id]
	if !ok {
		return nil, &NotFoundError{Kind: "profile", ID: id}
	}
	return profile, nil
}

// GetJob implements JobStore.
func (m *Memory) GetJob(_ context.Context, id string) (*types.JobPosting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, &NotFoundError{Kind: "job", ID: id}
	}
	return job, nil
}

// ListJobs implements JobStore.
func (m *Memory) ListJobs(ctx context.Context, ids []string) ([]*types.JobPosting, error) {
	jobs := make([]*types.JobPosting, 0, len(ids))
	for _, id := range ids {
		job, err := m.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// ListActiveJobs implements JobStore.
func (m *Memory) ListActiveJobs(_ context.Context) ([]*types.JobPosting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var jobs []*types.JobPosting
	for _, job := range m.jobs {
		if job.Active {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}
