// Package store provides profile and job posting persistence behind
// narrow interfaces so the matching engine stays storage-agnostic.
package store

import (
	"context"

	"github.com/jonathan/skillmatch/internal/types"
)

// ProfileStore loads candidate profiles.
type ProfileStore interface {
	// GetProfile returns the profile, or a *NotFoundError if absent.
	GetProfile(ctx context.Context, id string) (*types.Profile, error)
}

// JobStore loads job postings.
type JobStore interface {
	// GetJob returns the posting, or a *NotFoundError if absent.
	GetJob(ctx context.Context, id string) (*types.JobPosting, error)

	// ListJobs returns the postings for the given ids, preserving order.
	// A single missing id fails the whole call with a *NotFoundError.
	ListJobs(ctx context.Context, ids []string) ([]*types.JobPosting, error)

	// ListActiveJobs returns every active posting, ordered by id.
	ListActiveJobs(ctx context.Context) ([]*types.JobPosting, error)
}
