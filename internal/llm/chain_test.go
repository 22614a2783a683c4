package llm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowProvider blocks until its context expires.
type slowProvider struct {
	calls atomic.Int32
}

func (p *slowProvider) Name() string { return "slow" }

func (p *slowProvider) Evaluate(ctx context.Context, _ ProfileSummary, _ JobSummary) (*Evaluation, error) {
	p.calls.Add(1)
	<-ctx.Done()
	return nil, ctx.Err()
}

func testSummaries() (ProfileSummary, JobSummary) {
	return ProfileSummary{Skills: []string{"Go"}, ExperienceYears: 5},
		JobSummary{Title: "Backend Engineer", RequiredSkills: []string{"Go"}}
}

func TestChain_FirstProviderSucceeds(t *testing.T) {
	chain := NewChain([]Provider{
		&StaticProvider{Score: 0.8, Reasoning: "good fit"},
	}, time.Second, nil)

	profile, job := testSummaries()
	outcome := chain.Evaluate(context.Background(), profile, job)

	require.Equal(t, StateDone, outcome.State)
	require.NotNil(t, outcome.Evaluation)
	assert.Equal(t, 0.8, outcome.Evaluation.Score)
	assert.Equal(t, "static", outcome.Provider)
}

func TestChain_AdvancesPastFailure(t *testing.T) {
	chain := NewChain([]Provider{
		&StaticProvider{Err: errors.New("rate limited")},
		&StaticProvider{Score: 0.6, Reasoning: "second opinion"},
	}, time.Second, nil)

	profile, job := testSummaries()
	outcome := chain.Evaluate(context.Background(), profile, job)

	require.Equal(t, StateDone, outcome.State)
	assert.Equal(t, 0.6, outcome.Evaluation.Score)
}

func TestChain_AllProvidersFail_Degrades(t *testing.T) {
	chain := NewChain([]Provider{
		&StaticProvider{Err: errors.New("boom")},
		&StaticProvider{Err: errors.New("also boom")},
	}, time.Second, nil)

	profile, job := testSummaries()
	outcome := chain.Evaluate(context.Background(), profile, job)

	assert.Equal(t, StateDegraded, outcome.State)
	assert.Nil(t, outcome.Evaluation)
}

func TestChain_EmptyChain_Degrades(t *testing.T) {
	chain := NewChain(nil, time.Second, nil)

	profile, job := testSummaries()
	outcome := chain.Evaluate(context.Background(), profile, job)
	assert.Equal(t, StateDegraded, outcome.State)
}

func TestChain_TimeoutAdvancesLikeFailure(t *testing.T) {
	slow := &slowProvider{}
	chain := NewChain([]Provider{
		slow,
		&StaticProvider{Score: 0.4},
	}, 20*time.Millisecond, nil)

	profile, job := testSummaries()
	outcome := chain.Evaluate(context.Background(), profile, job)

	require.Equal(t, StateDone, outcome.State)
	assert.Equal(t, 0.4, outcome.Evaluation.Score)
	assert.Equal(t, int32(1), slow.calls.Load())
}

func TestChain_CancelledContextDegradesImmediately(t *testing.T) {
	slow := &slowProvider{}
	chain := NewChain([]Provider{slow}, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	profile, job := testSummaries()
	outcome := chain.Evaluate(ctx, profile, job)

	assert.Equal(t, StateDegraded, outcome.State)
	assert.Equal(t, int32(0), slow.calls.Load(), "no provider should be attempted")
}

func TestChain_ClampsScore(t *testing.T) {
	chain := NewChain([]Provider{
		&StaticProvider{Score: 1.7, Reasoning: "overenthusiastic"},
	}, time.Second, nil)

	profile, job := testSummaries()
	outcome := chain.Evaluate(context.Background(), profile, job)

	require.Equal(t, StateDone, outcome.State)
	assert.Equal(t, 1.0, outcome.Evaluation.Score)
}
