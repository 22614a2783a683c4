package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/logger"
)

// DefaultAttemptTimeout bounds each provider attempt when the chain is
// built without an explicit timeout.
const DefaultAttemptTimeout = 8 * time.Second

// State is the chain's position after an Evaluate call.
type State int

const (
	// StateDone means a provider produced a valid evaluation.
	StateDone State = iota
	// StateDegraded means every configured provider failed (or none are
	// configured); the qualitative term is dropped and its weight
	// redistributed. The match operation as a whole still succeeds.
	StateDegraded
)

// String returns the state name for logs.
func (s State) String() string {
	if s == StateDone {
		return "done"
	}
	return "degraded"
}

// Outcome is the typed result of walking the provider chain. There is no
// terminal-failure outcome: scoring always proceeds, at reduced fidelity
// when degraded.
type Outcome struct {
	State      State
	Provider   string // provider that produced the evaluation, when done
	Evaluation *Evaluation
}

// Chain walks an ordered list of providers, advancing on failure or
// timeout (the two are not distinguished) until one succeeds or the list
// is exhausted.
type Chain struct {
	providers      []Provider
	attemptTimeout time.Duration
	log            *zap.Logger
}

// NewChain builds a provider chain. A nil or empty provider list is valid
// and yields StateDegraded on every call.
func NewChain(providers []Provider, attemptTimeout time.Duration, log *zap.Logger) *Chain {
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	return &Chain{
		providers:      providers,
		attemptTimeout: attemptTimeout,
		log:            logger.Safe(log),
	}
}

// Evaluate tries each provider in order under the per-attempt timeout.
// Provider errors are logged, never returned: the caller always gets a
// usable Outcome. If ctx is already cancelled, the chain degrades
// immediately rather than blocking the remaining sub-scores.
func (c *Chain) Evaluate(ctx context.Context, profile ProfileSummary, job JobSummary) Outcome {
	for _, provider := range c.providers {
		if ctx.Err() != nil {
			c.log.Warn("qualitative evaluation abandoned, caller context done",
				zap.String(logger.FieldProvider, provider.Name()))
			break
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		evaluation, err := provider.Evaluate(attemptCtx, profile, job)
		cancel()

		if err != nil {
			c.log.Warn("scoring provider failed, advancing chain",
				zap.String(logger.FieldProvider, provider.Name()),
				zap.Error(err))
			continue
		}

		evaluation.Score = clamp01(evaluation.Score)
		c.log.Debug("scoring provider succeeded",
			zap.String(logger.FieldProvider, provider.Name()),
			zap.Float64("qualitative_score", evaluation.Score))

		return Outcome{State: StateDone, Provider: provider.Name(), Evaluation: evaluation}
	}

	return Outcome{State: StateDegraded}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
