package stampgen

import (
	"log/slog"

	"github.com/mhpenta/stampgen/ratelimiter"
)

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a structured logger for the orchestrator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithStorage sets a storage backend for persisting generated stamps.
func WithStorage(storage Storage) Option {
	return func(o *Orchestrator) {
		o.storage = storage
	}
}

// WithLimits overrides the batch count bounds.
func WithLimits(limits BatchLimits) Option {
	return func(o *Orchestrator) {
		o.limits = limits
	}
}

// WithConcurrency enables a bounded worker pool of n generation calls.
// Values below 2 keep the default sequential behavior. Concurrency is a
// latency optimization: results are still slotted by original index.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 1 {
			o.concurrency = n
		}
	}
}

// WithProgress registers a hook invoked once per completed item, in
// completion order. Useful for incremental UI updates.
func WithProgress(fn func(StampResult)) Option {
	return func(o *Orchestrator) {
		o.onResult = fn
	}
}

// WithRateLimiter sets a custom rate limiter for a model, replacing the
// one derived from the model's published limits. Use this to swap in a
// distributed limiter for production.
func WithRateLimiter(model Model, limiter ratelimiter.Limiter) Option {
	return func(o *Orchestrator) {
		o.rateLimiters[model] = limiter
	}
}

// WithTokenEstimator overrides the token estimation strategy used for
// rate-limit accounting.
func WithTokenEstimator(estimator TokenEstimator) Option {
	return func(o *Orchestrator) {
		o.estimator = estimator
	}
}
