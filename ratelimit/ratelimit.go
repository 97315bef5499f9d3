// Package ratelimit implements the cache-miss-only admission control
// contract (C5): a RateLimiter is consulted only on the code path that
// forwards a request to the origin. Cache hits and successful 304
// revalidations MUST NOT invoke it.
package ratelimit

import "context"

// Limiter is the contract the decision engine consumes.
type Limiter interface {
	// Allow reports whether key may proceed without waiting.
	Allow(key string) bool
	// Wait blocks until key may proceed, or ctx is cancelled. Implementations
	// must tolerate cancellation: a cancelled Wait releases no permanent
	// resource (spec.md §4.4).
	Wait(ctx context.Context, key string) error
}

// None is a Limiter that never restricts anything, the default when no
// limiter is configured.
type None struct{}

func (None) Allow(string) bool { return true }

func (None) Wait(context.Context, string) error { return nil }
