package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// PerHost is a Limiter that maintains an independent token bucket per key
// (typically the request's host), so one noisy origin cannot starve
// fetches to another. Buckets are created lazily and never evicted - a
// long-lived process talking to many origins should instead compose a
// bounded wrapper, which this package does not provide.
type PerHost struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

// NewPerHost returns a PerHost limiter where each key is allowed rps
// requests per second, with the given burst size.
func NewPerHost(rps float64, burst int) *PerHost {
	return &PerHost{
		buckets: make(map[string]*rate.Limiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (p *PerHost) bucket(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.buckets[key]
	if !ok {
		b = rate.NewLimiter(p.rps, p.burst)
		p.buckets[key] = b
	}
	return b
}

func (p *PerHost) Allow(key string) bool {
	return p.bucket(key).Allow()
}

func (p *PerHost) Wait(ctx context.Context, key string) error {
	return p.bucket(key).Wait(ctx)
}

// Global is a Limiter backed by a single shared token bucket, applying a
// single rate across all keys regardless of which one is presented.
type Global struct {
	limiter *rate.Limiter
}

// NewGlobal returns a Global limiter allowing rps requests per second across
// all keys, with the given burst size.
func NewGlobal(rps float64, burst int) *Global {
	return &Global{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (g *Global) Allow(string) bool {
	return g.limiter.Allow()
}

func (g *Global) Wait(ctx context.Context, _ string) error {
	return g.limiter.Wait(ctx)
}
