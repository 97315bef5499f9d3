// Package adapter defines C7, the MiddlewareAdapter contract: a thin
// polymorphic interface between the decision engine and whatever
// transport/framework a particular integration is embedded in. A concrete
// net/http implementation, HTTPAdapter, forwards a single request to one
// origin through an http.Client, grounded on core/cache.go's
// fetch/send/copyHeader plumbing.
package adapter

import (
	"context"
	"net/http"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/engine"
	"github.com/always-cache/cachekit/policy"
)

// MiddlewareAdapter is the contract the decision engine is generic over
// (spec.md §4.6). One instance is created per request.
type MiddlewareAdapter interface {
	// IsMethodCacheable reports whether the request's method is GET or HEAD.
	IsMethodCacheable() bool
	// RequestHead returns the request this adapter was built for.
	RequestHead() *http.Request
	// URL returns the request's effective URL.
	URL() string
	// Method returns the request's method.
	Method() string
	// BuildPolicy computes a CachePolicyBlob for the given response.
	BuildPolicy(res *http.Response) policy.Blob
	// BuildPolicyWithOptions is BuildPolicy for adapters that can supply
	// explicit request/response timestamps (spec.md §4.6,
	// build_policy_with_options) instead of deriving them internally.
	BuildPolicyWithOptions(res *http.Response, opts policy.BuildOptions) policy.Blob
	// InjectHeaders mutates the outgoing (conditional revalidation) request's
	// headers in place.
	InjectHeaders(header http.Header)
	// ForceNoCacheDirective sets Cache-Control: no-cache on the outgoing
	// request.
	ForceNoCacheDirective()
	// OverriddenCacheMode returns a hard per-request mode override, if the
	// embedding middleware has one, and whether it is present.
	OverriddenCacheMode() (engine.CacheMode, bool)
	// RemoteFetch forwards the request to the origin and returns a buffered
	// response along with the request/response timestamps the policy engine
	// needs.
	RemoteFetch(ctx context.Context) (backend.CachedResponse, policy.Blob, error)
}
