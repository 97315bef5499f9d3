package engine

import (
	"context"
	"net/http"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/policy"
)

// Adapter is the decision engine's view of C7's MiddlewareAdapter contract
// (spec.md §4.6). It is declared locally, rather than imported from an
// adapter package, so that concrete adapter implementations (which need to
// reference CacheMode) can depend on this package without creating an
// import cycle; any type satisfying this method set - such as
// github.com/always-cache/cachekit/adapter.HTTPAdapter - can be passed to
// Engine.Serve.
type Adapter interface {
	IsMethodCacheable() bool
	RequestHead() *http.Request
	URL() string
	Method() string
	BuildPolicy(res *http.Response) policy.Blob
	BuildPolicyWithOptions(res *http.Response, opts policy.BuildOptions) policy.Blob
	InjectHeaders(header http.Header)
	ForceNoCacheDirective()
	OverriddenCacheMode() (CacheMode, bool)
	RemoteFetch(ctx context.Context) (backend.CachedResponse, policy.Blob, error)
}
