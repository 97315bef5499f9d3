package engine

import (
	"net/http"
	"time"

	"github.com/always-cache/cachekit/cachekey"
	cacheupdate "github.com/always-cache/cachekit/pkg/cache-update"
	responsetransformer "github.com/always-cache/cachekit/pkg/response-transformer"
	"github.com/always-cache/cachekit/ratelimit"
)

// Options configures an Engine (spec.md §6, "Configuration object
// CacheOptions"). Every field is optional; the zero value is a usable
// Default-mode engine with no rate limiting, no key override, and no
// response mutation.
type Options struct {
	// Mode is the default CacheMode, used when neither CacheModeFn nor an
	// adapter override applies.
	Mode CacheMode
	// CacheKeyFn overrides the default cache key. Nil uses cachekey.Default.
	CacheKeyFn cachekey.KeyFunc
	// CacheModeFn computes a pre-fetch mode override from the request.
	CacheModeFn func(req *http.Request) (CacheMode, bool)
	// ResponseCacheModeFn computes a post-fetch mode override once the
	// origin response is known, e.g. to refuse to store a given
	// Content-Type. Downgrade-only: see Engine.effectiveStoreMode. Not
	// consulted when the adapter overrides the mode.
	ResponseCacheModeFn func(req *http.Request, res *http.Response) (CacheMode, bool)
	// CacheBustFn computes the invalidation key set for unsafe methods.
	CacheBustFn cachekey.BustFunc
	// MaxTTL clamps stored freshness lifetime: min(server-specified, MaxTTL).
	// If the server specified none, MaxTTL supplies it. Zero means no clamp.
	MaxTTL time.Duration
	// CacheStatusHeaders, if true, attaches a Cache-Status header (RFC 9211)
	// to every response the engine returns.
	CacheStatusHeaders bool
	// RateLimiter gates every forward to the origin: misses, NoStore and
	// Reload forwards, revalidations and unsafe-method write-throughs. Cache
	// hits never wait on it. Nil uses ratelimit.None{}.
	RateLimiter ratelimit.Limiter
	// ModifyResponse mutates response headers before the PolicyEngine
	// computes storability/freshness, e.g. to inject a reduced max-age.
	ModifyResponse func(res *http.Response)
	// MetadataProvider computes an opaque metadata blob to store alongside
	// an entry. Nil stores no metadata.
	MetadataProvider func(req *http.Request, res *http.Response) []byte
	// ResponseRules applies path/method-matched Cache-Control overrides and
	// extra headers to a successful origin response before storability is
	// evaluated, mirroring core/cache.go's a.rules.Apply step. Nil applies
	// no rules.
	ResponseRules responsetransformer.Rules
	// UpdateNotifier, if set, is called once per `Cache-Update` header
	// value present on the response to an unsafe-method request (spec.md's
	// SUPPLEMENTED FEATURES, grounded on pkg/cache-update and
	// core/cache.go's updateIfNeeded/saveUpdates). The engine itself does
	// not schedule anything; the caller decides how and when to act on the
	// reported path and delay (e.g. by scheduling a delayed revalidation).
	UpdateNotifier func(update cacheupdate.CacheUpdate)
}

func (o Options) withDefaults() Options {
	if o.RateLimiter == nil {
		o.RateLimiter = ratelimit.None{}
	}
	return o
}

func (o Options) keyBuilder() cachekey.Builder {
	return cachekey.NewBuilder(o.CacheKeyFn)
}
