// Package engine implements C6, the CacheDecisionEngine: the central state
// machine that decides, for each request, whether to serve from cache,
// revalidate, forward, or refuse - and whether to store the result. It is
// generic over any backend.Buffered store; streaming backends (streamcache)
// satisfy Buffered as a subset of their full interface, so the engine's
// decision logic is identical regardless of which backend is wired in.
package engine

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/cachekey"
	cacheupdate "github.com/always-cache/cachekit/pkg/cache-update"
	"github.com/always-cache/cachekit/policy"
	"github.com/always-cache/cachekit/rfc9111"
	"github.com/always-cache/cachekit/rfc9211"
)

// X-Cache outcome values (spec.md §4.5/§6/§8). Distinct from the RFC 9211
// Cache-Status header this engine also sets: X-Cache is the simpler,
// spec-mandated vocabulary every response carries when CacheStatusHeaders is
// enabled, grounded on the original implementation's x-cache header
// (original_source/http-cache/src/lib.rs's XCACHE constant).
const (
	XCacheHit         = "HIT"
	XCacheMiss        = "MISS"
	XCacheStale       = "STALE"
	XCacheRevalidated = "REVALIDATED"
	XCacheBypass      = "BYPASS"
	XCacheUncacheable = "UNCACHEABLE"
)

// Engine is the decision engine. Construct with New.
type Engine struct {
	store backend.Buffered
	opts  Options
	keyB  cachekey.Builder
}

// New builds an Engine backed by store, configured by opts.
func New(store backend.Buffered, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{store: store, opts: opts, keyB: opts.keyBuilder()}
}

// Serve runs the decision algorithm for one request, described in spec.md
// §4.5, and returns the response the caller should send downstream.
func (e *Engine) Serve(ctx context.Context, a Adapter) (*http.Response, error) {
	req := a.RequestHead()
	var status rfc9211.CacheStatus

	// Step 1: unsafe methods never read the cache; they only invalidate.
	if !a.IsMethodCacheable() {
		return e.handleUnsafeMethod(ctx, a, req)
	}

	key := e.keyB.Key(req)
	mode := e.initialMode(a, req)

	// Step 3: NoStore always forwards, never touches the cache.
	if mode == NoStore {
		status.Forward(rfc9211.FwdReasonRequest)
		if err := e.awaitRateLimit(ctx, req); err != nil {
			return nil, err
		}
		return e.forwardWithoutCache(ctx, a, status)
	}

	// Step 4: Reload skips the lookup entirely.
	if mode == Reload {
		status.Forward(rfc9211.FwdReasonRequest)
		if err := e.awaitRateLimit(ctx, req); err != nil {
			return nil, err
		}
		return e.fetchAndStore(ctx, a, req, key, mode, status, nil)
	}

	entry, err := e.store.Get(ctx, key)
	if err != nil {
		if err != backend.ErrNotFound {
			log.Warn().Err(err).Str("key", key).Msg("engine: backend error on lookup, treating as miss")
		}
		return e.handleMiss(ctx, a, req, key, mode, status)
	}

	return e.handleHit(ctx, a, req, key, mode, status, entry)
}

// initialMode resolves precedence 1-2 of spec.md §4.5's per-request
// overrides; precedence 3 (response_cache_mode_fn) is resolved later, once
// a response exists.
func (e *Engine) initialMode(a Adapter, req *http.Request) CacheMode {
	if mode, ok := a.OverriddenCacheMode(); ok {
		return mode
	}
	if e.opts.CacheModeFn != nil {
		if mode, ok := e.opts.CacheModeFn(req); ok {
			return mode
		}
	}
	return e.opts.Mode
}

func (e *Engine) handleUnsafeMethod(ctx context.Context, a Adapter, req *http.Request) (*http.Response, error) {
	key := e.keyB.Key(req)
	if e.opts.CacheBustFn != nil {
		for _, bust := range e.opts.CacheBustFn(req, key) {
			if err := e.store.Delete(ctx, bust); err != nil {
				log.Warn().Err(err).Str("key", bust).Msg("engine: cache-bust delete failed")
			}
		}
	}

	if err := e.awaitRateLimit(ctx, req); err != nil {
		return nil, err
	}
	cached, _, err := a.RemoteFetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: forwarding unsafe method: %w", err)
	}
	res := cached.ToHTTPResponse(req)

	if e.opts.UpdateNotifier != nil {
		for _, update := range cacheupdate.GetCacheUpdates(req, res) {
			e.opts.UpdateNotifier(update)
		}
	}

	for _, uri := range policy.InvalidationURIs(req, res) {
		// The default key format is "{METHOD} {URL}"; busting the GET/HEAD
		// entries for an invalidated URI approximates RFC 9111 §4.4 without
		// requiring this package to know a custom CacheKeyFn's key space.
		// Applications with a custom key function should use CacheBustFn
		// for exact invalidation.
		for _, method := range [...]string{http.MethodGet, http.MethodHead} {
			if err := e.store.Delete(ctx, method+" "+uri); err != nil {
				log.Warn().Err(err).Str("key", uri).Msg("engine: response-driven invalidation delete failed")
			}
		}
	}
	var status rfc9211.CacheStatus
	status.Forward(rfc9211.FwdReasonMethod)
	return e.finish(req, res, status, XCacheBypass), nil
}

func (e *Engine) handleMiss(ctx context.Context, a Adapter, req *http.Request, key string, mode CacheMode, status rfc9211.CacheStatus) (*http.Response, error) {
	status.Forward(rfc9211.FwdReasonUriMiss)
	if mode == OnlyIfCached {
		return e.syntheticGatewayTimeout(req, status), nil
	}
	if err := e.awaitRateLimit(ctx, req); err != nil {
		return nil, err
	}
	return e.fetchAndStore(ctx, a, req, key, mode, status, nil)
}

func (e *Engine) handleHit(ctx context.Context, a Adapter, req *http.Request, baseKey string, mode CacheMode, status rfc9211.CacheStatus, entry backend.CacheEntry) (*http.Response, error) {
	key := baseKey
	storedRes := entry.Response.ToHTTPResponse(req)

	// The entry found at baseKey may be the wrong Vary variant: baseKey
	// only identifies the target URI, not which request header values were
	// in effect when a given variant was stored (RFC 9111 §4.1). If the
	// stored response names Vary fields, resolve the full, Vary-qualified
	// key for req's actual header values and re-look-up under that key
	// before doing any freshness/reuse reasoning.
	if varyNames := rfc9111.GetListHeader(storedRes.Header, "Vary"); len(varyNames) > 0 {
		variantKey := e.keyB.WithVary(baseKey, req, storedRes)
		if variantKey != key {
			variant, err := e.store.Get(ctx, variantKey)
			switch {
			case err == nil:
				key = variantKey
				entry = variant
				storedRes = entry.Response.ToHTTPResponse(req)
			case err == backend.ErrNotFound:
				// The URI is cached, but not this Vary variant.
				status.Forward(rfc9211.FwdReasonVaryMiss)
				if mode == OnlyIfCached {
					return e.syntheticGatewayTimeout(req, status), nil
				}
				if err := e.awaitRateLimit(ctx, req); err != nil {
					return nil, err
				}
				return e.fetchAndStore(ctx, a, req, variantKey, mode, status, nil)
			default:
				log.Warn().Err(err).Str("key", variantKey).Msg("engine: backend error on variant lookup, treating as miss")
				return e.handleMiss(ctx, a, req, variantKey, mode, status)
			}
		}
	}

	if mode == IgnoreRules {
		// "retrieve without freshness checks"
		policy.Freshen(storedRes, entry.Policy)
		status.Hit()
		return e.finish(req, storedRes, status, XCacheHit), nil
	}

	decision := policy.Classify(req, storedRes, entry.Policy)

	// ForceCache and OnlyIfCached serve any cached entry regardless of
	// freshness (spec.md §4.5 mode table); they never revalidate on a hit.
	if mode == ForceCache || mode == OnlyIfCached {
		policy.Freshen(storedRes, entry.Policy)
		status.Hit()
		xcache := XCacheHit
		if !decision.Reusable {
			rfc9111.AddStaleWarning(storedRes)
			xcache = XCacheStale
		}
		status.TimeToLive = policy.TimeToLive(storedRes, entry.Policy)
		return e.finish(req, storedRes, status, xcache), nil
	}

	if decision.Reusable && mode == Default {
		policy.Freshen(storedRes, entry.Policy)
		status.Hit()
		status.TimeToLive = policy.TimeToLive(storedRes, entry.Policy)
		return e.finish(req, storedRes, status, XCacheHit), nil
	}

	// Only Default and NoCache reach here (IgnoreRules, ForceCache, and
	// OnlyIfCached all returned above) - both revalidate conditionally.
	// Stale and revalidation required (Default, NoCache). NoCache can reach
	// here with a fresh entry (it always revalidates), in which case
	// Classify had no reason to build a validation request - build one now.
	status.Forward(rfc9211.FwdReasonStale)
	validationReq := decision.ValidationRequest
	if validationReq == nil {
		var buildErr error
		validationReq, buildErr = policy.BuildConditionalRequest(req, storedRes)
		if buildErr != nil {
			return nil, fmt.Errorf("engine: building conditional request: %w", buildErr)
		}
	}
	a.InjectHeaders(validationReq.Header)
	if err := e.awaitRateLimit(ctx, req); err != nil {
		return nil, err
	}

	cached, blob, err := a.RemoteFetch(ctx)
	if err != nil || cached.Status >= http.StatusInternalServerError {
		if mode == Default {
			// Network/5xx error: serve the stale entry (stale-on-error).
			policy.Freshen(storedRes, entry.Policy)
			status.Hit()
			rfc9111.AddRevalidationFailedWarning(storedRes)
			return e.finish(req, storedRes, status, XCacheStale), nil
		}
		if err != nil {
			return nil, fmt.Errorf("engine: revalidation fetch failed: %w", err)
		}
	}

	if cached.Status == http.StatusNotModified {
		merged := policy.MergeValidated(storedRes, cached.ToHTTPResponse(req))
		entry.Policy = blob
		entry.Response, err = backend.FromHTTPResponse(merged, entry.Response.Metadata)
		if err == nil {
			if putErr := e.store.Put(ctx, key, entry); putErr != nil {
				log.Warn().Err(putErr).Str("key", key).Msg("engine: failed to persist revalidated entry")
			}
		}
		status.Hit()
		status.TimeToLive = policy.TimeToLive(merged, blob)
		return e.finish(req, merged, status, XCacheRevalidated), nil
	}

	// Any other successful status is treated as a fresh origin response.
	return e.storeAndReturn(ctx, a, req, key, mode, status, cached, blob)
}

// fetchAndStore performs the forward step (8) and, on success, the
// post-response store step (9-12). staleOnError, if non-nil, is returned
// if the fetch itself errors and mode permits stale-on-error.
func (e *Engine) fetchAndStore(ctx context.Context, a Adapter, req *http.Request, key string, mode CacheMode, status rfc9211.CacheStatus, staleOnError *http.Response) (*http.Response, error) {
	cached, blob, err := a.RemoteFetch(ctx)
	if err != nil {
		if staleOnError != nil && mode == Default {
			status.Hit()
			rfc9111.AddRevalidationFailedWarning(staleOnError)
			return e.finish(req, staleOnError, status, XCacheStale), nil
		}
		return nil, fmt.Errorf("engine: origin fetch failed: %w", err)
	}
	return e.storeAndReturn(ctx, a, req, key, mode, status, cached, blob)
}

// storeAndReturn implements steps 9-12: resolve the post-fetch mode
// override, evaluate storability, apply modify_response and max_ttl, and
// persist if allowed.
func (e *Engine) storeAndReturn(ctx context.Context, a Adapter, req *http.Request, key string, mode CacheMode, status rfc9211.CacheStatus, cached backend.CachedResponse, blob policy.Blob) (*http.Response, error) {
	res := cached.ToHTTPResponse(req)

	effectiveMode := mode
	if _, overridden := a.OverriddenCacheMode(); !overridden {
		effectiveMode = e.effectiveStoreMode(mode, req, res)
	}
	if effectiveMode == NoStore {
		return e.finish(req, res, status, XCacheUncacheable), nil
	}

	if e.opts.ResponseRules != nil {
		if err := e.opts.ResponseRules.Apply(res); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("engine: response rule application failed")
		}
	}
	if e.opts.ModifyResponse != nil {
		e.opts.ModifyResponse(res)
	}

	downstream, mayStore := policy.Storable(req, res)
	if effectiveMode == IgnoreRules && res.StatusCode == http.StatusOK {
		mayStore = true
	}
	if !mayStore {
		return e.finish(req, downstream, status, XCacheUncacheable), nil
	}

	e.clampMaxTTL(downstream, blob)

	var metadata []byte
	if e.opts.MetadataProvider != nil {
		metadata = e.opts.MetadataProvider(req, downstream)
	}

	toStore, err := backend.FromHTTPResponse(downstream, metadata)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("engine: failed to buffer response for storage")
		return e.finish(req, downstream, status, XCacheUncacheable), nil
	}

	// If the response names Vary fields, it must be stored under the full,
	// Vary-qualified key so a different variant never overwrites it (RFC
	// 9111 §4.1). baseKey is also kept pointing at this (most recent)
	// variant, so a lookup that doesn't yet know the Vary dimension can
	// still discover it and be redirected to the right variant key.
	baseKey := e.keyB.Key(req)
	storeKey := key
	if varyNames := rfc9111.GetListHeader(downstream.Header, "Vary"); len(varyNames) > 0 {
		storeKey = e.keyB.WithVary(baseKey, req, downstream)
	}

	cacheEntry := backend.CacheEntry{Response: toStore, Policy: blob}
	if err := e.store.Put(ctx, storeKey, cacheEntry); err != nil {
		log.Warn().Err(err).Str("key", storeKey).Msg("engine: backend put failed, serving fetched response uncached")
		return e.finish(req, toStore.ToHTTPResponse(req), status, XCacheMiss), nil
	}
	if storeKey != baseKey {
		if err := e.store.Put(ctx, baseKey, cacheEntry); err != nil {
			log.Warn().Err(err).Str("key", baseKey).Msg("engine: failed to update Vary base-key pointer")
		}
	}
	status.Stored = true
	status.TimeToLive = policy.TimeToLive(downstream, blob)

	// Re-wrap since downstream's body was consumed by FromHTTPResponse.
	return e.finish(req, toStore.ToHTTPResponse(req), status, XCacheMiss), nil
}

// effectiveStoreMode resolves precedence 3 of spec.md §4.5: the post-fetch
// response_cache_mode_fn hook may only downgrade the already-resolved mode
// to NoStore (e.g. "don't store this Content-Type"); it cannot grant store
// permission a pre-fetch decision denied. storeAndReturn does not consult it
// when the adapter supplied an overridden mode.
func (e *Engine) effectiveStoreMode(mode CacheMode, req *http.Request, res *http.Response) CacheMode {
	if mode == NoStore {
		return NoStore
	}
	if e.opts.ResponseCacheModeFn != nil {
		if override, ok := e.opts.ResponseCacheModeFn(req, res); ok && override == NoStore {
			return NoStore
		}
	}
	return mode
}

// clampMaxTTL enforces Options.MaxTTL on the response about to be stored
// (spec.md §4.5, "max_ttl semantics"): effective freshness lifetime is
// min(server-specified, MaxTTL); if the server specified none, MaxTTL
// supplies it.
func (e *Engine) clampMaxTTL(res *http.Response, blob policy.Blob) {
	if e.opts.MaxTTL <= 0 {
		return
	}
	ttl := policy.TimeToLive(res, blob)
	if ttl <= 0 || ttl > e.opts.MaxTTL {
		res.Header.Set("Cache-Control", "max-age="+fmt.Sprintf("%.f", e.opts.MaxTTL.Seconds()))
	}
}

func (e *Engine) awaitRateLimit(ctx context.Context, req *http.Request) error {
	if err := e.opts.RateLimiter.Wait(ctx, req.URL.Host); err != nil {
		return fmt.Errorf("engine: rate limit wait: %w", err)
	}
	return nil
}

func (e *Engine) forwardWithoutCache(ctx context.Context, a Adapter, status rfc9211.CacheStatus) (*http.Response, error) {
	cached, _, err := a.RemoteFetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: forwarding (no-store mode): %w", err)
	}
	return e.finish(a.RequestHead(), cached.ToHTTPResponse(a.RequestHead()), status, XCacheBypass), nil
}

// syntheticGatewayTimeout builds the OnlyIfCached-miss synthetic response
// (spec.md §6, "Synthetic responses"). Its X-Cache value is MISS: the miss
// occurred on the URI or Vary variant, not on an unrelated forward.
func (e *Engine) syntheticGatewayTimeout(req *http.Request, status rfc9211.CacheStatus) *http.Response {
	res := &http.Response{
		Status:     "504 Gateway Timeout",
		StatusCode: http.StatusGatewayTimeout,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Body:       http.NoBody,
		Request:    req,
	}
	return e.finish(req, res, status, XCacheMiss)
}

// finish attaches the Cache-Status and X-Cache headers, if enabled, and
// returns res. xcache is one of the XCache* outcome constants.
func (e *Engine) finish(req *http.Request, res *http.Response, status rfc9211.CacheStatus, xcache string) *http.Response {
	if e.opts.CacheStatusHeaders {
		res.Header.Set("Cache-Status", status.String())
		res.Header.Set("X-Cache", xcache)
	}
	res.Request = req
	return res
}

// RunUpdateLoop continuously revalidates the entry with the oldest
// expiration time, sleeping between passes, grounded on core/cache.go's
// updateCache background loop (spec.md's SUPPLEMENTED FEATURES). oldest
// must return the key and expiration time of the entry due to expire
// soonest (backend/sqlite.Cache.Oldest is one such implementation);
// revalidate performs the same revalidation a request-time cache hit would.
func (e *Engine) RunUpdateLoop(ctx context.Context, oldest func(ctx context.Context) (string, time.Time, error), revalidate func(ctx context.Context, key string) error) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		key, expires, err := oldest(ctx)
		if err != nil {
			log.Error().Err(err).Msg("engine: update loop could not find oldest entry")
			time.Sleep(time.Second)
			continue
		}
		if key == "" {
			time.Sleep(time.Second)
			continue
		}

		wait := time.Until(expires)
		if wait > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}

		if err := revalidate(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("engine: background revalidation failed")
		}
	}
}
