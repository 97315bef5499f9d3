package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/backend/memory"
	cacheupdate "github.com/always-cache/cachekit/pkg/cache-update"
	responsetransformer "github.com/always-cache/cachekit/pkg/response-transformer"
	"github.com/always-cache/cachekit/policy"
)

// fakeAdapter is a minimal, fully in-memory Adapter for engine tests - it
// never touches the network, serving fixed responses from a queue instead.
type fakeAdapter struct {
	req       *http.Request
	responses []*http.Response
	fetched   int
	override  *CacheMode
}

func newFakeAdapter(method, rawURL string, responses ...*http.Response) *fakeAdapter {
	u, _ := url.Parse(rawURL)
	return &fakeAdapter{
		req:       &http.Request{Method: method, URL: u, Header: make(http.Header)},
		responses: responses,
	}
}

func (f *fakeAdapter) IsMethodCacheable() bool {
	return f.req.Method == http.MethodGet || f.req.Method == http.MethodHead
}
func (f *fakeAdapter) RequestHead() *http.Request { return f.req }
func (f *fakeAdapter) URL() string                { return f.req.URL.String() }
func (f *fakeAdapter) Method() string             { return f.req.Method }
func (f *fakeAdapter) BuildPolicy(res *http.Response) policy.Blob {
	now := time.Now()
	return policy.BuildPolicy(now, now)
}
func (f *fakeAdapter) BuildPolicyWithOptions(res *http.Response, opts policy.BuildOptions) policy.Blob {
	return policy.BuildPolicyWithOptions(opts)
}
func (f *fakeAdapter) InjectHeaders(header http.Header) {
	for k, v := range header {
		f.req.Header[k] = v
	}
}
func (f *fakeAdapter) ForceNoCacheDirective() {
	f.req.Header.Set("Cache-Control", "no-cache")
}
func (f *fakeAdapter) OverriddenCacheMode() (CacheMode, bool) {
	if f.override == nil {
		return 0, false
	}
	return *f.override, true
}
func (f *fakeAdapter) RemoteFetch(ctx context.Context) (backend.CachedResponse, policy.Blob, error) {
	res := f.responses[f.fetched]
	f.fetched++
	cached, err := backend.FromHTTPResponse(res, nil)
	now := time.Now()
	return cached, policy.BuildPolicy(now, now), err
}

func freshJSONResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Proto:      "HTTP/1.1", ProtoMajor: 1, ProtoMinor: 1,
		Header: http.Header{
			"Cache-Control": {"max-age=3600"},
			"Content-Type":  {"application/json"},
		},
		Body: io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestServeMissFetchesAndStores(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	e := New(store, Options{})
	a := newFakeAdapter("GET", "http://example.com/a", freshJSONResponse("hello"))

	res, err := e.Serve(ctx, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	if string(body) != "hello" {
		t.Fatalf("expected hello, got %q", body)
	}
	if store.Len() != 1 {
		t.Fatalf("expected entry to be stored, store has %d entries", store.Len())
	}
	if a.fetched != 1 {
		t.Fatalf("expected exactly one fetch, got %d", a.fetched)
	}
}

func TestServeHitFreshServesWithoutRefetch(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	e := New(store, Options{})

	a1 := newFakeAdapter("GET", "http://example.com/a", freshJSONResponse("hello"))
	if _, err := e.Serve(ctx, a1); err != nil {
		t.Fatalf("priming request failed: %v", err)
	}

	a2 := newFakeAdapter("GET", "http://example.com/a", freshJSONResponse("should not be used"))
	res, err := e.Serve(ctx, a2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	if string(body) != "hello" {
		t.Fatalf("expected cached body, got %q", body)
	}
	if a2.fetched != 0 {
		t.Fatalf("expected no fetch on a fresh hit, got %d", a2.fetched)
	}
}

func TestServeNoStoreNeverWritesCache(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	e := New(store, Options{Mode: NoStore})
	a := newFakeAdapter("GET", "http://example.com/a", freshJSONResponse("hello"))

	if _, err := e.Serve(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no entries stored under NoStore, got %d", store.Len())
	}
}

func TestServeOnlyIfCachedMissReturnsSyntheticGatewayTimeout(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	e := New(store, Options{Mode: OnlyIfCached})
	a := newFakeAdapter("GET", "http://example.com/a")

	res, err := e.Serve(ctx, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", res.StatusCode)
	}
	if a.fetched != 0 {
		t.Fatalf("expected no origin fetch under OnlyIfCached miss, got %d", a.fetched)
	}
}

func TestServeUnsafeMethodBypassesCacheAndInvalidates(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	e := New(store, Options{})

	getA := newFakeAdapter("GET", "http://example.com/a", freshJSONResponse("cached"))
	if _, err := e.Serve(ctx, getA); err != nil {
		t.Fatalf("priming GET failed: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected primed entry, got %d", store.Len())
	}

	postRes := &http.Response{
		StatusCode: 204, Proto: "HTTP/1.1", ProtoMajor: 1, ProtoMinor: 1,
		Header: http.Header{}, Body: http.NoBody,
	}
	postA := newFakeAdapter("POST", "http://example.com/a", postRes)
	if _, err := e.Serve(ctx, postA); err != nil {
		t.Fatalf("unexpected error on POST: %v", err)
	}
	if postA.fetched != 1 {
		t.Fatalf("expected POST to always forward, got %d fetches", postA.fetched)
	}
	if store.Len() != 0 {
		t.Fatalf("expected the GET entry to be invalidated by the POST, got %d entries", store.Len())
	}
}

func TestServeAppliesResponseRulesBeforeStoring(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rules := responsetransformer.Rules{{Override: "max-age=60"}}
	e := New(store, Options{ResponseRules: rules})
	a := newFakeAdapter("GET", "http://example.com/a", freshJSONResponse("hello"))

	res, err := e.Serve(ctx, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Header.Get("Cache-Control"); got != "max-age=60" {
		t.Fatalf("expected response rule to override Cache-Control, got %q", got)
	}
	entry, err := store.Get(ctx, "GET http://example.com/a")
	if err != nil {
		t.Fatalf("expected entry to be stored: %v", err)
	}
	if got := entry.Response.Header.Get("Cache-Control"); got != "max-age=60" {
		t.Fatalf("expected stored entry to carry the overridden Cache-Control, got %q", got)
	}
}

func TestServeUnsafeMethodNotifiesCacheUpdate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	var notified []cacheupdate.CacheUpdate
	e := New(store, Options{
		UpdateNotifier: func(u cacheupdate.CacheUpdate) {
			notified = append(notified, u)
		},
	})

	postRes := &http.Response{
		StatusCode: 204, Proto: "HTTP/1.1", ProtoMajor: 1, ProtoMinor: 1,
		Header: http.Header{"Cache-Update": {"/other;delay=5"}}, Body: http.NoBody,
	}
	a := newFakeAdapter("POST", "http://example.com/a", postRes)
	if _, err := e.Serve(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notified) != 1 {
		t.Fatalf("expected exactly one Cache-Update notification, got %d", len(notified))
	}
	if notified[0].Path != "/other" {
		t.Fatalf("expected path /other, got %q", notified[0].Path)
	}
	if notified[0].Delay != 5*time.Second {
		t.Fatalf("expected 5s delay, got %v", notified[0].Delay)
	}
}

func TestServeCacheStatusHeaderAttachedWhenEnabled(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	e := New(store, Options{CacheStatusHeaders: true})
	a := newFakeAdapter("GET", "http://example.com/a", freshJSONResponse("hello"))

	res, err := e.Serve(ctx, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Header.Get("Cache-Status") == "" {
		t.Fatal("expected Cache-Status header to be set")
	}
}
