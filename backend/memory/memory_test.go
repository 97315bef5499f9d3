package memory

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/policy"
)

func TestGetMissing(t *testing.T) {
	c := New()
	if _, err := c.Get(context.Background(), "GET https://example.com/a"); err != backend.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	c := New()
	ctx := context.Background()
	key := "GET https://example.com/a"
	entry := backend.CacheEntry{
		Response: backend.CachedResponse{
			Status: 200,
			Header: http.Header{"Content-Type": {"text/plain"}},
			Body:   []byte("hello"),
		},
		Policy: policy.BuildPolicy(time.Now(), time.Now()),
	}

	if err := c.Put(ctx, key, entry); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Response.Body) != "hello" {
		t.Fatalf("expected body %q, got %q", "hello", got.Response.Body)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	c := New()
	ctx := context.Background()
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestKeysCallsBackForEachEntry(t *testing.T) {
	c := New()
	ctx := context.Background()
	c.Put(ctx, "a", backend.CacheEntry{})
	c.Put(ctx, "b", backend.CacheEntry{})

	seen := map[string]bool{}
	c.Keys(func(k string) { seen[k] = true })
	if !seen["a"] || !seen["b"] {
		t.Fatalf("expected both keys to be visited, got %v", seen)
	}
}
