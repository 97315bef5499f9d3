package cachekey

import (
	"net/http"
	"net/url"
	"testing"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %s: %v", raw, err)
	}
	return u
}

func TestDefaultKeyFormat(t *testing.T) {
	req := &http.Request{Method: "GET", URL: mustURL(t, "https://example.com/a")}
	if got, want := Default(req), "GET https://example.com/a"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuilderUsesOverride(t *testing.T) {
	b := NewBuilder(func(req *http.Request) string { return "custom:" + req.URL.Path })
	req := &http.Request{Method: "GET", URL: mustURL(t, "https://example.com/a")}
	if got, want := b.Key(req), "custom:/a"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWithVaryAppendsNominatedHeaders(t *testing.T) {
	b := NewBuilder(nil)
	req := &http.Request{
		Method: "GET",
		URL:    mustURL(t, "https://example.com/a"),
		Header: http.Header{"Accept-Encoding": {"gzip"}},
	}
	res := &http.Response{Header: http.Header{"Vary": {"Accept-Encoding"}}}

	prefix := b.Key(req)
	full := b.WithVary(prefix, req, res)
	if full == prefix {
		t.Fatal("expected vary headers to extend the key")
	}
	if VaryHeaders(full).Get("Accept-Encoding") != "gzip" {
		t.Fatalf("expected to recover Accept-Encoding from key, got headers %v", VaryHeaders(full))
	}
}

func TestWithVaryIgnoresWildcard(t *testing.T) {
	b := NewBuilder(nil)
	req := &http.Request{Method: "GET", URL: mustURL(t, "https://example.com/a"), Header: http.Header{}}
	res := &http.Response{Header: http.Header{"Vary": {"*"}}}

	prefix := b.Key(req)
	if full := b.WithVary(prefix, req, res); full != prefix {
		t.Fatalf("expected Vary: * to add nothing, got %q", full)
	}
}
