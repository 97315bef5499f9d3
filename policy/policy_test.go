package policy

import (
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestStorableRespectsNoStore(t *testing.T) {
	req := &http.Request{Method: "GET"}
	res := &http.Response{
		StatusCode: 200,
		Header:     http.Header{"Cache-Control": {"no-store"}},
		Request:    req,
	}
	_, storable := Storable(req, res)
	if storable {
		t.Fatal("response with Cache-Control: no-store must not be storable")
	}
}

func TestStorableAllowsMaxAge(t *testing.T) {
	req := &http.Request{Method: "GET"}
	res := &http.Response{
		StatusCode: 200,
		Header:     http.Header{"Cache-Control": {"max-age=60"}},
		Request:    req,
	}
	_, storable := Storable(req, res)
	if !storable {
		t.Fatal("response with a max-age directive must be storable")
	}
}

func TestClassifyFreshHit(t *testing.T) {
	now := time.Now()
	req := &http.Request{Method: "GET", URL: mustURL(t, "https://example.com/a")}
	stored := &http.Response{
		StatusCode: 200,
		Header:     http.Header{"Cache-Control": {"max-age=3600"}},
		Request:    req,
	}
	blob := BuildPolicy(now, now)

	decision := Classify(req, stored, blob)
	if !decision.Reusable {
		t.Fatalf("expected fresh entry to be reusable, forward reason: %s", decision.ForwardReason)
	}
}

func TestClassifyStaleRequiresValidation(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	req := &http.Request{Method: "GET", URL: mustURL(t, "https://example.com/b")}
	stored := &http.Response{
		StatusCode: 200,
		Header:     http.Header{"Cache-Control": {"max-age=60"}, "ETag": {`"v1"`}},
		Request:    req,
	}
	blob := BuildPolicy(past, past)

	decision := Classify(req, stored, blob)
	if decision.Reusable {
		t.Fatal("expected stale entry to require validation")
	}
	if decision.ValidationRequest == nil {
		t.Fatal("expected a conditional validation request to be generated")
	}
	if decision.ValidationRequest.Header.Get("If-None-Match") != `"v1"` {
		t.Fatalf("expected If-None-Match to carry stored ETag, got %q", decision.ValidationRequest.Header.Get("If-None-Match"))
	}
}

func TestInvalidationURIsForUnsafeMethod(t *testing.T) {
	req := &http.Request{Method: "POST", URL: mustURL(t, "https://example.com/c/update")}
	res := &http.Response{StatusCode: 201, Header: http.Header{"Location": {"/c"}}}

	uris := InvalidationURIs(req, res)
	if len(uris) != 2 {
		t.Fatalf("expected target URI plus Location URI, got %v", uris)
	}
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %s: %v", raw, err)
	}
	return u
}
