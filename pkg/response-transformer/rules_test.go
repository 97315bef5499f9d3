package responsetransformer

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func applyTo(t *testing.T, rules Rules, method, path string, existing http.Header) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "http://example.com"+path, nil)
	res := &http.Response{StatusCode: http.StatusOK, Header: existing, Request: req}
	if err := rules.Apply(res); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	return res
}

func TestRulesApplyOverrideWins(t *testing.T) {
	rules := Rules{{Prefix: "/static/", Override: "max-age=600"}}
	res := applyTo(t, rules, http.MethodGet, "/static/a.css", http.Header{"Cache-Control": {"max-age=10"}})
	if got := res.Header.Get("Cache-Control"); got != "max-age=600" {
		t.Fatalf("expected override to win, got %q", got)
	}
}

func TestRulesApplyDefaultOnlyWhenAbsent(t *testing.T) {
	rules := Rules{{Prefix: "/static/", Default: "max-age=600"}}
	res := applyTo(t, rules, http.MethodGet, "/static/a.css", http.Header{"Cache-Control": {"max-age=10"}})
	if got := res.Header.Get("Cache-Control"); got != "max-age=10" {
		t.Fatalf("expected existing Cache-Control to survive a default rule, got %q", got)
	}
}

func TestRulesApplySkipsNonMatchingPrefix(t *testing.T) {
	rules := Rules{{Prefix: "/static/", Override: "max-age=600"}}
	res := applyTo(t, rules, http.MethodGet, "/api/a", http.Header{})
	if got := res.Header.Get("Cache-Control"); got != "" {
		t.Fatalf("expected no Cache-Control set, got %q", got)
	}
}

func TestRulesApplyIgnoresNonOKStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/static/a.css", nil)
	res := &http.Response{StatusCode: http.StatusNotFound, Header: http.Header{}, Request: req}
	rules := Rules{{Prefix: "/static/", Override: "max-age=600"}}
	if err := rules.Apply(res); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got := res.Header.Get("Cache-Control"); got != "" {
		t.Fatalf("expected non-200 responses to be left alone, got %q", got)
	}
}
