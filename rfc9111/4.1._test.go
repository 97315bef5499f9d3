package rfc9111

import (
	"net/http"
	"testing"
)

func TestVaryHeaderFieldsMatch(t *testing.T) {
	storedReq := &http.Request{Header: http.Header{"Accept-Encoding": {"gzip"}}}
	req := &http.Request{Header: http.Header{"Accept-Encoding": {"gzip"}}}
	res := &http.Response{Header: http.Header{"Vary": {"Accept-Encoding"}}}
	if !headerFieldsMatch(req, storedReq, res) {
		t.Fatal("requests with identical nominated header fields should match")
	}
}

func TestVaryHeaderFieldsMismatch(t *testing.T) {
	storedReq := &http.Request{Header: http.Header{"Accept-Encoding": {"gzip"}}}
	req := &http.Request{Header: http.Header{"Accept-Encoding": {"br"}}}
	res := &http.Response{Header: http.Header{"Vary": {"Accept-Encoding"}}}
	if headerFieldsMatch(req, storedReq, res) {
		t.Fatal("requests with differing nominated header fields should not match")
	}
}

func TestVaryHeaderWildcardNeverMatches(t *testing.T) {
	storedReq := &http.Request{Header: http.Header{}}
	req := &http.Request{Header: http.Header{}}
	res := &http.Response{Header: http.Header{"Vary": {"*"}}}
	if headerFieldsMatch(req, storedReq, res) {
		t.Fatal("a Vary: * entry should never match")
	}
}
