// Package cachekey computes canonical cache keys (C4: KeyBuilder). A
// KeyBuilder is deterministic and stateless; it supports an
// application-supplied override function and a separate invalidation-set
// function for write methods that bust related entries.
package cachekey

import (
	"net/http"
	"strings"

	"github.com/always-cache/cachekit/rfc9111"
)

// KeyFunc computes the cache key for a request, overriding the default
// "{METHOD} {effective-URL}" format.
type KeyFunc func(req *http.Request) string

// BustFunc computes the set of keys to invalidate (delete) for a write
// request, given its (possibly-overridden) key.
type BustFunc func(req *http.Request, key string) []string

// Default computes the spec-mandated default key: "{METHOD-UPPERCASE}
// {effective-URL}".
func Default(req *http.Request) string {
	return strings.ToUpper(req.Method) + " " + req.URL.String()
}

// Builder computes cache keys, optionally delegating to an
// application-supplied override function.
type Builder struct {
	keyFn KeyFunc
}

// NewBuilder returns a Builder. A nil keyFn falls back to Default.
func NewBuilder(keyFn KeyFunc) Builder {
	if keyFn == nil {
		keyFn = Default
	}
	return Builder{keyFn: keyFn}
}

// Key computes the key prefix for req (before accounting for Vary). This is
// the value used to look up any previously-stored entries for the request's
// target URI, irrespective of which variant (by Vary) is ultimately chosen.
func (b Builder) Key(req *http.Request) string {
	return b.keyFn(req)
}

// WithVary appends the values of the request header fields nominated by the
// stored response's Vary header to prefix, producing the full key a variant
// is actually stored/looked-up under (RFC 7234 §4.1).
func (b Builder) WithVary(prefix string, req *http.Request, res *http.Response) string {
	key := prefix
	for _, name := range rfc9111.GetListHeader(res.Header, "Vary") {
		if name == "*" {
			continue
		}
		if !rfc9111.FieldAbsent(req.Header, name) {
			key += "\n" + strings.ToLower(name) + ": " + req.Header.Get(name)
		}
	}
	return key
}

// VaryHeaders reconstructs the request header fields implied by a full
// (Vary-qualified) key, for building a synthetic request from a stored key
// alone (e.g. during the background update loop).
func VaryHeaders(key string) http.Header {
	header := make(http.Header)
	lines := strings.Split(key, "\n")
	for _, line := range lines[1:] {
		name, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		header.Add(name, value)
	}
	return header
}
