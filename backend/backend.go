// Package backend defines the storage contracts the cache decision engine is
// generic over: a buffered backend (response body is an owned byte buffer)
// and a streaming backend (response body is a lazily-read byte stream).
// Concrete implementations live in backend/memory, backend/sqlite, and
// streamcache.
package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/always-cache/cachekit/policy"
)

// ErrNotFound is returned by Buffered.Get and Streaming.GetStream when no
// entry exists for the given key. It is an internal signal - callers should
// treat it the same as CacheMiss (spec.md §7) and never surface it.
var ErrNotFound = errors.New("backend: entry not found")

// CachedResponse is the buffered-backend representation of an HTTP
// response: status, headers, and a fully materialized body.
type CachedResponse struct {
	Status     int
	Proto      string
	ProtoMajor int
	ProtoMinor int
	Header     http.Header
	Body       []byte
	URL        string
	// RequestHeader carries the header fields of the request that produced
	// this response (the request in effect when it was fetched/stored), not
	// the request of whatever later lookup retrieves it. RFC 9111 §4.1 Vary
	// matching compares the *current* request against this one; without it,
	// ToHTTPResponse would have no choice but to compare a request against
	// itself, and Vary matching could never fail. Nil for responses that
	// predate this field or were never associated with a request.
	RequestHeader http.Header
	// Metadata is an opaque blob supplied by the caller at store time (via
	// engine.Options.MetadataProvider or an explicit metadata parameter).
	Metadata []byte
}

// CacheEntry pairs a stored response with the policy blob that was computed
// from the exact response it accompanies.
type CacheEntry struct {
	Response CachedResponse
	Policy   policy.Blob
}

// ToHTTPResponse reconstructs an *http.Response suitable for feeding to the
// policy engine or returning to a caller. The body is backed by the buffered
// bytes and is safe to read multiple times by re-wrapping with NewReader.
//
// The returned Response's Request field is the ORIGINAL request this
// response was stored against (reconstructed from URL/RequestHeader), not
// req - callers that need the original for RFC 9111 §4.1 Vary matching
// (res.Request) pass the current request as a separate argument to
// policy.Classify; req is used here only as a fallback for entries with no
// recorded RequestHeader (e.g. a response that was just fetched and has not
// yet round-tripped through storage).
func (c CachedResponse) ToHTTPResponse(req *http.Request) *http.Response {
	header := c.Header.Clone()
	storedReq := req
	if c.RequestHeader != nil {
		u, err := url.Parse(c.URL)
		if err != nil {
			u = &url.URL{}
		}
		storedReq = &http.Request{URL: u, Header: c.RequestHeader.Clone()}
	}
	return &http.Response{
		Status:        http.StatusText(c.Status),
		StatusCode:    c.Status,
		Proto:         c.Proto,
		ProtoMajor:    c.ProtoMajor,
		ProtoMinor:    c.ProtoMinor,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(c.Body)),
		ContentLength: int64(len(c.Body)),
		Request:       storedReq,
	}
}

// FromHTTPResponse buffers res's body in full and captures it as a
// CachedResponse. The caller must close res.Body; FromHTTPResponse does not.
// If res.Request is set, its header fields are captured as RequestHeader so
// a later Vary comparison (RFC 9111 §4.1) has the original request to
// compare against.
func FromHTTPResponse(res *http.Response, metadata []byte) (CachedResponse, error) {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return CachedResponse{}, err
	}
	requestURL := ""
	var requestHeader http.Header
	if res.Request != nil {
		if res.Request.URL != nil {
			requestURL = res.Request.URL.String()
		}
		requestHeader = res.Request.Header.Clone()
	}
	return CachedResponse{
		Status:        res.StatusCode,
		Proto:         res.Proto,
		ProtoMajor:    res.ProtoMajor,
		ProtoMinor:    res.ProtoMinor,
		Header:        res.Header.Clone(),
		Body:          body,
		URL:           requestURL,
		RequestHeader: requestHeader,
		Metadata:      metadata,
	}, nil
}

// Buffered is the contract every simple key -> blob backend must honor
// (spec.md §4.1, "Buffered backend").
//
// Implementations must be safe for concurrent use. Concurrent operations on
// distinct keys are independent; concurrent operations on the same key
// produce a linearizable sequence (last writer wins; readers never observe
// a torn mix of two writes).
type Buffered interface {
	// Get returns the stored entry for key, or ErrNotFound if absent.
	Get(ctx context.Context, key string) (CacheEntry, error)
	// Put stores or overwrites the entry for key.
	Put(ctx context.Context, key string, entry CacheEntry) error
	// Delete removes the entry for key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// StreamingBody is a finite, forward-only sequence of body bytes. It is not
// restartable: call Streaming.GetStream again for a second read.
type StreamingBody = io.ReadCloser

// Streaming extends Buffered with chunked, low-memory reads and writes,
// as implemented by the content-addressed streamcache backend (spec.md §4.2).
type Streaming interface {
	Buffered

	// GetStream returns a response whose body streams from storage on
	// demand, or ErrNotFound if absent.
	GetStream(ctx context.Context, key string) (StreamingCacheEntry, error)
	// PutStream consumes body in full (buffering is mandatory - the content
	// digest cannot be known until the last byte is seen) and stores it
	// under key, associated with the given policy, request URL, the
	// producing request's headers (for later Vary matching, RFC 9111 §4.1),
	// and optional metadata. It returns the fully-buffered CachedResponse
	// that was stored.
	PutStream(ctx context.Context, key string, head ResponseHead, body io.Reader, pol policy.Blob, requestURL string, requestHeader http.Header, metadata []byte) (CachedResponse, error)
	// EmptyBody returns a streaming body with zero frames, useful for
	// synthetic responses that never had an origin body (e.g. HEAD).
	EmptyBody() StreamingBody
}

// ResponseHead carries status/headers for a streamed write, since the body
// is supplied separately as an io.Reader.
type ResponseHead struct {
	Status     int
	Proto      string
	ProtoMajor int
	ProtoMinor int
	Header     http.Header
}

// StreamingCacheEntry is the streaming-backend analogue of CacheEntry: the
// body is a StreamingBody rather than an owned buffer.
type StreamingCacheEntry struct {
	Head ResponseHead
	// RequestHeader carries the producing request's header fields, the
	// streaming analogue of CachedResponse.RequestHeader.
	RequestHeader http.Header
	Body          StreamingBody
	Policy        policy.Blob
}
