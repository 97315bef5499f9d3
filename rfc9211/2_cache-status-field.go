package rfc9211

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FwdReason is the value of the "fwd" Cache-Status parameter (Section 2.2),
// explaining why a cache forwarded a request rather than serving a stored
// response.
type FwdReason string

const (
	// FwdReasonUriMiss means the stored response was selected because a
	// match for the target URI was not found; the cache had no copy.
	FwdReasonUriMiss FwdReason = "uri-miss"
	// FwdReasonVaryMiss means the cache did store a response for the target
	// URI, but a matching one could not be chosen, given the request's
	// nominated header fields (see Section 4.1 of [HTTP-CACHING]).
	FwdReasonVaryMiss FwdReason = "vary-miss"
	// FwdReasonMiss is a generic forward reason used when no other, more
	// specific reason applies.
	FwdReasonMiss FwdReason = "miss"
	// FwdReasonRequest means the client requested that the cache not use the
	// stored response.
	FwdReasonRequest FwdReason = "request"
	// FwdReasonStale means the stored response was not fresh enough to be
	// used without validation.
	FwdReasonStale FwdReason = "stale"
	// FwdReasonMethod means the stored response is associated with a
	// request method that is not allowed to be served from cache.
	FwdReasonMethod FwdReason = "method"
)

// CacheStatus represents the value of a Cache-Status response header field
// (Section 2), describing how the cache handled a particular request.
type CacheStatus struct {
	// HitStatus is true if the response was served from cache.
	HitStatus bool
	// ForwardReason is set when the cache forwarded the request.
	ForwardReason FwdReason
	// ForwardStatus is the status code received from the forwarded request,
	// if any.
	ForwardStatus int
	// TimeToLive is the response's freshness lifetime remaining at the time
	// it was served, which may be negative for stale responses.
	TimeToLive time.Duration
	// Stored is true if the response (resulting from a forwarded request)
	// was stored in the cache.
	Stored bool
}

// Hit marks the status as a cache hit.
func (s *CacheStatus) Hit() {
	s.HitStatus = true
}

// Forward marks the status as forwarded, with the given reason.
func (s *CacheStatus) Forward(reason FwdReason) {
	s.HitStatus = false
	s.ForwardReason = reason
}

// String renders the status as a Cache-Status field-value, per Section 2.
func (s CacheStatus) String() string {
	var b strings.Builder
	if s.HitStatus {
		b.WriteString("hit")
		if s.TimeToLive != 0 {
			fmt.Fprintf(&b, "; ttl=%s", strconv.FormatFloat(s.TimeToLive.Seconds(), 'f', 0, 64))
		}
	} else {
		fmt.Fprintf(&b, "fwd=%s", s.ForwardReason)
		if s.ForwardStatus != 0 {
			fmt.Fprintf(&b, "; fwd-status=%d", s.ForwardStatus)
		}
	}
	if s.Stored {
		b.WriteString("; stored")
	}
	return b.String()
}
