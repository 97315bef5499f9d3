// Package policy wraps the rfc9111/rfc9211 RFC 7234 implementation behind a
// small set of primitives the cache decision engine consumes. It is the
// PolicyEngine referenced throughout the design: given a request and either
// a just-fetched or a previously-stored response, it answers whether the
// response is cacheable, whether a cached entry may be reused, and how to
// build a conditional revalidation request.
package policy

import (
	"net/http"
	"time"

	"github.com/always-cache/cachekit/rfc9111"
	"github.com/always-cache/cachekit/rfc9211"
)

// Blob is the opaque value the engine stores alongside a cached response; it
// carries the two timestamps RFC 7234 age calculations need and that cannot
// be recovered from the stored headers alone.
type Blob struct {
	RequestTime  time.Time
	ResponseTime time.Time
}

// BuildPolicy computes the policy blob for a request/response pair observed
// at requestTime/responseTime.
func BuildPolicy(requestTime, responseTime time.Time) Blob {
	return Blob{RequestTime: requestTime, ResponseTime: responseTime}
}

// BuildOptions carries the timestamps BuildPolicyWithOptions needs, exposed
// as a struct (rather than two positional arguments) so it can be shared
// across package boundaries by adapter.MiddlewareAdapter and engine.Adapter
// implementations without either importing the other's package.
type BuildOptions struct {
	RequestTime  time.Time
	ResponseTime time.Time
}

// BuildPolicyWithOptions is BuildPolicy with its arguments gathered into a
// BuildOptions value, for adapters (spec.md §4.6's build_policy_with_options)
// that want to pass additional context to future Blob computation without
// widening BuildPolicy's signature.
func BuildPolicyWithOptions(opts BuildOptions) Blob {
	return BuildPolicy(opts.RequestTime, opts.ResponseTime)
}

// Storable reports whether res, the freshly-fetched response to req, may be
// stored in the cache at all (RFC 7234 §3). It returns the response with the
// header fields that are never stored (Connection, hop-by-hop fields, ...)
// already stripped.
func Storable(req *http.Request, res *http.Response) (*http.Response, bool) {
	return rfc9111.ConstructDownstreamResponse(req, res)
}

// Decision is the result of classifying a stored entry against an incoming
// request.
type Decision struct {
	// Reusable is true if res may be returned to the caller unchanged (modulo
	// the Age header, which the engine must still set via Freshen).
	Reusable bool
	// ForwardReason explains why the entry was not reusable, for Cache-Status
	// reporting. Empty when Reusable is true.
	ForwardReason rfc9211.FwdReason
	// ValidationRequest, if non-nil, is a conditional request that - if it
	// returns 304 - lets the stale entry be reused after all.
	ValidationRequest *http.Request
}

// Classify decides whether storedRes (with its associated policy blob) may
// satisfy req.
func Classify(req *http.Request, storedRes *http.Response, blob Blob) Decision {
	reusableRes, validationReq, fwdReason := rfc9111.ConstructReusableResponse(
		req, storedRes, blob.RequestTime, blob.ResponseTime,
	)
	return Decision{
		Reusable:          fwdReason == "" && reusableRes != nil,
		ForwardReason:     fwdReason,
		ValidationRequest: validationReq,
	}
}

// Freshen sets the Age header on storedRes as it is about to be served from
// cache, per RFC 7234 §4.2.3/§4.
func Freshen(storedRes *http.Response, blob Blob) {
	rfc9111.AddAgeHeader(storedRes, blob.ResponseTime, blob.RequestTime)
}

// TimeToLive reports the response's remaining freshness lifetime, used for
// the Cache-Status "ttl" parameter and for deciding whether a background
// revalidation is due.
func TimeToLive(res *http.Response, blob Blob) time.Duration {
	return rfc9111.TimeToLive(res, blob.ResponseTime, blob.RequestTime)
}

// MergeValidated merges the header fields of a successful (304) validation
// response into the stored response it validated, per RFC 7234 §4.3.3/§4.3.4,
// and strips any 1xx Warning codes the stale entry was carrying.
func MergeValidated(stored *http.Response, validation *http.Response) *http.Response {
	rfc9111.StripWarnings(stored)
	for name, values := range validation.Header {
		if name == "Content-Length" {
			continue
		}
		stored.Header.Del(name)
		for _, v := range values {
			stored.Header.Add(name, v)
		}
	}
	return stored
}

// BuildConditionalRequest is exposed for adapters that want to synthesize a
// validation request themselves (e.g. from a stored entry with no live
// *http.Request available), mirroring what Classify computes internally.
func BuildConditionalRequest(req *http.Request, storedRes *http.Response) (*http.Request, error) {
	validationReq, err := http.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), nil)
	if err != nil {
		return nil, err
	}
	validationReq.Header = req.Header.Clone()
	if etag := storedRes.Header.Get("ETag"); etag != "" {
		validationReq.Header.Set("If-None-Match", etag)
	} else if lastModified := storedRes.Header.Get("Last-Modified"); lastModified != "" {
		validationReq.Header.Set("If-Modified-Since", lastModified)
	}
	return validationReq, nil
}

// InvalidationURIs returns the target URIs that must be invalidated because
// of an unsafe request that received a non-error response (RFC 7234 §4.4).
func InvalidationURIs(req *http.Request, res *http.Response) []string {
	return rfc9111.GetInvalidateURIs(req, res)
}

// IsUnsafeMethod reports whether req's method requires write-through and
// potential invalidation, rather than being servable from cache.
func IsUnsafeMethod(req *http.Request) bool {
	return rfc9111.UnsafeRequest(req)
}
