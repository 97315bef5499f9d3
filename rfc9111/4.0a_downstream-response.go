package rfc9111

import (
	"net/http"
	"time"
)

// ConstructDownstreamResponse prepares a freshly-fetched origin response for
// being sent downstream, stripping the header fields that Section 3.1
// excludes from storage, and reports whether the response is storable
// (Section 3).
func ConstructDownstreamResponse(req *http.Request, res *http.Response) (*http.Response, bool) {
	downstream := &http.Response{
		Status:     res.Status,
		StatusCode: res.StatusCode,
		Proto:      res.Proto,
		ProtoMajor: res.ProtoMajor,
		ProtoMinor: res.ProtoMinor,
		Header:     storableHeader(res.Header),
		Body:       res.Body,
		Request:    req,
	}
	return downstream, !mustNotStore(req, downstream)
}

// TimeToLive returns the response's remaining freshness lifetime at the
// given response/request time, as reported by the "ttl" Cache-Status
// parameter (Section 2.4 of RFC 9211). It may be negative for stale
// responses.
func TimeToLive(res *http.Response, responseTime, requestTime time.Time) time.Duration {
	return freshness_lifetime(res) - current_age(res, responseTime, requestTime)
}
