package rfc9111

import (
	"net/http"
	"net/url"
)

// GetInvalidateURIs returns the set of target URIs that MUST (or MAY) be
// invalidated as a result of an unsafe request method having received a
// non-error response, as described in Section 4.4.
//
// The target URI of the request is always included. The URIs named in the
// Location and Content-Location response header fields are also included,
// provided their origin matches that of the target URI - invalidating a
// foreign origin based on a response header would open the cache up to a
// denial-of-service vector.
func GetInvalidateURIs(req *http.Request, res *http.Response) []string {
	if !UnsafeRequest(req) || !isNonErrorResponse(res.StatusCode) {
		return nil
	}

	uris := []string{req.URL.String()}
	for _, field := range []string{"Location", "Content-Location"} {
		value := res.Header.Get(field)
		if value == "" {
			continue
		}
		candidate, err := req.URL.Parse(value)
		if err != nil {
			continue
		}
		if sameOrigin(req.URL, candidate) {
			uris = append(uris, candidate.String())
		}
	}
	return uris
}

func isNonErrorResponse(statusCode int) bool {
	return (statusCode >= 200 && statusCode < 300) || (statusCode >= 300 && statusCode < 400)
}

func sameOrigin(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host
}
