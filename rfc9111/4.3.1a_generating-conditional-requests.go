package rfc9111

import (
	"net/http"
)

// UnsafeRequest returns true if the request method is unsafe as defined by
// Section 9.2.1 of [HTTP]. A cache MUST write through requests with unsafe
// methods to the origin server (see Section 4).
func UnsafeRequest(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}

// FieldAbsent returns true if the given header field is not present at all
// in the given header.
func FieldAbsent(header http.Header, field string) bool {
	_, ok := header[http.CanonicalHeaderKey(field)]
	return !ok
}

// generateConditionalRequest synthesizes a validation request from a stored
// response, as described in Section 4.3.1. It copies the method and target
// URI from the original request and adds precondition header fields sourced
// from validator metadata (ETag, Last-Modified) on the stored response.
func generateConditionalRequest(req *http.Request, res *http.Response) (*http.Request, error) {
	validationReq, err := http.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), nil)
	if err != nil {
		return nil, err
	}
	validationReq.Header = req.Header.Clone()
	if validationReq.Header == nil {
		validationReq.Header = make(http.Header)
	}

	// MUST send the relevant entity tag using If-None-Match if provided.
	if etag := res.Header.Get("ETag"); etag != "" {
		validationReq.Header.Set("If-None-Match", etag)
	}
	// SHOULD send the Last-Modified value using If-Modified-Since, unless an
	// entity tag is already being used for the condition.
	if lastModified := res.Header.Get("Last-Modified"); lastModified != "" && validationReq.Header.Get("If-None-Match") == "" {
		validationReq.Header.Set("If-Modified-Since", lastModified)
	}

	return validationReq, nil
}
