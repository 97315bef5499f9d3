package rfc9111

import "net/http"

// AddRevalidationFailedWarning adds a "Warning: 111 - Revalidation failed"
// header to a stale response being served after a failed attempt to
// validate it with the origin. This specification obsoletes Warning, but
// the header remains a useful signal for debugging stale-if-error reuse.
func AddRevalidationFailedWarning(res *http.Response) {
	res.Header.Add("Warning", `111 - "Revalidation failed"`)
}

// AddStaleWarning adds a "Warning: 110 - Response is Stale" header to a
// stale response being served without successful revalidation.
func AddStaleWarning(res *http.Response) {
	res.Header.Add("Warning", `110 - "Response is Stale"`)
}

// StripWarnings removes all 1xx Warning header values from a response that
// is about to be revalidated and served fresh, as a cache is required to
// remove them once a response is confirmed or replaced (Section 5.5).
func StripWarnings(res *http.Response) {
	kept := res.Header.Values("Warning")[:0]
	for _, warning := range res.Header.Values("Warning") {
		if len(warning) >= 3 && warning[0] == '1' {
			continue
		}
		kept = append(kept, warning)
	}
	res.Header.Del("Warning")
	for _, warning := range kept {
		res.Header.Add("Warning", warning)
	}
}

// §  5.5.  Warning
// §
// §     The "Warning" header field was used to carry additional information
// §     about the status or transformation of a message that might not be
// §     reflected in the status code.  This specification obsoletes it, as it
// §     is not widely generated or surfaced to users.  The information it
// §     carried can be gleaned from examining other header fields, such as
// §     Age.