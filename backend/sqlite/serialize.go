package sqlite

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/policy"
	"github.com/rs/zerolog/log"
)

// Serialization mirrors the teacher's pkg/response-serializer approach: the
// stored response is written in its raw HTTP/1.1 wire form, with the policy
// timestamps and caller-supplied metadata stashed in extra header fields
// that are stripped again on read. The producing request's header fields
// (needed for RFC 9111 §4.1 Vary matching; see backend.CachedResponse's
// RequestHeader doc comment) are carried the same way, JSON-encoded since
// http.Header already marshals cleanly as a map[string][]string.
const (
	responseTimeHeaderName = "Acache-Response-Time"
	requestTimeHeaderName  = "Acache-Request-Time"
	metadataHeaderName     = "Acache-Metadata"
	requestHeaderName      = "Acache-Request-Header"
)

func entryToBytes(entry backend.CacheEntry) ([]byte, error) {
	res := entry.Response.ToHTTPResponse(nil)
	res.Header.Set(responseTimeHeaderName, strconv.FormatInt(entry.Policy.ResponseTime.Unix(), 10))
	res.Header.Set(requestTimeHeaderName, strconv.FormatInt(entry.Policy.RequestTime.Unix(), 10))
	if len(entry.Response.Metadata) > 0 {
		res.Header.Set(metadataHeaderName, base64.StdEncoding.EncodeToString(entry.Response.Metadata))
	}
	if entry.Response.RequestHeader != nil {
		encoded, err := json.Marshal(entry.Response.RequestHeader)
		if err != nil {
			return nil, err
		}
		res.Header.Set(requestHeaderName, base64.StdEncoding.EncodeToString(encoded))
	}

	buf := &bytes.Buffer{}
	if err := res.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bytesToEntry(b []byte, url string) (backend.CacheEntry, error) {
	res, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(b)), nil)
	if err != nil {
		return backend.CacheEntry{}, err
	}
	defer res.Body.Close()

	responseTime, err := parseUnixHeader(res.Header, responseTimeHeaderName)
	if err != nil {
		log.Warn().Err(err).Msg("stored entry missing response time, treating as absent")
		return backend.CacheEntry{}, err
	}
	requestTime, err := parseUnixHeader(res.Header, requestTimeHeaderName)
	if err != nil {
		log.Warn().Err(err).Msg("stored entry missing request time, treating as absent")
		return backend.CacheEntry{}, err
	}

	var metadata []byte
	if encoded := res.Header.Get(metadataHeaderName); encoded != "" {
		metadata, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return backend.CacheEntry{}, err
		}
	}
	var requestHeader http.Header
	if encoded := res.Header.Get(requestHeaderName); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return backend.CacheEntry{}, err
		}
		if err := json.Unmarshal(decoded, &requestHeader); err != nil {
			return backend.CacheEntry{}, err
		}
	}
	res.Header.Del(responseTimeHeaderName)
	res.Header.Del(requestTimeHeaderName)
	res.Header.Del(metadataHeaderName)
	res.Header.Del(requestHeaderName)

	cached, err := backend.FromHTTPResponse(res, metadata)
	if err != nil {
		return backend.CacheEntry{}, err
	}
	cached.URL = url
	cached.RequestHeader = requestHeader

	return backend.CacheEntry{
		Response: cached,
		Policy:   policy.BuildPolicy(requestTime, responseTime),
	}, nil
}

func parseUnixHeader(header http.Header, name string) (time.Time, error) {
	value, err := strconv.ParseInt(header.Get(name), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(value, 0), nil
}
