package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/always-cache/cachekit/adapter"
	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/engine"
)

// Proxy is the top-level http.Handler wiring an engine.Engine and an
// adapter.HTTPAdapter together for a single origin, grounded on
// core/cache.go's AlwaysCache: ServeHTTP recovers from handler panics and
// answers the request with a 500 "Internal error" response instead of
// letting the panic end the process.
type Proxy struct {
	eng        *engine.Engine
	originURL  url.URL
	originHost string
	client     *http.Client
}

// NewProxy builds a Proxy forwarding to originURL, deciding caching via eng.
func NewProxy(eng *engine.Engine, originURL url.URL, originHost string) *Proxy {
	return &Proxy{
		eng:        eng,
		originURL:  originURL,
		originHost: originHost,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer p.recover(w, r)

	a := adapter.NewHTTPAdapter(r, p.originURL, p.originHost, p.client)
	if mode, ok := modeForPath(r.URL.Path); ok {
		a.WithOverriddenCacheMode(mode)
	}

	res, err := p.eng.Serve(r.Context(), a)
	if err != nil {
		log.Error().Err(err).Str("url", r.URL.String()).Msg("cachekitproxy: serving request failed")
		http.Error(w, "Error contacting origin", http.StatusBadGateway)
		return
	}
	defer res.Body.Close()
	send(w, res)
}

// recover mirrors core/cache.go's AlwaysCache.recover: a panic deep in the
// decision engine or backend should not take the whole process down, and
// should not leave the client hanging without a response.
func (p *Proxy) recover(w http.ResponseWriter, r *http.Request) {
	if err := recover(); err != nil {
		log.WithLevel(zerolog.PanicLevel).Interface("error", err).Str("url", r.URL.String()).Msg("cachekitproxy: panic in proxy handler")
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// send copies res onto w, the way core/cache.go's send does.
func send(w http.ResponseWriter, res *http.Response) {
	copyHeader(w.Header(), res.Header)
	w.WriteHeader(res.StatusCode)
	if _, err := io.Copy(w, res.Body); err != nil {
		log.Warn().Err(err).Msg("cachekitproxy: error writing response body to client")
	}
}

func copyHeader(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

// purgeHandler removes every stored entry whose key is prefixed by the
// "prefix" query parameter, an admin escape hatch the teacher's config.go
// never implemented (it reserved, but did not wire, path-based overrides).
func purgeHandler(store backend.Buffered, keys keyLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			http.Error(w, "missing prefix query parameter", http.StatusBadRequest)
			return
		}
		n := 0
		keys.Keys(func(key string) {
			if strings.HasPrefix(key, prefix) {
				if err := store.Delete(r.Context(), key); err == nil {
					n++
				}
			}
		})
		fmt.Fprintf(w, "purged %d entries\n", n)
	}
}

// keyLister is satisfied by backend/memory.Cache. The sqlite backend's Keys
// has a different signature and streamcache has no key listing, so those
// deployments don't register the purge route (see main.go).
type keyLister interface {
	Keys(cb func(string))
}
