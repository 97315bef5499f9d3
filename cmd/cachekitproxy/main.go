// Command cachekitproxy is a runnable reverse-caching-proxy example built on
// cachekit: it wires backend, cachekey, policy, ratelimit, adapter, and
// engine into a single process the way the teacher's cmd/always-cache and
// cli/main.go wire up the always-cache package, generalized to cachekit's
// pluggable backends and per-path mode overrides.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/always-cache/cachekit/adapter"
	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/backend/memory"
	"github.com/always-cache/cachekit/backend/sqlite"
	"github.com/always-cache/cachekit/engine"
	cacheupdate "github.com/always-cache/cachekit/pkg/cache-update"
	"github.com/always-cache/cachekit/ratelimit"
	"github.com/always-cache/cachekit/streamcache"
)

var (
	configFilenameFlag string
	portFlag           int
	originFlag         string
	hostFlag           string
	backendFlag        string
	dbFilenameFlag     string
	streamcacheDirFlag string
	disableUpdateFlag  bool
	maxTTLFlag         time.Duration
	rateLimitRPSFlag   float64
	rateLimitBurstFlag int
	verbosityTraceFlag bool
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to YAML config file (overrides other flags)")
	flag.StringVar(&originFlag, "origin", "", "Origin URL to proxy to")
	flag.StringVar(&hostFlag, "host", "", "Hostname to send to origin (overrides URL host)")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&backendFlag, "backend", "sqlite", "Storage backend: memory, sqlite, or streamcache")
	flag.StringVar(&dbFilenameFlag, "db", "cachekit.db", "sqlite database file (use 'memory' for in-memory)")
	flag.StringVar(&streamcacheDirFlag, "streamcache-dir", "cachekit-content", "streamcache root directory")
	flag.BoolVar(&disableUpdateFlag, "disable-update", false, "Disable the background revalidation loop")
	flag.DurationVar(&maxTTLFlag, "max-ttl", 0, "Clamp every stored entry's freshness lifetime (0 disables)")
	flag.Float64Var(&rateLimitRPSFlag, "rate-limit-rps", 0, "Per-host origin-fetch rate limit (0 disables)")
	flag.IntVar(&rateLimitBurstFlag, "rate-limit-burst", 1, "Rate limit burst size")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
}

func main() {
	flag.Parse()

	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}
	log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stdout})

	origin := ConfigOrigin{
		Origin:          originFlag,
		Host:            hostFlag,
		Port:            portFlag,
		DisableUpdate:   disableUpdateFlag,
		Backend:         backendFlag,
		DBFile:          dbFilenameFlag,
		StreamcacheRoot: streamcacheDirFlag,
		MaxTTL:          maxTTLFlag,
		RateLimitRPS:    rateLimitRPSFlag,
		RateLimitBurst:  rateLimitBurstFlag,
	}

	if configFilenameFlag != "" {
		config, err := getConfig(configFilenameFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not read config file")
		}
		if len(config.Origins) != 1 {
			log.Fatal().Msg("Config must specify exactly one origin")
		}
		origin = config.Origins[0]
	}

	if origin.Origin == "" {
		log.Fatal().Msg("Please specify -origin (or an origin in -config)")
	}
	originURL, err := url.Parse(origin.Origin)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not parse origin URL")
	}

	rules = origin.Rules

	store, oldest, keys := buildBackend(origin)

	var eng *engine.Engine
	opts := engine.Options{
		MaxTTL:             origin.MaxTTL,
		CacheStatusHeaders: true,
		RateLimiter:        buildRateLimiter(origin),
		ResponseRules:      origin.ResponseRules,
	}
	if origin.EnableCacheUpdate {
		opts.UpdateNotifier = scheduleCacheUpdate(&eng, *originURL, origin.Host)
	}
	eng = engine.New(store, opts)
	proxy := NewProxy(eng, *originURL, origin.Host)

	r := chi.NewRouter()
	if keys != nil {
		r.Get("/-/purge", purgeHandler(store, keys))
	}
	r.Get("/-/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Mount("/", proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !origin.DisableUpdate && oldest != nil {
		go eng.RunUpdateLoop(ctx, oldest, revalidateFn(eng, *originURL, origin.Host))
	}

	log.Info().Msgf("Proxying port %d to %s (backend=%s)", origin.Port, originURL.String(), backendName(origin))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", origin.Port), r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func backendName(origin ConfigOrigin) string {
	if origin.Backend == "" {
		return "sqlite"
	}
	return origin.Backend
}

// buildBackend constructs the configured backend.Buffered, plus, where
// available, an "oldest expiring key" function for engine.RunUpdateLoop and
// a key lister for the admin purge route.
func buildBackend(origin ConfigOrigin) (backend.Buffered, func(context.Context) (string, time.Time, error), keyLister) {
	switch backendName(origin) {
	case "memory":
		store := memory.New()
		return store, nil, store
	case "streamcache":
		root := origin.StreamcacheRoot
		if root == "" {
			root = "cachekit-content"
		}
		store, err := streamcache.New(streamcache.Config{RootPath: root})
		if err != nil {
			log.Fatal().Err(err).Msg("Could not open streamcache store")
		}
		return store, nil, nil
	case "sqlite":
		filename := origin.DBFile
		if filename == "memory" {
			filename = ""
		}
		store := sqlite.New(filename)
		oldest := func(ctx context.Context) (string, time.Time, error) {
			return store.Oldest(ctx, "")
		}
		return store, oldest, nil
	default:
		log.Fatal().Msgf("Unsupported backend: %s", origin.Backend)
		return nil, nil, nil
	}
}

func buildRateLimiter(origin ConfigOrigin) ratelimit.Limiter {
	if origin.RateLimitRPS <= 0 {
		return ratelimit.None{}
	}
	burst := origin.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	return ratelimit.NewPerHost(origin.RateLimitRPS, burst)
}

// revalidateFn builds the revalidation callback engine.RunUpdateLoop drives:
// it reconstructs the original request from the "{METHOD} {URL}" cache key
// and forces a conditional revalidation via NoCache, the way
// core/cache.go's updateCache revalidates by replaying the stored request.
func revalidateFn(eng *engine.Engine, originURL url.URL, originHost string) func(context.Context, string) error {
	return func(ctx context.Context, key string) error {
		method, rawURL, ok := strings.Cut(key, " ")
		if !ok {
			return fmt.Errorf("cachekitproxy: malformed cache key %q", key)
		}
		return revalidatePath(ctx, eng, originURL, originHost, method, rawURL)
	}
}

func revalidatePath(ctx context.Context, eng *engine.Engine, originURL url.URL, originHost, method, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return err
	}
	a := adapter.NewHTTPAdapter(req, originURL, originHost, nil).WithOverriddenCacheMode(engine.NoCache)
	_, err = eng.Serve(ctx, a)
	return err
}

// scheduleCacheUpdate builds an engine.Options.UpdateNotifier that acts on
// `Cache-Update` response headers (pkg/cache-update) by revalidating the
// named path after its requested delay, grounded on core/cache.go's
// saveUpdates/revalidateUris background scheduling. eng is a pointer to a
// not-yet-constructed Engine: the notifier is only invoked from within
// Engine.Serve, and main assigns it before any request is served.
func scheduleCacheUpdate(eng **engine.Engine, originURL url.URL, originHost string) func(cacheupdate.CacheUpdate) {
	return func(update cacheupdate.CacheUpdate) {
		time.AfterFunc(update.Delay, func() {
			if err := revalidatePath(context.Background(), *eng, originURL, originHost, http.MethodGet, update.Path); err != nil {
				log.Warn().Err(err).Str("path", update.Path).Msg("cachekitproxy: cache-update revalidation failed")
			}
		})
	}
}
