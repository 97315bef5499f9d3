package main

import (
	"os"
	"time"

	responsetransformer "github.com/always-cache/cachekit/pkg/response-transformer"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration file shape, grounded on the teacher's
// config.go Config/ConfigOrigin, extended with backend selection and rate
// limiting (spec.md §6's CacheOptions, applied per origin).
type Config struct {
	Origins []ConfigOrigin `yaml:"origins"`
}

// ConfigOrigin configures proxying to a single origin. Only one origin is
// supported per process, matching the teacher's own current limitation
// (main.go: "Need port and exactly one origin").
type ConfigOrigin struct {
	Origin        string `yaml:"origin"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	DisableUpdate bool   `yaml:"disableUpdate"`

	// Backend selects the storage implementation: "memory", "sqlite", or
	// "streamcache". Empty defaults to "sqlite".
	Backend string `yaml:"backend"`
	// DBFile is the sqlite database filename, used when Backend is "sqlite".
	// Empty opens a shared in-memory database.
	DBFile string `yaml:"dbFile"`
	// StreamcacheRoot is the directory streamcache stores content and
	// metadata under, used when Backend is "streamcache".
	StreamcacheRoot string `yaml:"streamcacheRoot"`

	// MaxTTL clamps every stored entry's freshness lifetime. Zero disables
	// clamping.
	MaxTTL time.Duration `yaml:"maxTTL"`
	// RateLimitRPS, if positive, bounds origin-fetch rate with a per-host
	// token bucket (cache hits are never throttled).
	RateLimitRPS   float64 `yaml:"rateLimitRPS"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	Rules []Rule `yaml:"rules"`

	// ResponseRules applies Cache-Control overrides/extra headers to
	// successful origin responses before storability is evaluated.
	ResponseRules responsetransformer.Rules `yaml:"responseRules"`
	// EnableCacheUpdate, if true, honors `Cache-Update` response headers on
	// unsafe-method requests by scheduling a delayed revalidation of the
	// named path (spec.md's SUPPLEMENTED FEATURES).
	EnableCacheUpdate bool `yaml:"enableCacheUpdate"`
}

// Rule overrides the cache mode for requests whose path matches Prefix,
// mirroring the per-path override the teacher's config.go reserved but
// never implemented ("Path-based overrides not yet supported").
type Rule struct {
	Prefix string `yaml:"prefix"`
	Mode   string `yaml:"mode"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}
