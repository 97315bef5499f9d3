package main

import (
	"strings"

	"github.com/always-cache/cachekit/engine"
)

// rules holds the active path-prefix cache-mode overrides, set once at
// startup from Config.Origins[0].Rules. It is read-only after startup, so
// concurrent reads from request handlers need no synchronization.
var rules []Rule

func parseMode(name string) (engine.CacheMode, bool) {
	switch strings.ToLower(name) {
	case "default":
		return engine.Default, true
	case "no-store":
		return engine.NoStore, true
	case "reload":
		return engine.Reload, true
	case "no-cache":
		return engine.NoCache, true
	case "force-cache":
		return engine.ForceCache, true
	case "only-if-cached":
		return engine.OnlyIfCached, true
	case "ignore-rules":
		return engine.IgnoreRules, true
	default:
		return engine.Default, false
	}
}

// modeForPath returns the override for the longest matching rule prefix,
// the per-request override mechanism the teacher's config.go reserved a
// Rules field for but never wired (spec.md §4.5 precedence 1, "adapter
// override").
func modeForPath(path string) (engine.CacheMode, bool) {
	best := -1
	var bestMode engine.CacheMode
	found := false
	for _, rule := range rules {
		if rule.Prefix == "" || !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if len(rule.Prefix) <= best {
			continue
		}
		mode, ok := parseMode(rule.Mode)
		if !ok {
			continue
		}
		best = len(rule.Prefix)
		bestMode = mode
		found = true
	}
	return bestMode, found
}
