// Package sqlite implements a backend.Buffered on top of glebarez/go-sqlite,
// adapted from the teacher's SQLiteCache: rows key a serialized HTTP
// response, with an expiry index supporting the engine's background
// revalidation-before-expiry loop (engine.Engine.RunUpdateLoop).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/policy"
	"github.com/rs/zerolog/log"
)

// Cache is a SQLite-backed backend.Buffered. The zero value is not usable;
// construct one with New.
type Cache struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// New opens (creating if necessary) a SQLite database at filename and
// ensures the cache table and indexes exist. An empty filename opens a
// shared in-memory database, useful for tests.
//
// Setup failures panic, matching the teacher's construction-time behavior:
// a cache that cannot create its own schema cannot serve any request, so
// there is no meaningful degraded mode to return an error into.
func New(filename string) *Cache {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		panic(fmt.Errorf("sqlite backend: opening %s: %w", filename, err))
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		expires INTEGER,
		url TEXT,
		bytes BLOB
	)`); err != nil {
		panic(fmt.Errorf("sqlite backend: creating table: %w", err))
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS expires_idx ON cache (expires)"); err != nil {
		panic(fmt.Errorf("sqlite backend: creating index: %w", err))
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		panic(fmt.Errorf("sqlite backend: setting journal mode: %w", err))
	}
	return &Cache{db: db, writeMutex: &sync.Mutex{}}
}

func (c *Cache) Get(ctx context.Context, key string) (backend.CacheEntry, error) {
	var bts []byte
	var url string
	err := c.db.QueryRowContext(ctx, "SELECT url, bytes FROM cache WHERE key = ?", key).Scan(&url, &bts)
	if err == sql.ErrNoRows {
		return backend.CacheEntry{}, backend.ErrNotFound
	}
	if err != nil {
		return backend.CacheEntry{}, err
	}
	entry, err := bytesToEntry(bts, url)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("could not decode stored entry, treating as absent")
		return backend.CacheEntry{}, backend.ErrNotFound
	}
	return entry, nil
}

func (c *Cache) Put(ctx context.Context, key string, entry backend.CacheEntry) error {
	bts, err := entryToBytes(entry)
	if err != nil {
		return err
	}
	expires := policy.TimeToLive(entry.Response.ToHTTPResponse(nil), entry.Policy)

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache (key, expires, url, bytes) VALUES (?, ?, ?, ?)",
		key, time.Now().Add(expires).Unix(), entry.Response.URL, bts,
	)
	return err
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	_, err := c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key)
	return err
}

// Oldest returns the key of the entry with the earliest (non-zero) expiry
// among keys sharing prefix, for use by engine.Engine.RunUpdateLoop.
func (c *Cache) Oldest(ctx context.Context, prefix string) (string, time.Time, error) {
	var key string
	var expires int64
	err := c.db.QueryRowContext(ctx,
		"SELECT key, expires FROM cache WHERE key LIKE ? AND expires > 0 ORDER BY expires ASC LIMIT 1",
		prefix+"%",
	).Scan(&key, &expires)
	if err == sql.ErrNoRows {
		return "", time.Time{}, backend.ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, err
	}
	return key, time.Unix(expires, 0), nil
}

// Keys calls cb for every stored key with the given prefix.
func (c *Cache) Keys(ctx context.Context, prefix string, cb func(string)) error {
	rows, err := c.db.QueryContext(ctx, "SELECT key FROM cache WHERE key LIKE ?", prefix+"%")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return err
		}
		cb(key)
	}
	return rows.Err()
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
