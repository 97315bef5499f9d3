// Package streamcache implements C3, the streaming backend: a
// content-addressed, deduplicated storage backend bounded by total size and
// entry count with least-recently-used eviction, reference-counted content
// lifetime and true streaming reads. Every new entry is admitted; there is
// no frequency-based admission filter.
//
// Storage layout, rooted at Config.RootPath:
//
//	metadata/<hex-encoded-key>   small serialized StreamingMetadata record
//	content/<hex-digest>         raw body bytes, written once, read many
//
// An in-memory index maps key -> resident metadata for O(1) lookup without
// disk I/O on the hot path; a separate map tracks the reference count of
// each content digest, shared across every handle obtained from the same
// Cache (spec.md §4.2, "Shared-resource policy").
package streamcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/policy"
)

// Errors surfaced to callers (spec.md §7).
var (
	ErrNotFound      = errors.New("streamcache: entry not found")
	ErrBodyTooLarge  = errors.New("streamcache: body exceeds max_body_size")
	ErrBodyIntegrity = errors.New("streamcache: body failed integrity check")
)

// Config configures a Cache. Zero values fall back to the documented
// defaults (spec.md §6, "Streaming backend configuration").
type Config struct {
	// RootPath is the directory containing metadata/ and content/.
	RootPath string
	// MaxEntries bounds the in-memory metadata index by entry count. Zero
	// means unbounded.
	MaxEntries int
	// MaxCacheSize bounds the in-memory metadata index by the sum of
	// resident entries' content sizes, in bytes. Zero means unbounded.
	MaxCacheSize int64
	// MaxBodySize is the largest body PutStream will accept. Zero selects
	// the default of 100 MiB.
	MaxBodySize int64
	// ChunkSize is the read granularity for GetStream. Zero selects the
	// default of 64 KiB.
	ChunkSize int
	// CleanupQueueSize bounds the eviction-cleanup channel (spec.md §4.2,
	// "bounded cleanup channel"). Zero selects a default of 256.
	CleanupQueueSize int
}

const (
	defaultMaxBodySize      = 100 << 20 // 100 MiB
	defaultChunkSize        = 64 << 10  // 64 KiB
	defaultCleanupQueueSize = 256
)

func (c Config) withDefaults() Config {
	if c.MaxBodySize == 0 {
		c.MaxBodySize = defaultMaxBodySize
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.CleanupQueueSize == 0 {
		c.CleanupQueueSize = defaultCleanupQueueSize
	}
	return c
}

// metadataRecord is the on-disk/in-memory representation of StreamingMetadata
// (spec.md §3). Version is bumped whenever the encoding changes; readers
// reject unknown versions rather than guess at their layout.
type metadataRecord struct {
	Version        int
	Status         int
	Proto          string
	ProtoMajor     int
	ProtoMinor     int
	Header         map[string][]string
	ContentDigest  digest.Digest
	ContentSize    int64
	PolicyRequest  time.Time
	PolicyResponse time.Time
	Metadata       []byte
	URL            string
	RequestHeader  map[string][]string
	CreatedAt      time.Time
}

const currentMetadataVersion = 1

// cleanupJob asks the background consumer to decrement (and possibly
// delete) the content file for a digest whose last metadata reference was
// just dropped.
type cleanupJob struct {
	digest digest.Digest
}

// Cache is a backend.Streaming implementation. Construct with New.
type Cache struct {
	cfg Config

	index   *metadataIndex
	refs    *refCounter
	content *contentStore

	cleanup chan cleanupJob
	group   *errgroup.Group

	ctx    context.Context
	cancel context.CancelFunc
}

// New opens (creating if necessary) a streaming backend rooted at
// cfg.RootPath, rebuilds the in-memory index and refcounts from any
// existing metadata/content files, and starts the eviction-cleanup
// consumer goroutine.
func New(cfg Config) (*Cache, error) {
	cfg = cfg.withDefaults()

	if err := os.MkdirAll(filepath.Join(cfg.RootPath, "metadata"), 0o755); err != nil {
		return nil, fmt.Errorf("streamcache: creating metadata dir: %w", err)
	}
	content, err := newContentStore(filepath.Join(cfg.RootPath, "content"), cfg.MaxBodySize)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		cfg:     cfg,
		refs:    newRefCounter(),
		cleanup: make(chan cleanupJob, cfg.CleanupQueueSize),
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	var group *errgroup.Group
	group, c.ctx = errgroup.WithContext(ctx)
	c.group = group
	c.index = newMetadataIndex(cfg.MaxEntries, cfg.MaxCacheSize, c.onEvict)
	c.content = content

	skipped, err := loadExisting(cfg.RootPath, c.index, c.refs)
	if err != nil {
		return nil, err
	}
	for _, name := range skipped {
		log.Warn().Str("file", name).Msg("streamcache: skipping unreadable metadata record on startup")
	}

	c.group.Go(c.runCleanup)
	return c, nil
}

// Close stops the eviction-cleanup consumer, waiting for in-flight cleanup
// jobs to drain before it returns.
func (c *Cache) Close() error {
	c.cancel()
	return c.group.Wait()
}

// onEvict is invoked by metadataIndex (with its lock held) whenever a
// record is dropped by LRU/size eviction. It must not block or touch the
// index itself.
func (c *Cache) onEvict(record metadataRecord) {
	c.releaseDigest(record.ContentDigest)
}

// releaseDigest drops one reference to d and, if that was the last one,
// enqueues file deletion on the bounded cleanup channel with a non-blocking
// send (spec.md §4.2, "producer... uses non-blocking send").
func (c *Cache) releaseDigest(d digest.Digest) {
	if !c.refs.decref(d) {
		return
	}
	select {
	case c.cleanup <- cleanupJob{digest: d}:
	default:
		log.Warn().Str("digest", d.String()).Msg("streamcache: cleanup queue full, deleting inline")
		if err := c.content.remove(d); err != nil {
			log.Error().Err(err).Str("digest", d.String()).Msg("streamcache: inline content cleanup failed")
		}
	}
}

// runCleanup is the dedicated consumer that performs the actual file
// deletion I/O, kept off the hot path. It is run under an errgroup.Group so
// Close can wait for it to fully drain before returning; it never itself
// fails, so it always returns a nil error.
func (c *Cache) runCleanup() error {
	for {
		select {
		case job := <-c.cleanup:
			if err := c.content.remove(job.digest); err != nil {
				log.Error().Err(err).Str("digest", job.digest.String()).Msg("streamcache: content cleanup failed")
			}
		case <-c.ctx.Done():
			// Drain whatever is already queued before exiting.
			for {
				select {
				case job := <-c.cleanup:
					if err := c.content.remove(job.digest); err != nil {
						log.Error().Err(err).Str("digest", job.digest.String()).Msg("streamcache: content cleanup failed")
					}
				default:
					return nil
				}
			}
		}
	}
}

// Get implements backend.Buffered by fully buffering the streamed body.
func (c *Cache) Get(ctx context.Context, key string) (backend.CacheEntry, error) {
	entry, err := c.GetStream(ctx, key)
	if err != nil {
		return backend.CacheEntry{}, err
	}
	defer entry.Body.Close()
	body, err := io.ReadAll(entry.Body)
	if err != nil {
		return backend.CacheEntry{}, fmt.Errorf("streamcache: reading stream: %w", err)
	}
	return backend.CacheEntry{
		Response: backend.CachedResponse{
			Status:        entry.Head.Status,
			Proto:         entry.Head.Proto,
			ProtoMajor:    entry.Head.ProtoMajor,
			ProtoMinor:    entry.Head.ProtoMinor,
			Header:        entry.Head.Header,
			Body:          body,
			RequestHeader: entry.RequestHeader,
		},
		Policy: entry.Policy,
	}, nil
}

// Put implements backend.Buffered by delegating to PutStream.
func (c *Cache) Put(ctx context.Context, key string, entry backend.CacheEntry) error {
	head := backend.ResponseHead{
		Status:     entry.Response.Status,
		Proto:      entry.Response.Proto,
		ProtoMajor: entry.Response.ProtoMajor,
		ProtoMinor: entry.Response.ProtoMinor,
		Header:     entry.Response.Header,
	}
	_, err := c.PutStream(ctx, key, head, bytes.NewReader(entry.Response.Body), entry.Policy, entry.Response.URL, entry.Response.RequestHeader, entry.Response.Metadata)
	return err
}

// GetStream looks up key and returns a response whose body streams from
// the content file on demand. The returned body is not restartable.
func (c *Cache) GetStream(ctx context.Context, key string) (backend.StreamingCacheEntry, error) {
	record, ok := c.index.get(key)
	if !ok {
		return backend.StreamingCacheEntry{}, backend.ErrNotFound
	}

	body, err := c.content.openStream(record.ContentDigest, record.ContentSize, c.cfg.ChunkSize)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Metadata survived but its content vanished: treat as absent
			// and repair by dropping the stale record (spec.md §4.2,
			// "Read-path failures").
			if deleted, had := c.index.delete(key); had {
				c.releaseDigest(deleted.ContentDigest)
			}
			removeMetadataFile(c.cfg.RootPath, key)
			return backend.StreamingCacheEntry{}, backend.ErrNotFound
		}
		return backend.StreamingCacheEntry{}, err
	}

	return backend.StreamingCacheEntry{
		Head: backend.ResponseHead{
			Status:     record.Status,
			Proto:      record.Proto,
			ProtoMajor: record.ProtoMajor,
			ProtoMinor: record.ProtoMinor,
			Header:     http.Header(record.Header),
		},
		RequestHeader: http.Header(record.RequestHeader),
		Body:          body,
		Policy:        policy.BuildPolicy(record.PolicyRequest, record.PolicyResponse),
	}, nil
}

// PutStream buffers body, writes or reuses its content file and takes a
// reference on it, persists metadata (dropping that reference again if the
// write fails), and then updates the in-memory index - in that order, so a
// failure partway through never leaves an orphaned reference (spec.md
// §4.2, "Failure semantics").
func (c *Cache) PutStream(ctx context.Context, key string, head backend.ResponseHead, body io.Reader, pol policy.Blob, requestURL string, requestHeader http.Header, metadata []byte) (backend.CachedResponse, error) {
	d, data, created, err := c.content.write(body)
	if err != nil {
		return backend.CachedResponse{}, err
	}
	size := int64(len(data))
	if created {
		c.refs.acquireNew(d)
	} else {
		c.refs.incref(d)
	}

	record := metadataRecord{
		Version:        currentMetadataVersion,
		Status:         head.Status,
		Proto:          head.Proto,
		ProtoMajor:     head.ProtoMajor,
		ProtoMinor:     head.ProtoMinor,
		Header:         map[string][]string(head.Header),
		ContentDigest:  d,
		ContentSize:    size,
		PolicyRequest:  pol.RequestTime,
		PolicyResponse: pol.ResponseTime,
		Metadata:       metadata,
		URL:            requestURL,
		RequestHeader:  map[string][]string(requestHeader),
		CreatedAt:      pol.ResponseTime,
	}

	if err := writeMetadataFile(c.cfg.RootPath, key, record); err != nil {
		// Roll back the content write if we just created it; a reused
		// digest is left alone since other entries may still hold it.
		if created {
			c.refs.decref(d)
			c.content.remove(d)
		} else {
			c.releaseDigest(d)
		}
		return backend.CachedResponse{}, err
	}

	if previous, had := c.index.put(key, record); had {
		c.releaseDigest(previous.ContentDigest)
	}

	return backend.CachedResponse{
		Status:        head.Status,
		Proto:         head.Proto,
		ProtoMajor:    head.ProtoMajor,
		ProtoMinor:    head.ProtoMinor,
		Header:        head.Header,
		Body:          data,
		URL:           requestURL,
		RequestHeader: requestHeader,
		Metadata:      metadata,
	}, nil
}

// Delete removes key's metadata (idempotently) and releases its content
// reference.
func (c *Cache) Delete(ctx context.Context, key string) error {
	record, had := c.index.delete(key)
	if !had {
		return nil
	}
	if err := removeMetadataFile(c.cfg.RootPath, key); err != nil {
		return err
	}
	c.releaseDigest(record.ContentDigest)
	return nil
}

// EmptyBody returns a streaming body with zero frames.
func (c *Cache) EmptyBody() backend.StreamingBody {
	return io.NopCloser(bytes.NewReader(nil))
}
