package streamcache

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/always-cache/cachekit/backend"
	"github.com/always-cache/cachekit/policy"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(Config{RootPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func testHead() backend.ResponseHead {
	return backend.ResponseHead{Status: 200, Proto: "HTTP/1.1", ProtoMajor: 1, ProtoMinor: 1}
}

func testPolicy() policy.Blob {
	now := time.Unix(1700000000, 0)
	return policy.BuildPolicy(now, now)
}

func TestPutStreamThenGetStreamRoundTrips(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_, err := c.PutStream(ctx, "GET http://example.com/a", testHead(), strings.NewReader("hello"), testPolicy(), "http://example.com/a", nil, nil)
	require.NoError(t, err)

	entry, err := c.GetStream(ctx, "GET http://example.com/a")
	require.NoError(t, err)
	body, err := io.ReadAll(entry.Body)
	require.NoError(t, err)
	require.Equal(t, "hello", string(body))
	require.Equal(t, 200, entry.Head.Status)
}

func TestGetStreamMissingKeyReturnsNotFound(t *testing.T) {
	c := newTestCache(t)
	_, err := c.GetStream(context.Background(), "GET http://example.com/nope")
	require.ErrorIs(t, err, backend.ErrNotFound)
}

func TestDedupSharesOneContentFileAndRefcounts(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_, err := c.PutStream(ctx, "GET /a", testHead(), strings.NewReader("same-bytes"), testPolicy(), "/a", nil, nil)
	require.NoError(t, err)
	_, err = c.PutStream(ctx, "GET /b", testHead(), strings.NewReader("same-bytes"), testPolicy(), "/b", nil, nil)
	require.NoError(t, err)

	recA, ok := c.index.get("GET /a")
	require.True(t, ok)
	recB, ok := c.index.get("GET /b")
	require.True(t, ok)
	require.Equal(t, recA.ContentDigest, recB.ContentDigest)
	require.Equal(t, int64(2), c.refs.value(recA.ContentDigest))
}

func TestDeleteReleasesReferenceAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_, err := c.PutStream(ctx, "GET /a", testHead(), strings.NewReader("body"), testPolicy(), "/a", nil, nil)
	require.NoError(t, err)
	rec, ok := c.index.get("GET /a")
	require.True(t, ok)
	require.Equal(t, int64(1), c.refs.value(rec.ContentDigest))

	require.NoError(t, c.Delete(ctx, "GET /a"))
	require.Equal(t, int64(0), c.refs.value(rec.ContentDigest))

	require.NoError(t, c.Delete(ctx, "GET /a"))

	_, err = c.GetStream(ctx, "GET /a")
	require.ErrorIs(t, err, backend.ErrNotFound)
}

func TestPutStreamOverwriteReleasesOldDigest(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_, err := c.PutStream(ctx, "GET /a", testHead(), strings.NewReader("v1"), testPolicy(), "/a", nil, nil)
	require.NoError(t, err)
	recV1, _ := c.index.get("GET /a")

	_, err = c.PutStream(ctx, "GET /a", testHead(), strings.NewReader("v2"), testPolicy(), "/a", nil, nil)
	require.NoError(t, err)

	require.Equal(t, int64(0), c.refs.value(recV1.ContentDigest))

	entry, err := c.GetStream(ctx, "GET /a")
	require.NoError(t, err)
	body, _ := io.ReadAll(entry.Body)
	require.Equal(t, "v2", string(body))
}

func TestPutStreamRejectsBodyOverMaxSize(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{RootPath: t.TempDir(), MaxBodySize: 4})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	_, err = c.PutStream(ctx, "GET /a", testHead(), strings.NewReader("way too big"), testPolicy(), "/a", nil, nil)
	require.ErrorIs(t, err, ErrBodyTooLarge)

	_, err = c.GetStream(ctx, "GET /a")
	require.ErrorIs(t, err, backend.ErrNotFound)
}

func TestEvictionReleasesContentFile(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{RootPath: t.TempDir(), MaxEntries: 1, CleanupQueueSize: 1})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	_, err = c.PutStream(ctx, "GET /a", testHead(), strings.NewReader("first"), testPolicy(), "/a", nil, nil)
	require.NoError(t, err)
	recA, _ := c.index.get("GET /a")

	_, err = c.PutStream(ctx, "GET /b", testHead(), strings.NewReader("second"), testPolicy(), "/b", nil, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return c.refs.value(recA.ContentDigest) == 0
	}, time.Second, time.Millisecond)

	_, err = c.GetStream(ctx, "GET /a")
	require.ErrorIs(t, err, backend.ErrNotFound)
}

func TestReopenRebuildsIndexAndRefcounts(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	c1, err := New(Config{RootPath: root})
	require.NoError(t, err)
	_, err = c1.PutStream(ctx, "GET /a", testHead(), strings.NewReader("persisted"), testPolicy(), "/a", nil, nil)
	require.NoError(t, err)
	require.NoError(t, c1.Close())

	c2, err := New(Config{RootPath: root})
	require.NoError(t, err)
	t.Cleanup(func() { c2.Close() })

	entry, err := c2.GetStream(ctx, "GET /a")
	require.NoError(t, err)
	body, _ := io.ReadAll(entry.Body)
	require.Equal(t, "persisted", string(body))

	rec, ok := c2.index.get("GET /a")
	require.True(t, ok)
	require.Equal(t, int64(1), c2.refs.value(rec.ContentDigest))
}

func TestEmptyBodyYieldsNoBytes(t *testing.T) {
	c := newTestCache(t)
	body := c.EmptyBody()
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Empty(t, data)
}
