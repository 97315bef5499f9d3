package streamcache

import (
	"io"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"
)

func TestContentStoreDedupesIdenticalBytes(t *testing.T) {
	s, err := newContentStore(t.TempDir(), defaultMaxBodySize)
	require.NoError(t, err)

	d1, _, created1, err := s.write(strings.NewReader("same"))
	require.NoError(t, err)
	require.True(t, created1)

	d2, _, created2, err := s.write(strings.NewReader("same"))
	require.NoError(t, err)
	require.False(t, created2)
	require.Equal(t, d1, d2)
}

func TestContentStoreOpenStreamVerifiesIntegrity(t *testing.T) {
	s, err := newContentStore(t.TempDir(), defaultMaxBodySize)
	require.NoError(t, err)

	d, _, _, err := s.write(strings.NewReader("hello world"))
	require.NoError(t, err)

	r, err := s.openStream(d, 11, 4)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(data))
}

func TestContentStoreOpenStreamMissingDigest(t *testing.T) {
	s, err := newContentStore(t.TempDir(), defaultMaxBodySize)
	require.NoError(t, err)

	_, _, _, err = s.write(strings.NewReader("x"))
	require.NoError(t, err)

	_, err = s.openStream(digest.FromBytes(nil), 0, 4)
	require.ErrorIs(t, err, ErrNotFound)
}
