package streamcache

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"
)

// contentStore owns the content/ subdirectory: content-addressed,
// write-once, read-many body files. Writes are buffered (the digest isn't
// known until the last byte is seen, per spec.md §4.2) then committed with
// a temp-file-then-rename, grounded on
// jmgilman-go/oci/internal/cache/storage.go's WriteAtomically - reimplemented
// against the standard library rather than that package's core.FS
// abstraction, which is resolved via a local `replace` directive in its
// module and is not independently fetchable (see DESIGN.md).
type contentStore struct {
	root        string
	maxBodySize int64
}

func newContentStore(root string, maxBodySize int64) (*contentStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("streamcache: creating content dir: %w", err)
	}
	return &contentStore{root: root, maxBodySize: maxBodySize}, nil
}

func (s *contentStore) path(d digest.Digest) string {
	return filepath.Join(s.root, d.Encoded())
}

// write buffers body in full (bounded by maxBodySize), computes its digest,
// and - if the digest is not already present on disk - atomically writes
// it. It returns the digest and size regardless of whether the content was
// newly created, so the caller can decide whether to acquireNew or incref
// the refcounter.
func (s *contentStore) write(body io.Reader) (d digest.Digest, data []byte, created bool, err error) {
	limited := io.LimitReader(body, s.maxBodySize+1)
	var buf bytes.Buffer
	n, err := io.Copy(&buf, limited)
	if err != nil {
		return "", nil, false, fmt.Errorf("streamcache: reading body: %w", err)
	}
	if n > s.maxBodySize {
		return "", nil, false, ErrBodyTooLarge
	}
	data = buf.Bytes()

	d = digest.FromBytes(data)
	dest := s.path(d)
	if _, statErr := os.Stat(dest); statErr == nil {
		return d, data, false, nil
	}

	if err := s.writeAtomic(dest, data); err != nil {
		return "", nil, false, err
	}
	return d, data, true, nil
}

// writeAtomic writes data to a temp file in the same directory as dest and
// renames it into place, so concurrent readers of dest never observe a
// partial write.
func (s *contentStore) writeAtomic(dest string, data []byte) error {
	tmp := dest + ".tmp-" + uuid.NewString()
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("streamcache: creating temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("streamcache: writing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("streamcache: syncing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("streamcache: closing temp file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("streamcache: renaming temp file into place: %w", err)
	}
	return nil
}

// remove deletes the content file for d. Called only from the cleanup
// consumer, after refCounter.decref has confirmed exclusive ownership.
func (s *contentStore) remove(d digest.Digest) error {
	if err := os.Remove(s.path(d)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("streamcache: removing content file: %w", err)
	}
	return nil
}

// openStream opens content for reading, returning a stream that verifies
// the trailing digest as it is consumed (spec.md §4.2, "Integrity").
func (s *contentStore) openStream(d digest.Digest, size int64, chunkSize int) (io.ReadCloser, error) {
	f, err := os.Open(s.path(d))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("streamcache: opening content file: %w", err)
	}
	return &verifyingReader{
		file:      f,
		digester:  digest.Canonical.Digester(),
		want:      d,
		chunkSize: chunkSize,
	}, nil
}

// verifyingReader streams a content file in fixed-size chunks, hashing as
// it goes, and reports a BodyIntegrity error rather than silently returning
// truncated or corrupted bytes if the trailing digest doesn't match.
type verifyingReader struct {
	file      *os.File
	digester  digest.Digester
	want      digest.Digest
	chunkSize int
	done      bool
}

func (v *verifyingReader) Read(p []byte) (int, error) {
	if v.done {
		return 0, io.EOF
	}
	if len(p) > v.chunkSize {
		p = p[:v.chunkSize]
	}
	n, err := v.file.Read(p)
	if n > 0 {
		v.digester.Hash().Write(p[:n])
	}
	if err == io.EOF {
		v.done = true
		if v.digester.Digest() != v.want {
			return n, ErrBodyIntegrity
		}
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}
	return n, err
}

func (v *verifyingReader) Close() error {
	return v.file.Close()
}
