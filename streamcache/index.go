package streamcache

import (
	"container/list"
	"sync"
)

// indexEntry is the resident, in-memory view of a metadata record, plus the
// bookkeeping the eviction strategies need.
type indexEntry struct {
	key     string
	record  metadataRecord
	element *list.Element // this entry's node in the LRU access list
}

// metadataIndex is the thread-safe concurrent map described in spec.md §4.2
// and §5: key -> resident metadata, with LRU-ordered access tracking and
// size/count-bounded eviction. There is no external TinyLFU/Moka-equivalent
// library in the dependency pack (see DESIGN.md), so admission here is a
// plain "always admit, evict LRU/size on overflow" policy shaped after
// jmgilman-go/oci/internal/cache/eviction.go's EvictionStrategy family
// (LRUEviction + SizeEviction composed), rather than a frequency sketch.
type metadataIndex struct {
	mu sync.Mutex

	entries map[string]*indexEntry
	order   *list.List // front = most recently used

	totalSize    int64
	maxEntries   int
	maxCacheSize int64

	// onEvict is called (with the lock held) whenever eviction drops an
	// entry to stay within the size or count bound. It lets Cache release the
	// entry's content reference. delete does not call it; callers of delete
	// release the reference themselves.
	onEvict func(entry metadataRecord)
}

func newMetadataIndex(maxEntries int, maxCacheSize int64, onEvict func(metadataRecord)) *metadataIndex {
	return &metadataIndex{
		entries:      make(map[string]*indexEntry),
		order:        list.New(),
		maxEntries:   maxEntries,
		maxCacheSize: maxCacheSize,
		onEvict:      onEvict,
	}
}

// get returns the resident record for key and marks it most-recently-used.
func (m *metadataIndex) get(key string) (metadataRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return metadataRecord{}, false
	}
	m.order.MoveToFront(e.element)
	return e.record, true
}

// put inserts or overwrites key's record, evicting as needed to respect the
// configured bounds. It returns the previous record, if key already existed,
// so the caller can release its old content reference.
func (m *metadataIndex) put(key string, record metadataRecord) (previous metadataRecord, hadPrevious bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		previous = e.record
		hadPrevious = true
		m.totalSize -= previous.ContentSize
		e.record = record
		m.totalSize += record.ContentSize
		m.order.MoveToFront(e.element)
	} else {
		e := &indexEntry{key: key, record: record}
		e.element = m.order.PushFront(e)
		m.entries[key] = e
		m.totalSize += record.ContentSize
	}

	m.evictLocked()
	return previous, hadPrevious
}

// delete removes key's record, if present, returning it.
func (m *metadataIndex) delete(key string) (metadataRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return metadataRecord{}, false
	}
	m.removeLocked(e)
	return e.record, true
}

// removeLocked detaches e from both the map and the access list and
// accounts for its size. Caller holds m.mu.
func (m *metadataIndex) removeLocked(e *indexEntry) {
	m.order.Remove(e.element)
	delete(m.entries, e.key)
	m.totalSize -= e.record.ContentSize
}

// evictLocked drops least-recently-used entries until both bounds are
// satisfied. Expired-first ordering is left to the caller (policy layer);
// here the index only knows about size and count, mirroring SizeEviction's
// "expired then largest" shape generalized to plain LRU order since
// freshness is a policy.Blob concern the index does not inspect.
func (m *metadataIndex) evictLocked() {
	for m.overLocked() {
		back := m.order.Back()
		if back == nil {
			return
		}
		e := back.Value.(*indexEntry)
		m.removeLocked(e)
		if m.onEvict != nil {
			m.onEvict(e.record)
		}
	}
}

func (m *metadataIndex) overLocked() bool {
	if m.maxEntries > 0 && len(m.entries) > m.maxEntries {
		return true
	}
	if m.maxCacheSize > 0 && m.totalSize > m.maxCacheSize {
		return true
	}
	return false
}

// len reports the number of resident entries, for tests.
func (m *metadataIndex) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
