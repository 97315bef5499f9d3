package streamcache

import (
	"sync"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
)

// refCounter is the lock-free `digest -> atomic_refcount` map from
// spec.md §4.2. It tracks how many metadata records point at each content
// digest; the content file for a digest may be deleted only once its count
// reaches zero via a compare-exchange that loses the race to any concurrent
// increment (avoiding the TOCTOU bug the spec calls out explicitly).
type refCounter struct {
	counts sync.Map // digest.Digest -> *int64
}

func newRefCounter() *refCounter {
	return &refCounter{}
}

func (r *refCounter) counter(d digest.Digest) *int64 {
	v, _ := r.counts.LoadOrStore(d, new(int64))
	return v.(*int64)
}

// acquireNew registers a brand-new digest with an initial refcount of 1, as
// part of writing new content for the first time.
func (r *refCounter) acquireNew(d digest.Digest) {
	c := r.counter(d)
	atomic.StoreInt64(c, 1)
}

// incref adds one reference to an existing digest (content already on
// disk), using release-ordered fetch-add (spec.md: "fetch_add with release
// ordering"). Go's sync/atomic has no explicit memory-order parameter; the
// operations it provides are sequentially consistent, which subsumes the
// acquire/release requirements the spec states in C-like terms.
func (r *refCounter) incref(d digest.Digest) {
	atomic.AddInt64(r.counter(d), 1)
}

// decref releases one reference to d. It returns true if this call dropped
// the count to zero - the caller that observes true has won the exclusive
// right to delete the content file; any other caller sees false and must
// not touch the file.
//
// This uses a compare-and-swap loop rather than a plain fetch-add-then-check
// so that a concurrent incref landing between the load and the decision
// cannot be silently overwritten: each attempt re-reads the current value,
// and only commits the decrement if nothing changed since.
func (r *refCounter) decref(d digest.Digest) bool {
	// The counter pointer is never removed from the map once created: a
	// concurrent incref landing between our CAS-to-zero and a map delete
	// could otherwise resurrect a digest whose content file we just decided
	// to remove. Leaving the (cheap, int64-sized) pointer registered keeps
	// every racing goroutine observing the same counter for this digest's
	// lifetime.
	c := r.counter(d)
	for {
		current := atomic.LoadInt64(c)
		if current <= 0 {
			return false
		}
		next := current - 1
		if atomic.CompareAndSwapInt64(c, current, next) {
			return next == 0
		}
	}
}

// value returns the current refcount for d, for tests and invariant checks.
func (r *refCounter) value(d digest.Digest) int64 {
	v, ok := r.counts.Load(d)
	if !ok {
		return 0
	}
	return atomic.LoadInt64(v.(*int64))
}
