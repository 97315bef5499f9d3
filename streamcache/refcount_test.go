package streamcache

import (
	"testing"

	"github.com/opencontainers/go-digest"
)

func TestRefCounterAcquireNewStartsAtOne(t *testing.T) {
	r := newRefCounter()
	d := digest.FromBytes([]byte("a"))
	r.acquireNew(d)
	if r.value(d) != 1 {
		t.Fatalf("expected refcount 1, got %d", r.value(d))
	}
}

func TestRefCounterIncrefAndDecref(t *testing.T) {
	r := newRefCounter()
	d := digest.FromBytes([]byte("a"))
	r.acquireNew(d)
	r.incref(d)
	if r.value(d) != 2 {
		t.Fatalf("expected refcount 2, got %d", r.value(d))
	}
	if r.decref(d) {
		t.Fatal("decref from 2 to 1 should not report zero")
	}
	if !r.decref(d) {
		t.Fatal("decref from 1 to 0 should report zero")
	}
	if r.value(d) != 0 {
		t.Fatalf("expected refcount 0, got %d", r.value(d))
	}
}

func TestRefCounterDecrefAtZeroIsNoop(t *testing.T) {
	r := newRefCounter()
	d := digest.FromBytes([]byte("a"))
	r.acquireNew(d)
	r.decref(d)
	if r.decref(d) {
		t.Fatal("decref at zero should not report a fresh transition to zero")
	}
}

func TestRefCounterUnknownDigestHasZeroValue(t *testing.T) {
	r := newRefCounter()
	if r.value(digest.FromBytes([]byte("never-seen"))) != 0 {
		t.Fatal("unknown digest should report zero refcount")
	}
}
