package ratelimit

import "testing"

func TestPerHostAllowsWithinBurst(t *testing.T) {
	l := NewPerHost(1, 2)
	if !l.Allow("origin-a") {
		t.Fatal("expected first request to be allowed")
	}
	if !l.Allow("origin-a") {
		t.Fatal("expected second request (within burst) to be allowed")
	}
}

func TestPerHostKeysAreIndependent(t *testing.T) {
	l := NewPerHost(0.001, 1)
	if !l.Allow("origin-a") {
		t.Fatal("expected origin-a's first request to be allowed")
	}
	if !l.Allow("origin-b") {
		t.Fatal("expected origin-b to have its own bucket, unaffected by origin-a")
	}
}

func TestGlobalSharesOneBucketAcrossKeys(t *testing.T) {
	l := NewGlobal(0.001, 1)
	if !l.Allow("origin-a") {
		t.Fatal("expected first global request to be allowed")
	}
	if l.Allow("origin-b") {
		t.Fatal("expected second global request (different key) to exhaust the shared bucket")
	}
}

func TestNoneNeverRestricts(t *testing.T) {
	var l None
	if !l.Allow("anything") {
		t.Fatal("None should always allow")
	}
}
