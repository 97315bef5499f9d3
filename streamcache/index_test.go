package streamcache

import "testing"

func TestMetadataIndexEvictsLeastRecentlyUsedOnCountBound(t *testing.T) {
	var evicted []string
	idx := newMetadataIndex(2, 0, func(r metadataRecord) { evicted = append(evicted, r.URL) })

	idx.put("a", metadataRecord{URL: "a"})
	idx.put("b", metadataRecord{URL: "b"})
	idx.get("a") // touch a, making b the LRU entry
	idx.put("c", metadataRecord{URL: "c"})

	if idx.len() != 2 {
		t.Fatalf("expected 2 resident entries, got %d", idx.len())
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("expected b to be evicted, got %v", evicted)
	}
	if _, ok := idx.get("b"); ok {
		t.Fatal("b should have been evicted")
	}
}

func TestMetadataIndexEvictsOnSizeBound(t *testing.T) {
	var evicted []string
	idx := newMetadataIndex(0, 10, func(r metadataRecord) { evicted = append(evicted, r.URL) })

	idx.put("a", metadataRecord{URL: "a", ContentSize: 6})
	idx.put("b", metadataRecord{URL: "b", ContentSize: 6})

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("expected a to be evicted on size overflow, got %v", evicted)
	}
}

func TestMetadataIndexDeleteReturnsRemovedRecord(t *testing.T) {
	idx := newMetadataIndex(0, 0, nil)
	idx.put("a", metadataRecord{URL: "a"})

	rec, ok := idx.delete("a")
	if !ok || rec.URL != "a" {
		t.Fatalf("expected to find and remove a, got %v %v", rec, ok)
	}
	if _, ok := idx.delete("a"); ok {
		t.Fatal("second delete of the same key should report nothing removed")
	}
}
