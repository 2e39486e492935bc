package adaptive

import (
	"sync"
	"testing"
)

func TestMemoryStoreSaveRetrieveRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	fp := Fingerprint{Tag: "div", Attributes: map[string]string{"id": "p1"}}

	if err := s.Save("example.com", "K", fp); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, ok, err := s.Retrieve("example.com", "K")
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true for a saved key")
	}
	if got.Tag != "div" || got.Attributes["id"] != "p1" {
		t.Errorf("Retrieve = %+v, want the saved fingerprint", got)
	}
}

func TestMemoryStoreRetrieveMissingKey(t *testing.T) {
	s := NewMemoryStore()
	fp, ok, err := s.Retrieve("example.com", "missing")
	if err != nil {
		t.Fatalf("Retrieve returned error: %v, want nil on a missing key", err)
	}
	if ok {
		t.Error("expected ok=false for a missing key")
	}
	if fp.Tag != "" || fp.Attributes != nil {
		t.Errorf("Retrieve = %+v, want the zero value", fp)
	}
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Save("example.com", "K", Fingerprint{Tag: "div"})
	_ = s.Save("example.com", "K", Fingerprint{Tag: "article"})

	got, ok, _ := s.Retrieve("example.com", "K")
	if !ok || got.Tag != "article" {
		t.Errorf("Retrieve after overwrite = %+v, want Tag=article", got)
	}
}

func TestMemoryStoreDomainsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Save("a.com", "K", Fingerprint{Tag: "div"})

	_, ok, _ := s.Retrieve("b.com", "K")
	if ok {
		t.Error("same identifier under a different domain should not be visible")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.Save("example.com", "K", Fingerprint{Tag: "div"})
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _, _ = s.Retrieve("example.com", "K")
		}(i)
	}
	wg.Wait()

	got, ok, _ := s.Retrieve("example.com", "K")
	if !ok || got.Tag != "div" {
		t.Errorf("Retrieve after concurrent access = %+v, ok=%v", got, ok)
	}
}

var _ Store = (*MemoryStore)(nil)
