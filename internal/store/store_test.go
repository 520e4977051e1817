package store

import (
	"path/filepath"
	"reflect"
	"testing"
)

// storeUnderTest covers the full surface both implementations expose.
type storeUnderTest interface {
	Store
	HistoryStore
	GetMetadata(key string) (string, error)
	SetMetadata(key, value string) error
}

func openStores(t *testing.T) map[string]storeUnderTest {
	t.Helper()
	sq, err := NewSQLite(filepath.Join(t.TempDir(), "xen.db"))
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]storeUnderTest{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestPutGetDelete(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put("sq", `(\ {x} {* x x})`); err != nil {
				t.Fatalf("Put failed: %v", err)
			}

			got, ok, err := s.Get("sq")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !ok || got != `(\ {x} {* x x})` {
				t.Errorf("Get = %q, %v; want the stored source", got, ok)
			}

			if err := s.Delete("sq"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			_, ok, err = s.Get("sq")
			if err != nil {
				t.Fatalf("Get after delete failed: %v", err)
			}
			if ok {
				t.Error("expected no definition after delete")
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, ok, err := s.Get("nope")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if ok || got != "" {
				t.Errorf("Get = %q, %v; want empty, false", got, ok)
			}
		})
	}
}

func TestNamesSorted(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"zeta", "alpha", "mid"} {
				if err := s.Put(n, "1"); err != nil {
					t.Fatalf("Put(%s) failed: %v", n, err)
				}
			}
			names, err := s.Names()
			if err != nil {
				t.Fatalf("Names failed: %v", err)
			}
			want := []string{"alpha", "mid", "zeta"}
			if !reflect.DeepEqual(names, want) {
				t.Errorf("Names = %v, want %v", names, want)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, src := range []string{"1", "2", "3"} {
				if err := s.Put("x", src); err != nil {
					t.Fatalf("Put failed: %v", err)
				}
			}
			// Deleting the definition keeps its history.
			if err := s.Delete("x"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}

			entries, err := s.GetHistory("x", 0)
			if err != nil {
				t.Fatalf("GetHistory failed: %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(entries))
			}
			for i, ve := range entries {
				if ve.Version != i+1 {
					t.Errorf("entry %d: version = %d, want %d", i, ve.Version, i+1)
				}
				if ve.ID == "" || ve.Ts == "" {
					t.Errorf("entry %d: missing id or timestamp: %+v", i, ve)
				}
			}
			if entries[0].Source != "1" || entries[2].Source != "3" {
				t.Errorf("entries out of order: %+v", entries)
			}

			recent, err := s.GetHistory("x", 2)
			if err != nil {
				t.Fatalf("GetHistory with limit failed: %v", err)
			}
			if len(recent) != 2 || recent[0].Source != "2" || recent[1].Source != "3" {
				t.Errorf("limited history = %+v, want versions 2 and 3", recent)
			}

			none, err := s.GetHistory("unknown", 0)
			if err != nil {
				t.Fatalf("GetHistory for unknown name failed: %v", err)
			}
			if len(none) != 0 {
				t.Errorf("expected no history, got %+v", none)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.SetMetadata("session", "abc"); err != nil {
				t.Fatalf("SetMetadata failed: %v", err)
			}
			if err := s.SetMetadata("session", "def"); err != nil {
				t.Fatalf("SetMetadata overwrite failed: %v", err)
			}
			got, err := s.GetMetadata("session")
			if err != nil {
				t.Fatalf("GetMetadata failed: %v", err)
			}
			if got != "def" {
				t.Errorf("GetMetadata = %q, want %q", got, "def")
			}
			missing, err := s.GetMetadata("nope")
			if err != nil {
				t.Fatalf("GetMetadata for missing key failed: %v", err)
			}
			if missing != "" {
				t.Errorf("expected empty value, got %q", missing)
			}
		})
	}
}

func TestSQLitePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xen.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	if err := s.Put("greeting", `"hello"`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	s.Close()

	// Close and reopen to verify persistence
	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	got, ok, err := s2.Get("greeting")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !ok || got != `"hello"` {
		t.Errorf("Get after reopen = %q, %v", got, ok)
	}

	version, err := s2.GetMetadata("schema_version")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("schema_version = %q, want %q", version, SchemaVersion)
	}
}

func TestSQLiteRejectsUnknownSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xen.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	if err := s.SetMetadata("schema_version", "99"); err != nil {
		t.Fatalf("SetMetadata failed: %v", err)
	}
	s.Close()

	if s2, err := NewSQLite(path); err == nil {
		s2.Close()
		t.Fatal("expected error for unsupported schema version")
	}
}

func TestMemoryClosed(t *testing.T) {
	s := NewMemory()
	s.Close()
	if err := s.Put("x", "1"); err != ErrClosed {
		t.Errorf("Put after Close = %v, want ErrClosed", err)
	}
}
