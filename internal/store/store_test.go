package store

import (
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	// Test Put and Get
	err := s.Put("test", "hello")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get("test")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Value != "hello" {
		t.Fatalf("expected 'hello', got %+v", got)
	}
	if got.Ts == "" {
		t.Errorf("expected timestamp to be set")
	}

	// Test Delete
	err = s.Delete("test")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err = s.Get("test")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got '%s'", got.Value)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pikt-test.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}

	// Test Put and Get
	if err := s.Put("test", "world"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put("test", "world2"); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}

	got, err := s.Get("test")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Value != "world2" {
		t.Fatalf("expected 'world2', got %+v", got)
	}

	// Close and reopen to verify persistence
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	got, err = s2.Get("test")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got == nil || got.Value != "world2" {
		t.Errorf("expected 'world2' after reopen, got %+v", got)
	}

	version, err := s2.GetMetadata("schema_version")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("expected schema version %s, got %s", SchemaVersion, version)
	}

	if err := s2.Delete("test"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = s2.Get("test")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got '%s'", got.Value)
	}
}

func TestSQLiteRejectsUnknownSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	if err := s.setMetadataUnlocked("schema_version", "99"); err != nil {
		t.Fatalf("setMetadata failed: %v", err)
	}
	s.Close()

	if _, err := NewSQLite(path); err == nil {
		t.Fatal("expected error for unsupported schema version")
	}
}

func testHistory(t *testing.T, s HistoryStore) {
	t.Helper()

	for _, key := range []string{"a", "b", "b", "c"} {
		if err := s.Record("prog.png", key); err != nil {
			t.Fatalf("Record(%s) failed: %v", key, err)
		}
	}

	// Recording the same key twice in a row is a no-op (dedup)
	entries, err := s.GetHistory("prog.png", 0)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Version != 3 || entries[0].Key != "c" {
		t.Errorf("entry[0]: expected v3 'c', got v%d '%s'", entries[0].Version, entries[0].Key)
	}
	if entries[2].Version != 1 || entries[2].Key != "a" {
		t.Errorf("entry[2]: expected v1 'a', got v%d '%s'", entries[2].Version, entries[2].Key)
	}

	limited, err := s.GetHistory("prog.png", 1)
	if err != nil {
		t.Fatalf("GetHistory with limit failed: %v", err)
	}
	if len(limited) != 1 || limited[0].Key != "c" {
		t.Errorf("expected only newest entry, got %+v", limited)
	}

	none, err := s.GetHistory("missing.png", 0)
	if err != nil {
		t.Fatalf("GetHistory for missing name failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no history, got %+v", none)
	}
}

func TestMemoryHistory(t *testing.T) {
	testHistory(t, NewMemory())
}

func TestSQLiteHistory(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	defer s.Close()
	testHistory(t, s)
}
