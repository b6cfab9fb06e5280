// Package store provides persistence for compiled pikt programs.
package store

// Entry is a cached compilation result.
type Entry struct {
	Key   string
	Value string // JSON-encoded compile.Unit
	Ts    string
}

// Store is the interface for compilation cache persistence.
type Store interface {
	// Get retrieves an entry by key. Returns nil if not found.
	Get(key string) (*Entry, error)
	// Put stores a value by key, overwriting if it exists.
	Put(key, value string) error
	// Delete removes an entry by key.
	Delete(key string) error
	// Close releases resources.
	Close() error
}

// VersionEntry is one recorded compilation of a named source.
type VersionEntry struct {
	Version int
	Key     string
	Ts      string
}

// HistoryStore extends Store with per-source compilation history.
type HistoryStore interface {
	// Record appends key to the history of name, unless it is already the
	// latest version.
	Record(name, key string) error
	// GetHistory returns up to limit versions of name, newest first.
	// A limit of 0 returns all of them.
	GetHistory(name string, limit int) ([]VersionEntry, error)
}
