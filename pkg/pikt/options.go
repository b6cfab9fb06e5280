// Package pikt provides the public API for the pikt compiler front end.
package pikt

import (
	"log/slog"

	"nickandperla.net/pikt/internal/compile"
	"nickandperla.net/pikt/internal/diag"
	"nickandperla.net/pikt/internal/expr"
	"nickandperla.net/pikt/internal/scheme"
	"nickandperla.net/pikt/internal/store"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithScheme sets the color scheme. It takes precedence over WithSchemeFile.
func WithScheme(s *Scheme) Option {
	return func(c *Compiler) {
		c.scheme = s
	}
}

// WithSchemeFile loads the color scheme from a .properties file.
func WithSchemeFile(path string) Option {
	return func(c *Compiler) {
		c.schemePath = path
	}
}

// WithStatement registers an extra statement keyword color, e.g. "FF00FF".
func WithStatement(name, hex string) Option {
	return func(c *Compiler) {
		c.statements[name] = hex
	}
}

// WithSQLiteStore configures a SQLite compilation cache at the given path.
func WithSQLiteStore(path string) Option {
	return func(c *Compiler) {
		s, err := store.NewSQLite(path)
		if err != nil {
			c.errs = append(c.errs, err)
			return
		}
		c.store = s
	}
}

// WithMemoryStore configures an in-memory cache (for testing).
func WithMemoryStore() Option {
	return func(c *Compiler) {
		c.store = store.NewMemory()
	}
}

// WithStore configures a custom cache.
func WithStore(s Store) Option {
	return func(c *Compiler) {
		c.store = s
	}
}

// WithLogger routes this compiler's logs to l. Without it the compiler logs
// through the process-wide logger set by SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// SetLogger sets the process-wide logger used by compilers created without
// WithLogger. By default nothing is logged.
func SetLogger(l *slog.Logger) {
	compile.SetLogger(l)
}

// Scheme is the color scheme type.
type Scheme = scheme.Scheme

// Store interface for custom caches.
type Store = store.Store

// VersionEntry is one recorded compilation of a source.
type VersionEntry = store.VersionEntry

// Diagnostic is a non-fatal parse problem.
type Diagnostic = diag.Diagnostic

// Statement is one compiled statement.
type Statement = compile.Statement

// Expression is a parsed expression.
type Expression = expr.Expression

// Expression type constants.
const (
	STRING    = expr.STRING
	NUMBER    = expr.NUMBER
	BOOLEAN   = expr.BOOLEAN
	COMPOSITE = expr.COMPOSITE
)

// DefaultScheme returns the built-in color scheme.
func DefaultScheme() *Scheme {
	return scheme.Default()
}

// LoadScheme reads a color scheme file.
func LoadScheme(path string) (*Scheme, error) {
	return scheme.Load(path)
}

// CreateScheme writes the default color scheme to path.
func CreateScheme(path string) error {
	return scheme.Create(path)
}
