package pikt

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"

	"nickandperla.net/pikt/internal/compile"
	"nickandperla.net/pikt/internal/imageio"
	"nickandperla.net/pikt/internal/scheme"
	"nickandperla.net/pikt/internal/statement"
	"nickandperla.net/pikt/internal/store"
)

// Compiler is the pikt front end: it turns program images into units.
type Compiler struct {
	scheme     *scheme.Scheme
	schemePath string
	statements map[string]string // Extra statement keywords: name -> hex
	catalog    *statement.Registry
	store      store.Store
	logger     *slog.Logger
	compiler   *compile.Compiler
	errs       []error
}

// Result is a compiled image.
type Result struct {
	*compile.Unit
	Image *imageio.Source
}

// Coords maps a diagnostic back to image coordinates.
func (r *Result) Coords(d Diagnostic) (x, y int) {
	return r.Image.Coords(d.Index)
}

// New creates a new Compiler with the given options. It fails if an option
// could not be applied (unreadable scheme file, unopenable database).
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{statements: make(map[string]string)}

	for _, opt := range opts {
		opt(c)
	}

	if c.scheme == nil && c.schemePath != "" {
		s, err := scheme.Load(c.schemePath)
		if err != nil {
			c.errs = append(c.errs, err)
		}
		c.scheme = s
	}
	if c.scheme == nil {
		c.scheme = scheme.Default()
	}

	c.catalog = statement.FromScheme(c.scheme)
	for name, hex := range c.statements {
		col, err := scheme.ParseHex(hex)
		if err != nil {
			c.errs = append(c.errs, err)
			continue
		}
		if scheme.IsReserved(col) {
			c.errs = append(c.errs, fmt.Errorf("statement %s: %w: %s", name, scheme.ErrReservedColor, hex))
			continue
		}
		if other, ok := c.catalog.Statement(col); ok {
			c.errs = append(c.errs, fmt.Errorf("statement %s: %w: %s already used by %s", name, scheme.ErrDuplicateColor, hex, other))
			continue
		}
		if role, ok := c.scheme.Role(col); ok {
			c.errs = append(c.errs, fmt.Errorf("statement %s: %w: %s already used by %s", name, scheme.ErrDuplicateColor, hex, role))
			continue
		}
		c.catalog.Register(name, col)
	}

	if err := errors.Join(c.errs...); err != nil {
		if c.store != nil {
			c.store.Close()
		}
		return nil, err
	}

	var compileOpts []compile.Option
	if c.store != nil {
		compileOpts = append(compileOpts, compile.WithStore(c.store))
	}
	if c.logger != nil {
		compileOpts = append(compileOpts, compile.WithLogger(c.logger))
	}
	c.compiler = compile.New(compileOpts...)
	return c, nil
}

// Scheme returns the active color scheme.
func (c *Compiler) Scheme() *Scheme {
	return c.scheme
}

// Statements returns the registered statement keyword names.
func (c *Compiler) Statements() []string {
	return c.catalog.Names()
}

// CompileImage compiles an already decoded image.
func (c *Compiler) CompileImage(ctx context.Context, name string, img image.Image) (*Result, error) {
	return c.compile(ctx, name, imageio.FromImage(img, c.scheme, c.catalog))
}

// CompileReader decodes and compiles an image.
func (c *Compiler) CompileReader(ctx context.Context, name string, r io.Reader) (*Result, error) {
	src, err := imageio.Decode(r, c.scheme, c.catalog)
	if err != nil {
		return nil, err
	}
	return c.compile(ctx, name, src)
}

// CompileFile loads and compiles the image at path.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Result, error) {
	src, err := imageio.Load(path, c.scheme, c.catalog)
	if err != nil {
		return nil, err
	}
	return c.compile(ctx, sourceName(path), src)
}

// sourceName turns a file path into the name its history is kept under,
// so that different spellings of one file share a history.
func sourceName(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (c *Compiler) compile(ctx context.Context, name string, src *imageio.Source) (*Result, error) {
	unit, err := c.compiler.Compile(ctx, name, src.Pixels)
	if err != nil {
		return nil, err
	}
	return &Result{Unit: unit, Image: src}, nil
}

// History returns up to limit recorded compilations of name, newest first.
// It returns nil if the store keeps no history.
func (c *Compiler) History(name string, limit int) ([]VersionEntry, error) {
	hs, ok := c.store.(store.HistoryStore)
	if !ok {
		return nil, nil
	}
	return hs.GetHistory(name, limit)
}

// FileHistory is History for an image compiled with CompileFile. Any
// spelling of the path finds the same history.
func (c *Compiler) FileHistory(path string, limit int) ([]VersionEntry, error) {
	return c.History(sourceName(path), limit)
}

// Close releases resources.
func (c *Compiler) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
