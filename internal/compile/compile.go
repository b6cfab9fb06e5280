// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package compile runs the pixel pipeline over a whole program: it splits
// the image into statements, parses each statement's expression, and caches
// the result.
package compile

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"nickandperla.net/pikt/internal/diag"
	"nickandperla.net/pikt/internal/expr"
	"nickandperla.net/pikt/internal/parser"
	"nickandperla.net/pikt/internal/pixel"
	"nickandperla.net/pikt/internal/scanner"
	"nickandperla.net/pikt/internal/store"
)

// Statement is one statement of a program. Name is the keyword of its
// first pixel, or empty for a segment that does not start with one.
type Statement struct {
	Name       string          `json:"name,omitempty"`
	Index      int             `json:"index"`
	Expression expr.Expression `json:"expression"`
}

// Code returns the statement as one line of output.
func (s Statement) Code() string {
	switch {
	case s.Name == "":
		return s.Expression.Code
	case s.Expression.Code == "":
		return s.Name
	default:
		return s.Name + " " + s.Expression.Code
	}
}

// Unit is a compiled program.
type Unit struct {
	Key         string      `json:"key"`
	Statements  []Statement `json:"statements"`
	Diagnostics diag.List   `json:"diagnostics,omitempty"`
	Cached      bool        `json:"-"`
}

// Source renders the unit, one statement per line.
func (u *Unit) Source() string {
	var sb strings.Builder
	for _, s := range u.Statements {
		sb.WriteString(s.Code())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Compiler compiles pixel arrays into units.
type Compiler struct {
	store  store.Store
	logger *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithStore caches units in s. If s also implements store.HistoryStore,
// every named compilation is recorded in its history.
func WithStore(s store.Store) Option {
	return func(c *Compiler) { c.store = s }
}

// WithLogger logs to l instead of the process-wide Logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) { c.logger = l }
}

// New creates a new Compiler with the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles arr. name identifies the source for history and logs
// and may be empty. Parse problems are reported in Unit.Diagnostics; the
// error is reserved for cancellation.
func (c *Compiler) Compile(ctx context.Context, name string, arr pixel.Array) (*Unit, error) {
	log := c.log().With("source", name)
	key := Key(arr)

	if unit := c.lookup(key); unit != nil {
		log.Debug("cache hit", "key", key)
		c.record(name, key)
		return unit, nil
	}

	unit := &Unit{Key: key}
	for _, seg := range scanner.New(arr).Subdivide() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stmt, diags := compileStatement(seg)
		log.Debug("statement", "index", stmt.Index, "name", stmt.Name,
			"type", stmt.Expression.Type, "code", stmt.Expression.Code)
		unit.Statements = append(unit.Statements, stmt)
		unit.Diagnostics = append(unit.Diagnostics, diags...)
	}

	log.Info("compiled", "statements", len(unit.Statements), "diagnostics", len(unit.Diagnostics))
	c.save(unit)
	c.record(name, key)
	return unit, nil
}

func (c *Compiler) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// compileStatement parses one segment produced by Subdivide.
func compileStatement(seg *scanner.Reader) (Statement, diag.List) {
	start := seg.Index()
	first, ok := seg.Next()
	stmt := Statement{Index: seg.Pos()}
	if ok && first.HasStatement() {
		stmt.Name = first.Statement()
	} else {
		seg.Reset(start)
	}

	e, diags := parser.Parse(seg)
	stmt.Expression = e
	return stmt, diags
}

func (c *Compiler) lookup(key string) *Unit {
	if c.store == nil {
		return nil
	}
	entry, err := c.store.Get(key)
	if err != nil {
		c.log().Warn("cache read failed", "key", key, "err", err)
		return nil
	}
	if entry == nil {
		return nil
	}
	var unit Unit
	if err := json.Unmarshal([]byte(entry.Value), &unit); err != nil {
		c.log().Warn("cache entry corrupt", "key", key, "err", err)
		return nil
	}
	unit.Cached = true
	return &unit
}

func (c *Compiler) save(unit *Unit) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(unit)
	if err != nil {
		c.log().Warn("cache encode failed", "key", unit.Key, "err", err)
		return
	}
	if err := c.store.Put(unit.Key, string(data)); err != nil {
		c.log().Warn("cache write failed", "key", unit.Key, "err", err)
	}
}

func (c *Compiler) record(name, key string) {
	hs, ok := c.store.(store.HistoryStore)
	if !ok || name == "" {
		return
	}
	if err := hs.Record(name, key); err != nil {
		c.log().Warn("history write failed", "source", name, "err", err)
	}
}

// Key returns a digest of arr's classified pixels. Arrays with equal keys
// compile to the same unit.
func Key(arr pixel.Array) string {
	h := sha256.New()
	var buf [7]byte
	for i := 0; i < arr.Len(); i++ {
		p := arr.At(i)
		c := p.Color()
		truth, _ := p.Bool()
		buf[0], buf[1], buf[2], buf[3] = c.R, c.G, c.B, c.A
		buf[4] = byte(p.Kind())
		buf[5] = byte(p.Operator())
		buf[6] = 0
		if truth {
			buf[6] = 1
		}
		h.Write(buf[:])
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(p.Statement())))
		h.Write(n[:])
		h.Write([]byte(p.Statement()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
