// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scheme defines the color scheme that gives pixels their meaning:
// which colors declare variables, open and close blocks, denote boolean
// literals and operators, and start statements.
package scheme

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"nickandperla.net/pikt/internal/token"
)

// SupportedVersions is the range of scheme file versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

var (
	// ErrInvalidColor is returned for values that are not six-digit hex colors.
	ErrInvalidColor = errors.New("invalid color")
	// ErrReservedColor is returned when a role uses white or a grayscale color,
	// which are reserved for whitespace and characters.
	ErrReservedColor = errors.New("reserved color")
	// ErrDuplicateColor is returned when two roles share a color.
	ErrDuplicateColor = errors.New("duplicate color")
	// ErrUnsupportedVersion is returned when scheme.version is outside SupportedVersions.
	ErrUnsupportedVersion = errors.New("unsupported scheme version")
)

// Lambda holds the block delimiter colors.
type Lambda struct {
	Open  color.NRGBA
	Close color.NRGBA
}

// Boolean holds the boolean literal colors.
type Boolean struct {
	True  color.NRGBA
	False color.NRGBA
}

// Scheme maps language roles to colors. Build one with Default or Parse;
// the zero value matches nothing.
type Scheme struct {
	Version    *semver.Version
	Variable   color.NRGBA
	Lambda     Lambda
	Boolean    Boolean
	Operators  map[token.Operator]color.NRGBA
	Statements map[string]color.NRGBA

	operatorByColor map[color.NRGBA]token.Operator
}

// Operator returns the operator denoted by c, or token.NoOperator.
func (s *Scheme) Operator(c color.NRGBA) token.Operator {
	if s == nil {
		return token.NoOperator
	}
	return s.operatorByColor[opaque(c)]
}

// IsTrue reports whether c is the bool.true color.
func (s *Scheme) IsTrue(c color.NRGBA) bool {
	return s != nil && opaque(c) == s.Boolean.True
}

// IsFalse reports whether c is the bool.false color.
func (s *Scheme) IsFalse(c color.NRGBA) bool {
	return s != nil && opaque(c) == s.Boolean.False
}

// Role returns the key of the role that uses c, e.g. "op.plus".
func (s *Scheme) Role(c color.NRGBA) (string, bool) {
	if s == nil {
		return "", false
	}
	c = opaque(c)
	for _, e := range s.entries() {
		if e.color == c {
			return e.key, true
		}
	}
	return "", false
}

type entry struct {
	key   string
	color color.NRGBA
}

// entries lists every role in file order: fixed roles, operators, then
// statements sorted by name.
func (s *Scheme) entries() []entry {
	list := []entry{
		{"variable", s.Variable},
		{"lambda.open", s.Lambda.Open},
		{"lambda.close", s.Lambda.Close},
		{"bool.true", s.Boolean.True},
		{"bool.false", s.Boolean.False},
	}
	for _, op := range token.Operators {
		if c, ok := s.Operators[op]; ok {
			list = append(list, entry{"op." + op.Key(), c})
		}
	}
	names := make([]string, 0, len(s.Statements))
	for name := range s.Statements {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		list = append(list, entry{"stmt." + name, s.Statements[name]})
	}
	return list
}

// index validates the scheme and builds the reverse operator lookup.
func (s *Scheme) index() error {
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if s.Version != nil && !constraint.Check(s.Version) {
		return fmt.Errorf("%w: %s (want %s)", ErrUnsupportedVersion, s.Version, SupportedVersions)
	}

	seen := make(map[color.NRGBA]string)
	for _, e := range s.entries() {
		if IsReserved(e.color) {
			return fmt.Errorf("%s: %w: %s", e.key, ErrReservedColor, Hex(e.color))
		}
		if other, ok := seen[e.color]; ok {
			return fmt.Errorf("%s: %w: %s already used by %s", e.key, ErrDuplicateColor, Hex(e.color), other)
		}
		seen[e.color] = e.key
	}

	s.operatorByColor = make(map[color.NRGBA]token.Operator, len(s.Operators))
	for op, c := range s.Operators {
		s.operatorByColor[c] = op
	}
	return nil
}

// IsReserved reports whether c is grayscale (white included), which the
// language reserves for whitespace and character data.
func IsReserved(c color.NRGBA) bool {
	return c.R == c.G && c.G == c.B
}

// ParseHex parses "RRGGBB" or "#RRGGBB", case-insensitive, into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	b, err := hex.DecodeString(v)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}

// Hex formats c as uppercase RRGGBB, ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}
