// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package pixel classifies source image pixels against a color scheme.
//
// A Pixel's category is derived from its color alone: white or translucent
// pixels are whitespace, grayscale pixels are characters whose red channel
// holds the ASCII code, and the remaining colors are looked up in the
// scheme (booleans, operators) and the statement catalog.
package pixel

import (
	"image/color"

	"nickandperla.net/pikt/internal/scheme"
	"nickandperla.net/pikt/internal/token"
)

// Catalog answers whether a color denotes a statement keyword.
type Catalog interface {
	// Statement returns the keyword name registered for c.
	Statement(c color.NRGBA) (string, bool)
}

// Pixel is a classified color. The zero value is whitespace.
type Pixel struct {
	color     color.NRGBA
	kind      token.Kind
	op        token.Operator
	truth     bool
	statement string
}

// New classifies c. The scheme and catalog may be nil, in which case no
// booleans, operators or statements are recognized.
func New(c color.NRGBA, s *scheme.Scheme, cat Catalog) Pixel {
	p := Pixel{color: c, kind: token.PLAIN}
	switch {
	case isWhitespace(c):
		p.kind = token.WHITESPACE
	case c.R == c.G && c.G == c.B:
		p.kind = token.CHARACTER
	case s.IsTrue(c):
		p.kind, p.truth = token.BOOLEAN, true
	case s.IsFalse(c):
		p.kind = token.BOOLEAN
	case s.Operator(c) != token.NoOperator:
		p.kind, p.op = token.OPERATOR, s.Operator(c)
	case cat != nil:
		if name, ok := cat.Statement(c); ok {
			p.kind, p.statement = token.STATEMENT, name
		}
	}
	return p
}

// isWhitespace reports whether c is pure white or not fully opaque.
func isWhitespace(c color.NRGBA) bool {
	return c.A != 0xff || (c.R == 0xff && c.G == 0xff && c.B == 0xff)
}

// Color returns the pixel's color.
func (p Pixel) Color() color.NRGBA { return p.color }

// Kind returns the pixel's lexical category.
func (p Pixel) Kind() token.Kind { return p.kind }

// IsWhitespace reports whether the pixel is skipped by readers.
func (p Pixel) IsWhitespace() bool { return p.kind == token.WHITESPACE }

// IsCharacter reports whether the pixel is grayscale character data.
func (p Pixel) IsCharacter() bool { return p.kind == token.CHARACTER }

// IsNumber reports whether the pixel is a character in '0'..'9'.
func (p Pixel) IsNumber() bool {
	return p.IsCharacter() && p.color.R >= '0' && p.color.R <= '9'
}

// Char returns the character encoded by a character pixel.
func (p Pixel) Char() byte { return p.color.R }

// IsBoolean reports whether the pixel matches bool.true or bool.false.
func (p Pixel) IsBoolean() bool { return p.kind == token.BOOLEAN }

// Bool returns the boolean literal of a boolean pixel and whether it is one.
func (p Pixel) Bool() (value, ok bool) {
	return p.truth, p.kind == token.BOOLEAN
}

// Operator returns the operator denoted by the pixel, or token.NoOperator.
func (p Pixel) Operator() token.Operator { return p.op }

// HasStatement reports whether the pixel starts a statement.
func (p Pixel) HasStatement() bool { return p.kind == token.STATEMENT }

// Statement returns the statement keyword name, or "".
func (p Pixel) Statement() string { return p.statement }

// Hex returns the color as uppercase RRGGBB.
func (p Pixel) Hex() string { return scheme.Hex(p.color) }

// String returns the pixel as an output identifier, e.g. `FF0000`.
func (p Pixel) String() string { return "`" + p.Hex() + "`" }

// Equal reports whether two pixels have the same color.
func (p Pixel) Equal(o Pixel) bool { return p.color == o.color }
