// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser turns runs of pixels into typed expressions.
//
// There is no token stream: the parser looks ahead over the run once to
// decide its category (string, number, boolean or composite), rewinds, and
// then consumes the run according to that category. Composite runs are cut
// at operator pixels and each operand is parsed by its own Parser over an
// independent slice.
package parser

import (
	"strings"

	"nickandperla.net/pikt/internal/diag"
	"nickandperla.net/pikt/internal/expr"
	"nickandperla.net/pikt/internal/pixel"
	"nickandperla.net/pikt/internal/scanner"
	"nickandperla.net/pikt/internal/token"
)

// Parser parses one expression from the pixels remaining in its reader.
type Parser struct {
	reader *scanner.Reader
	diags  diag.List
}

// New creates a Parser that owns r. The expression starts at the pixel
// returned by the next r.Next call.
func New(r *scanner.Reader) *Parser {
	return &Parser{reader: r}
}

// Parse evaluates the expression remaining in r.
func Parse(r *scanner.Reader) (expr.Expression, diag.List) {
	p := New(r)
	e := p.Eval()
	return e, p.diags
}

// Diagnostics returns the problems reported so far.
func (p *Parser) Diagnostics() diag.List {
	return p.diags
}

// analyze scans the run and returns its category, leaving the cursor where
// it was.
func (p *Parser) analyze() expr.Type {
	start := p.reader.Index()

	t := expr.None
	p.reader.WhileNotNull(func(px pixel.Pixel) {
		switch {
		// Composite is terminal.
		case t == expr.COMPOSITE:
		// One non-digit character makes the whole run a string; other
		// pixels inside it become variable references.
		case px.IsCharacter() && !px.IsNumber():
			t = expr.STRING
		case (t == expr.None || t == expr.NUMBER) && px.IsNumber():
			t = expr.NUMBER
		case t == expr.None && px.IsBoolean():
			t = expr.BOOLEAN
		case px.Operator() != token.NoOperator:
			t = expr.COMPOSITE
		}
	})

	p.reader.Reset(start)
	if t == expr.None {
		return expr.COMPOSITE
	}
	return t
}

// Eval analyzes and consumes the run.
func (p *Parser) Eval() expr.Expression {
	switch t := p.analyze(); t {
	case expr.STRING:
		return expr.NewString(p.nextString(false))
	case expr.NUMBER:
		var sb strings.Builder
		for _, f := range p.nextString(true) {
			sb.WriteString(f.Text)
		}
		return expr.Expression{Type: expr.NUMBER, Code: sb.String()}
	case expr.BOOLEAN:
		return expr.Expression{Type: expr.BOOLEAN, Code: p.nextBoolean()}
	default:
		return expr.Expression{Type: expr.COMPOSITE, Code: p.nextComplex()}
	}
}

// nextBoolean consumes one pixel and returns its literal. A run whose
// boolean pixel is preceded by a reference pixel lands here with a
// non-boolean first pixel; that falls back to false.
func (p *Parser) nextBoolean() string {
	px, ok := p.reader.Next()
	if !ok {
		return "false"
	}
	value, isBool := px.Bool()
	if !isBool {
		p.diags.Add(p.reader.Pos(), "expected boolean literal, got %s.", px)
		return "false"
	}
	if value {
		return "true"
	}
	return "false"
}

// nextString consumes the run as string content. With requireNumber set,
// only digit characters are kept.
func (p *Parser) nextString(requireNumber bool) []expr.Fragment {
	var fragments []expr.Fragment

	p.reader.WhileNotNull(func(px pixel.Pixel) {
		switch {
		case px.IsCharacter() && (!requireNumber || px.IsNumber()):
			fragments = append(fragments, expr.Text(string(rune(px.Char()))))
		case requireNumber:
			p.diags.Add(p.reader.Pos(), "member not expected while parsing number.")
		default:
			fragments = append(fragments, expr.VariableRef(px.Hex()))
		}
	})

	return fragments
}

// splitComplex cuts the run at operator pixels. Each operand becomes an
// expression member parsed over its own slice, followed by the operator
// that ended it.
func (p *Parser) splitComplex() []expr.Member {
	var members []expr.Member

	start := p.reader.Index() + 1
	count := 0

	for {
		px, ok := p.reader.Next()
		op := px.Operator()

		if ok && op == token.NoOperator {
			count++
			continue
		}

		if count > 0 {
			segment := p.reader.Sliced(start, p.reader.Index()-1)
			if !ok && len(members) == 0 {
				// No operator anywhere: the run is a plain reference.
				members = append(members, expr.ExpressionMember(reference(segment)))
			} else {
				sub := New(segment)
				members = append(members, expr.ExpressionMember(sub.Eval()))
				p.diags = append(p.diags, sub.diags...)
			}
		}
		if !ok {
			return members
		}

		members = append(members, expr.OperatorMember(op))
		start = p.reader.Index() + 1
		count = 0
	}
}

// nextComplex returns the composite run as flat left-to-right code.
func (p *Parser) nextComplex() string {
	return expr.Join(p.splitComplex())
}

// reference renders an operator-free composite run as a single identifier
// built from the colors of its pixels.
func reference(r *scanner.Reader) expr.Expression {
	var sb strings.Builder
	r.WhileNotNull(func(px pixel.Pixel) {
		sb.WriteString(px.Hex())
	})
	return expr.Expression{Type: expr.COMPOSITE, Code: "`" + sb.String() + "`"}
}
