// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines pikt expression types.
package expr

import (
	"strings"

	"nickandperla.net/pikt/internal/token"
)

// Type is the category of an expression.
type Type int

const (
	None Type = iota
	STRING
	NUMBER
	BOOLEAN
	COMPOSITE
)

// String returns the string representation of a type.
func (t Type) String() string {
	switch t {
	case None:
		return "NONE"
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case BOOLEAN:
		return "BOOLEAN"
	case COMPOSITE:
		return "COMPOSITE"
	}
	return "UNKNOWN"
}

// Fragment is a piece of a string literal: either literal text or a
// reference to a variable, identified by the hex color of its pixel.
type Fragment struct {
	Text string `json:"text,omitempty"`
	Ref  string `json:"ref,omitempty"`
}

// Text creates a literal text fragment.
func Text(s string) Fragment { return Fragment{Text: s} }

// VariableRef creates a variable reference fragment.
func VariableRef(hex string) Fragment { return Fragment{Ref: hex} }

// IsRef returns true if the fragment is a variable reference.
func (f Fragment) IsRef() bool { return f.Ref != "" }

// Code returns the fragment as it appears inside a string literal.
func (f Fragment) Code() string {
	if f.IsRef() {
		return "${`" + f.Ref + "`}"
	}
	var sb strings.Builder
	for i := 0; i < len(f.Text); i++ {
		switch c := f.Text[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Expression is a parsed run of pixels. Code is the generated source text;
// Fragments is set for STRING expressions.
type Expression struct {
	Type      Type       `json:"type"`
	Code      string     `json:"code"`
	Fragments []Fragment `json:"fragments,omitempty"`
}

// NewString creates a STRING expression from its fragments, merging
// adjacent text.
func NewString(fragments []Fragment) Expression {
	var merged []Fragment
	for _, f := range fragments {
		if n := len(merged); n > 0 && !f.IsRef() && !merged[n-1].IsRef() {
			merged[n-1].Text += f.Text
			continue
		}
		merged = append(merged, f)
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, f := range merged {
		sb.WriteString(f.Code())
	}
	sb.WriteByte('"')
	return Expression{Type: STRING, Code: sb.String(), Fragments: merged}
}

func (e Expression) String() string { return e.Code }

// Member is one element of a split composite expression: a sub-expression
// or an operator.
type Member struct {
	Expression *Expression
	Operator   token.Operator
}

// ExpressionMember wraps a sub-expression.
func ExpressionMember(e Expression) Member { return Member{Expression: &e} }

// OperatorMember wraps an operator.
func OperatorMember(op token.Operator) Member { return Member{Operator: op} }

// IsOperator returns true if the member is an operator.
func (m Member) IsOperator() bool { return m.Expression == nil }

// Code returns the member's generated code.
func (m Member) Code() string {
	if m.IsOperator() {
		return m.Operator.Code()
	}
	return m.Expression.Code
}

// Join concatenates the members' code in order.
func Join(members []Member) string {
	var sb strings.Builder
	for _, m := range members {
		sb.WriteString(m.Code())
	}
	return sb.String()
}
