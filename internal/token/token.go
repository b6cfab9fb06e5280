// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines pikt pixel kinds and operator constants.
package token

// Kind is the lexical category a pixel's color maps to.
type Kind int

const (
	WHITESPACE Kind = iota
	CHARACTER       // Grayscale, red channel holds the ASCII code
	BOOLEAN         // bool.true or bool.false color
	OPERATOR        // One of the op.* colors
	STATEMENT       // Registered statement keyword color
	PLAIN           // Anything else (variable references, members)
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case WHITESPACE:
		return "WHITESPACE"
	case CHARACTER:
		return "CHARACTER"
	case BOOLEAN:
		return "BOOLEAN"
	case OPERATOR:
		return "OPERATOR"
	case STATEMENT:
		return "STATEMENT"
	case PLAIN:
		return "PLAIN"
	}
	return "UNKNOWN"
}

// Operator is a binary operator denoted by a scheme color.
type Operator int

const (
	NoOperator Operator = iota
	PLUS
	MINUS
	TIMES
	DIVIDE
	MODULO
	AND
	OR
	EQUALITY
	INEQUALITY
	GREATER
	GREATER_OR_EQUALS
	LESS
	LESS_OR_EQUALS
)

// Operators lists every operator in scheme order.
var Operators = []Operator{
	PLUS, MINUS, TIMES, DIVIDE, MODULO,
	AND, OR,
	EQUALITY, INEQUALITY,
	GREATER, GREATER_OR_EQUALS, LESS, LESS_OR_EQUALS,
}

// Code returns the operator as output source text.
func (o Operator) Code() string {
	switch o {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case TIMES:
		return "*"
	case DIVIDE:
		return "/"
	case MODULO:
		return "%"
	case AND:
		return "&&"
	case OR:
		return "||"
	case EQUALITY:
		return "=="
	case INEQUALITY:
		return "!="
	case GREATER:
		return ">"
	case GREATER_OR_EQUALS:
		return ">="
	case LESS:
		return "<"
	case LESS_OR_EQUALS:
		return "<="
	}
	return ""
}

// Key returns the color scheme key of the operator (without the "op." prefix).
func (o Operator) Key() string {
	switch o {
	case PLUS:
		return "plus"
	case MINUS:
		return "minus"
	case TIMES:
		return "times"
	case DIVIDE:
		return "divide"
	case MODULO:
		return "modulo"
	case AND:
		return "and"
	case OR:
		return "or"
	case EQUALITY:
		return "equality"
	case INEQUALITY:
		return "inequality"
	case GREATER:
		return "greater"
	case GREATER_OR_EQUALS:
		return "greater_or_equals"
	case LESS:
		return "less"
	case LESS_OR_EQUALS:
		return "less_or_equals"
	}
	return ""
}

// String returns the string representation of an operator.
func (o Operator) String() string {
	if o == NoOperator {
		return "NONE"
	}
	return o.Key()
}
