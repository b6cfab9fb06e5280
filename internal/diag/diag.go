// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package diag collects non-fatal parse diagnostics.
package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is a problem found at a pixel index of the source image.
type Diagnostic struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("Error at index %d: %s", d.Index, d.Message)
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends a diagnostic at index.
func (l *List) Add(index int, format string, args ...any) {
	*l = append(*l, Diagnostic{Index: index, Message: fmt.Sprintf(format, args...)})
}

// Err returns the list as an error, or nil if it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	lines := make([]string, len(l))
	for i, d := range l {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}
