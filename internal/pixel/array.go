// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package pixel

import (
	"fmt"
	"image/color"

	"nickandperla.net/pikt/internal/scheme"
)

// Array is an immutable sequence of pixels.
type Array struct {
	pixels []Pixel
}

// NewArray copies pixels into a new Array.
func NewArray(pixels []Pixel) Array {
	return Array{pixels: append([]Pixel(nil), pixels...)}
}

// FromColors classifies each color and returns the resulting Array.
func FromColors(colors []color.NRGBA, s *scheme.Scheme, cat Catalog) Array {
	pixels := make([]Pixel, len(colors))
	for i, c := range colors {
		pixels[i] = New(c, s, cat)
	}
	return Array{pixels: pixels}
}

// Len returns the number of pixels.
func (a Array) Len() int { return len(a.pixels) }

// At returns the pixel at index i. It panics if i is out of range.
func (a Array) At(i int) Pixel { return a.pixels[i] }

// Sliced returns the pixels from start to end, both inclusive. The result
// shares storage with a, which is safe because neither can be mutated.
// It panics unless 0 <= start <= end+1 <= Len.
func (a Array) Sliced(start, end int) Array {
	if start < 0 || end >= len(a.pixels) || start > end+1 {
		panic(fmt.Sprintf("pixel: slice [%d, %d] out of range for length %d", start, end, len(a.pixels)))
	}
	return Array{pixels: a.pixels[start : end+1 : end+1]}
}

func (a Array) String() string {
	return fmt.Sprintf("Array(size=%d)", len(a.pixels))
}
