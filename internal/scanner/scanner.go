// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a whitespace-skipping cursor over pixels.
package scanner

import (
	"nickandperla.net/pikt/internal/pixel"
)

// Reader walks a pixel.Array forward, one non-whitespace pixel at a time.
type Reader struct {
	pixels pixel.Array
	index  int // Current raw index, -1 before the first Next
	offset int // Index of pixels[0] in the source image
}

// New creates a Reader positioned before the first pixel of a.
func New(a pixel.Array) *Reader {
	return &Reader{pixels: a, index: -1}
}

// Index returns the raw index of the last pixel returned by Next.
func (r *Reader) Index() int {
	return r.index
}

// Reset moves the cursor back (or forward) to a raw index previously
// obtained from Index.
func (r *Reader) Reset(index int) {
	r.index = index
}

// Len returns the number of raw slots, whitespace included.
func (r *Reader) Len() int {
	return r.pixels.Len()
}

// Offset returns the source image index of this reader's first slot.
func (r *Reader) Offset() int {
	return r.offset
}

// Pos returns the source image index of the cursor.
func (r *Reader) Pos() int {
	return r.offset + r.index
}

// Next returns the next non-whitespace pixel. It reports false once the
// cursor runs past the end, and keeps doing so on every later call.
func (r *Reader) Next() (pixel.Pixel, bool) {
	for r.index < r.pixels.Len() {
		r.index++
		if r.index == r.pixels.Len() {
			break
		}
		if p := r.pixels.At(r.index); !p.IsWhitespace() {
			return p, true
		}
	}
	return pixel.Pixel{}, false
}

// WhileNotNull calls task for every remaining non-whitespace pixel.
func (r *Reader) WhileNotNull(task func(p pixel.Pixel)) {
	for {
		p, ok := r.Next()
		if !ok {
			return
		}
		task(p)
	}
}

// Sliced creates an independent Reader over the raw slots start..end
// (inclusive), positioned before start.
func (r *Reader) Sliced(start, end int) *Reader {
	return &Reader{
		pixels: r.pixels.Sliced(start, end),
		index:  -1,
		offset: r.offset + start,
	}
}

// Subdivide splits the remaining pixels into one Reader per statement.
// Every statement keyword pixel opens a new segment, so it is the first
// pixel of its segment. Segments holding only whitespace are dropped.
func (r *Reader) Subdivide() []*Reader {
	if r.index >= r.pixels.Len() {
		return nil
	}

	var readers []*Reader
	start := r.index + 1

	for {
		p, ok := r.Next()
		if start != r.index && (!ok || p.HasStatement()) {
			if seg := r.Sliced(start, r.index-1); !seg.blank() {
				readers = append(readers, seg)
			}
			start = r.index
		}
		if !ok {
			return readers
		}
	}
}

// blank reports whether the reader has no non-whitespace pixel left,
// without moving the cursor.
func (r *Reader) blank() bool {
	for i := r.index + 1; i < r.pixels.Len(); i++ {
		if !r.pixels.At(i).IsWhitespace() {
			return false
		}
	}
	return true
}
