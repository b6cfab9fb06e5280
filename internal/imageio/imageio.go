// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package imageio decodes source images into pixel arrays.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"nickandperla.net/pikt/internal/pixel"
	"nickandperla.net/pikt/internal/scheme"
)

// ErrEmptyImage is returned for images with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Source is a decoded program image.
type Source struct {
	Format string
	Width  int
	Height int
	Pixels pixel.Array
}

// Coords maps a pixel index back to image coordinates.
func (s *Source) Coords(index int) (x, y int) {
	if s.Width == 0 {
		return 0, 0
	}
	return index % s.Width, index / s.Width
}

// Decode reads an image and classifies its pixels row by row.
func Decode(r io.Reader, s *scheme.Scheme, cat pixel.Catalog) (*Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	src := FromImage(img, s, cat)
	src.Format = format
	if src.Pixels.Len() == 0 {
		return nil, ErrEmptyImage
	}
	return src, nil
}

// Load decodes the image file at path.
func Load(path string, s *scheme.Scheme, cat pixel.Catalog) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := Decode(f, s, cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// FromImage classifies the pixels of img in row-major order.
func FromImage(img image.Image, s *scheme.Scheme, cat pixel.Catalog) *Source {
	b := img.Bounds()
	colors := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors = append(colors, color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
		}
	}
	return &Source{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: pixel.FromColors(colors, s, cat),
	}
}
