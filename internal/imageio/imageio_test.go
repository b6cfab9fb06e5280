package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nickandperla.net/pikt/internal/scheme"
	"nickandperla.net/pikt/internal/statement"
	"nickandperla.net/pikt/internal/token"
)

func testImage(s *scheme.Scheme) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, s.Statements["print"])
	img.SetNRGBA(1, 0, color.NRGBA{R: '4', G: '4', B: '4', A: 0xff})
	img.SetNRGBA(2, 0, s.Operators[token.PLUS])
	img.SetNRGBA(0, 1, color.NRGBA{R: '1', G: '1', B: '1', A: 0xff})
	img.SetNRGBA(1, 1, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	img.SetNRGBA(2, 1, color.NRGBA{})
	return img
}

func TestDecodePNG(t *testing.T) {
	s := scheme.Default()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(s)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	src, err := Decode(&buf, s, statement.FromScheme(s))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if src.Format != "png" || src.Width != 3 || src.Height != 2 {
		t.Errorf("unexpected source %s %dx%d", src.Format, src.Width, src.Height)
	}
	if src.Pixels.Len() != 6 {
		t.Fatalf("expected 6 pixels, got %d", src.Pixels.Len())
	}

	wantKinds := []token.Kind{
		token.STATEMENT, token.CHARACTER, token.OPERATOR,
		token.CHARACTER, token.WHITESPACE, token.WHITESPACE,
	}
	for i, want := range wantKinds {
		if got := src.Pixels.At(i).Kind(); got != want {
			t.Errorf("pixel %d: expected %s, got %s", i, want, got)
		}
	}

	if x, y := src.Coords(4); x != 1 || y != 1 {
		t.Errorf("expected (1, 1), got (%d, %d)", x, y)
	}
}

func TestLoad(t *testing.T) {
	s := scheme.Default()
	path := filepath.Join(t.TempDir(), "prog.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, testImage(s)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	src, err := Load(path, s, statement.FromScheme(s))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.Pixels.Len() != 6 {
		t.Errorf("expected 6 pixels, got %d", src.Pixels.Len())
	}
}

func TestDecodeGarbage(t *testing.T) {
	s := scheme.Default()
	if _, err := Decode(strings.NewReader("not an image"), s, statement.FromScheme(s)); err == nil {
		t.Error("expected decode error")
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	img.SetNRGBA(6, 5, color.NRGBA{R: 'z', G: 'z', B: 'z', A: 0xff})
	src := FromImage(img, nil, nil)
	if src.Width != 2 || src.Height != 1 {
		t.Fatalf("unexpected size %dx%d", src.Width, src.Height)
	}
	if p := src.Pixels.At(1); !p.IsCharacter() || p.Char() != 'z' {
		t.Errorf("expected 'z' at index 1, got %s", p.Kind())
	}
}
