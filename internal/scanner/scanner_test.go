package scanner

import (
	"image/color"
	"testing"

	"nickandperla.net/pikt/internal/pixel"
	"nickandperla.net/pikt/internal/scheme"
	"nickandperla.net/pikt/internal/statement"
)

var (
	testScheme  = scheme.Default()
	testCatalog = statement.FromScheme(testScheme)

	white   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	none    = color.NRGBA{}
	printKw = testScheme.Statements["print"]
	varKw   = testScheme.Variable
)

func gray(c byte) color.NRGBA {
	return color.NRGBA{R: c, G: c, B: c, A: 0xff}
}

func newReader(cs ...color.NRGBA) *Reader {
	return New(pixel.FromColors(cs, testScheme, testCatalog))
}

// drain returns the characters of every pixel Next yields.
func drain(r *Reader) string {
	var out []byte
	r.WhileNotNull(func(p pixel.Pixel) {
		out = append(out, p.Char())
	})
	return string(out)
}

func TestNextSkipsWhitespace(t *testing.T) {
	r := newReader(white, gray('a'), none, white, gray('b'), white)
	if got := drain(r); got != "ab" {
		t.Errorf("expected 'ab', got '%s'", got)
	}
}

func TestNextPastEndIsRepeatable(t *testing.T) {
	r := newReader(gray('a'))
	if _, ok := r.Next(); !ok {
		t.Fatal("expected first pixel")
	}
	for i := 0; i < 3; i++ {
		if _, ok := r.Next(); ok {
			t.Fatalf("call %d: expected end of stream", i)
		}
		if r.Index() != r.Len() {
			t.Errorf("call %d: expected index %d at end, got %d", i, r.Len(), r.Index())
		}
	}
}

func TestNextOnEmpty(t *testing.T) {
	r := newReader()
	if _, ok := r.Next(); ok {
		t.Error("expected no pixel from empty reader")
	}
}

func TestWhitespaceInsertionDoesNotChangeSequence(t *testing.T) {
	plain := drain(newReader(gray('x'), gray('y'), gray('z')))
	for _, ws := range []color.NRGBA{white, none, {R: 0x80, G: 0, B: 0, A: 0x7f}} {
		spaced := drain(newReader(ws, gray('x'), ws, ws, gray('y'), ws, gray('z'), ws))
		if spaced != plain {
			t.Errorf("whitespace %v changed sequence: '%s' vs '%s'", ws, spaced, plain)
		}
	}
}

func TestSliced(t *testing.T) {
	r := newReader(gray('a'), gray('b'), gray('c'), gray('d'))
	r.Next()

	s := r.Sliced(1, 2)
	if s.Index() != -1 {
		t.Errorf("expected fresh cursor, got index %d", s.Index())
	}
	if s.Offset() != 1 {
		t.Errorf("expected offset 1, got %d", s.Offset())
	}
	if got := drain(s); got != "bc" {
		t.Errorf("expected 'bc', got '%s'", got)
	}

	// The parent cursor is untouched.
	if p, ok := r.Next(); !ok || p.Char() != 'b' {
		t.Errorf("expected parent to continue at 'b'")
	}

	nested := r.Sliced(1, 3).Sliced(1, 2)
	nested.Next()
	if nested.Pos() != 2 {
		t.Errorf("expected nested source position 2, got %d", nested.Pos())
	}
}

func TestResetRewinds(t *testing.T) {
	r := newReader(gray('a'), gray('b'))
	start := r.Index()
	drain(r)
	r.Reset(start)
	if got := drain(r); got != "ab" {
		t.Errorf("expected 'ab' after reset, got '%s'", got)
	}
}

func TestSubdivide(t *testing.T) {
	tests := []struct {
		name   string
		pixels []color.NRGBA
		want   []string // Characters of each segment, keyword pixels excluded
	}{
		{
			name:   "no statements",
			pixels: []color.NRGBA{gray('a'), gray('b')},
			want:   []string{"ab"},
		},
		{
			name:   "one statement",
			pixels: []color.NRGBA{printKw, gray('a')},
			want:   []string{"a"},
		},
		{
			name:   "three statements",
			pixels: []color.NRGBA{printKw, gray('a'), varKw, gray('b'), gray('c'), printKw},
			want:   []string{"a", "bc", ""},
		},
		{
			name:   "leading whitespace",
			pixels: []color.NRGBA{white, none, printKw, gray('a'), white, printKw, gray('b')},
			want:   []string{"a", "b"},
		},
		{
			name:   "empty",
			pixels: nil,
			want:   nil,
		},
		{
			name:   "only whitespace",
			pixels: []color.NRGBA{white, white},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := newReader(tt.pixels...).Subdivide()
			if len(segments) != len(tt.want) {
				t.Fatalf("expected %d segments, got %d", len(tt.want), len(segments))
			}
			for i, seg := range segments {
				var chars []byte
				seg.WhileNotNull(func(p pixel.Pixel) {
					if p.IsCharacter() {
						chars = append(chars, p.Char())
					}
				})
				if string(chars) != tt.want[i] {
					t.Errorf("segment %d: expected '%s', got '%s'", i, tt.want[i], chars)
				}
			}
		})
	}
}

func TestSubdivideKeywordOpensSegment(t *testing.T) {
	segments := newReader(printKw, gray('a'), varKw, gray('b')).Subdivide()
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	for i, want := range []string{"print", statement.Variable} {
		p, ok := segments[i].Next()
		if !ok || !p.HasStatement() || p.Statement() != want {
			t.Errorf("segment %d: expected to start with %s keyword, got %+v", i, want, p)
		}
	}
	if segments[1].Offset() != 2 {
		t.Errorf("expected second segment at offset 2, got %d", segments[1].Offset())
	}
}

func TestSubdivideAfterEnd(t *testing.T) {
	r := newReader(gray('a'))
	drain(r)
	if segments := r.Subdivide(); len(segments) != 0 {
		t.Errorf("expected no segments after end, got %d", len(segments))
	}
}
