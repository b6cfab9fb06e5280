package main

import (
	"fmt"
	"io"
	"sync"

	"nickandperla.net/pikt/pkg/pikt"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// printer writes compiled units to out and their diagnostics to err.
type printer struct {
	mu    sync.Mutex
	out   io.Writer
	err   io.Writer
	color bool // Colorize diagnostics
	multi bool // Print a header before each image
}

// print writes res and reports whether it had diagnostics.
func (p *printer) print(path string, res *pikt.Result) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.multi {
		fmt.Fprintf(p.out, "== %s\n", path)
	}
	fmt.Fprint(p.out, res.Source())

	for _, d := range res.Diagnostics {
		x, y := res.Coords(d)
		line := fmt.Sprintf("%s: %s (x=%d, y=%d)", path, d.Error(), x, y)
		if p.color {
			line = ansiRed + line + ansiReset
		}
		fmt.Fprintln(p.err, line)
	}
	return len(res.Diagnostics) > 0
}
