// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package scheme

import (
	"bufio"
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"

	"nickandperla.net/pikt/internal/token"
)

// DefaultVersion is written to new scheme files.
const DefaultVersion = "1.0.0"

//go:embed colors.properties
var defaultProperties string

// defaults holds the built-in value of every key. A scheme file only needs
// to list the keys it overrides.
var defaults = mustReadProperties(defaultProperties)

func mustReadProperties(src string) map[string]string {
	props, err := readProperties(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("scheme: invalid defaults: %v", err))
	}
	return props
}

// Default returns the built-in scheme.
func Default() *Scheme {
	s, err := fromProperties(nil)
	if err != nil {
		panic(fmt.Sprintf("scheme: invalid defaults: %v", err))
	}
	return s
}

// Load reads a scheme file, filling missing keys from the defaults.
func Load(path string) (*Scheme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse reads scheme properties from r, filling missing keys from the defaults.
func Parse(r io.Reader) (*Scheme, error) {
	props, err := readProperties(r)
	if err != nil {
		return nil, err
	}
	return fromProperties(props)
}

func fromProperties(props map[string]string) (*Scheme, error) {
	get := func(key string) string {
		if v, ok := props[key]; ok {
			return v
		}
		return defaults[key]
	}

	var firstErr error
	parse := func(key string) color.NRGBA {
		c, err := ParseHex(get(key))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", key, err)
		}
		return c
	}

	s := &Scheme{
		Variable:   parse("variable"),
		Lambda:     Lambda{Open: parse("lambda.open"), Close: parse("lambda.close")},
		Boolean:    Boolean{True: parse("bool.true"), False: parse("bool.false")},
		Operators:  make(map[token.Operator]color.NRGBA, len(token.Operators)),
		Statements: make(map[string]color.NRGBA),
	}
	for _, op := range token.Operators {
		s.Operators[op] = parse("op." + op.Key())
	}

	// Statement keys from the file replace the default catalog entirely.
	stmtSource := defaults
	for key := range props {
		if strings.HasPrefix(key, "stmt.") {
			stmtSource = props
			break
		}
	}
	for key, v := range stmtSource {
		name, ok := strings.CutPrefix(key, "stmt.")
		if !ok || name == "" {
			continue
		}
		c, err := ParseHex(v)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", key, err)
			}
			continue
		}
		s.Statements[name] = c
	}
	if firstErr != nil {
		return nil, firstErr
	}

	version := get("scheme.version")
	if version == "" {
		version = DefaultVersion
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("scheme.version: %w", err)
	}
	s.Version = v

	if err := s.index(); err != nil {
		return nil, err
	}
	return s, nil
}

// readProperties parses the subset of the Java .properties format that
// scheme files use: key=value or key:value lines, '#' and '!' comments.
func readProperties(r io.Reader) (map[string]string, error) {
	props := make(map[string]string)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '!' {
			continue
		}
		i := strings.IndexAny(text, "=:")
		if i <= 0 {
			return nil, fmt.Errorf("line %d: expected key=value, got %q", line, text)
		}
		props[strings.TrimSpace(text[:i])] = strings.TrimSpace(text[i+1:])
	}
	return props, sc.Err()
}

// Write emits s as a complete scheme file.
func (s *Scheme) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	version := DefaultVersion
	if s.Version != nil {
		version = s.Version.String()
	}
	fmt.Fprintln(bw, "# pikt color scheme")
	fmt.Fprintf(bw, "scheme.version=%s\n", version)
	for _, e := range s.entries() {
		fmt.Fprintf(bw, "%s=%s\n", e.key, Hex(e.color))
	}
	return bw.Flush()
}

// Create writes the default scheme to path, refusing to overwrite.
func Create(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if err := Default().Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
