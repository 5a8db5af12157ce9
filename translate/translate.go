// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translate turns a token.Token stream into host-language source,
// resolving each placeholder into a single sink call and reproducing
// verbatim and text spans through the configured emission sink.
package translate

import (
	"fmt"
	"strings"

	"github.com/open2b/csp/token"
)

// identityFilter substitutes for an explicitly empty filter slot, e.g.
// "${x`}", which names a filter position without naming a filter. It is
// never used as an implicit fallback for a placeholder that names no
// filter at all; that case leaves the formatted value unwrapped.
const identityFilter = "[](auto const &x){return x;}"

// SinkKind selects how a resolved text or placeholder value reaches the
// host program at runtime.
type SinkKind int

const (
	// SinkCoYield emits "co_yield <expr>;", turning the host function
	// into a coroutine that yields one chunk per call.
	SinkCoYield SinkKind = iota
	// SinkCallback emits "<Name>(<expr>);", invoking a caller-supplied
	// function once per chunk.
	SinkCallback
	// SinkAppend emits "<Name> += <expr>;", accumulating chunks into an
	// existing variable.
	SinkAppend
)

// Sink describes the emission target for a Config.
type Sink struct {
	Kind SinkKind
	// Name is the callback or accumulator identifier. Ignored for
	// SinkCoYield.
	Name string
}

// Config controls how a Translator renders a token stream.
type Config struct {
	// EnableLine, when true, interleaves "#line" directives so that
	// compiler diagnostics against the generated source point back at
	// the template.
	EnableLine bool
	Sink       Sink
}

// TokenSource is the pull interface a Translator consumes. *parser.Lexer
// satisfies it.
type TokenSource interface {
	Next() (token.Token, bool, error)
}

// Translator renders one token stream into host-language source, one
// chunk at a time. The zero value is not usable; construct one with New.
type Translator struct {
	src  TokenSource
	path string
	cfg  Config

	curArgs    []string
	curFilters []string
	phLine     int

	defaultFilters []string

	lastLine    int
	lastLineSet bool

	preludeEmitted bool

	pending []string
	done    bool
	err     error
}

// New returns a Translator over src. path is used only in "#line"
// directives.
func New(src TokenSource, path string, cfg Config) *Translator {
	return &Translator{src: src, path: path, cfg: cfg}
}

// Next returns the next chunk of generated source. ok is false once the
// token stream is exhausted (err is then nil) or translation failed (err
// is then non-nil and every subsequent call returns the same error).
func (t *Translator) Next() (chunk string, ok bool, err error) {
	if t.err != nil {
		return "", false, t.err
	}
	for len(t.pending) == 0 {
		if t.done {
			return "", false, nil
		}
		if err := t.advance(); err != nil {
			t.err = err
			return "", false, err
		}
	}
	chunk = t.pending[0]
	t.pending = t.pending[1:]
	return chunk, true, nil
}

// All drains the translator into a single string, for tests and small
// inputs. It stops at the first error.
func (t *Translator) All() (string, error) {
	var b strings.Builder
	for {
		chunk, ok, err := t.Next()
		if err != nil {
			return b.String(), err
		}
		if !ok {
			return b.String(), nil
		}
		b.WriteString(chunk)
	}
}

// advance consumes exactly one token from src, appending zero or more
// chunks to t.pending, or setting t.done when the stream is exhausted.
func (t *Translator) advance() error {
	tok, ok, err := t.src.Next()
	if err != nil {
		return err
	}
	if !ok {
		t.done = true
		return nil
	}
	t.emitPrelude()

	switch tok.Kind {
	case token.Verbatim:
		t.emitLine(tok.Line)
		t.pending = append(t.pending, string(tok.Text))

	case token.Text:
		t.emitLine(tok.Line)
		lines := splitTextLines(tok.Text)
		literals := make([]string, len(lines))
		for i, l := range lines {
			literals[i] = `"` + Encode(l) + `"`
		}
		t.pending = append(t.pending, t.sinkWrapLines(literals))

	case token.PlaceholderArgument:
		if len(t.curArgs) == 0 && len(t.curFilters) == 0 {
			t.phLine = tok.Line
		}
		t.curArgs = append(t.curArgs, string(tok.Text))

	case token.PlaceholderFilter:
		if len(t.curArgs) == 0 && len(t.curFilters) == 0 {
			t.phLine = tok.Line
		}
		filter := string(tok.Text)
		if filter == "" {
			// An empty filter slot (a bare backtick) stands for the
			// identity filter, never for "no filter given at all".
			filter = identityFilter
		}
		t.curFilters = append(t.curFilters, filter)

	case token.PlaceholderEnd:
		line := t.phLine
		if line == 0 {
			line = tok.Line
		}
		expr, mutatesDefaults := t.resolvePlaceholder()
		t.curArgs = nil
		t.curFilters = nil
		t.phLine = 0
		if mutatesDefaults || expr == "" {
			return nil
		}
		t.emitLine(line)
		t.pending = append(t.pending, expr)

	default:
		return fmt.Errorf("translate: unexpected token kind %s", tok.Kind)
	}
	return nil
}

// emitPrelude appends the path-qualified "#line 1" directive that opens
// the generated source, once, ahead of any other output. It always names
// line 1 regardless of the line of the first real token.
func (t *Translator) emitPrelude() {
	if !t.cfg.EnableLine || t.preludeEmitted {
		return
	}
	t.preludeEmitted = true
	t.pending = append(t.pending, fmt.Sprintf("#line 1 %q\n", t.path))
}

// emitLine appends a bare "#line" directive to t.pending if line tracking
// is enabled and line differs from the line of the last directive
// emitted. The path is carried only by the prelude, not by these
// per-token directives.
func (t *Translator) emitLine(line int) {
	if !t.cfg.EnableLine {
		return
	}
	if t.lastLineSet && t.lastLine == line {
		return
	}
	t.pending = append(t.pending, fmt.Sprintf("#line %d\n", line))
	t.lastLine = line
	t.lastLineSet = true
}

// sinkOpenClose returns the statement prefix and suffix for the
// configured sink, with the expression itself left for the caller to
// place in between.
func (t *Translator) sinkOpenClose() (prefix, suffix string) {
	switch t.cfg.Sink.Kind {
	case SinkCoYield:
		return "co_yield ", ";\n"
	case SinkCallback:
		return fmt.Sprintf("%s(", t.cfg.Sink.Name), ");\n"
	case SinkAppend:
		return fmt.Sprintf("%s += ", t.cfg.Sink.Name), ";\n"
	default:
		panic("translate: invalid sink kind")
	}
}

// sinkWrap wraps expr in the statement form selected by t.cfg.Sink.
func (t *Translator) sinkWrap(expr string) string {
	prefix, suffix := t.sinkOpenClose()
	return prefix + expr + suffix
}

// sinkWrapLines wraps a sequence of adjacent string literals in the
// statement form selected by t.cfg.Sink, laying every literal after the
// first on its own indented continuation line, matching how the
// original translator emits a multi-line text token as juxtaposed
// literals rather than one literal with embedded newlines.
func (t *Translator) sinkWrapLines(literals []string) string {
	prefix, suffix := t.sinkOpenClose()
	if len(literals) == 1 {
		return prefix + literals[0] + suffix
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(literals[0])
	for _, lit := range literals[1 : len(literals)-1] {
		b.WriteByte('\n')
		b.WriteString("  ")
		b.WriteString(lit)
	}
	b.WriteByte('\n')
	b.WriteString("  ")
	b.WriteString(literals[len(literals)-1])
	b.WriteString(suffix)
	return b.String()
}

// splitTextLines splits text into runs that each keep their own
// trailing newline, so a multi-line text token becomes one string
// literal per line instead of one literal with embedded "\n" bytes.
// A final run with no trailing newline, if any, is kept as-is.
func splitTextLines(text []byte) [][]byte {
	if len(text) == 0 {
		return [][]byte{text}
	}
	var lines [][]byte
	start := 0
	for i, c := range text {
		if c == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// resolvePlaceholder turns the arguments and filters accumulated for one
// placeholder into a sink statement, or into a sticky default_filters
// update that produces no output (mutatesDefaults == true).
func (t *Translator) resolvePlaceholder() (expr string, mutatesDefaults bool) {
	args := t.curArgs
	filters := t.curFilters

	switch {
	case len(args) == 0 && len(filters) == 0:
		// ${} and its equivalents: nothing to render, nothing to bind.
		return "", false

	case len(args) == 0:
		// No arguments but some filters: rebind the sticky default
		// filter chain applied by later argument-only placeholders.
		t.defaultFilters = append([]string(nil), filters...)
		return "", true

	case len(args) == 1 && len(filters) == 0 && isQuotedStringLiteral(args[0]):
		// A single pre-formatted string literal bypasses format()
		// entirely and is handed to the sink as-is.
		return t.sinkWrap(strings.TrimSpace(args[0])), false
	}

	effective := filters
	if len(effective) == 0 {
		// No filters on this placeholder: fall back to the sticky
		// defaults. Until a filters-only placeholder sets them they are
		// nil, which leaves the value unwrapped rather than fabricating
		// an identity wrap.
		effective = t.defaultFilters
	}

	trimmed := make([]string, len(args))
	for i, a := range args {
		trimmed[i] = strings.TrimSpace(a)
	}
	if len(trimmed) == 1 {
		// A single argument gets an implicit "{}" format string, so
		// format() always receives at least the format string plus one
		// value to substitute into it.
		trimmed = append([]string{`"{}"`}, trimmed...)
	}
	expr = fmt.Sprintf("format(%s)", strings.Join(trimmed, ", "))
	for i := len(effective) - 1; i >= 0; i-- {
		expr = fmt.Sprintf("%s(%s)", strings.TrimSpace(effective[i]), expr)
	}
	return t.sinkWrap(expr), false
}

// isQuotedStringLiteral reports whether s's first and last byte are
// both '"'. It is not a guarantee the host compiler will accept s as a
// string literal, only the syntactic test the translator uses to pick
// the pass-through rule; unlike the general format() path it does not
// trim surrounding whitespace first, so a padded argument like
// ` "$" ` falls through to format() instead of taking the fast path.
func isQuotedStringLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}
