// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package token defines the token stream produced by package parser and
// consumed by package translate.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Verbatim is a span of host-language source reproduced unchanged.
	Verbatim Kind = iota
	// Text is a span of template body reproduced at runtime through the
	// configured sink.
	Text
	// PlaceholderArgument is one comma-separated expression inside a
	// placeholder, before the first backtick.
	PlaceholderArgument
	// PlaceholderFilter is one comma- or backtick-separated expression
	// inside a placeholder, after the first backtick.
	PlaceholderFilter
	// PlaceholderEnd closes exactly one opened placeholder.
	PlaceholderEnd
)

var kindNames = map[Kind]string{
	Verbatim:             "verbatim",
	Text:                 "text",
	PlaceholderArgument:  "placeholder_argument",
	PlaceholderFilter:    "placeholder_filter",
	PlaceholderEnd:       "placeholder_end",
}

// String returns the name of k as used in diagnostics.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	panic("token: invalid Kind")
}

// Token is a lexical unit produced by package parser. Text is a subslice
// of the input the parser tokenized; it is valid only as long as that
// input slice is kept alive by the caller.
type Token struct {
	Kind Kind
	Text []byte
	Line int // 1-based
}

// Empty reports whether the token carries no text. Verbatim and Text
// tokens are never empty; PlaceholderEnd tokens always are, and
// PlaceholderArgument and PlaceholderFilter tokens are empty where the
// template encodes an empty segment (e.g. "${,foo}" or "${`}").
func (t Token) Empty() bool {
	return len(t.Text) == 0
}

// String renders t for diagnostics and tests.
func (t Token) String() string {
	if t.Kind == PlaceholderEnd {
		return fmt.Sprintf("%s(%d)", t.Kind, t.Line)
	}
	return fmt.Sprintf("%s(%q, %d)", t.Kind, t.Text, t.Line)
}
