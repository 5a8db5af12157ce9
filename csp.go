// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

import (
	"path/filepath"
	"strings"

	"github.com/open2b/csp/parser"
	"github.com/open2b/csp/translate"
)

// SinkKind selects how a resolved chunk reaches the host program.
type SinkKind = translate.SinkKind

const (
	SinkCoYield  = translate.SinkCoYield
	SinkCallback = translate.SinkCallback
	SinkAppend   = translate.SinkAppend
)

// Sink and Config are re-exported from package translate so that callers
// depend only on the root package for the common case.
type Sink = translate.Sink
type Config = translate.Config

// SyntaxError is returned by Compiler.Next and Translate when input cannot be
// tokenized. It is re-exported from package parser.
type SyntaxError = parser.SyntaxError

// Compiler streams the translation of one template, one chunk of
// generated source at a time. The zero value is not usable; construct
// one with Compile.
type Compiler struct {
	lex *parser.Lexer
	tr  *translate.Translator
}

// Compile returns a Compiler over input. path is opaque except that it
// is copied into diagnostics and into the emitted "#line 1" directive,
// where it is normalized to forward-slash separators.
func Compile(input []byte, path string, cfg Config) *Compiler {
	path = filepath.ToSlash(path)
	lex := parser.New(input, path)
	return &Compiler{lex: lex, tr: translate.New(lex, path, cfg)}
}

// Next returns the next chunk of generated source. ok is false once
// input is exhausted (err is then nil) or translation failed (err is
// then a non-nil error, a *SyntaxError if the failure was lexical).
func (c *Compiler) Next() (chunk string, ok bool, err error) {
	return c.tr.Next()
}

// Translate compiles input in full and returns the generated source as a
// single string. It is a convenience wrapper around Compile for callers
// that do not need to stream the output.
func Translate(input []byte, path string, cfg Config) (string, error) {
	c := Compile(input, path, cfg)
	var b strings.Builder
	for {
		chunk, ok, err := c.Next()
		if err != nil {
			return "", err
		}
		if !ok {
			return b.String(), nil
		}
		b.WriteString(chunk)
	}
}
