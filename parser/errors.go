// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import "fmt"

// ErrorKind identifies the reason a *SyntaxError was raised.
type ErrorKind int

const (
	// ErrUnbalancedClose is a closer with no matching opener, or of the
	// wrong kind, inside a placeholder.
	ErrUnbalancedClose ErrorKind = iota
	// ErrStackOverflow is bracket nesting beyond the 64-entry cap.
	ErrStackOverflow
	// ErrEOFInPlaceholder is end of input reached at a placeholder
	// segment boundary, before the closing brace.
	ErrEOFInPlaceholder
	// ErrEOFInExpression is end of input reached while scanning a
	// placeholder segment's characters.
	ErrEOFInExpression
	// ErrMalformedTail is end of input reached inside a placeholder's
	// string or character literal sub-state.
	ErrMalformedTail
)

// SyntaxError is returned by Lexer.Next when the input cannot be
// tokenized. It carries the logical source path and the 1-based line at
// which the failure was detected.
type SyntaxError struct {
	Kind ErrorKind
	Path string
	Line int
	msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.msg)
}

func (l *Lexer) errorf(kind ErrorKind, line int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Kind: kind,
		Path: l.path,
		Line: line,
		msg:  fmt.Sprintf(format, args...),
	}
}
