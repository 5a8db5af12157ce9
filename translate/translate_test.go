// Copyright (c) 2018 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package translate

import (
	"io"
	"testing"

	"github.com/open2b/csp/token"
)

// sliceSource replays a fixed slice of tokens, implementing TokenSource.
type sliceSource struct {
	tokens []token.Token
	pos    int
}

func (s *sliceSource) Next() (token.Token, bool, error) {
	if s.pos >= len(s.tokens) {
		return token.Token{}, false, nil
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true, nil
}

func arg(text string, line int) token.Token {
	return token.Token{Kind: token.PlaceholderArgument, Text: []byte(text), Line: line}
}

func filt(text string, line int) token.Token {
	return token.Token{Kind: token.PlaceholderFilter, Text: []byte(text), Line: line}
}

func end(line int) token.Token {
	return token.Token{Kind: token.PlaceholderEnd, Line: line}
}

func text(s string, line int) token.Token {
	return token.Token{Kind: token.Text, Text: []byte(s), Line: line}
}

func verbatim(s string, line int) token.Token {
	return token.Token{Kind: token.Verbatim, Text: []byte(s), Line: line}
}

func mustAll(t *testing.T, tr *Translator) string {
	t.Helper()
	out, err := tr.All()
	if err != nil && err != io.EOF {
		t.Fatalf("All() error: %v", err)
	}
	return out
}

func TestVerbatimPassesThroughUnchanged(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{verbatim("int x = 1;\n", 1)}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "int x = 1;\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextWrappedInCoYield(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{text("hi\n", 1)}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield \"hi\\n\";\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextWrappedInCallback(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{text("hi", 1)}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCallback, Name: "emit"}})
	got := mustAll(t, tr)
	want := "emit(\"hi\");\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMultiLineTextSplitsIntoJuxtaposedLiterals(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{text("\nfoo\n", 1)}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield \"\\n\"\n  \"foo\\n\";\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMultiLineTextSplitsInAppendSink(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{text("\nfoo\n", 1)}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkAppend, Name: "out"}})
	got := mustAll(t, tr)
	want := "out += \"\\n\"\n  \"foo\\n\";\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextWrappedInAppend(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{text("hi", 1)}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkAppend, Name: "out"}})
	got := mustAll(t, tr)
	want := "out += \"hi\";\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderNoArgsNoFiltersIsNoOp(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{end(1)}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	if got != "" {
		t.Errorf("got %q, want empty output", got)
	}
}

func TestPlaceholderFiltersOnlyRebindsDefaultAndEmitsNothing(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		filt("html_escape", 1),
		end(1),
		arg("name", 2),
		end(2),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield html_escape(format(\"{}\", name));\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderQuotedLiteralArgumentPassesThrough(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		arg(`"%d items"`, 1),
		end(1),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield \"%d items\";\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderPaddedArgumentIsNotTreatedAsLiteral(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		arg(` "$" `, 1),
		end(1),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield format(\"{}\", \"$\");\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderWithNoDefaultFiltersEmitsSingleArgFormat(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		arg("x", 1),
		end(1),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield format(\"{}\", x);\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderStickyDefaultAppliesToLaterArgumentOnly(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		filt("f", 1),
		end(1),
		arg("x", 2),
		end(2),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield f(format(\"{}\", x));\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderEmptyFilterSlotSubstitutesIdentity(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		arg("x", 1),
		filt("", 1),
		end(1),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield " + identityFilter + "(format(\"{}\", x));\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderFiltersNestLastListedInnermost(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		arg("x", 1),
		filt("f1", 1),
		filt("f2", 1),
		end(1),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield f1(f2(format(\"{}\", x)));\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceholderMultipleArguments(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		arg("a", 1),
		arg("b", 1),
		filt("f", 1),
		end(1),
	}}
	tr := New(src, "t.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "co_yield f(format(a, b));\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLineDirectivesOnlyOnChange(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		verbatim("a;\n", 1),
		verbatim("b;\n", 2),
		text("c", 2),
	}}
	tr := New(src, "test.csp", Config{EnableLine: true, Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "#line 1 \"test.csp\"\n" +
		"#line 1\n" +
		"a;\n" +
		"#line 2\n" +
		"b;\n" +
		"co_yield \"c\";\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLineDirectivesDisabled(t *testing.T) {
	src := &sliceSource{tokens: []token.Token{
		verbatim("a;\n", 1),
		verbatim("b;\n", 5),
	}}
	tr := New(src, "test.csp", Config{Sink: Sink{Kind: SinkCoYield}})
	got := mustAll(t, tr)
	want := "a;\nb;\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
