package lex_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/gram/grammar"
	"github.com/npillmayer/gram/lex"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTracing(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)
	return teardown
}

func TestLongestMatchWins(t *testing.T) {
	defer setupTracing(t)()
	g := grammar.New("overlap")
	g.Literal("def", "def")
	g.Literal("define", "define")
	g.Term("id", `[a-z_]+`)

	l := lex.New(g, "define_method")
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Name != "id" || tok.Text != "define_method" {
		t.Fatalf("want id %q, got %s %q", "define_method", tok.Name, tok.Text)
	}
}

func TestDeclarationOrderBreaksTies(t *testing.T) {
	defer setupTracing(t)()
	g := grammar.New("ties")
	g.Literal("a3", "abc")
	g.Term("a3re", `abc`)

	l := lex.New(g, "abc")
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Name != "a3" {
		t.Fatalf("want earlier-declared a3 to win tie, got %s", tok.Name)
	}
}

func TestSkipAdvancesLineCounter(t *testing.T) {
	defer setupTracing(t)()
	g := grammar.New("skipws")
	g.Term("ws", `\s+`).Skip()
	g.Term("id", `[a-z]+`)

	l := lex.New(g, "a\nb\nc")
	var last lex.Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Name == grammar.End {
			break
		}
		last = tok
	}
	if last.Text != "c" || last.Line != 3 {
		t.Fatalf("want final token \"c\" at line 3, got %q at line %d", last.Text, last.Line)
	}
}

func TestUnconsumedInput(t *testing.T) {
	defer setupTracing(t)()
	g := grammar.New("strict")
	g.Term("id", `[a-z]+`)

	l := lex.New(g, "abc!def")
	if _, err := l.Next(); err != nil {
		t.Fatalf("first token should succeed: %v", err)
	}
	_, err := l.Next()
	var uce *lex.UnconsumedInputError
	if !errors.As(err, &uce) {
		t.Fatalf("want UnconsumedInputError, got %v", err)
	}
}
