package gram_test

import (
	"strconv"
	"testing"

	"github.com/npillmayer/gram"
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

// TestArithmeticPrecedence exercises the full public facade end to end:
// DSL construction, lazy+memoized table synthesis, and precedence-correct
// evaluation of "1+2*3".
func TestArithmeticPrecedence(t *testing.T) {
	defer setupTracing(t)()

	g := gram.New("arith")
	g.Term("int", `[0-9]+`).As(func(text string) (any, error) {
		return strconv.Atoi(text)
	})
	g.Literal("+", "+").Prec(1).Assoc(gram.Left)
	g.Literal("*", "*").Prec(2).Assoc(gram.Left)
	g.Rule("expr").Add(gram.Symbol("int")).AsValue()
	g.Rule("expr").Add(gram.Symbol("expr"), gram.Symbol("+"), gram.Symbol("expr")).As(func(args []any) any {
		return args[0].(int) + args[2].(int)
	})
	g.Rule("expr").Add(gram.Symbol("expr"), gram.Symbol("*"), gram.Symbol("expr")).As(func(args []any) any {
		return args[0].(int) * args[2].(int)
	})
	g.Start("expr")

	result, err := g.Parse("1+2*3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(int) != 7 {
		t.Fatalf("want 1+2*3=7 (left-to-right, * binds tighter), got %v", result)
	}

	// a second Parse call runs against the table memoized by the first.
	result2, err := g.Parse("2*3+1")
	if err != nil {
		t.Fatalf("unexpected error on second parse: %v", err)
	}
	if result2.(int) != 7 {
		t.Fatalf("want 2*3+1=7, got %v", result2)
	}
}

// TestUndefinedSymbolFails grounds a grammar-construction error path: the
// start rule references a symbol that is never declared.
func TestUndefinedSymbolFails(t *testing.T) {
	defer setupTracing(t)()
	g := gram.New("broken")
	g.Rule("expr").Add(gram.Symbol("int")).AsValue()
	g.Start("expr")

	_, err := g.Parse("1")
	if err == nil {
		t.Fatal("want error for undefined symbol \"int\", got nil")
	}
}
