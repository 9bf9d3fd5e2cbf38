package table

import (
	"errors"
	"testing"

	"github.com/npillmayer/gram/grammar"
)

// TestReduceReduceConflict grounds spec's scenario 9: two rules that both
// complete at the same closure-merged state must raise a GrammarError
// immediately at table-build time, not a silent pick.
func TestReduceReduceConflict(t *testing.T) {
	g := grammar.New("rr")
	g.Term("id", `[a-z]+`)
	g.Rule("list").Add(grammar.Symbol("list"), grammar.Symbol("id")).AsValue()
	g.Rule("list").Add(grammar.Symbol("id")).AsValue()
	g.Rule("prog").Add(grammar.Symbol("list")).AsValue()
	g.Rule("prog").Add(grammar.Symbol("id")).AsValue()
	g.SetStart("prog")

	_, err := Build(g)
	if err == nil {
		t.Fatal("want reduce/reduce GrammarError, got nil")
	}
	var ge *grammar.GrammarError
	if !errors.As(err, &ge) {
		t.Fatalf("want *grammar.GrammarError, got %T: %v", err, err)
	}
}

// TestPrecedenceResolvesAmbiguity builds the classic "+"/"*" ambiguous
// arithmetic grammar and expects table construction to resolve the
// shift/reduce conflicts via precedence rather than erroring.
func TestPrecedenceResolvesAmbiguity(t *testing.T) {
	g := grammar.New("arith")
	g.Term("n", `[0-9]+`)
	g.Literal("plus", "+").Prec(1).Assoc(grammar.Left)
	g.Literal("star", "*").Prec(2).Assoc(grammar.Left)
	g.Rule("expr").Add(grammar.Symbol("n")).AsValue()
	g.Rule("expr").Add(grammar.Symbol("expr"), grammar.Symbol("plus"), grammar.Symbol("expr")).As(grammar.Identity)
	g.Rule("expr").Add(grammar.Symbol("expr"), grammar.Symbol("star"), grammar.Symbol("expr")).As(grammar.Identity)
	g.SetStart("expr")

	tbl, err := Build(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Start() == "" {
		t.Fatal("want non-empty start state")
	}
	if shiftN, ok := tbl.Action(tbl.Start(), "n"); !ok || shiftN.Kind != Shift {
		t.Fatalf("want shift on n at start state, got %+v", shiftN)
	}
}

// TestNonAssocConflictMarkedAsError grounds spec §4.5's NonAssoc rule: a
// tie between a reduce and a same-precedence NonAssoc shift is not silently
// dropped, it becomes an explicit error action so "a == b == c" fails at
// parse time instead of associating either direction.
func TestNonAssocConflictMarkedAsError(t *testing.T) {
	g := grammar.New("cmp")
	g.Term("n", `[0-9]+`)
	g.Literal("eq", "==").Prec(1).Assoc(grammar.NonAssoc)
	g.Rule("expr").Add(grammar.Symbol("n")).AsValue()
	g.Rule("expr").Add(grammar.Symbol("expr"), grammar.Symbol("eq"), grammar.Symbol("expr")).As(grammar.Identity)
	g.SetStart("expr")

	tbl, err := Build(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s0 := tbl.Start()
	sExpr := childState(s0, "expr")
	shiftEq, ok := tbl.Action(sExpr, "eq")
	if !ok || shiftEq.Kind != Shift {
		t.Fatalf("want shift on eq after one expr, got %+v", shiftEq)
	}
	sExpr2 := childState(shiftEq.Next, "expr")
	a, ok := tbl.Action(sExpr2, "eq")
	if !ok || a.Kind != NonAssocError {
		t.Fatalf("want NonAssocError on chained ==, got %+v", a)
	}
}

// TestAcceptOnlyAtAugmentedCompletion grounds spec's scenario 10: a
// self-recursive start rule must still reduce+goto normally at every
// nesting depth; only the synthetic $accept completion carries Accept.
func TestAcceptOnlyAtAugmentedCompletion(t *testing.T) {
	g := grammar.New("parens")
	g.Literal("lparen", "(")
	g.Literal("rparen", ")")
	g.Rule("parens").Add(grammar.Symbol("lparen"), grammar.Symbol("parens"), grammar.Symbol("rparen")).As(grammar.Identity)
	g.Rule("parens").AsValue() // epsilon
	g.SetStart("parens")

	tbl, err := Build(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s0 := tbl.Start()
	// epsilon alternative completes immediately at s0 under Default.
	eps, ok := tbl.Action(s0, "anything")
	if !ok || eps.Kind != Reduce {
		t.Fatalf("want epsilon reduce at start state, got %+v", eps)
	}
	sParens := childState(s0, "parens")
	accept, ok := tbl.Action(sParens, grammar.End)
	if !ok || accept.Kind != Accept {
		t.Fatalf("want Accept under $end at the goto(parens) state, got %+v", accept)
	}
}
