package parse

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/gram/grammar"
	"github.com/npillmayer/gram/lex"
	"github.com/npillmayer/gram/table"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return tracing.Select("gram.parse") }

// Run drives a shift/reduce parse of src against tbl, per spec §4.4: a
// state stack and a value stack, shifting on Shift, popping a rule's
// handle and applying its action on Reduce, and returning the single
// remaining value on Accept. Grounded on
// npillmayer-gorgo/lr/slr/slr.go's Parser.Parse/reduce loop, generalized
// from its sparse int-matrix tables to table.Table's hash-keyed states.
func Run(g *grammar.Grammar, tbl *table.Table, src string) (any, error) {
	states := arraystack.New()
	values := arraystack.New()
	states.Push(tbl.Start())

	l := lex.New(g, src)
	tok, err := l.Next()
	if err != nil {
		return nil, err
	}

	for {
		topAny, _ := states.Peek()
		state := topAny.(table.StateID)

		action, ok := tbl.Action(state, tok.Name)
		if !ok {
			span := tok.Span()
			lineStart, col := lineStartOf(src, span.From())
			return nil, newParseError(tbl.Expected(state), tok.Name, tok.Line, excerptWithCaret(src, lineStart, col, caretWidth(span)))
		}

		switch action.Kind {
		case table.Shift:
			val, actErr := applyAction(tok.Rule.Action, []any{tok.Text})
			if actErr != nil {
				return nil, actErr
			}
			states.Push(action.Next)
			values.Push(val)
			tracer().Debugf("shift %s -> state %s", tok.Name, action.Next)
			tok, err = l.Next()
			if err != nil {
				return nil, err
			}

		case table.Reduce:
			result, err := reduce(states, values, action.Rule)
			if err != nil {
				return nil, err
			}
			topAny, _ = states.Peek()
			gotoState := topAny.(table.StateID)
			gotoAction, ok := tbl.Action(gotoState, action.Rule.Name)
			if !ok || gotoAction.Kind != table.Goto {
				return nil, grammar.NewGrammarError("internal error: no goto(%s) from state %s after reducing %s", action.Rule.Name, gotoState, action.Rule)
			}
			states.Push(gotoAction.Next)
			values.Push(result)
			tracer().Debugf("reduce %s, goto state %s", action.Rule, gotoAction.Next)

		case table.Accept:
			result, _ := values.Peek()
			tracer().Infof("accept")
			return result, nil

		case table.NonAssocError:
			span := tok.Span()
			lineStart, col := lineStartOf(src, span.From())
			return nil, newParseError(nil, tok.Name, tok.Line, excerptWithCaret(src, lineStart, col, caretWidth(span)))
		}
	}
}

// reduce pops rule's handle off both stacks (in left-to-right order) and
// applies the rule's action to produce the value pushed after the Goto.
func reduce(states, values *arraystack.Stack, rule *grammar.Rule) (any, error) {
	n := len(rule.Components)
	args := make([]any, n)
	for i := n - 1; i >= 0; i-- {
		v, ok := values.Pop()
		if !ok {
			return nil, grammar.NewGrammarError("internal error: value stack underflow reducing %s", rule)
		}
		args[i] = v
		if _, ok := states.Pop(); !ok {
			return nil, grammar.NewGrammarError("internal error: state stack underflow reducing %s", rule)
		}
	}
	return applyAction(rule.Action, args)
}

// applyAction calls fn, recovering an ActionError panic raised by a
// terminal's As(fn) action (grammar.TerminalBuilder.As) and returning it as
// a genuine error rather than letting it unwind past the driver. Any other
// panic is not ours to handle and is re-raised.
func applyAction(fn grammar.ActionFunc, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(grammar.ActionError)
			if !ok {
				panic(r)
			}
			err = ae
		}
	}()
	return fn(args), nil
}
