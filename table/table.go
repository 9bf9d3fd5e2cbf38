// Package table builds and represents the shift/reduce parse table: a
// mapping from (state, lookahead) to a single action, synthesized from a
// grammar by depth-first recursive expansion rather than full LALR(1)
// item-set construction (spec's explicit, bug-compatible simplification).
package table

import (
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/npillmayer/gram/grammar"
	"golang.org/x/exp/slices"
)

// ActionKind tags what a Table entry instructs the driver to do.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Goto
	Accept
	// NonAssocError marks a shift dropped by conflict resolution because the
	// colliding operators are NonAssoc; dispatching it is itself a parse
	// error, distinct from "no action found".
	NonAssocError
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Goto:
		return "goto"
	case Accept:
		return "accept"
	case NonAssocError:
		return "nonassoc!"
	default:
		return "?"
	}
}

// StateID is an opaque, stable identifier for a table state.
type StateID string

// Default is the sentinel lookahead key spec.md calls `nil`: "applies when
// no more specific shift or accept entry matches the lookahead."
const Default grammar.Symbol = ""

// Action is one parse-table cell.
type Action struct {
	Kind  ActionKind
	Next  StateID       // Shift, Goto
	Rule  *grammar.Rule // Reduce, Accept, NonAssocError (rule that lost)
	Prec  int           // Shift: terminal's precedence; Reduce: rule's running precedence
	Assoc grammar.Assoc // Shift: terminal's associativity
}

// Table is the fully-resolved parse table produced by Build.
type Table struct {
	entries map[StateID]map[grammar.Symbol]*Action
	start   StateID
}

// Start returns the table's initial state.
func (t *Table) Start() StateID { return t.start }

// Action looks up the action for (state, lookahead): a specific entry for
// lookahead if present, else the Default entry, else none.
func (t *Table) Action(state StateID, lookahead grammar.Symbol) (*Action, bool) {
	m, ok := t.entries[state]
	if !ok {
		return nil, false
	}
	if a, ok := m[lookahead]; ok {
		return a, true
	}
	if a, ok := m[Default]; ok {
		return a, true
	}
	return nil, false
}

// Expected returns every lookahead Symbol in state that would trigger a
// Shift or Accept (an Accept appears as grammar.End); a Default entry is
// not listed. Used by the error reporter to build ParseError.Expected.
func (t *Table) Expected(state StateID) []grammar.Symbol {
	m := t.entries[state]
	out := make([]grammar.Symbol, 0, len(m))
	for sym, a := range m {
		switch a.Kind {
		case Shift:
			out = append(out, sym)
		case Accept:
			out = append(out, grammar.End)
		}
	}
	slices.Sort(out)
	return out
}

// String renders the table via rosed's InsertTableOpts, grounded on
// dekarrin-tunaq/internal/ictiobus/parse/slr.go's table-dump helper.
func (t *Table) String() string {
	data := [][]string{{"state", "symbol", "action"}}
	states := make([]StateID, 0, len(t.entries))
	for s := range t.entries {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	for _, s := range states {
		syms := make([]grammar.Symbol, 0, len(t.entries[s]))
		for sym := range t.entries[s] {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			a := t.entries[s][sym]
			label := string(sym)
			if sym == Default {
				label = "<default>"
			}
			data = append(data, []string{string(s)[:8], label, describeAction(a)})
		}
	}
	return rosed.Edit("").InsertTableOpts(0, data, 100, rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}).String()
}

func describeAction(a *Action) string {
	switch a.Kind {
	case Shift:
		return "shift -> " + string(a.Next)[:8]
	case Goto:
		return "goto -> " + string(a.Next)[:8]
	case Reduce:
		return "reduce " + a.Rule.String()
	case Accept:
		return "accept " + a.Rule.String()
	case NonAssocError:
		return "nonassoc error on " + a.Rule.String()
	default:
		return "?"
	}
}
