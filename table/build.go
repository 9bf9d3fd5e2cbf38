package table

import (
	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/gram/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return tracing.Select("gram.table") }

// synthStart and synthAccept name the two internal rules the builder
// introduces: synthStart wraps a terminal start symbol (spec §4.3 step 1,
// "$start" in the spec's own glossary), synthAccept is the augmented-grammar
// production "$accept -> <effective start>" whose own completion is the
// sole place an Accept action is ever emitted. Real user rules — including
// ones that reduce to the start symbol itself, recursively — always
// complete through the ordinary Reduce+Goto path; only $accept's single,
// unique completion state carries Accept. This is what lets a self-recursive
// start rule (parens = "(" parens ")" |) keep reducing at every nesting
// depth while a non-recursive start rule still reports a precise "expected
// $end" error on trailing input (nothing follows $accept's Goto but Accept).
const (
	synthStart  grammar.Symbol = "$start"
	synthAccept grammar.Symbol = "$accept"
)

type builder struct {
	g         *grammar.Grammar
	synthetic map[grammar.Symbol]*grammar.RuleSet
	entries   map[StateID]map[grammar.Symbol]*Action
	visited   *hashset.Set // of "state\x00ruleset" closure-expansion keys
	err       error
}

// Build synthesizes a Table from g by depth-first recursive expansion from
// a single augmented root rule, per spec §4.3. The table is built once; it
// does not merge with or carry over any previous Table.
func Build(g *grammar.Grammar) (*Table, error) {
	if err := g.Err(); err != nil {
		return nil, err
	}
	if err := validateReferences(g); err != nil {
		return nil, err
	}
	start, hasStart := g.Start()
	if !hasStart {
		return nil, grammar.NewGrammarError("grammar %q: no start symbol declared", g.Name())
	}
	startRS := g.RuleSet(start)
	if startRS == nil {
		return nil, grammar.NewGrammarError("start symbol %q has no declared rules", start)
	}

	b := &builder{
		g:         g,
		synthetic: map[grammar.Symbol]*grammar.RuleSet{},
		entries:   map[StateID]map[grammar.Symbol]*Action{},
		visited:   hashset.New(),
	}

	effectiveStart := start
	if startRS.IsTerminal() {
		// spec §4.3 step 1: a terminal start symbol is wrapped so the
		// driver always has a nonterminal to reduce at the top level.
		wrap := &grammar.Rule{
			Name:       synthStart,
			Components: []grammar.Component{{Kind: grammar.CompSymbol, Symbol: start}},
			Action:     grammar.Identity,
		}
		b.synthetic[synthStart] = &grammar.RuleSet{Name: synthStart, Rules: []*grammar.Rule{wrap}}
		effectiveStart = synthStart
	}

	root := rootState()
	accept := &grammar.Rule{
		Name:       synthAccept,
		Components: []grammar.Component{{Kind: grammar.CompSymbol, Symbol: effectiveStart}},
		Action:     grammar.Identity,
	}
	b.expand(root, accept, 0, 0)
	if b.err != nil {
		return nil, b.err
	}

	b.resolveConflicts()
	if b.err != nil {
		return nil, b.err
	}

	tracer().Debugf("grammar %q: table built with %d states", g.Name(), len(b.entries))
	return &Table{entries: b.entries, start: root}, nil
}

func validateReferences(g *grammar.Grammar) error {
	for _, rs := range g.RuleSets() {
		for _, r := range rs.Rules {
			for _, c := range r.Components {
				if c.Kind != grammar.CompSymbol {
					continue
				}
				if g.RuleSet(c.Symbol) == nil {
					return grammar.NewGrammarError("rule %q: undefined symbol %q", r, c.Symbol)
				}
			}
		}
	}
	return nil
}

func (b *builder) ruleSet(name grammar.Symbol) *grammar.RuleSet {
	if rs, ok := b.synthetic[name]; ok {
		return rs
	}
	return b.g.RuleSet(name)
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// expand walks rule's components starting at index k, shifting through
// terminal symbols and recursing into nonterminal closures, until it
// reaches the end of the rule — at which point it records a Reduce (or, for
// the synthetic $accept rule, an Accept).
func (b *builder) expand(state StateID, rule *grammar.Rule, k int, runningPrec int) {
	if b.err != nil {
		return
	}
	if k >= len(rule.Components) {
		b.complete(state, rule, runningPrec)
		return
	}

	comp := rule.Components[k]
	sym := comp.Name()
	rs := b.ruleSet(sym)
	if rs == nil {
		b.fail(grammar.NewGrammarError("rule %q: undefined symbol %q", rule, sym))
		return
	}

	// hash(parentState, symbol): the same (state, symbol) transition always
	// lands on the same child state regardless of which alternative or
	// which enclosing rule is being expanded. This is what lets two
	// different rules' completions (e.g. "list := [id]" and "prog := [id]")
	// collide at one state so a reduce/reduce conflict between them is
	// detected deterministically, and what lets nonterminal closures share
	// their expansion rather than re-deriving a fresh state per occurrence.
	next := childState(state, sym)

	if rs.IsTerminal() {
		term := rs.Terminal()
		b.addShift(state, sym, next, term)
		eff := runningPrec
		if term.Prec > eff {
			eff = term.Prec
		}
		b.expand(next, rule, k+1, eff)
		return
	}

	b.addGoto(state, sym, next)
	key := string(state) + "\x00" + string(sym)
	if !b.visited.Contains(key) {
		b.visited.Add(key)
		for _, alt := range rs.Rules {
			b.expand(state, alt, 0, 0)
		}
	}
	b.expand(next, rule, k+1, runningPrec)
}

func (b *builder) complete(state StateID, rule *grammar.Rule, prec int) {
	if rule.Name == synthAccept {
		b.addAccept(state, rule)
		return
	}
	b.addReduce(state, rule, prec)
}

func (b *builder) cell(state StateID) map[grammar.Symbol]*Action {
	m, ok := b.entries[state]
	if !ok {
		m = map[grammar.Symbol]*Action{}
		b.entries[state] = m
	}
	return m
}

func (b *builder) addShift(state StateID, sym grammar.Symbol, next StateID, term *grammar.Rule) {
	m := b.cell(state)
	m[sym] = &Action{Kind: Shift, Next: next, Rule: term, Prec: term.Prec, Assoc: term.Assoc}
}

func (b *builder) addGoto(state StateID, sym grammar.Symbol, next StateID) {
	m := b.cell(state)
	if _, ok := m[sym]; ok {
		return // same nonterminal Goto reached via multiple alternatives: idempotent
	}
	m[sym] = &Action{Kind: Goto, Next: next}
}

func (b *builder) addReduce(state StateID, rule *grammar.Rule, prec int) {
	m := b.cell(state)
	if existing, ok := m[Default]; ok {
		if existing.Kind == Reduce && existing.Rule == rule {
			return
		}
		if existing.Kind == Reduce {
			b.fail(grammar.ReduceReduceError(existing.Rule, rule))
			return
		}
	}
	m[Default] = &Action{Kind: Reduce, Rule: rule, Prec: prec}
}

func (b *builder) addAccept(state StateID, rule *grammar.Rule) {
	m := b.cell(state)
	m[grammar.End] = &Action{Kind: Accept, Rule: rule}
}

// resolveConflicts applies spec §4.5 to every state that carries both a
// default Reduce and one or more Shift entries: higher precedence wins;
// equal precedence defers to the shift terminal's associativity; a
// NonAssoc tie replaces the shift with an explicit error marker rather than
// silently deleting it, so the driver reports a real parse error for that
// lookahead instead of falling through to the default reduce.
func (b *builder) resolveConflicts() {
	for _, m := range b.entries {
		reduce, ok := m[Default]
		if !ok || reduce.Kind != Reduce {
			continue
		}
		for sym, a := range m {
			if sym == Default || sym == grammar.End || a.Kind != Shift {
				continue
			}
			switch {
			case reduce.Prec > a.Prec:
				delete(m, sym)
			case reduce.Prec < a.Prec:
				// shift wins, keep as-is
			default:
				switch a.Assoc {
				case grammar.Left:
					delete(m, sym)
				case grammar.NonAssoc:
					m[sym] = &Action{Kind: NonAssocError, Rule: reduce.Rule}
				}
				// Right: shift wins, keep as-is
			}
		}
	}
}

func rootState() StateID {
	h, err := structhash.Hash(struct{ Root string }{"gram-table-root"}, 1)
	if err != nil {
		panic("table: hashing the root state marker failed: " + err.Error())
	}
	return StateID(h)
}

func childState(parent StateID, sym grammar.Symbol) StateID {
	h, err := structhash.Hash(struct {
		Parent StateID
		Symbol grammar.Symbol
	}{parent, sym}, 1)
	if err != nil {
		panic("table: hashing a transition state failed: " + err.Error())
	}
	return StateID(h)
}
