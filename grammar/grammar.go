package grammar

import (
	"regexp"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces grammar construction with key "gram.grammar", mirroring the
// teacher's tracer()/T() helpers (lr/slr/slr.go, runtime/runtime.go).
func tracer() tracing.Trace {
	return tracing.Select("gram.grammar")
}

// T traces to the global syntax tracer, for callers that have not selected a
// sub-tracer key.
func T() tracing.Trace { return gtrace.SyntaxTracer }

// Grammar accumulates RuleSets and a start Symbol. It is built once and is
// only read by table construction and parsing, so it is safe to read
// concurrently once construction is finished; nothing prevents further
// builder calls after the first Parse.
type Grammar struct {
	name     string
	sets     map[Symbol]*RuleSet
	order    []Symbol // declaration order, for lexer priority
	start    Symbol
	hasStart bool
	firstErr error
}

// New creates an empty Grammar with a diagnostic name (used in trace output
// and table dumps only).
func New(name string) *Grammar {
	return &Grammar{name: name, sets: make(map[Symbol]*RuleSet)}
}

// Name returns the grammar's diagnostic name.
func (g *Grammar) Name() string { return g.name }

// Err returns the first construction error recorded, or nil. DSL methods
// record a sticky first error rather than panicking, so that chained calls
// remain safe; table.Build refuses to proceed while this is non-nil.
func (g *Grammar) Err() error { return g.firstErr }

func (g *Grammar) fail(err error) {
	if g.firstErr == nil {
		g.firstErr = err
	}
}

// RuleSets returns every declared RuleSet in declaration order.
func (g *Grammar) RuleSets() []*RuleSet {
	out := make([]*RuleSet, len(g.order))
	for i, name := range g.order {
		out[i] = g.sets[name]
	}
	return out
}

// RuleSet looks up a RuleSet by name. Returns nil if undeclared.
func (g *Grammar) RuleSet(name Symbol) *RuleSet { return g.sets[name] }

// Start returns the declared start Symbol and whether one was set.
func (g *Grammar) Start() (Symbol, bool) { return g.start, g.hasStart }

// SetStart declares the grammar's start Symbol. May be called before the
// referenced RuleSet exists; validated at table-build time.
func (g *Grammar) SetStart(name Symbol) {
	if isReserved(name) {
		g.fail(NewGrammarError("symbol %q is reserved and cannot be the start symbol", name))
		return
	}
	g.start = name
	g.hasStart = true
}

func (g *Grammar) declare(name Symbol) *RuleSet {
	if rs, ok := g.sets[name]; ok {
		return rs
	}
	rs := &RuleSet{Name: name}
	g.sets[name] = rs
	g.order = append(g.order, name)
	return rs
}

func (g *Grammar) addRule(name Symbol, r *Rule) {
	rs := g.declare(name)
	rs.Rules = append(rs.Rules, r)
}

// declareTerminal registers r as the (sole) Rule for a terminal RuleSet
// named name. If name already names an implicit literal stub auto-
// registered by ensureLiteral, r replaces it in place rather than being
// appended as a second alternative — an explicit Term/Literal declaration
// always wins over the inline-string shorthand, regardless of the order
// the two are written in. Declaring the same name twice explicitly (or
// redeclaring a name already used for a nonterminal) is a construction
// error.
func (g *Grammar) declareTerminal(name Symbol, r *Rule) *Rule {
	if existing, ok := g.sets[name]; ok {
		if len(existing.Rules) == 1 && existing.Rules[0].implicit {
			existing.Rules[0] = r
			return r
		}
		g.fail(NewGrammarError("rule %q: already declared", name))
		return existing.Rules[0]
	}
	g.addRule(name, r)
	return r
}

// RuleBuilder accumulates one alternative of a nonterminal RuleSet.
type RuleBuilder struct {
	g    *Grammar
	rule *Rule
}

// Rule declares (or extends) a nonterminal RuleSet and begins a new
// alternative for it.
func (g *Grammar) Rule(name Symbol) *RuleBuilder {
	if isReserved(name) {
		g.fail(NewGrammarError("symbol %q is reserved", name))
		name = "$invalid"
	}
	r := &Rule{Name: name, Action: Identity}
	g.addRule(name, r)
	return &RuleBuilder{g: g, rule: r}
}

// Add appends components to the rule under construction. Each component is
// one of: Symbol or string (auto-registers an implicit literal terminal
// RuleSet the first time it is seen). A *regexp.Regexp component is always
// a construction error here; regex terminals are declared via Term.
func (rb *RuleBuilder) Add(components ...any) *RuleBuilder {
	for _, c := range components {
		switch v := c.(type) {
		case Symbol:
			rb.rule.Components = append(rb.rule.Components, Component{Kind: CompSymbol, Symbol: v})
		case string:
			rb.g.ensureLiteral(v)
			rb.rule.Components = append(rb.rule.Components, Component{Kind: CompLiteral, Literal: v})
		case *regexp.Regexp:
			rb.g.fail(NewGrammarError("rule %q: regex component only allowed in a terminal rule declared via Term", rb.rule.Name))
		default:
			rb.g.fail(NewGrammarError("rule %q: component must be a Symbol, string, or *regexp.Regexp", rb.rule.Name))
		}
	}
	return rb
}

// ensureLiteral auto-registers an implicit terminal RuleSet for a bare
// literal string the first time it is used inline inside some other rule's
// component list, per spec §4.1's "rule(literal)" shorthand. An explicit
// Literal/Term declaration for the same name, made before or after, wins:
// declareTerminal replaces this stub in place when the explicit call comes
// later. Declaring the literal's name as a nonterminal (via Rule) after it
// has already been used inline is not reconciled — it corrupts
// RuleSet.IsTerminal() and is on the caller to avoid, same as any other
// name collision between a terminal and a nonterminal.
func (g *Grammar) ensureLiteral(lit string) {
	if _, ok := g.sets[Symbol(lit)]; ok {
		return
	}
	g.addRule(Symbol(lit), &Rule{
		Name:       Symbol(lit),
		Components: []Component{{Kind: CompLiteral, Literal: lit}},
		Action:     Identity,
		Assoc:      Right,
		implicit:   true,
	})
}

// As installs a custom reduction action for this alternative.
func (rb *RuleBuilder) As(fn ActionFunc) *RuleBuilder {
	rb.rule.Action = fn
	return rb
}

// AsValue installs the identity action for this alternative (the default).
func (rb *RuleBuilder) AsValue() *RuleBuilder {
	rb.rule.Action = Identity
	return rb
}

// TerminalBuilder is returned by Term/Literal: a handle on a freshly
// declared terminal RuleSet for setting precedence/associativity/action.
type TerminalBuilder struct {
	g    *Grammar
	rule *Rule
}

// Term declares a named terminal RuleSet matching a regular expression,
// anchored internally so it only ever matches at the lexer's cursor.
func (g *Grammar) Term(name Symbol, pattern string) *TerminalBuilder {
	if isReserved(name) {
		g.fail(NewGrammarError("symbol %q is reserved", name))
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		g.fail(WrapGrammarError(err, "rule %q: invalid regular expression %q", name, pattern))
		re = regexp.MustCompile(`\A$^`) // matches nothing
	}
	r := &Rule{
		Name:       name,
		Components: []Component{{Kind: CompRegex, Pattern: re, source: pattern}},
		Action:     Identity,
		Assoc:      Right,
	}
	r = g.declareTerminal(name, r)
	return &TerminalBuilder{g: g, rule: r}
}

// Literal declares a named terminal RuleSet matching a literal string
// exactly. Use this (rather than the inline-string shorthand) when the
// terminal needs its own precedence/associativity/action.
func (g *Grammar) Literal(name Symbol, text string) *TerminalBuilder {
	if isReserved(name) {
		g.fail(NewGrammarError("symbol %q is reserved", name))
	}
	r := &Rule{
		Name:       name,
		Components: []Component{{Kind: CompLiteral, Literal: text}},
		Action:     Identity,
		Assoc:      Right,
	}
	r = g.declareTerminal(name, r)
	return &TerminalBuilder{g: g, rule: r}
}

// Prec sets the terminal's precedence (default 0).
func (tb *TerminalBuilder) Prec(n int) *TerminalBuilder {
	if n < 0 {
		tb.g.fail(NewGrammarError("rule %q: precedence must be non-negative, got %d", tb.rule.Name, n))
		return tb
	}
	tb.rule.Prec = n
	return tb
}

// Assoc sets the terminal's associativity (default Right).
func (tb *TerminalBuilder) Assoc(a Assoc) *TerminalBuilder {
	tb.rule.Assoc = a
	return tb
}

// As installs a custom action applied to the matched token text. fn runs at
// parse time, once per matched token, so a failure here is a parse failure
// for that input — not a grammar-construction error — and is raised as an
// ActionError for the driver to recover and surface as such, rather than
// being recorded via Grammar.fail (which only table.Build consults, long
// before any token has been scanned).
func (tb *TerminalBuilder) As(fn func(text string) (any, error)) *TerminalBuilder {
	tb.rule.Action = func(args []any) any {
		text, _ := args[0].(string)
		v, err := fn(text)
		if err != nil {
			panic(ActionError{Err: WrapGrammarError(err, "rule %q: action failed for %q", tb.rule.Name, text)})
		}
		return v
	}
	return tb
}

// Skip marks this terminal as discarded: the lexer advances over matches
// but never delivers them to the driver (whitespace, comments, ...).
func (tb *TerminalBuilder) Skip() *TerminalBuilder {
	tb.rule.Discard = true
	tb.rule.Action = Discard
	return tb
}
