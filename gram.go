package gram

import (
	"sync"

	"github.com/npillmayer/gram/grammar"
	"github.com/npillmayer/gram/lex"
	"github.com/npillmayer/gram/parse"
	"github.com/npillmayer/gram/table"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return tracing.Select("gram") }

// Grammar is the public facade over grammar.Grammar: the same builder DSL,
// plus a parse table that is synthesized once, lazily, on the first call
// to Parse — never ahead of time, per spec. Safe for concurrent Parse
// calls once the first has returned.
type Grammar struct {
	*grammar.Grammar

	once sync.Once
	mu   sync.RWMutex
	tbl  *table.Table
	err  error
}

// New creates an empty Grammar with a diagnostic name.
func New(name string) *Grammar {
	return &Grammar{Grammar: grammar.New(name)}
}

// Start sets the grammar's start symbol, returning the Grammar for
// chaining. Shadows the embedded grammar.Grammar.Start getter; reach that
// via g.Grammar.Start() if ever needed.
func (g *Grammar) Start(name grammar.Symbol) *Grammar {
	g.Grammar.SetStart(name)
	return g
}

func (g *Grammar) table() (*table.Table, error) {
	g.once.Do(func() {
		tracer().Debugf("grammar %q: synthesizing parse table on first use", g.Name())
		tbl, err := table.Build(g.Grammar)
		g.mu.Lock()
		g.tbl, g.err = tbl, err
		g.mu.Unlock()
	})
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tbl, g.err
}

// Parse synthesizes the grammar's parse table on first call (memoized for
// every subsequent call, including concurrent ones) and parses src
// against it, returning the value produced by the start rule's action.
func (g *Grammar) Parse(src string) (any, error) {
	tbl, err := g.table()
	if err != nil {
		return nil, err
	}
	return parse.Run(g.Grammar, tbl, src)
}

// Dump returns a human-readable rendering of the synthesized parse table,
// forcing table construction if it hasn't happened yet.
func (g *Grammar) Dump() (string, error) {
	tbl, err := g.table()
	if err != nil {
		return "", err
	}
	return tbl.String(), nil
}

// Re-exported error and DSL types, so callers never need to import the
// leaf packages directly for ordinary use.
type (
	Symbol               = grammar.Symbol
	Assoc                = grammar.Assoc
	ActionFunc           = grammar.ActionFunc
	GrammarError         = grammar.GrammarError
	ParseError           = parse.ParseError
	UnconsumedInputError = lex.UnconsumedInputError
)

// Re-exported associativity constants.
const (
	Right    = grammar.Right
	Left     = grammar.Left
	NonAssoc = grammar.NonAssoc
)

// End is the end-of-input sentinel Symbol.
const End = grammar.End
