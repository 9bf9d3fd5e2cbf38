// Package grammar implements the in-memory model for a context-free grammar:
// Symbols, Rules, RuleSets, and the builder used to assemble them at runtime.
package grammar

// Symbol is an opaque grammar identifier. Two Symbols are the same grammar
// symbol iff they compare equal as strings — identity of name, per spec.
type Symbol string

// Reserved Symbol names. Users may not declare a RuleSet under either name.
const (
	// End is the end-of-input sentinel the lexer emits once the cursor
	// reaches the end of the source.
	End Symbol = "$end"

	// startWrapperName is the synthesized nonterminal introduced when the
	// user's chosen start Symbol resolves to a terminal RuleSet.
	startWrapperName Symbol = "$start"

	// acceptName is the internal augmenting production used to host the
	// ACCEPT action; never visible to user code or user grammars.
	acceptName Symbol = "$accept"
)

func isReserved(name Symbol) bool {
	return name == End || name == startWrapperName || name == acceptName
}
