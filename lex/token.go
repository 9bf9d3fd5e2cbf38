// Package lex implements the longest-match lexer: at each cursor position it
// tries every terminal RuleSet and hands the driver the longest match,
// breaking ties by declaration order.
package lex

import "github.com/npillmayer/gram/grammar"

// Token is one lexeme produced by the Lexer.
type Token struct {
	Name      grammar.Symbol // matched Symbol name
	Text      string         // matched substring
	Offset    int            // byte offset of the match
	Line      int            // line number at match start (1-based)
	Rule      *grammar.Rule  // the terminal Rule that matched, for its Action
	Discarded bool           // true if Rule.Discard (skip()'d) — never delivered
}
