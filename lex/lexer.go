package lex

import (
	"strings"

	"github.com/npillmayer/gram/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("gram.lex")
}

// Lexer scans a source string against a Grammar's terminal RuleSets,
// choosing the longest match at the cursor and breaking ties by declaration
// order. It is single-use: construct one per parse.
type Lexer struct {
	g      *grammar.Grammar
	src    string
	cursor int
	line   int
}

// New creates a Lexer over src for the terminal RuleSets of g.
func New(g *grammar.Grammar, src string) *Lexer {
	return &Lexer{g: g, src: src, line: 1}
}

// Line returns the current line number (1-based).
func (l *Lexer) Line() int { return l.line }

// Next scans and returns the next non-discarded Token, or the End sentinel
// once the cursor reaches the end of input. Returns UnconsumedInputError if
// no terminal RuleSet matches at the cursor before end of input.
func (l *Lexer) Next() (Token, error) {
	for {
		if l.cursor >= len(l.src) {
			return Token{Name: grammar.End, Offset: l.cursor, Line: l.line}, nil
		}
		rs, rule, length := l.longestMatch()
		if rs == nil {
			return Token{}, newUnconsumedInputError(l.src[l.cursor:], l.line)
		}
		text := l.src[l.cursor : l.cursor+length]
		tok := Token{
			Name:      rs.Name,
			Text:      text,
			Offset:    l.cursor,
			Line:      l.line,
			Rule:      rule,
			Discarded: rule.Discard,
		}
		l.advance(text)
		if tok.Discarded {
			tracer().Debugf("skipping %q at line %d", text, tok.Line)
			continue
		}
		tracer().Debugf("token %s %q at line %d", tok.Name, text, tok.Line)
		return tok, nil
	}
}

// longestMatch tries every terminal RuleSet at the cursor, in declaration
// order, and returns the one with the longest match (first-declared wins
// ties).
func (l *Lexer) longestMatch() (*grammar.RuleSet, *grammar.Rule, int) {
	var bestSet *grammar.RuleSet
	var bestRule *grammar.Rule
	bestLen := -1
	rest := l.src[l.cursor:]
	for _, rs := range l.g.RuleSets() {
		if !rs.IsTerminal() {
			continue
		}
		rule := rs.Terminal()
		comp := rule.Components[0]
		var n int
		switch comp.Kind {
		case grammar.CompLiteral:
			if strings.HasPrefix(rest, comp.Literal) {
				n = len(comp.Literal)
			} else {
				continue
			}
		case grammar.CompRegex:
			m := comp.Pattern.FindString(rest)
			n = len(m)
		default:
			continue
		}
		// A zero-length match never advances the cursor: accepting one as
		// the winning candidate would hand the driver the same token
		// forever. Terminals must consume at least one byte to be usable.
		if n == 0 {
			continue
		}
		if n > bestLen {
			bestLen, bestSet, bestRule = n, rs, rule
		}
	}
	return bestSet, bestRule, bestLen
}

func (l *Lexer) advance(text string) {
	l.cursor += len(text)
	i := 0
	for i < len(text) {
		if text[i] == '\r' {
			l.line++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		} else if text[i] == '\n' {
			l.line++
		}
		i++
	}
}
