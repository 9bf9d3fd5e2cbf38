package parse

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gram/grammar"
)

// parseError is raised by the driver when no action exists for (state,
// lookahead), or when a NonAssocError action is dispatched. Pattern
// grounded on grammar.grammarError / lex.unconsumedInputError: an
// unexported struct behind a public alias, recoverable via errors.As.
type parseError struct {
	Expected []grammar.Symbol
	Received grammar.Symbol
	Line     int
	excerpt  string
}

func (e *parseError) Error() string {
	want := "nothing"
	if len(e.Expected) > 0 {
		parts := make([]string, len(e.Expected))
		for i, s := range e.Expected {
			parts[i] = string(s)
		}
		want = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("line %d: syntax error: expected %s, got %q\n%s", e.Line, want, e.Received, e.excerpt)
}

func (e *parseError) Unwrap() error { return nil }

// ParseError is the public alias, recoverable via errors.As.
type ParseError = parseError

func newParseError(expected []grammar.Symbol, received grammar.Symbol, line int, excerpt string) error {
	return &parseError{Expected: expected, Received: received, Line: line, excerpt: excerpt}
}
