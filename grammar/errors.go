package grammar

import "fmt"

// grammarError is raised at grammar-construction or table-construction time:
// developer errors that are never retried. Pattern grounded on
// dekarrin-tunaq/internal/tqerrors's interpreterError: an unexported struct
// implementing Error()/Unwrap(), built through public constructors.
type grammarError struct {
	msg  string
	wrap error
}

func (e *grammarError) Error() string { return e.msg }
func (e *grammarError) Unwrap() error { return e.wrap }

// GrammarError is the public error type. Use errors.As to recover one from
// an error chain.
type GrammarError = grammarError

// NewGrammarError builds a GrammarError from a formatted message.
func NewGrammarError(format string, args ...any) error {
	return &grammarError{msg: fmt.Sprintf(format, args...)}
}

// WrapGrammarError builds a GrammarError that wraps an underlying cause.
func WrapGrammarError(cause error, format string, args ...any) error {
	return &grammarError{msg: fmt.Sprintf(format, args...), wrap: cause}
}

// ReduceReduceError reports two rules that both complete at the same table
// state, naming both in the canonical "<name> := [<components>]" form.
func ReduceReduceError(a, b *Rule) error {
	return NewGrammarError("reduce/reduce conflict: %s conflicts with %s", a, b)
}

// ActionError is the panic value a terminal's As(fn) action raises when fn
// fails during a parse (as opposed to during grammar construction, where
// Grammar.fail/Err already applies). Unlike grammarError it is exported
// directly rather than hidden behind a type alias: the driver must recover
// and type-assert it, across a package boundary, to tell a genuine action
// failure apart from an unrelated panic it must let through.
type ActionError struct {
	Err error
}

func (e ActionError) Error() string { return e.Err.Error() }
func (e ActionError) Unwrap() error { return e.Err }
