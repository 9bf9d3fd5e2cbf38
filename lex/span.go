package lex

import "fmt"

// Span captures a range of byte offsets in the source a Token (or, in an
// error report, an excerpt) covers: a start position and the position just
// behind its end.
type Span [2]int

// From returns the start offset of a span.
func (s Span) From() int { return s[0] }

// To returns the end offset of a span.
func (s Span) To() int { return s[1] }

// Len returns the length of the span.
func (s Span) Len() int { return s[1] - s[0] }

// IsNull reports whether the span is the zero value.
func (s Span) IsNull() bool { return s == Span{} }

// Extend grows s to also cover other, if other falls outside s's bounds.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// Span returns the byte range the token covers in its source.
func (t Token) Span() Span {
	return Span{t.Offset, t.Offset + len(t.Text)}
}
