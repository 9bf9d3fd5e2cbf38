/*
Package gram is a runtime-synthesized shift/reduce parsing library.

Unlike yacc-style tools, gram never generates a parser offline: a Grammar is
assembled at runtime through a fluent DSL, and its parse table is built the
first time a parse is requested, then memoized for every later call.
Package structure is as follows:

■ grammar: Package grammar implements the in-memory grammar model —
Symbols, Rules, RuleSets — and the construction DSL.

■ lex: Package lex implements the longest-match lexer the driver pulls
tokens from.

■ table: Package table synthesizes the shift/reduce parse table from a
Grammar, resolving shift/reduce conflicts and reporting reduce/reduce
conflicts as grammar errors.

■ parse: Package parse drives a shift/reduce parse against a table.Table
and formats syntax errors with a caret-marked source excerpt.

The root package ties these together into the public Grammar/Parse API:

	g := gram.New("arith")
	g.Term("int", `[0-9]+`).As(toInt)
	g.Literal("+", "+").Prec(1).Assoc(gram.Left)
	g.Rule("expr").Add(gram.Symbol("int")).AsValue()
	g.Rule("expr").Add(gram.Symbol("expr"), gram.Symbol("+"), gram.Symbol("expr")).As(sum)
	g.Start("expr")
	result, err := g.Parse("1+2+3")

*/
package gram
