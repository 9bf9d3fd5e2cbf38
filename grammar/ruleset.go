package grammar

// RuleSet is the bag of productions (alternatives) sharing one name. Order
// is declaration order: the lexer tries terminal RuleSets in this order on
// match-length ties, and it is the reduce/reduce tie-break order named in
// GrammarError messages.
type RuleSet struct {
	Name  Symbol
	Rules []*Rule
}

// IsTerminal reports whether this RuleSet has exactly one Rule and that Rule
// is terminal.
func (rs *RuleSet) IsTerminal() bool {
	return len(rs.Rules) == 1 && rs.Rules[0].IsTerminal()
}

// Terminal returns the RuleSet's single terminal Rule. Callers must check
// IsTerminal first.
func (rs *RuleSet) Terminal() *Rule { return rs.Rules[0] }
