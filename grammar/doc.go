// Symbols, Rules and RuleSets are created during grammar construction and
// are immutable once the first parse table has been built from them.
package grammar
