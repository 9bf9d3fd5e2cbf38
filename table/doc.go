// Package table synthesizes and represents the shift/reduce parse table
// used by package parse. The table is built once per Grammar, by recursive
// expansion from a single augmented root state — never an offline
// generator, and never cached across distinct Grammar values.
package table
