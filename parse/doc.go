// Package parse drives a shift/reduce parse against a table.Table and
// formats the resulting syntax errors with a caret-marked source excerpt.
package parse
