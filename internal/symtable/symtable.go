// Package symtable is the compiler's scoped identifier -> symbol mapping:
// a flat, ordered symbol list plus a stack of scope-boundary indices, so
// closing a scope is a single truncation and lookup naturally finds the
// innermost binding first.
package symtable

import (
	"github.com/octo-lang/octoc/internal/source"
	"github.com/octo-lang/octoc/internal/types"
)

// Symbol binds an identifier to a Type. IsType distinguishes a type binding
// (introduced by `type NAME = ...`) from a value binding (variable,
// function, parameter); the analyzer uses this to reject "cannot use type
// as value" and its mirror image.
type Symbol struct {
	Name   string
	Pos    source.Position
	Type   types.Type
	IsType bool
}

// Table is an ordered sequence of Symbol plus a stack of indices marking
// scope boundaries. Push/pop is a group operation: push-scope records
// len(symbols); pop-scope truncates back to it, so the table after a
// balanced pair is indistinguishable from the table before it.
type Table struct {
	symbols []Symbol
	scopes  []int
}

// New creates an empty table with no scope pushed (Depth is 0). The top
// level needs none: with no boundary recorded, redeclaration checks cover
// the whole table. Callers push scopes for function bodies, blocks, and
// for-loop iterators.
func New() *Table {
	return &Table{}
}

// PushScope opens a new scope, recording the current symbol count as its
// boundary.
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, len(t.symbols))
}

// PopScope closes the innermost scope, discarding every symbol declared
// since the matching PushScope. Popping with no open scope is a
// programmer error and panics.
func (t *Table) PopScope() {
	n := len(t.scopes)
	if n == 0 {
		panic("symtable: PopScope with no open scope")
	}
	boundary := t.scopes[n-1]
	t.scopes = t.scopes[:n-1]
	t.symbols = t.symbols[:boundary]
}

// scopeStart returns the index of the first symbol declared in the
// innermost open scope, or 0 if no scope has been pushed (top level).
func (t *Table) scopeStart() int {
	if len(t.scopes) == 0 {
		return 0
	}
	return t.scopes[len(t.scopes)-1]
}

// Declare appends sym to the table. If an existing symbol with the same
// name was declared at or after the innermost scope boundary, Declare
// refuses and returns that symbol (so the caller can build a
// symbol-redeclaration diagnostic pointing at the original); a match
// declared in an outer scope is a legal shadow and does not block the new
// declaration.
func (t *Table) Declare(sym Symbol) (conflict *Symbol, ok bool) {
	start := t.scopeStart()
	for i := len(t.symbols) - 1; i >= start; i-- {
		if t.symbols[i].Name == sym.Name {
			existing := t.symbols[i]
			return &existing, false
		}
	}
	t.symbols = append(t.symbols, sym)
	return nil, true
}

// Lookup searches backward from the most recently declared symbol so the
// innermost binding always wins.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.symbols) - 1; i >= 0; i-- {
		if t.symbols[i].Name == name {
			sym := t.symbols[i]
			return &sym, true
		}
	}
	return nil, false
}

// Depth reports how many scopes are currently open.
func (t *Table) Depth() int { return len(t.scopes) }
