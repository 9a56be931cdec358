package scope

import "github.com/arnavsurve/minic/internal/compiler/symbols"

// --- Scope ---
type Scope struct {
	Symbols map[string]symbols.Type
	Name    string
}

func NewScope(name string) *Scope {
	return &Scope{
		Symbols: make(map[string]symbols.Type),
		Name:    name,
	}
}

// Define adds a symbol ONLY to this scope level.
// It returns false if the symbol already exists at this level.
func (s *Scope) Define(name string, t symbols.Type) bool {
	if _, exists := s.Symbols[name]; exists {
		return false
	}
	s.Symbols[name] = t
	return true
}

// --- Table ---

// Table is a stack of scopes, innermost last. The global scope at the bottom
// lives as long as the table.
type Table struct {
	scopes []*Scope
}

func NewTable() *Table {
	return &Table{scopes: []*Scope{NewScope("global")}}
}

// EnterScope pushes an empty scope.
func (t *Table) EnterScope() {
	t.EnterNamedScope("")
}

// EnterNamedScope pushes an empty scope labelled name, used in traces.
func (t *Table) EnterNamedScope(name string) {
	t.scopes = append(t.scopes, NewScope(name))
}

// ExitScope pops the innermost scope. Popping the global scope is a bug in
// the caller and panics.
func (t *Table) ExitScope() {
	if len(t.scopes) <= 1 {
		panic("scope: ExitScope called with no open scope")
	}
	t.scopes[len(t.scopes)-1] = nil
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Declare binds name in the innermost scope. It returns false if the name is
// already bound there; names from enclosing scopes may be shadowed.
func (t *Table) Declare(name string, typ symbols.Type) bool {
	return t.Current().Define(name, typ)
}

// Lookup searches for a symbol starting from the innermost scope and traversing outwards.
func (t *Table) Lookup(name string) (symbols.Type, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if typ, ok := t.scopes[i].Symbols[name]; ok {
			return typ, true
		}
	}
	return symbols.None, false
}

// LookupCurrent checks ONLY the innermost scope level.
func (t *Table) LookupCurrent(name string) (symbols.Type, bool) {
	typ, ok := t.Current().Symbols[name]
	return typ, ok
}

// Current returns the innermost scope.
func (t *Table) Current() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// Depth is the number of open scopes, counting the global one.
func (t *Table) Depth() int {
	return len(t.scopes)
}
