package scope

import (
	"testing"

	"github.com/arnavsurve/minic/internal/compiler/symbols"
)

func TestDeclareSameScope(t *testing.T) {
	table := NewTable()
	table.EnterScope()

	if !table.Declare("n", symbols.Int) {
		t.Fatalf("first Declare(n) returned false")
	}
	if table.Declare("n", symbols.Float) {
		t.Fatalf("second Declare(n) in the same scope returned true")
	}
	if typ, _ := table.Lookup("n"); typ != symbols.Int {
		t.Errorf("failed redeclaration overwrote binding: got %s", typ)
	}

	table.ExitScope()
	table.EnterScope()
	if !table.Declare("n", symbols.Char) {
		t.Errorf("Declare(n) in a fresh scope returned false")
	}
}

func TestLookupInnermostWins(t *testing.T) {
	table := NewTable()
	table.Declare("n", symbols.Int)
	table.EnterScope()
	if !table.Declare("n", symbols.Float) {
		t.Fatalf("shadowing declaration rejected")
	}

	typ, ok := table.Lookup("n")
	if !ok || typ != symbols.Float {
		t.Errorf("Lookup(n) expected float, got %s (found=%v)", typ, ok)
	}

	table.ExitScope()
	typ, ok = table.Lookup("n")
	if !ok || typ != symbols.Int {
		t.Errorf("Lookup(n) after ExitScope expected int, got %s (found=%v)", typ, ok)
	}
}

func TestLookupNeverSeesPoppedScope(t *testing.T) {
	table := NewTable()
	table.EnterScope()
	table.Declare("local", symbols.Char)
	table.ExitScope()

	if _, ok := table.Lookup("local"); ok {
		t.Errorf("Lookup found a name from a popped scope")
	}
}

func TestLookupCurrent(t *testing.T) {
	table := NewTable()
	table.Declare("g", symbols.Int)
	table.EnterNamedScope("f")

	if _, ok := table.LookupCurrent("g"); ok {
		t.Errorf("LookupCurrent saw the enclosing scope")
	}
	if _, ok := table.Lookup("g"); !ok {
		t.Errorf("Lookup missed the enclosing scope")
	}
	if name := table.Current().Name; name != "f" {
		t.Errorf("Current().Name expected=%q, got=%q", "f", name)
	}
	if d := table.Depth(); d != 2 {
		t.Errorf("Depth expected=2, got=%d", d)
	}
}

func TestExitGlobalScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("ExitScope on the global scope did not panic")
		}
	}()
	NewTable().ExitScope()
}
