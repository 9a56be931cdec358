package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/arnavsurve/minic/internal/compiler/lexer"
	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

// --- Test Helper Functions ---

func analyze(input string, opts ...Option) error {
	p := NewParser(lexer.NewLexer(input), opts...)
	return p.Analyze()
}

// checkAnalysisOK fails the test if the analysis produced a diagnostic.
func checkAnalysisOK(t *testing.T, input string, opts ...Option) {
	t.Helper()
	if err := analyze(input, opts...); err != nil {
		t.Fatalf("unexpected analysis error: %v\ninput:\n%s", err, input)
	}
}

// checkAnalysisError fails the test unless the analysis stopped with kind,
// and returns the diagnostic for further inspection.
func checkAnalysisError(t *testing.T, input string, kind ErrorKind, opts ...Option) *AnalysisError {
	t.Helper()
	err := analyze(input, opts...)
	if err == nil {
		t.Fatalf("expected %s error, analysis succeeded\ninput:\n%s", kind, input)
	}
	var aerr *AnalysisError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *AnalysisError, got %T: %v", err, err)
	}
	if aerr.Kind != kind {
		t.Fatalf("expected %s error, got %s: %v", kind, aerr.Kind, aerr)
	}
	return aerr
}

// --- Scenarios ---

func TestScenarios(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr ErrorKind // zero means success
		errTok  string
	}{
		{"A declaration and return", `int main(){ int x; return 0; }`, 0, ""},
		{"B no main", `int foo(){ return 0; }`, ErrMissingEntryPoint, ""},
		{"C duplicate local", `int main(){ int x; int x; return 0; }`, ErrDuplicateDeclaration, "x"},
		{"D float into int", `int main(){ int x; x = 3.5; return 0; }`, ErrTypeIncompatibility, "3.5"},
		{"E int widens into float", `int main(){ float z; z = 5; return 0; }`, 0, ""},
		{"F undeclared assignment", `int main(){ y = 1; return 0; }`, ErrUndeclaredIdentifier, "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == 0 {
				checkAnalysisOK(t, tt.input)
				return
			}
			aerr := checkAnalysisError(t, tt.input, tt.wantErr)
			if tt.errTok != "" && aerr.Token.Literal != tt.errTok {
				t.Errorf("error token expected=%q, got=%q", tt.errTok, aerr.Token.Literal)
			}
		})
	}
}

func TestDuplicateReportsSecondDeclaration(t *testing.T) {
	aerr := checkAnalysisError(t, "int main() {\n  int x;\n  int x;\n}", ErrDuplicateDeclaration)
	if aerr.Token.Line != 3 {
		t.Errorf("expected duplicate on line 3, got line %d", aerr.Token.Line)
	}
	if !strings.Contains(aerr.Error(), "3:7: Semantic Error:") {
		t.Errorf("unexpected error text %q", aerr.Error())
	}
}

func TestSampleProgram(t *testing.T) {
	input := `
int main() {
    int x, y;
    float z;
    x = 5;
    y = 10;
    z = 3.14;

    if (x < y && z > 3.0) {
        printf("Hello, world!");
        x++;
    } else {
        y--;
    }

    for (int i = 0; i < 10; i++) {
        x = x + i;
    }

    while (x < 100) {
        x = x + 1;
    }

    return 0;
}
`
	checkAnalysisOK(t, input)
}

// --- Entry point ---

func TestMissingMainIndependentOfBodies(t *testing.T) {
	inputs := []string{
		``,
		`void helper() { }`,
		`int a() { int x; x = 1; } float b(float f) { return f; }`,
		`int mainly() { return 0; }`,
	}
	for _, input := range inputs {
		checkAnalysisError(t, input, ErrMissingEntryPoint)
	}
}

func TestHasMainSetOnlyForMain(t *testing.T) {
	p := NewParser(lexer.NewLexer(`int helper() { } void main() { helper(); }`))
	if p.HasMain() {
		t.Fatalf("HasMain true before analysis")
	}
	if err := p.Analyze(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.HasMain() {
		t.Errorf("HasMain false after parsing main")
	}
}

func TestSessionNotReusable(t *testing.T) {
	p := NewParser(lexer.NewLexer(`int main() { }`))
	if err := p.Analyze(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Analyze(); !errors.Is(err, ErrSessionUsed) {
		t.Errorf("expected ErrSessionUsed, got %v", err)
	}
}

// --- Declarations and scopes ---

func TestDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr ErrorKind
	}{
		{"multiple names", `int main() { int a, b, c; a = 1; b = 2; c = 3; }`, 0},
		{"initializer", `int main() { float f = 2; char c = 'x'; }`, 0},
		{"duplicate in list", `int main() { int a, b, a; }`, ErrDuplicateDeclaration},
		{"duplicate parameter", `int f(int a, float a) { } int main() { }`, ErrDuplicateDeclaration},
		{"local shadows parameter scope mate", `int f(int a) { int a; } int main() { }`, ErrDuplicateDeclaration},
		{"local shadows global function", `int f() { } int main() { int f; f = 2; }`, 0},
		{"duplicate function", `int f() { } float f() { } int main() { }`, ErrDuplicateDeclaration},
		{"locals do not leak", `int f() { int hidden; } int main() { hidden = 1; }`, ErrUndeclaredIdentifier},
		{"same local in two functions", `int f() { int x; } int main() { int x; x = 1; }`, 0},
		{"initializer float into int", `int main() { int a = 1.5; }`, ErrTypeIncompatibility},
		{"initializer int into char", `int main() { char c = 65; }`, ErrTypeIncompatibility},
		{"initializer string", `int main() { char c = "x"; }`, ErrTypeIncompatibility},
		{"void local", `int main() { void v; }`, ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == 0 {
				checkAnalysisOK(t, tt.input)
				return
			}
			checkAnalysisError(t, tt.input, tt.wantErr)
		})
	}
}

func TestForInitDeclaresInFunctionScope(t *testing.T) {
	checkAnalysisOK(t, `int main() { for (int i = 0; i < 3; i++) { } i = 4; }`)
	checkAnalysisError(t, `int main() { for (int i = 0; i < 3; i++) { } for (int i = 0; i < 3; i++) { } }`, ErrDuplicateDeclaration)
}

// --- Identifiers and calls ---

func TestCalls(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr ErrorKind
	}{
		{"library call", `int main() { printf("%d", 1, 2); scanf("%d"); exit(0); }`, 0},
		{"user function", `int sq(int n) { return n * n; } int main() { int r; r = sq(4); }`, 0},
		{"recursion", `int fact(int n) { if (n <= 1) { return 1; } return n * fact(n - 1); } int main() { }`, 0},
		{"call before definition", `int main() { later(); } int later() { }`, ErrUndeclaredIdentifier},
		{"unknown callee", `int main() { puts("x"); }`, ErrUndeclaredIdentifier},
		{"unknown operand", `int main() { int a; a = b + 1; }`, ErrUndeclaredIdentifier},
		{"unknown argument", `int main() { printf(nope); }`, ErrUndeclaredIdentifier},
		{"empty argument list", `int main() { free(); }`, 0},
		{"unclosed call", `int main() { printf("x"; }`, ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == 0 {
				checkAnalysisOK(t, tt.input)
				return
			}
			checkAnalysisError(t, tt.input, tt.wantErr)
		})
	}
}

func TestCustomLibrary(t *testing.T) {
	lib := symbols.Library{"puts": symbols.Int}
	checkAnalysisOK(t, `int main() { puts("x"); }`, WithLibrary(lib))
	checkAnalysisError(t, `int main() { printf("x"); }`, ErrUndeclaredIdentifier, WithLibrary(lib))
}

func TestUpdates(t *testing.T) {
	checkAnalysisOK(t, `int main() { int i; i++; i--; i + 2; i - 1; }`)
	checkAnalysisOK(t, `int main() { float f; f + 1; }`)
	checkAnalysisError(t, `int main() { int i; i + 2.5; }`, ErrTypeIncompatibility)
	checkAnalysisError(t, `int main() { printf = 1; }`, ErrTypeIncompatibility)
}

// --- Expressions and types ---

func TestExpressionTypes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr ErrorKind
	}{
		{"leftmost operand decides", `int main() { int a; a = 1 + 2.5; }`, 0},
		{"leftmost float rejected", `int main() { int a; a = 2.5 + 1; }`, ErrTypeIncompatibility},
		{"parenthesized", `int main() { int a; a = (3.5); }`, ErrTypeIncompatibility},
		{"unary minus", `int main() { float f; f = -2; }`, 0},
		{"not", `int main() { int a, b; a = !b; }`, 0},
		{"variable to variable", `int main() { int a; float f; f = a; }`, 0},
		{"float variable into int", `int main() { int a; float f; a = f; }`, ErrTypeIncompatibility},
		{"char into char", `int main() { char c, d; c = 'a'; d = c; }`, 0},
		{"call result", `float half(float x) { return x / 2; } int main() { int a; a = half(3); }`, ErrTypeIncompatibility},
		{"library call result", `int main() { int n; n = printf("x"); }`, 0},
		{"void call result", `int main() { int n; n = free(); }`, ErrTypeIncompatibility},
		{"logical chain", `int main() { int a, b; if (a < b && b >= 1 || !a) { } while (a != b) { a = a + 1; } }`, 0},
		{"increment operand", `int main() { int a, i; a = i++; }`, 0},
		{"chained assignment", `int main() { int a, b; a = b = 1; }`, 0},
		{"chained assignment checks inner", `int main() { int a; float f; a = f = 2; }`, ErrTypeIncompatibility},
		{"operand update checks operand", `int main() { int a, b; a = b + 2.5; }`, ErrTypeIncompatibility},
		{"operand update float into int", `int main() { int a; float f; a = a + f; }`, ErrTypeIncompatibility},
		{"operand update int into float", `int main() { float f; int a; f = f + a; }`, 0},
		{"call operand then operator", `int one() { return 1; } int main() { int a; a = one() + 2; }`, 0},
		{"power not supported", `int main() { int a; a = 2 ** 3; }`, ErrUnexpectedToken},
		{"invalid factor", `int main() { int a; a = ; }`, ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == 0 {
				checkAnalysisOK(t, tt.input)
				return
			}
			checkAnalysisError(t, tt.input, tt.wantErr)
		})
	}
}

// --- Grammar ---

func TestGrammarErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"braceless if", `int main() { int a; if (a) a = 1; }`},
		{"empty for clause", `int main() { int i; for (; i < 1; i++) { } }`},
		{"missing paren", `int main( { }`},
		{"top level statement", `int x; int main() { }`},
		{"top level junk", `x = 1;`},
		{"unterminated body", `int main() { int a;`},
		{"else without braces", `int main() { int a; if (a) { } else a = 2; }`},
		{"illegal character", `int main() { int a; a = 1 @ 2; }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkAnalysisError(t, tt.input, ErrUnexpectedToken)
		})
	}
}

func TestFirstFaultWins(t *testing.T) {
	// undeclared y comes before the duplicate x and the missing main
	input := `int helper() { y = 1; int x; int x; }`
	aerr := checkAnalysisError(t, input, ErrUndeclaredIdentifier)
	if aerr.Token.Literal != "y" {
		t.Errorf("expected fault on 'y', got %q", aerr.Token.Literal)
	}

	for i := 0; i < 3; i++ {
		again := checkAnalysisError(t, input, ErrUndeclaredIdentifier)
		if again.Error() != aerr.Error() {
			t.Errorf("non-deterministic diagnostic: %q vs %q", again.Error(), aerr.Error())
		}
	}
}

func TestSeparatorPolicy(t *testing.T) {
	loose := `int main() { int a a = 1 if (a) { } ; return a }`
	checkAnalysisOK(t, loose)
	checkAnalysisError(t, loose, ErrUnexpectedToken, WithSeparatorPolicy(SeparatorRequired))

	strict := `int main() { int a; a = 1; if (a) { a++; } while (a) { a--; }; return a; }`
	checkAnalysisOK(t, strict, WithSeparatorPolicy(SeparatorRequired))
}

func TestReturnForms(t *testing.T) {
	checkAnalysisOK(t, `void main() { return; }`)
	checkAnalysisError(t, `int main() { int a; return }`, ErrUnexpectedToken)
	checkAnalysisOK(t, `int main() { return (1 + 2) * 3; }`)
}

// --- Token sources ---

func TestSliceSource(t *testing.T) {
	toks := []token.Token{
		{Type: token.TokenInt, Literal: "int", Line: 1, Column: 1},
		{Type: token.TokenMain, Literal: "main", Line: 1, Column: 5},
		{Type: token.TokenLParen, Literal: "(", Line: 1, Column: 9},
		{Type: token.TokenRParen, Literal: ")", Line: 1, Column: 10},
		{Type: token.TokenLBrace, Literal: "{", Line: 1, Column: 12},
		{Type: token.TokenFloat, Literal: "float", Line: 1, Column: 14},
		{Type: token.TokenIdent, Literal: "z", Line: 1, Column: 20},
		{Type: token.TokenSemicolon, Literal: ";", Line: 1, Column: 21},
		{Type: token.TokenIdent, Literal: "z", Line: 1, Column: 23},
		{Type: token.TokenAssign, Literal: "=", Line: 1, Column: 25},
		{Type: token.TokenInteger, Literal: "5", Line: 1, Column: 27},
		{Type: token.TokenRBrace, Literal: "}", Line: 1, Column: 29},
	}
	p := NewParser(token.NewSliceSource(toks))
	if err := p.Analyze(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Tracing ---

func TestTracerEvents(t *testing.T) {
	var events []Event
	tracer := TracerFunc(func(e Event) {
		if e.Kind != EventToken {
			events = append(events, e)
		}
	})

	checkAnalysisOK(t, `int main() { float z; z = 5; printf("x"); }`, WithTracer(tracer))

	want := []EventKind{
		EventDeclare,    // main
		EventScopeEnter, // main
		EventDeclare,    // z
		EventUse,        // z
		EventTypeCheck,  // float <- int
		EventUse,        // printf
		EventCall,       // printf
		EventScopeExit,  // main
		EventFunction,   // main
		EventDone,
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(events), events)
	}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Errorf("event %d expected kind %d, got %d (%s)", i, kind, events[i].Kind, events[i])
		}
	}
	if tc := events[4]; tc.Type != symbols.Float || tc.Value != symbols.Int {
		t.Errorf("type check event expected float <- int, got %s", tc)
	}
}

func TestWriterTracer(t *testing.T) {
	var b strings.Builder
	checkAnalysisOK(t, `int main() { }`, WithTracer(NewWriterTracer(&b, false)))
	out := b.String()
	if !strings.Contains(out, "trace: function 'main' returns int") {
		t.Errorf("missing function trace in %q", out)
	}
	if strings.Contains(out, "trace: token") {
		t.Errorf("token events should be filtered: %q", out)
	}
	if !strings.HasSuffix(out, "trace: analysis completed\n") {
		t.Errorf("expected completion trace last, got %q", out)
	}
}

func TestIsKind(t *testing.T) {
	err := analyze(`int foo() { }`)
	if !IsKind(err, ErrMissingEntryPoint) {
		t.Errorf("IsKind(%v, missing-entry-point) = false", err)
	}
	if IsKind(err, ErrTypeIncompatibility) {
		t.Errorf("IsKind matched wrong kind")
	}
	if IsKind(errors.New("plain"), ErrMissingEntryPoint) {
		t.Errorf("IsKind matched non-analysis error")
	}
}
