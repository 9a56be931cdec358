package parser

import (
	"github.com/arnavsurve/minic/internal/compiler/scope"
	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

// SeparatorPolicy decides whether ';' must follow a statement.
type SeparatorPolicy int

const (
	// SeparatorOptional consumes a trailing ';' after any statement if present.
	SeparatorOptional SeparatorPolicy = iota
	// SeparatorRequired demands ';' after declarations, assignments, calls and
	// returns. Brace-terminated statements still accept an optional one.
	SeparatorRequired
)

type Option func(*Parser)

// WithLibrary replaces the table of externally-known functions.
func WithLibrary(lib symbols.Library) Option {
	return func(p *Parser) { p.library = lib }
}

// WithTracer installs a sink for analysis events.
func WithTracer(t Tracer) Option {
	return func(p *Parser) {
		if t != nil {
			p.tracer = t
		}
	}
}

func WithSeparatorPolicy(policy SeparatorPolicy) Option {
	return func(p *Parser) { p.separators = policy }
}

// Parser is a single analysis session over one token stream. It owns its
// symbol table and cannot be reused.
type Parser struct {
	src    token.Source
	curTok token.Token

	table   *scope.Table
	library symbols.Library
	hasMain bool

	tracer     Tracer
	separators SeparatorPolicy
	used       bool
}

func NewParser(src token.Source, opts ...Option) *Parser {
	p := &Parser{
		src:     src,
		table:   scope.NewTable(),
		library: symbols.DefaultLibrary(),
		tracer:  nopTracer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze checks the whole token stream. It returns nil when the program is
// well formed, or the first *AnalysisError encountered.
func (p *Parser) Analyze() (errRet error) {
	if p.used {
		return ErrSessionUsed
	}
	p.used = true

	defer func() {
		if e := recover(); e != nil {
			peb, ok := e.(analysisBreakOut)
			if !ok {
				panic(e)
			}
			errRet = peb.err
		}
	}()

	p.nextToken()
	p.parseProgram()
	p.tracer.Emit(Event{Kind: EventDone})
	return nil
}

// HasMain reports whether a function named main has been parsed.
func (p *Parser) HasMain() bool {
	return p.hasMain
}

// --- Token Handling ---
func (p *Parser) nextToken() {
	p.curTok = p.src.NextToken()
	p.tracer.Emit(Event{Kind: EventToken, Token: p.curTok})
}

func (p *Parser) expect(t token.TokenType) token.Token {
	if p.curTok.Type != t {
		p.fail(ErrUnexpectedToken, p.curTok, "expected %s, got %s", t, describe(p.curTok))
	}
	tok := p.curTok
	p.nextToken()
	return tok
}

func (p *Parser) curIs(types ...token.TokenType) bool {
	for _, t := range types {
		if p.curTok.Type == t {
			return true
		}
	}
	return false
}

// --- Symbols ---

// lookupType resolves a name against the symbol table, then the library.
func (p *Parser) lookupType(name string) (symbols.Type, bool) {
	if t, ok := p.table.Lookup(name); ok {
		return t, true
	}
	return p.library.Lookup(name)
}

// resolve fails with undeclared-identifier unless the identifier is declared
// or an external function. It returns the declared type, or None for names
// known only to the library.
func (p *Parser) resolve(nameTok token.Token) symbols.Type {
	t, declared := p.table.Lookup(nameTok.Literal)
	if !declared {
		if _, external := p.library.Lookup(nameTok.Literal); !external {
			p.fail(ErrUndeclaredIdentifier, nameTok, "variable or function '%s' not declared", nameTok.Literal)
		}
	}
	p.tracer.Emit(Event{Kind: EventUse, Name: nameTok.Literal, Type: t, Token: nameTok})
	return t
}

func (p *Parser) declare(nameTok token.Token, t symbols.Type, what string) {
	if !p.table.Declare(nameTok.Literal, t) {
		p.fail(ErrDuplicateDeclaration, nameTok, "%s '%s' already declared in this scope", what, nameTok.Literal)
	}
	p.tracer.Emit(Event{Kind: EventDeclare, Name: nameTok.Literal, Type: t, Token: nameTok})
}

func (p *Parser) checkAssignable(declared symbols.Type, val operand) {
	valueType := p.classify(val)
	p.tracer.Emit(Event{Kind: EventTypeCheck, Type: declared, Value: valueType, Token: val.tok})
	if !symbols.Compatible(declared, valueType) {
		p.fail(ErrTypeIncompatibility, val.tok, "incompatible types in assignment: expected %s, got %s", declared, valueType)
	}
}

// --- Program Parsing ---

func (p *Parser) parseProgram() {
	for p.curTok.Type != token.TokenEOF {
		if !p.curTok.IsTypeKeyword() {
			p.fail(ErrUnexpectedToken, p.curTok, "expected function declaration, got %s", describe(p.curTok))
		}
		p.parseFunctionDeclaration()
	}
	if !p.hasMain {
		p.fail(ErrMissingEntryPoint, p.curTok, "function main() not found")
	}
}

// parseFunctionDeclaration parses `type name(params...) { body }`
func (p *Parser) parseFunctionDeclaration() {
	returnType := p.parseTypeSpec()

	var nameTok token.Token
	if p.curTok.Type == token.TokenMain {
		p.hasMain = true
		nameTok = p.expect(token.TokenMain)
	} else {
		nameTok = p.expect(token.TokenIdent)
	}
	// Declared before the body so that the function can call itself.
	p.declare(nameTok, returnType, "function")

	p.expect(token.TokenLParen)
	p.table.EnterNamedScope(nameTok.Literal)
	p.tracer.Emit(Event{Kind: EventScopeEnter, Name: nameTok.Literal})

	p.parseParameters()
	p.expect(token.TokenRParen)
	p.parseCompoundStatement()

	p.table.ExitScope()
	p.tracer.Emit(Event{Kind: EventScopeExit, Name: nameTok.Literal})
	p.tracer.Emit(Event{Kind: EventFunction, Name: nameTok.Literal, Type: returnType, Token: nameTok})
}

func (p *Parser) parseTypeSpec() symbols.Type {
	var t symbols.Type
	switch p.curTok.Type {
	case token.TokenInt:
		t = symbols.Int
	case token.TokenFloat:
		t = symbols.Float
	case token.TokenChar:
		t = symbols.Char
	case token.TokenVoid:
		t = symbols.Void
	default:
		p.fail(ErrUnexpectedToken, p.curTok, "expected type specifier, got %s", describe(p.curTok))
	}
	p.nextToken()
	return t
}

func (p *Parser) parseParameters() {
	if p.curTok.Type == token.TokenRParen {
		return
	}
	p.parseParameter()
	for p.curTok.Type == token.TokenComma {
		p.nextToken()
		p.parseParameter()
	}
}

func (p *Parser) parseParameter() {
	paramType := p.parseTypeSpec()
	nameTok := p.expect(token.TokenIdent)
	p.declare(nameTok, paramType, "parameter")
}

// parseCompoundStatement parses `{ statement* }`. The enclosing construct owns
// the scope.
func (p *Parser) parseCompoundStatement() {
	p.expect(token.TokenLBrace)
	for !p.curIs(token.TokenRBrace, token.TokenEOF) {
		p.parseStatement()
	}
	p.expect(token.TokenRBrace)
}

// --- Statement Parsing ---

func (p *Parser) parseStatement() {
	switch p.curTok.Type {
	case token.TokenInt, token.TokenFloat, token.TokenChar:
		p.parseDeclaration()
		p.endStatement(true)
	case token.TokenIdent:
		p.parseAssignmentOrCall()
		p.endStatement(true)
	case token.TokenIf:
		p.parseIfStatement()
		p.endStatement(false)
	case token.TokenFor:
		p.parseForStatement()
		p.endStatement(false)
	case token.TokenWhile:
		p.parseWhileStatement()
		p.endStatement(false)
	case token.TokenReturn:
		p.parseReturnStatement()
		p.endStatement(true)
	default:
		p.fail(ErrUnexpectedToken, p.curTok, "invalid statement starting with %s", describe(p.curTok))
	}
}

// endStatement consumes the ';' after a statement. simple marks statements
// that do not end in a block.
func (p *Parser) endStatement(simple bool) {
	if p.curTok.Type == token.TokenSemicolon {
		p.nextToken()
		return
	}
	if simple && p.separators == SeparatorRequired {
		p.fail(ErrUnexpectedToken, p.curTok, "expected %s after statement, got %s", token.TokenSemicolon, describe(p.curTok))
	}
}

// parseDeclaration parses `type a [, b ...] [= expr]`
func (p *Parser) parseDeclaration() {
	varType := p.parseTypeSpec()
	p.declare(p.expect(token.TokenIdent), varType, "variable")
	for p.curTok.Type == token.TokenComma {
		p.nextToken()
		p.declare(p.expect(token.TokenIdent), varType, "variable")
	}

	if p.curTok.Type == token.TokenAssign {
		p.nextToken()
		p.checkAssignable(varType, p.parseExpression())
	}
}

// parseAssignmentOrCall parses the forms that begin with an identifier:
// `x`, `x = expr`, `f(args)`, `x++`, `x--`, `x + expr`, `x - expr`. It serves
// both statements and expression operands, and returns the identifier token.
func (p *Parser) parseAssignmentOrCall() token.Token {
	nameTok := p.expect(token.TokenIdent)
	varType := p.resolve(nameTok)

	switch p.curTok.Type {
	case token.TokenAssign:
		p.nextToken()
		p.checkAssignable(varType, p.parseExpression())
	case token.TokenLParen:
		p.parseCall(nameTok)
	case token.TokenPlus, token.TokenMinus:
		op := p.curTok.Type
		p.nextToken()
		if p.curTok.Type == op {
			p.nextToken()
			p.tracer.Emit(Event{Kind: EventUpdate, Name: nameTok.Literal, Type: varType, Token: nameTok})
			return nameTok
		}
		p.checkAssignable(varType, p.parseExpression())
	}
	return nameTok
}

// parseCall parses `(args...)` after an already resolved callee. Arity and
// argument types are not checked.
func (p *Parser) parseCall(nameTok token.Token) {
	p.expect(token.TokenLParen)
	if p.curTok.Type != token.TokenRParen {
		p.parseExpression()
		for p.curTok.Type == token.TokenComma {
			p.nextToken()
			p.parseExpression()
		}
	}
	p.expect(token.TokenRParen)
	p.tracer.Emit(Event{Kind: EventCall, Name: nameTok.Literal, Token: nameTok})
}

func (p *Parser) parseIfStatement() {
	p.expect(token.TokenIf)
	p.expect(token.TokenLParen)
	p.parseExpression()
	p.expect(token.TokenRParen)
	p.parseCompoundStatement()

	if p.curTok.Type == token.TokenElse {
		p.nextToken()
		p.parseCompoundStatement()
	}
}

// parseForStatement parses `for (init; cond; update) { body }`. All three
// clauses are mandatory; init declarations land in the enclosing function scope.
func (p *Parser) parseForStatement() {
	p.expect(token.TokenFor)
	p.expect(token.TokenLParen)

	if p.curIs(token.TokenInt, token.TokenFloat, token.TokenChar) {
		p.parseDeclaration()
	} else {
		p.parseAssignmentOrCall()
	}
	p.expect(token.TokenSemicolon)
	p.parseExpression()
	p.expect(token.TokenSemicolon)
	p.parseAssignmentOrCall()
	p.expect(token.TokenRParen)

	p.parseCompoundStatement()
}

func (p *Parser) parseWhileStatement() {
	p.expect(token.TokenWhile)
	p.expect(token.TokenLParen)
	p.parseExpression()
	p.expect(token.TokenRParen)
	p.parseCompoundStatement()
}

func (p *Parser) parseReturnStatement() {
	p.expect(token.TokenReturn)
	if p.curTok.Type != token.TokenSemicolon {
		p.parseExpression()
	}
}
