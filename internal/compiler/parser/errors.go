package parser

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/minic/internal/compiler/token"
)

// ErrorKind tags the category of an AnalysisError.
type ErrorKind int

const (
	_ ErrorKind = iota
	ErrUnexpectedToken
	ErrMissingEntryPoint
	ErrDuplicateDeclaration
	ErrUndeclaredIdentifier
	ErrTypeIncompatibility
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected-token"
	case ErrMissingEntryPoint:
		return "missing-entry-point"
	case ErrDuplicateDeclaration:
		return "duplicate-declaration"
	case ErrUndeclaredIdentifier:
		return "undeclared-identifier"
	case ErrTypeIncompatibility:
		return "type-incompatibility"
	default:
		return "unknown"
	}
}

// ErrSessionUsed is returned when Analyze is called a second time on the same
// Parser.
var ErrSessionUsed = errors.New("parser: analysis session already used")

// AnalysisError is the single fatal diagnostic produced by an analysis.
type AnalysisError struct {
	Kind  ErrorKind
	Msg   string
	Token token.Token
}

func (e *AnalysisError) Error() string {
	category := "Semantic Error"
	if e.Kind == ErrUnexpectedToken {
		category = "Syntax Error"
	}
	if e.Token.Line == 0 {
		return fmt.Sprintf("%s: %s", category, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Token.Line, e.Token.Column, category, e.Msg)
}

// IsKind reports whether err is an AnalysisError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var aerr *AnalysisError
	return errors.As(err, &aerr) && aerr.Kind == kind
}

// analysisBreakOut unwinds the recursive descent back to Analyze.
type analysisBreakOut struct {
	err *AnalysisError
}

func (p *Parser) fail(kind ErrorKind, tok token.Token, format string, args ...any) {
	panic(analysisBreakOut{&AnalysisError{
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
		Token: tok,
	}})
}

func describe(tok token.Token) string {
	if tok.Type == token.TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s ('%s')", tok.Type, tok.Literal)
}
