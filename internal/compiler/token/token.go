package token

import "fmt"

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACES"   // {
	TokenRBrace    TokenType = "RBRACES"   // }
	TokenAssign    TokenType = "EQUALS"    // =
	TokenPlus      TokenType = "PLUS"      // +
	TokenMinus     TokenType = "MINUS"     // -
	TokenAsterisk  TokenType = "TIMES"     // *
	TokenSlash     TokenType = "DIVIDE"    // /
	TokenComma     TokenType = "COMMA"     // ,
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenLT        TokenType = "LT"        // <
	TokenGT        TokenType = "GT"        // >
	TokenNot       TokenType = "NOT"       // !

	// Two character tokens
	TokenPower TokenType = "POWER" // **
	TokenLE    TokenType = "LE"    // <=
	TokenGE    TokenType = "GE"    // >=
	TokenEQ    TokenType = "EQ"    // ==
	TokenNE    TokenType = "NE"    // !=
	TokenAnd   TokenType = "AND"   // &&
	TokenOr    TokenType = "OR"    // ||

	// Keywords
	TokenIf     TokenType = "IF"     // if
	TokenElse   TokenType = "ELSE"   // else
	TokenFor    TokenType = "FOR"    // for
	TokenWhile  TokenType = "WHILE"  // while
	TokenInt    TokenType = "INT"    // int
	TokenFloat  TokenType = "FLOAT"  // float
	TokenChar   TokenType = "CHAR"   // char
	TokenVoid   TokenType = "VOID"   // void
	TokenMain   TokenType = "MAIN"   // main
	TokenReturn TokenType = "RETURN" // return

	// Literals & Identifiers
	TokenInteger   TokenType = "INTEGER" // 43
	TokenReal      TokenType = "REAL"    // 3.14
	TokenCharConst TokenType = "CHARLIT" // 'a' (literal keeps its quotes)
	TokenString    TokenType = "STRING"  // "..." (literal keeps its quotes)
	TokenIdent     TokenType = "ID"      // Identifier (e.g. variable name)

	// Special
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Literal, t.Line, t.Column)
}

// IsTypeKeyword reports whether t names one of the scalar types.
func (t Token) IsTypeKeyword() bool {
	switch t.Type {
	case TokenInt, TokenFloat, TokenChar, TokenVoid:
		return true
	}
	return false
}

// Source produces tokens one at a time. Once exhausted it keeps returning an
// EOF token.
type Source interface {
	NextToken() Token
}

// SliceSource replays a fixed slice of tokens.
type SliceSource struct {
	toks []Token
	pos  int
}

func NewSliceSource(toks []Token) *SliceSource {
	return &SliceSource{toks: toks}
}

func (s *SliceSource) NextToken() Token {
	if s.pos >= len(s.toks) {
		line := 0
		if n := len(s.toks); n > 0 {
			line = s.toks[n-1].Line
		}
		return Token{Type: TokenEOF, Line: line}
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok
}
