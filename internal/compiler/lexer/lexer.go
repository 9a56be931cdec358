package lexer

import "github.com/arnavsurve/minic/internal/compiler/token"

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances the lexer's position and updates the current character
// It handles EOF and tracks line/column numbers correctly
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NULL (EOF)
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else if l.ch != 0 {
		l.column++
	}
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// Tokens drains the lexer, including the trailing EOF token.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine := l.line
	startCol := l.column

	switch l.ch {
	case '/':
		switch l.peekChar() {
		case '/':
			l.readChar()
			l.readComment()
			return l.NextToken()
		case '*':
			l.readChar()
			l.readBlockComment()
			return l.NextToken()
		}
		return l.single(token.TokenSlash, startLine, startCol)
	case '*':
		if l.peekChar() == '*' {
			return l.double(token.TokenPower, startLine, startCol)
		}
		return l.single(token.TokenAsterisk, startLine, startCol)
	case '=':
		if l.peekChar() == '=' {
			return l.double(token.TokenEQ, startLine, startCol)
		}
		return l.single(token.TokenAssign, startLine, startCol)
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.TokenNE, startLine, startCol)
		}
		return l.single(token.TokenNot, startLine, startCol)
	case '<':
		if l.peekChar() == '=' {
			return l.double(token.TokenLE, startLine, startCol)
		}
		return l.single(token.TokenLT, startLine, startCol)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.TokenGE, startLine, startCol)
		}
		return l.single(token.TokenGT, startLine, startCol)
	case '&':
		if l.peekChar() == '&' {
			return l.double(token.TokenAnd, startLine, startCol)
		}
		return l.single(token.TokenIllegal, startLine, startCol)
	case '|':
		if l.peekChar() == '|' {
			return l.double(token.TokenOr, startLine, startCol)
		}
		return l.single(token.TokenIllegal, startLine, startCol)
	case '(':
		return l.single(token.TokenLParen, startLine, startCol)
	case ')':
		return l.single(token.TokenRParen, startLine, startCol)
	case '{':
		return l.single(token.TokenLBrace, startLine, startCol)
	case '}':
		return l.single(token.TokenRBrace, startLine, startCol)
	case '+':
		// "++" stays two PLUS tokens; the parser recognises increments.
		return l.single(token.TokenPlus, startLine, startCol)
	case '-':
		return l.single(token.TokenMinus, startLine, startCol)
	case ',':
		return l.single(token.TokenComma, startLine, startCol)
	case ';':
		return l.single(token.TokenSemicolon, startLine, startCol)
	case '"':
		return l.readQuoted('"', token.TokenString, startLine, startCol)
	case '\'':
		return l.readQuoted('\'', token.TokenCharConst, startLine, startCol)
	case 0:
		// EOF
		// Do NOT call l.readChar() here
		return token.Token{Type: token.TokenEOF, Literal: "", Line: startLine, Column: startCol}
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return l.newToken(lookupIdent(ident), ident, startLine, startCol)
		} else if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return l.readNumber(startLine, startCol)
		}
		return l.single(token.TokenIllegal, startLine, startCol)
	}
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) single(tokenType token.TokenType, line, col int) token.Token {
	tok := l.newToken(tokenType, string(l.ch), line, col)
	l.readChar()
	return tok
}

func (l *Lexer) double(tokenType token.TokenType, line, col int) token.Token {
	start := l.position
	l.readChar()
	l.readChar()
	return l.newToken(tokenType, l.input[start:l.position], line, col)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readBlockComment() {
	l.readChar() // Consume the opening '*'

	for {
		if l.ch == 0 {
			// Unterminated block comment runs to EOF
			return
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // Consume '*'
			l.readChar() // Consume '/'
			return
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readQuoted reads a string or char literal. The literal keeps its quotes so
// that its text never classifies as a number.
func (l *Lexer) readQuoted(quote byte, tokenType token.TokenType, startLine, startCol int) token.Token {
	start := l.position
	l.readChar() // Consume opening quote

	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		l.readChar()
	}

	if l.ch != quote {
		return token.Token{Type: token.TokenIllegal, Literal: l.input[start:l.position], Line: startLine, Column: startCol}
	}

	l.readChar() // Consume closing quote
	return token.Token{Type: tokenType, Literal: l.input[start:l.position], Line: startLine, Column: startCol}
}

func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	tokenType := token.TokenInteger
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		tokenType = token.TokenReal
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Type: tokenType, Literal: l.input[start:l.position], Line: startLine, Column: startCol}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]token.TokenType{
	"if":     token.TokenIf,
	"else":   token.TokenElse,
	"for":    token.TokenFor,
	"while":  token.TokenWhile,
	"int":    token.TokenInt,
	"float":  token.TokenFloat,
	"char":   token.TokenChar,
	"void":   token.TokenVoid,
	"main":   token.TokenMain,
	"return": token.TokenReturn,
}

// lookupIdent checks if an identifier is a keyword, returning the keyword's
// token type or token.TokenIdent if it's not a keyword.
func lookupIdent(ident string) token.TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return token.TokenIdent
}
