package parser

import (
	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

// operand is the value an expression level hands upwards for type inspection:
// the leftmost literal or identifier of the subexpression. Binary operators do
// not combine the types of their operands.
type operand struct {
	tok token.Token
}

func (p *Parser) classify(op operand) symbols.Type {
	switch op.tok.Type {
	case token.TokenString:
		return symbols.None
	case token.TokenCharConst:
		return symbols.Char
	}
	return symbols.Classify(op.tok.Literal, p.lookupType)
}

func (p *Parser) parseExpression() operand {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() operand {
	left := p.parseLogicalAnd()
	for p.curTok.Type == token.TokenOr {
		p.nextToken()
		p.parseLogicalAnd()
	}
	return left
}

func (p *Parser) parseLogicalAnd() operand {
	left := p.parseEquality()
	for p.curTok.Type == token.TokenAnd {
		p.nextToken()
		p.parseEquality()
	}
	return left
}

func (p *Parser) parseEquality() operand {
	left := p.parseRelational()
	for p.curIs(token.TokenEQ, token.TokenNE) {
		p.nextToken()
		p.parseRelational()
	}
	return left
}

func (p *Parser) parseRelational() operand {
	left := p.parseAdditive()
	for p.curIs(token.TokenLT, token.TokenLE, token.TokenGT, token.TokenGE) {
		p.nextToken()
		p.parseAdditive()
	}
	return left
}

func (p *Parser) parseAdditive() operand {
	left := p.parseMultiplicative()
	for p.curIs(token.TokenPlus, token.TokenMinus) {
		p.nextToken()
		p.parseMultiplicative()
	}
	return left
}

func (p *Parser) parseMultiplicative() operand {
	left := p.parseUnary()
	for p.curIs(token.TokenAsterisk, token.TokenSlash) {
		p.nextToken()
		p.parseUnary()
	}
	return left
}

func (p *Parser) parseUnary() operand {
	if p.curIs(token.TokenPlus, token.TokenMinus, token.TokenNot) {
		p.nextToken()
		return p.parseUnary()
	}
	return p.parseFactor()
}

func (p *Parser) parseFactor() operand {
	switch p.curTok.Type {
	case token.TokenInteger, token.TokenReal, token.TokenCharConst, token.TokenString:
		tok := p.curTok
		p.nextToken()
		return operand{tok: tok}
	case token.TokenIdent:
		// Trailing updates and assignments bind to the identifier itself.
		return operand{tok: p.parseAssignmentOrCall()}
	case token.TokenLParen:
		p.nextToken()
		inner := p.parseExpression()
		p.expect(token.TokenRParen)
		return inner
	default:
		p.fail(ErrUnexpectedToken, p.curTok, "invalid factor %s", describe(p.curTok))
		return operand{}
	}
}
