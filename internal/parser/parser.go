// Package parser implements a Pratt (precedence-climbing) recursive
// descent parser that turns a token stream into an ast.Program, collecting
// diagnostics rather than halting on the first syntax error.
package parser

import (
	"strconv"
	"strings"

	"github.com/trevorswan11/conch/internal/ast"
	"github.com/trevorswan11/conch/internal/diagnostics"
	"github.com/trevorswan11/conch/internal/lexer"
	"github.com/trevorswan11/conch/internal/token"
)

type parseError = diagnostics.Diagnostic[diagnostics.ParserError]

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser consumes a lexer's token stream one token of lookahead at a time
// (curToken, peekToken) and produces statements by recursive descent, using
// the registered prefix/infix function tables for expressions.
type Parser struct {
	input string
	lex   *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	diagnostics []parseError

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New constructs a Parser over source, primed with two tokens of lookahead.
func New(input string) *Parser {
	p := &Parser{input: input, lex: lexer.New(input)}
	p.registerFns()
	p.advance()
	p.advance()
	return p
}

// Reset repoints this parser at new source, as if freshly constructed.
func (p *Parser) Reset(input string) {
	p.input = input
	p.lex.Reset(input)
	p.diagnostics = nil
	p.advance()
	p.advance()
}

// Diagnostics returns every diagnostic collected since the last Reset/New.
func (p *Parser) Diagnostics() []parseError { return p.diagnostics }

func (p *Parser) addError(err diagnostics.ParserError, tok token.Token) {
	p.diagnostics = append(p.diagnostics, diagnostics.AtToken(err, tok))
}

func (p *Parser) addErrorf(err diagnostics.ParserError, tok token.Token, format string, args ...any) {
	p.diagnostics = append(p.diagnostics, diagnostics.Withf(err, tok.Location, format, args...))
}

func (p *Parser) advance() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.Advance()
	for p.peekToken.Type == token.COMMENT {
		p.peekToken = p.lex.Advance()
	}
}

func (p *Parser) curIs(tt token.Type) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt token.Type) bool { return p.peekToken.Type == tt }

func (p *Parser) expectPeek(tt token.Type) bool {
	if p.peekIs(tt) {
		p.advance()
		return true
	}
	p.addErrorf(diagnostics.UnexpectedToken, p.peekToken, "expected %s, got %s", tt, p.peekToken.Type)
	return false
}

func (p *Parser) curPrecedence() Precedence  { return precedenceOf(p.curToken.Type) }
func (p *Parser) peekPrecedence() Precedence { return precedenceOf(p.peekToken.Type) }

// ParseProgram consumes the entire token stream. Parsing never aborts on
// error: diagnostics are collected as they arise, and every statement whose
// parse function returned a node is kept, including one that recorded
// diagnostics. After each statement the parser moves past an optional ';'
// to the next token and continues from there; it does not scan ahead for a
// statement boundary.
func (p *Parser) ParseProgram() (*ast.Program, []parseError) {
	program := &ast.Program{}
	for !p.curIs(token.END) {
		if p.curIs(token.COMMENT) {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if p.peekIs(token.SEMICOLON) {
			p.advance()
		}
		p.advance()
	}
	return program, p.diagnostics
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.CONST, token.COMPTIME, token.PRIVATE, token.EXTERN, token.EXPORT:
		return p.parseDeclStatement()
	case token.BREAK, token.CONTINUE, token.RETURN:
		return p.parseJumpStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.UNDERSCORE:
		return p.parseDiscardStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseRestrictedStatement parses a single statement in grammar positions
// (if/match/for/while bodies, etc.) that only permit a block, a bare
// expression, or a jump — never a declaration or import.
func (p *Parser) parseRestrictedStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.BREAK, token.CONTINUE, token.RETURN:
		return p.parseJumpStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{NodeBase: ast.NewNodeBase(start), Expr: expr}
}

// parseExpression is the 4-step Pratt driver: find a prefix parser for the
// current token, run it, then repeatedly fold in infix operators whose
// precedence exceeds the caller's floor.
func (p *Parser) parseExpression(precedence Precedence) ast.Expression {
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.addErrorf(diagnostics.MissingPrefixParser, p.curToken, "no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.advance()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

// parseIntLiteral converts an integer token's text into a signed or
// unsigned literal node, stripping the base prefix and width/sign suffix
// first. Overflow is reported rather than silently wrapped.
func parseIntLiteral(tok token.Token) (ast.Expression, *parseError) {
	width, base, signed := lexer.IntWidthAndBase(tok.Type)
	text := tok.Slice
	switch base {
	case token.Base2:
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0b"), "0B")
	case token.Base8:
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0o"), "0O")
	case token.Base16:
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	}
	text = strings.TrimRight(text, "uUlLzZ")

	if signed {
		v, err := strconv.ParseInt(text, int(base), 64)
		if err != nil {
			e := diagnostics.AtToken(diagnostics.IntegerOverflow, tok)
			return nil, &e
		}
		return &ast.SignedIntLiteral{NodeBase: ast.NewNodeBase(tok), Value: v, Width: width, Base: base}, nil
	}
	v, err := strconv.ParseUint(text, int(base), 64)
	if err != nil {
		e := diagnostics.AtToken(diagnostics.IntegerOverflow, tok)
		return nil, &e
	}
	return &ast.UnsignedIntLiteral{NodeBase: ast.NewNodeBase(tok), Value: v, Width: width, Base: base}, nil
}
