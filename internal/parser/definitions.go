package parser

import (
	"github.com/google/uuid"

	"github.com/trevorswan11/conch/internal/ast"
	"github.com/trevorswan11/conch/internal/diagnostics"
	"github.com/trevorswan11/conch/internal/token"
)

// parseFunctionExpression parses both a function definition ('fn (params)
// [: type] { body }') and a bare function type ('fn (params) [: type]'
// with no body, used inside type clauses). An optional 'mut' directly after
// 'fn' ('fn mut (params) ...') sets Mutable. A 'mut' written before 'fn' is
// not handled here: MUT has no prefix parser, and inside a type clause it
// is read as a type modifier.
func (p *Parser) parseFunctionExpression() ast.Expression {
	tok := p.curToken // 'fn'

	mutable := false
	if p.peekIs(token.MUT) {
		p.advance()
		mutable = true
	}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseFunctionParameters()

	var returnType *ast.TypeExpression
	if p.peekIs(token.COLON) {
		p.advance()
		p.advance()
		returnType = p.parseExplicitType(p.curToken)
	}

	fn := &ast.FunctionExpression{
		NodeBase: ast.NewNodeBase(tok), Mutable: mutable, Parameters: params,
		ReturnType: returnType, NodeID: uuid.New(),
	}

	if p.peekIs(token.LBRACE) {
		p.advance()
		fn.Body = p.parseBlockStatement()
	}
	return fn
}

func (p *Parser) parseFunctionParameters() []ast.FunctionParameter {
	var params []ast.FunctionParameter
	if p.peekIs(token.RPAREN) {
		p.advance()
		return params
	}
	p.advance()
	params = append(params, p.parseOneFunctionParameter())
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		params = append(params, p.parseOneFunctionParameter())
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseOneFunctionParameter() ast.FunctionParameter {
	name := ast.NewIdentifier(p.curToken)
	var typ *ast.TypeExpression
	if p.peekIs(token.COLON) {
		p.advance()
		p.advance()
		typ = p.parseExplicitType(p.curToken)
	} else {
		p.addError(diagnostics.IllegalFunctionParameterType, p.curToken)
	}
	return ast.FunctionParameter{Name: name, Type: typ}
}

// parseStructExpression parses a struct type literal: optional 'packed',
// then a brace-delimited run of member declarations.
func (p *Parser) parseStructExpression() ast.Expression {
	tok := p.curToken // 'struct'
	packed := false
	if p.peekIs(token.PACKED) {
		p.advance()
		packed = true
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.advance()

	var members []*ast.DeclStatement
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		if p.curIs(token.COMMENT) {
			p.advance()
			continue
		}
		member := p.parseStructMember()
		if member != nil {
			members = append(members, member)
		}
		if p.peekIs(token.COMMA) || p.peekIs(token.SEMICOLON) {
			p.advance()
		}
		p.advance()
	}

	if len(members) == 0 {
		p.addError(diagnostics.EmptyStruct, tok)
	}
	return &ast.StructExpression{NodeBase: ast.NewNodeBase(tok), Packed: packed, Members: members, NodeID: uuid.New()}
}

// parseStructMember parses one 'name: type [= default]' member, optionally
// preceded by 'private'.
func (p *Parser) parseStructMember() *ast.DeclStatement {
	start := p.curToken
	var mods ast.DeclModifierSet
	if p.curIs(token.PRIVATE) {
		mods |= ast.ModPrivate
		p.advance()
	}
	if !p.curIs(token.IDENT) {
		p.addError(diagnostics.InvalidStructMember, p.curToken)
		return nil
	}
	ident := ast.NewIdentifier(p.curToken)

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.advance()
	typ := p.parseExplicitType(p.curToken)

	var value ast.Expression
	if p.peekIs(token.ASSIGN) {
		p.advance()
		p.advance()
		value = p.parseExpression(LOWEST)
	}

	return &ast.DeclStatement{NodeBase: ast.NewNodeBase(start), Ident: ident, Type: typ, Value: value, Modifiers: mods, NodeID: uuid.New()}
}

// parseEnumExpression parses an enum type literal: optional ': underlying'
// clause, then a brace-delimited comma-separated list of variants.
func (p *Parser) parseEnumExpression() ast.Expression {
	tok := p.curToken // 'enum'
	var underlying *ast.Identifier
	if p.peekIs(token.COLON) {
		p.advance()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		underlying = ast.NewIdentifier(p.curToken)
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.advance()

	var variants []ast.EnumVariant
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		if !p.curIs(token.IDENT) {
			p.addError(diagnostics.IllegalIdentifier, p.curToken)
			p.advance()
			continue
		}
		name := ast.NewIdentifier(p.curToken)
		var def ast.Expression
		if p.peekIs(token.ASSIGN) {
			p.advance()
			p.advance()
			def = p.parseExpression(LOWEST)
		}
		variants = append(variants, ast.EnumVariant{Name: name, Default: def})
		if !p.peekIs(token.COMMA) {
			p.addError(diagnostics.MissingTrailingComma, p.curToken)
			p.advance()
			break
		}
		p.advance() // now at ','
		p.advance() // move to the next variant, or RBRACE
	}

	if len(variants) == 0 {
		p.addError(diagnostics.EnumMissingVariants, tok)
	}
	return &ast.EnumExpression{NodeBase: ast.NewNodeBase(tok), Underlying: underlying, Variants: variants, NodeID: uuid.New()}
}
