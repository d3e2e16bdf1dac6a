package parser

import (
	"github.com/trevorswan11/conch/internal/ast"
	"github.com/trevorswan11/conch/internal/diagnostics"
	"github.com/trevorswan11/conch/internal/token"
	"github.com/google/uuid"
)

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.curToken // LBRACE
	block := &ast.BlockStatement{NodeBase: ast.NewNodeBase(tok)}
	p.advance()
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		if p.curIs(token.COMMENT) {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.peekIs(token.SEMICOLON) {
			p.advance()
		}
		p.advance()
	}
	return block
}

func (p *Parser) parseDiscardStatement() ast.Statement {
	tok := p.curToken // '_'
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.advance()
	val := p.parseExpression(LOWEST)
	return &ast.DiscardStatement{NodeBase: ast.NewNodeBase(tok), Discarded: val}
}

func (p *Parser) parseJumpStatement() ast.Statement {
	tok := p.curToken
	var kind ast.JumpKind
	switch tok.Type {
	case token.BREAK:
		kind = ast.JumpBreak
	case token.CONTINUE:
		kind = ast.JumpContinue
	default:
		kind = ast.JumpReturn
	}

	var expr ast.Expression
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) && !p.peekIs(token.END) {
		p.advance()
		expr = p.parseExpression(LOWEST)
	}
	return &ast.JumpStatement{NodeBase: ast.NewNodeBase(tok), Kind: kind, Expression: expr}
}

func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken // 'import'
	p.advance()

	stmt := &ast.ImportStatement{NodeBase: ast.NewNodeBase(tok), NodeID: uuid.New()}

	switch p.curToken.Type {
	case token.STRING:
		lit := p.parseStringLiteral()
		str, ok := lit.(*ast.StringLiteral)
		if !ok {
			p.addError(diagnostics.IllegalImport, tok)
			return stmt
		}
		stmt.UserImport = str
		if !p.expectPeek(token.AS) {
			p.addError(diagnostics.UserImportMissingAlias, tok)
			return stmt
		}
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		stmt.Alias = ast.NewIdentifier(p.curToken)
	case token.IDENT:
		stmt.ModuleImport = ast.NewIdentifier(p.curToken)
		if p.peekIs(token.AS) {
			p.advance()
			if !p.expectPeek(token.IDENT) {
				return stmt
			}
			stmt.Alias = ast.NewIdentifier(p.curToken)
		}
	default:
		p.addError(diagnostics.IllegalImport, tok)
	}
	return stmt
}

// parseDeclModifiers consumes the leading run of modifier keywords a decl
// statement may carry (private/extern/export/comptime, optionally closed by
// var or const, which ends the run), reporting duplicates as it goes. The
// exclusion rules are checked afterwards by validateDeclModifiers.
func (p *Parser) parseDeclModifiers() (ast.DeclModifierSet, token.Token) {
	var mods ast.DeclModifierSet
	start := p.curToken

	for {
		var m ast.DeclModifierSet
		switch p.curToken.Type {
		case token.VAR:
			m = ast.ModVariable
		case token.CONST:
			m = ast.ModConstant
		case token.COMPTIME:
			m = ast.ModComptime
		case token.PRIVATE:
			m = ast.ModPrivate
		case token.EXTERN:
			m = ast.ModExtern
		case token.EXPORT:
			m = ast.ModExport
		default:
			return mods, start
		}
		if mods.Has(m) {
			p.addError(diagnostics.DuplicateDeclModifier, p.curToken)
		}
		mods |= m
		if p.curIs(token.VAR) || p.curIs(token.CONST) {
			return mods, start
		}
		if !p.peekIs(token.VAR) && !p.peekIs(token.CONST) && !p.peekIs(token.PRIVATE) &&
			!p.peekIs(token.EXTERN) && !p.peekIs(token.EXPORT) && !p.peekIs(token.COMPTIME) {
			return mods, start
		}
		p.advance()
	}
}

// validateDeclModifiers checks mods against every exclusion group in
// spec §4.4.1: at most one of {Comptime, Variable, Constant}
// (Mutability), at most one of {Extern, Export} (Linkage), at most one
// of {Private, Extern, Export} (Access), and Comptime excludes Extern.
func (p *Parser) validateDeclModifiers(mods ast.DeclModifierSet, tok token.Token) {
	if mods.Count(ast.ModComptime|ast.ModVariable|ast.ModConstant) > 1 {
		p.addError(diagnostics.IllegalDeclModifiers, tok)
	}
	if mods.Count(ast.ModExtern|ast.ModExport) > 1 {
		p.addError(diagnostics.IllegalDeclModifiers, tok)
	}
	if mods.Count(ast.ModPrivate|ast.ModExtern|ast.ModExport) > 1 {
		p.addError(diagnostics.IllegalDeclModifiers, tok)
	}
	if mods.Has(ast.ModComptime) && mods.Has(ast.ModExtern) {
		p.addError(diagnostics.IllegalDeclModifiers, tok)
	}
}

// parseDeclStatement parses a declaration: modifiers ident (':' type ['='
// value] | ':=' value) ';' , where var/const are among the modifiers and
// neither is required. A forward declaration (var with no
// value) requires an explicit type; const always requires a value; extern
// requires a type and forbids a value.
func (p *Parser) parseDeclStatement() ast.Statement {
	mods, start := p.parseDeclModifiers()
	p.validateDeclModifiers(mods, start)

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	ident := ast.NewIdentifier(p.curToken)

	var typ *ast.TypeExpression
	var value ast.Expression
	switch {
	case p.peekIs(token.COLON):
		p.advance()
		p.advance()
		typ = p.parseExplicitType(p.curToken)
		if p.peekIs(token.ASSIGN) {
			p.advance()
			p.advance()
			value = p.parseExpression(LOWEST)
		}
	case p.peekIs(token.WALRUS):
		p.advance() // curToken == ':='
		typ = &ast.TypeExpression{NodeBase: ast.NewNodeBase(p.curToken)}
		// ':=' both infers the type and introduces the value: no separate
		// '=' follows it.
		p.advance()
		value = p.parseExpression(LOWEST)
	default:
		p.addError(diagnostics.UnexpectedToken, p.peekToken)
	}

	decl := &ast.DeclStatement{NodeBase: ast.NewNodeBase(start), Ident: ident, Type: typ, Value: value, Modifiers: mods, NodeID: uuid.New()}

	if mods.Has(ast.ModConstant) && value == nil {
		p.addError(diagnostics.ConstDeclMissingValue, start)
	}
	if mods.Has(ast.ModVariable) && value == nil && (typ == nil || typ.IsInferred()) {
		p.addError(diagnostics.ForwardVarDeclMissingType, start)
	}
	if mods.Has(ast.ModExtern) {
		if value != nil {
			p.addError(diagnostics.ExternValueInitialized, start)
		}
		if typ == nil || typ.IsInferred() {
			p.addError(diagnostics.ExternMissingType, start)
		}
	}
	return decl
}

// parseExplicitType parses the spelling of a type clause starting at tok
// (already curToken): optional 'mut'/'ref' modifiers, then a function
// type, an array-dimension prefix, or a bare identifier (primitive or
// user-named), optionally followed by '?' for nullable.
func (p *Parser) parseExplicitType(tok token.Token) *ast.TypeExpression {
	var mods ast.TypeModifierSet
	for {
		switch p.curToken.Type {
		case token.MUT:
			mods |= ast.TypeModMut
			p.advance()
			continue
		case token.REF:
			mods |= ast.TypeModRef
			p.advance()
			continue
		}
		break
	}

	var variant ast.TypeVariant
	constraint := ast.ConstraintNone

	switch {
	case p.curIs(token.FUNCTION):
		fnExpr, ok := p.parseFunctionExpression().(*ast.FunctionExpression)
		if !ok {
			p.addError(diagnostics.IllegalExplicitType, tok)
			return &ast.TypeExpression{NodeBase: ast.NewNodeBase(tok)}
		}
		if fnExpr.Body != nil {
			p.addError(diagnostics.ExplicitFnTypeHasBody, tok)
		}
		variant = ast.FunctionTypeVariant{Function: fnExpr}

	case p.curIs(token.LBRACKET):
		var dims []ast.Expression
		for p.curIs(token.LBRACKET) {
			p.advance()
			if p.curIs(token.RBRACKET) {
				p.addError(diagnostics.MissingArraySizeToken, p.curToken)
			} else {
				sz := p.parseExpression(LOWEST)
				dims = append(dims, sz)
			}
			if !p.expectPeek(token.RBRACKET) {
				return &ast.TypeExpression{NodeBase: ast.NewNodeBase(tok)}
			}
			p.advance()
		}
		inner := p.parseExplicitType(p.curToken)
		variant = ast.ArrayTypeVariant{Dimensions: dims, Inner: inner}

	case p.curIs(token.IDENT):
		constraint = ast.ConstraintGeneric
		variant = ast.IdentType{Name: ast.NewIdentifier(p.curToken)}

	case token.IsPrimitiveType(p.curToken.Type):
		constraint = ast.ConstraintPrimitive
		variant = ast.IdentType{Name: ast.NewIdentifier(p.curToken)}

	default:
		p.addError(diagnostics.IllegalExplicitType, p.curToken)
		return &ast.TypeExpression{NodeBase: ast.NewNodeBase(tok)}
	}

	nullable := false
	if p.peekIs(token.WHAT) {
		p.advance()
		nullable = true
	}

	return &ast.TypeExpression{
		NodeBase: ast.NewNodeBase(tok),
		Explicit: &ast.ExplicitType{Modifiers: mods, Variant: variant, Constraint: constraint, Nullable: nullable},
	}
}
