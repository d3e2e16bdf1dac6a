package parser

import (
	"strconv"

	"github.com/trevorswan11/conch/internal/ast"
	"github.com/trevorswan11/conch/internal/diagnostics"
	"github.com/trevorswan11/conch/internal/lexer"
	"github.com/trevorswan11/conch/internal/token"
)

// registerFns builds the prefix/infix dispatch tables once per Parser.
// Every integer TokenType in the INT_2..UZINT_16 range gets the same
// prefix parser; which of the six literal families it produces is decided
// inside parseIntLiteral from the token's own type.
func (p *Parser) registerFns() {
	p.prefixFns = map[token.Type]prefixParseFn{}
	p.infixFns = map[token.Type]infixParseFn{}

	p.prefixFns[token.IDENT] = p.parseIdentifier
	p.prefixFns[token.FLOAT] = p.parseFloatLiteral
	p.prefixFns[token.STRING] = p.parseStringLiteral
	p.prefixFns[token.MULTILINE_STRING] = p.parseStringLiteral
	p.prefixFns[token.BYTE] = p.parseByteLiteral
	p.prefixFns[token.TRUE] = p.parseBoolLiteral
	p.prefixFns[token.FALSE] = p.parseBoolLiteral

	for _, tt := range []token.Type{
		token.INT_2, token.INT_8, token.INT_10, token.INT_16,
		token.LINT_2, token.LINT_8, token.LINT_10, token.LINT_16,
		token.ZINT_2, token.ZINT_8, token.ZINT_10, token.ZINT_16,
		token.UINT_2, token.UINT_8, token.UINT_10, token.UINT_16,
		token.ULINT_2, token.ULINT_8, token.ULINT_10, token.ULINT_16,
		token.UZINT_2, token.UZINT_8, token.UZINT_10, token.UZINT_16,
	} {
		p.prefixFns[tt] = p.parseIntegerLiteral
	}

	for _, tt := range []token.Type{token.MINUS, token.BANG, token.NOT, token.AND, token.DOT} {
		p.prefixFns[tt] = p.parsePrefixExpression
	}

	for _, tt := range builtinPrefixTypes {
		p.prefixFns[tt] = p.parseBuiltinReference
	}

	p.prefixFns[token.LPAREN] = p.parseGroupedExpression
	p.prefixFns[token.LBRACKET] = p.parseArrayExpression
	p.prefixFns[token.IF] = p.parseIfExpression
	p.prefixFns[token.MATCH] = p.parseMatchExpression
	p.prefixFns[token.FOR] = p.parseForExpression
	p.prefixFns[token.WHILE] = p.parseWhileExpression
	p.prefixFns[token.DO] = p.parseDoWhileExpression
	p.prefixFns[token.LOOP] = p.parseInfiniteLoopExpression
	p.prefixFns[token.FUNCTION] = p.parseFunctionExpression
	p.prefixFns[token.STRUCT] = p.parseStructExpression
	p.prefixFns[token.ENUM] = p.parseEnumExpression
	p.prefixFns[token.TYPE] = p.parseTypeKeywordExpression

	for _, tt := range []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.STAR_STAR,
		token.AND, token.OR, token.XOR, token.SHL, token.SHR,
		token.LT, token.LTEQ, token.GT, token.GTEQ, token.EQ, token.NEQ,
		token.BOOLEAN_AND, token.BOOLEAN_OR, token.IS, token.IN, token.ORELSE,
	} {
		p.infixFns[tt] = p.parseBinaryExpression
	}
	for _, tt := range []token.Type{
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN,
		token.PERCENT_ASSIGN, token.AND_ASSIGN, token.OR_ASSIGN, token.SHL_ASSIGN, token.SHR_ASSIGN,
		token.NOT_ASSIGN, token.XOR_ASSIGN,
	} {
		p.infixFns[tt] = p.parseAssignmentExpression
	}
	p.infixFns[token.DOT] = p.parseDotExpression
	p.infixFns[token.COLON_COLON] = p.parseScopeResolutionExpression
	p.infixFns[token.LPAREN] = p.parseCallExpression
	p.infixFns[token.LBRACKET] = p.parseIndexExpression
	p.infixFns[token.DOT_DOT] = p.parseRangeExpression
	p.infixFns[token.DOT_DOT_EQ] = p.parseRangeExpression
}

// builtinPrefixTypes is every '@name' builtin token type, used only to
// drive registration above.
var builtinPrefixTypes = map[string]token.Type{
	"typeOf": token.BUILTIN_TYPE_OF, "sizeOf": token.BUILTIN_SIZE_OF, "alignOf": token.BUILTIN_ALIGN_OF,
	"sin": token.BUILTIN_SIN, "cos": token.BUILTIN_COS, "tan": token.BUILTIN_TAN, "sqrt": token.BUILTIN_SQRT,
	"log": token.BUILTIN_LOG, "log10": token.BUILTIN_LOG10, "log2": token.BUILTIN_LOG2,
	"min": token.BUILTIN_MIN, "max": token.BUILTIN_MAX, "mod": token.BUILTIN_MOD, "divmod": token.BUILTIN_DIVMOD,
	"trunc": token.BUILTIN_TRUNC, "cast": token.BUILTIN_CAST, "ceil": token.BUILTIN_CEIL, "floor": token.BUILTIN_FLOOR,
	"exp": token.BUILTIN_EXP, "exp2": token.BUILTIN_EXP2, "clz": token.BUILTIN_CLZ, "ctz": token.BUILTIN_CTZ,
}

func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewIdentifier(p.curToken)
}

// parseBuiltinReference turns a '@name' token into an Identifier carrying
// the '@'-qualified name, so it composes with the ordinary call-expression
// infix parser exactly like any other callee.
func (p *Parser) parseBuiltinReference() ast.Expression {
	tok := p.curToken
	return &ast.Identifier{NodeBase: ast.NewNodeBase(tok), Name: "@" + tok.Slice}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	expr, err := parseIntLiteral(p.curToken)
	if err != nil {
		p.diagnostics = append(p.diagnostics, *err)
		return nil
	}
	return expr
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Slice, 64)
	if err != nil {
		p.addError(diagnostics.FloatOverflow, tok)
		return nil
	}
	return &ast.FloatLiteral{NodeBase: ast.NewNodeBase(tok), Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	decoded, ok := lexer.PromoteString(tok)
	if !ok {
		p.addError(diagnostics.UnknownCharacterEscape, tok)
		decoded = tok.Slice
	}
	return &ast.StringLiteral{NodeBase: ast.NewNodeBase(tok), Value: decoded, Raw: tok.Slice}
}

func (p *Parser) parseByteLiteral() ast.Expression {
	tok := p.curToken
	b, ok := lexer.PromoteByte(tok)
	if !ok {
		p.addError(diagnostics.MalformedCharacter, tok)
		return nil
	}
	return &ast.ByteLiteral{NodeBase: ast.NewNodeBase(tok), Value: b}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curToken
	return &ast.BoolLiteral{NodeBase: ast.NewNodeBase(tok), Value: tok.Type == token.TRUE}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	op := tok.Type
	if op == token.DOT {
		// Leading dot with no left operand: ImplicitAccess. Its "operand"
		// is the identifier naming the inferred enum/struct variant.
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		right := p.parseIdentifier()
		return &ast.PrefixExpression{NodeBase: ast.NewNodeBase(tok), Op: op, Right: right}
	}
	p.advance()
	right := p.parseExpression(PREFIX)
	if right == nil {
		p.addError(diagnostics.PrefixMissingOperand, tok)
		return nil
	}
	return &ast.PrefixExpression{NodeBase: ast.NewNodeBase(tok), Op: op, Right: right}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Type
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	if right == nil {
		p.addError(diagnostics.InfixMissingRHS, tok)
		return nil
	}
	return &ast.BinaryExpression{NodeBase: ast.NewNodeBase(tok), Left: left, Op: op, Right: right}
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Type
	p.advance()
	right := p.parseExpression(ASSIGNMENT - 1)
	if right == nil {
		p.addError(diagnostics.InfixMissingRHS, tok)
		return nil
	}
	return &ast.AssignmentExpression{NodeBase: ast.NewNodeBase(tok), Left: left, Op: op, Right: right}
}

func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	right := ast.NewIdentifier(p.curToken)
	return &ast.DotExpression{NodeBase: ast.NewNodeBase(tok), Left: left, Right: right}
}

func (p *Parser) parseScopeResolutionExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	inner := ast.NewIdentifier(p.curToken)
	return &ast.ScopeResolutionExpression{NodeBase: ast.NewNodeBase(tok), Outer: left, Inner: inner}
}

func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	inclusive := tok.Type == token.DOT_DOT_EQ
	p.advance()
	end := p.parseExpression(RANGE)
	return &ast.RangeExpression{NodeBase: ast.NewNodeBase(tok), Start: left, End: end, Inclusive: inclusive}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.curToken
	args := p.parseExpressionList(token.RPAREN)
	return &ast.CallExpression{NodeBase: ast.NewNodeBase(tok), Function: fn, Arguments: args}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.advance()
	idx := p.parseExpression(LOWEST)
	if idx == nil {
		p.addError(diagnostics.IndexMissingExpression, tok)
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpression{NodeBase: ast.NewNodeBase(tok), Array: left, Index: idx}
}

// parseExpressionList parses a comma-separated list of expressions up to
// and including the closing delimiter end, leaving curToken on end.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.advance()
		return list
	}
	p.advance()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

// parseArrayExpression parses '[' size-or-'_' ']' '{' items '}': a
// bracketed size clause (either an explicit size-typed unsigned integer
// literal or '_' for inferred), followed by a brace-delimited,
// comma-separated item list.
func (p *Parser) parseArrayExpression() ast.Expression {
	tok := p.curToken // '['
	var size ast.Expression

	if p.peekIs(token.UNDERSCORE) {
		p.advance()
	} else if p.peekIs(token.RBRACKET) {
		p.addError(diagnostics.MissingArraySizeToken, p.peekToken)
	} else {
		p.advance()
		sz := p.parseExpression(LOWEST)
		if uintLit, ok := sz.(*ast.UnsignedIntLiteral); ok && uintLit.Width == ast.WidthSize {
			size = uintLit
		} else {
			p.addError(diagnostics.UnexpectedArraySizeToken, tok)
		}
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	items := p.parseExpressionList(token.RBRACE)

	if sizeLit, ok := size.(*ast.UnsignedIntLiteral); ok {
		switch {
		case sizeLit.Value == 0:
			p.addError(diagnostics.EmptyArray, tok)
		case sizeLit.Value != uint64(len(items)):
			p.addError(diagnostics.IncorrectExplicitArraySize, tok)
		}
	} else if len(items) == 0 {
		p.addError(diagnostics.EmptyArray, tok)
	}

	return &ast.ArrayExpression{NodeBase: ast.NewNodeBase(tok), Size: size, Items: items}
}

func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	consequence := p.parseBlockStatement()

	var alternate ast.Statement
	if p.peekIs(token.ELSE) {
		p.advance()
		p.advance()
		alternate = p.parseRestrictedStatement()
	}
	return &ast.IfExpression{NodeBase: ast.NewNodeBase(tok), Condition: cond, Consequence: consequence, Alternate: alternate}
}

func (p *Parser) parseMatchExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	matcher := p.parseExpression(LOWEST)
	if matcher == nil {
		p.addError(diagnostics.MatchExprMissingCondition, tok)
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.advance()

	var arms []ast.MatchArm
	var catchAll ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		if p.curIs(token.UNDERSCORE) {
			if !p.expectPeek(token.FAT_ARROW) {
				return nil
			}
			p.advance()
			catchAll = p.parseRestrictedStatement()
		} else {
			pattern := p.parseExpression(LOWEST)
			if !p.expectPeek(token.FAT_ARROW) {
				return nil
			}
			p.advance()
			dispatch := p.parseRestrictedStatement()
			arms = append(arms, ast.MatchArm{Pattern: pattern, Dispatch: dispatch})
		}
		if p.peekIs(token.COMMA) {
			p.advance()
		}
		p.advance()
	}
	if len(arms) == 0 && catchAll == nil {
		p.addError(diagnostics.ArmlessMatchExpr, tok)
	}
	return &ast.MatchExpression{NodeBase: ast.NewNodeBase(tok), Matcher: matcher, Arms: arms, CatchAll: catchAll}
}

// parseForCapture parses one '|a, b|'-style binding: a plain identifier, a
// '&'-prefixed reference capture, or the '_' discard placeholder.
func (p *Parser) parseForCapture() ast.ForCapture {
	if p.curIs(token.UNDERSCORE) {
		return ast.ForCapture{Placeholder: true}
	}
	if p.curIs(token.AND) {
		tok := p.curToken
		p.advance()
		inner := ast.NewIdentifier(p.curToken)
		return ast.ForCapture{Capture: &ast.PrefixExpression{NodeBase: ast.NewNodeBase(tok), Op: token.AND, Right: inner}}
	}
	return ast.ForCapture{Capture: ast.NewIdentifier(p.curToken)}
}

func (p *Parser) parseForExpression() ast.Expression {
	tok := p.curToken
	p.advance()

	// Iterables are parsed at ADD_SUB floor (not LOWEST): the capture
	// clause delimiter '|' lexes as the same OR token as bitwise-or, which
	// sits at ADD_SUB's tier, so a looser floor would swallow it as an
	// infix operator instead of stopping for '|capture, ...|' to follow.
	// A parenthesized iterable expression is unaffected.
	var iterables []ast.Expression
	iterables = append(iterables, p.parseExpression(ADD_SUB))
	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		iterables = append(iterables, p.parseExpression(ADD_SUB))
	}

	var captures []ast.ForCapture
	if p.peekIs(token.OR) {
		p.advance()
		p.advance()
		captures = append(captures, p.parseForCapture())
		for p.peekIs(token.COMMA) {
			p.advance()
			p.advance()
			captures = append(captures, p.parseForCapture())
		}
		if !p.expectPeek(token.OR) {
			return nil
		}
	}

	if len(captures) > 0 && len(captures) != len(iterables) {
		p.addError(diagnostics.ForIterableCaptureMismatch, tok)
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()

	var nonBreak ast.Statement
	if p.peekIs(token.ORELSE) {
		p.advance()
		p.advance()
		nonBreak = p.parseRestrictedStatement()
	}
	return &ast.ForExpression{NodeBase: ast.NewNodeBase(tok), Iterables: iterables, Captures: captures, Block: block, NonBreak: nonBreak}
}

func (p *Parser) parseWhileExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		p.addError(diagnostics.WhileMissingCondition, tok)
		return nil
	}

	var continuation ast.Expression
	if p.peekIs(token.COLON) {
		p.advance()
		p.advance()
		continuation = p.parseExpression(LOWEST)
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()

	var nonBreak ast.Statement
	if p.peekIs(token.ORELSE) {
		p.advance()
		p.advance()
		nonBreak = p.parseRestrictedStatement()
	}
	return &ast.WhileExpression{NodeBase: ast.NewNodeBase(tok), Condition: cond, Continuation: continuation, Block: block, NonBreak: nonBreak}
}

func (p *Parser) parseDoWhileExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()
	if !p.expectPeek(token.WHILE) {
		return nil
	}
	p.advance()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		p.addError(diagnostics.WhileMissingCondition, tok)
		return nil
	}
	return &ast.DoWhileExpression{NodeBase: ast.NewNodeBase(tok), Block: block, Condition: cond}
}

func (p *Parser) parseInfiniteLoopExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()
	if len(block.Statements) == 0 {
		p.addError(diagnostics.EmptyLoop, tok)
	}
	return &ast.InfiniteLoopExpression{NodeBase: ast.NewNodeBase(tok), Block: block}
}

// parseTypeKeywordExpression parses a bare 'type <explicit type>' clause,
// used wherever a type needs to appear in expression position (e.g. as a
// @typeOf comparison operand).
func (p *Parser) parseTypeKeywordExpression() ast.Expression {
	tok := p.curToken
	p.advance()
	return p.parseExplicitType(tok)
}
