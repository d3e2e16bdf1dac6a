package parser

import "github.com/trevorswan11/conch/internal/token"

// Precedence orders binding power from loosest to tightest. Bitwise
// AND/OR/XOR share ADD_SUB's tier and SHL/SHR share MUL_DIV's tier — they
// are not a separate "bitwise" tier.
type Precedence int

const (
	LOWEST Precedence = iota
	BOOL_EQUIV
	BOOL_LT_GT
	ADD_SUB
	MUL_DIV
	EXPONENT
	PREFIX
	RANGE
	ASSIGNMENT
	SCOPE_RESOLUTION
	CALL_IDX
)

var bindings = map[token.Type]Precedence{
	token.BOOLEAN_AND: BOOL_EQUIV,
	token.BOOLEAN_OR:  BOOL_EQUIV,
	token.EQ:          BOOL_EQUIV,
	token.NEQ:         BOOL_EQUIV,
	token.IS:          BOOL_EQUIV,
	token.IN:          BOOL_EQUIV,

	token.LT:   BOOL_LT_GT,
	token.LTEQ: BOOL_LT_GT,
	token.GT:   BOOL_LT_GT,
	token.GTEQ: BOOL_LT_GT,

	token.PLUS:  ADD_SUB,
	token.MINUS: ADD_SUB,
	token.AND:   ADD_SUB,
	token.OR:    ADD_SUB,
	token.XOR:   ADD_SUB,

	token.STAR:    MUL_DIV,
	token.SLASH:   MUL_DIV,
	token.PERCENT: MUL_DIV,
	token.SHL:     MUL_DIV,
	token.SHR:     MUL_DIV,

	token.STAR_STAR: EXPONENT,

	token.DOT_DOT:    RANGE,
	token.DOT_DOT_EQ: RANGE,

	token.ASSIGN:         ASSIGNMENT,
	token.PLUS_ASSIGN:    ASSIGNMENT,
	token.MINUS_ASSIGN:   ASSIGNMENT,
	token.STAR_ASSIGN:    ASSIGNMENT,
	token.SLASH_ASSIGN:   ASSIGNMENT,
	token.PERCENT_ASSIGN: ASSIGNMENT,
	token.AND_ASSIGN:     ASSIGNMENT,
	token.OR_ASSIGN:      ASSIGNMENT,
	token.SHL_ASSIGN:     ASSIGNMENT,
	token.SHR_ASSIGN:     ASSIGNMENT,
	token.NOT_ASSIGN:     ASSIGNMENT,
	token.XOR_ASSIGN:     ASSIGNMENT,
	token.ORELSE:         ASSIGNMENT,

	token.COLON_COLON: SCOPE_RESOLUTION,
	token.DOT:         SCOPE_RESOLUTION,

	token.LPAREN:   CALL_IDX,
	token.LBRACKET: CALL_IDX,
}

func precedenceOf(tt token.Type) Precedence {
	if p, ok := bindings[tt]; ok {
		return p
	}
	return LOWEST
}
