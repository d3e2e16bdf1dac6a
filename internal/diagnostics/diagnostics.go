// Package diagnostics defines the two closed error taxonomies the lexer
// and parser report through, and the generic Diagnostic value that carries
// an error kind alongside an optional message and source location.
package diagnostics

import (
	"fmt"

	"github.com/trevorswan11/conch/internal/token"
)

// TokenError is the closed set of failures the lexer/Token layer can
// report.
type TokenError int

const (
	// NonStringToken is reported when Promote is called on a token that
	// isn't a string or multiline-string literal.
	NonStringToken TokenError = iota
	// UnexpectedChar is reported when decoding an escape sequence meets a
	// byte that isn't a recognized escape.
	UnexpectedChar
)

func (e TokenError) String() string {
	switch e {
	case NonStringToken:
		return "NON_STRING_TOKEN"
	case UnexpectedChar:
		return "UNEXPECTED_CHAR"
	default:
		return "UNKNOWN_TOKEN_ERROR"
	}
}

// ParserError is the closed set of syntactic failures the parser can
// report as diagnostics.
type ParserError int

const (
	UnexpectedToken ParserError = iota
	EnumMissingVariants
	MissingTrailingComma
	MissingPrefixParser
	InfixMissingRHS
	IllegalIdentifier
	EndOfTokenStream
	ConstDeclMissingValue
	ForwardVarDeclMissingType
	IllegalImport
	UserImportMissingAlias
	DuplicateDeclModifier
	IllegalDeclModifiers
	IntegerOverflow
	MalformedInteger
	FloatOverflow
	MalformedFloat
	UnknownCharacterEscape
	MalformedCharacter
	MalformedString
	PrefixMissingOperand
	IndexMissingExpression
	EmptyLoop
	WhileMissingCondition
	InvalidStructMember
	EmptyStruct
	ExternValueInitialized
	ExternMissingType
	IllegalLoopNonBreak
	IllegalForLoopCapture
	EmptyForLoop
	ForIterableCaptureMismatch
	IllegalForLoopDiscard
	ImproperWhileContinuation
	EmptyWhileLoop
	IllegalIfBranch
	MissingArraySizeToken
	UnexpectedArraySizeToken
	IncorrectExplicitArraySize
	EmptyArray
	MatchExprMissingCondition
	ArmlessMatchExpr
	IllegalMatchArm
	IllegalMatchCatchAll
	IllegalFunctionParameterType
	IllegalFunctionDefinition
	IllegalTypeModifiers
	IllegalExplicitType
	ExplicitFnTypeHasBody
)

var parserErrorNames = map[ParserError]string{
	UnexpectedToken:               "UNEXPECTED_TOKEN",
	EnumMissingVariants:           "ENUM_MISSING_VARIANTS",
	MissingTrailingComma:         "MISSING_TRAILING_COMMA",
	MissingPrefixParser:          "MISSING_PREFIX_PARSER",
	InfixMissingRHS:              "INFIX_MISSING_RHS",
	IllegalIdentifier:            "ILLEGAL_IDENTIFIER",
	EndOfTokenStream:             "END_OF_TOKEN_STREAM",
	ConstDeclMissingValue:        "CONST_DECL_MISSING_VALUE",
	ForwardVarDeclMissingType:    "FORWARD_VAR_DECL_MISSING_TYPE",
	IllegalImport:                "ILLEGAL_IMPORT",
	UserImportMissingAlias:       "USER_IMPORT_MISSING_ALIAS",
	DuplicateDeclModifier:        "DUPLICATE_DECL_MODIFIER",
	IllegalDeclModifiers:         "ILLEGAL_DECL_MODIFIERS",
	IntegerOverflow:              "INTEGER_OVERFLOW",
	MalformedInteger:             "MALFORMED_INTEGER",
	FloatOverflow:                "FLOAT_OVERFLOW",
	MalformedFloat:               "MALFORMED_FLOAT",
	UnknownCharacterEscape:       "UNKNOWN_CHARACTER_ESCAPE",
	MalformedCharacter:           "MALFORMED_CHARACTER",
	MalformedString:              "MALFORMED_STRING",
	PrefixMissingOperand:         "PREFIX_MISSING_OPERAND",
	IndexMissingExpression:       "INDEX_MISSING_EXPRESSION",
	EmptyLoop:                    "EMPTY_LOOP",
	WhileMissingCondition:        "WHILE_MISSING_CONDITION",
	InvalidStructMember:          "INVALID_STRUCT_MEMBER",
	EmptyStruct:                  "EMPTY_STRUCT",
	ExternValueInitialized:       "EXTERN_VALUE_INITIALIZED",
	ExternMissingType:            "EXTERN_MISSING_TYPE",
	IllegalLoopNonBreak:          "ILLEGAL_LOOP_NON_BREAK",
	IllegalForLoopCapture:        "ILLEGAL_FOR_LOOP_CAPTURE",
	EmptyForLoop:                 "EMPTY_FOR_LOOP",
	ForIterableCaptureMismatch:   "FOR_ITERABLE_CAPTURE_MISMATCH",
	IllegalForLoopDiscard:        "ILLEGAL_FOR_LOOP_DISCARD",
	ImproperWhileContinuation:    "IMPROPER_WHILE_CONTINUATION",
	EmptyWhileLoop:               "EMPTY_WHILE_LOOP",
	IllegalIfBranch:              "ILLEGAL_IF_BRANCH",
	MissingArraySizeToken:        "MISSING_ARRAY_SIZE_TOKEN",
	UnexpectedArraySizeToken:     "UNEXPECTED_ARRAY_SIZE_TOKEN",
	IncorrectExplicitArraySize:   "INCORRECT_EXPLICIT_ARRAY_SIZE",
	EmptyArray:                   "EMPTY_ARRAY",
	MatchExprMissingCondition:    "MATCH_EXPR_MISSING_CONDITION",
	ArmlessMatchExpr:             "ARMLESS_MATCH_EXPR",
	IllegalMatchArm:              "ILLEGAL_MATCH_ARM",
	IllegalMatchCatchAll:         "ILLEGAL_MATCH_CATCH_ALL",
	IllegalFunctionParameterType: "ILLEGAL_FUNCTION_PARAMETER_TYPE",
	IllegalFunctionDefinition:    "ILLEGAL_FUNCTION_DEFINITION",
	IllegalTypeModifiers:         "ILLEGAL_TYPE_MODIFIERS",
	IllegalExplicitType:          "ILLEGAL_EXPLICIT_TYPE",
	ExplicitFnTypeHasBody:        "EXPLICIT_FN_TYPE_HAS_BODY",
}

func (e ParserError) String() string {
	if name, ok := parserErrorNames[e]; ok {
		return name
	}
	return "UNKNOWN_PARSER_ERROR"
}

// stringerError is implemented by TokenError and ParserError.
type stringerError interface {
	String() string
}

// Diagnostic pairs a closed error kind with an optional human-readable
// message and an optional source location. It implements error, so parser
// and lexer routines can return it through ordinary Go error-propagation
// rather than raising an exception.
type Diagnostic[E stringerError] struct {
	Err      E
	Message  string
	Location token.SourceLocation
	hasLoc   bool
}

// New builds a Diagnostic with no location.
func New[E stringerError](err E) Diagnostic[E] {
	return Diagnostic[E]{Err: err}
}

// At builds a Diagnostic with a source location.
func At[E stringerError](err E, loc token.SourceLocation) Diagnostic[E] {
	return Diagnostic[E]{Err: err, Location: loc, hasLoc: true}
}

// AtToken builds a Diagnostic located at a token's position.
func AtToken[E stringerError](err E, tok token.Token) Diagnostic[E] {
	return At(err, tok.Location)
}

// Withf attaches a formatted message to a located Diagnostic.
func Withf[E stringerError](err E, loc token.SourceLocation, format string, args ...any) Diagnostic[E] {
	return Diagnostic[E]{Err: err, Message: fmt.Sprintf(format, args...), Location: loc, hasLoc: true}
}

// HasLocation reports whether this diagnostic carries a source location.
func (d Diagnostic[E]) HasLocation() bool { return d.hasLoc }

// Error implements the error interface using the canonical display form:
// "{message} ({ERROR_KIND}) [{line}, {column}]", falling back to the bare
// error kind when the message is empty and omitting the location when
// absent.
func (d Diagnostic[E]) Error() string {
	var label string
	if d.Message == "" {
		// No message to distinguish from the bare error kind: reporting
		// "{KIND} ({KIND})" would just repeat itself, so fall back to the
		// kind alone.
		label = d.Err.String()
	} else {
		label = fmt.Sprintf("%s (%s)", d.Message, d.Err.String())
	}
	if d.hasLoc {
		return fmt.Sprintf("%s [%d, %d]", label, d.Location.Line, d.Location.Column)
	}
	return label
}

func (d Diagnostic[E]) String() string { return d.Error() }
