// Package ast defines Conch's syntax tree: a closed set of concrete
// Statement and Expression struct types consumed by type switch rather
// than by visitor double-dispatch. Every node records the token that
// begins it; that token's location is the node's reported position.
package ast

import (
	"github.com/google/uuid"

	"github.com/trevorswan11/conch/internal/token"
)

// Node is implemented by every Statement and Expression variant.
type Node interface {
	// TokenLiteral returns the Slice of this node's start token.
	TokenLiteral() string
	// Pos returns the source location this node is anchored to.
	Pos() token.SourceLocation
}

// Statement is implemented by every statement-level AST node.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression-level AST node.
type Expression interface {
	Node
	expressionNode()
}

// NodeBase is embedded by every concrete node to supply TokenLiteral/Pos
// from the node's recorded start token.
type NodeBase struct {
	StartToken token.Token
}

func (b NodeBase) TokenLiteral() string      { return b.StartToken.Slice }
func (b NodeBase) Pos() token.SourceLocation { return b.StartToken.Location }

// NewNodeBase constructs the embeddable NodeBase that anchors a node to t.
func NewNodeBase(t token.Token) NodeBase { return NodeBase{StartToken: t} }

// ---------------------------------------------------------------------
// Literals and identifiers
// ---------------------------------------------------------------------

// IntWidth is the declared width of an integer literal.
type IntWidth int

const (
	WidthWord IntWidth = iota // no suffix: int-sized
	WidthLong                 // 'l' suffix: long
	WidthSize                 // 'z' suffix: target pointer width
)

type Identifier struct {
	NodeBase
	Name string
}

func NewIdentifier(t token.Token) *Identifier { return &Identifier{NodeBase: NewNodeBase(t), Name: t.Slice} }
func (*Identifier) expressionNode()           {}

type StringLiteral struct {
	NodeBase
	Value string // decoded value (escapes resolved); Raw keeps the source slice
	Raw   string
}

func (*StringLiteral) expressionNode() {}

type SignedIntLiteral struct {
	NodeBase
	Value int64
	Width IntWidth
	Base  token.Base
}

func (*SignedIntLiteral) expressionNode() {}

type UnsignedIntLiteral struct {
	NodeBase
	Value uint64
	Width IntWidth
	Base  token.Base
}

func (*UnsignedIntLiteral) expressionNode() {}

type ByteLiteral struct {
	NodeBase
	Value byte
}

func (*ByteLiteral) expressionNode() {}

type FloatLiteral struct {
	NodeBase
	Value float64
}

func (*FloatLiteral) expressionNode() {}

type BoolLiteral struct {
	NodeBase
	Value bool
}

func (*BoolLiteral) expressionNode() {}

// ---------------------------------------------------------------------
// Operator expressions
// ---------------------------------------------------------------------

// PrefixExpression is a unary prefix operator applied to an operand. Two
// operator values carry distinguished meaning beyond "ordinary unary op":
// AND ('&') is address-of/Pointer formation, and DOT ('.') with no
// preceding operand is ImplicitAccess (an enum-literal-style leading dot
// whose target is inferred from context). Both still parse through this
// one struct; the distinction is purely which Op they carry.
type PrefixExpression struct {
	NodeBase
	Op    token.Type
	Right Expression
}

func (*PrefixExpression) expressionNode() {}

// IsPointer reports whether this prefix expression is address-of formation.
func (p *PrefixExpression) IsPointer() bool { return p.Op == token.AND }

// IsImplicitAccess reports whether this is a leading-dot implicit access.
func (p *PrefixExpression) IsImplicitAccess() bool { return p.Op == token.DOT }

// BinaryExpression is an infix arithmetic/bitwise/comparison/boolean/
// membership ('is'/'in') / 'orelse' operator application.
type BinaryExpression struct {
	NodeBase
	Left  Expression
	Op    token.Type
	Right Expression
}

func (*BinaryExpression) expressionNode() {}

// AssignmentExpression is any '='-family infix operator.
type AssignmentExpression struct {
	NodeBase
	Left  Expression
	Op    token.Type
	Right Expression
}

func (*AssignmentExpression) expressionNode() {}

// DotExpression is member access via '.'.
type DotExpression struct {
	NodeBase
	Left  Expression
	Right *Identifier
}

func (*DotExpression) expressionNode() {}

// RangeExpression is '..' or '..=' .
type RangeExpression struct {
	NodeBase
	Start     Expression
	End       Expression
	Inclusive bool
}

func (*RangeExpression) expressionNode() {}

type CallExpression struct {
	NodeBase
	Function  Expression
	Arguments []Expression
}

func (*CallExpression) expressionNode() {}

type IndexExpression struct {
	NodeBase
	Array Expression
	Index Expression
}

func (*IndexExpression) expressionNode() {}

type ScopeResolutionExpression struct {
	NodeBase
	Outer Expression
	Inner *Identifier
}

func (*ScopeResolutionExpression) expressionNode() {}

// ---------------------------------------------------------------------
// Control flow expressions
// ---------------------------------------------------------------------

type IfExpression struct {
	NodeBase
	Condition   Expression
	Consequence Statement // Block, Expression, or Jump statement
	Alternate   Statement // nil if absent; otherwise Block, Expression, or Jump
}

func (*IfExpression) expressionNode() {}

type MatchArm struct {
	Pattern  Expression
	Dispatch Statement
}

type MatchExpression struct {
	NodeBase
	Matcher  Expression
	Arms     []MatchArm
	CatchAll Statement // nil if absent
}

func (*MatchExpression) expressionNode() {}

// ArrayExpression is an array literal. Size is nil when the size was
// written as the inferred placeholder '_'.
type ArrayExpression struct {
	NodeBase
	Size  Expression // *UnsignedIntLiteral (size-typed) or nil
	Items []Expression
}

func (a *ArrayExpression) expressionNode() {}
func (a *ArrayExpression) IsInferredSize() bool { return a.Size == nil }

// ForCapture is one '|capture, ...|' binding. Placeholder is true for '_'.
type ForCapture struct {
	Placeholder bool
	Capture     Expression // *Identifier or *PrefixExpression (pointer); nil if Placeholder
}

type ForExpression struct {
	NodeBase
	Iterables []Expression
	Captures  []ForCapture // nil if the capture clause was omitted entirely
	Block     *BlockStatement
	NonBreak  Statement // nil if absent
}

func (*ForExpression) expressionNode() {}

type WhileExpression struct {
	NodeBase
	Condition    Expression
	Continuation Expression // nil if absent
	Block        *BlockStatement
	NonBreak     Statement // nil if absent
}

func (*WhileExpression) expressionNode() {}

type DoWhileExpression struct {
	NodeBase
	Block     *BlockStatement
	Condition Expression
}

func (*DoWhileExpression) expressionNode() {}

type InfiniteLoopExpression struct {
	NodeBase
	Block *BlockStatement
}

func (*InfiniteLoopExpression) expressionNode() {}

// ---------------------------------------------------------------------
// Definitions
// ---------------------------------------------------------------------

type FunctionParameter struct {
	Name *Identifier
	Type *TypeExpression
}

// FunctionExpression is both a function literal/definition and, when Body
// is nil, a bare function *type* (used inside type clauses).
type FunctionExpression struct {
	NodeBase
	Mutable    bool
	Parameters []FunctionParameter
	ReturnType *TypeExpression
	Body       *BlockStatement // nil => this is a function type, not a definition
	NodeID     uuid.UUID
}

func (*FunctionExpression) expressionNode() {}
func (f *FunctionExpression) IsType() bool  { return f.Body == nil }

// StructExpression is a struct type literal. Its members are declaration
// statements (each possibly carrying a default value), matching spec's
// simplified "members: seq of DeclStatement" model.
type StructExpression struct {
	NodeBase
	Packed  bool
	Members []*DeclStatement
	NodeID  uuid.UUID
}

func (*StructExpression) expressionNode() {}

type EnumVariant struct {
	Name    *Identifier
	Default Expression // nil if the variant has no explicit value
}

type EnumExpression struct {
	NodeBase
	Underlying *Identifier // nil if no ': underlying' clause
	Variants   []EnumVariant
	NodeID     uuid.UUID
}

func (*EnumExpression) expressionNode() {}

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

// TypeModifierSet is a bitset over the {mut, ref} type modifiers.
type TypeModifierSet int

const (
	TypeModMut TypeModifierSet = 1 << iota
	TypeModRef
)

func (s TypeModifierSet) Has(m TypeModifierSet) bool { return s&m != 0 }

// TypeConstraint syntactically tags whether a named type resolves to a
// primitive keyword or a user/generic identifier. This is a parse-time
// classification only; no semantic type resolution happens here.
type TypeConstraint int

const (
	ConstraintNone TypeConstraint = iota
	ConstraintPrimitive
	ConstraintGeneric
)

// TypeVariant is implemented by the three shapes an explicit type's inner
// spelling can take.
type TypeVariant interface{ typeVariantNode() }

// IdentType names a type by identifier (primitive keyword or user type name).
type IdentType struct {
	Name *Identifier
}

func (IdentType) typeVariantNode() {}

// FunctionTypeVariant is a body-less FunctionExpression used as a type.
type FunctionTypeVariant struct {
	Function *FunctionExpression
}

func (FunctionTypeVariant) typeVariantNode() {}

// ArrayTypeVariant is one or more array dimensions wrapping an inner type.
type ArrayTypeVariant struct {
	Dimensions []Expression // each the expression written between one pair of brackets; its type is not checked
	Inner      *TypeExpression
}

func (ArrayTypeVariant) typeVariantNode() {}

// ExplicitType is the fully-spelled-out form of a type clause (as opposed
// to the inferred form produced by ':=').
type ExplicitType struct {
	Modifiers  TypeModifierSet
	Variant    TypeVariant
	Constraint TypeConstraint
	Nullable   bool
}

// TypeExpression is a type clause: either Explicit (a ': <type>' clause)
// or not (an inferred ':=' clause, Explicit == nil).
type TypeExpression struct {
	NodeBase
	Explicit *ExplicitType
}

func (*TypeExpression) expressionNode() {}
func (t *TypeExpression) IsInferred() bool { return t.Explicit == nil }

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

type BlockStatement struct {
	NodeBase
	Statements []Statement
}

func (*BlockStatement) statementNode() {}

type ExpressionStatement struct {
	NodeBase
	Expr Expression
}

func (*ExpressionStatement) statementNode() {}

// DeclModifierSet is a bitset over the six declaration modifiers.
type DeclModifierSet int

const (
	ModVariable DeclModifierSet = 1 << iota
	ModConstant
	ModComptime
	ModPrivate
	ModExtern
	ModExport
)

func (s DeclModifierSet) Has(m DeclModifierSet) bool { return s&m != 0 }
func (s DeclModifierSet) Count(mask DeclModifierSet) int {
	n := 0
	for _, m := range []DeclModifierSet{ModVariable, ModConstant, ModComptime, ModPrivate, ModExtern, ModExport} {
		if mask&m != 0 && s&m != 0 {
			n++
		}
	}
	return n
}

type DeclStatement struct {
	NodeBase
	Ident     *Identifier
	Type      *TypeExpression // nil when neither ':' nor ':=' followed the name (an UNEXPECTED_TOKEN diagnostic is recorded)
	Value     Expression      // nil if forward-declared
	Modifiers DeclModifierSet
	NodeID    uuid.UUID
}

func (*DeclStatement) statementNode() {}

// JumpKind distinguishes the three jump statement forms.
type JumpKind int

const (
	JumpBreak JumpKind = iota
	JumpContinue
	JumpReturn
)

type JumpStatement struct {
	NodeBase
	Kind       JumpKind
	Expression Expression // nil if no operand
}

func (*JumpStatement) statementNode() {}

type DiscardStatement struct {
	NodeBase
	Discarded Expression
}

func (*DiscardStatement) statementNode() {}

// ImportStatement imports either a named module (ModuleImport set) or a
// user file path string (UserImport set). At most one of the two is set;
// neither is set when the import was diagnosed as ILLEGAL_IMPORT.
type ImportStatement struct {
	NodeBase
	ModuleImport *Identifier
	UserImport   *StringLiteral
	Alias        *Identifier // nil if absent; required for user imports
	NodeID       uuid.UUID
}

func (*ImportStatement) statementNode() {}

func (i *ImportStatement) IsModuleImport() bool { return i.ModuleImport != nil }
func (i *ImportStatement) IsUserImport() bool   { return i.UserImport != nil }

// Program is the root of a parsed source file: its top-level statements.
// Diagnostics are returned separately by Parser.ParseProgram.
type Program struct {
	Statements []Statement
}
