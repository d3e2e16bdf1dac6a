package parser

import (
	"testing"

	"github.com/trevorswan11/conch/internal/ast"
)

func parseOK(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(input)
	program, diags := p.ParseProgram()
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, diags)
	}
	return program
}

func TestParseVarDeclWithInferredType(t *testing.T) {
	program := parseOK(t, "var x := 1 + 2;")
	if len(program.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.DeclStatement)
	if !ok {
		t.Fatalf("want *ast.DeclStatement, got %T", program.Statements[0])
	}
	if decl.Ident.Name != "x" {
		t.Errorf("decl ident = %q, want x", decl.Ident.Name)
	}
	if !decl.Modifiers.Has(ast.ModVariable) {
		t.Errorf("decl should carry ModVariable")
	}
	if !decl.Type.IsInferred() {
		t.Errorf("':=' decl should have an inferred type")
	}
	bin, ok := decl.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("value want *ast.BinaryExpression, got %T", decl.Value)
	}
	if _, ok := bin.Left.(*ast.SignedIntLiteral); !ok {
		t.Errorf("left operand want *ast.SignedIntLiteral, got %T", bin.Left)
	}
}

func TestOperatorPrecedenceMulBeforeAdd(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3), not (1 + 2) * 3.
	program := parseOK(t, "var discard_target := 1 + 2 * 3;")
	decl := program.Statements[0].(*ast.DeclStatement)
	outer, ok := decl.Value.(*ast.BinaryExpression)
	if !ok || outer.Op.String() != "PLUS" {
		t.Fatalf("outer expression = %+v, want top-level PLUS", decl.Value)
	}
	if _, ok := outer.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("right of PLUS should itself be a BinaryExpression (2 * 3), got %T", outer.Right)
	}
}

func TestExponentBindsTighterThanMul(t *testing.T) {
	program := parseOK(t, "var x := 2 * 3 ** 2;")
	decl := program.Statements[0].(*ast.DeclStatement)
	mul := decl.Value.(*ast.BinaryExpression)
	if mul.Op.String() != "STAR" {
		t.Fatalf("outer op = %s, want STAR", mul.Op)
	}
	if _, ok := mul.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("right of STAR should be the exponent expression, got %T", mul.Right)
	}
}

func TestIfExpressionRestrictedBranches(t *testing.T) {
	program := parseOK(t, "if x > 0 { return x; } else { return 0; }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	ifExpr, ok := stmt.Expr.(*ast.IfExpression)
	if !ok {
		t.Fatalf("want *ast.IfExpression, got %T", stmt.Expr)
	}
	if _, ok := ifExpr.Consequence.(*ast.BlockStatement); !ok {
		t.Errorf("consequence want *ast.BlockStatement, got %T", ifExpr.Consequence)
	}
	if _, ok := ifExpr.Alternate.(*ast.BlockStatement); !ok {
		t.Errorf("alternate want *ast.BlockStatement, got %T", ifExpr.Alternate)
	}
}

func TestForLoopWithReferenceCapture(t *testing.T) {
	program := parseOK(t, "for items |&item| { use(item); }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	forExpr := stmt.Expr.(*ast.ForExpression)
	if len(forExpr.Captures) != 1 {
		t.Fatalf("want 1 capture, got %d", len(forExpr.Captures))
	}
	capExpr, ok := forExpr.Captures[0].Capture.(*ast.PrefixExpression)
	if !ok || !capExpr.IsPointer() {
		t.Fatalf("capture want a pointer PrefixExpression, got %+v", forExpr.Captures[0].Capture)
	}
}

func TestForLoopCaptureArityMismatchIsDiagnosed(t *testing.T) {
	p := New("for (xs) |a, b| { a; }")
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for a capture/iterable arity mismatch")
	}
}

func TestStructExpressionMembers(t *testing.T) {
	program := parseOK(t, "var shape := struct { x: int, y: int = 0 };")
	decl := program.Statements[0].(*ast.DeclStatement)
	structExpr := decl.Value.(*ast.StructExpression)
	if len(structExpr.Members) != 2 {
		t.Fatalf("want 2 members, got %d", len(structExpr.Members))
	}
	if structExpr.Members[1].Value == nil {
		t.Errorf("second member should carry a default value")
	}
}

func TestEnumExpressionVariants(t *testing.T) {
	program := parseOK(t, "var color := enum { Red, Green, Blue = 9, };")
	decl := program.Statements[0].(*ast.DeclStatement)
	enumExpr := decl.Value.(*ast.EnumExpression)
	if len(enumExpr.Variants) != 3 {
		t.Fatalf("want 3 variants, got %d", len(enumExpr.Variants))
	}
	if enumExpr.Variants[2].Default == nil {
		t.Errorf("Blue variant should carry an explicit default")
	}
}

func TestEnumMissingTrailingCommaIsDiagnosed(t *testing.T) {
	p := New("var color := enum { Red, Green };")
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for a missing trailing comma")
	}
}

func TestFunctionExpressionWithReturnType(t *testing.T) {
	program := parseOK(t, "var add := fn (a: int, b: int): int { return a + b; };")
	decl := program.Statements[0].(*ast.DeclStatement)
	fn := decl.Value.(*ast.FunctionExpression)
	if len(fn.Parameters) != 2 {
		t.Fatalf("want 2 parameters, got %d", len(fn.Parameters))
	}
	if fn.IsType() {
		t.Errorf("a function literal with a body should not report IsType()")
	}
	if fn.ReturnType == nil {
		t.Fatalf("want a return type")
	}
}

func TestMatchExpressionArmsAndCatchAll(t *testing.T) {
	program := parseOK(t, `var result := match x { 0 => return "zero", _ => return "other" };`)
	decl := program.Statements[0].(*ast.DeclStatement)
	matchExpr := decl.Value.(*ast.MatchExpression)
	if len(matchExpr.Arms) != 1 {
		t.Fatalf("want 1 arm, got %d", len(matchExpr.Arms))
	}
	if matchExpr.CatchAll == nil {
		t.Fatalf("want a catch-all arm")
	}
}

func TestScopeResolutionAndDotChaining(t *testing.T) {
	program := parseOK(t, "var v := Outer::Inner.field;")
	decl := program.Statements[0].(*ast.DeclStatement)
	dot, ok := decl.Value.(*ast.DotExpression)
	if !ok {
		t.Fatalf("outermost want *ast.DotExpression, got %T", decl.Value)
	}
	if _, ok := dot.Left.(*ast.ScopeResolutionExpression); !ok {
		t.Errorf("dot.Left want *ast.ScopeResolutionExpression, got %T", dot.Left)
	}
}

func TestArrayLiteralInferredSize(t *testing.T) {
	program := parseOK(t, "var xs := [_]{ 1, 2, 3 };")
	decl := program.Statements[0].(*ast.DeclStatement)
	arr := decl.Value.(*ast.ArrayExpression)
	if !arr.IsInferredSize() {
		t.Errorf("want inferred size array")
	}
	if len(arr.Items) != 3 {
		t.Errorf("want 3 items, got %d", len(arr.Items))
	}
}

func TestArrayLiteralExplicitSizeMatchingCount(t *testing.T) {
	program := parseOK(t, "var xs := [3uz]{ 1, 2, 3 };")
	decl := program.Statements[0].(*ast.DeclStatement)
	arr := decl.Value.(*ast.ArrayExpression)
	if arr.IsInferredSize() {
		t.Errorf("want an explicit size array")
	}
}

func TestArrayLiteralSizeCountMismatchIsDiagnosed(t *testing.T) {
	p := New("var xs := [3uz]{ 1, 2 };")
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for a size/item-count mismatch")
	}
}

func TestArrayLiteralExplicitZeroSizeIsDiagnosed(t *testing.T) {
	p := New("var xs := [0uz]{};")
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for an explicit zero-size array")
	}
}

func TestMutabilityGroupExclusionIsDiagnosed(t *testing.T) {
	p := New("comptime var a := 2;")
	_, diags := p.ParseProgram()
	if len(diags) != 1 {
		t.Fatalf("want exactly 1 diagnostic, got %d: %v", len(diags), diags)
	}
}

func TestAccessGroupExclusionIsDiagnosed(t *testing.T) {
	p := New("private extern a: int;")
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for private+extern")
	}
}

func TestLinkageGroupExclusionIsDiagnosed(t *testing.T) {
	p := New("extern export a: int;")
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for extern+export")
	}
}

func TestConstDeclMissingValueIsDiagnosed(t *testing.T) {
	p := New("const x: int;")
	_, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for const decl with no value")
	}
}

func TestImportWithAlias(t *testing.T) {
	program := parseOK(t, `import "vendor/util.conch" as util;`)
	imp := program.Statements[0].(*ast.ImportStatement)
	if !imp.IsUserImport() {
		t.Errorf("want a user import")
	}
	if imp.Alias == nil || imp.Alias.Name != "util" {
		t.Errorf("alias = %+v, want util", imp.Alias)
	}
}

func TestRangeExpressionInclusive(t *testing.T) {
	program := parseOK(t, "var r := 0..=10;")
	decl := program.Statements[0].(*ast.DeclStatement)
	rng := decl.Value.(*ast.RangeExpression)
	if !rng.Inclusive {
		t.Errorf("want an inclusive range")
	}
}

func TestTableDrivenLiteralKinds(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want any
	}{
		{"signed", "var x := 2;", &ast.SignedIntLiteral{}},
		{"unsigned", "var x := 2u;", &ast.UnsignedIntLiteral{}},
		{"float", "var x := 2.5;", &ast.FloatLiteral{}},
		{"bool", "var x := true;", &ast.BoolLiteral{}},
		{"string", `var x := "hi";`, &ast.StringLiteral{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			program := parseOK(t, c.src)
			decl := program.Statements[0].(*ast.DeclStatement)
			switch c.want.(type) {
			case *ast.SignedIntLiteral:
				if _, ok := decl.Value.(*ast.SignedIntLiteral); !ok {
					t.Errorf("got %T", decl.Value)
				}
			case *ast.UnsignedIntLiteral:
				if _, ok := decl.Value.(*ast.UnsignedIntLiteral); !ok {
					t.Errorf("got %T", decl.Value)
				}
			case *ast.FloatLiteral:
				if _, ok := decl.Value.(*ast.FloatLiteral); !ok {
					t.Errorf("got %T", decl.Value)
				}
			case *ast.BoolLiteral:
				if _, ok := decl.Value.(*ast.BoolLiteral); !ok {
					t.Errorf("got %T", decl.Value)
				}
			case *ast.StringLiteral:
				if _, ok := decl.Value.(*ast.StringLiteral); !ok {
					t.Errorf("got %T", decl.Value)
				}
			}
		})
	}
}
