package lexer

import (
	"testing"

	"github.com/trevorswan11/conch/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func assertTypes(t *testing.T, input string, want []token.Type) {
	t.Helper()
	got := typesOf(New(input).Consume())
	if len(got) != len(want) {
		t.Fatalf("Consume(%q) produced %d tokens %v, want %d %v", input, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s (input %q)", i, got[i], want[i], input)
		}
	}
}

func TestIntegerSuffixFamilies(t *testing.T) {
	assertTypes(t, "2 2l 2z 2u 2ul 2uz", []token.Type{
		token.INT_10, token.LINT_10, token.ZINT_10, token.UINT_10, token.ULINT_10, token.UZINT_10, token.END,
	})
}

func TestIntegerBasePrefixes(t *testing.T) {
	assertTypes(t, "0b101 0o17 10 0xFF", []token.Type{
		token.INT_2, token.INT_8, token.INT_10, token.INT_16, token.END,
	})
}

func TestFloatLiterals(t *testing.T) {
	assertTypes(t, "3.14 2e10 1.5e-3", []token.Type{
		token.FLOAT, token.FLOAT, token.FLOAT, token.END,
	})
}

func TestFloatDotIntSplit(t *testing.T) {
	// "3.4.5" is FLOAT(3.4) DOT INT(5): a float literal can't itself
	// contain two dots, so the second '.' falls back to member/range
	// punctuation.
	toks := New("3.4.5").Consume()
	assertTypes(t, "3.4.5", []token.Type{token.FLOAT, token.DOT, token.INT_10, token.END})
	if toks[0].Slice != "3.4" {
		t.Errorf("first token slice = %q, want %q", toks[0].Slice, "3.4")
	}
}

func TestStringLiteral(t *testing.T) {
	toks := New(`"hello\nworld"`).Consume()
	if toks[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	decoded, ok := PromoteString(toks[0])
	if !ok || decoded != "hello\nworld" {
		t.Errorf("PromoteString = (%q, %v), want (\"hello\\nworld\", true)", decoded, ok)
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	assertTypes(t, `"unterminated`, []token.Type{token.ILLEGAL, token.END})
}

func TestByteLiteral(t *testing.T) {
	toks := New(`'a' '\n'`).Consume()
	assertTypes(t, `'a' '\n'`, []token.Type{token.BYTE, token.BYTE, token.END})
	b, ok := PromoteByte(toks[0])
	if !ok || b != 'a' {
		t.Errorf("PromoteByte('a') = (%v, %v), want ('a', true)", b, ok)
	}
	nl, ok := PromoteByte(toks[1])
	if !ok || nl != '\n' {
		t.Errorf("PromoteByte('\\n') = (%v, %v), want ('\\n', true)", nl, ok)
	}
}

func TestMultilineStringMergesAdjacentLines(t *testing.T) {
	input := "\\\\first\n\\\\second\n"
	toks := New(input).Consume()
	if toks[0].Type != token.MULTILINE_STRING {
		t.Fatalf("expected MULTILINE_STRING, got %s", toks[0].Type)
	}
	if toks[0].Slice != "first\nsecond" {
		t.Errorf("multiline slice = %q, want %q", toks[0].Slice, "first\nsecond")
	}
}

func TestCommentTokenHasTrimmedBody(t *testing.T) {
	toks := New("// a note\nvar").Consume()
	if toks[0].Type != token.COMMENT || toks[0].Slice != "a note" {
		t.Fatalf("comment token = %+v", toks[0])
	}
	if toks[1].Type != token.VAR {
		t.Fatalf("expected VAR after comment, got %s", toks[1].Type)
	}
}

func TestOperatorLongestMatch(t *testing.T) {
	assertTypes(t, "<<= >> >=", []token.Type{token.SHL_ASSIGN, token.SHR, token.GTEQ, token.END})
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := New("a\nbb").Consume()
	if toks[0].Location.Line != 1 || toks[0].Location.Column != 1 {
		t.Errorf("first token location = %+v", toks[0].Location)
	}
	if toks[1].Location.Line != 2 || toks[1].Location.Column != 1 {
		t.Errorf("second token location = %+v", toks[1].Location)
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	l := New("")
	first := l.Advance()
	second := l.Advance()
	if first.Type != token.END || second.Type != token.END {
		t.Fatalf("expected END, END; got %s, %s", first.Type, second.Type)
	}
}

func TestUnderscoreIsNotAnIdentifier(t *testing.T) {
	assertTypes(t, "_ _foo foo_", []token.Type{token.UNDERSCORE, token.IDENT, token.IDENT, token.END})
}

func TestBuiltinLookup(t *testing.T) {
	toks := New("@sizeOf(x)").Consume()
	if toks[0].Type != token.BUILTIN_SIZE_OF || toks[0].Slice != "sizeOf" {
		t.Fatalf("builtin token = %+v", toks[0])
	}
}
