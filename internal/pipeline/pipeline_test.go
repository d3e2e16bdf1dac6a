package pipeline

import (
	"errors"
	"testing"

	"github.com/trevorswan11/conch/internal/token"
)

func TestStandardPipelineProducesTokensAndTree(t *testing.T) {
	pl := Standard()
	ctx := &PipelineContext{Source: "var x := 1 + 2 * 3;"}
	if err := pl.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(ctx.Tokens) == 0 {
		t.Fatalf("expected lexer stage to populate Tokens")
	}
	if ctx.Tree == nil || len(ctx.Tree.Statements) != 1 {
		t.Fatalf("expected parser stage to populate a single-statement Tree, got %+v", ctx.Tree)
	}
	if len(ctx.ParserDiagnostics) != 0 {
		t.Errorf("unexpected parser diagnostics: %v", ctx.ParserDiagnostics)
	}
}

func TestLexerProcessorFlagsIllegalTokens(t *testing.T) {
	ctx := &PipelineContext{Source: `"unterminated`}
	if err := (LexerProcessor{}).Process(ctx); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(ctx.TokenDiagnostics) != 1 {
		t.Fatalf("want 1 token diagnostic for unterminated string, got %d", len(ctx.TokenDiagnostics))
	}
	found := false
	for _, tok := range ctx.Tokens {
		if tok.Type == token.ILLEGAL {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an ILLEGAL token among ctx.Tokens")
	}
}

func TestParserProcessorCollectsDiagnosticsOnBadInput(t *testing.T) {
	ctx := &PipelineContext{Source: "const x: int;"}
	if err := (ParserProcessor{}).Process(ctx); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(ctx.ParserDiagnostics) == 0 {
		t.Errorf("expected a diagnostic for a const decl missing its value")
	}
}

func TestPipelineStopsOnHardError(t *testing.T) {
	pl := New(errStage{})
	err := pl.Run(&PipelineContext{Source: ""})
	if err == nil {
		t.Fatalf("expected Run to propagate the stage error")
	}
}

type errStage struct{}

func (errStage) Name() string { return "boom" }
func (errStage) Process(ctx *PipelineContext) error {
	return errors.New("boom")
}
