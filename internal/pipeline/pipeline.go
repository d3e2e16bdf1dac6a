// Package pipeline wires the lexer and parser into a small, ordered
// sequence of stages sharing one context value — the same "processors
// over a shared context" shape the teacher's compiler front end uses to
// chain its own stages.
package pipeline

import (
	"fmt"

	"github.com/trevorswan11/conch/internal/ast"
	"github.com/trevorswan11/conch/internal/diagnostics"
	"github.com/trevorswan11/conch/internal/lexer"
	"github.com/trevorswan11/conch/internal/parser"
	"github.com/trevorswan11/conch/internal/token"
)

// PipelineContext carries state between stages: the source being
// processed, the tokens produced, the AST produced, and every diagnostic
// raised along the way.
type PipelineContext struct {
	Source string
	Tokens []token.Token
	Tree   *ast.Program

	TokenDiagnostics  []diagnostics.Diagnostic[diagnostics.TokenError]
	ParserDiagnostics []diagnostics.Diagnostic[diagnostics.ParserError]
}

// Processor is one stage of a Pipeline. It mutates ctx in place and
// returns an error only for a failure severe enough to stop the pipeline
// outright (diagnostics collected along the way are not such failures).
type Processor interface {
	Name() string
	Process(ctx *PipelineContext) error
}

// Pipeline runs its processors in order over one shared context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from an ordered list of stages.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, stopping early if a stage reports a
// hard error.
func (pl *Pipeline) Run(ctx *PipelineContext) error {
	for _, proc := range pl.processors {
		if err := proc.Process(ctx); err != nil {
			return fmt.Errorf("%s: %w", proc.Name(), err)
		}
	}
	return nil
}

// LexerProcessor drives the lexer to completion, populating ctx.Tokens.
type LexerProcessor struct{}

func (LexerProcessor) Name() string { return "lexer" }

func (LexerProcessor) Process(ctx *PipelineContext) error {
	l := lexer.New(ctx.Source)
	ctx.Tokens = l.Consume()
	for _, t := range ctx.Tokens {
		if t.Type == token.ILLEGAL {
			ctx.TokenDiagnostics = append(ctx.TokenDiagnostics,
				diagnostics.AtToken(diagnostics.UnexpectedChar, t))
		}
	}
	return nil
}

// ParserProcessor drives the parser to completion, populating ctx.Tree.
// It re-lexes ctx.Source rather than reusing ctx.Tokens because the
// parser owns its own Lexer internally for two-token lookahead.
type ParserProcessor struct{}

func (ParserProcessor) Name() string { return "parser" }

func (ParserProcessor) Process(ctx *PipelineContext) error {
	p := parser.New(ctx.Source)
	tree, diags := p.ParseProgram()
	ctx.Tree = tree
	ctx.ParserDiagnostics = diags
	return nil
}

// Standard returns the Lexer+Parser pipeline; analysis/codegen stages are
// out of scope. cmd/conch does not use it and calls the lexer and parser
// directly.
func Standard() *Pipeline {
	return New(LexerProcessor{}, ParserProcessor{})
}
