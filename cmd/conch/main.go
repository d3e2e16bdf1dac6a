// Command conch is a thin demonstration front end over the lexer and
// parser packages: it reads source text and dumps either its token stream
// or its parsed syntax tree. It is not a compiler driver — semantic
// analysis and code generation are out of scope for this module.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/trevorswan11/conch/internal/lexer"
	"github.com/trevorswan11/conch/internal/parser"
)

func main() {
	dump := flag.String("dump", "tokens", "what to print: \"tokens\" or \"ast\"")
	src := flag.String("src", "", "source text; reads stdin if empty")
	tag := flag.Bool("tag", false, "prefix output with a run-correlation uuid")
	flag.Parse()

	debug := os.Getenv("CONCH_DEBUG") != ""
	logger := log.New(os.Stderr, "conch: ", log.Ltime)

	source := *src
	if source == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatalf("reading stdin: %v", err)
		}
		source = string(data)
	}

	if *tag {
		fmt.Printf("run %s\n", uuid.New())
	}
	if debug {
		logger.Printf("source length: %d bytes", len(source))
	}

	switch *dump {
	case "tokens":
		dumpTokens(source, logger, debug)
	case "ast":
		dumpAST(source, logger, debug)
	default:
		logger.Fatalf("unknown -dump mode %q", *dump)
	}
}

func dumpTokens(source string, logger *log.Logger, debug bool) {
	l := lexer.New(source)
	tokens := l.Consume()
	if debug {
		logger.Printf("produced %d tokens", len(tokens))
	}
	for _, t := range tokens {
		fmt.Println(t.String())
	}
}

func dumpAST(source string, logger *log.Logger, debug bool) {
	p := parser.New(source)
	program, diags := p.ParseProgram()
	if debug {
		logger.Printf("parsed %d top-level statements, %d diagnostics", len(program.Statements), len(diags))
	}
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	for _, stmt := range program.Statements {
		fmt.Printf("%T @ %v\n", stmt, stmt.Pos())
	}
}
