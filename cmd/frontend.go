package cmd

import (
	"errors"

	"github.com/Mr-H-06/Rcompiler/ast"
	"github.com/Mr-H-06/Rcompiler/sema"
)

// Frontend is the contract the lexer, parser, and semantic analyzer are
// assumed to satisfy: given source text, produce a fully-typed AST and an
// analyzer handle over it, or report why they could not.  This core never
// implements Frontend itself -- it is supplied by the rest of the
// compiler -- but Run depends only on this interface, so any hand-built
// Frontend that skips lexing and parsing entirely can drive it.
type Frontend interface {
	Parse(source string) (*ast.Program, *sema.Analyzer, error)
}

// NoFrontend is the Frontend wired into main.go by default: lexing,
// parsing, and semantic analysis live outside this core, so a standalone
// build of this module has nothing to plug in until it is embedded in the
// rest of the compiler.
type NoFrontend struct{}

func (NoFrontend) Parse(source string) (*ast.Program, *sema.Analyzer, error) {
	return nil, nil, errors.New("no frontend wired into this build: lexing/parsing/analysis are supplied by the rest of the compiler")
}
