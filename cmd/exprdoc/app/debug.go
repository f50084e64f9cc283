package app

import (
	"io"

	"github.com/phillarmonic/exprdoc/internal/ast"
	"github.com/phillarmonic/exprdoc/internal/debug"
)

// Domain: Debug Mode
// This file contains logic for inspecting a loaded tree (outline, JSON, YAML)

// DebugOptions selects which debug views to print
type DebugOptions struct {
	AST  bool
	JSON bool
	YAML bool
}

// requested reports whether a specific view was requested
func (o DebugOptions) requested() bool {
	return o.AST || o.JSON || o.YAML
}

// HandleDebugMode prints the requested debug views of node
func HandleDebugMode(w io.Writer, node ast.Node, opts DebugOptions) error {
	// If no specific debug flags were set, show full debug by default
	if !opts.requested() {
		debug.DebugFull(w, node)
		return nil
	}

	if opts.AST {
		debug.DebugAST(w, node)
	}
	if opts.JSON {
		debug.DebugJSON(w, node)
	}
	if opts.YAML {
		debug.DebugYAML(w, node)
	}
	return nil
}
