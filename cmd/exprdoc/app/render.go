package app

import (
	"fmt"
	"io"
	"os"

	"github.com/phillarmonic/exprdoc/internal/ast"
	"github.com/phillarmonic/exprdoc/internal/document"
)

// Domain: Tree Loading and Rendering
// This file contains logic for reading node documents and re-rendering them

// readInput reads the named file, or stdin when name is empty or "-"
func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", name, err)
	}
	return data, nil
}

// LoadTree decodes a JSON or YAML node document and rebuilds the tree
func LoadTree(data []byte) (ast.Node, error) {
	doc, err := document.Decode(data)
	if err != nil {
		return nil, err
	}

	node, err := ast.FromDocument(doc)
	if err != nil {
		return nil, err
	}

	if err := ast.Validate(node); err != nil {
		return nil, err
	}
	return node, nil
}

// RenderTree writes the canonical document for node
func RenderTree(w io.Writer, node ast.Node, opts document.Options) error {
	doc, err := node.ToDocument()
	if err != nil {
		return err
	}
	return document.Encode(w, doc, opts)
}

// inputName describes the input for diagnostics
func inputName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}
