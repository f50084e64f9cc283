// Package debug prints expression trees for inspection.
package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/phillarmonic/exprdoc/internal/ast"
	"github.com/phillarmonic/exprdoc/internal/document"
)

// DebugAST prints the tree structure in a readable outline
func DebugAST(w io.Writer, node ast.Node) {
	fmt.Fprintln(w, "=== AST DEBUG ===")
	if node == nil {
		fmt.Fprintln(w, "Tree is nil")
		return
	}

	counts := make(map[ast.NodeKind]int)
	ast.Walk(node, func(n ast.Node, depth int) bool {
		counts[n.Kind()]++
		return true
	})

	printTree(w, node)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Node counts:")
	for _, k := range ast.Kinds() {
		if counts[k] > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", k, counts[k])
		}
	}
	fmt.Fprintln(w)
}

// printTree writes one outline line per node. Unset children are shown as
// <missing>; a node seen twice is not expanded again.
func printTree(w io.Writer, root ast.Node) {
	seen := make(map[ast.Node]bool)
	var visit func(label string, node ast.Node, indent string)
	visit = func(label string, node ast.Node, indent string) {
		prefix := indent
		if label != "" {
			prefix += label + ": "
		}
		if node == nil {
			fmt.Fprintf(w, "%s<missing>\n", prefix)
			return
		}
		if seen[node] {
			fmt.Fprintf(w, "%s%s (already shown)\n", prefix, node.Kind())
			return
		}
		seen[node] = true

		fmt.Fprintf(w, "%s%s%s\n", prefix, node.Kind(), detail(node))
		for _, c := range ast.Children(node) {
			visit(c.Field, c.Node, indent+"  ")
		}
	}
	visit("", root, "")
}

// detail returns the scalar data a node carries besides its children
func detail(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Program:
		return fmt.Sprintf(" (%d statements)", len(n.Statements))
	case *ast.InfixExpression:
		return fmt.Sprintf(" %q", n.Operator)
	case *ast.IntegerLiteral, *ast.FloatLiteral:
		return " " + n.String()
	}
	return ""
}

// DebugJSON outputs the tree document as indented JSON
func DebugJSON(w io.Writer, node ast.Node) {
	dump(w, "=== AST JSON ===", node, document.Options{Format: document.FormatJSON, Indent: 2})
}

// DebugYAML outputs the tree document as YAML
func DebugYAML(w io.Writer, node ast.Node) {
	dump(w, "=== AST YAML ===", node, document.Options{Format: document.FormatYAML, Indent: 2})
}

func dump(w io.Writer, header string, node ast.Node, opts document.Options) {
	fmt.Fprintln(w, header)
	if node == nil {
		fmt.Fprintln(w, "Tree is nil")
		return
	}

	doc, err := node.ToDocument()
	if err != nil {
		fmt.Fprintf(w, "Error rendering document: %v\n", err)
		return
	}

	if err := document.Encode(w, doc, opts); err != nil {
		fmt.Fprintf(w, "Error encoding %s: %v\n", strings.ToUpper(opts.Format.String()), err)
		return
	}
	fmt.Fprintln(w)
}

// DebugFull prints the outline followed by the JSON document
func DebugFull(w io.Writer, node ast.Node) {
	fmt.Fprintln(w, "=== FULL DEBUG SESSION ===")
	if node != nil {
		fmt.Fprintf(w, "Source: %s\n", truncateString(strings.ReplaceAll(node.String(), "\n", " "), 100))
		if err := ast.Validate(node); err != nil {
			fmt.Fprintf(w, "Validation: %v\n", err)
		} else {
			fmt.Fprintln(w, "Validation: ok")
		}
	}
	fmt.Fprintln(w)

	DebugAST(w, node)
	DebugJSON(w, node)
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
