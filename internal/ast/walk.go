package ast

import (
	"fmt"
	"math"
	"reflect"

	"github.com/phillarmonic/exprdoc/internal/errors"
)

// Child is an owned child slot of a node. Node is nil when the slot is unset.
type Child struct {
	Field string
	Node  Node
}

// Children returns the child slots of n in document order. Unset required
// slots are included with a nil Node.
func Children(n Node) []Child {
	switch n := n.(type) {
	case *Program:
		children := make([]Child, 0, len(n.Statements))
		for i, stmt := range n.Statements {
			children = append(children, Child{Field: fmt.Sprintf("statements[%d]", i), Node: nodeOrNil(stmt)})
		}
		return children
	case *ExpressionStatement:
		return []Child{{Field: "expression", Node: nodeOrNil(n.Expression)}}
	case *InfixExpression:
		return []Child{
			{Field: "left_node", Node: nodeOrNil(n.Left)},
			{Field: "right_node", Node: nodeOrNil(n.Right)},
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children. Each node is visited at
// most once, so a malformed tree with shared or cyclic children terminates.
func Walk(n Node, fn func(n Node, depth int) bool) {
	seen := make(map[Node]bool)
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		if isNil(n) || seen[n] {
			return
		}
		seen[n] = true
		if !fn(n, depth) {
			return
		}
		for _, c := range Children(n) {
			visit(c.Node, depth+1)
		}
	}
	visit(n, 0)
}

// Validate checks that the tree rooted at n can be serialized: every required
// child is set, no node has two owners, there are no cycles and every float
// is finite. All problems are reported together in an errors.ValidationError.
func Validate(n Node) error {
	verr := &errors.ValidationError{}
	if isNil(n) {
		verr.Add(errors.NewConstructionError("", "", "tree is nil"))
		return verr
	}

	seen := make(map[Node]string)
	var visit func(n Node, path string)
	visit = func(n Node, path string) {
		if first, ok := seen[n]; ok {
			verr.Add(errors.NewConstructionError(n.Kind().String(), "",
				fmt.Sprintf("node already owned at %s", describePath(first))).AtPath(describePath(path)))
			return
		}
		seen[n] = path

		if fl, ok := n.(*FloatLiteral); ok && (math.IsNaN(fl.Value) || math.IsInf(fl.Value, 0)) {
			verr.Add(errors.Constructionf(fl.Kind().String(), "value", "value %v is not a finite number", fl.Value).AtPath(describePath(path)))
		}

		for _, c := range Children(n) {
			childPath := joinPath(path, c.Field)
			if c.Node == nil {
				if _, ok := n.(*Program); ok {
					verr.Add(errors.NewConstructionError(n.Kind().String(), "statements", "statement is nil").AtPath(describePath(childPath)))
					continue
				}
				verr.Add(&errors.IncompleteNodeError{Kind: n.Kind().String(), Field: c.Field, Path: describePath(path)})
				continue
			}
			visit(c.Node, childPath)
		}
	}
	visit(n, "")

	return verr.ErrOrNil()
}

// reaches reports whether target is root or one of its descendants.
func reaches(root, target Node) bool {
	found := false
	Walk(root, func(n Node, _ int) bool {
		if n == target {
			found = true
		}
		return !found
	})
	return found
}

// sharedNode returns a node that appears in both trees, or nil.
func sharedNode(a, b Node) Node {
	owned := make(map[Node]bool)
	Walk(a, func(n Node, _ int) bool {
		owned[n] = true
		return true
	})

	var shared Node
	Walk(b, func(n Node, _ int) bool {
		if owned[n] {
			shared = n
		}
		return shared == nil
	})
	return shared
}

func joinPath(parent, field string) string {
	if parent == "" {
		return field
	}
	return parent + "." + field
}

func describePath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func nodeOrNil(n Node) Node {
	if isNil(n) {
		return nil
	}
	return n
}
