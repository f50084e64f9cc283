package ast

import (
	"fmt"
	"slices"

	"github.com/phillarmonic/exprdoc/internal/document"
	"github.com/phillarmonic/exprdoc/internal/errors"
)

// fieldsByKind lists the keys each node document carries besides "type".
var fieldsByKind = map[NodeKind][]string{
	KindProgram:             {"statements"},
	KindExpressionStatement: {"expression"},
	KindInfixExpression:     {"left_node", "operator", "right_node"},
	KindIntegerLiteral:      {"value"},
	KindFloatLiteral:        {"value"},
}

// FromDocument rebuilds the tree described by doc, the inverse of
// Node.ToDocument. Any mismatch is reported as an errors.ConstructionError
// carrying the document path, and no partial tree is returned.
func FromDocument(doc document.Document) (Node, error) {
	return decodeNode(doc, "")
}

// ProgramFromDocument is FromDocument for documents that must hold a whole
// program.
func ProgramFromDocument(doc document.Document) (*Program, error) {
	n, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}
	p, ok := n.(*Program)
	if !ok {
		return nil, errors.Constructionf("", "", "expected a Program document, got %s", n.Kind()).AtPath(describePath(""))
	}
	return p, nil
}

func decodeNode(doc document.Document, path string) (Node, error) {
	fail := func(kind, field, format string, args ...any) error {
		return errors.Constructionf(kind, field, format, args...).AtPath(describePath(path))
	}

	if doc.Kind() != document.KindObject {
		return nil, fail("", "", "expected a node object, got %s", doc.Kind())
	}
	typeDoc, ok := doc.Get("type")
	if !ok {
		return nil, fail("", "", "missing \"type\" field")
	}
	name, ok := typeDoc.AsString()
	if !ok {
		return nil, fail("", "type", "expected string, got %s", typeDoc.Kind())
	}
	kind, ok := ParseNodeKind(name)
	if !ok {
		return nil, fail("", "type", "unknown node type %q", name)
	}

	allowed := fieldsByKind[kind]
	for _, key := range doc.Keys() {
		if key != "type" && !slices.Contains(allowed, key) {
			return nil, fail(kind.String(), key, "unexpected field")
		}
	}
	for _, key := range allowed {
		if _, ok := doc.Get(key); !ok {
			return nil, fail(kind.String(), key, "missing field")
		}
	}

	switch kind {
	case KindProgram:
		program, err := decodeProgram(doc, path)
		if err != nil {
			return nil, err
		}
		return program, nil
	case KindExpressionStatement:
		exprDoc, _ := doc.Get("expression")
		expr, err := decodeExpression(exprDoc, joinPath(path, "expression"))
		if err != nil {
			return nil, err
		}
		return NewExpressionStatement(expr), nil
	case KindInfixExpression:
		infix, err := decodeInfix(doc, path)
		if err != nil {
			return nil, err
		}
		return infix, nil
	case KindIntegerLiteral:
		value, _ := doc.Get("value")
		i, ok := value.AsInt()
		if !ok {
			return nil, fail(kind.String(), "value", "expected integer value, got %s", value.Kind())
		}
		return NewIntegerLiteral(i), nil
	case KindFloatLiteral:
		value, _ := doc.Get("value")
		f, ok := value.AsFloat()
		if !ok {
			return nil, fail(kind.String(), "value", "expected float value, got %s", value.Kind())
		}
		fl, err := NewFloatLiteral(f)
		if err != nil {
			return nil, fail(kind.String(), "value", "value %v is not a finite number", f)
		}
		return fl, nil
	}
	return nil, fail(kind.String(), "", "unsupported node type")
}

func decodeProgram(doc document.Document, path string) (*Program, error) {
	stmtsDoc, _ := doc.Get("statements")
	if stmtsDoc.Kind() != document.KindArray {
		return nil, errors.Constructionf(KindProgram.String(), "statements", "expected array, got %s", stmtsDoc.Kind()).AtPath(describePath(path))
	}

	program := &Program{}
	for i, entry := range stmtsDoc.Items() {
		entryPath := joinPath(path, fmt.Sprintf("statements[%d]", i))
		stmt, err := decodeStatementEntry(entry, entryPath)
		if err != nil {
			return nil, err
		}
		if err := program.AddStatement(stmt); err != nil {
			return nil, err
		}
	}
	return program, nil
}

// decodeStatementEntry unwraps the {"<kind>": {...}} object used for every
// element of Program.statements.
func decodeStatementEntry(entry document.Document, path string) (Statement, error) {
	if entry.Kind() != document.KindObject || entry.Len() != 1 {
		return nil, errors.Constructionf(KindProgram.String(), "statements",
			"expected a single-entry object keyed by the statement type").AtPath(describePath(path))
	}

	field := entry.Fields()[0]
	innerPath := joinPath(path, field.Key)
	n, err := decodeNode(field.Value, innerPath)
	if err != nil {
		return nil, err
	}

	stmt, ok := n.(Statement)
	if !ok {
		return nil, errors.Constructionf(KindProgram.String(), "statements",
			"%s is not a statement", n.Kind()).AtPath(describePath(innerPath))
	}
	if wrapper, ok := ParseNodeKind(field.Key); !ok || wrapper != stmt.Kind() {
		return nil, errors.Constructionf(KindProgram.String(), "statements",
			"wrapper key %q does not match statement type %s", field.Key, stmt.Kind()).AtPath(describePath(path))
	}
	return stmt, nil
}

func decodeInfix(doc document.Document, path string) (*InfixExpression, error) {
	opDoc, _ := doc.Get("operator")
	operator, ok := opDoc.AsString()
	if !ok {
		return nil, errors.Constructionf(KindInfixExpression.String(), "operator", "expected string, got %s", opDoc.Kind()).AtPath(describePath(path))
	}

	leftDoc, _ := doc.Get("left_node")
	left, err := decodeExpression(leftDoc, joinPath(path, "left_node"))
	if err != nil {
		return nil, err
	}
	rightDoc, _ := doc.Get("right_node")
	right, err := decodeExpression(rightDoc, joinPath(path, "right_node"))
	if err != nil {
		return nil, err
	}

	return Infix(left, operator).Right(right).Build()
}

func decodeExpression(doc document.Document, path string) (Expression, error) {
	n, err := decodeNode(doc, path)
	if err != nil {
		return nil, err
	}
	expr, ok := n.(Expression)
	if !ok {
		return nil, errors.Constructionf(n.Kind().String(), "", "%s is not an expression", n.Kind()).AtPath(describePath(path))
	}
	return expr, nil
}
