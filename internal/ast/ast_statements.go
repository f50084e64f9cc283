package ast

import (
	"github.com/phillarmonic/exprdoc/internal/document"
	"github.com/phillarmonic/exprdoc/internal/errors"
)

// ExpressionStatement represents a statement made of a single expression,
// e.g. "1 + 2;". Expression may stay nil while a parser is still building it.
type ExpressionStatement struct {
	Expression Expression
}

// NewExpressionStatement creates a statement wrapping expr. expr may be nil
// and supplied later through SetExpression.
func NewExpressionStatement(expr Expression) *ExpressionStatement {
	if isNil(expr) {
		return &ExpressionStatement{}
	}
	return &ExpressionStatement{Expression: expr}
}

// SetExpression sets the wrapped expression. It can only be set once.
func (es *ExpressionStatement) SetExpression(expr Expression) error {
	if isNil(expr) {
		return errors.NewConstructionError(es.Kind().String(), "expression", "expression is nil")
	}
	if !isNil(es.Expression) {
		return errors.NewConstructionError(es.Kind().String(), "expression", "expression is already set")
	}
	es.Expression = expr
	return nil
}

func (es *ExpressionStatement) statementNode() {}

func (es *ExpressionStatement) Kind() NodeKind { return KindExpressionStatement }

func (es *ExpressionStatement) ToDocument() (document.Document, error) {
	if isNil(es.Expression) {
		return document.Document{}, errors.NewIncompleteNodeError(es.Kind().String(), "expression")
	}

	expr, err := renderExpression(es.Expression, make(map[Node]bool))
	if err != nil {
		return document.Document{}, err
	}

	doc := document.NewObject()
	doc.Set("type", document.String(es.Kind().String()))
	doc.Set("expression", expr)
	return doc, nil
}

func (es *ExpressionStatement) String() string {
	if isNil(es.Expression) {
		return missing + ";"
	}
	return formatExpression(es.Expression, make(map[Node]bool)) + ";"
}
