package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phillarmonic/exprdoc/internal/document"
	"github.com/phillarmonic/exprdoc/internal/errors"
)

// missing stands in for unset children in String renderings
const missing = "<missing>"

// InfixExpression represents binary operations like 1 + 2 or 3 * 4.
// Operator is kept as written; which operators are legal is up to the parser.
type InfixExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

// NewInfixExpression creates an infix expression whose right operand is set
// later with SetRight. left is required.
func NewInfixExpression(left Expression, operator string) (*InfixExpression, error) {
	if isNil(left) {
		return nil, errors.NewConstructionError(KindInfixExpression.String(), "left_node", "left operand is required")
	}
	return &InfixExpression{Left: left, Operator: operator}, nil
}

// SetRight sets the right operand. It can only be set once, and right must
// not contain ie or share a node with the left operand.
func (ie *InfixExpression) SetRight(right Expression) error {
	if isNil(right) {
		return errors.NewConstructionError(ie.Kind().String(), "right_node", "right operand is nil")
	}
	if !isNil(ie.Right) {
		return errors.NewConstructionError(ie.Kind().String(), "right_node", "right operand is already set")
	}
	if reaches(right, ie) {
		return errors.NewConstructionError(ie.Kind().String(), "right_node", "right operand contains the expression itself")
	}
	if shared := sharedNode(ie.Left, right); shared != nil {
		return errors.Constructionf(ie.Kind().String(), "right_node", "%s is already owned by the left operand", shared.Kind())
	}
	ie.Right = right
	return nil
}

func (ie *InfixExpression) expressionNode() {}

func (ie *InfixExpression) Kind() NodeKind { return KindInfixExpression }

func (ie *InfixExpression) ToDocument() (document.Document, error) {
	return ie.render(make(map[Node]bool))
}

// render builds the document while tracking the expressions on the current
// path, so a cycle assembled through the exported fields fails instead of
// recursing forever.
func (ie *InfixExpression) render(active map[Node]bool) (document.Document, error) {
	if active[ie] {
		return document.Document{}, errors.NewConstructionError(ie.Kind().String(), "", "expression contains itself")
	}
	if isNil(ie.Left) {
		return document.Document{}, errors.NewIncompleteNodeError(ie.Kind().String(), "left_node")
	}
	if isNil(ie.Right) {
		return document.Document{}, errors.NewIncompleteNodeError(ie.Kind().String(), "right_node")
	}

	active[ie] = true
	defer delete(active, ie)

	left, err := renderExpression(ie.Left, active)
	if err != nil {
		return document.Document{}, err
	}
	right, err := renderExpression(ie.Right, active)
	if err != nil {
		return document.Document{}, err
	}

	doc := document.NewObject()
	doc.Set("type", document.String(ie.Kind().String()))
	doc.Set("left_node", left)
	doc.Set("operator", document.String(ie.Operator))
	doc.Set("right_node", right)
	return doc, nil
}

func (ie *InfixExpression) String() string {
	return ie.format(make(map[Node]bool))
}

func (ie *InfixExpression) format(active map[Node]bool) string {
	if active[ie] {
		return "<cycle>"
	}
	active[ie] = true
	defer delete(active, ie)

	return fmt.Sprintf("(%s %s %s)", formatExpression(ie.Left, active), ie.Operator, formatExpression(ie.Right, active))
}

// renderExpression renders expr, carrying the cycle guard into nested infix
// expressions.
func renderExpression(expr Expression, active map[Node]bool) (document.Document, error) {
	if ie, ok := expr.(*InfixExpression); ok {
		return ie.render(active)
	}
	return expr.ToDocument()
}

func formatExpression(expr Expression, active map[Node]bool) string {
	if isNil(expr) {
		return missing
	}
	if ie, ok := expr.(*InfixExpression); ok {
		return ie.format(active)
	}
	return expr.String()
}

// IntegerLiteral represents integer constants like 42
type IntegerLiteral struct {
	Value int64
}

// NewIntegerLiteral creates an integer literal
func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{Value: value}
}

func (il *IntegerLiteral) expressionNode() {}

func (il *IntegerLiteral) Kind() NodeKind { return KindIntegerLiteral }

func (il *IntegerLiteral) ToDocument() (document.Document, error) {
	doc := document.NewObject()
	doc.Set("type", document.String(il.Kind().String()))
	doc.Set("value", document.Integer(il.Value))
	return doc, nil
}

func (il *IntegerLiteral) String() string {
	return strconv.FormatInt(il.Value, 10)
}

// FloatLiteral represents floating-point constants like 3.5
type FloatLiteral struct {
	Value float64
}

// NewFloatLiteral creates a float literal. NaN and infinities have no
// document form and are rejected.
func NewFloatLiteral(value float64) (*FloatLiteral, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, errors.Constructionf(KindFloatLiteral.String(), "value", "value %v is not a finite number", value)
	}
	return &FloatLiteral{Value: value}, nil
}

func (fl *FloatLiteral) expressionNode() {}

func (fl *FloatLiteral) Kind() NodeKind { return KindFloatLiteral }

func (fl *FloatLiteral) ToDocument() (document.Document, error) {
	if math.IsNaN(fl.Value) || math.IsInf(fl.Value, 0) {
		return document.Document{}, errors.Constructionf(fl.Kind().String(), "value", "value %v is not a finite number", fl.Value)
	}

	doc := document.NewObject()
	doc.Set("type", document.String(fl.Kind().String()))
	doc.Set("value", document.Float(fl.Value))
	return doc, nil
}

func (fl *FloatLiteral) String() string {
	s := strconv.FormatFloat(fl.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
