package ast

import (
	"github.com/phillarmonic/exprdoc/internal/errors"
)

// InfixBuilder assembles an InfixExpression whose right operand may arrive
// after the operator, the way a Pratt parser sees it. Build only returns
// complete expressions.
type InfixBuilder struct {
	left     Expression
	operator string
	right    Expression
}

// Infix starts an infix expression from its left operand and operator.
func Infix(left Expression, operator string) *InfixBuilder {
	return &InfixBuilder{left: left, operator: operator}
}

// Right sets the right operand.
func (b *InfixBuilder) Right(right Expression) *InfixBuilder {
	b.right = right
	return b
}

// Build returns the finished expression, or a ConstructionError naming the
// missing operand.
func (b *InfixBuilder) Build() (*InfixExpression, error) {
	ie, err := NewInfixExpression(b.left, b.operator)
	if err != nil {
		return nil, err
	}
	if isNil(b.right) {
		return nil, errors.NewConstructionError(ie.Kind().String(), "right_node", "right operand is required")
	}
	if err := ie.SetRight(b.right); err != nil {
		return nil, err
	}
	return ie, nil
}

var errBuilderUsed = errors.NewConstructionError(KindProgram.String(), "", "builder already built its program")

// ProgramBuilder collects statements in order and yields a validated Program.
// The first error is kept and reported by Build.
type ProgramBuilder struct {
	program *Program
	err     error
}

// NewProgramBuilder creates an empty program builder
func NewProgramBuilder() *ProgramBuilder {
	return &ProgramBuilder{program: &Program{}}
}

// Statement appends stmt.
func (b *ProgramBuilder) Statement(stmt Statement) *ProgramBuilder {
	if b.err != nil {
		return b
	}
	if b.program == nil {
		b.err = errBuilderUsed
		return b
	}
	b.err = b.program.AddStatement(stmt)
	return b
}

// Expression appends an ExpressionStatement wrapping expr.
func (b *ProgramBuilder) Expression(expr Expression) *ProgramBuilder {
	if b.err != nil {
		return b
	}
	if isNil(expr) {
		b.err = errors.NewConstructionError(KindExpressionStatement.String(), "expression", "expression is required")
		return b
	}
	return b.Statement(NewExpressionStatement(expr))
}

// Build validates and returns the program. The builder must not be used
// afterwards.
func (b *ProgramBuilder) Build() (*Program, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.program == nil {
		return nil, errBuilderUsed
	}
	if err := Validate(b.program); err != nil {
		return nil, err
	}
	p := b.program
	b.program = nil
	return p, nil
}
