// Package ast defines the Abstract Syntax Tree nodes for arithmetic expression
// programs and their rendering into structured documents.
package ast

import (
	"fmt"
	"strings"

	"github.com/phillarmonic/exprdoc/internal/document"
	"github.com/phillarmonic/exprdoc/internal/errors"
)

// NodeKind is the variant tag of a node.
type NodeKind int

const (
	KindProgram NodeKind = iota + 1
	KindExpressionStatement
	KindInfixExpression
	KindIntegerLiteral
	KindFloatLiteral
)

// legacyInfixTag is how older producers tagged infix expressions.
const legacyInfixTag = "InfixStatement"

var kindNames = map[NodeKind]string{
	KindProgram:             "Program",
	KindExpressionStatement: "ExpressionStatement",
	KindInfixExpression:     "InfixExpression",
	KindIntegerLiteral:      "IntegerLiteral",
	KindFloatLiteral:        "FloatLiteral",
}

// Kinds returns every node kind in declaration order.
func Kinds() []NodeKind {
	return []NodeKind{
		KindProgram,
		KindExpressionStatement,
		KindInfixExpression,
		KindIntegerLiteral,
		KindFloatLiteral,
	}
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("ast: invalid node kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// ParseNodeKind maps a document "type" string back to its kind.
func ParseNodeKind(s string) (NodeKind, bool) {
	if s == legacyInfixTag {
		return KindInfixExpression, true
	}
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// IsStatement reports whether nodes of kind k may appear in a Program.
func (k NodeKind) IsStatement() bool {
	return k == KindExpressionStatement
}

// IsExpression reports whether nodes of kind k may appear as operands.
func (k NodeKind) IsExpression() bool {
	switch k {
	case KindInfixExpression, KindIntegerLiteral, KindFloatLiteral:
		return true
	}
	return false
}

// Node represents any node in the AST
type Node interface {
	Kind() NodeKind
	// ToDocument renders the node and every owned child. It fails with an
	// IncompleteNodeError when a required child is unset and then returns
	// no partial document.
	ToDocument() (document.Document, error)
	String() string
}

// Statement represents any statement node
type Statement interface {
	Node
	statementNode()
}

// Expression represents any expression node
type Expression interface {
	Node
	expressionNode()
}

// Program represents the root of the AST
type Program struct {
	Statements []Statement
}

// NewProgram creates a program holding stmts in order.
func NewProgram(stmts ...Statement) (*Program, error) {
	p := &Program{}
	for _, stmt := range stmts {
		if err := p.AddStatement(stmt); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddStatement appends stmt to the program.
func (p *Program) AddStatement(stmt Statement) error {
	if isNil(stmt) {
		return errors.NewConstructionError(KindProgram.String(), "statements", "statement is nil")
	}
	p.Statements = append(p.Statements, stmt)
	return nil
}

func (p *Program) Kind() NodeKind { return KindProgram }

// ToDocument renders the program. Every statement is wrapped in a
// single-entry object keyed by the statement's kind:
//
//	{"type": "Program", "statements": [{"ExpressionStatement": {...}}]}
//
// The whole tree is validated first, so shared or cyclic children are
// reported instead of being rendered.
func (p *Program) ToDocument() (document.Document, error) {
	if err := Validate(p); err != nil {
		return document.Document{}, err
	}

	statements := document.Array()
	for _, stmt := range p.Statements {
		doc, err := stmt.ToDocument()
		if err != nil {
			return document.Document{}, err
		}
		entry := document.NewObject()
		entry.Set(stmt.Kind().String(), doc)
		statements.Append(entry)
	}

	doc := document.NewObject()
	doc.Set("type", document.String(p.Kind().String()))
	doc.Set("statements", statements)
	return doc, nil
}

func (p *Program) String() string {
	var out strings.Builder
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}
