// Package errors defines the error types raised while building and
// serializing expression trees.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompleteNode matches every IncompleteNodeError.
	ErrIncompleteNode = stderrors.New("incomplete node")

	// ErrConstruction matches every ConstructionError.
	ErrConstruction = stderrors.New("construction error")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// IncompleteNodeError is returned when a node is serialized while one of its
// required children is still unset.
type IncompleteNodeError struct {
	Kind  string // kind of the node missing the child
	Field string // name of the unset field
	Path  string // location in the tree, when known
}

// Error implements the error interface
func (e *IncompleteNodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("incomplete %s at %s: required field %q is not set", e.Kind, e.Path, e.Field)
	}
	return fmt.Sprintf("incomplete %s: required field %q is not set", e.Kind, e.Field)
}

// Is lets errors.Is(err, ErrIncompleteNode) match.
func (e *IncompleteNodeError) Is(target error) bool {
	return target == ErrIncompleteNode
}

// NewIncompleteNodeError creates a new incomplete node error
func NewIncompleteNodeError(kind, field string) *IncompleteNodeError {
	return &IncompleteNodeError{Kind: kind, Field: field}
}

// ConstructionError rejects a malformed node before it can join a tree.
type ConstructionError struct {
	Kind    string
	Field   string
	Path    string // document path, set when the node came from a document
	Message string
}

// Error implements the error interface
func (e *ConstructionError) Error() string {
	var b strings.Builder
	b.WriteString("cannot construct ")
	if e.Kind != "" {
		b.WriteString(e.Kind)
	} else {
		b.WriteString("node")
	}
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Is lets errors.Is(err, ErrConstruction) match.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// NewConstructionError creates a new construction error
func NewConstructionError(kind, field, message string) *ConstructionError {
	return &ConstructionError{Kind: kind, Field: field, Message: message}
}

// Constructionf creates a construction error with a formatted message
func Constructionf(kind, field, format string, args ...any) *ConstructionError {
	return NewConstructionError(kind, field, fmt.Sprintf(format, args...))
}

// AtPath returns a copy of the error located at the given document path.
func (e *ConstructionError) AtPath(path string) *ConstructionError {
	c := *e
	c.Path = path
	return &c
}

// ValidationError collects every problem found while checking a tree.
type ValidationError struct {
	Problems []error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "no problems"
	}

	if len(e.Problems) == 1 {
		return e.Problems[0].Error()
	}

	var messages []string
	for _, p := range e.Problems {
		messages = append(messages, p.Error())
	}
	return strings.Join(messages, "; ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// Add records a problem
func (e *ValidationError) Add(err error) {
	e.Problems = append(e.Problems, err)
}

// HasProblems returns true if any problem was recorded
func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}

// ErrOrNil returns e when it holds problems, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasProblems() {
		return e
	}
	return nil
}

// FormatError renders err for a terminal. ValidationErrors are expanded, one
// problem per line; color toggles the ANSI escapes.
func FormatError(err error, color bool) string {
	if err == nil {
		return ""
	}

	paint := func(code, s string) string {
		if !color {
			return s
		}
		return "\033[" + code + "m" + s + "\033[0m"
	}

	var problems []error
	var verr *ValidationError
	if As(err, &verr) && verr.HasProblems() {
		problems = verr.Problems
	} else {
		problems = []error{err}
	}

	// Limit the number of problems shown to avoid overwhelming the user
	maxProblems := 3
	shown := problems
	if len(shown) > maxProblems {
		shown = shown[:maxProblems]
	}

	var result strings.Builder
	if len(problems) > 1 {
		result.WriteString(fmt.Sprintf("%s (%d problems)\n", paint("31", "Error"), len(problems)))
	}
	for _, p := range shown {
		if len(problems) > 1 {
			result.WriteString("  - ")
		} else {
			result.WriteString(paint("31", "Error") + ": ")
		}
		result.WriteString(p.Error())
		result.WriteString("\n")
		if hint := suggestion(p); hint != "" {
			result.WriteString(fmt.Sprintf("    %s %s\n", paint("33", "Help:"), hint))
		}
	}

	if len(problems) > maxProblems {
		result.WriteString(fmt.Sprintf("%s %d additional problems not shown.\n", paint("33", "Note:"), len(problems)-maxProblems))
	}

	return result.String()
}

// suggestion returns a helpful suggestion for common tree errors
func suggestion(err error) string {
	var incomplete *IncompleteNodeError
	if As(err, &incomplete) {
		return fmt.Sprintf("Set %s.%s before serializing the tree", incomplete.Kind, incomplete.Field)
	}

	var construction *ConstructionError
	if As(err, &construction) {
		msg := strings.ToLower(construction.Message)
		switch {
		case strings.Contains(msg, "unknown node type"):
			return "Valid types are Program, ExpressionStatement, InfixExpression, IntegerLiteral and FloatLiteral"
		case strings.Contains(msg, "expected integer"):
			return "IntegerLiteral values must be written without a fractional part"
		case strings.Contains(msg, "expected float"):
			return "FloatLiteral values must carry a fractional part, e.g. 2.0"
		}
	}

	return ""
}
