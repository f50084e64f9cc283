package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// DecodeError reports input that has no Document form.
type DecodeError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("document: line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return "document: " + e.Message
}

func decodeErrorf(node *yaml.Node, format string, args ...any) *DecodeError {
	e := &DecodeError{Message: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Line, e.Column = node.Line, node.Column
	}
	return e
}

// MaxNodes caps the number of values a single Decode may produce, aliases
// counted once per expansion.
const MaxNodes = 1 << 18

// Decode parses JSON or YAML text into a Document. JSON is read as YAML flow
// style, so both share one decoder. The input must hold exactly one document.
func Decode(data []byte) (Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, decodeErrorf(nil, "empty input")
		}
		return Document{}, &DecodeError{Message: err.Error()}
	}
	if root.Kind == 0 {
		return Document{}, decodeErrorf(nil, "empty input")
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return Document{}, &DecodeError{Message: err.Error()}
		}
		return Document{}, decodeErrorf(&extra, "input holds more than one document")
	}

	return newNodeDecoder().fromYAML(&root)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	doc, err := newNodeDecoder().fromYAML(value)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// nodeDecoder converts a yaml.Node tree, charging every produced value
// against a budget so repeated aliases cannot grow the result unbounded.
type nodeDecoder struct {
	remaining int
}

func newNodeDecoder() *nodeDecoder {
	return &nodeDecoder{remaining: MaxNodes}
}

func (nd *nodeDecoder) fromYAML(node *yaml.Node) (Document, error) {
	if node.Kind != yaml.DocumentNode && node.Kind != yaml.AliasNode {
		nd.remaining--
		if nd.remaining < 0 {
			return Document{}, decodeErrorf(node, "input expands to more than %d values", MaxNodes)
		}
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Document{}, decodeErrorf(node, "empty document")
		}
		return nd.fromYAML(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return Document{}, decodeErrorf(node, "unresolved alias %q", node.Value)
		}
		return nd.fromYAML(node.Alias)
	case yaml.MappingNode:
		return nd.objectFromYAML(node)
	case yaml.SequenceNode:
		doc := Array()
		for _, child := range node.Content {
			item, err := nd.fromYAML(child)
			if err != nil {
				return Document{}, err
			}
			doc.items = append(doc.items, item)
		}
		return doc, nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	}
	return Document{}, decodeErrorf(node, "unsupported node kind %d", node.Kind)
}

func (nd *nodeDecoder) objectFromYAML(node *yaml.Node) (Document, error) {
	doc := NewObject()
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.ShortTag() != "!!str" {
			return Document{}, decodeErrorf(key, "object keys must be strings, got %s", key.ShortTag())
		}
		if seen[key.Value] {
			return Document{}, decodeErrorf(key, "duplicate key %q", key.Value)
		}
		seen[key.Value] = true

		child, err := nd.fromYAML(value)
		if err != nil {
			return Document{}, err
		}
		doc.fields = append(doc.fields, Field{Key: key.Value, Value: child})
	}
	return doc, nil
}

func scalarFromYAML(node *yaml.Node) (Document, error) {
	switch tag := node.ShortTag(); tag {
	case "!!str":
		return String(node.Value), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Document{}, decodeErrorf(node, "integer %q out of range", node.Value)
		}
		return Integer(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Document{}, decodeErrorf(node, "invalid float %q", node.Value)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Document{}, decodeErrorf(node, "non-finite float %q is not supported", node.Value)
		}
		return Float(f), nil
	case "!!null":
		return Document{}, decodeErrorf(node, "null values are not supported")
	case "!!bool":
		return Document{}, decodeErrorf(node, "boolean values are not supported")
	default:
		return Document{}, decodeErrorf(node, "unsupported scalar tag %s", tag)
	}
}
