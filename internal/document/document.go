// Package document defines the structured value that AST nodes render into:
// ordered objects, arrays and string/integer/float scalars.
package document

import (
	"fmt"
	"slices"
)

// Kind identifies the shape of a Document.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindString
	KindInteger
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Field is one key/value entry of an object.
type Field struct {
	Key   string
	Value Document
}

// Document is an immutable-by-convention structured value. The zero value
// is invalid and cannot be encoded.
type Document struct {
	kind   Kind
	str    string
	i      int64
	f      float64
	items  []Document
	fields []Field
}

// String creates a string scalar
func String(s string) Document {
	return Document{kind: KindString, str: s}
}

// Integer creates an integer scalar
func Integer(i int64) Document {
	return Document{kind: KindInteger, i: i}
}

// Float creates a float scalar
func Float(f float64) Document {
	return Document{kind: KindFloat, f: f}
}

// Array creates an array holding items in order. A nil call yields an empty
// array, never an invalid document.
func Array(items ...Document) Document {
	return Document{kind: KindArray, items: append([]Document{}, items...)}
}

// Object creates an object from fields, keeping their order. Later fields
// replace earlier ones with the same key.
func Object(fields ...Field) Document {
	d := NewObject()
	for _, f := range fields {
		d.Set(f.Key, f.Value)
	}
	return d
}

// NewObject creates an empty object
func NewObject() Document {
	return Document{kind: KindObject, fields: []Field{}}
}

// Kind returns the document's shape.
func (d Document) Kind() Kind { return d.kind }

// IsValid reports whether d was built by one of the constructors.
func (d Document) IsValid() bool { return d.kind != KindInvalid }

// AsString returns the string scalar value.
func (d Document) AsString() (string, bool) {
	return d.str, d.kind == KindString
}

// AsInt returns the integer scalar value.
func (d Document) AsInt() (int64, bool) {
	return d.i, d.kind == KindInteger
}

// AsFloat returns the float scalar value.
func (d Document) AsFloat() (float64, bool) {
	return d.f, d.kind == KindFloat
}

// Len returns the number of fields of an object or items of an array.
func (d Document) Len() int {
	switch d.kind {
	case KindObject:
		return len(d.fields)
	case KindArray:
		return len(d.items)
	}
	return 0
}

// Set stores value under key. An existing key keeps its position. Set panics
// when d is not an object.
//
// Copies of a Document share storage, so Set never writes through to them.
func (d *Document) Set(key string, value Document) {
	if d.kind != KindObject {
		panic(fmt.Sprintf("document: Set on %s", d.kind))
	}
	for i := range d.fields {
		if d.fields[i].Key == key {
			d.fields = slices.Clone(d.fields)
			d.fields[i].Value = value
			return
		}
	}
	d.fields = append(slices.Clip(d.fields), Field{Key: key, Value: value})
}

// Append adds items to the end of an array. Append panics when d is not an
// array.
func (d *Document) Append(items ...Document) {
	if d.kind != KindArray {
		panic(fmt.Sprintf("document: Append on %s", d.kind))
	}
	d.items = append(slices.Clip(d.items), items...)
}

// Get looks key up in an object.
func (d Document) Get(key string) (Document, bool) {
	for _, f := range d.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Document{}, false
}

// Keys returns the object keys in order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for _, f := range d.fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Fields returns a copy of the object fields.
func (d Document) Fields() []Field {
	return slices.Clone(d.fields)
}

// Items returns a copy of the array items.
func (d Document) Items() []Document {
	return slices.Clone(d.items)
}

// Equal reports whether d and other have the same shape and values. Object
// key order is significant.
func (d Document) Equal(other Document) bool {
	if d.kind != other.kind {
		return false
	}

	switch d.kind {
	case KindInvalid:
		return true
	case KindString:
		return d.str == other.str
	case KindInteger:
		return d.i == other.i
	case KindFloat:
		return d.f == other.f
	case KindArray:
		return slices.EqualFunc(d.items, other.items, Document.Equal)
	case KindObject:
		return slices.EqualFunc(d.fields, other.fields, func(a, b Field) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	}
	return false
}

// String renders d as compact JSON.
func (d Document) String() string {
	data, err := d.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid document: %v>", err)
	}
	return string(data)
}
