package document

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestObject_KeepsInsertionOrder(t *testing.T) {
	doc := NewObject()
	doc.Set("type", String("InfixExpression"))
	doc.Set("left_node", Integer(1))
	doc.Set("operator", String("+"))
	doc.Set("right_node", Integer(2))

	got := strings.Join(doc.Keys(), ",")
	want := "type,left_node,operator,right_node"
	if got != want {
		t.Errorf("Keys() = %q, want %q", got, want)
	}
}

func TestObject_SetReplacesInPlace(t *testing.T) {
	doc := Object(
		Field{Key: "a", Value: Integer(1)},
		Field{Key: "b", Value: Integer(2)},
	)
	doc.Set("a", Integer(10))

	if doc.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", doc.Len())
	}
	if got := strings.Join(doc.Keys(), ","); got != "a,b" {
		t.Errorf("Keys() = %q, want %q", got, "a,b")
	}
	v, _ := doc.Get("a")
	if i, ok := v.AsInt(); !ok || i != 10 {
		t.Errorf("Get(a) = %v, want 10", v)
	}
}

func TestDocument_CopiesDoNotAlias(t *testing.T) {
	original := Object(Field{Key: "value", Value: Integer(5)})
	snapshot := original

	original.Set("value", Integer(9))
	original.Set("extra", String("x"))

	v, _ := snapshot.Get("value")
	if i, _ := v.AsInt(); i != 5 {
		t.Errorf("snapshot value = %d, want 5", i)
	}
	if snapshot.Len() != 1 {
		t.Errorf("snapshot Len() = %d, want 1", snapshot.Len())
	}

	items := Array(Integer(1))
	copied := items
	items.Append(Integer(2))
	if copied.Len() != 1 {
		t.Errorf("copied array Len() = %d, want 1", copied.Len())
	}
}

func TestDocument_Accessors(t *testing.T) {
	if s, ok := String("x").AsString(); !ok || s != "x" {
		t.Errorf("AsString() = %q, %v", s, ok)
	}
	if _, ok := Integer(1).AsFloat(); ok {
		t.Error("AsFloat() on integer should report false")
	}
	if _, ok := Float(1).AsInt(); ok {
		t.Error("AsInt() on float should report false")
	}
	if (Document{}).IsValid() {
		t.Error("zero Document should be invalid")
	}
	if Array().Kind() != KindArray || Array().Len() != 0 {
		t.Error("Array() should be an empty array")
	}
}

func TestDocument_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Document
		want bool
	}{
		{"same scalars", Integer(1), Integer(1), true},
		{"integer vs float", Integer(1), Float(1), false},
		{"different strings", String("a"), String("b"), false},
		{"empty arrays", Array(), Array(), true},
		{
			"key order matters",
			Object(Field{"a", Integer(1)}, Field{"b", Integer(2)}),
			Object(Field{"b", Integer(2)}, Field{"a", Integer(1)}),
			false,
		},
		{
			"nested equal",
			Object(Field{"x", Array(Float(3.5), String("s"))}),
			Object(Field{"x", Array(Float(3.5), String("s"))}),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"integer", Integer(-7), `-7`},
		{"float keeps fraction", Float(2), `2.0`},
		{"float", Float(3.5), `3.5`},
		{"large float", Float(1e21), `1e+21`},
		{"string escaping", String("a\"<b>"), `"a\"<b>"`},
		{"empty array", Array(), `[]`},
		{
			"ordered object",
			Object(Field{"type", String("IntegerLiteral")}, Field{"value", Integer(5)}),
			`{"type":"IntegerLiteral","value":5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDocument_MarshalJSONRejectsInvalid(t *testing.T) {
	if _, err := (Document{}).MarshalJSON(); err == nil {
		t.Error("MarshalJSON() on zero Document should fail")
	}
	if _, err := Float(math.NaN()).MarshalJSON(); err == nil {
		t.Error("MarshalJSON() on NaN should fail")
	}
	nested := Object(Field{"value", Float(math.Inf(1))})
	if _, err := nested.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() on nested Inf should fail")
	}
}

func TestEncode_Formats(t *testing.T) {
	doc := Object(
		Field{"type", String("Program")},
		Field{"statements", Array()},
	)

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"compact json", Options{Format: FormatJSON}, "{\"type\":\"Program\",\"statements\":[]}\n"},
		{"indented json", Options{Format: FormatJSON, Indent: 2}, "{\n  \"type\": \"Program\",\n  \"statements\": []\n}\n"},
		{"yaml", Options{Format: FormatYAML, Indent: 2}, "type: Program\nstatements: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, doc, tt.opts); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Encode() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestEncode_YAMLQuotesNumericStrings(t *testing.T) {
	doc := Object(Field{"operator", String("5")}, Field{"value", Float(2)})

	var buf bytes.Buffer
	if err := Encode(&buf, doc, Options{Format: FormatYAML}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	back, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !back.Equal(doc) {
		t.Errorf("YAML round trip = %v, want %v", back, doc)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"toml", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
