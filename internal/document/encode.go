package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the text encoding used by Encode.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatJSON.String(), FormatYAML.String()}
}

// ParseFormat resolves a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown format %q (expected one of %s)", name, strings.Join(Formats(), ", "))
}

// Options controls Encode.
type Options struct {
	Format Format
	Indent int // spaces per level; 0 means compact JSON or the YAML default
}

// Encode writes doc to w followed by a newline.
func Encode(w io.Writer, doc Document, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		data, err := doc.MarshalJSON()
		if err != nil {
			return err
		}
		if opts.Indent > 0 {
			var out bytes.Buffer
			if err := json.Indent(&out, data, "", strings.Repeat(" ", opts.Indent)); err != nil {
				return fmt.Errorf("document: indent json: %w", err)
			}
			data = out.Bytes()
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		node, err := doc.yamlNode()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		if opts.Indent > 0 {
			enc.SetIndent(opts.Indent)
		}
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("document: encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("document: unsupported format %s", opts.Format)
}

// MarshalJSON writes object keys in insertion order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d Document) writeJSON(buf *bytes.Buffer) error {
	switch d.kind {
	case KindObject:
		buf.WriteByte('{')
		for i, f := range d.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.writeJSON(buf); err != nil {
				return fmt.Errorf("%s: %w", f.Key, err)
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range d.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case KindString:
		return writeJSONString(buf, d.str)
	case KindInteger:
		buf.WriteString(strconv.FormatInt(d.i, 10))
	case KindFloat:
		s, err := formatFloat(d.f)
		if err != nil {
			return err
		}
		buf.WriteString(s)
	default:
		return fmt.Errorf("document: cannot encode %s value", d.kind)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// formatFloat prints the shortest representation of f that still reads back
// as a float: 2 becomes "2.0".
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("document: cannot encode non-finite float %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// MarshalYAML implements yaml.Marshaler with an ordered node tree.
func (d Document) MarshalYAML() (interface{}, error) {
	return d.yamlNode()
}

func (d Document) yamlNode() (*yaml.Node, error) {
	switch d.kind {
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range d.fields {
			value, err := f.Value.yamlNode()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Key, err)
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
			node.Content = append(node.Content, key, value)
		}
		return node, nil
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range d.items {
			value, err := item.yamlNode()
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			node.Content = append(node.Content, value)
		}
		if len(node.Content) == 0 {
			node.Style = yaml.FlowStyle
		}
		return node, nil
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.str}, nil
	case KindInteger:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(d.i, 10)}, nil
	case KindFloat:
		s, err := formatFloat(d.f)
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
	}
	return nil, fmt.Errorf("document: cannot encode %s value", d.kind)
}
