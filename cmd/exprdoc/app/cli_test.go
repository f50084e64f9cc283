package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phillarmonic/exprdoc/internal/errors"
)

const sumDocument = `{"type":"Program","statements":[{"ExpressionStatement":{"type":"ExpressionStatement","expression":{"type":"InfixExpression","left_node":{"type":"IntegerLiteral","value":1},"operator":"+","right_node":{"type":"FloatLiteral","value":2.0}}}}]}`

// runApp executes the CLI in an empty working directory
func runApp(t *testing.T, stdin string, args ...string) (*App, string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	a := NewApp("dev", "unknown", "unknown")
	var stdout, stderr bytes.Buffer
	a.rootCmd.SetIn(strings.NewReader(stdin))
	a.rootCmd.SetOut(&stdout)
	a.rootCmd.SetErr(&stderr)
	a.rootCmd.SetArgs(args)

	err := a.Execute()
	return a, stdout.String(), stderr.String(), err
}

func TestApp_RenderCompactJSON(t *testing.T) {
	_, out, _, err := runApp(t, sumDocument, "--indent", "0", "-")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != sumDocument+"\n" {
		t.Errorf("output = %q\nwant     %q", out, sumDocument+"\n")
	}
}

func TestApp_RenderIndentedJSON(t *testing.T) {
	_, out, _, err := runApp(t, sumDocument)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "{\n  \"type\": \"Program\",\n  \"statements\": [\n") {
		t.Errorf("output = %s", out)
	}
	if !strings.Contains(out, `"value": 2.0`) {
		t.Errorf("float lost its fraction:\n%s", out)
	}
}

func TestApp_RenderYAMLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := os.WriteFile(path, []byte(sumDocument), 0600); err != nil {
		t.Fatal(err)
	}

	_, out, _, err := runApp(t, "", "--format", "yaml", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"type: Program", "- ExpressionStatement:", "value: 2.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestApp_YAMLInput(t *testing.T) {
	input := `
type: ExpressionStatement
expression:
  type: IntegerLiteral
  value: 42
`
	_, out, _, err := runApp(t, input, "--indent", "0")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := `{"type":"ExpressionStatement","expression":{"type":"IntegerLiteral","value":42}}` + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestApp_Check(t *testing.T) {
	_, out, _, err := runApp(t, sumDocument, "--check")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "ok\n" {
		t.Errorf("output = %q, want %q", out, "ok\n")
	}
}

func TestApp_RejectsIncompleteTree(t *testing.T) {
	input := `{"type":"InfixExpression","left_node":{"type":"IntegerLiteral","value":1},"operator":"+"}`

	a, out, _, err := runApp(t, input, "--no-color")
	if err == nil {
		t.Fatal("Execute() should fail for a tree without right_node")
	}
	if out != "" {
		t.Errorf("partial output written: %q", out)
	}
	if !errors.Is(err, errors.ErrConstruction) {
		t.Errorf("error = %v, want construction error", err)
	}

	msg := a.FormatError(err)
	if !strings.HasPrefix(msg, "Error: <stdin>: ") || strings.Contains(msg, "\033[") {
		t.Errorf("FormatError() = %q", msg)
	}
}

func TestApp_RejectsMalformedInput(t *testing.T) {
	_, _, _, err := runApp(t, `{"type": `)
	if err == nil {
		t.Fatal("Execute() should fail for malformed input")
	}
}

func TestApp_MissingFile(t *testing.T) {
	_, _, _, err := runApp(t, "", "does-not-exist.json")
	if err == nil || !strings.Contains(err.Error(), "does-not-exist.json") {
		t.Errorf("Execute() error = %v", err)
	}
}

func TestApp_UnknownFormat(t *testing.T) {
	_, _, _, err := runApp(t, sumDocument, "--format", "toml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("Execute() error = %v", err)
	}
}

func TestApp_Verbose(t *testing.T) {
	_, _, stderr, err := runApp(t, sumDocument, "-v", "--no-color", "--check")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"→ reading <stdin>", "→ loaded Program with 5 nodes"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q\n%s", want, stderr)
		}
	}
}

func TestApp_Debug(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default full", []string{"--debug"}, []string{"=== FULL DEBUG SESSION ===", "Validation: ok", "=== AST JSON ==="}},
		{"outline", []string{"--debug", "--debug-ast"}, []string{"=== AST DEBUG ===", "right_node: FloatLiteral 2.0"}},
		{"yaml", []string{"--debug", "--debug-yaml"}, []string{"=== AST YAML ===", "type: Program"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, _, err := runApp(t, sumDocument, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\n%s", want, out)
				}
			}
		})
	}
}

func TestApp_Kinds(t *testing.T) {
	_, out, _, err := runApp(t, "", "cmd:kinds")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d kinds, want 5:\n%s", len(lines), out)
	}
	for _, want := range []string{"Program", "ExpressionStatement  statement", "FloatLiteral         expression"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestApp_Completion(t *testing.T) {
	_, out, _, err := runApp(t, "", "cmd:completion", "bash")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "exprdoc") {
		t.Errorf("completion script does not mention exprdoc")
	}
}

func TestCompleteFormats(t *testing.T) {
	got, _ := CompleteFormats(nil, nil, "y")
	if len(got) != 1 || !strings.HasPrefix(got[0], "yaml\t") {
		t.Errorf("CompleteFormats(\"y\") = %v", got)
	}
}

func TestApp_Version(t *testing.T) {
	_, out, _, err := runApp(t, "", "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "exprdoc - expression trees as portable documents\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Version dev\n") || strings.Contains(out, "commit:") {
		t.Errorf("output = %q", out)
	}

	var buf bytes.Buffer
	if err := ShowVersion(&buf, "1.2.0", "abc123", "2026-10-15"); err != nil {
		t.Fatalf("ShowVersion() error = %v", err)
	}
	for _, want := range []string{"Version 1.2.0\n", "commit: abc123\n", "built: 2026-10-15\n"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("ShowVersion() output missing %q\n%s", want, buf.String())
		}
	}
}
