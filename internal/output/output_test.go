package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewWriter_Formats(t *testing.T) {
	buf := &bytes.Buffer{}

	cases := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "*output.JSONWriter"},
		{FormatJSONL, "*output.JSONLWriter"},
		{FormatYAML, "*output.YAMLWriter"},
		{FormatText, "*output.TextWriter"},
	}
	for _, c := range cases {
		w, err := NewWriter(buf, c.format)
		if err != nil {
			t.Errorf("NewWriter(%s) error = %v", c.format, err)
			continue
		}
		if got := typeName(w); got != c.want {
			t.Errorf("NewWriter(%s) = %s, want %s", c.format, got, c.want)
		}
	}

	if _, err := NewWriter(buf, Format("toml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *JSONWriter:
		return "*output.JSONWriter"
	case *JSONLWriter:
		return "*output.JSONLWriter"
	case *YAMLWriter:
		return "*output.YAMLWriter"
	case *TextWriter:
		return "*output.TextWriter"
	}
	return "unknown"
}

func TestJSONWriter_SingleResult(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(map[string]any{"name": "test"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// A single result is not wrapped in an array.
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not a JSON object: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestJSONWriter_MultipleResults(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.WriteAll([]any{map[string]any{"n": 1.0}, map[string]any{"n": 2.0}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var result []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 results, got %d", len(result))
	}
}

func TestJSONWriter_Compact(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Write(map[string]any{"a": 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 1 {
		t.Errorf("expected single-line compact output, got %d lines", len(lines))
	}
}

func TestJSONLWriter_OneLinePerResult(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	if err := w.Write(map[string]any{"n": 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(map[string]any{"n": 2}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for i, line := range lines {
		var v map[string]any
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestYAMLWriter_SingleResult(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(map[string]any{"name": "test", "value": 42}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var result map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestTextWriter_StringVerbatim(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)

	if err := w.Write("<note><to>Tove</to></note>"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if got := buf.String(); got != "<note><to>Tove</to></note>\n" {
		t.Errorf("expected the string verbatim with a newline, got %q", got)
	}
}

func TestTextWriter_StructuredFallback(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)

	if err := w.Write(map[string]any{"a": 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != `{"a":1}` {
		t.Errorf("expected compact JSON fallback, got %q", got)
	}
}

func TestTextWriter_WriteAll(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)

	if err := w.WriteAll([]any{"one", "two"}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if got := buf.String(); got != "one\ntwo\n" {
		t.Errorf("expected one result per line, got %q", got)
	}
}

func TestNewWriter_WithOptions(t *testing.T) {
	buf := &bytes.Buffer{}

	w, err := NewWriter(buf, FormatJSON, WithPretty(false), WithIndent(""))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Write(map[string]any{"a": 1}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if out := strings.TrimSpace(buf.String()); strings.Contains(out, "\n") {
		t.Errorf("expected compact output, got %q", out)
	}
}
