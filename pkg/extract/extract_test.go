package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseContentType(t *testing.T) {
	cases := []struct {
		in   string
		want ContentType
	}{
		{"json", TypeJSON},
		{"JSON", TypeJSON},
		{" Xml ", TypeXML},
		{"html", TypeHTML},
		{"Code", TypeCode},
	}
	for _, c := range cases {
		got, err := ParseContentType(c.in)
		if err != nil {
			t.Errorf("ParseContentType(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseContentType(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := ParseContentType("yaml"); !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("expected ErrInvalidExtractor for unknown type, got %v", err)
	}
}

func TestExtract_JSON(t *testing.T) {
	v, err := Extract("```json\n{\"a\": 1}\n```", TypeJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if m["a"] != float64(1) {
		t.Errorf("expected a=1, got %v", m["a"])
	}
}

func TestExtract_WithLanguage(t *testing.T) {
	raw := "```python\nx = 1\n```\n\n```go\ny := 2\n```"

	v, err := Extract(raw, TypeCode, WithLanguage("go"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(string); got != "y := 2" {
		t.Errorf("expected the go fence body, got %q", got)
	}
}

type fixedExtractor struct{ v any }

func (f fixedExtractor) Extract(string) (any, error) { return f.v, nil }
func (f fixedExtractor) Name() string                { return "fixed" }

func TestExtract_WithExtractor(t *testing.T) {
	v, err := Extract("anything", TypeJSON, WithExtractor(fixedExtractor{v: "custom"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "custom" {
		t.Errorf("expected the supplied extractor's result, got %v", v)
	}
}

func TestExtract_UnknownType(t *testing.T) {
	_, err := Extract("{}", ContentType("yaml"))
	if !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("expected ErrInvalidExtractor, got %v", err)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, ct := range []ContentType{TypeJSON, TypeXML, TypeHTML, TypeCode} {
		if _, err := Extract("   ", ct); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("%s: expected ErrEmptyInput, got %v", ct, err)
		}
	}
}

func TestRegister(t *testing.T) {
	if err := Register(TypeJSON, nil); !errors.Is(err, ErrInvalidExtractor) {
		t.Errorf("expected ErrInvalidExtractor for nil factory, got %v", err)
	}

	err := Register(TypeJSON, func(string) Extractor { return fixedExtractor{v: "override"} })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer Register(TypeJSON, func(string) Extractor { return NewJSON(JSONConfig{}) })

	v, err := Extract("ignored", TypeJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "override" {
		t.Errorf("expected the registered override, got %v", v)
	}
}

func TestAvailableTypes(t *testing.T) {
	got := AvailableTypes()
	want := []string{"code", "html", "json", "xml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableTypes() = %v, want %v", got, want)
	}
}

func TestCascadeError_Message(t *testing.T) {
	_, err := Extract("nothing structured here", TypeJSON)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "tried:") {
		t.Errorf("expected the strategy list in %q", msg)
	}
	if !strings.Contains(msg, "direct") {
		t.Errorf("expected the direct strategy named in %q", msg)
	}
}
