package extract

import (
	"errors"
	"testing"
)

func TestCodeExtractor_Extract_TaggedFence(t *testing.T) {
	e := NewCode(CodeConfig{Language: "python"})

	raw := "Here you go:\n\n```python\nprint('hi')\n```\n\nEnjoy."
	v, err := e.Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(string); got != "print('hi')" {
		t.Errorf("expected fence body, got %q", got)
	}
}

func TestCodeExtractor_Extract_TagCaseInsensitive(t *testing.T) {
	e := NewCode(CodeConfig{Language: "Python"})

	v, err := e.Extract("```PYTHON\nx = 1\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(string); got != "x = 1" {
		t.Errorf("expected fence body, got %q", got)
	}
}

func TestCodeExtractor_Extract_AnyFence(t *testing.T) {
	e := NewCode(CodeConfig{})

	raw := "First block:\n```\necho one\n```\nSecond block:\n```\necho two\n```"
	v, err := e.Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(string); got != "echo one" {
		t.Errorf("expected the first fence body, got %q", got)
	}
}

func TestCodeExtractor_Extract_Heuristic(t *testing.T) {
	e := NewCode(CodeConfig{})

	raw := "Here is the function you asked for:\n\ndef add(a, b):\n    return a + b\n\nLet me know if it helps."
	v, err := e.Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(string); got != "def add(a, b):\n    return a + b" {
		t.Errorf("expected the code region only, got %q", got)
	}
}

func TestCodeExtractor_Extract_HeuristicLanguageFilter(t *testing.T) {
	raw := "Here is the function you asked for:\n\ndef add(a, b):\n    return a + b\n\nLet me know if it helps."

	v, err := NewCode(CodeConfig{Language: "python"}).Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.(string); got != "def add(a, b):\n    return a + b" {
		t.Errorf("expected the code region, got %q", got)
	}

	_, err = NewCode(CodeConfig{Language: "go"}).Extract(raw)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent for a non-matching language, got %v", err)
	}
}

func TestCodeExtractor_Extract_StrictRequiresFence(t *testing.T) {
	e := NewCode(CodeConfig{Strict: true})

	_, err := e.Extract("def add(a, b):\n    return a + b")
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent in strict mode, got %v", err)
	}
}

func TestCodeExtractor_ExtractAllBlocks(t *testing.T) {
	e := NewCode(CodeConfig{})

	raw := "Intro.\n\n```go\nfunc main() {}\n```\n\n```\ndef f(x):\n    return x\n```\n\n```\nhello world\n```\n\nOutro."
	blocks, err := e.ExtractAllBlocks(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	if blocks[0].Language != "go" || blocks[0].Confidence != 1 {
		t.Errorf("expected tagged go block with confidence 1, got %+v", blocks[0])
	}
	if blocks[0].Code != "func main() {}" {
		t.Errorf("unexpected first block body %q", blocks[0].Code)
	}

	if blocks[1].Language != "python" {
		t.Errorf("expected untagged block detected as python, got %q", blocks[1].Language)
	}
	if blocks[1].Confidence <= 0 || blocks[1].Confidence >= 1 {
		t.Errorf("expected detected confidence in (0, 1), got %v", blocks[1].Confidence)
	}

	if blocks[2].Language != LanguageUnknown {
		t.Errorf("expected undetectable block labeled %q, got %q", LanguageUnknown, blocks[2].Language)
	}
	if blocks[2].Confidence != 0 {
		t.Errorf("expected zero confidence for unknown block, got %v", blocks[2].Confidence)
	}
}

func TestCodeExtractor_DetectLanguage(t *testing.T) {
	e := NewCode(CodeConfig{})

	lang, ok := e.DetectLanguage("def f():\n    return 1")
	if !ok || lang != "python" {
		t.Errorf("expected python, got %q (ok=%v)", lang, ok)
	}

	if _, ok := e.DetectLanguage("hello world"); ok {
		t.Error("expected no detection for prose")
	}
}

func TestCodeExtractor_SupportedLanguages(t *testing.T) {
	e := NewCode(CodeConfig{})

	langs := e.SupportedLanguages()
	if len(langs) == 0 {
		t.Fatal("expected a non-empty language list")
	}
	if langs[0] != "python" {
		t.Errorf("expected python first, got %q", langs[0])
	}
	found := false
	for _, l := range langs {
		if l == "go" {
			found = true
		}
	}
	if !found {
		t.Error("expected go in the supported languages")
	}
}
