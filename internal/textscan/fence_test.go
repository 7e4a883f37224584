package textscan

import "testing"

func TestAllFences_SingleTagged(t *testing.T) {
	fences := AllFences("```json\n{\"a\": 1}\n```")

	if len(fences) != 1 {
		t.Fatalf("expected 1 fence, got %d", len(fences))
	}
	if fences[0].Tag != "json" {
		t.Errorf("expected tag %q, got %q", "json", fences[0].Tag)
	}
	if fences[0].Body != `{"a": 1}` {
		t.Errorf("unexpected body: %q", fences[0].Body)
	}
	if !fences[0].Closed {
		t.Error("fence should be closed")
	}
}

func TestAllFences_Multiple(t *testing.T) {
	text := "first:\n```python\nprint(1)\n```\nthen:\n```go\nfmt.Println(1)\n```\ndone"
	fences := AllFences(text)

	if len(fences) != 2 {
		t.Fatalf("expected 2 fences, got %d", len(fences))
	}
	if fences[0].Tag != "python" || fences[1].Tag != "go" {
		t.Errorf("unexpected tags: %q, %q", fences[0].Tag, fences[1].Tag)
	}
	if fences[0].Body != "print(1)" {
		t.Errorf("unexpected first body: %q", fences[0].Body)
	}
}

func TestAllFences_UnclosedRunsToEnd(t *testing.T) {
	fences := AllFences("```json\n{\"a\": 1}")

	if len(fences) != 1 {
		t.Fatalf("expected 1 fence, got %d", len(fences))
	}
	if fences[0].Closed {
		t.Error("fence should be reported as unclosed")
	}
	if fences[0].Body != `{"a": 1}` {
		t.Errorf("unexpected body: %q", fences[0].Body)
	}
}

func TestAllFences_HeaderMetadataIgnored(t *testing.T) {
	fences := AllFences("```go title=main.go\npackage main\n```")

	if len(fences) != 1 {
		t.Fatalf("expected 1 fence, got %d", len(fences))
	}
	if fences[0].Tag != "go" {
		t.Errorf("expected tag %q, got %q", "go", fences[0].Tag)
	}
}

func TestFirstFence_TagCaseInsensitive(t *testing.T) {
	for _, tag := range []string{"json", "JSON", "Json"} {
		text := "```" + tag + "\n{}\n```"
		f, ok := FirstFence(text, "json", false)
		if !ok {
			t.Fatalf("tag %q: fence not found", tag)
		}
		if f.Body != "{}" {
			t.Errorf("tag %q: unexpected body %q", tag, f.Body)
		}
	}
}

func TestFirstFence_UntaggedEligibleWhenNotStrict(t *testing.T) {
	text := "``` \nconst x = 42;\nconsole.log(x);\n```"

	if _, ok := FirstFence(text, "javascript", true); ok {
		t.Error("untagged fence should not match in strict mode")
	}

	f, ok := FirstFence(text, "javascript", false)
	if !ok {
		t.Fatal("untagged fence should match in non-strict mode")
	}
	if f.Body != "const x = 42;\nconsole.log(x);" {
		t.Errorf("unexpected body: %q", f.Body)
	}
}

func TestFirstFence_SkipsNonMatchingTags(t *testing.T) {
	text := "```python\nprint(1)\n```\n```rust\nfn main() {}\n```"

	f, ok := FirstFence(text, "rust", true)
	if !ok {
		t.Fatal("rust fence not found")
	}
	if f.Body != "fn main() {}" {
		t.Errorf("unexpected body: %q", f.Body)
	}
}

func TestFirstFence_UnclosedRejectedWhenStrict(t *testing.T) {
	text := "```json\n{\"a\": 1}"

	if _, ok := FirstFence(text, "json", true); ok {
		t.Error("unclosed fence should be rejected in strict mode")
	}
	if _, ok := FirstFence(text, "json", false); !ok {
		t.Error("unclosed fence should be accepted in non-strict mode")
	}
}

func TestStripFence_Tagged(t *testing.T) {
	got := StripFence("```xml\n<a>1</a>\n```")
	if got != "<a>1</a>" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestStripFence_NoFence(t *testing.T) {
	got := StripFence("  <a>1</a>  ")
	if got != "<a>1</a>" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestStripFence_MissingClose(t *testing.T) {
	got := StripFence("```json\n{\"a\": 1}")
	if got != `{"a": 1}` {
		t.Errorf("unexpected result: %q", got)
	}
}
