package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aihes/llm-content-extractor/internal/textscan"
)

// HTMLConfig configures HTML extraction. Both switches default to off:
// HTML from models is usually fragmentary and callers mostly want it
// as-is.
type HTMLConfig struct {
	// Validate checks that located content parses to at least one
	// element.
	Validate bool

	// Clean re-parses and re-serializes located content, normalizing
	// the markup and dropping unparsable noise.
	Clean bool

	// Parser overrides the markup capability. Nil selects the
	// net/html-backed implementation.
	Parser MarkupParser
}

// HTMLExtractor extracts an HTML document or fragment from model
// output.
//
// Strategy order: complete document (doctype or <html> root), largest
// container fragment then any paired tag, and finally the whole input
// when it reads as HTML.
type HTMLExtractor struct {
	cfg    HTMLConfig
	parser MarkupParser
}

// NewHTML creates an HTML extractor.
func NewHTML(cfg HTMLConfig) *HTMLExtractor {
	p := cfg.Parser
	if p == nil {
		p = NewHTMLMarkup()
	}
	return &HTMLExtractor{cfg: cfg, parser: p}
}

// Name returns the content type tag.
func (e *HTMLExtractor) Name() string { return string(TypeHTML) }

// containerTags are the fragment roots tried before falling back to an
// arbitrary paired tag. Ordered roughly outermost-first.
var containerTags = []string{
	"body", "main", "div", "section", "article", "header", "footer", "nav", "aside",
}

// Extract returns the extracted HTML as a string.
func (e *HTMLExtractor) Extract(raw string) (any, error) {
	text, err := checkInput(raw)
	if err != nil {
		return nil, err
	}

	stripped := textscan.StripFence(text)
	if stripped == "" {
		return nil, fmt.Errorf("%w: nothing left after fence stripping", ErrNoContent)
	}

	strategies := []strategy{
		{name: "document", run: func() (any, error) {
			cand, ok := htmlDocument(stripped)
			if !ok {
				return nil, fmt.Errorf("%w: no html document", ErrNoContent)
			}
			return e.finish(cand)
		}},
		{name: "fragment", run: func() (any, error) {
			cand, ok := htmlFragment(stripped)
			if !ok {
				return nil, fmt.Errorf("%w: no html fragment", ErrNoContent)
			}
			return e.finish(cand)
		}},
		{name: "heuristic", run: func() (any, error) {
			if !looksLikeHTML(stripped) {
				return nil, fmt.Errorf("%w: input does not read as html", ErrNoContent)
			}
			return e.finish(stripped)
		}},
	}

	return runCascade(TypeHTML, strategies)
}

// finish cleans or validates a located candidate per configuration.
// Cleaning failures fall back to the located candidate unchanged.
func (e *HTMLExtractor) finish(candidate string) (any, error) {
	if e.cfg.Clean {
		if cleaned, err := e.parser.Recover(candidate); err == nil {
			return cleaned, nil
		}
		return candidate, nil
	}
	if e.cfg.Validate {
		if err := e.parser.Validate(candidate); err != nil {
			return nil, fmt.Errorf("located candidate: %w", err)
		}
	}
	return candidate, nil
}

// IsValid reports whether text parses as HTML with at least one
// element. It never returns an error.
func (e *HTMLExtractor) IsValid(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return e.parser.Validate(trimmed) == nil
}

// ExtractAllFragments returns every HTML-looking fragment in the input,
// in document order. Useful when a response carries several snippets.
func (e *HTMLExtractor) ExtractAllFragments(raw string) ([]string, error) {
	text, err := checkInput(raw)
	if err != nil {
		return nil, err
	}

	stripped := textscan.StripFence(text)
	fragments := make([]string, 0)
	for _, span := range textscan.AllTagSpans(stripped) {
		frag := strings.TrimSpace(span.Text)
		if frag != "" && looksLikeHTML(frag) {
			fragments = append(fragments, frag)
		}
	}
	return fragments, nil
}

// htmlDocument captures a complete document: doctype through the final
// closing html tag, or an <html> element span.
func htmlDocument(text string) (string, bool) {
	lower := strings.ToLower(text)
	if idx := strings.Index(lower, "<!doctype"); idx >= 0 {
		if end := strings.LastIndex(lower, "</html>"); end > idx {
			return strings.TrimSpace(text[idx : end+len("</html>")]), true
		}
	}
	if span, ok := textscan.NamedTagSpan(text, "html"); ok {
		return span.Text, true
	}
	return "", false
}

// htmlFragment captures the largest container-rooted fragment, falling
// back to the first paired tag of any name.
func htmlFragment(text string) (string, bool) {
	var best string
	for _, tag := range containerTags {
		if span, ok := textscan.NamedTagSpan(text, tag); ok && len(span.Text) > len(best) {
			best = span.Text
		}
	}
	if best != "" {
		return best, true
	}
	if span, ok := textscan.TagSpan(text); ok {
		return span.Text, true
	}
	return "", false
}

var htmlHints = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<html[\s>]`),
	regexp.MustCompile(`(?i)<head[\s>]`),
	regexp.MustCompile(`(?i)<body[\s>]`),
	regexp.MustCompile(`(?i)<div[\s>]`),
	regexp.MustCompile(`(?i)<p[\s>]`),
	regexp.MustCompile(`(?i)<span[\s>]`),
	regexp.MustCompile(`(?i)<a[\s>]`),
	regexp.MustCompile(`(?i)<img[\s>]`),
	regexp.MustCompile(`(?i)</[a-z][\w-]*>`),
}

// looksLikeHTML requires at least two distinct HTML markers so that a
// lone angle bracket or XML fragment does not qualify.
func looksLikeHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToLower(trimmed), "<!doctype html") {
		return true
	}
	if !strings.HasPrefix(trimmed, "<") || !strings.Contains(trimmed, ">") {
		return false
	}
	hits := 0
	for _, re := range htmlHints {
		if re.MatchString(trimmed) {
			hits++
		}
	}
	return hits >= 2
}
