package extract

import (
	"fmt"
	"strings"

	"github.com/aihes/llm-content-extractor/internal/textscan"
)

// XMLConfig configures XML extraction.
type XMLConfig struct {
	// Validate enables well-formedness checking of located content.
	// When disabled, the first located candidate is returned unchecked.
	Validate bool

	// Recover re-parses malformed XML permissively, dropping
	// unparsable content instead of failing. Only meaningful when
	// Validate is set.
	Recover bool

	// Parser overrides the markup capability. Nil selects the
	// etree-backed implementation; NewPatternMarkup gives the
	// pattern-based fallback.
	Parser MarkupParser
}

// DefaultXMLConfig enables validation and recovery.
func DefaultXMLConfig() XMLConfig {
	return XMLConfig{Validate: true, Recover: true}
}

// XMLExtractor extracts an XML document or fragment from model output.
//
// Strategy order: the fence-stripped input as a whole document, the
// first tag-delimited span (with a preceding XML declaration kept), and
// finally permissive recovery of whatever was located.
type XMLExtractor struct {
	cfg    XMLConfig
	parser MarkupParser
}

// NewXML creates an XML extractor.
func NewXML(cfg XMLConfig) *XMLExtractor {
	p := cfg.Parser
	if p == nil {
		p = NewXMLMarkup()
	}
	return &XMLExtractor{cfg: cfg, parser: p}
}

// Name returns the content type tag.
func (e *XMLExtractor) Name() string { return string(TypeXML) }

// Extract returns the extracted XML as a string.
func (e *XMLExtractor) Extract(raw string) (any, error) {
	text, err := checkInput(raw)
	if err != nil {
		return nil, err
	}

	stripped := textscan.StripFence(text)
	if stripped == "" {
		return nil, fmt.Errorf("%w: nothing left after fence stripping", ErrNoContent)
	}

	var located []string

	strategies := []strategy{
		{name: "document", run: func() (any, error) {
			if !looksLikeXMLDocument(stripped) {
				return nil, fmt.Errorf("%w: input is not an XML document", ErrNoContent)
			}
			located = append(located, stripped)
			return e.check(stripped)
		}},
		{name: "tag-span", run: func() (any, error) {
			cand, ok := xmlSpan(stripped)
			if !ok {
				return nil, fmt.Errorf("%w: no markup element found", ErrNoContent)
			}
			located = append(located, cand)
			return e.check(cand)
		}},
	}

	if e.cfg.Validate && e.cfg.Recover {
		strategies = append(strategies, strategy{name: "recover", run: func() (any, error) {
			var lastErr error
			for _, c := range located {
				out, rerr := e.parser.Recover(c)
				if rerr == nil {
					return out, nil
				}
				lastErr = rerr
			}
			if lastErr == nil {
				lastErr = fmt.Errorf("%w: nothing to recover", ErrNoContent)
			}
			return nil, lastErr
		}})
	}

	return runCascade(TypeXML, strategies)
}

// check validates a located candidate when validation is enabled.
func (e *XMLExtractor) check(candidate string) (any, error) {
	if !e.cfg.Validate {
		return candidate, nil
	}
	if err := e.parser.Validate(candidate); err != nil {
		return nil, fmt.Errorf("located candidate: %w", err)
	}
	return candidate, nil
}

// IsValid reports whether text is well-formed XML according to the
// configured markup capability. It never returns an error.
func (e *XMLExtractor) IsValid(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return e.parser.Validate(trimmed) == nil
}

func looksLikeXMLDocument(text string) bool {
	if strings.HasPrefix(text, "<?xml") {
		return true
	}
	return strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">")
}

// xmlSpan locates the first element span, keeping an XML declaration
// that precedes it.
func xmlSpan(text string) (string, bool) {
	span, ok := textscan.TagSpan(text)
	if !ok {
		return "", false
	}
	if decl, has := textscan.XMLDecl(text); has && decl.End <= span.Start {
		return decl.Text + "\n" + span.Text, true
	}
	return span.Text, true
}
