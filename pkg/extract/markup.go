package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/aihes/llm-content-extractor/internal/textscan"
)

// MarkupParser is the capability used by the XML and HTML extractors to
// check well-formedness and recover damaged markup. Implementations are
// selected when an extractor is constructed, never probed at call time.
// The pattern-based implementation always exists; the parser-backed
// ones add tolerant recovery.
type MarkupParser interface {
	// Validate reports whether text is well-formed.
	Validate(text string) error

	// Recover re-parses text, discarding unparsable content, and
	// returns the cleaned serialization.
	Recover(text string) (string, error)

	// Name identifies the implementation for diagnostics.
	Name() string
}

// etreeMarkup validates and recovers XML through the etree document
// model. Recovery uses permissive reads, which drop malformed boundary
// content instead of failing outright.
type etreeMarkup struct{}

// NewXMLMarkup returns the etree-backed XML capability.
func NewXMLMarkup() MarkupParser { return etreeMarkup{} }

func (etreeMarkup) Name() string { return "etree" }

func (etreeMarkup) Validate(text string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return syntaxErrorFromXML(err)
	}
	if doc.Root() == nil {
		return &SyntaxError{Msg: "no root element", Offset: -1}
	}
	return nil
}

func (etreeMarkup) Recover(text string) (string, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(text); err != nil {
		return "", syntaxErrorFromXML(err)
	}
	if doc.Root() == nil {
		return "", fmt.Errorf("%w: nothing recoverable", ErrNoContent)
	}
	out, err := doc.WriteToString()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// netHTMLMarkup parses HTML with the net/html tokenizer, which absorbs
// the malformed markup models tend to produce.
type netHTMLMarkup struct{}

// NewHTMLMarkup returns the net/html-backed HTML capability.
func NewHTMLMarkup() MarkupParser { return netHTMLMarkup{} }

func (netHTMLMarkup) Name() string { return "net-html" }

func (netHTMLMarkup) Validate(text string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return &SyntaxError{Msg: err.Error(), Offset: -1}
	}
	if doc.Find("head *, body *").Length() == 0 {
		return &SyntaxError{Msg: "no elements found", Offset: -1}
	}
	return nil
}

func (netHTMLMarkup) Recover(text string) (string, error) {
	if isFullHTMLDocument(text) {
		node, err := html.Parse(strings.NewReader(text))
		if err != nil {
			return "", &SyntaxError{Msg: err.Error(), Offset: -1}
		}
		var b strings.Builder
		if err := html.Render(&b, node); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	// Fragments are re-parsed in a body context so they are not
	// wrapped in a synthetic document.
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), ctx)
	if err != nil {
		return "", &SyntaxError{Msg: err.Error(), Offset: -1}
	}
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("%w: nothing recoverable", ErrNoContent)
	}
	return out, nil
}

func isFullHTMLDocument(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html")
}

// patternMarkup is the fallback capability built purely on tag-span
// scanning. It cannot clean markup, only capture the outermost tag
// pair, so it serves when tolerant parsing is not wanted.
type patternMarkup struct{}

// NewPatternMarkup returns the pattern-based fallback capability.
func NewPatternMarkup() MarkupParser { return patternMarkup{} }

func (patternMarkup) Name() string { return "pattern" }

func (patternMarkup) Validate(text string) error {
	trimmed := strings.TrimSpace(text)
	span, ok := textscan.TagSpan(trimmed)
	if !ok {
		return &SyntaxError{Msg: "no complete element found", Offset: -1}
	}
	if strings.TrimSpace(trimmed[span.End:]) != "" && !strings.HasPrefix(trimmed, "<?xml") {
		return &SyntaxError{Msg: "trailing content after root element", Offset: span.End}
	}
	return nil
}

func (patternMarkup) Recover(text string) (string, error) {
	span, ok := textscan.TagSpan(text)
	if !ok {
		return "", fmt.Errorf("%w: no complete element found", ErrNoContent)
	}
	return span.Text, nil
}
