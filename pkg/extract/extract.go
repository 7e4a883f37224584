// Package extract pulls well-formed structured content out of free-form
// language-model output. The desired content is typically wrapped in
// markdown code fences, interleaved with explanatory prose, or lightly
// damaged (trailing commas, truncated fences), so each content type runs
// an ordered cascade of locate, clean, repair and parse strategies and
// returns the first structurally valid result.
//
// Every call is a pure function of its input plus the read-only registry
// and signature tables; extractors carry no mutable state and are safe
// for concurrent use as long as registration happens before extraction
// begins.
package extract

import (
	"fmt"
	"strings"
)

// ContentType selects which strategy cascade and result shape apply.
type ContentType string

const (
	TypeJSON ContentType = "json"
	TypeXML  ContentType = "xml"
	TypeHTML ContentType = "html"
	TypeCode ContentType = "code"
)

// ParseContentType resolves a tag case-insensitively.
func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(strings.ToLower(strings.TrimSpace(s))); ct {
	case TypeJSON, TypeXML, TypeHTML, TypeCode:
		return ct, nil
	}
	return "", fmt.Errorf("%w: unknown content type %q (valid: json, xml, html, code)", ErrInvalidExtractor, s)
}

// Extractor extracts one kind of content from raw model output.
//
// Extract returns a parsed value for JSON (map[string]any or []any) and
// a cleaned string for XML, HTML and code. It returns a fully valid
// result or an error; partially repaired values are never returned
// silently.
type Extractor interface {
	Extract(raw string) (any, error)
	Name() string
}

// Option configures a single Extract call.
type Option func(*callOptions)

type callOptions struct {
	language  string
	extractor Extractor
}

// WithLanguage restricts code extraction to fences tagged with the
// given language. Other content types ignore it.
func WithLanguage(language string) Option {
	return func(o *callOptions) {
		o.language = language
	}
}

// WithExtractor uses a caller-supplied extractor instead of the
// registered one for the requested content type.
func WithExtractor(e Extractor) Option {
	return func(o *callOptions) {
		o.extractor = e
	}
}

// Extract is the primary entry point: it extracts content of the given
// type from raw model output. For JSON the result is the parsed value;
// for XML, HTML and code it is a cleaned string.
func Extract(raw string, contentType ContentType, opts ...Option) (any, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.extractor != nil {
		return o.extractor.Extract(raw)
	}

	factory, ok := lookup(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: no extractor registered for content type %q (valid: %s)",
			ErrInvalidExtractor, contentType, strings.Join(AvailableTypes(), ", "))
	}
	return factory(o.language).Extract(raw)
}

// checkInput rejects non-text-bearing input before any strategy runs.
func checkInput(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	return trimmed, nil
}
