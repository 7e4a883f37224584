package extract

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/kaptinlin/jsonrepair"

	"github.com/aihes/llm-content-extractor/internal/textscan"
)

// JSONConfig configures JSON extraction.
type JSONConfig struct {
	// Strict disables the repair stages: only content that parses
	// as-is is accepted.
	Strict bool

	// AggressiveRepair appends a last-resort stage backed by the
	// jsonrepair library, which also fixes unquoted keys, single
	// quotes and similar defects. Off by default because it can alter
	// unusual-but-intentional values; the standard repair stage only
	// removes dangling commas.
	AggressiveRepair bool
}

// JSONExtractor extracts and parses a JSON object or array from model
// output.
//
// Strategy order: direct parse of the trimmed input, parse of the first
// matching fenced block, parse of the first balanced brace or bracket
// span, then (non-strict) parse after dangling-comma repair of the
// located candidates.
type JSONExtractor struct {
	cfg JSONConfig
}

// NewJSON creates a JSON extractor.
func NewJSON(cfg JSONConfig) *JSONExtractor {
	return &JSONExtractor{cfg: cfg}
}

// Name returns the content type tag.
func (e *JSONExtractor) Name() string { return string(TypeJSON) }

// Extract returns the parsed value: map[string]any or []any.
func (e *JSONExtractor) Extract(raw string) (any, error) {
	text, err := checkInput(raw)
	if err != nil {
		return nil, err
	}

	// Candidates located by the fence and span stages, kept for the
	// repair stages. Direct-parse failures of the whole input are not
	// candidates: when nothing was located, the outcome is not-found,
	// not a syntax error.
	var candidates []string

	strategies := []strategy{
		{name: "direct", run: func() (any, error) {
			v, perr := parseJSON(text)
			if perr != nil {
				return nil, fmt.Errorf("input does not parse as a whole: %v", perr)
			}
			return v, nil
		}},
		{name: "fence", run: func() (any, error) {
			f, ok := textscan.FirstFence(text, "json", e.cfg.Strict)
			if !ok || f.Body == "" {
				return nil, fmt.Errorf("%w: no json code fence", ErrNoContent)
			}
			candidates = append(candidates, f.Body)
			v, perr := parseJSON(f.Body)
			if perr != nil {
				return nil, fmt.Errorf("fenced block: %w", perr)
			}
			return v, nil
		}},
		{name: "balanced-span", run: func() (any, error) {
			span, ok := textscan.BalancedSpan(text)
			if !ok {
				return nil, fmt.Errorf("%w: no balanced object or array span", ErrNoContent)
			}
			if !looksLikeJSON(span.Text) {
				return nil, fmt.Errorf("%w: balanced span does not resemble JSON", ErrNoContent)
			}
			candidates = append(candidates, span.Text)
			v, perr := parseJSON(span.Text)
			if perr != nil {
				return nil, fmt.Errorf("balanced span: %w", perr)
			}
			return v, nil
		}},
	}

	if !e.cfg.Strict {
		strategies = append(strategies, strategy{name: "repair", run: func() (any, error) {
			var lastErr error
			for _, c := range candidates {
				fixed := textscan.RepairJSON(c)
				if fixed == c {
					continue
				}
				v, perr := parseJSON(fixed)
				if perr == nil {
					return v, nil
				}
				lastErr = fmt.Errorf("repaired candidate: %w", perr)
			}
			if lastErr == nil {
				lastErr = fmt.Errorf("%w: nothing to repair", ErrNoContent)
			}
			return nil, lastErr
		}})

		if e.cfg.AggressiveRepair {
			strategies = append(strategies, strategy{name: "jsonrepair", run: func() (any, error) {
				sources := candidates
				if len(sources) == 0 {
					sources = []string{text}
				}
				var lastErr error
				for _, c := range sources {
					fixed, rerr := jsonrepair.JSONRepair(c)
					if rerr != nil {
						lastErr = fmt.Errorf("jsonrepair: %v", rerr)
						continue
					}
					v, perr := parseJSON(fixed)
					if perr == nil {
						return v, nil
					}
					lastErr = fmt.Errorf("aggressively repaired candidate: %w", perr)
				}
				return nil, lastErr
			}})
		}
	}

	return runCascade(TypeJSON, strategies)
}

// parseJSON decodes text and requires an object or array at the top
// level; scalar results are rejected.
func parseJSON(text string) (any, *SyntaxError) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, syntaxErrorFromJSON(err, text)
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	}
	return nil, &SyntaxError{Msg: fmt.Sprintf("expected object or array, got %T", v), Offset: -1}
}

// jsonHints are structural patterns a plausible JSON span should show.
var jsonHints = []*regexp.Regexp{
	regexp.MustCompile(`"[^"]*"\s*:`),              // key
	regexp.MustCompile(`:\s*"`),                    // string value
	regexp.MustCompile(`:\s*[\d\-]`),               // numeric value
	regexp.MustCompile(`:\s*(?:true|false|null)`),  // literal value
	regexp.MustCompile(`^\s*\[[\s\S]*\]\s*$`),      // bare array
}

// looksLikeJSON is a cheap plausibility gate applied to balanced spans
// so that brace-wrapped prose is not treated as a candidate.
func looksLikeJSON(text string) bool {
	if len(text) < 2 {
		return false
	}
	first, last := text[0], text[len(text)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}
	if text == "{}" || text == "[]" {
		return true
	}
	for _, re := range jsonHints {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
