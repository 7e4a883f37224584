package extract

import (
	"fmt"
	"strings"

	"github.com/aihes/llm-content-extractor/internal/classify"
	"github.com/aihes/llm-content-extractor/internal/logger"
	"github.com/aihes/llm-content-extractor/internal/textscan"
)

// LanguageUnknown labels a code block whose language could not be
// determined.
const LanguageUnknown = "unknown"

// CodeConfig configures code-block extraction.
type CodeConfig struct {
	// Language restricts extraction to fences tagged with this
	// language (case-insensitive). Empty accepts any block.
	Language string

	// Strict limits extraction to fenced blocks; the unfenced-code
	// heuristic is skipped.
	Strict bool
}

// CodeExtractor extracts code blocks from model output.
//
// Strategy order: a fence tagged with the requested language, any
// fence, then (non-strict) the most code-like contiguous region of the
// plain text.
type CodeExtractor struct {
	cfg CodeConfig
}

// NewCode creates a code extractor.
func NewCode(cfg CodeConfig) *CodeExtractor {
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	return &CodeExtractor{cfg: cfg}
}

// Name returns the content type tag.
func (e *CodeExtractor) Name() string { return string(TypeCode) }

// CodeBlock is one extracted block with its metadata.
type CodeBlock struct {
	// Language is the fence tag, or the detected label for untagged
	// blocks; LanguageUnknown when neither is available.
	Language string `json:"language" yaml:"language"`

	// Code is the block body with fence markers stripped.
	Code string `json:"code" yaml:"code"`

	// Fenced reports whether the block came from a markdown fence.
	Fenced bool `json:"fenced" yaml:"fenced"`

	// Confidence is 1 for tagged fences and the classifier's
	// normalized score otherwise.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Extract returns the extracted code as a string, fence markers
// stripped.
func (e *CodeExtractor) Extract(raw string) (any, error) {
	text, err := checkInput(raw)
	if err != nil {
		return nil, err
	}

	var strategies []strategy

	if e.cfg.Language != "" {
		strategies = append(strategies, strategy{name: "tagged-fence", run: func() (any, error) {
			f, ok := textscan.FirstFence(text, e.cfg.Language, e.cfg.Strict)
			if !ok || f.Body == "" {
				return nil, fmt.Errorf("%w: no ```%s fence", ErrNoContent, e.cfg.Language)
			}
			return f.Body, nil
		}})
	} else {
		strategies = append(strategies, strategy{name: "fence", run: func() (any, error) {
			f, ok := textscan.FirstFence(text, "", e.cfg.Strict)
			if !ok || f.Body == "" {
				return nil, fmt.Errorf("%w: no code fence", ErrNoContent)
			}
			e.annotate(f)
			return f.Body, nil
		}})
	}

	if !e.cfg.Strict {
		strategies = append(strategies, strategy{name: "heuristic", run: func() (any, error) {
			region, score := bestCodeRegion(text)
			if e.cfg.Language != "" {
				if classify.LanguageScore(region, e.cfg.Language) >= classify.MinScore {
					return region, nil
				}
				return nil, fmt.Errorf("%w: text does not resemble %s code", ErrNoContent, e.cfg.Language)
			}
			if score < classify.MinCodeLikeness {
				return nil, fmt.Errorf("%w: text does not resemble code", ErrNoContent)
			}
			return region, nil
		}})
	}

	return runCascade(TypeCode, strategies)
}

// annotate classifies an untagged match for diagnostics. With an
// explicit language filter the tag already answered the question.
func (e *CodeExtractor) annotate(f textscan.Fence) {
	if e.cfg.Language != "" || f.Tag != "" {
		return
	}
	if lang, score, ok := classify.Detect(f.Body); ok {
		logger.Debug("code language detected", "language", lang, "score", score)
	}
}

// ExtractAllBlocks returns every fenced block in document order with
// its language annotation. Untagged blocks are classified; blocks that
// defeat the classifier are labeled LanguageUnknown.
func (e *CodeExtractor) ExtractAllBlocks(raw string) ([]CodeBlock, error) {
	text, err := checkInput(raw)
	if err != nil {
		return nil, err
	}

	blocks := make([]CodeBlock, 0)
	for _, f := range textscan.AllFences(text) {
		if f.Body == "" {
			continue
		}
		block := CodeBlock{Code: f.Body, Fenced: true}
		switch {
		case f.Tag != "":
			block.Language = f.Tag
			block.Confidence = 1
		default:
			if lang, score, ok := classify.Detect(f.Body); ok {
				block.Language = lang
				block.Confidence = confidenceFromScore(score)
			} else {
				block.Language = LanguageUnknown
			}
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// DetectLanguage reports the language a snippet most resembles. ok is
// false when no signature clears the classifier's confidence threshold
// and margin.
func (e *CodeExtractor) DetectLanguage(code string) (language string, ok bool) {
	language, _, ok = classify.Detect(code)
	return language, ok
}

// SupportedLanguages returns the labels with detection signatures, in
// the classifier's priority order.
func (e *CodeExtractor) SupportedLanguages() []string {
	return classify.Languages()
}

// confidenceFromScore maps a raw classifier score into (0, 1): the
// threshold score lands at 0.5 and higher scores approach 1.
func confidenceFromScore(score int) float64 {
	return float64(score) / float64(score+classify.MinScore)
}

// bestCodeRegion scores blank-line-separated groups of lines and
// returns the highest-scoring one. The whole text wins when no single
// group outscores it.
func bestCodeRegion(text string) (string, int) {
	best := strings.TrimSpace(text)
	bestScore := classify.CodeLikeness(best)
	for _, group := range strings.Split(text, "\n\n") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		if score := classify.CodeLikeness(group); score > bestScore {
			best, bestScore = group, score
		}
	}
	return best, bestScore
}
