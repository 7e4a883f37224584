// Package classify scores code snippets against per-language token
// signatures. The signature table is built once at init and read-only
// afterwards, so detection is safe for concurrent use.
package classify

import (
	"regexp"
	"strings"
)

const (
	// MinScore is the confidence floor: a best score below it reports
	// no detection.
	MinScore = 4

	// MinMargin is how far the best score must exceed the runner-up
	// before the detection is trusted.
	MinMargin = 2
)

// Signature is one language's weighted token fingerprint.
type Signature struct {
	Language string
	tokens   []token
}

type token struct {
	re     *regexp.Regexp
	weight int
}

type pattern struct {
	expr   string
	weight int
}

// signatureTable lists supported languages in priority order: when two
// languages score equally, the one listed first wins. Patterns made of
// word characters are matched as whole tokens, so "go" never matches
// inside "algorithm".
var signatureTable = []struct {
	language string
	patterns []pattern
}{
	{"python", []pattern{
		{"def", 3}, {"elif", 3}, {"lambda", 2}, {"self", 2}, {"__init__", 3},
		{"None", 2}, {"import", 1}, {"return", 1}, {"yield", 2}, {"except", 2},
	}},
	{"javascript", []pattern{
		{"function", 3}, {"console.", 2}, {"require(", 2}, {"===", 2},
		{"const", 2}, {"let", 2}, {"var", 1}, {"=>", 1}, {"await", 1},
	}},
	{"typescript", []pattern{
		{"interface", 2}, {": string", 2}, {": number", 2}, {"readonly", 2},
		{"export", 1}, {"const", 2}, {"type", 1}, {"=>", 1}, {"enum", 1},
	}},
	{"go", []pattern{
		{"func", 3}, {"package", 2}, {":=", 2}, {"chan", 2}, {"defer", 2},
		{"fmt.", 2}, {"go", 1}, {"range", 1}, {"struct", 1}, {"nil", 1},
	}},
	{"java", []pattern{
		{"public", 2}, {"private", 2}, {"void", 2}, {"String", 2}, {"static", 2},
		{"System.out", 3}, {"extends", 2}, {"implements", 2}, {"class", 1}, {"new", 1},
	}},
	{"rust", []pattern{
		{"fn", 3}, {"let mut", 3}, {"impl", 3}, {"pub", 2}, {"trait", 2},
		{"match", 1}, {"use", 1}, {"::", 1}, {"->", 1},
	}},
	{"c", []pattern{
		{"#include", 3}, {"int main(", 3}, {"printf(", 2}, {"malloc", 2},
		{"sizeof", 2}, {"void", 1}, {"struct", 1}, {"return", 1},
	}},
}

var signatures []Signature

func init() {
	signatures = make([]Signature, 0, len(signatureTable))
	for _, entry := range signatureTable {
		sig := Signature{Language: entry.language}
		for _, p := range entry.patterns {
			sig.tokens = append(sig.tokens, token{re: compileToken(p.expr), weight: p.weight})
		}
		signatures = append(signatures, sig)
	}
}

// compileToken quotes the pattern and anchors word-character edges on
// token boundaries so keywords only match as whole tokens.
func compileToken(expr string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(expr)
	if isWordChar(expr[0]) {
		quoted = `\b` + quoted
	}
	if isWordChar(expr[len(expr)-1]) {
		quoted += `\b`
	}
	return regexp.MustCompile(quoted)
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// score sums the weights of the signature tokens present in code. Each
// token counts once regardless of how often it occurs.
func (s Signature) score(code string) int {
	total := 0
	for _, tok := range s.tokens {
		if tok.re.MatchString(code) {
			total += tok.weight
		}
	}
	return total
}

// Detect returns the best-matching language for code along with its
// score. ok is false when no language clears MinScore or the best score
// does not beat the runner-up by MinMargin. Equal scores resolve to the
// language listed first in the signature table.
func Detect(code string) (lang string, score int, ok bool) {
	if strings.TrimSpace(code) == "" {
		return "", 0, false
	}

	best, runnerUp := 0, 0
	for _, sig := range signatures {
		s := sig.score(code)
		if s > best {
			runnerUp = best
			best = s
			lang = sig.Language
		} else if s > runnerUp {
			runnerUp = s
		}
	}

	if best < MinScore || best-runnerUp < MinMargin {
		return "", best, false
	}
	return lang, best, true
}

// LanguageScore returns code's score against a single language's
// signature, or 0 for an unknown language.
func LanguageScore(code, language string) int {
	for _, sig := range signatures {
		if sig.Language == language {
			return sig.score(code)
		}
	}
	return 0
}

// Languages returns the supported language labels in priority order.
func Languages() []string {
	out := make([]string, len(signatures))
	for i, sig := range signatures {
		out[i] = sig.Language
	}
	return out
}

// Known reports whether the label names a supported language.
func Known(language string) bool {
	for _, sig := range signatures {
		if sig.Language == language {
			return true
		}
	}
	return false
}
