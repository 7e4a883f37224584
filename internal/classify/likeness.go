package classify

import (
	"regexp"
	"strings"
)

// MinCodeLikeness is the CodeLikeness score at which a region of plain
// text is treated as unfenced code.
const MinCodeLikeness = 3

var (
	symbolPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[{}\[\]();]`),
		regexp.MustCompile(`[=<>!]=`),
		regexp.MustCompile(`[+\-*/]=`),
		regexp.MustCompile(`=>`),
		regexp.MustCompile(`->`),
		regexp.MustCompile(`::`),
	}
	keywordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:def|class|function|func|fn|const|let|var)\s+\w+`),
		regexp.MustCompile(`\b(?:import|from|export|require|use)\s+`),
		regexp.MustCompile(`\b(?:if|else|elif|for|while|switch|match)\s*[({:]`),
		regexp.MustCompile(`\b(?:return|yield|await|async)\b`),
	}
	commentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*#`),
		regexp.MustCompile(`(?m)^\s*//`),
		regexp.MustCompile(`(?s)/\*.*?\*/`),
	}
)

// CodeLikeness scores how strongly text resembles source code. Symbol
// density and comment markers score one point each, keyword constructs
// two, and a mostly-indented body one. Prose rarely clears
// MinCodeLikeness.
func CodeLikeness(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := 0
	for _, re := range symbolPatterns {
		if re.MatchString(text) {
			score++
		}
	}
	for _, re := range keywordPatterns {
		if re.MatchString(text) {
			score += 2
		}
	}
	for _, re := range commentPatterns {
		if re.MatchString(text) {
			score++
		}
	}

	lines := strings.Split(text, "\n")
	indented := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			indented++
		}
	}
	if len(lines) > 0 && indented*10 >= len(lines)*3 {
		score++
	}

	return score
}
