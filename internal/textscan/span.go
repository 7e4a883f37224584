package textscan

import "strings"

// Span is a contiguous region of a larger document. End is exclusive.
type Span struct {
	Start int
	End   int
	Text  string
}

// BalancedSpan returns the first top-level balanced brace or bracket
// span in text. When both delimiters are present, the one occurring
// earlier is scanned first; the other is tried if the first never
// closes. Returns false when no balanced span exists before the end of
// the input, which is the normal outcome for truncated output.
func BalancedSpan(text string) (Span, bool) {
	braceIdx := strings.IndexByte(text, '{')
	bracketIdx := strings.IndexByte(text, '[')

	type opening struct {
		idx         int
		open, close byte
	}
	var order []opening
	if braceIdx >= 0 {
		order = append(order, opening{braceIdx, '{', '}'})
	}
	if bracketIdx >= 0 {
		if braceIdx >= 0 && bracketIdx < braceIdx {
			order = append([]opening{{bracketIdx, '[', ']'}}, order...)
		} else {
			order = append(order, opening{bracketIdx, '[', ']'})
		}
	}

	for _, o := range order {
		if span, ok := scanBalanced(text, o.idx, o.open, o.close); ok {
			return span, true
		}
	}
	return Span{}, false
}

// BalancedSpanFrom scans for the first balanced span opened by the given
// delimiter. The scan starts at the first occurrence of open.
func BalancedSpanFrom(text string, open, close byte) (Span, bool) {
	idx := strings.IndexByte(text, open)
	if idx < 0 {
		return Span{}, false
	}
	return scanBalanced(text, idx, open, close)
}

// scanBalanced walks forward from start (which must hold the opening
// delimiter) tracking nesting depth and string-literal state. Delimiters
// inside single- or double-quoted literals are skipped, honoring
// backslash escapes. The span ends the moment depth returns to zero.
func scanBalanced(text string, start int, open, close byte) (Span, bool) {
	depth := 0
	inString := false
	escaped := false
	var quote byte

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				inString = false
			}
			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return Span{Start: start, End: i + 1, Text: text[start : i+1]}, true
			}
		}
	}
	return Span{}, false
}
