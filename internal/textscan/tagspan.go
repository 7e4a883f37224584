package textscan

import "strings"

// TagSpan returns the first markup element span in text: an opening tag
// through the close tag matching its name, with nesting of the same
// name respected, or a single self-closing tag. Tag names are compared
// case-insensitively so both XML and HTML work.
func TagSpan(text string) (Span, bool) {
	return tagSpanFrom(text, 0)
}

// AllTagSpans returns every non-overlapping element span in document
// order. Each span starts after the end of the previous one.
func AllTagSpans(text string) []Span {
	var spans []Span
	pos := 0
	for {
		span, ok := tagSpanFrom(text, pos)
		if !ok {
			return spans
		}
		spans = append(spans, span)
		pos = span.End
	}
}

// NamedTagSpan returns the first element span whose tag name equals
// name, case-insensitively, regardless of how deeply it is nested.
func NamedTagSpan(text, name string) (Span, bool) {
	lower := strings.ToLower(text)
	needle := "<" + strings.ToLower(name)
	pos := 0
	for {
		idx := strings.Index(lower[pos:], needle)
		if idx < 0 {
			return Span{}, false
		}
		start := pos + idx
		after := start + len(needle)
		if after < len(text) && isTagNameChar(text[after]) {
			// Prefix of a longer tag name, e.g. "<div" inside "<divider".
			pos = start + 1
			continue
		}
		if end, ok := matchClose(text, start, name); ok {
			return Span{Start: start, End: end, Text: text[start:end]}, true
		}
		pos = start + 1
	}
}

// XMLDecl returns the span of an XML declaration ("<?xml ... ?>"), if
// one occurs anywhere in the text.
func XMLDecl(text string) (Span, bool) {
	idx := strings.Index(text, "<?xml")
	if idx < 0 {
		return Span{}, false
	}
	rel := strings.Index(text[idx:], "?>")
	if rel < 0 {
		return Span{}, false
	}
	end := idx + rel + 2
	return Span{Start: idx, End: end, Text: text[idx:end]}, true
}

func tagSpanFrom(text string, from int) (Span, bool) {
	i := from
	for i < len(text) {
		lt := strings.IndexByte(text[i:], '<')
		if lt < 0 {
			return Span{}, false
		}
		start := i + lt
		name := readTagName(text, start+1)
		if name == "" {
			// Not an element: stray '<', comment, declaration, etc.
			i = start + 1
			continue
		}
		gt := closeOfTag(text, start)
		if gt < 0 {
			return Span{}, false
		}
		if text[gt-1] == '/' {
			return Span{Start: start, End: gt + 1, Text: text[start : gt+1]}, true
		}
		if end, ok := matchClose(text, start, name); ok {
			return Span{Start: start, End: end, Text: text[start:end]}, true
		}
		i = start + 1
	}
	return Span{}, false
}

// matchClose walks forward from the opening tag at start, counting
// nested tags of the same name, and returns the exclusive end offset of
// the matching close tag. Self-closing and differently named tags do
// not affect the depth, so unclosed void elements inside the span are
// harmless.
func matchClose(text string, start int, name string) (int, bool) {
	depth := 0
	i := start
	for i < len(text) {
		lt := strings.IndexByte(text[i:], '<')
		if lt < 0 {
			return 0, false
		}
		p := i + lt

		if p+1 < len(text) && text[p+1] == '/' {
			n := readTagName(text, p+2)
			gt := closeOfTag(text, p)
			if gt < 0 {
				return 0, false
			}
			if strings.EqualFold(n, name) {
				depth--
				if depth == 0 {
					return gt + 1, true
				}
			}
			i = gt + 1
			continue
		}

		n := readTagName(text, p+1)
		if n == "" {
			i = p + 1
			continue
		}
		gt := closeOfTag(text, p)
		if gt < 0 {
			return 0, false
		}
		if strings.EqualFold(n, name) && text[gt-1] != '/' {
			depth++
		}
		i = gt + 1
	}
	return 0, false
}

// closeOfTag returns the offset of the '>' terminating the tag that
// opens at start, or -1.
func closeOfTag(text string, start int) int {
	rel := strings.IndexByte(text[start:], '>')
	if rel < 0 {
		return -1
	}
	return start + rel
}

func readTagName(text string, at int) string {
	if at >= len(text) || !isTagNameStart(text[at]) {
		return ""
	}
	j := at
	for j < len(text) && isTagNameChar(text[j]) {
		j++
	}
	return text[at:j]
}

func isTagNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c byte) bool {
	return isTagNameStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '.' || c == ':'
}
