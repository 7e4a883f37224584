package textscan

import "strings"

// RepairJSON rewrites the comma defects typical of model-generated JSON:
// a trailing comma before a closing brace or bracket, runs of
// consecutive commas, and a comma directly after an opening delimiter.
// The rewrite is re-applied until a fixed point is reached and is a
// no-op on text that is already valid JSON. Commas inside string
// literals are never touched.
func RepairJSON(text string) string {
	for {
		fixed := stripDanglingCommas(text)
		if fixed == text {
			return fixed
		}
		text = fixed
	}
}

// stripDanglingCommas removes one layer of commas that separate nothing:
// commas whose next significant character is a closing delimiter or
// another comma, and commas directly following an opening delimiter.
func stripDanglingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	var quote byte
	var lastSig byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
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
		case ',':
			if lastSig == '{' || lastSig == '[' {
				continue
			}
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']' || s[j] == ',') {
				continue
			}
		}

		b.WriteByte(c)
		if !isJSONSpace(c) {
			lastSig = c
		}
	}
	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
