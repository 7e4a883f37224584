// Package textscan provides the low-level text scanning used by the
// extractors: markdown fence location, balanced-delimiter span scanning,
// markup tag-span matching, and textual JSON repair.
package textscan

import "strings"

const fenceMarker = "```"

// Fence is a markdown code fence found in a document.
type Fence struct {
	// Tag is the language tag from the opening line, lower-cased.
	// Empty for an untagged fence.
	Tag string

	// Body is the inner text with fence markers removed and surrounding
	// whitespace trimmed.
	Body string

	// Start is the byte offset of the opening backticks.
	Start int

	// Closed is false when the fence ran to the end of the input without
	// a closing marker.
	Closed bool
}

// AllFences returns every code fence in document order. A fence with no
// closing marker extends to the end of the input and is reported with
// Closed set to false.
func AllFences(text string) []Fence {
	var fences []Fence
	pos := 0
	for {
		idx := strings.Index(text[pos:], fenceMarker)
		if idx < 0 {
			return fences
		}
		open := pos + idx
		headerStart := open + len(fenceMarker)

		f := Fence{Start: open}
		nl := strings.IndexByte(text[headerStart:], '\n')
		if nl < 0 {
			// Opening fence on the last line: the header is all that
			// remains and the body is empty.
			f.Tag = fenceTag(text[headerStart:])
			return append(fences, f)
		}
		f.Tag = fenceTag(text[headerStart : headerStart+nl])

		bodyStart := headerStart + nl + 1
		closeIdx := strings.Index(text[bodyStart:], fenceMarker)
		if closeIdx < 0 {
			f.Body = strings.TrimSpace(text[bodyStart:])
			return append(fences, f)
		}
		f.Body = strings.TrimSpace(text[bodyStart : bodyStart+closeIdx])
		f.Closed = true
		fences = append(fences, f)
		pos = bodyStart + closeIdx + len(fenceMarker)
	}
}

// FirstFence returns the first fence eligible under the given language
// filter. An empty tag matches any fence. With a non-empty tag, a fence
// matches when its own tag equals it case-insensitively; an untagged
// fence is also eligible unless strict is set. Unclosed fences are only
// eligible when strict is unset.
func FirstFence(text, tag string, strict bool) (Fence, bool) {
	for _, f := range AllFences(text) {
		if !f.Closed && strict {
			continue
		}
		if !fenceTagMatches(f.Tag, tag, strict) {
			continue
		}
		return f, true
	}
	return Fence{}, false
}

func fenceTagMatches(have, want string, strict bool) bool {
	if want == "" {
		return true
	}
	if have == "" {
		return !strict
	}
	return strings.EqualFold(have, want)
}

// fenceTag extracts the language tag from a fence header line. Extra
// metadata after the tag (titles, attributes) is ignored.
func fenceTag(header string) string {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// StripFence removes fence markers when the text itself is a fenced
// block, returning the inner content. The opening line, including any
// language tag, is dropped; a trailing fence is optional so truncated
// blocks still strip cleanly. Text that does not start with a fence is
// returned trimmed but otherwise unchanged.
func StripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fenceMarker) {
		return text
	}

	rest := text[len(fenceMarker):]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		// Single-line remnant such as "```json" or "``````".
		return strings.TrimSpace(strings.TrimSuffix(rest, fenceMarker))
	}

	body := strings.TrimSpace(rest[nl+1:])
	body = strings.TrimSuffix(body, fenceMarker)
	return strings.TrimSpace(body)
}
