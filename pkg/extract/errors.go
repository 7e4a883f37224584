package extract

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput reports input that is empty or whitespace-only. It
	// is returned before any strategy runs.
	ErrEmptyInput = errors.New("input is empty or whitespace-only")

	// ErrNoContent reports that no candidate content could be located.
	ErrNoContent = errors.New("no extractable content found")

	// ErrInvalidExtractor reports a supplied extractor or registration
	// that does not satisfy the required contract.
	ErrInvalidExtractor = errors.New("invalid extractor")
)

// SyntaxError reports content that was located but failed to parse,
// even after repair. It is distinct from ErrNoContent: the content is
// present but damaged, which is the more useful diagnostic.
type SyntaxError struct {
	Msg    string
	Offset int // byte offset into the candidate, -1 when unknown
	Line   int // 1-based, 0 when unknown
	Column int // 1-based, 0 when unknown
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
	case e.Offset >= 0:
		return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
	}
	return "syntax error: " + e.Msg
}

// Attempt records one strategy tried by an extraction cascade. Attempts
// are kept only for the final error report.
type Attempt struct {
	Strategy string
	Err      error
}

// CascadeError is returned when every strategy for a content type has
// failed. Its message lists the strategies attempted and the most
// specific diagnostic collected: a positional syntax error from a
// located candidate wins over a bare not-found.
type CascadeError struct {
	ContentType ContentType
	Attempts    []Attempt
}

func (e *CascadeError) Error() string {
	names := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		names[i] = a.Strategy
	}
	msg := fmt.Sprintf("no valid %s content found (tried: %s)", e.ContentType, strings.Join(names, ", "))
	if d := e.diagnostic(); d != nil {
		return msg + ": " + d.Error()
	}
	return msg
}

// Unwrap exposes the most specific diagnostic so callers can use
// errors.Is(err, ErrNoContent) and errors.As with *SyntaxError.
func (e *CascadeError) Unwrap() error {
	if d := e.diagnostic(); d != nil {
		return d
	}
	return ErrNoContent
}

func (e *CascadeError) diagnostic() error {
	for _, a := range e.Attempts {
		var se *SyntaxError
		if errors.As(a.Err, &se) {
			return se
		}
	}
	return nil
}

// syntaxErrorFromJSON converts an encoding/json failure into a
// SyntaxError with line/column derived from the candidate text.
func syntaxErrorFromJSON(err error, text string) *SyntaxError {
	var offset int64 = -1

	var je *json.SyntaxError
	var te *json.UnmarshalTypeError
	switch {
	case errors.As(err, &je):
		offset = je.Offset
	case errors.As(err, &te):
		offset = te.Offset
	}

	se := &SyntaxError{Msg: err.Error(), Offset: int(offset)}
	if offset >= 0 {
		se.Line, se.Column = lineColumn(text, int(offset))
	}
	return se
}

// syntaxErrorFromXML converts an encoding/xml failure (possibly wrapped
// by a parser library) into a SyntaxError.
func syntaxErrorFromXML(err error) *SyntaxError {
	var xe *xml.SyntaxError
	if errors.As(err, &xe) {
		return &SyntaxError{Msg: xe.Msg, Offset: -1, Line: xe.Line}
	}
	return &SyntaxError{Msg: err.Error(), Offset: -1}
}

// lineColumn maps a byte offset to 1-based line and column numbers.
func lineColumn(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	line = 1 + strings.Count(text[:offset], "\n")
	if nl := strings.LastIndexByte(text[:offset], '\n'); nl >= 0 {
		col = offset - nl
	} else {
		col = offset + 1
	}
	return line, col
}
