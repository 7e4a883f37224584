package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// TextWriter writes string results verbatim, one per line group. It is
// the natural format for extracted XML, HTML and code, which are already
// text. Non-string results fall back to compact JSON so the format never
// fails on a structured value.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write writes one result followed by a newline.
func (w *TextWriter) Write(data any) error {
	switch v := data.(type) {
	case string:
		if _, err := w.w.WriteString(v); err != nil {
			return err
		}
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := w.w.Write(encoded); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// WriteAll writes each result on its own line.
func (w *TextWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
