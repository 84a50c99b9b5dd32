package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// GameWriter is the interface for writing game transcripts to output.
// Different implementations handle different formats (text, JSON).
type GameWriter interface {
	// WriteGame writes a single transcript to the output.
	WriteGame(r *Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer for format "text" or "json".
func NewGameWriter(format string, w io.Writer) (GameWriter, error) {
	switch format {
	case "", "text":
		return NewTextWriter(w, 80), nil
	case "json":
		return NewJSONWriterSingle(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TextWriter writes transcripts followed by a diagram of the final board.
type TextWriter struct {
	w             io.Writer
	maxLineLength int
	invert        bool
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, maxLineLength int) *TextWriter {
	return &TextWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// SetInvert draws the final board with Black at the top.
func (tw *TextWriter) SetInvert(invert bool) {
	tw.invert = invert
}

// WriteGame writes a transcript in text format.
func (tw *TextWriter) WriteGame(r *Record) error {
	OutputRecord(tw.w, r, tw.maxLineLength)
	return RenderBoard(tw.w, r.Game, tw.invert)
}

// Flush flushes the text writer (no-op as it writes immediately).
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes transcripts in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*JSONGame
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*JSONGame, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a transcript for JSON output (or writes immediately in
// single mode). The transcript is converted at once, so later turns on the
// same game do not leak into a buffered entry.
func (jw *JSONWriter) WriteGame(r *Record) error {
	jg := RecordToJSON(r)
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(jg)
	}

	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.games})

	// Clear buffer after writing
	jw.games = jw.games[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
