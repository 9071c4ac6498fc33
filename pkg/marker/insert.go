package marker

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidInsertSpan is returned when an insertion span does not fit the
// content it targets.
var ErrInvalidInsertSpan = errors.New("insert span out of range")

// newID returns a fresh short comment id, the first 8 characters of a UUID.
func newID() string {
	return uuid.NewString()[:8]
}

// InsertInline wraps raw[start:end) in a fresh inline marker pair and returns
// the new content and the generated comment id. Positions are raw-content
// offsets of the selection to highlight.
func InsertInline(raw string, start, end int, text string) (string, string, error) {
	if start < 0 || end <= start || end > len(raw) {
		return "", "", fmt.Errorf("insert inline comment [%d:%d): %w", start, end, ErrInvalidInsertSpan)
	}
	id := newID()
	out := raw[:start] + inlineOpen(id) + raw[start:end] + inlineClose(id, text) + raw[end:]
	return out, id, nil
}

// InsertLine brackets raw[lineStart:lineEnd) with a line marker pair and
// returns the new content and the generated comment id. lineStart is the
// offset of the first highlighted line and lineEnd the offset just past the
// last line's text, before its terminating newline.
func InsertLine(raw string, lineStart, lineEnd int, text string) (string, string, error) {
	if lineStart < 0 || lineEnd <= lineStart || lineEnd > len(raw) {
		return "", "", fmt.Errorf("insert line comment [%d:%d): %w", lineStart, lineEnd, ErrInvalidInsertSpan)
	}
	id := newID()
	out := raw[:lineStart] + lineOpen(id) + raw[lineStart:lineEnd] + lineClose(id, text) + raw[lineEnd:]
	return out, id, nil
}
