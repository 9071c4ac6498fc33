// Package marker encodes review comments as inline HTML-comment tags
// embedded in the document's own text, and decodes such documents back into
// clean content plus a comment list. A document with markers remains valid
// Markdown: other renderers treat the tags as ordinary HTML comments.
//
// Two grammars exist, selected by the comment type:
//
//	inline: <!-- review-start(id) -->text<!-- review-end(id): note -->
//	line:   <!-- review-line-start(id) -->\n …lines…\n<!-- review-line-end(id): note -->
//
// The open/close pair is matched by id, independent of document order.
package marker

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yaklabco/mdreview/pkg/comment"
)

// Marker patterns anchored at the scan position. The line-open pattern owns
// its trailing newline and the line-close pattern is preceded by a
// marker-owned newline handled separately in the scanner.
var (
	openInlineRe  = regexp.MustCompile(`^<!--\s*review-start\(([a-zA-Z0-9-]+)\)\s*-->`)
	openLineRe    = regexp.MustCompile(`^<!--\s*review-line-start\(([a-zA-Z0-9-]+)\)\s*-->\n?`)
	closeInlineRe = regexp.MustCompile(`^<!--\s*review-end\(([a-zA-Z0-9-]+)\):\s*([\s\S]*?)\s*-->`)
	closeLineRe   = regexp.MustCompile(`^<!--\s*review-line-end\(([a-zA-Z0-9-]+)\):\s*([\s\S]*?)\s*-->`)
)

func inlineOpen(id string) string {
	return fmt.Sprintf("<!-- review-start(%s) -->", id)
}

func inlineClose(id, text string) string {
	return fmt.Sprintf("<!-- review-end(%s): %s -->", id, text)
}

func lineOpen(id string) string {
	return fmt.Sprintf("<!-- review-line-start(%s) -->\n", id)
}

func lineClose(id, text string) string {
	return fmt.Sprintf("\n<!-- review-line-end(%s): %s -->", id, text)
}

// splice is one marker insertion into clean content.
type splice struct {
	offset  int
	text    string
	isClose bool
}

// Serialize embeds every live comment's marker pair into clean content and
// returns the raw form. Insertions are applied in one left-to-right pass over
// offset-sorted splices, so comments cannot corrupt each other's positions.
// Comments with collapsed or out-of-range anchors are skipped.
func Serialize(clean string, comments []comment.Comment) string {
	if len(comments) == 0 {
		return clean
	}

	splices := make([]splice, 0, len(comments)*2)
	for _, c := range comments {
		if c.Collapsed() || c.HighlightStart < 0 || c.HighlightEnd > len(clean) {
			continue
		}
		var open, cls string
		switch c.Type {
		case comment.TypeLine:
			open, cls = lineOpen(c.ID), lineClose(c.ID, c.Text)
		default:
			open, cls = inlineOpen(c.ID), inlineClose(c.ID, c.Text)
		}
		splices = append(splices,
			splice{offset: c.HighlightStart, text: open},
			splice{offset: c.HighlightEnd, text: cls, isClose: true},
		)
	}

	// At equal offsets a close marker precedes an open marker: the closing
	// comment ends where the next one begins.
	sort.SliceStable(splices, func(i, j int) bool {
		if splices[i].offset != splices[j].offset {
			return splices[i].offset < splices[j].offset
		}
		return splices[i].isClose && !splices[j].isClose
	})

	var b strings.Builder
	b.Grow(len(clean) + len(splices)*32)
	cursor := 0
	for _, sp := range splices {
		if sp.offset < cursor {
			continue
		}
		b.WriteString(clean[cursor:sp.offset])
		b.WriteString(sp.text)
		cursor = sp.offset
	}
	b.WriteString(clean[cursor:])
	return b.String()
}

// pendingOpen records an open marker awaiting its close.
type pendingOpen struct {
	typ       comment.Type
	emitted   int // clean bytes emitted when the open marker was seen
	markerPos int // raw offset of the open marker
}

// ParseAndStrip scans raw content left to right, strips every recognized
// marker, and recovers the comments they encode. Anchors are computed in
// clean-content coordinates from the emitted length at each marker. It is the
// exact inverse of Serialize for non-overlapping comments.
//
// An open marker without a matching close (or vice versa) is stripped without
// emitting a comment; malformed input never raises an error.
func ParseAndStrip(raw string) (string, []comment.Comment) {
	clean := make([]byte, 0, len(raw))
	var comments []comment.Comment
	open := make(map[string]pendingOpen)

	i := 0
	for i < len(raw) {
		idx := strings.Index(raw[i:], "<!--")
		if idx < 0 {
			clean = append(clean, raw[i:]...)
			break
		}
		clean = append(clean, raw[i:i+idx]...)
		i += idx
		rest := raw[i:]

		if m := openLineRe.FindStringSubmatch(rest); m != nil {
			open[m[1]] = pendingOpen{typ: comment.TypeLine, emitted: len(clean), markerPos: i}
			i += len(m[0])
			continue
		}
		if m := openInlineRe.FindStringSubmatch(rest); m != nil {
			open[m[1]] = pendingOpen{typ: comment.TypeInline, emitted: len(clean), markerPos: i}
			i += len(m[0])
			continue
		}
		if m := closeLineRe.FindStringSubmatch(rest); m != nil {
			if p, ok := open[m[1]]; ok && p.typ == comment.TypeLine {
				// The newline before a line-close marker belongs to the
				// marker, not the content.
				if len(clean) > p.emitted && clean[len(clean)-1] == '\n' {
					clean = clean[:len(clean)-1]
				}
				comments = append(comments, comment.Comment{
					ID:             m[1],
					Text:           m[2],
					Type:           comment.TypeLine,
					MarkerPos:      p.markerPos,
					HighlightStart: p.emitted,
					HighlightEnd:   len(clean),
				})
				delete(open, m[1])
			}
			i += len(m[0])
			continue
		}
		if m := closeInlineRe.FindStringSubmatch(rest); m != nil {
			if p, ok := open[m[1]]; ok && p.typ == comment.TypeInline {
				comments = append(comments, comment.Comment{
					ID:             m[1],
					Text:           m[2],
					Type:           comment.TypeInline,
					MarkerPos:      p.markerPos,
					HighlightStart: p.emitted,
					HighlightEnd:   len(clean),
				})
				delete(open, m[1])
			}
			i += len(m[0])
			continue
		}

		// An ordinary HTML comment: emit the opener and keep scanning.
		clean = append(clean, "<!--"...)
		i += 4
	}

	return string(clean), comments
}

// ParseComments scans raw content for comments without stripping markers.
// All positions are raw-content offsets; the highlight span covers the text
// between the markers. Used for listing comments in a persisted document.
func ParseComments(raw string) []comment.Comment {
	var comments []comment.Comment

	for _, grammar := range []struct {
		typ     comment.Type
		openRe  *regexp.Regexp
		closeRe string
	}{
		{comment.TypeInline, regexp.MustCompile(`<!--\s*review-start\(([a-zA-Z0-9-]+)\)\s*-->`),
			`<!--\s*review-end\(%s\):\s*([\s\S]*?)\s*-->`},
		{comment.TypeLine, regexp.MustCompile(`<!--\s*review-line-start\(([a-zA-Z0-9-]+)\)\s*-->\n?`),
			`<!--\s*review-line-end\(%s\):\s*([\s\S]*?)\s*-->`},
	} {
		for _, m := range grammar.openRe.FindAllStringSubmatchIndex(raw, -1) {
			id := raw[m[2]:m[3]]
			markerPos := m[0]
			contentStart := m[1]

			closeRe := regexp.MustCompile(fmt.Sprintf(grammar.closeRe, regexp.QuoteMeta(id)))
			cm := closeRe.FindStringSubmatchIndex(raw[contentStart:])
			if cm == nil {
				continue
			}
			contentEnd := contentStart + cm[0]
			if grammar.typ == comment.TypeLine &&
				contentEnd > contentStart && raw[contentEnd-1] == '\n' {
				contentEnd--
			}

			comments = append(comments, comment.Comment{
				ID:             id,
				Text:           raw[contentStart+cm[2] : contentStart+cm[3]],
				Type:           grammar.typ,
				MarkerPos:      markerPos,
				HighlightStart: contentStart,
				HighlightEnd:   contentEnd,
			})
		}
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].MarkerPos < comments[j].MarkerPos
	})
	return comments
}

// StripComment removes both markers of the comment with the given id from
// raw content, leaving the previously highlighted text in place. Unknown ids
// are a no-op.
func StripComment(raw, id string) string {
	q := regexp.QuoteMeta(id)
	for _, pattern := range []string{
		fmt.Sprintf(`<!--\s*review-start\(%s\)\s*-->`, q),
		fmt.Sprintf(`<!--\s*review-end\(%s\):\s*[\s\S]*?\s*-->`, q),
		fmt.Sprintf(`<!--\s*review-line-start\(%s\)\s*-->\n?`, q),
		fmt.Sprintf(`\n?<!--\s*review-line-end\(%s\):\s*[\s\S]*?\s*-->`, q),
	} {
		raw = regexp.MustCompile(pattern).ReplaceAllString(raw, "")
	}
	return raw
}
