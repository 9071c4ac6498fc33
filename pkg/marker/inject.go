package marker

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yaklabco/mdreview/pkg/comment"
)

// spanRegion is one marker-delimited stretch of raw content slated for
// replacement by a highlight span.
type spanRegion struct {
	id         string
	start      int // raw offset of the open marker
	innerStart int // raw offset just past the open marker
	innerEnd   int // raw offset of the close marker (or its leading newline)
	end        int // raw offset just past the close marker
}

// InjectHighlightSpans replaces each comment's marker pair in raw content
// with a span carrying the comment id:
//
//	<span data-comment-id="id">highlighted text</span>
//
// The result is what a preview renders so highlights survive the Markdown
// to HTML conversion. Comments whose markers are absent are skipped, so the
// function is idempotent: a second call over its own output changes nothing.
func InjectHighlightSpans(raw string, comments []comment.Comment) string {
	regions := make([]spanRegion, 0, len(comments))
	for _, c := range comments {
		r, ok := locateMarkers(raw, c)
		if !ok {
			continue
		}
		regions = append(regions, r)
	}

	// Replace back to front so earlier offsets stay valid.
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].start > regions[j].start
	})

	for _, r := range regions {
		inner := raw[r.innerStart:r.innerEnd]
		span := fmt.Sprintf("<span data-comment-id=%q>%s</span>", r.id, inner)
		raw = raw[:r.start] + span + raw[r.end:]
	}
	return raw
}

// locateMarkers finds the comment's open and close markers in raw content.
// The close marker is the first match after the open marker; for line
// comments both the open marker's trailing newline and the close marker's
// leading newline count as marker text.
func locateMarkers(raw string, c comment.Comment) (spanRegion, bool) {
	q := regexp.QuoteMeta(c.ID)
	var openPat, closePat string
	switch c.Type {
	case comment.TypeLine:
		openPat = fmt.Sprintf(`<!--\s*review-line-start\(%s\)\s*-->\n?`, q)
		closePat = fmt.Sprintf(`\n?<!--\s*review-line-end\(%s\):\s*[\s\S]*?\s*-->`, q)
	case comment.TypeInline:
		openPat = fmt.Sprintf(`<!--\s*review-start\(%s\)\s*-->`, q)
		closePat = fmt.Sprintf(`<!--\s*review-end\(%s\):\s*[\s\S]*?\s*-->`, q)
	default:
		return spanRegion{}, false
	}

	om := regexp.MustCompile(openPat).FindStringIndex(raw)
	if om == nil {
		return spanRegion{}, false
	}
	cm := regexp.MustCompile(closePat).FindStringIndex(raw[om[1]:])
	if cm == nil {
		return spanRegion{}, false
	}

	return spanRegion{
		id:         c.ID,
		start:      om[0],
		innerStart: om[1],
		innerEnd:   om[1] + cm[0],
		end:        om[1] + cm[1],
	}, true
}

// HighlightedText returns the text a comment's markers currently enclose in
// raw content, or "" when either marker is missing.
func HighlightedText(raw string, c comment.Comment) string {
	r, ok := locateMarkers(raw, c)
	if !ok {
		return ""
	}
	return strings.TrimSuffix(raw[r.innerStart:r.innerEnd], "\n")
}
