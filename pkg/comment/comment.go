// Package comment holds the review-comment model and the store that owns a
// document's comments: creation, lookup, removal, and anchor remapping as the
// underlying text is edited.
package comment

// Type distinguishes the two marker grammars a comment can serialize to.
type Type string

const (
	// TypeInline wraps a partial-line selection between adjacent markers.
	TypeInline Type = "inline"

	// TypeLine brackets whole lines with markers on their own lines.
	TypeLine Type = "line"
)

// Valid reports whether t is a known comment type.
func (t Type) Valid() bool {
	return t == TypeInline || t == TypeLine
}

// Comment is a single review comment anchored to a span of clean content.
type Comment struct {
	// ID is a short unique identifier, present in both markers so the pair
	// can be matched independent of document order.
	ID string `yaml:"id" json:"id"`

	// Text is the reviewer's comment body, carried by the close marker.
	Text string `yaml:"text" json:"text"`

	// Type selects the marker grammar (inline vs line).
	Type Type `yaml:"type" json:"comment_type"`

	// MarkerPos is the raw-content offset of the open marker. It is
	// informational, used only for stable ordering during re-serialization.
	MarkerPos int `yaml:"marker_pos" json:"marker_pos"`

	// HighlightStart and HighlightEnd anchor the comment to a half-open
	// span of the clean (marker-free) content.
	HighlightStart int `yaml:"highlight_start" json:"highlight_start"`
	HighlightEnd   int `yaml:"highlight_end" json:"highlight_end"`
}

// Collapsed reports whether the anchor span has collapsed under edits.
// A collapsed comment is no longer meaningfully anchored.
func (c Comment) Collapsed() bool {
	return c.HighlightEnd <= c.HighlightStart
}

// Overlaps reports whether two anchors intersect.
func (c Comment) Overlaps(other Comment) bool {
	return c.HighlightStart < other.HighlightEnd && c.HighlightEnd > other.HighlightStart
}
