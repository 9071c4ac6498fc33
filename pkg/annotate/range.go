// Package annotate decomposes a Markdown document into ordered,
// non-overlapping block ranges that can each carry a review comment.
package annotate

import "fmt"

// BlockKind names the rendered element a commentable range corresponds to.
type BlockKind string

// Commentable block kinds. The names match the HTML tags the renderer
// produces so correspondence checks can compare them directly.
const (
	KindParagraph  BlockKind = "p"
	KindListItem   BlockKind = "li"
	KindBlockquote BlockKind = "blockquote"
	KindCodeBlock  BlockKind = "pre"
	KindTableRow   BlockKind = "tr"
)

// HeadingKind returns the kind for a heading of the given depth (h1..h6).
func HeadingKind(depth int) BlockKind {
	return BlockKind(fmt.Sprintf("h%d", depth))
}

// IsCommentableTag reports whether an HTML tag name is a commentable kind.
func IsCommentableTag(tag string) bool {
	switch BlockKind(tag) {
	case KindParagraph, KindListItem, KindBlockquote, KindCodeBlock, KindTableRow:
		return true
	}
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// CommentableRange is a half-open [Start, End) span of the clean document
// content that can receive a comment. Ranges produced by
// CollectCommentableRanges are in document order, non-overlapping, and never
// empty; trailing line breaks are excluded.
type CommentableRange struct {
	Start int
	End   int
	Kind  BlockKind
}

// Len returns the length of the range in bytes.
func (r CommentableRange) Len() int {
	return r.End - r.Start
}

// Overlaps reports whether the range intersects the half-open span [start, end).
func (r CommentableRange) Overlaps(start, end int) bool {
	return r.Start < end && r.End > start
}
