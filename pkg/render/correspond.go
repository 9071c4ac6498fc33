package render

import (
	"strconv"

	xhtml "golang.org/x/net/html"

	"github.com/yaklabco/mdreview/internal/logging"
	"github.com/yaklabco/mdreview/pkg/annotate"
	"github.com/yaklabco/mdreview/pkg/comment"
)

// Attribute names attached to rendered elements.
const (
	AttrCommentable = "data-commentable"
	AttrSourceStart = "data-source-start"
	AttrSourceEnd   = "data-source-end"
	AttrCommentID   = "data-comment-id"
)

// Correspond checks that the rendered document's commentable elements line up
// one-to-one, in order and kind, with the ranges extracted from the source.
// On a match every element gets data-commentable and its source span; on any
// count or kind mismatch nothing is attached, a warning is logged, and false
// is returned. Rendering still succeeds either way, only click-to-comment is
// disabled.
func Correspond(doc *xhtml.Node, ranges []annotate.CommentableRange) bool {
	elements := collectCommentable(doc)

	if len(elements) != len(ranges) {
		logging.Default().Warn("rendered elements do not match source ranges",
			logging.FieldElements, len(elements),
			logging.FieldRanges, len(ranges))
		return false
	}
	for i, el := range elements {
		if annotate.BlockKind(el.Data) != ranges[i].Kind {
			logging.Default().Warn("rendered element kind mismatch",
				logging.FieldIndex, i,
				logging.FieldRendered, el.Data,
				logging.FieldExpected, string(ranges[i].Kind))
			return false
		}
	}

	for i, el := range elements {
		setAttr(el, AttrCommentable, "true")
		setAttr(el, AttrSourceStart, strconv.Itoa(ranges[i].Start))
		setAttr(el, AttrSourceEnd, strconv.Itoa(ranges[i].End))
	}
	return true
}

// MarkCommented tags every element whose attached source span overlaps a
// comment anchor with that comment's id. Elements without source spans
// (Correspond declined or was skipped) are left alone.
func MarkCommented(doc *xhtml.Node, comments []comment.Comment) {
	walk(doc, func(n *xhtml.Node) {
		if n.Type != xhtml.ElementNode {
			return
		}
		start, okStart := intAttr(n, AttrSourceStart)
		end, okEnd := intAttr(n, AttrSourceEnd)
		if !okStart || !okEnd {
			return
		}
		for _, c := range comments {
			if start < c.HighlightEnd && end > c.HighlightStart {
				setAttr(n, AttrCommentID, c.ID)
				return
			}
		}
	})
}

// collectCommentable returns the document's commentable elements in document
// order. Elements nested inside a blockquote or list item are excluded; the
// enclosing blockquote or li is the commentable unit. List items and table
// rows are always collected since the extractor emits per-item and per-row
// ranges.
func collectCommentable(doc *xhtml.Node) []*xhtml.Node {
	var out []*xhtml.Node
	walk(doc, func(n *xhtml.Node) {
		if n.Type != xhtml.ElementNode || !annotate.IsCommentableTag(n.Data) {
			return
		}
		switch n.Data {
		case "li", "tr":
			out = append(out, n)
		default:
			if !hasContainerAncestor(n) {
				out = append(out, n)
			}
		}
	})
	return out
}

// hasContainerAncestor reports whether n sits inside a blockquote or li.
func hasContainerAncestor(n *xhtml.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == xhtml.ElementNode && (p.Data == "blockquote" || p.Data == "li") {
			return true
		}
	}
	return false
}

// walk visits every node depth-first in document order.
func walk(n *xhtml.Node, visit func(*xhtml.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func setAttr(n *xhtml.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, xhtml.Attribute{Key: key, Val: val})
}

func getAttr(n *xhtml.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func intAttr(n *xhtml.Node, key string) (int, bool) {
	raw, ok := getAttr(n, key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
