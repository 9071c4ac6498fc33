package annotate

import (
	"strings"

	"github.com/yaklabco/mdreview/pkg/mdblock"
)

// CollectCommentableRanges tokenizes content and returns one range per
// commentable block: headings, paragraphs, blockquotes, code blocks, list
// items (recursing into nested lists), and table rows (separator row
// skipped). Blocks nested inside blockquotes are not separately ranged; the
// render correspondence pass filters matching elements the same way.
func CollectCommentableRanges(content string) []CommentableRange {
	tokens := mdblock.Tokenize(content)

	var ranges []CommentableRange
	cursor := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case mdblock.KindHeading:
			ranges = appendTrimmed(ranges, HeadingKind(tok.Depth), tok.Raw, cursor)
		case mdblock.KindParagraph:
			ranges = appendTrimmed(ranges, KindParagraph, tok.Raw, cursor)
		case mdblock.KindBlockquote:
			ranges = appendTrimmed(ranges, KindBlockquote, tok.Raw, cursor)
		case mdblock.KindCode:
			ranges = appendTrimmed(ranges, KindCodeBlock, tok.Raw, cursor)
		case mdblock.KindList:
			ranges = collectListRanges(ranges, tok.Items, tok.Raw, cursor)
		case mdblock.KindTable:
			ranges = collectTableRows(ranges, tok.Raw, cursor)
		case mdblock.KindHTML, mdblock.KindBlank, mdblock.KindOther:
			// Not commentable.
		}
		cursor += len(tok.Raw)
	}
	return ranges
}

// appendTrimmed appends a range over raw at base, excluding trailing line
// breaks. Ranges that collapse to zero length are discarded.
func appendTrimmed(ranges []CommentableRange, kind BlockKind, raw string, base int) []CommentableRange {
	end := base + len(strings.TrimRight(raw, "\r\n"))
	if end <= base {
		return ranges
	}
	return append(ranges, CommentableRange{Start: base, End: end, Kind: kind})
}

// collectListRanges emits one li range per item, then recurses into nested
// lists so child items appear immediately after their parent and before the
// next sibling. Item raws are located by substring search restarting after
// the previous item's end, which keeps repeated identical item text anchored
// correctly.
func collectListRanges(ranges []CommentableRange, items []mdblock.ListItem, listRaw string, base int) []CommentableRange {
	searchFrom := 0
	for _, item := range items {
		idx := strings.Index(listRaw[searchFrom:], item.Raw)
		if idx < 0 {
			continue
		}
		itemStart := searchFrom + idx
		searchFrom = itemStart + len(item.Raw)

		// The item's own text ends where its first nested list begins, so
		// parent and child ranges never overlap.
		own := item.Raw
		for _, child := range item.Tokens {
			if child.Kind != mdblock.KindList {
				continue
			}
			if cidx := strings.Index(item.Raw, child.Raw); cidx >= 0 {
				own = item.Raw[:cidx]
			}
			break
		}
		ranges = appendTrimmed(ranges, KindListItem, own, base+itemStart)

		childFrom := 0
		for _, child := range item.Tokens {
			if child.Kind != mdblock.KindList {
				continue
			}
			cidx := strings.Index(item.Raw[childFrom:], child.Raw)
			if cidx < 0 {
				continue
			}
			childStart := childFrom + cidx
			childFrom = childStart + len(child.Raw)
			ranges = collectListRanges(ranges, child.Items, child.Raw, base+itemStart+childStart)
		}
	}
	return ranges
}

// collectTableRows splits a table's raw text into non-blank lines: the first
// is the header row, the second is the delimiter row and is skipped, and
// every remaining one is a body row. Each range spans exactly the line's text
// with no trailing newline.
func collectTableRows(ranges []CommentableRange, raw string, base int) []CommentableRange {
	offset := 0
	row := 0
	for offset < len(raw) {
		lineEnd := strings.IndexByte(raw[offset:], '\n')
		var line string
		if lineEnd < 0 {
			line = raw[offset:]
			lineEnd = len(raw) - offset
		} else {
			line = raw[offset : offset+lineEnd]
			lineEnd++
		}
		trimmed := strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(trimmed) != "" {
			if row != 1 { // row 1 is the delimiter row
				ranges = appendTrimmed(ranges, KindTableRow, trimmed, base+offset)
			}
			row++
		}
		offset += lineEnd
	}
	return ranges
}
