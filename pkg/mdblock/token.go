// Package mdblock provides a single-pass block-level tokenizer for Markdown.
// It produces an ordered token stream whose Raw fields are byte-exact,
// contiguous, non-overlapping slices of the input: concatenating every Raw in
// order reproduces the input exactly. Consumers rely on that property to map
// tokens back to absolute document offsets.
package mdblock

// TokenKind classifies a block-level token. The set is closed; generic
// consumers switch exhaustively and treat KindBlank/KindOther as
// non-commentable filler.
type TokenKind uint8

// Block token kinds.
const (
	KindHeading TokenKind = iota
	KindParagraph
	KindBlockquote
	KindCode
	KindList
	KindTable
	KindHTML
	KindBlank
	KindOther
)

// String returns a short name for the kind, for logs and test failures.
func (k TokenKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindBlockquote:
		return "blockquote"
	case KindCode:
		return "code"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	case KindHTML:
		return "html"
	case KindBlank:
		return "blank"
	default:
		return "other"
	}
}

// Token represents one block-level element of the source document.
type Token struct {
	// Kind identifies what type of block this is.
	Kind TokenKind

	// Raw is the exact source text of the block, including its line
	// terminators and, for lists, every item and nested list line.
	Raw string

	// Depth is the heading level (1-6). Zero for non-headings.
	Depth int

	// Items holds the ordered list items for KindList tokens.
	Items []ListItem
}

// ListItem is a single item of a list token.
type ListItem struct {
	// Raw is the exact source text of the item: its marker line plus any
	// continuation and nested list lines. It is a verbatim substring of the
	// parent list token's Raw.
	Raw string

	// Tokens holds block tokens nested inside the item body. Nested lists
	// appear here as KindList tokens whose Raw is a verbatim substring of
	// the item's Raw.
	Tokens []Token
}

// ValidateTokens reports whether the token stream covers the content exactly:
// contiguous, non-overlapping, in order, reproducing the input byte for byte.
func ValidateTokens(tokens []Token, content string) bool {
	pos := 0
	for _, tok := range tokens {
		end := pos + len(tok.Raw)
		if end > len(content) || content[pos:end] != tok.Raw {
			return false
		}
		pos = end
	}
	return pos == len(content)
}
