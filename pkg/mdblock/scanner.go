package mdblock

import "strings"

// tabWidth is the column width of a tab for indentation purposes.
const tabWidth = 4

// line is a single source line split out by splitLines.
type line struct {
	text   string // full line including its terminator
	body   string // line without the terminator
	indent int    // indentation in columns (tabs expand to tabWidth)
	cut    int    // byte offset of the first non-whitespace character in body
}

func (l line) isBlank() bool {
	return l.cut >= len(l.body)
}

// rest returns the line body after leading whitespace.
func (l line) rest() string {
	return l.body[l.cut:]
}

// splitLines splits content into lines, preserving terminators (LF or CRLF).
func splitLines(content string) []line {
	var lines []line
	for start := 0; start < len(content); {
		end := strings.IndexByte(content[start:], '\n')
		var text string
		if end < 0 {
			text = content[start:]
		} else {
			text = content[start : start+end+1]
		}
		body := strings.TrimRight(text, "\n")
		body = strings.TrimSuffix(body, "\r")

		indent, cut := 0, 0
		for cut < len(body) {
			switch body[cut] {
			case ' ':
				indent++
			case '\t':
				indent += tabWidth - indent%tabWidth
			default:
				goto done
			}
			cut++
		}
	done:
		lines = append(lines, line{text: text, body: body, indent: indent, cut: cut})
		start += len(text)
	}
	return lines
}

// scanner walks the line slice and emits block tokens.
type scanner struct {
	lines  []line
	pos    int
	tokens []Token
}

// Tokenize splits content into an ordered stream of block tokens.
// The stream always satisfies ValidateTokens for the same content.
func Tokenize(content string) []Token {
	if content == "" {
		return nil
	}
	s := &scanner{lines: splitLines(content)}
	s.run()
	return s.tokens
}

func (s *scanner) run() {
	for s.pos < len(s.lines) {
		ln := s.lines[s.pos]
		switch {
		case ln.isBlank():
			s.scanBlank()
		case isFenceOpen(ln.rest()):
			s.scanFencedCode()
		case headingDepth(ln.rest()) > 0:
			s.scanHeading()
		case strings.HasPrefix(ln.rest(), ">"):
			s.scanBlockquote()
		case isThematicBreak(ln.rest()):
			s.emitLines(KindOther, s.pos, s.pos+1)
		case listMarkerWidth(ln.rest()) > 0:
			s.scanList()
		case s.atTableStart():
			s.scanTable()
		case ln.indent >= tabWidth:
			s.scanIndentedCode()
		case strings.HasPrefix(ln.rest(), "<"):
			s.scanHTML()
		default:
			s.scanParagraph()
		}
	}
}

// emitLines emits one token covering lines [from, to) and advances past it.
func (s *scanner) emitLines(kind TokenKind, from, to int) {
	s.tokens = append(s.tokens, Token{Kind: kind, Raw: s.join(from, to)})
	s.pos = to
}

func (s *scanner) join(from, to int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		b.WriteString(s.lines[i].text)
	}
	return b.String()
}

func (s *scanner) scanBlank() {
	start := s.pos
	for s.pos < len(s.lines) && s.lines[s.pos].isBlank() {
		s.pos++
	}
	s.emitLines(KindBlank, start, s.pos)
}

func (s *scanner) scanHeading() {
	ln := s.lines[s.pos]
	depth := headingDepth(ln.rest())
	s.tokens = append(s.tokens, Token{Kind: KindHeading, Raw: ln.text, Depth: depth})
	s.pos++
}

func (s *scanner) scanBlockquote() {
	start := s.pos
	for s.pos < len(s.lines) {
		ln := s.lines[s.pos]
		if ln.isBlank() || !strings.HasPrefix(ln.rest(), ">") {
			break
		}
		s.pos++
	}
	s.emitLines(KindBlockquote, start, s.pos)
}

func (s *scanner) scanFencedCode() {
	start := s.pos
	open := s.lines[s.pos].rest()
	fenceChar := open[0]
	fenceLen := 0
	for fenceLen < len(open) && open[fenceLen] == fenceChar {
		fenceLen++
	}
	s.pos++
	for s.pos < len(s.lines) {
		if isFenceClose(s.lines[s.pos].rest(), fenceChar, fenceLen) {
			s.pos++
			break
		}
		s.pos++
	}
	s.emitLines(KindCode, start, s.pos)
}

func (s *scanner) scanIndentedCode() {
	start := s.pos
	for s.pos < len(s.lines) {
		ln := s.lines[s.pos]
		if ln.isBlank() || ln.indent < tabWidth {
			break
		}
		s.pos++
	}
	s.emitLines(KindCode, start, s.pos)
}

func (s *scanner) scanHTML() {
	start := s.pos
	for s.pos < len(s.lines) && !s.lines[s.pos].isBlank() {
		s.pos++
	}
	s.emitLines(KindHTML, start, s.pos)
}

func (s *scanner) scanParagraph() {
	start := s.pos
	s.pos++
	for s.pos < len(s.lines) {
		ln := s.lines[s.pos]
		if depth := setextDepth(ln.rest()); depth > 0 {
			// Setext underline turns the accumulated paragraph into a heading.
			// Checked before startsBlock so "---" under a paragraph reads as
			// an underline, not a thematic break.
			s.pos++
			s.tokens = append(s.tokens, Token{Kind: KindHeading, Raw: s.join(start, s.pos), Depth: depth})
			return
		}
		if ln.isBlank() || startsBlock(ln) {
			break
		}
		s.pos++
	}
	s.emitLines(KindParagraph, start, s.pos)
}

func (s *scanner) scanList() {
	start := s.pos
	baseIndent := s.lines[s.pos].indent
	for s.pos < len(s.lines) {
		ln := s.lines[s.pos]
		if ln.isBlank() {
			// A blank line ends the list unless the next line continues it.
			next := s.pos + 1
			if next < len(s.lines) && !s.lines[next].isBlank() &&
				(listMarkerWidth(s.lines[next].rest()) > 0 || s.lines[next].indent > baseIndent) {
				s.pos++
				continue
			}
			break
		}
		if listMarkerWidth(ln.rest()) > 0 || ln.indent > baseIndent {
			s.pos++
			continue
		}
		break
	}
	raw := s.join(start, s.pos)
	items := parseListItems(s.lines[start:s.pos], baseIndent)
	s.tokens = append(s.tokens, Token{Kind: KindList, Raw: raw, Items: items})
}

func (s *scanner) atTableStart() bool {
	ln := s.lines[s.pos]
	if !strings.Contains(ln.body, "|") {
		return false
	}
	next := s.pos + 1
	return next < len(s.lines) && isTableDelimiter(s.lines[next].rest())
}

func (s *scanner) scanTable() {
	start := s.pos
	for s.pos < len(s.lines) {
		ln := s.lines[s.pos]
		if ln.isBlank() || !strings.Contains(ln.body, "|") {
			break
		}
		s.pos++
	}
	s.emitLines(KindTable, start, s.pos)
}

// parseListItems splits list lines into items. A new item starts at every
// line carrying a list marker at or above the base indentation; deeper lines
// belong to the current item.
func parseListItems(lines []line, baseIndent int) []ListItem {
	var items []ListItem
	var cur []line

	flush := func() {
		if len(cur) > 0 {
			items = append(items, buildListItem(cur))
			cur = nil
		}
	}

	for _, ln := range lines {
		if !ln.isBlank() && ln.indent <= baseIndent && listMarkerWidth(ln.rest()) > 0 {
			flush()
		}
		cur = append(cur, ln)
	}
	flush()
	return items
}

// buildListItem assembles an item from its lines and detects a nested list
// among its continuation lines. The nested list keeps its source indentation
// so its Raw stays a verbatim substring of the item's Raw.
func buildListItem(lines []line) ListItem {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.text)
	}
	item := ListItem{Raw: b.String()}

	for i := 1; i < len(lines); i++ {
		ln := lines[i]
		if ln.isBlank() || listMarkerWidth(ln.rest()) == 0 {
			continue
		}
		nested := lines[i:]
		var nb strings.Builder
		for _, nl := range nested {
			nb.WriteString(nl.text)
		}
		item.Tokens = append(item.Tokens, Token{
			Kind:  KindList,
			Raw:   nb.String(),
			Items: parseListItems(nested, nested[0].indent),
		})
		break
	}
	return item
}

// startsBlock reports whether a line interrupts a paragraph.
func startsBlock(ln line) bool {
	rest := ln.rest()
	switch {
	case isFenceOpen(rest):
		return true
	case headingDepth(rest) > 0:
		return true
	case strings.HasPrefix(rest, ">"):
		return true
	case isThematicBreak(rest):
		return true
	case listMarkerWidth(rest) > 0:
		return true
	case strings.HasPrefix(rest, "<"):
		return true
	}
	return false
}

// headingDepth returns the ATX heading level of a line, or 0.
func headingDepth(rest string) int {
	depth := 0
	for depth < len(rest) && rest[depth] == '#' {
		depth++
	}
	if depth < 1 || depth > 6 {
		return 0
	}
	if depth < len(rest) && rest[depth] != ' ' && rest[depth] != '\t' {
		return 0
	}
	return depth
}

// setextDepth returns 1 for an '=' underline, 2 for a '-' underline, else 0.
func setextDepth(rest string) int {
	if rest == "" {
		return 0
	}
	marker := rest[0]
	if marker != '=' && marker != '-' {
		return 0
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] != marker && rest[i] != ' ' && rest[i] != '\t' {
			return 0
		}
	}
	if marker == '=' {
		return 1
	}
	return 2
}

// listMarkerWidth returns the width of a list marker prefix ("- ", "1. ", …)
// including the following space, or 0 if the line is not a list item start.
func listMarkerWidth(rest string) int {
	if rest == "" {
		return 0
	}
	switch rest[0] {
	case '-', '+', '*':
		if len(rest) > 1 && (rest[1] == ' ' || rest[1] == '\t') {
			return 2
		}
		return 0
	}
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(rest) {
		return 0
	}
	if rest[i] != '.' && rest[i] != ')' {
		return 0
	}
	if i+1 >= len(rest) || (rest[i+1] != ' ' && rest[i+1] != '\t') {
		return 0
	}
	return i + 2
}

// isThematicBreak reports whether the line is ***, ---, ___ etc.
func isThematicBreak(rest string) bool {
	if rest == "" {
		return false
	}
	marker := rest[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	count := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case marker:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

func isFenceOpen(rest string) bool {
	return strings.HasPrefix(rest, "```") || strings.HasPrefix(rest, "~~~")
}

func isFenceClose(rest string, fenceChar byte, fenceLen int) bool {
	count := 0
	for count < len(rest) && rest[count] == fenceChar {
		count++
	}
	if count < fenceLen {
		return false
	}
	return strings.TrimRight(rest[count:], " \t") == ""
}

// isTableDelimiter reports whether a line is a GFM table delimiter row
// (cells of dashes with optional alignment colons, separated by pipes).
func isTableDelimiter(rest string) bool {
	if rest == "" {
		return false
	}
	dashes := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '-':
			dashes++
		case '|', ':', ' ', '\t':
		default:
			return false
		}
	}
	return dashes > 0
}
