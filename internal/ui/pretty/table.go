package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdreview/pkg/comment"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // ID, TYPE, SPAN, EXCERPT, TEXT
	minIDWidth       = 8
	minTypeWidth     = 6
	minSpanWidth     = 11
	minExcerptWidth  = 20
	minTextWidth     = 24
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow is one comment in the listing.
type TableRow struct {
	ID      string
	Type    comment.Type
	Span    string
	Excerpt string
	Text    string
}

// CommentToTableRow converts a comment into a table row, deriving the
// excerpt from the clean content it is anchored to.
func CommentToTableRow(c comment.Comment, clean string) TableRow {
	return TableRow{
		ID:      c.ID,
		Type:    c.Type,
		Span:    fmt.Sprintf("%d:%d", c.HighlightStart, c.HighlightEnd),
		Excerpt: excerpt(clean, c.HighlightStart, c.HighlightEnd),
		Text:    c.Text,
	}
}

// excerpt returns the first line of the highlighted span, whitespace
// normalized.
func excerpt(clean string, start, end int) string {
	if start < 0 || end > len(clean) || end <= start {
		return ""
	}
	text := clean[start:end]
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.Join(strings.Fields(text), " ")
}

// TableFormatter formats comments as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats the comment rows as a styled table with header,
// separators, and a type legend.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	id      int
	typ     int
	span    int
	excerpt int
	text    int
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		id:      minIDWidth,
		typ:     minTypeWidth,
		span:    minSpanWidth,
		excerpt: minExcerptWidth,
		text:    minTextWidth,
	}

	for _, row := range rows {
		if len(row.ID) > widths.id {
			widths.id = len(row.ID)
		}
		if len(row.Span) > widths.span {
			widths.span = len(row.Span)
		}
		if len(row.Excerpt) > widths.excerpt {
			widths.excerpt = len(row.Excerpt)
		}
		if len(row.Text) > widths.text {
			widths.text = len(row.Text)
		}
	}

	// Constrain to terminal width: shrink the free-text columns first.
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.text = max(minTextWidth, widths.text-excess)

		totalWidth = t.calculateTotalWidth(widths)
		if totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.excerpt = max(minExcerptWidth, widths.excerpt-excess)
		}
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.id + widths.typ + widths.span + widths.excerpt + widths.text +
		(tablePadding * tableColumnCount)
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		widths.id, "ID",
		widths.typ, "TYPE",
		widths.span, "SPAN",
		widths.excerpt, "EXCERPT",
		widths.text, "COMMENT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	sep := strings.Repeat(heavySeparator, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		widths.id, truncateString(row.ID, widths.id),
		widths.typ, truncateString(string(row.Type), widths.typ),
		widths.span, truncateString(row.Span, widths.span),
		widths.excerpt, truncateString(row.Excerpt, widths.excerpt),
		widths.text, truncateString(row.Text, widths.text),
	)
	return t.getRowStyle(row.Type).Render(content)
}

func (t *TableFormatter) getRowStyle(typ comment.Type) lipgloss.Style {
	switch typ {
	case comment.TypeInline:
		return t.styles.InlineRow
	case comment.TypeLine:
		return t.styles.LineRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: inline = partial-line comment | line = whole-line comment")
	}

	inlineSample := t.styles.InlineRow.Render("inline")
	lineSample := t.styles.LineRow.Render("line")
	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = partial-line comment  %s = whole-line comment",
			inlineSample, lineSample),
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
