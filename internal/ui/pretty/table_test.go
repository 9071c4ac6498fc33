package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdreview/internal/ui/pretty"
	"github.com/yaklabco/mdreview/pkg/comment"
)

func TestCommentToTableRow(t *testing.T) {
	t.Parallel()

	clean := "first line of text\nsecond line\n"
	c := comment.Comment{
		ID: "ab12cd34", Text: "unclear", Type: comment.TypeLine,
		HighlightStart: 0, HighlightEnd: 18,
	}

	row := pretty.CommentToTableRow(c, clean)
	assert.Equal(t, "ab12cd34", row.ID)
	assert.Equal(t, comment.TypeLine, row.Type)
	assert.Equal(t, "0:18", row.Span)
	assert.Equal(t, "first line of text", row.Excerpt)
	assert.Equal(t, "unclear", row.Text)
}

func TestCommentToTableRow_MultilineExcerpt(t *testing.T) {
	t.Parallel()

	clean := "alpha\nbeta\n"
	c := comment.Comment{
		ID: "x", Type: comment.TypeLine,
		HighlightStart: 0, HighlightEnd: 10,
	}

	row := pretty.CommentToTableRow(c, clean)
	assert.Equal(t, "alpha", row.Excerpt)
}

func TestCommentToTableRow_BadSpan(t *testing.T) {
	t.Parallel()

	row := pretty.CommentToTableRow(comment.Comment{
		ID: "x", HighlightStart: 5, HighlightEnd: 99,
	}, "short")
	assert.Empty(t, row.Excerpt)
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 120)

	rows := []pretty.TableRow{
		{ID: "ab12cd34", Type: comment.TypeInline, Span: "5:10", Excerpt: "brave", Text: "word choice"},
		{ID: "ffee0011", Type: comment.TypeLine, Span: "20:31", Excerpt: "second line", Text: "rewrite"},
	}

	out := formatter.FormatTable(rows)
	require.NotEmpty(t, out)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "COMMENT")
	assert.Contains(t, out, "ab12cd34")
	assert.Contains(t, out, "word choice")
	assert.Contains(t, out, "Legend:")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, separator, two rows, separator, legend.
	assert.Len(t, lines, 6)
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	assert.Empty(t, formatter.FormatTable(nil))
}

func TestFormatTable_NarrowTerminal(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60)
	long := strings.Repeat("verbose comment text ", 10)

	out := formatter.FormatTable([]pretty.TableRow{
		{ID: "ab12cd34", Type: comment.TypeInline, Span: "0:5", Excerpt: "hello", Text: long},
	})
	require.NotEmpty(t, out)
	assert.Contains(t, out, "...")
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, pretty.IsColorEnabled("always", nil))
	assert.False(t, pretty.IsColorEnabled("never", nil))
	// A non-file writer in auto mode is never a TTY.
	assert.False(t, pretty.IsColorEnabled("auto", &strings.Builder{}))
}
