package marker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdreview/pkg/comment"
	"github.com/yaklabco/mdreview/pkg/marker"
)

func TestRoundTrip_Inline(t *testing.T) {
	t.Parallel()

	clean := "Hello brave world\n"
	in := []comment.Comment{{
		ID:             "ab12cd34",
		Text:           "word choice: too strong (maybe)",
		Type:           comment.TypeInline,
		HighlightStart: 6,
		HighlightEnd:   11,
	}}

	raw := marker.Serialize(clean, in)
	assert.Contains(t, raw, "<!-- review-start(ab12cd34) -->brave<!-- review-end(ab12cd34): word choice: too strong (maybe) -->")

	gotClean, gotComments := marker.ParseAndStrip(raw)
	assert.Equal(t, clean, gotClean)
	require.Len(t, gotComments, 1)

	got := gotComments[0]
	assert.Equal(t, in[0].ID, got.ID)
	assert.Equal(t, in[0].Text, got.Text)
	assert.Equal(t, comment.TypeInline, got.Type)
	assert.Equal(t, 6, got.HighlightStart)
	assert.Equal(t, 11, got.HighlightEnd)
	assert.Equal(t, "brave", gotClean[got.HighlightStart:got.HighlightEnd])
}

func TestRoundTrip_Line(t *testing.T) {
	t.Parallel()

	clean := "alpha\nbeta\ngamma\n"
	in := []comment.Comment{{
		ID:             "ffee0011",
		Text:           "rewrite this line",
		Type:           comment.TypeLine,
		HighlightStart: 6,
		HighlightEnd:   10,
	}}

	raw := marker.Serialize(clean, in)
	assert.Equal(t,
		"alpha\n<!-- review-line-start(ffee0011) -->\nbeta\n<!-- review-line-end(ffee0011): rewrite this line -->\ngamma\n",
		raw)

	gotClean, gotComments := marker.ParseAndStrip(raw)
	assert.Equal(t, clean, gotClean)
	require.Len(t, gotComments, 1)

	got := gotComments[0]
	assert.Equal(t, comment.TypeLine, got.Type)
	assert.Equal(t, 6, got.HighlightStart)
	assert.Equal(t, 10, got.HighlightEnd)
	assert.Equal(t, "beta", gotClean[got.HighlightStart:got.HighlightEnd])
}

func TestRoundTrip_Multiple(t *testing.T) {
	t.Parallel()

	clean := "first paragraph\n\nsecond paragraph\n\nthird paragraph\n"
	in := []comment.Comment{
		{ID: "c1", Text: "a", Type: comment.TypeInline, HighlightStart: 0, HighlightEnd: 5},
		{ID: "c2", Text: "b", Type: comment.TypeLine, HighlightStart: 17, HighlightEnd: 33},
		{ID: "c3", Text: "c", Type: comment.TypeInline, HighlightStart: 41, HighlightEnd: 50},
	}

	raw := marker.Serialize(clean, in)
	gotClean, gotComments := marker.ParseAndStrip(raw)

	assert.Equal(t, clean, gotClean)
	require.Len(t, gotComments, 3)

	byID := make(map[string]comment.Comment, len(gotComments))
	for _, c := range gotComments {
		byID[c.ID] = c
	}
	for _, want := range in {
		got, ok := byID[want.ID]
		require.True(t, ok, "comment %s lost in round trip", want.ID)
		assert.Equal(t, want.Text, got.Text)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.HighlightStart, got.HighlightStart, "id %s", want.ID)
		assert.Equal(t, want.HighlightEnd, got.HighlightEnd, "id %s", want.ID)
	}
}

func TestRoundTrip_AdjacentSpans(t *testing.T) {
	t.Parallel()

	clean := "0123456789"
	in := []comment.Comment{
		{ID: "a1", Text: "x", Type: comment.TypeInline, HighlightStart: 0, HighlightEnd: 5},
		{ID: "b2", Text: "y", Type: comment.TypeInline, HighlightStart: 5, HighlightEnd: 10},
	}

	gotClean, gotComments := marker.ParseAndStrip(marker.Serialize(clean, in))
	assert.Equal(t, clean, gotClean)
	require.Len(t, gotComments, 2)
	assert.Equal(t, "01234", gotClean[gotComments[0].HighlightStart:gotComments[0].HighlightEnd])
	assert.Equal(t, "56789", gotClean[gotComments[1].HighlightStart:gotComments[1].HighlightEnd])
}

func TestSerialize_SkipsCollapsedAndOutOfRange(t *testing.T) {
	t.Parallel()

	clean := "short"
	out := marker.Serialize(clean, []comment.Comment{
		{ID: "a", Type: comment.TypeInline, HighlightStart: 3, HighlightEnd: 3},
		{ID: "b", Type: comment.TypeInline, HighlightStart: 2, HighlightEnd: 99},
	})
	assert.Equal(t, clean, out)
}

func TestParseAndStrip_UnmatchedMarkers(t *testing.T) {
	t.Parallel()

	t.Run("dangling open", func(t *testing.T) {
		t.Parallel()
		clean, comments := marker.ParseAndStrip("a<!-- review-start(x9) -->b")
		assert.Equal(t, "ab", clean)
		assert.Empty(t, comments)
	})

	t.Run("dangling close", func(t *testing.T) {
		t.Parallel()
		clean, comments := marker.ParseAndStrip("a<!-- review-end(x9): note -->b")
		assert.Equal(t, "ab", clean)
		assert.Empty(t, comments)
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()
		raw := "<!-- review-start(m1) -->text<!-- review-line-end(m1): note -->"
		clean, comments := marker.ParseAndStrip(raw)
		assert.Equal(t, "text", clean)
		assert.Empty(t, comments)
	})
}

func TestParseAndStrip_OrdinaryHTMLCommentPreserved(t *testing.T) {
	t.Parallel()

	raw := "before <!-- just a note --> after"
	clean, comments := marker.ParseAndStrip(raw)
	assert.Equal(t, raw, clean)
	assert.Empty(t, comments)
}

func TestParseAndStrip_Empty(t *testing.T) {
	t.Parallel()

	clean, comments := marker.ParseAndStrip("")
	assert.Empty(t, clean)
	assert.Empty(t, comments)
}

func TestParseComments_RawOffsets(t *testing.T) {
	t.Parallel()

	raw := "intro <!-- review-start(aa11) -->target<!-- review-end(aa11): check --> outro"
	comments := marker.ParseComments(raw)

	require.Len(t, comments, 1)
	c := comments[0]
	assert.Equal(t, "aa11", c.ID)
	assert.Equal(t, "check", c.Text)
	assert.Equal(t, comment.TypeInline, c.Type)
	assert.Equal(t, 6, c.MarkerPos)
	assert.Equal(t, "target", raw[c.HighlightStart:c.HighlightEnd])
}

func TestParseComments_LineTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	raw := "<!-- review-line-start(bb22) -->\nwhole line\n<!-- review-line-end(bb22): hm -->\n"
	comments := marker.ParseComments(raw)

	require.Len(t, comments, 1)
	c := comments[0]
	assert.Equal(t, comment.TypeLine, c.Type)
	assert.Equal(t, "whole line", raw[c.HighlightStart:c.HighlightEnd])
}

func TestParseComments_SortedByMarkerPos(t *testing.T) {
	t.Parallel()

	raw := "<!-- review-start(z1) -->a<!-- review-end(z1): one -->\n" +
		"<!-- review-line-start(z2) -->\nb\n<!-- review-line-end(z2): two -->\n"
	comments := marker.ParseComments(raw)

	require.Len(t, comments, 2)
	assert.Equal(t, "z1", comments[0].ID)
	assert.Equal(t, "z2", comments[1].ID)
}

func TestStripComment(t *testing.T) {
	t.Parallel()

	clean := "keep this\nand this\n"
	in := []comment.Comment{
		{ID: "dd44", Text: "n1", Type: comment.TypeInline, HighlightStart: 0, HighlightEnd: 4},
		{ID: "ee55", Text: "n2", Type: comment.TypeLine, HighlightStart: 10, HighlightEnd: 18},
	}
	raw := marker.Serialize(clean, in)

	stripped := marker.StripComment(raw, "ee55")
	assert.NotContains(t, stripped, "ee55")
	assert.Contains(t, stripped, "dd44")

	stripped = marker.StripComment(stripped, "dd44")
	assert.Equal(t, clean, stripped)

	assert.Equal(t, stripped, marker.StripComment(stripped, "missing"))
}
