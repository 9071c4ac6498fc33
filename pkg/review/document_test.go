package review_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdreview/pkg/comment"
	"github.com/yaklabco/mdreview/pkg/config"
	"github.com/yaklabco/mdreview/pkg/fsutil"
	"github.com/yaklabco/mdreview/pkg/review"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAddSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeDoc(t, "# Title\n\nSome paragraph text\n")

	doc, err := review.Load(ctx, path, nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Comments())
	assert.Equal(t, doc.Raw(), doc.Clean())

	// "paragraph" inside the second block.
	start := strings.Index(doc.Clean(), "paragraph")
	c, err := doc.Add(start, start+len("paragraph"), comment.TypeInline, "vague")
	require.NoError(t, err)
	assert.Contains(t, doc.Raw(), "review-start("+c.ID+")")

	require.NoError(t, doc.Save(ctx))

	// A fresh load sees the comment.
	reloaded, err := review.Load(ctx, path, nil)
	require.NoError(t, err)
	require.Len(t, reloaded.Comments(), 1)
	got := reloaded.Comments()[0]
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "vague", got.Text)
	assert.Equal(t, "paragraph", reloaded.Clean()[got.HighlightStart:got.HighlightEnd])
}

func TestCommentsFollowDocumentOrderAfterAdd(t *testing.T) {
	t.Parallel()

	// Two marked-up comments whose raw marker offsets are well past the
	// clean anchor of a comment added afterwards. The listing must follow
	// the clean content, not the mixed marker offsets.
	raw := "<!-- review-start(aa11) -->alpha<!-- review-end(aa11): first --> " +
		"<!-- review-start(bb22) -->beta<!-- review-end(bb22): second --> tail text\n"
	doc := review.New(raw, nil)
	require.Equal(t, "alpha beta tail text\n", doc.Clean())

	c, err := doc.Add(11, 15, comment.TypeInline, "third")
	require.NoError(t, err)

	comments := doc.Comments()
	require.Len(t, comments, 3)
	assert.Equal(t, "aa11", comments[0].ID)
	assert.Equal(t, "bb22", comments[1].ID)
	assert.Equal(t, c.ID, comments[2].ID)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	doc := review.New("hello world\n", nil)
	c, err := doc.Add(0, 5, comment.TypeInline, "x")
	require.NoError(t, err)

	require.NoError(t, doc.Remove(c.ID))
	assert.Empty(t, doc.Comments())
	assert.Equal(t, "hello world\n", doc.Raw())

	assert.ErrorIs(t, doc.Remove(c.ID), comment.ErrNotFound)
}

func TestStripAll(t *testing.T) {
	t.Parallel()

	doc := review.New("alpha\nbeta\n", nil)
	_, err := doc.Add(0, 5, comment.TypeLine, "one")
	require.NoError(t, err)
	_, err = doc.Add(6, 10, comment.TypeInline, "two")
	require.NoError(t, err)

	n := doc.StripAll()
	assert.Equal(t, 2, n)
	assert.Equal(t, "alpha\nbeta\n", doc.Raw())
	assert.Empty(t, doc.Comments())
}

func TestUpdateContent(t *testing.T) {
	t.Parallel()

	doc := review.New("hello world\n", nil)
	c, err := doc.Add(6, 11, comment.TypeInline, "x")
	require.NoError(t, err)

	// Insert "big " at offset 6; everything at or after shifts right.
	dropped := doc.UpdateContent("hello big world\n", func(pos, assoc int) int {
		if pos > 6 || (pos == 6 && assoc == comment.AssocAfter) {
			return pos + 4
		}
		return pos
	})
	assert.Empty(t, dropped)

	got, ok := doc.Get(c.ID)
	require.True(t, ok)
	assert.Equal(t, "big world", doc.Clean()[got.HighlightStart:got.HighlightEnd])
	assert.Contains(t, doc.Raw(), "review-start("+c.ID+")")
}

func TestUpdateContent_DropsCollapsed(t *testing.T) {
	t.Parallel()

	doc := review.New("hello world\n", nil)
	c, err := doc.Add(6, 11, comment.TypeInline, "x")
	require.NoError(t, err)

	// Delete [6,11): positions inside the span all map to 6.
	dropped := doc.UpdateContent("hello \n", func(pos, _ int) int {
		if pos > 6 {
			return 6
		}
		return pos
	})
	assert.Equal(t, []string{c.ID}, dropped)
	assert.Empty(t, doc.Comments())
	assert.Equal(t, "hello \n", doc.Raw())
}

func TestSave_RefusesExternalEdit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeDoc(t, "content here\n")

	doc, err := review.Load(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("someone else wrote this\n"), 0o644))

	_, err = doc.Add(0, 7, comment.TypeInline, "x")
	require.NoError(t, err)
	assert.ErrorIs(t, doc.Save(ctx), review.ErrExternallyModified)
}

func TestSave_CreatesBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeDoc(t, "original\n")

	cfg := config.Default()
	cfg.Backups.Enabled = true

	doc, err := review.Load(ctx, path, cfg)
	require.NoError(t, err)
	_, err = doc.Add(0, 8, comment.TypeInline, "x")
	require.NoError(t, err)
	require.NoError(t, doc.Save(ctx))

	require.True(t, fsutil.BackupExists(path))
	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(backup))
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	doc := review.New("# Title\n\nPara\n", nil)
	start := strings.Index(doc.Clean(), "Para")
	c, err := doc.Add(start, start+4, comment.TypeInline, "hm")
	require.NoError(t, err)

	out, err := doc.RenderHTML()
	require.NoError(t, err)

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, `data-commentable="true"`)
	assert.Contains(t, out, `data-comment-id="`+c.ID+`"`)
	assert.NotContains(t, out, "review-start")
}

func TestRanges(t *testing.T) {
	t.Parallel()

	doc := review.New("# T\n\nbody\n", nil)
	ranges := doc.Ranges()
	require.Len(t, ranges, 2)
}
