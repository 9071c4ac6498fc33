package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdreview/pkg/render"
)

func TestRenderer_Flavors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, render.FlavorGFM, render.New("gfm").Flavor())
	assert.Equal(t, render.FlavorCommonMark, render.New("commonmark").Flavor())
	assert.Equal(t, render.FlavorGFM, render.New("bogus").Flavor())
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := render.New(render.FlavorGFM)

	out, err := r.Render("# Title\n\nSome **bold** text\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderer_GFMTable(t *testing.T) {
	t.Parallel()

	r := render.New(render.FlavorGFM)

	out, err := r.Render("| a | b |\n| - | - |\n| c | d |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>c</td>")
}

func TestRenderer_RawSpanPassThrough(t *testing.T) {
	t.Parallel()

	r := render.New(render.FlavorGFM)

	out, err := r.Render(`<span data-comment-id="ab12">hi</span> there`)
	require.NoError(t, err)
	assert.Contains(t, out, `<span data-comment-id="ab12">hi</span>`)
}

func TestParseAndRenderDocument(t *testing.T) {
	t.Parallel()

	doc, err := render.ParseDocument("<p>hello</p>")
	require.NoError(t, err)

	out, err := render.RenderDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "<p>hello</p>")
}

func TestAnnotateCodeLanguages(t *testing.T) {
	t.Parallel()

	r := render.New(render.FlavorGFM)
	out, err := r.Render("```golang\npackage main\n```\n\n```\nplain stuff\n```\n")
	require.NoError(t, err)

	doc, err := render.ParseDocument(out)
	require.NoError(t, err)
	render.AnnotateCodeLanguages(doc)

	annotated, err := render.RenderDocument(doc)
	require.NoError(t, err)

	// The alias is normalized and the bare block gets a detected class.
	assert.Contains(t, annotated, `class="language-go"`)
	assert.Equal(t, 2, strings.Count(annotated, `class="language-`))
}
