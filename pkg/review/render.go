package review

import (
	"fmt"

	"github.com/yaklabco/mdreview/pkg/annotate"
	"github.com/yaklabco/mdreview/pkg/marker"
	"github.com/yaklabco/mdreview/pkg/render"
)

// RenderHTML produces the document's preview HTML. Comment markers become
// highlight spans, every block that still corresponds to a source range is
// annotated with its span offsets, commented blocks carry their comment id,
// and code blocks get language classes. When correspondence fails the HTML
// is still returned, just without source annotations.
func (d *Document) RenderHTML() (string, error) {
	injected := marker.InjectHighlightSpans(d.raw, d.store.Comments())

	rendered, err := render.New(string(d.cfg.Flavor)).Render(injected)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}

	doc, err := render.ParseDocument(rendered)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}

	ranges := annotate.CollectCommentableRanges(d.clean)
	if render.Correspond(doc, ranges) {
		render.MarkCommented(doc, d.store.Comments())
	}
	render.AnnotateCodeLanguages(doc)

	out, err := render.RenderDocument(doc)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return out, nil
}

// Ranges returns the commentable ranges of the current clean content.
func (d *Document) Ranges() []annotate.CommentableRange {
	return annotate.CollectCommentableRanges(d.clean)
}
