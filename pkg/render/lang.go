package render

import (
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/yaklabco/mdreview/pkg/langdetect"
)

// AnnotateCodeLanguages gives every rendered code block a language-… class.
// Fenced blocks that carried an info string keep it, normalized through the
// language alias table; bare blocks get a detected language from their
// content. Highlighters downstream key off the class.
func AnnotateCodeLanguages(doc *xhtml.Node) {
	walk(doc, func(n *xhtml.Node) {
		if n.Type != xhtml.ElementNode || n.Data != "code" {
			return
		}
		if n.Parent == nil || n.Parent.Type != xhtml.ElementNode || n.Parent.Data != "pre" {
			return
		}

		if class, ok := getAttr(n, "class"); ok {
			if info, found := strings.CutPrefix(class, "language-"); found {
				setAttr(n, "class", "language-"+langdetect.FromInfo(info))
			}
			return
		}
		setAttr(n, "class", "language-"+langdetect.Detect([]byte(textContent(n))))
	})
}

// textContent concatenates the text nodes under n.
func textContent(n *xhtml.Node) string {
	var b strings.Builder
	walk(n, func(c *xhtml.Node) {
		if c.Type == xhtml.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}
