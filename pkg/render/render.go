// Package render converts clean Markdown to HTML and validates that the
// rendered element stream still corresponds to the commentable ranges
// extracted from the source. When the two agree, each rendered block is
// annotated with its source span so a preview can map clicks back to
// document offsets.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
)

// Flavor identifies the Markdown flavor used for rendering.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer converts Markdown to HTML.
type Renderer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a renderer for the given flavor. Supported flavors are
// "commonmark" and "gfm"; invalid flavors default to "gfm" since tables are a
// commentable kind. Raw HTML pass-through is enabled so injected highlight
// spans survive rendering.
func New(flavor string) *Renderer {
	f := flavorOrDefault(flavor)
	return &Renderer{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render converts Markdown content to an HTML fragment.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// ParseDocument parses an HTML fragment into a node tree. The tree is
// normalized under html/head/body; walkers in this package skip the wrapper
// elements.
func ParseDocument(content string) (*xhtml.Node, error) {
	doc, err := xhtml.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse rendered html: %w", err)
	}
	return doc, nil
}

// RenderDocument converts a node tree back to HTML text.
func RenderDocument(doc *xhtml.Node) (string, error) {
	var buf bytes.Buffer
	if err := xhtml.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render html tree: %w", err)
	}
	return buf.String(), nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithRendererOptions(html.WithUnsafe()),
	}
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
