package converter

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

var selectorImg = cascadia.MustCompile("img")

// convertImage re-serializes a bare img with every source attribute.
func (s *state) convertImage(node *html.Node) string {
	s.applyImageHook(node, false)

	var sb strings.Builder
	sb.WriteString("<img")
	for _, attr := range node.Attr {
		writeAttr(&sb, attr)
	}
	sb.WriteString("/>")

	fragment := sb.String()
	if s.config.WrapImagesInFigure {
		fragment = s.openTag("figure", nil, "wp-block-image") + fragment + "</figure>"
	}
	return s.block(BlockImage, blockAttrs{}, fragment)
}

// convertFigure keeps a figure holding an image as-is; any other figure is
// raw html.
func (s *state) convertFigure(node *html.Node) string {
	if selectorImg.MatchFirst(node) == nil {
		return s.convertRaw(node, "figure without image")
	}
	if s.config.ImageHook != nil {
		node = dom.Clone(node, true)
		for _, img := range selectorImg.MatchAll(node) {
			s.applyImageHook(img, true)
		}
	}
	return s.block(BlockImage, blockAttrs{}, dom.OuterHTML(node))
}
