package converter

import (
	"strconv"
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// convertList keeps the list's inner HTML, nested lists included, inside a
// single list block. A read-more marker splits it into one list per part.
func (s *state) convertList(node *html.Node) []string {
	tag := strings.ToLower(node.Data)
	var attrs blockAttrs
	var extra []html.Attribute
	if tag == "ol" {
		attrs.Ordered = true
		if start, err := strconv.Atoi(strings.TrimSpace(dom.GetAttribute(node, "start"))); err == nil {
			attrs.Start = &start
			extra = append(extra, html.Attribute{Key: "start", Val: strconv.Itoa(start)})
		}
		if dom.HasAttribute(node, "reversed") {
			attrs.Reversed = true
			extra = append(extra, html.Attribute{Key: "reversed"})
		}
	}

	return s.splitAtMarker(strings.TrimSpace(dom.InnerHTML(node)), func(part string) string {
		fragment := s.openTag(tag, node, "wp-block-list", extra...) + part + "</" + tag + ">"
		return s.block(BlockList, attrs, fragment)
	})
}
