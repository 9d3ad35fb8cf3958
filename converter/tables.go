package converter

import (
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// tableFamily lists the elements whose inline style is dropped.
var tableFamily = map[string]struct{}{
	"table": {},
	"thead": {},
	"tbody": {},
	"tfoot": {},
	"tr":    {},
	"th":    {},
	"td":    {},
}

func (s *state) convertTable(node *html.Node) string {
	table := dom.Clone(node, true)
	stripTableStyles(table)

	fragment := dom.OuterHTML(table)
	if s.config.EditorClasses {
		fragment = `<figure class="wp-block-table">` + fragment + "</figure>"
	}
	return s.block(BlockTable, blockAttrs{}, fragment)
}

// stripTableStyles removes style from table-family elements. It stops at
// cells so markup inside a td or th keeps its styling.
func stripTableStyles(node *html.Node) {
	if node.Type != html.ElementNode {
		return
	}
	if _, ok := tableFamily[node.Data]; !ok {
		return
	}

	dom.RemoveAttribute(node, "style")
	if node.Data == "td" || node.Data == "th" {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		stripTableStyles(child)
	}
}
