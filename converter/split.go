package converter

import (
	"strings"

	"golang.org/x/net/html"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {}, "track": {},
	"wbr": {},
}

// rawTextElements hold text the tokenizer does not treat as markup; a key
// inside them is left for restore.
var rawTextElements = map[string]struct{}{
	"script": {}, "style": {}, "textarea": {}, "title": {}, "xmp": {},
	"iframe": {}, "noembed": {}, "noframes": {}, "noscript": {}, "plaintext": {},
}

type openElement struct {
	name string
	raw  string
}

// splitAtMarker renders one block per part of inner separated by the
// read-more key and puts the bare marker between them. Parts with no
// visible content produce no block.
func (s *state) splitAtMarker(inner string, render func(part string) string) []string {
	if inner == "" {
		return nil
	}

	parts := balancedParts(inner, s.keys.more)
	var units []string
	for i, part := range parts {
		if i > 0 {
			units = append(units, MoreMarker)
		}
		part = strings.TrimSpace(part)
		if part == "" || (len(parts) > 1 && isBlankMarkup(part)) {
			continue
		}
		units = append(units, render(part))
	}
	return units
}

// balancedParts splits markup at each sep found in text. Elements still
// open at a split point are closed at the end of one part and reopened,
// with their original attributes, at the start of the next.
func balancedParts(markup, sep string) []string {
	if !strings.Contains(markup, sep) {
		return []string{markup}
	}

	var (
		parts []string
		open  []openElement
		cur   strings.Builder
	)
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())

		switch tt {
		case html.TextToken:
			if len(open) > 0 {
				if _, ok := rawTextElements[open[len(open)-1].name]; ok {
					break
				}
			}
			for i, piece := range strings.Split(raw, sep) {
				if i > 0 {
					for j := len(open) - 1; j >= 0; j-- {
						cur.WriteString("</" + open[j].name + ">")
					}
					parts = append(parts, cur.String())
					cur.Reset()
					for _, el := range open {
						cur.WriteString(el.raw)
					}
				}
				cur.WriteString(piece)
			}
			continue
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if _, ok := voidElements[tag]; !ok {
				open = append(open, openElement{name: tag, raw: raw})
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			for j := len(open) - 1; j >= 0; j-- {
				if open[j].name == string(name) {
					open = open[:j]
					break
				}
			}
		}
		cur.WriteString(raw)
	}

	return append(parts, cur.String())
}

// isBlankMarkup reports whether markup is only tags wrapping whitespace,
// as left behind when a split falls at an element boundary.
func isBlankMarkup(markup string) bool {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return true
		case html.TextToken:
			if strings.TrimSpace(string(z.Raw())) != "" {
				return false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if _, ok := voidElements[string(name)]; ok {
				return false
			}
		}
	}
}
