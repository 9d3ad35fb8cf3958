package converter

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// blockAttrs is the JSON payload of a block's opening marker.
type blockAttrs struct {
	Level    int    `json:"level,omitempty"`
	Ordered  bool   `json:"ordered,omitempty"`
	Start    *int   `json:"start,omitempty"`
	Reversed bool   `json:"reversed,omitempty"`
	Language string `json:"language,omitempty"`
}

var (
	attrEscaper           = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")
	booleanAttrs          = map[string]struct{}{"reversed": {}}
	videoEmbedPattern     = regexp.MustCompile(`(?i)video|embed`)
	monospaceStylePattern = regexp.MustCompile(`(?i)font-family\s*:[^;]*mono|white-space\s*:\s*pre`)
)

// block wraps fragment in the boundary markers of t and counts it.
func (s *state) block(t BlockType, attrs blockAttrs, fragment string) string {
	s.stats.add(t)

	var sb strings.Builder
	sb.WriteString("<!-- wp:")
	sb.WriteString(string(t))
	if payload, err := json.Marshal(attrs); err == nil && string(payload) != "{}" {
		sb.WriteByte(' ')
		sb.Write(payload)
	}
	sb.WriteString(" -->\n")
	sb.WriteString(fragment)
	sb.WriteString("\n<!-- /wp:")
	sb.WriteString(string(t))
	sb.WriteString(" -->")
	return sb.String()
}

// openTag renders the wrapper start tag of a block, adding the editor class
// and the source element's inline style when the config asks for them.
func (s *state) openTag(tag string, src *html.Node, class string, extra ...html.Attribute) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	if s.config.EditorClasses && class != "" {
		writeAttr(&sb, html.Attribute{Key: "class", Val: class})
	}
	for _, attr := range extra {
		writeAttr(&sb, attr)
	}
	if s.config.PreserveStyles && src != nil {
		if style := strings.TrimSpace(dom.GetAttribute(src, "style")); style != "" {
			writeAttr(&sb, html.Attribute{Key: "style", Val: style})
		}
	}
	sb.WriteString(">")
	return sb.String()
}

func writeAttr(sb *strings.Builder, attr html.Attribute) {
	sb.WriteByte(' ')
	sb.WriteString(attr.Key)
	if _, ok := booleanAttrs[attr.Key]; ok && attr.Val == "" {
		return
	}
	sb.WriteString(`="`)
	sb.WriteString(attrEscaper.Replace(attr.Val))
	sb.WriteString(`"`)
}

func (s *state) convertHeading(node *html.Node) []string {
	tag := strings.ToLower(node.Data)
	level := int(tag[1] - '0')
	return s.splitAtMarker(strings.TrimSpace(dom.InnerHTML(node)), func(part string) string {
		fragment := s.openTag(tag, node, "wp-block-heading") + part + "</" + tag + ">"
		return s.block(BlockHeading, blockAttrs{Level: level}, fragment)
	})
}

func (s *state) convertParagraph(node *html.Node) []string {
	return s.paragraphs(strings.TrimSpace(dom.InnerHTML(node)), node)
}

// paragraphs emits one paragraph block per part of inner separated by the
// read-more key, with the bare marker between parts.
func (s *state) paragraphs(inner string, src *html.Node) []string {
	return s.splitAtMarker(inner, func(part string) string {
		return s.block(BlockParagraph, blockAttrs{}, s.openTag("p", src, "")+part+"</p>")
	})
}

func (s *state) convertQuote(node *html.Node) []string {
	return s.splitAtMarker(strings.TrimSpace(dom.InnerHTML(node)), func(part string) string {
		fragment := s.openTag("blockquote", node, "wp-block-quote") + part + "</blockquote>"
		return s.block(BlockQuote, blockAttrs{}, fragment)
	})
}

func (s *state) convertSeparator() string {
	fragment := "<hr/>"
	if s.config.EditorClasses {
		fragment = `<hr class="wp-block-separator has-alpha-channel-opacity"/>`
	}
	return s.block(BlockSeparator, blockAttrs{}, fragment)
}

// convertContainer handles div elements: highlighted code, embeds and
// preformatted divs are kept whole, anything else is walked like the top level.
func (s *state) convertContainer(node *html.Node) []string {
	if s.config.ConvertHighlightedDivs && s.isHighlighted(node) {
		if unit, ok := s.convertHighlighted(node); ok {
			return one(unit)
		}
	}
	if videoEmbedPattern.MatchString(dom.ClassName(node)) {
		return one(s.convertRaw(node, "video embed"))
	}
	if monospaceStylePattern.MatchString(dom.GetAttribute(node, "style")) {
		return one(s.convertRaw(node, "preformatted style"))
	}

	var units []string
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		units = append(units, s.convertNode(child)...)
	}
	return units
}

// convertRaw keeps the element's outer HTML verbatim.
func (s *state) convertRaw(node *html.Node, reason string) string {
	s.logger.Debug("raw html fallback",
		slog.String("tag", node.Data),
		slog.String("reason", reason))
	return s.block(BlockHTML, blockAttrs{}, dom.OuterHTML(node))
}
