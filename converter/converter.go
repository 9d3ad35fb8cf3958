package converter

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Converter converts HTML documents into block markup.
// A Converter is immutable after New and safe for concurrent use.
type Converter struct {
	config           Config
	languages        map[string]struct{}
	highlightClasses map[string]struct{}
	mathSignatures   []string
	logger           *slog.Logger
}

// state holds per-conversion mutable state.
type state struct {
	*Converter
	ctx      context.Context
	opts     ConvertOptions
	err      error
	stats    Stats
	warnings []Warning
	keys     *placeholders
}

// blockKind is the closed set of element categories the walker dispatches on.
type blockKind int

const (
	kindRaw blockKind = iota
	kindHeading
	kindParagraph
	kindCode
	kindList
	kindTable
	kindImage
	kindFigure
	kindQuote
	kindSeparator
	kindContainer
	kindScript
)

var blockKinds = map[string]blockKind{
	"h1":         kindHeading,
	"h2":         kindHeading,
	"h3":         kindHeading,
	"h4":         kindHeading,
	"h5":         kindHeading,
	"h6":         kindHeading,
	"p":          kindParagraph,
	"pre":        kindCode,
	"ul":         kindList,
	"ol":         kindList,
	"table":      kindTable,
	"img":        kindImage,
	"figure":     kindFigure,
	"blockquote": kindQuote,
	"hr":         kindSeparator,
	"div":        kindContainer,
	"script":     kindScript,
}

// documentPattern matches input whose first tag, after whitespace and
// comments, opens a full document.
var documentPattern = regexp.MustCompile(`(?is)^\x{FEFF}?(?:\s|<!--.*?-->)*<(?:!doctype|html|head|body)[\s/>]`)

// headMetadata are head elements with no place in post content.
var headMetadata = map[string]struct{}{
	"title": {},
	"meta":  {},
	"link":  {},
	"base":  {},
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Converter{
		config:           cfg,
		languages:        lowerSet(cfg.Languages),
		highlightClasses: lowerSet(cfg.HighlightClasses),
		logger:           cfg.Logger,
	}
	for _, sig := range cfg.MathSignatures {
		c.mathSignatures = append(c.mathSignatures, strings.ToLower(sig))
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// Convert takes an HTML fragment or document and returns block markup.
// Malformed or unknown markup is preserved in html blocks instead of
// failing; errors come from the image hook or ErrPlaceholderLeak.
func (c *Converter) Convert(input string) (Result, error) {
	return c.ConvertWithContext(context.Background(), input, ConvertOptions{})
}

// ConvertWithContext is Convert with a context passed to the image hook and
// checked between top-level nodes.
func (c *Converter) ConvertWithContext(ctx context.Context, input string, opts ConvertOptions) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(input) == "" {
		return Result{}, nil
	}

	s := &state{
		Converter: c,
		ctx:       ctx,
		opts:      opts,
		keys:      newPlaceholders(input),
	}

	shielded := s.shield(input)
	units := s.walk(shielded)
	if s.err != nil {
		return Result{}, s.err
	}
	if err := s.checkContext(); err != nil {
		return Result{}, err
	}
	units = s.restore(units)
	markup := strings.Join(units, "\n\n")
	if strings.Contains(markup, s.keys.prefix) {
		return Result{}, fmt.Errorf("failed to restore shielded content: %w", ErrPlaceholderLeak)
	}

	return Result{
		Markup:   markup,
		Stats:    s.stats,
		Warnings: s.warnings,
	}, nil
}

// Convert converts input with the given config and returns the markup and
// its statistics.
func Convert(input string, config Config) (string, Stats, error) {
	conv, err := New(config)
	if err != nil {
		return "", Stats{}, err
	}
	result, err := conv.Convert(input)
	if err != nil {
		return "", Stats{}, err
	}
	return result.Markup, result.Stats, nil
}

// ConvertSimple converts input with DefaultConfig and discards the stats.
// It panics if conversion fails, which only happens on an internal defect.
func ConvertSimple(input string) string {
	markup, _, err := Convert(input, DefaultConfig())
	if err != nil {
		panic(err)
	}
	return markup
}

func (s *state) addWarning(typ WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     typ,
		NodeType: nodeType,
		Message:  message,
	})
}

// walk parses the shielded input and converts its top-level nodes.
func (s *state) walk(shielded string) []string {
	nodes, err := s.parseNodes(shielded)
	if err != nil {
		s.logger.Debug("html parse failed", slog.Any("error", err))
		s.addWarning(WarningParseFallback, "", fmt.Sprintf("input kept as raw html: %v", err))
		return []string{s.block(BlockHTML, blockAttrs{}, strings.TrimSpace(shielded))}
	}
	return s.convertNodes(nodes)
}

// parseNodes returns the top-level nodes to walk. Only input that starts as
// a document goes through the full parser, which would otherwise hoist
// leading style and script elements into a head.
func (s *state) parseNodes(input string) ([]*html.Node, error) {
	if documentPattern.MatchString(input) {
		doc, err := html.Parse(strings.NewReader(input))
		if err != nil {
			return nil, err
		}

		var nodes []*html.Node
		if head := dom.QuerySelector(doc, "head"); head != nil {
			nodes = s.headNodes(head)
		}
		if body := dom.QuerySelector(doc, "body"); body != nil {
			nodes = append(nodes, dom.ChildNodes(body)...)
		}
		return nodes, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(input), body)
}

// headNodes keeps head children that carry content, such as style and
// script, and drops document metadata with a warning.
func (s *state) headNodes(head *html.Node) []*html.Node {
	var nodes []*html.Node
	for _, child := range dom.Children(head) {
		tag := strings.ToLower(child.Data)
		if _, ok := headMetadata[tag]; ok {
			s.logger.Debug("document head element dropped", slog.String("tag", tag))
			s.addWarning(WarningDroppedContent, tag, fmt.Sprintf("document head element <%s> dropped", tag))
			continue
		}
		nodes = append(nodes, child)
	}
	return nodes
}

func (s *state) convertNodes(nodes []*html.Node) []string {
	var units []string
	for _, node := range nodes {
		if s.err != nil {
			return units
		}
		if err := s.checkContext(); err != nil {
			s.fail(err)
			return units
		}
		units = append(units, s.convertNode(node)...)
	}
	return units
}

func (s *state) convertNode(node *html.Node) []string {
	switch node.Type {
	case html.TextNode:
		return s.convertText(node)
	case html.CommentNode:
		if s.config.PreserveMoreMarker && strings.EqualFold(strings.TrimSpace(node.Data), "more") {
			return []string{MoreMarker}
		}
		return nil
	case html.ElementNode:
		return s.convertElement(node)
	default:
		return nil
	}
}

// convertText turns top-level text into paragraphs. Script keys and the
// read-more key are cut out first so each script still becomes its own html
// block and the marker stays between blocks.
func (s *state) convertText(node *html.Node) []string {
	text := strings.TrimSpace(node.Data)
	switch {
	case text == "":
		return nil
	case s.config.PreserveMoreMarker && text == MoreMarker:
		return []string{MoreMarker}
	}

	var units []string
	for _, segment := range s.keys.splitKeys(text) {
		switch {
		case segment == s.keys.more:
			units = append(units, MoreMarker)
		case s.keys.isScriptKey(segment):
			units = append(units, segment)
		default:
			if segment = strings.TrimSpace(segment); segment != "" {
				units = append(units, s.paragraphs(html.EscapeString(segment), nil)...)
			}
		}
	}
	return units
}

func (s *state) convertElement(node *html.Node) []string {
	tag := strings.ToLower(node.Data)
	kind, ok := blockKinds[tag]
	if !ok {
		s.addWarning(WarningUnknownElement, tag, fmt.Sprintf("unrecognized element <%s> kept as raw html", tag))
		return one(s.convertRaw(node, "unknown element"))
	}

	switch kind {
	case kindHeading:
		return s.convertHeading(node)
	case kindParagraph:
		return s.convertParagraph(node)
	case kindCode:
		return one(s.convertCode(node, nil))
	case kindList:
		return s.convertList(node)
	case kindTable:
		return one(s.convertTable(node))
	case kindImage:
		return one(s.convertImage(node))
	case kindFigure:
		return one(s.convertFigure(node))
	case kindQuote:
		return s.convertQuote(node)
	case kindSeparator:
		return one(s.convertSeparator())
	case kindContainer:
		return s.convertContainer(node)
	case kindScript:
		return one(s.convertRaw(node, "unshielded script"))
	default:
		return one(s.convertRaw(node, "unhandled kind"))
	}
}

func one(unit string) []string {
	if unit == "" {
		return nil
	}
	return []string{unit}
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[strings.ToLower(value)] = struct{}{}
	}
	return set
}
