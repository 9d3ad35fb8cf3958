package mdconverter

import (
	"bytes"
	"context"
	"fmt"

	figure "github.com/mangoumbrella/goldmark-figure"
	"github.com/rgonek/wp-block-converter/converter"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Converter renders Markdown drafts to HTML and converts the result to
// block markup.
type Converter struct {
	config   Config
	markdown goldmark.Markdown
	blocks   *converter.Converter
}

// New creates a new Markdown Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	blocks, err := converter.New(cfg.Blocks)
	if err != nil {
		return nil, err
	}

	extensions := []goldmark.Extender{extension.GFM, figure.Figure}
	if cfg.FrontMatter == FrontMatterParse {
		extensions = append(extensions, meta.Meta)
	}
	if cfg.Typographer {
		extensions = append(extensions, extension.Typographer)
	}

	// Raw HTML must survive rendering so <!--more--> and embeds reach the
	// block converter.
	rendererOptions := []renderer.Option{gmhtml.WithUnsafe()}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}

	return &Converter{
		config: cfg,
		markdown: goldmark.New(
			goldmark.WithExtensions(extensions...),
			goldmark.WithRendererOptions(rendererOptions...),
		),
		blocks: blocks,
	}, nil
}

// Convert takes a Markdown document and returns block markup.
func (c *Converter) Convert(markdown string) (Result, error) {
	return c.ConvertWithContext(context.Background(), markdown, converter.ConvertOptions{})
}

// ConvertWithContext is Convert with a context and options handed to the
// block converter.
func (c *Converter) ConvertWithContext(ctx context.Context, markdown string, opts converter.ConvertOptions) (Result, error) {
	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := c.markdown.Convert([]byte(markdown), &buf, parser.WithContext(pctx)); err != nil {
		return Result{}, fmt.Errorf("failed to render markdown: %w", err)
	}

	converted, err := c.blocks.ConvertWithContext(ctx, buf.String(), opts)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Markup:   converted.Markup,
		Stats:    converted.Stats,
		Warnings: converted.Warnings,
	}
	if c.config.FrontMatter == FrontMatterParse {
		data, err := meta.TryGet(pctx)
		if err != nil {
			result.Warnings = append(result.Warnings, converter.Warning{
				Type:    WarningInvalidFrontMatter,
				Message: err.Error(),
			})
		} else {
			result.Meta = data
		}
	}

	return result, nil
}
