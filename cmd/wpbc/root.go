package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rgonek/wp-block-converter/converter"
	"github.com/rgonek/wp-block-converter/internal/logging"
	"github.com/rgonek/wp-block-converter/mdconverter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const outputSuffix = ".blocks.html"

type options struct {
	preset      string
	optionsPath string
	outDir      string
	logLevel    string
	markdown    bool
	stats       bool
	color       bool
	imageBase   string
}

// document is the conversion outcome of one input.
type document struct {
	Source   string              `json:"source"`
	Output   string              `json:"output,omitempty"`
	Stats    converter.Stats     `json:"stats"`
	Warnings []converter.Warning `json:"warnings,omitempty"`
	Meta     map[string]any      `json:"meta,omitempty"`
	markup   string
}

type convertFunc func(ctx context.Context, source, input string) (document, error)

func newRootCmd(s settings) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wpbc [files...]",
		Short: "Convert HTML or Markdown drafts to block editor markup",
		Long: `wpbc converts HTML fragments or documents into block-annotated markup
for block-based CMS editors. Reads stdin when no file (or "-") is given.

Examples:
  wpbc post.html
  wpbc --markdown --out ./build drafts/*.md
  cat post.html | wpbc --preset classic --stats`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.preset, "preset", s.Preset, "Preset: gutenberg|classic|minimal")
	flags.StringVar(&opts.optionsPath, "config", "", "YAML options file layered over the preset")
	flags.StringVar(&opts.outDir, "out", "", "Write <name>"+outputSuffix+" files into this directory")
	flags.StringVar(&opts.logLevel, "log-level", s.LogLevel, "Log level: debug|info|warn|error")
	flags.BoolVar(&opts.markdown, "markdown", false, "Treat input as Markdown")
	flags.BoolVar(&opts.stats, "stats", false, "Print per-input stats as JSON on stderr")
	flags.BoolVar(&opts.color, "color", s.Color, "Colorize log output")
	flags.StringVar(&opts.imageBase, "image-base", s.ImageBase, "Rebase relative image sources onto this absolute URL")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	logger := logging.BuildLogger(opts.logLevel, cmd.ErrOrStderr(), opts.color)

	cfg, err := resolveConfig(opts.preset, opts.optionsPath)
	if err != nil {
		return err
	}
	cfg.Blocks.Logger = logger
	if opts.imageBase != "" {
		hook, err := newImageBaseHook(opts.imageBase)
		if err != nil {
			return err
		}
		cfg.Blocks.ImageHook = hook
	}

	convert, err := newConvertFunc(cfg, opts.markdown)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var docs []document
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		doc, err := convert(cmd.Context(), "-", string(data))
		if err != nil {
			return err
		}
		doc.Source = "-"
		docs = []document{doc}
	} else {
		if opts.outDir != "" {
			if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		docs, err = convertFiles(cmd.Context(), convert, args, opts.outDir)
		if err != nil {
			return err
		}
	}

	for _, doc := range docs {
		logger.Info("converted",
			slog.String("source", doc.Source),
			slog.Int("blocks", doc.Stats.Blocks()))
		for _, w := range doc.Warnings {
			logger.Warn(w.Message,
				slog.String("source", doc.Source),
				slog.String("type", string(w.Type)),
				slog.String("node", w.NodeType))
		}
		if doc.Output == "" {
			fmt.Fprintln(cmd.OutOrStdout(), doc.markup)
		}
		if opts.stats {
			if err := json.NewEncoder(cmd.ErrOrStderr()).Encode(doc); err != nil {
				return fmt.Errorf("failed to write stats: %w", err)
			}
		}
	}

	return nil
}

// convertFiles converts paths concurrently. Results keep the order of paths.
func convertFiles(ctx context.Context, convert convertFunc, paths []string, outDir string) ([]document, error) {
	docs := make([]document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			doc, err := convert(ctx, path, string(data))
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", path, err)
			}
			doc.Source = path

			if outDir != "" {
				doc.Output = filepath.Join(outDir, outputName(path))
				if err := os.WriteFile(doc.Output, []byte(doc.markup+"\n"), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", doc.Output, err)
				}
			}

			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputSuffix
}

func newConvertFunc(cfg mdconverter.Config, markdown bool) (convertFunc, error) {
	if markdown {
		conv, err := mdconverter.New(cfg)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, source, input string) (document, error) {
			result, err := conv.ConvertWithContext(ctx, input, converter.ConvertOptions{SourcePath: source})
			if err != nil {
				return document{}, err
			}
			return document{Stats: result.Stats, Warnings: result.Warnings, Meta: result.Meta, markup: result.Markup}, nil
		}, nil
	}

	conv, err := converter.New(cfg.Blocks)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, source, input string) (document, error) {
		result, err := conv.ConvertWithContext(ctx, input, converter.ConvertOptions{SourcePath: source})
		if err != nil {
			return document{}, err
		}
		return document{Stats: result.Stats, Warnings: result.Warnings, markup: result.Markup}, nil
	}, nil
}
