package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}

// fail records the first error of the conversion; later ones are dropped.
func (s *state) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// applyImageHook rewrites the src of img in place when the hook handles it.
// srcset is removed on rewrite since it still lists the original sources.
func (s *state) applyImageHook(img *html.Node, inFigure bool) {
	if s.config.ImageHook == nil || s.err != nil {
		return
	}
	if err := s.checkContext(); err != nil {
		s.fail(err)
		return
	}

	src := strings.TrimSpace(dom.GetAttribute(img, "src"))
	input := ImageInput{
		SourcePath: s.opts.SourcePath,
		Src:        src,
		Alt:        dom.GetAttribute(img, "alt"),
		InFigure:   inFigure,
		Attrs:      attrMap(img),
	}

	output, err := s.config.ImageHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				s.fail(fmt.Errorf("unresolved image reference %q: %w", src, err))
				return
			}
			s.logger.Debug("image hook left source unresolved", slog.String("src", src))
			s.addWarning(
				WarningUnresolvedReference,
				"img",
				fmt.Sprintf("unresolved image reference %q; keeping original source", src),
			)
			return
		}
		s.fail(fmt.Errorf("image hook failed: %w", err))
		return
	}
	if !output.Handled {
		return
	}

	if err := validateImageOutput(output); err != nil {
		s.fail(fmt.Errorf("invalid image hook output: %w", err))
		return
	}

	dom.SetAttribute(img, "src", strings.TrimSpace(output.Src))
	dom.RemoveAttribute(img, "srcset")
}

func validateImageOutput(output ImageOutput) error {
	if strings.TrimSpace(output.Src) == "" {
		return errors.New("handled image output requires non-empty src")
	}
	return nil
}

func attrMap(node *html.Node) map[string]string {
	attrs := make(map[string]string, len(node.Attr))
	for _, attr := range node.Attr {
		attrs[attr.Key] = attr.Val
	}
	return attrs
}
