package converter

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that an image reference could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved image reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort keeps the original source and records a warning.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails conversion when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// ConvertOptions carries optional per-conversion context.
type ConvertOptions struct {
	SourcePath string
}

// ImageHook can rewrite an image source during conversion, e.g. to point it
// at an uploaded or CDN copy. It is called once per img element, bare or
// inside a figure, and must be safe for concurrent use when the Converter is
// shared.
type ImageHook func(ctx context.Context, in ImageInput) (ImageOutput, error)

// ImageInput describes an img element being rendered.
type ImageInput struct {
	SourcePath string
	Src        string
	Alt        string
	// InFigure is true for images kept inside a source figure.
	InFigure bool
	Attrs    map[string]string
}

// ImageOutput contains the hook-provided source.
type ImageOutput struct {
	Src     string
	Handled bool
}
