package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rgonek/wp-block-converter/converter"
)

// newImageBaseHook rebases relative image sources onto base, such as a media
// CDN prefix. Absolute, protocol-relative and data sources are left alone.
func newImageBaseHook(base string) (converter.ImageHook, error) {
	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil || !baseURL.IsAbs() || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid image base %q: must be an absolute URL", base)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	return func(_ context.Context, in converter.ImageInput) (converter.ImageOutput, error) {
		if in.Src == "" {
			return converter.ImageOutput{}, converter.ErrUnresolved
		}
		ref, err := url.Parse(in.Src)
		if err != nil {
			return converter.ImageOutput{}, fmt.Errorf("%w: %v", converter.ErrUnresolved, err)
		}
		if ref.IsAbs() || ref.Host != "" {
			return converter.ImageOutput{}, nil
		}

		// Root-relative paths nest under the base path too.
		ref.Path = strings.TrimPrefix(ref.Path, "/")
		return converter.ImageOutput{Src: baseURL.ResolveReference(ref).String(), Handled: true}, nil
	}, nil
}
