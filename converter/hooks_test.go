package converter

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testContextKey string

const traceContextKey testContextKey = "trace"

func TestImageHookRewritesBareImage(t *testing.T) {
	var called atomic.Bool
	cfg := DefaultConfig()
	cfg.ImageHook = func(ctx context.Context, in ImageInput) (ImageOutput, error) {
		called.Store(true)
		assert.Equal(t, "hook-test", ctx.Value(traceContextKey))
		assert.Equal(t, "posts/hello.html", in.SourcePath)
		assert.Equal(t, "/uploads/a.png", in.Src)
		assert.Equal(t, "Preview", in.Alt)
		assert.False(t, in.InFigure)
		assert.Equal(t, "a.png 1x, a@2x.png 2x", in.Attrs["srcset"])
		return ImageOutput{Src: "https://cdn.example.com/a.png", Handled: true}, nil
	}

	ctx := context.WithValue(context.Background(), traceContextKey, "hook-test")
	result, err := newTestConverter(t, cfg).ConvertWithContext(ctx,
		`<img src="/uploads/a.png" alt="Preview" srcset="a.png 1x, a@2x.png 2x">`,
		ConvertOptions{SourcePath: "posts/hello.html"})
	require.NoError(t, err)
	assert.True(t, called.Load())
	assert.Equal(t,
		"<!-- wp:image -->\n<figure class=\"wp-block-image\"><img src=\"https://cdn.example.com/a.png\" alt=\"Preview\"/></figure>\n<!-- /wp:image -->",
		result.Markup)
}

func TestImageHookRewritesFigureImages(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ImageHook = func(_ context.Context, in ImageInput) (ImageOutput, error) {
		assert.True(t, in.InFigure)
		return ImageOutput{Src: "https://cdn.example.com" + in.Src, Handled: true}, nil
	}

	result, err := newTestConverter(t, cfg).Convert(`<figure><img src="/a.png"><figcaption>A</figcaption></figure>`)
	require.NoError(t, err)
	assert.Equal(t,
		"<!-- wp:image -->\n<figure><img src=\"https://cdn.example.com/a.png\"/><figcaption>A</figcaption></figure>\n<!-- /wp:image -->",
		result.Markup)
}

func TestUnhandledImageHookKeepsSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WrapImagesInFigure = false
	cfg.ImageHook = func(context.Context, ImageInput) (ImageOutput, error) {
		return ImageOutput{Src: "ignored"}, nil
	}

	result, err := newTestConverter(t, cfg).Convert(`<img src="/a.png">`)
	require.NoError(t, err)
	assert.Equal(t, "<!-- wp:image -->\n<img src=\"/a.png\"/>\n<!-- /wp:image -->", result.Markup)
	assert.Empty(t, result.Warnings)
}

func TestImageHookErrUnresolvedHandlingModes(t *testing.T) {
	hook := func(context.Context, ImageInput) (ImageOutput, error) {
		return ImageOutput{}, ErrUnresolved
	}

	t.Run("best effort", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ImageHook = hook

		result, err := newTestConverter(t, cfg).Convert(`<img src="/missing.png">`)
		require.NoError(t, err)
		assert.Contains(t, result.Markup, `<img src="/missing.png"/>`)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningUnresolvedReference, result.Warnings[0].Type)
		assert.Equal(t, "img", result.Warnings[0].NodeType)
	})

	t.Run("strict", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ImageHook = hook
		cfg.ResolutionMode = ResolutionStrict

		_, err := newTestConverter(t, cfg).Convert(`<p>a</p><img src="/missing.png">`)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnresolved)
		assert.Contains(t, err.Error(), `"/missing.png"`)
	})
}

func TestImageHookErrors(t *testing.T) {
	t.Run("hook failure", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ImageHook = func(context.Context, ImageInput) (ImageOutput, error) {
			return ImageOutput{}, errors.New("upload failed")
		}

		_, err := newTestConverter(t, cfg).Convert(`<img src="/a.png">`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "image hook failed: upload failed")
	})

	t.Run("handled without src", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ImageHook = func(context.Context, ImageInput) (ImageOutput, error) {
			return ImageOutput{Src: "  ", Handled: true}, nil
		}

		_, err := newTestConverter(t, cfg).Convert(`<img src="/a.png">`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "handled image output requires non-empty src")
	})
}

func TestConvertWithContextCancellationPropagatesToHook(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	cfg := DefaultConfig()
	cfg.ImageHook = func(hookCtx context.Context, in ImageInput) (ImageOutput, error) {
		calls.Add(1)
		cancel()
		return ImageOutput{Src: in.Src, Handled: true}, nil
	}

	_, err := newTestConverter(t, cfg).ConvertWithContext(ctx, `<img src="/a.png"><img src="/b.png">`, ConvertOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestConvertWithCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestConverter(t, DefaultConfig()).ConvertWithContext(ctx, `<p>x</p>`, ConvertOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateRejectsInvalidResolutionMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResolutionMode = ResolutionMode("sometimes")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, `invalid resolutionMode "sometimes"`, err.Error())
}
