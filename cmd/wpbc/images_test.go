package main

import (
	"context"
	"testing"

	"github.com/rgonek/wp-block-converter/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageBaseHook(t *testing.T) {
	hook, err := newImageBaseHook("https://cdn.example.com/media")
	require.NoError(t, err)

	tests := []struct {
		name    string
		src     string
		want    string
		handled bool
	}{
		{name: "root relative", src: "/uploads/a.png", want: "https://cdn.example.com/media/uploads/a.png", handled: true},
		{name: "relative", src: "img/b.jpg", want: "https://cdn.example.com/media/img/b.jpg", handled: true},
		{name: "absolute", src: "https://other.example.com/c.png"},
		{name: "protocol relative", src: "//other.example.com/c.png"},
		{name: "data", src: "data:image/png;base64,AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := hook(context.Background(), converter.ImageInput{Src: tt.src})
			require.NoError(t, err)
			assert.Equal(t, tt.handled, out.Handled)
			assert.Equal(t, tt.want, out.Src)
		})
	}
}

func TestImageBaseHookEmptySourceIsUnresolved(t *testing.T) {
	hook, err := newImageBaseHook("https://cdn.example.com/")
	require.NoError(t, err)

	_, err = hook(context.Background(), converter.ImageInput{})
	assert.ErrorIs(t, err, converter.ErrUnresolved)
}

func TestImageBaseHookRejectsRelativeBase(t *testing.T) {
	for _, base := range []string{"media/", "/media", "::"} {
		_, err := newImageBaseHook(base)
		require.Error(t, err, base)
		assert.Contains(t, err.Error(), "invalid image base")
	}
}
