package converter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestConvertConcurrentUse(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "math.html"))
	require.NoError(t, err)

	conv := newTestConverter(t, DefaultConfig())
	want, err := conv.Convert(string(input))
	require.NoError(t, err)

	results := make([]Result, 32)
	g, _ := errgroup.WithContext(context.Background())
	for i := range results {
		g.Go(func() error {
			result, err := conv.Convert(string(input))
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, result := range results {
		assert.Equal(t, want, result)
	}
}
