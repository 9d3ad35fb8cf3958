package mdconverter

import (
	"encoding/json"
	"testing"

	"github.com/rgonek/wp-block-converter/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	assert.Equal(t, FrontMatterParse, cfg.FrontMatter)
}

func TestConfigValidateRejectsInvalidFrontMatter(t *testing.T) {
	cfg := (Config{}).applyDefaults()
	cfg.FrontMatter = FrontMatterMode("toml")

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frontMatter")
}

func TestConfigValidateWrapsBlocksError(t *testing.T) {
	cfg := Config{Blocks: converter.Config{LanguageMap: map[string]string{"": "go"}}}

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid blocks config")
}

func TestConfigSerializationExcludesLogger(t *testing.T) {
	cfg := defaultTestConfig()

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"shieldMath":true`)
	assert.NotContains(t, string(data), "logger")
}
