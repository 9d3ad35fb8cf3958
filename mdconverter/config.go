package mdconverter

import (
	"fmt"

	"github.com/rgonek/wp-block-converter/converter"
)

// FrontMatterMode controls how a leading YAML front matter section is read.
type FrontMatterMode string

const (
	FrontMatterParse FrontMatterMode = "parse"
	FrontMatterNone  FrontMatterMode = "none"
)

// Config holds Markdown converter configuration.
type Config struct {
	Blocks      converter.Config `json:"blocks" yaml:"blocks"`
	FrontMatter FrontMatterMode  `json:"frontMatter,omitempty" yaml:"frontMatter,omitempty"`
	HardWraps   bool             `json:"hardWraps" yaml:"hardWraps"`
	Typographer bool             `json:"typographer" yaml:"typographer"`
}

func (c Config) applyDefaults() Config {
	if c.FrontMatter == "" {
		c.FrontMatter = FrontMatterParse
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.FrontMatter != FrontMatterParse && c.FrontMatter != FrontMatterNone {
		return fmt.Errorf("invalid frontMatter %q", c.FrontMatter)
	}
	if err := c.Blocks.Validate(); err != nil {
		return fmt.Errorf("invalid blocks config: %w", err)
	}
	return nil
}
