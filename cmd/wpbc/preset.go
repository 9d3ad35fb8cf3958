package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgonek/wp-block-converter/converter"
	"github.com/rgonek/wp-block-converter/mdconverter"
	"gopkg.in/yaml.v3"
)

const (
	presetGutenberg = "gutenberg"
	presetClassic   = "classic"
	presetMinimal   = "minimal"
)

func presetConfig(preset string) (mdconverter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetGutenberg:
		return mdconverter.Config{Blocks: converter.DefaultConfig()}, nil
	case presetClassic:
		blocks := converter.DefaultConfig()
		blocks.EditorClasses = false
		blocks.PreserveStyles = true
		return mdconverter.Config{Blocks: blocks, HardWraps: true}, nil
	case presetMinimal:
		return mdconverter.Config{
			Blocks: converter.Config{
				ShieldMath:         true,
				PreserveMoreMarker: true,
			},
			FrontMatter: mdconverter.FrontMatterNone,
		}, nil
	default:
		return mdconverter.Config{}, fmt.Errorf("unknown preset %q (allowed: gutenberg, classic, minimal)", preset)
	}
}

// resolveConfig starts from the preset and overlays the YAML options file,
// when one is given. Keys absent from the file keep the preset's values.
func resolveConfig(preset, optionsPath string) (mdconverter.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return mdconverter.Config{}, err
	}
	if optionsPath == "" {
		return cfg, nil
	}

	f, err := os.Open(optionsPath)
	if err != nil {
		return mdconverter.Config{}, fmt.Errorf("failed to open options file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return mdconverter.Config{}, fmt.Errorf("failed to parse options file %s: %w", optionsPath, err)
	}

	return cfg, nil
}
