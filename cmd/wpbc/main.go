package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// settings are read from the environment and serve as flag defaults.
type settings struct {
	LogLevel  string `env:"WPBC_LOG_LEVEL" envDefault:"info"`
	Preset    string `env:"WPBC_PRESET" envDefault:"gutenberg"`
	Color     bool   `env:"WPBC_COLOR" envDefault:"false"`
	ImageBase string `env:"WPBC_IMAGE_BASE"`
}

func loadSettings() (settings, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return settings{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return s, nil
}

func main() {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(s).Execute(); err != nil {
		os.Exit(1)
	}
}
