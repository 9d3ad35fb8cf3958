package converter

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config holds all converter configuration options.
type Config struct {
	PreserveStyles         bool `json:"preserveStyles" yaml:"preserveStyles"`
	EditorClasses          bool `json:"editorClasses" yaml:"editorClasses"`
	WrapImagesInFigure     bool `json:"wrapImagesInFigure" yaml:"wrapImagesInFigure"`
	DetectCodeLanguage     bool `json:"detectCodeLanguage" yaml:"detectCodeLanguage"`
	ConvertHighlightedDivs bool `json:"convertHighlightedDivs" yaml:"convertHighlightedDivs"`
	ShieldMath             bool `json:"shieldMath" yaml:"shieldMath"`
	PreserveMoreMarker     bool `json:"preserveMoreMarker" yaml:"preserveMoreMarker"`

	// LanguageMap rewrites detected code languages, e.g. "py" -> "python".
	LanguageMap map[string]string `json:"languageMap,omitempty" yaml:"languageMap,omitempty"`
	// Languages is the allow-list of bare class tokens accepted as a language.
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`
	// MathSignatures are matched case-insensitively against script bodies.
	MathSignatures []string `json:"mathSignatures,omitempty" yaml:"mathSignatures,omitempty"`
	// HighlightClasses mark a div as a syntax-highlighted code container.
	HighlightClasses []string `json:"highlightClasses,omitempty" yaml:"highlightClasses,omitempty"`

	// ResolutionMode decides what an ErrUnresolved from ImageHook does.
	ResolutionMode ResolutionMode `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	ImageHook      ImageHook      `json:"-" yaml:"-"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

var (
	defaultLanguages = []string{
		"bash", "c", "cpp", "csharp", "css", "diff", "go", "html", "java",
		"javascript", "js", "json", "kotlin", "lua", "markdown", "php",
		"python", "py", "ruby", "rust", "scss", "shell", "sh", "sql",
		"swift", "toml", "ts", "typescript", "xml", "yaml",
	}
	defaultMathSignatures   = []string{"mathjax", "katex", "math/tex"}
	defaultHighlightClasses = []string{"highlight", "highlighter-rouge", "codehilite"}
)

// DefaultConfig returns the option set used by ConvertSimple: every feature
// enabled except inline style preservation.
func DefaultConfig() Config {
	return Config{
		EditorClasses:          true,
		WrapImagesInFigure:     true,
		DetectCodeLanguage:     true,
		ConvertHighlightedDivs: true,
		ShieldMath:             true,
		PreserveMoreMarker:     true,
	}
}

func (c Config) applyDefaults() Config {
	if len(c.Languages) == 0 {
		c.Languages = defaultLanguages
	}
	if len(c.MathSignatures) == 0 {
		c.MathSignatures = defaultMathSignatures
	}
	if len(c.HighlightClasses) == 0 {
		c.HighlightClasses = defaultHighlightClasses
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}

	return c
}

// clone returns a deep copy of Config for map and slice backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.LanguageMap = cloneStringMap(c.LanguageMap)
	cloned.Languages = cloneStrings(c.Languages)
	cloned.MathSignatures = cloneStrings(c.MathSignatures)
	cloned.HighlightClasses = cloneStrings(c.HighlightClasses)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}
	for _, lang := range c.Languages {
		if strings.TrimSpace(lang) == "" || strings.ContainsAny(lang, " \t\n") {
			return fmt.Errorf("invalid language %q", lang)
		}
	}
	for _, sig := range c.MathSignatures {
		if strings.TrimSpace(sig) == "" {
			return fmt.Errorf("mathSignatures must not contain empty entries")
		}
	}
	for _, class := range c.HighlightClasses {
		if strings.TrimSpace(class) == "" || strings.ContainsAny(class, " \t\n") {
			return fmt.Errorf("invalid highlight class %q", class)
		}
	}
	switch c.ResolutionMode {
	case "", ResolutionBestEffort, ResolutionStrict:
	default:
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	return nil
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
