package mdconverter

import "github.com/rgonek/wp-block-converter/converter"

// WarningInvalidFrontMatter is reported when front matter is not valid YAML.
const WarningInvalidFrontMatter converter.WarningType = "invalid_front_matter"

// Result holds the output of a Markdown conversion.
type Result struct {
	Markup   string              `json:"markup"`
	Stats    converter.Stats     `json:"stats"`
	Warnings []converter.Warning `json:"warnings,omitempty"`
	Meta     map[string]any      `json:"meta,omitempty"`
}
