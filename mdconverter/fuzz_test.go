package mdconverter

import (
	"testing"

	"github.com/rgonek/wp-block-converter/converter"
)

func FuzzConvertMarkdown(f *testing.F) {
	seeds := []string{
		"",
		"Hello World",
		"**bold** _italic_ ~~strike~~",
		"Intro\n\n<!--more-->\n\nRest",
		"```python\nprint('x')\n```",
		"---\ntitle: x\n---\n# H",
		"| A | B |\n| --- | --- |\n| 1 | 2 |",
		"<script type=\"math/tex\">x</script>",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	conv, err := New(Config{Blocks: converter.DefaultConfig()})
	if err != nil {
		f.Fatalf("failed to create converter: %v", err)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		if _, err := conv.Convert(markdown); err != nil {
			t.Fatalf("convert returned error: %v", err)
		}
	})
}
