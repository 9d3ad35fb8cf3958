package mdconverter

import (
	"testing"

	"github.com/rgonek/wp-block-converter/converter"
)

func BenchmarkConvertMarkdown(b *testing.B) {
	conv, err := New(Config{Blocks: converter.DefaultConfig()})
	if err != nil {
		b.Fatalf("failed to create converter: %v", err)
	}

	input := `---
title: Benchmark
---
# Heading

This is **bold** text with [link](https://example.com).

<!--more-->

- one
- two

| Name | Value |
| --- | --- |
| A | 1 |

` + "```go\nfmt.Println(1 < 2)\n```\n"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := conv.Convert(input); err != nil {
			b.Fatalf("convert failed: %v", err)
		}
	}
}
