package converter

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

var (
	selectorCode = cascadia.MustCompile("code")
	selectorPre  = cascadia.MustCompile("pre")

	languageClassPattern = regexp.MustCompile(`(?i)^(?:lang|language)-([a-z0-9+#_.\-]+)$`)
	codeEscaper          = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// convertCode renders a pre element as a code block. container is the
// highlighted div the pre came from, if any.
func (s *state) convertCode(pre *html.Node, container *html.Node) string {
	code := selectorCode.MatchFirst(pre)
	source := pre
	if code != nil {
		source = code
	}

	text := dom.TextContent(source)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lang := s.detectLanguage(code, pre, container)
	codeOpen := "<code>"
	if lang != "" {
		codeOpen = `<code class="language-` + attrEscaper.Replace(lang) + `">`
	}
	fragment := s.openTag("pre", nil, "wp-block-code") + codeOpen + codeEscaper.Replace(text) + "</code></pre>"
	return s.block(BlockCode, blockAttrs{Language: lang}, fragment)
}

func (s *state) isHighlighted(div *html.Node) bool {
	for _, class := range strings.Fields(dom.ClassName(div)) {
		if _, ok := s.highlightClasses[strings.ToLower(class)]; ok {
			return true
		}
	}
	return false
}

// convertHighlighted collapses a syntax-highlighted container to the text
// of its first pre. It reports false when the container has no pre.
func (s *state) convertHighlighted(div *html.Node) (string, bool) {
	pre := selectorPre.MatchFirst(div)
	if pre == nil {
		return "", false
	}
	return s.convertCode(pre, div), true
}

// detectLanguage checks the class lists of nodes in order and returns the
// first language found, mapped through LanguageMap.
func (s *state) detectLanguage(nodes ...*html.Node) string {
	if !s.config.DetectCodeLanguage {
		return ""
	}
	for _, node := range nodes {
		if node == nil {
			continue
		}
		for _, class := range strings.Fields(dom.ClassName(node)) {
			if lang := s.languageFromClass(class); lang != "" {
				return s.mapLanguage(lang)
			}
		}
	}
	return ""
}

func (s *state) languageFromClass(class string) string {
	if match := languageClassPattern.FindStringSubmatch(class); match != nil {
		return strings.ToLower(match[1])
	}
	lower := strings.ToLower(class)
	if _, ok := s.languages[lower]; ok {
		return lower
	}
	return ""
}

func (s *state) mapLanguage(lang string) string {
	if mapped, ok := s.config.LanguageMap[lang]; ok {
		return mapped
	}
	return lang
}
