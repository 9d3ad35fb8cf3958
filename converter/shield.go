package converter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MoreMarker is the read-more sentinel kept outside any block.
const MoreMarker = "<!--more-->"

const (
	keyOpen  = "⟦"
	keyClose = "⟧"
)

var scriptPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)

// placeholders maps shield keys back to the source text they replaced.
// Keys look like ⟦wpb:<nonce>:<n>⟧ for scripts and ⟦wpb:<nonce>:more⟧ for
// the read-more marker; the closing bracket keeps any key from being a
// prefix of another.
type placeholders struct {
	prefix  string
	more    string
	order   []string
	scripts map[string]string
	pattern *regexp.Regexp
	anyKey  *regexp.Regexp
}

func newPlaceholders(input string) *placeholders {
	nonce := newNonce()
	for strings.Contains(input, keyOpen+"wpb:"+nonce) {
		nonce = newNonce()
	}
	prefix := keyOpen + "wpb:" + nonce + ":"
	return &placeholders{
		prefix:  prefix,
		more:    prefix + "more" + keyClose,
		scripts: map[string]string{},
		pattern: regexp.MustCompile(regexp.QuoteMeta(prefix) + `\d+` + regexp.QuoteMeta(keyClose)),
		anyKey:  regexp.MustCompile(regexp.QuoteMeta(prefix) + `(?:\d+|more)` + regexp.QuoteMeta(keyClose)),
	}
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (p *placeholders) addScript(original string) string {
	key := p.prefix + strconv.Itoa(len(p.order)) + keyClose
	p.order = append(p.order, key)
	p.scripts[key] = original
	return key
}

func (p *placeholders) isScriptKey(text string) bool {
	_, ok := p.scripts[text]
	return ok
}

// splitKeys cuts text around every shield key and returns the keys and the
// text between them in order.
func (p *placeholders) splitKeys(text string) []string {
	var segments []string
	last := 0
	for _, loc := range p.anyKey.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, text[last:loc[0]])
		}
		segments = append(segments, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, text[last:])
	}
	return segments
}

func (s *state) shield(input string) string {
	out := input
	if s.config.ShieldMath {
		out = scriptPattern.ReplaceAllStringFunc(out, func(script string) string {
			if !s.isMathScript(script) {
				return script
			}
			return s.keys.addScript(script)
		})
	}
	if s.config.PreserveMoreMarker {
		out = strings.ReplaceAll(out, MoreMarker, s.keys.more)
	}
	return out
}

// isMathScript matches signatures against the whole tag so that
// type="math/tex" counts as well as a MathJax call in the body.
func (s *state) isMathScript(script string) bool {
	lower := strings.ToLower(script)
	for _, sig := range s.mathSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}
