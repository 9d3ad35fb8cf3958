package converter

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrPlaceholderLeak is returned when a shield key survives restoration.
var ErrPlaceholderLeak = errors.New("placeholder leaked into output")

// restore swaps shield keys back for their originals. A unit that is exactly
// one script key becomes its own html block; keys embedded in a block are
// restored in place.
func (s *state) restore(units []string) []string {
	seen := make(map[string]bool, len(s.keys.order))
	out := make([]string, 0, len(units))
	for _, unit := range units {
		if original, ok := s.keys.scripts[unit]; ok {
			seen[unit] = true
			out = append(out, s.block(BlockHTML, blockAttrs{}, original))
			continue
		}
		if !strings.Contains(unit, s.keys.prefix) {
			out = append(out, unit)
			continue
		}
		unit = s.keys.pattern.ReplaceAllStringFunc(unit, func(key string) string {
			original, ok := s.keys.scripts[key]
			if !ok {
				return key
			}
			seen[key] = true
			s.stats.Untouched++
			return original
		})
		out = append(out, strings.ReplaceAll(unit, s.keys.more, MoreMarker))
	}

	for _, key := range s.keys.order {
		if !seen[key] {
			s.logger.Debug("shielded script not found after conversion", slog.String("key", key))
			s.addWarning(WarningDroppedContent, "script", "shielded math script was discarded by the parser")
		}
	}
	return out
}
