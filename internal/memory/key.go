package memory

import (
	"fmt"
	"strings"
)

// EpisodeKey builds the stable raw episode key used for manual mappings and
// episode skips: the raw season hint (or "?" when the source supplied none)
// plus the lowercased raw title, so identical raw inputs collide regardless
// of which source produced them.
func EpisodeKey(seasonHint int, rawTitle string) string {
	season := "?"
	if seasonHint > 0 {
		season = fmt.Sprintf("%d", seasonHint)
	}
	return "s" + season + "|" + strings.ToLower(strings.TrimSpace(rawTitle))
}
