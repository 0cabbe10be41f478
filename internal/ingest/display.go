package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayName fixes ALL-CAPS series names some exports produce. Mixed-case
// names pass through untouched.
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || !isAllUpper(name) {
		return name
	}
	return titleCaser.String(strings.ToLower(name))
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
