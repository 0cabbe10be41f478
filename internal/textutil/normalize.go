package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// unicodeReplacer maps typographic punctuation variants to ASCII equivalents
// so that platform scrapes and catalog names compare cleanly.
var unicodeReplacer = strings.NewReplacer(
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	" ", " ",
)

// seasonSuffixPattern matches a trailing season marker in the separator styles
// platforms use: "Show: Season 2", "Show - Season 2", "Show (Season 2)",
// "Show S2". A separator or space before the marker is required so names like
// "CS2" survive.
var seasonSuffixPattern = regexp.MustCompile(`(?i)(?:\s*[:\-]\s*|\s+|\s*\()(?:season\s*\d+|s\d+)\)?\s*$`)

// NormalizeSeriesName produces a catalog-search-friendly form of a raw
// platform series name: punctuation variants folded to ASCII, trailing season
// markers removed, trailing punctuation trimmed. Stable under re-application.
func NormalizeSeriesName(raw string) string {
	name := strings.TrimSpace(unicodeReplacer.Replace(raw))
	for {
		stripped := seasonSuffixPattern.ReplaceAllString(name, "")
		stripped = strings.TrimRightFunc(stripped, func(r rune) bool {
			return unicode.IsSpace(r) || r == ':' || r == '-' || r == ',' || r == '.' || r == ';'
		})
		if stripped == "" || stripped == name {
			break
		}
		name = stripped
	}
	return name
}

// HasAlphanumeric reports whether the string contains at least one letter or
// digit. Names failing this check cannot be resolved against any catalog.
func HasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// fillerWords are platform label tokens that carry no identity signal and
// defeat catalog search ("Classic Doctor Who").
var fillerWords = map[string]struct{}{
	"classic":    {},
	"uncut":      {},
	"remastered": {},
}

// StripFillerWords removes filler tokens from a normalized series name. Used
// as the last-resort catalog query fallback.
func StripFillerWords(name string) string {
	fields := strings.Fields(name)
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := fillerWords[strings.ToLower(field)]; ok {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}
