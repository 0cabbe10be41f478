package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

// partPatterns are tried in priority order; the first match wins.
var partPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i),\s*pt\.?\s*(\d+)\s*$`),
	regexp.MustCompile(`(?i)\s*[-:]\s*part\s+(\d+)\s*$`),
	regexp.MustCompile(`(?i)\s+part\s+(\d+)\s*$`),
	regexp.MustCompile(`\s*\((\d+)\)\s*$`),
	regexp.MustCompile(`(?i)\s+pt\.?\s*(\d+)\s*$`),
}

// ExtractPartNumber splits a multi-part episode title into its base title and
// part number. Recognized suffixes, in priority order: ", Pt. N",
// "- Part N" / ": Part N", " Part N", a trailing "(N)", and " Pt. N" /
// " Pt N". When no pattern applies the title is returned unchanged with
// ok=false.
func ExtractPartNumber(title string) (base string, part int, ok bool) {
	for _, pattern := range partPatterns {
		loc := pattern.FindStringSubmatchIndex(title)
		if loc == nil {
			continue
		}
		num, err := strconv.Atoi(title[loc[2]:loc[3]])
		if err != nil || num <= 0 {
			continue
		}
		return strings.TrimSpace(title[:loc[0]]), num, true
	}
	return title, 0, false
}
