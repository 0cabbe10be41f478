package textutil

import (
	"regexp"
	"strings"
)

var (
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	spacePattern   = regexp.MustCompile(`\s+`)

	seasonEpisodePrefixPattern = regexp.MustCompile(`(?i)^(.*?):?\s*season\s+\d+\s*[,:]?\s*episode\s+\d+\s*[:\-]?\s*`)
	genericEpisodePattern      = regexp.MustCompile(`(?i)^episode\s+\d+$`)
	pilotPattern               = regexp.MustCompile(`(?i)^\(?pilot\)?$`)
)

// NormalizeTitle lowercases a title, strips non-word characters, and
// collapses whitespace.
func NormalizeTitle(title string) string {
	t := strings.ToLower(unicodeReplacer.Replace(title))
	t = nonWordPattern.ReplaceAllString(t, "")
	t = spacePattern.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// NormalizeBaseTitle normalizes a title after removing any part-number suffix.
func NormalizeBaseTitle(title string) string {
	base, _, _ := ExtractPartNumber(title)
	return NormalizeTitle(base)
}

// CleanResult describes a raw episode title after platform noise is removed.
type CleanResult struct {
	Title string
	// IsGeneric marks uninformative titles ("Episode 3") that must not be
	// used for title-based matching.
	IsGeneric bool
	IsPilot   bool
}

// CleanEpisodeTitle strips platform-added prefixes from a raw episode title
// and classifies pilot and generic titles.
//
// A "Series: Season X Episode Y" prefix is removed when its leading segment
// is the series name (or absent). A "Series - " prefix is removed only when
// the leading segment scores at least 0.7 against the series name, so
// legitimate episode titles containing a dash survive.
func CleanEpisodeTitle(raw, seriesName string) CleanResult {
	title := strings.TrimSpace(raw)
	if m := seasonEpisodePrefixPattern.FindStringSubmatch(title); m != nil {
		lead := strings.TrimSpace(m[1])
		if lead == "" || Similarity(lead, seriesName) >= 0.7 {
			title = strings.TrimSpace(title[len(m[0]):])
		}
	}
	if idx := strings.Index(title, " - "); idx > 0 {
		if Similarity(title[:idx], seriesName) >= 0.7 {
			title = strings.TrimSpace(title[idx+3:])
		}
	}
	res := CleanResult{Title: title}
	switch {
	case title == "" || genericEpisodePattern.MatchString(title):
		res.IsGeneric = true
	case pilotPattern.MatchString(title):
		res.IsPilot = true
		res.Title = "Pilot"
	}
	return res
}

// IsTitlePrefix reports whether a is a truncated or shortened form of b:
// either normalized a is a string prefix of normalized b, or every token of a
// matches the aligned token of b on at least a 3-character prefix. Handles
// platform titles cut off mid-word.
func IsTitlePrefix(a, b string) bool {
	na, nb := NormalizeTitle(a), NormalizeTitle(b)
	if na == "" || nb == "" {
		return false
	}
	if strings.HasPrefix(nb, na) {
		return true
	}
	ta, tb := strings.Fields(na), strings.Fields(nb)
	if len(ta) == 0 || len(ta) > len(tb) {
		return false
	}
	for i, tok := range ta {
		if tok == tb[i] {
			continue
		}
		if len(tok) < 3 || !strings.HasPrefix(tb[i], tok) {
			return false
		}
	}
	return true
}
