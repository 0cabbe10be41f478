package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Media types a source can label an item with. An empty MediaType means
// series.
const (
	MediaTypeSeries = "series"
	MediaTypeMovie  = "movie"
)

// Item is one raw watch record in the common shape resolution consumes.
// SeasonHint and EpisodeHint are 0 when the source supplied none.
type Item struct {
	SeriesName   string
	SeasonHint   int
	EpisodeHint  int
	EpisodeTitle string
	WatchedOn    string // YYYY-MM-DD
	Source       string
	MediaType    string
}

// seasonSegmentPattern matches the grouping segment streaming exports insert
// between show and episode: "Season 1", "Part 2", "Volume 3", and so on.
var seasonSegmentPattern = regexp.MustCompile(`(?i)^(?:season|series|part|volume|book|chapter)\s+(\d+)$`)

// ParseExportTitle splits a colon-delimited export title such as
// "Show: Season 1: Episode Title" into its series name, season hint, and
// episode title. A title with no separators is a standalone (series name
// only). "Limited Series" counts as season 1.
func ParseExportTitle(title string) (seriesName string, seasonHint int, episodeTitle string) {
	segments := strings.Split(title, ": ")
	if len(segments) == 1 {
		return strings.TrimSpace(title), 0, ""
	}

	for i, segment := range segments {
		segment = strings.TrimSpace(segment)
		if match := seasonSegmentPattern.FindStringSubmatch(segment); match != nil {
			season, _ := strconv.Atoi(match[1])
			return joinSegments(segments[:i]), season, joinSegments(segments[i+1:])
		}
		if strings.EqualFold(segment, "limited series") {
			return joinSegments(segments[:i]), 1, joinSegments(segments[i+1:])
		}
	}

	// No season segment: first segment is the show, the rest is the episode.
	return strings.TrimSpace(segments[0]), 0, joinSegments(segments[1:])
}

func joinSegments(segments []string) string {
	return strings.TrimSpace(strings.Join(segments, ": "))
}
