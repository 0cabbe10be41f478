package resolve

import (
	"context"
	"sort"

	"rewatch/internal/records"
)

// IndexedEpisode is one matchable episode of a season.
type IndexedEpisode struct {
	Number int
	Title  string
}

// EpisodeIndex maps season number to that season's episodes ordered by
// number. Derived from local records, rebuildable, never the source of truth.
type EpisodeIndex map[int][]IndexedEpisode

// Seasons returns the index's season numbers in ascending order.
func (idx EpisodeIndex) Seasons() []int {
	seasons := make([]int, 0, len(idx))
	for season := range idx {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons
}

// Empty reports whether the index has no episodes at all. Callers must treat
// an empty index as "cannot title-match" and fall back to numeric or manual
// resolution.
func (idx EpisodeIndex) Empty() bool {
	for _, episodes := range idx {
		if len(episodes) > 0 {
			return false
		}
	}
	return true
}

// BuildEpisodeIndex loads the stored episode list for a series and groups it
// by season.
func BuildEpisodeIndex(ctx context.Context, local LocalRecords, seriesID string) (EpisodeIndex, error) {
	episodes, err := local.EpisodeIndex(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	return indexFromEpisodes(episodes), nil
}

func indexFromEpisodes(episodes []records.Episode) EpisodeIndex {
	index := make(EpisodeIndex)
	for _, episode := range episodes {
		index[episode.Season] = append(index[episode.Season], IndexedEpisode{
			Number: episode.Episode,
			Title:  episode.Title,
		})
	}
	for season := range index {
		entries := index[season]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Number < entries[j].Number })
	}
	return index
}
