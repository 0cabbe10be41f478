package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"rewatch/internal/catalog"
	"rewatch/internal/logging"
	"rewatch/internal/memory"
	"rewatch/internal/records"
	"rewatch/internal/textutil"
)

// LocalRecords is the slice of the records store series resolution uses.
type LocalRecords interface {
	LookupSeries(ctx context.Context, normalizedName string) (*records.Series, error)
	FuzzySearchSeries(ctx context.Context, normalizedName string) ([]records.Series, error)
	UpsertSeries(ctx context.Context, series records.Series) (records.Series, error)
	ReplaceEpisodes(ctx context.Context, seriesID string, episodes []records.Episode) error
	EpisodeIndex(ctx context.Context, seriesID string) ([]records.Episode, error)
}

// SeriesResolution is a successful series identity.
type SeriesResolution struct {
	Series records.Series
	IsNew  bool
}

// SeriesResolver resolves a raw platform series name to a canonical identity.
type SeriesResolver struct {
	memory   *memory.Store
	local    LocalRecords
	catalog  catalog.Searcher
	prompter Prompter
	logger   *slog.Logger
}

// NewSeriesResolver wires a resolver.
func NewSeriesResolver(mem *memory.Store, local LocalRecords, cat catalog.Searcher, prompter Prompter, logger *slog.Logger) *SeriesResolver {
	return &SeriesResolver{
		memory:   mem,
		local:    local,
		catalog:  cat,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "resolver"),
	}
}

// localKey is the lookup key for local records: the normalized series name
// lowercased, so "The Office" and "the office" collide.
func localKey(name string) string {
	return strings.ToLower(textutil.NormalizeSeriesName(name))
}

// Resolve produces a canonical series identity for rawName.
//
// Returns ErrSkipped when the item should be dropped (skip list, malformed
// name, user skip, zero catalog results) and ErrCancelled when the user
// aborts the batch.
func (r *SeriesResolver) Resolve(ctx context.Context, rawName string) (SeriesResolution, error) {
	rawName = strings.TrimSpace(rawName)
	if !textutil.HasAlphanumeric(rawName) {
		if err := r.memory.MarkSkipped(rawName, "malformed name"); err != nil {
			return SeriesResolution{}, err
		}
		r.logger.Warn("malformed series name", logging.String(logging.FieldRawName, rawName))
		return SeriesResolution{}, ErrSkipped
	}
	normalized := textutil.NormalizeSeriesName(rawName)

	if alias, ok := r.lookupAlias(rawName, normalized); ok {
		return r.resolveAlias(ctx, alias)
	}

	if _, ok := r.memory.IsSkipped(rawName); ok {
		return SeriesResolution{}, ErrSkipped
	}
	if _, ok := r.memory.IsSkipped(normalized); ok {
		return SeriesResolution{}, ErrSkipped
	}

	existing, err := r.local.LookupSeries(ctx, localKey(rawName))
	if err != nil {
		return SeriesResolution{}, err
	}
	if existing != nil {
		if err := r.memory.SaveAlias(rawName, existing.Name, existing.CatalogID); err != nil {
			return SeriesResolution{}, err
		}
		return SeriesResolution{Series: *existing}, nil
	}

	candidates, err := r.local.FuzzySearchSeries(ctx, localKey(rawName))
	if err != nil {
		return SeriesResolution{}, err
	}
	if len(candidates) > 0 {
		resolution, done, err := r.confirmFuzzyLocal(ctx, rawName, candidates)
		if err != nil || done {
			return resolution, err
		}
	}

	return r.resolveNew(ctx, rawName, normalized)
}

func (r *SeriesResolver) lookupAlias(rawName, normalized string) (memory.Alias, bool) {
	if alias, ok := r.memory.LookupAlias(rawName); ok {
		return alias, true
	}
	return r.memory.LookupAlias(normalized)
}

// resolveAlias turns a remembered alias into a local series, rehydrating from
// the catalog when the records database no longer has it.
func (r *SeriesResolver) resolveAlias(ctx context.Context, alias memory.Alias) (SeriesResolution, error) {
	existing, err := r.local.LookupSeries(ctx, localKey(alias.CanonicalName))
	if err != nil {
		return SeriesResolution{}, err
	}
	if existing != nil {
		return SeriesResolution{Series: *existing}, nil
	}
	series, err := r.local.UpsertSeries(ctx, records.Series{
		CatalogID:      alias.CanonicalID,
		Name:           alias.CanonicalName,
		NormalizedName: localKey(alias.CanonicalName),
	})
	if err != nil {
		return SeriesResolution{}, err
	}
	if alias.CanonicalID > 0 {
		if err := r.hydrateEpisodes(ctx, series); err != nil {
			return SeriesResolution{}, err
		}
	}
	return SeriesResolution{Series: series, IsNew: true}, nil
}

// confirmFuzzyLocal asks the user whether rawName is one of the near-matching
// stored series. done is false when the user says it is a new series.
func (r *SeriesResolver) confirmFuzzyLocal(ctx context.Context, rawName string, candidates []records.Series) (SeriesResolution, bool, error) {
	rankSeriesCandidates(rawName, candidates)

	options := make([]string, 0, len(candidates)+2)
	for _, candidate := range candidates {
		options = append(options, candidate.Name)
	}
	options = append(options, "It's a new series", "Skip this item")

	choice, ok, err := r.prompter.SelectOption(ctx,
		fmt.Sprintf("%q looks close to an existing series", rawName), options)
	if err != nil {
		return SeriesResolution{}, true, err
	}
	if !ok {
		return SeriesResolution{}, true, ErrSkipped
	}
	switch choice {
	case len(candidates): // new series
		return SeriesResolution{}, false, nil
	case len(candidates) + 1: // skip
		if err := r.memory.MarkSkipped(rawName, "skipped during resolution"); err != nil {
			return SeriesResolution{}, true, err
		}
		return SeriesResolution{}, true, ErrSkipped
	}
	selected := candidates[choice]
	if err := r.memory.SaveAlias(rawName, selected.Name, selected.CatalogID); err != nil {
		return SeriesResolution{}, true, err
	}
	return SeriesResolution{Series: selected}, true, nil
}

// rankSeriesCandidates orders fuzzy candidates so the most plausible name
// appears first in the prompt. Ordering is advisory only and never
// auto-accepts.
func rankSeriesCandidates(rawName string, candidates []records.Series) {
	query := localKey(rawName)
	sort.SliceStable(candidates, func(i, j int) bool {
		return edlib.JaroWinklerSimilarity(query, candidates[i].NormalizedName) >
			edlib.JaroWinklerSimilarity(query, candidates[j].NormalizedName)
	})
}

// resolveNew handles a series no memory or local record knows about.
func (r *SeriesResolver) resolveNew(ctx context.Context, rawName, normalized string) (SeriesResolution, error) {
	choice, ok, err := r.prompter.SelectOption(ctx,
		fmt.Sprintf("New series %q", rawName),
		[]string{"Add it", "Skip this item", "Cancel the import"})
	if err != nil {
		return SeriesResolution{}, err
	}
	if !ok {
		return SeriesResolution{}, ErrSkipped
	}
	switch choice {
	case 1:
		if err := r.memory.MarkSkipped(rawName, "skipped during resolution"); err != nil {
			return SeriesResolution{}, err
		}
		return SeriesResolution{}, ErrSkipped
	case 2:
		return SeriesResolution{}, ErrCancelled
	}

	results, err := r.searchCatalog(ctx, rawName, normalized)
	if err != nil {
		return SeriesResolution{}, err
	}
	if len(results) == 0 {
		r.logger.Info("no catalog results",
			logging.String(logging.FieldRawName, rawName),
			logging.String("query", normalized))
		return SeriesResolution{}, ErrSkipped
	}

	selected, err := r.pickCatalogResult(ctx, rawName, results)
	if err != nil {
		return SeriesResolution{}, err
	}

	series, err := r.local.UpsertSeries(ctx, records.Series{
		CatalogID:      selected.ID,
		Name:           selected.Name,
		NormalizedName: localKey(selected.Name),
		FirstAirYear:   selected.FirstAirYear(),
	})
	if err != nil {
		return SeriesResolution{}, err
	}
	if err := r.hydrateEpisodes(ctx, series); err != nil {
		return SeriesResolution{}, err
	}
	if err := r.memory.SaveAlias(rawName, selected.Name, selected.ID); err != nil {
		return SeriesResolution{}, err
	}
	r.logger.Info("resolved new series",
		logging.String(logging.FieldRawName, rawName),
		logging.String(logging.FieldSeries, selected.Name),
		logging.Int64("catalog_id", selected.ID))
	return SeriesResolution{Series: series, IsNew: true}, nil
}

// searchCatalog tries the normalized name, the raw name, and finally the
// normalized name with filler words stripped. The first query with results
// wins.
func (r *SeriesResolver) searchCatalog(ctx context.Context, rawName, normalized string) ([]catalog.Series, error) {
	queries := []string{normalized}
	if rawName != normalized {
		queries = append(queries, rawName)
	}
	if stripped := textutil.StripFillerWords(normalized); stripped != normalized && stripped != "" {
		queries = append(queries, stripped)
	}
	for _, query := range queries {
		results, err := r.catalog.SearchSeries(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("catalog search %q: %w", query, err)
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return nil, nil
}

func (r *SeriesResolver) pickCatalogResult(ctx context.Context, rawName string, results []catalog.Series) (catalog.Series, error) {
	if len(results) == 1 {
		return results[0], nil
	}
	options := make([]string, 0, len(results)+1)
	for _, result := range results {
		label := result.Name
		if year := result.FirstAirYear(); year != "" {
			label = fmt.Sprintf("%s (%s)", result.Name, year)
		}
		options = append(options, label)
	}
	options = append(options, "Skip this item")

	choice, ok, err := r.prompter.SelectOption(ctx,
		fmt.Sprintf("Multiple catalog matches for %q", rawName), options)
	if err != nil {
		return catalog.Series{}, err
	}
	if !ok {
		return catalog.Series{}, ErrSkipped
	}
	if choice == len(results) {
		if err := r.memory.MarkSkipped(rawName, "skipped during resolution"); err != nil {
			return catalog.Series{}, err
		}
		return catalog.Series{}, ErrSkipped
	}
	return results[choice], nil
}

// hydrateEpisodes materializes the series' full episode list from the catalog
// into local records.
func (r *SeriesResolver) hydrateEpisodes(ctx context.Context, series records.Series) error {
	if series.CatalogID <= 0 {
		return nil
	}
	seasons, err := r.catalog.SeriesSeasons(ctx, series.CatalogID)
	if err != nil {
		return fmt.Errorf("fetch seasons: %w", err)
	}
	var episodes []records.Episode
	for _, season := range seasons {
		entries, err := r.catalog.SeasonEpisodes(ctx, series.CatalogID, season.SeasonNumber)
		if err != nil {
			return fmt.Errorf("fetch season %d: %w", season.SeasonNumber, err)
		}
		for _, entry := range entries {
			episodes = append(episodes, records.Episode{
				Season:  entry.SeasonNumber,
				Episode: entry.EpisodeNumber,
				Title:   entry.Name,
				AirDate: entry.AirDate,
			})
		}
	}
	if len(episodes) == 0 {
		return nil
	}
	return r.local.ReplaceEpisodes(ctx, series.ID, episodes)
}
