package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rewatch/internal/ingest"
	"rewatch/internal/logging"
	"rewatch/internal/memory"
	"rewatch/internal/notes"
	"rewatch/internal/records"
	"rewatch/internal/resolve"
)

// Summary counts the outcomes of one batch.
type Summary struct {
	Total      int
	Recorded   int
	Duplicates int
	Skipped    int
	Errors     int
}

// Importer coordinates resolution and persistence for a batch of items.
type Importer struct {
	memory   *memory.Store
	records  *records.Store
	resolver *resolve.SeriesResolver
	prompter resolve.Prompter
	notes    *notes.Store
	logger   *slog.Logger
}

// New wires an importer. The notes store may be nil to skip note writing.
func New(mem *memory.Store, store *records.Store, resolver *resolve.SeriesResolver, prompter resolve.Prompter, noteStore *notes.Store, logger *slog.Logger) *Importer {
	return &Importer{
		memory:   mem,
		records:  store,
		resolver: resolver,
		prompter: prompter,
		notes:    noteStore,
		logger:   logging.NewComponentLogger(logger, "importer"),
	}
}

// DedupeKey identifies a raw item across re-imports: the watch date, the raw
// series name, and the raw episode key.
func DedupeKey(item ingest.Item) string {
	return fmt.Sprintf("%s|%s|%s", item.WatchedOn, item.SeriesName, memory.EpisodeKey(item.SeasonHint, item.EpisodeTitle))
}

// Run processes items in order. It returns early only on resolve.ErrCancelled
// or a storage failure; per-item problems are counted and logged.
func (imp *Importer) Run(ctx context.Context, items []ingest.Item) (Summary, error) {
	started := time.Now()
	summary := Summary{Total: len(items)}
	for _, item := range items {
		err := imp.processItem(ctx, item, &summary)
		if errors.Is(err, resolve.ErrCancelled) {
			return summary, err
		}
		if errors.Is(err, resolve.ErrSkipped) {
			summary.Skipped++
			continue
		}
		if err != nil {
			summary.Errors++
			imp.logger.Error("item failed",
				logging.String(logging.FieldRawName, item.SeriesName),
				logging.String("episode_title", item.EpisodeTitle),
				logging.String(logging.FieldErrorHint, "re-run the import to retry this item"),
				logging.Error(err))
		}
	}
	imp.logger.Info("import finished",
		logging.String(logging.FieldEventType, "import_finished"),
		logging.Int("total", summary.Total),
		logging.Int("recorded", summary.Recorded),
		logging.Duration("elapsed", time.Since(started)))
	return summary, nil
}

func (imp *Importer) processItem(ctx context.Context, item ingest.Item, summary *Summary) error {
	if item.MediaType == ingest.MediaTypeMovie {
		// Only series resolution is supported; movie rows from an export are
		// surfaced in the log rather than forced through series matching.
		imp.logger.Info("skipping movie item",
			logging.String(logging.FieldEventType, "movie_skipped"),
			logging.String(logging.FieldRawName, item.SeriesName),
			logging.String(logging.FieldSource, item.Source))
		return resolve.ErrSkipped
	}

	dedupeKey := DedupeKey(item)
	exists, err := imp.records.HasWatch(ctx, dedupeKey)
	if err != nil {
		return err
	}
	if exists {
		summary.Duplicates++
		return nil
	}

	resolution, err := imp.resolver.Resolve(ctx, item.SeriesName)
	if err != nil {
		return err
	}
	series := resolution.Series

	match, err := imp.resolveEpisode(ctx, series, item)
	if err != nil {
		return err
	}

	event := records.WatchEvent{
		SeriesID:   series.ID,
		Season:     match.Season,
		Episode:    match.Episode,
		RawTitle:   item.EpisodeTitle,
		WatchedOn:  item.WatchedOn,
		Source:     item.Source,
		Method:     match.Method,
		Confidence: match.Confidence,
		DedupeKey:  dedupeKey,
	}
	existed, err := imp.records.RecordWatch(ctx, event)
	if err != nil {
		return err
	}
	if existed {
		summary.Duplicates++
		return nil
	}
	summary.Recorded++
	imp.logger.Info("recorded watch",
		logging.String(logging.FieldEventType, "watch_recorded"),
		logging.String(logging.FieldSeries, series.Name),
		logging.Int("season", match.Season),
		logging.Int("episode", match.Episode),
		logging.String(logging.FieldMethod, match.Method),
		logging.Float64(logging.FieldConfidence, match.Confidence),
		logging.String(logging.FieldSource, item.Source),
		logging.Bool("new_series", resolution.IsNew))

	if imp.notes != nil {
		canonicalTitle := episodeTitleFor(ctx, imp.records, series.ID, match)
		if canonicalTitle == "" {
			canonicalTitle = item.EpisodeTitle
		}
		note := notes.Note{
			Series:       series.Name,
			Season:       match.Season,
			Episode:      match.Episode,
			EpisodeTitle: canonicalTitle,
			WatchedOn:    item.WatchedOn,
			Source:       item.Source,
		}
		if _, _, err := imp.notes.Write(note); err != nil {
			return err
		}
	}
	return nil
}

// resolveEpisode produces the canonical season and episode for one item,
// consulting decision memory before any matching or prompting.
func (imp *Importer) resolveEpisode(ctx context.Context, series records.Series, item ingest.Item) (resolve.MatchResult, error) {
	rawKey := memory.EpisodeKey(item.SeasonHint, item.EpisodeTitle)

	if mapping, ok := imp.memory.LookupManualEpisode(series.Name, rawKey); ok {
		return resolve.MatchResult{
			Season:     mapping.Season,
			Episode:    mapping.Episode,
			Confidence: 1.0,
			Method:     resolve.MethodManual,
		}, nil
	}
	if imp.memory.IsEpisodeSkipped(series.Name, rawKey) {
		return resolve.MatchResult{}, resolve.ErrSkipped
	}

	index, err := resolve.BuildEpisodeIndex(ctx, imp.records, series.ID)
	if err != nil {
		return resolve.MatchResult{}, err
	}

	season := item.SeasonHint
	if season == 0 {
		season = 1
	}

	if index.Empty() {
		// Nothing to title-match against. A numeric hint is the best signal
		// available; otherwise the user decides.
		if item.EpisodeHint > 0 {
			return resolve.MatchResult{
				Season:     season,
				Episode:    item.EpisodeHint,
				Confidence: 0,
				Method:     resolve.MethodDefault,
			}, nil
		}
		return imp.promptEpisode(ctx, series, item, rawKey, nil)
	}

	match := resolve.MatchAcrossSeasons(index, season, item.EpisodeTitle, 0, item.EpisodeHint, series.Name)
	if match != nil && match.Confidence >= resolve.AutoAcceptConfidence {
		return *match, nil
	}
	return imp.promptEpisode(ctx, series, item, rawKey, index[season])
}

// promptEpisode asks the user to pick the canonical episode. The pick is
// persisted as a manual mapping; a skip is persisted as an episode skip.
func (imp *Importer) promptEpisode(ctx context.Context, series records.Series, item ingest.Item, rawKey string, candidates []resolve.IndexedEpisode) (resolve.MatchResult, error) {
	season := item.SeasonHint
	if season == 0 {
		season = 1
	}

	options := make([]string, 0, len(candidates)+2)
	for _, candidate := range candidates {
		options = append(options, fmt.Sprintf("s%02de%02d %s", season, candidate.Number, candidate.Title))
	}
	options = append(options, "Skip this episode", "Cancel the import")

	title := fmt.Sprintf("%s: which episode is %q?", series.Name, item.EpisodeTitle)
	choice, ok, err := imp.prompter.SelectOption(ctx, title, options)
	if err != nil {
		return resolve.MatchResult{}, err
	}
	if !ok {
		return resolve.MatchResult{}, resolve.ErrSkipped
	}
	switch choice {
	case len(candidates): // skip
		if err := imp.memory.MarkEpisodeSkipped(series.Name, rawKey); err != nil {
			return resolve.MatchResult{}, err
		}
		return resolve.MatchResult{}, resolve.ErrSkipped
	case len(candidates) + 1: // cancel
		return resolve.MatchResult{}, resolve.ErrCancelled
	}

	selected := candidates[choice]
	mapping := memory.EpisodeMapping{Season: season, Episode: selected.Number}
	if err := imp.memory.SaveManualEpisode(series.Name, rawKey, mapping); err != nil {
		return resolve.MatchResult{}, err
	}
	return resolve.MatchResult{
		Season:     mapping.Season,
		Episode:    mapping.Episode,
		Confidence: 1.0,
		Method:     resolve.MethodManual,
	}, nil
}

// episodeTitleFor looks up the canonical episode title for the note heading,
// or empty when the index has no entry.
func episodeTitleFor(ctx context.Context, store *records.Store, seriesID string, match resolve.MatchResult) string {
	episodes, err := store.EpisodeIndex(ctx, seriesID)
	if err != nil {
		return ""
	}
	for _, episode := range episodes {
		if episode.Season == match.Season && episode.Episode == match.Episode {
			return episode.Title
		}
	}
	return ""
}
