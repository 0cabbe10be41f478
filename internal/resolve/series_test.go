package resolve

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"rewatch/internal/catalog"
	"rewatch/internal/logging"
	"rewatch/internal/memory"
	"rewatch/internal/records"
)

type fakeSearcher struct {
	results      []catalog.Series
	seasons      []catalog.Season
	episodes     map[int][]catalog.Episode
	searchCalls  int
	searchErr    error
	lastSearched []string
}

func (f *fakeSearcher) SearchSeries(ctx context.Context, query string) ([]catalog.Series, error) {
	f.searchCalls++
	f.lastSearched = append(f.lastSearched, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeSearcher) SeriesSeasons(ctx context.Context, seriesID int64) ([]catalog.Season, error) {
	return f.seasons, nil
}

func (f *fakeSearcher) SeasonEpisodes(ctx context.Context, seriesID int64, seasonNumber int) ([]catalog.Episode, error) {
	return f.episodes[seasonNumber], nil
}

type fakePrompter struct {
	selections  []int
	declineNext bool
	selectCalls int
	confirms    []bool
}

func (f *fakePrompter) SelectOption(ctx context.Context, title string, options []string) (int, bool, error) {
	f.selectCalls++
	if f.declineNext {
		return 0, false, nil
	}
	if len(f.selections) == 0 {
		return 0, false, errors.New("unexpected prompt")
	}
	choice := f.selections[0]
	f.selections = f.selections[1:]
	return choice, true, nil
}

func (f *fakePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if len(f.confirms) == 0 {
		return false, errors.New("unexpected confirm")
	}
	answer := f.confirms[0]
	f.confirms = f.confirms[1:]
	return answer, nil
}

func newResolverFixture(t *testing.T, searcher *fakeSearcher, prompter *fakePrompter) (*SeriesResolver, *memory.Store, *records.Store) {
	t.Helper()
	dir := t.TempDir()
	mem, err := memory.Open(filepath.Join(dir, "decisions.json"), logging.NewNop())
	if err != nil {
		t.Fatalf("memory.Open: %v", err)
	}
	store, err := records.Open(filepath.Join(dir, "records.db"), logging.NewNop())
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	resolver := NewSeriesResolver(mem, store, searcher, prompter, logging.NewNop())
	return resolver, mem, store
}

func TestResolveMalformedName(t *testing.T) {
	searcher := &fakeSearcher{}
	resolver, mem, _ := newResolverFixture(t, searcher, &fakePrompter{})

	_, err := resolver.Resolve(context.Background(), "***")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	entry, ok := mem.IsSkipped("***")
	if !ok || entry.Reason != "malformed name" {
		t.Fatalf("expected malformed-name skip entry, got %+v ok=%v", entry, ok)
	}
	if searcher.searchCalls != 0 {
		t.Fatal("malformed name must not reach the catalog")
	}
}

func TestResolveUsesAliasWithoutExternalCalls(t *testing.T) {
	searcher := &fakeSearcher{}
	prompter := &fakePrompter{}
	resolver, mem, store := newResolverFixture(t, searcher, prompter)

	series, err := store.UpsertSeries(context.Background(), records.Series{
		CatalogID: 2316, Name: "The Office", NormalizedName: "the office",
	})
	if err != nil {
		t.Fatalf("UpsertSeries: %v", err)
	}
	if err := mem.SaveAlias("The Office (US)", "The Office", 2316); err != nil {
		t.Fatalf("SaveAlias: %v", err)
	}

	resolution, err := resolver.Resolve(context.Background(), "The Office (US)")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolution.Series.ID != series.ID || resolution.IsNew {
		t.Fatalf("unexpected resolution: %+v", resolution)
	}
	if searcher.searchCalls != 0 || prompter.selectCalls != 0 {
		t.Fatal("alias hit must not search or prompt")
	}
}

func TestResolveSkipListShortCircuits(t *testing.T) {
	searcher := &fakeSearcher{}
	resolver, mem, _ := newResolverFixture(t, searcher, &fakePrompter{})

	if err := mem.MarkSkipped("Concert Special", "not a series"); err != nil {
		t.Fatalf("MarkSkipped: %v", err)
	}
	_, err := resolver.Resolve(context.Background(), "Concert Special")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	if searcher.searchCalls != 0 {
		t.Fatal("skipped series must never reach the catalog")
	}
}

func TestResolveExactLocalMatchSavesAlias(t *testing.T) {
	searcher := &fakeSearcher{}
	resolver, mem, store := newResolverFixture(t, searcher, &fakePrompter{})

	if _, err := store.UpsertSeries(context.Background(), records.Series{
		CatalogID: 1438, Name: "The Wire", NormalizedName: "the wire",
	}); err != nil {
		t.Fatalf("UpsertSeries: %v", err)
	}

	resolution, err := resolver.Resolve(context.Background(), "The Wire: Season 2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolution.Series.Name != "The Wire" || resolution.IsNew {
		t.Fatalf("unexpected resolution: %+v", resolution)
	}
	alias, ok := mem.LookupAlias("The Wire: Season 2")
	if !ok || alias.CanonicalName != "The Wire" {
		t.Fatalf("expected alias persisted, got %+v ok=%v", alias, ok)
	}
	if searcher.searchCalls != 0 {
		t.Fatal("exact local match must not search the catalog")
	}
}

func TestResolveFuzzyLocalConfirmed(t *testing.T) {
	searcher := &fakeSearcher{}
	prompter := &fakePrompter{selections: []int{0}}
	resolver, mem, store := newResolverFixture(t, searcher, prompter)

	if _, err := store.UpsertSeries(context.Background(), records.Series{
		CatalogID: 456, Name: "The Simpsons", NormalizedName: "the simpsons",
	}); err != nil {
		t.Fatalf("UpsertSeries: %v", err)
	}

	resolution, err := resolver.Resolve(context.Background(), "Simpsons")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolution.Series.Name != "The Simpsons" {
		t.Fatalf("unexpected resolution: %+v", resolution)
	}
	if prompter.selectCalls != 1 {
		t.Fatalf("expected one prompt, got %d", prompter.selectCalls)
	}
	if _, ok := mem.LookupAlias("Simpsons"); !ok {
		t.Fatal("expected alias persisted after confirmation")
	}
	if searcher.searchCalls != 0 {
		t.Fatal("confirmed local match must not search the catalog")
	}
}

func TestResolveNewSeriesSingleResultAutoAccepts(t *testing.T) {
	searcher := &fakeSearcher{
		results: []catalog.Series{{ID: 1871, Name: "Two and a Half Men", FirstAirDate: "2003-09-22"}},
		seasons: []catalog.Season{{SeasonNumber: 1, EpisodeCount: 2}},
		episodes: map[int][]catalog.Episode{
			1: {
				{Name: "Pilot", SeasonNumber: 1, EpisodeNumber: 1},
				{Name: "Big Flappy Bastards", SeasonNumber: 1, EpisodeNumber: 2},
			},
		},
	}
	prompter := &fakePrompter{selections: []int{0}} // Add it
	resolver, mem, store := newResolverFixture(t, searcher, prompter)

	resolution, err := resolver.Resolve(context.Background(), "Two and a Half Men: Season 1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !resolution.IsNew || resolution.Series.CatalogID != 1871 {
		t.Fatalf("unexpected resolution: %+v", resolution)
	}

	alias, ok := mem.LookupAlias("Two and a Half Men: Season 1")
	if !ok || alias.CanonicalID != 1871 {
		t.Fatalf("expected alias to catalog identity, got %+v ok=%v", alias, ok)
	}

	index, err := store.EpisodeIndex(context.Background(), resolution.Series.ID)
	if err != nil {
		t.Fatalf("EpisodeIndex: %v", err)
	}
	if len(index) != 2 || index[0].Title != "Pilot" {
		t.Fatalf("episodes not hydrated: %+v", index)
	}
}

func TestResolveNewSeriesUserSkipPersists(t *testing.T) {
	searcher := &fakeSearcher{}
	prompter := &fakePrompter{selections: []int{1}} // Skip this item
	resolver, mem, _ := newResolverFixture(t, searcher, prompter)

	_, err := resolver.Resolve(context.Background(), "Obscure Documentary")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	if _, ok := mem.IsSkipped("Obscure Documentary"); !ok {
		t.Fatal("user skip must persist a skip entry")
	}
	if searcher.searchCalls != 0 {
		t.Fatal("skip must not search the catalog")
	}
}

func TestResolveNewSeriesCancelAbortsBatch(t *testing.T) {
	prompter := &fakePrompter{selections: []int{2}} // Cancel the import
	resolver, _, _ := newResolverFixture(t, &fakeSearcher{}, prompter)

	_, err := resolver.Resolve(context.Background(), "Anything")
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestResolveDeclinedPromptSkipsWithoutPersisting(t *testing.T) {
	prompter := &fakePrompter{declineNext: true}
	resolver, mem, _ := newResolverFixture(t, &fakeSearcher{}, prompter)

	_, err := resolver.Resolve(context.Background(), "Whatever Show")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	if _, ok := mem.IsSkipped("Whatever Show"); ok {
		t.Fatal("declined prompt must not persist a skip entry")
	}
}

func TestResolveZeroCatalogResultsSkips(t *testing.T) {
	searcher := &fakeSearcher{}
	prompter := &fakePrompter{selections: []int{0}} // Add it
	resolver, mem, _ := newResolverFixture(t, searcher, prompter)

	_, err := resolver.Resolve(context.Background(), "Totally Unknown Show")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	if searcher.searchCalls == 0 {
		t.Fatal("expected catalog search attempts")
	}
	// Zero results is not a user decision, nothing persists.
	if _, ok := mem.IsSkipped("Totally Unknown Show"); ok {
		t.Fatal("zero results must not persist a skip entry")
	}
}

func TestResolveCatalogFallbackQueries(t *testing.T) {
	searcher := &fakeSearcher{}
	prompter := &fakePrompter{selections: []int{0}} // Add it
	resolver, _, _ := newResolverFixture(t, searcher, prompter)

	_, err := resolver.Resolve(context.Background(), "Classic Doctor Who: Season 5")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	want := []string{"Classic Doctor Who", "Classic Doctor Who: Season 5", "Doctor Who"}
	if len(searcher.lastSearched) != len(want) {
		t.Fatalf("unexpected queries: %v", searcher.lastSearched)
	}
	for i, query := range want {
		if searcher.lastSearched[i] != query {
			t.Fatalf("query %d = %q, want %q", i, searcher.lastSearched[i], query)
		}
	}
}

func TestResolveCatalogErrorPropagates(t *testing.T) {
	searcher := &fakeSearcher{searchErr: errors.New("boom")}
	prompter := &fakePrompter{selections: []int{0}} // Add it
	resolver, _, _ := newResolverFixture(t, searcher, prompter)

	_, err := resolver.Resolve(context.Background(), "Some Show")
	if err == nil || errors.Is(err, ErrSkipped) || errors.Is(err, ErrCancelled) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
