package resolve

import (
	"testing"
)

func seasonOneIndex() EpisodeIndex {
	return EpisodeIndex{
		1: {
			{Number: 1, Title: "Pilot"},
			{Number: 2, Title: "Second Chances"},
		},
	}
}

func TestMatchPilotRule(t *testing.T) {
	result := MatchEpisode(seasonOneIndex(), 1, "Pilot", 0, 1, "Some Show")
	if result == nil {
		t.Fatal("expected pilot match")
	}
	if result.Season != 1 || result.Episode != 1 || result.Confidence != 0.8 || result.Method != MethodPilot {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMatchGenericTitleReturnsNil(t *testing.T) {
	if result := MatchEpisode(seasonOneIndex(), 1, "Episode 3", 0, 0, "Some Show"); result != nil {
		t.Fatalf("generic title must not match, got %+v", result)
	}
}

func TestMatchExact(t *testing.T) {
	result := MatchEpisode(seasonOneIndex(), 1, "Second Chances", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected exact match")
	}
	if result.Episode != 2 || result.Confidence != 1.0 || result.Method != MethodExact {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMatchExactPart(t *testing.T) {
	index := EpisodeIndex{
		4: {
			{Number: 12, Title: "Graduation, Pt. 1"},
			{Number: 13, Title: "Graduation, Pt. 2"},
		},
	}
	result := MatchEpisode(index, 4, "Graduation, Pt. 2", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected match")
	}
	if result.Episode != 13 || result.Confidence != 1.0 || result.Method != MethodExactPart {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMatchCombinedAndSplit(t *testing.T) {
	// Raw side carries the part, the index stores a combined episode.
	index := EpisodeIndex{1: {{Number: 5, Title: "The Wedding"}}}
	result := MatchEpisode(index, 1, "The Wedding: Part 2", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected combined match")
	}
	if result.Episode != 5 || result.Confidence != 0.7 || result.Method != MethodCombined {
		t.Fatalf("unexpected result: %+v", result)
	}

	// Index side carries the part, the raw title is combined.
	index = EpisodeIndex{1: {{Number: 6, Title: "The Wedding, Pt. 1"}}}
	result = MatchEpisode(index, 1, "The Wedding", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected split match")
	}
	if result.Confidence != 0.7 || result.Method != MethodSplit {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMatchPrefixTiers(t *testing.T) {
	index := EpisodeIndex{
		2: {
			{Number: 3, Title: "The Long Goodbye and Other Stories, Pt. 2"},
		},
	}
	// Truncated platform title with a matching part number.
	result := MatchEpisode(index, 2, "The Long Goodbye, Pt. 2", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected prefix match")
	}
	if result.Confidence != 0.85 || result.Method != MethodPrefixPart {
		t.Fatalf("unexpected result: %+v", result)
	}

	index = EpisodeIndex{2: {{Number: 4, Title: "The Long Goodbye and Other Stories"}}}
	result = MatchEpisode(index, 2, "The Long Goodbye, Pt. 1", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected prefix-combined match")
	}
	if result.Confidence != 0.6 || result.Method != MethodPrefixCombined {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMatchFuzzyFloor(t *testing.T) {
	index := EpisodeIndex{1: {{Number: 1, Title: "Completely Unrelated Episode Name"}}}
	if result := MatchEpisode(index, 1, "Nothing Alike Here", 0, 0, "Some Show"); result != nil {
		t.Fatalf("low-similarity match must return nil, got %+v", result)
	}
}

func TestMatchPartMismatchPenalty(t *testing.T) {
	// Same base title but disagreeing parts: not exact tier, fuzzy score
	// halved from 1.0 to 0.5 which still clears the floor.
	index := EpisodeIndex{1: {{Number: 7, Title: "Showdown, Pt. 1"}}}
	result := MatchEpisode(index, 1, "Showdown, Pt. 2", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected penalized fuzzy match")
	}
	if result.Method != MethodFuzzy || result.Confidence != 0.5 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMatchAcrossSeasonsAcceptsHintedFirst(t *testing.T) {
	index := EpisodeIndex{
		1: {{Number: 1, Title: "Homecoming"}},
		2: {{Number: 4, Title: "Homecoming"}},
	}
	result := MatchAcrossSeasons(index, 2, "Homecoming", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected match")
	}
	if result.Season != 2 || result.Method != MethodExact {
		t.Fatalf("hinted season must win: %+v", result)
	}
}

func TestMatchAcrossSeasonsScansAscending(t *testing.T) {
	index := EpisodeIndex{
		1: {{Number: 1, Title: "Unrelated"}},
		3: {{Number: 2, Title: "The Lost Tape"}},
		5: {{Number: 9, Title: "The Lost Tape"}},
	}
	result := MatchAcrossSeasons(index, 1, "The Lost Tape", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected cross-season match")
	}
	if result.Season != 3 || result.Episode != 2 || result.Method != MethodCrossSeason {
		t.Fatalf("expected first highest-confidence season in ascending order: %+v", result)
	}
}

func TestMatchAcrossSeasonsNeverReturnsLowConfidenceFromOtherSeasons(t *testing.T) {
	// The hinted season has nothing; another season only reaches a
	// sub-threshold fuzzy score. That must not surface as a cross-season
	// match.
	index := EpisodeIndex{
		2: {{Number: 1, Title: "The Long Road Home Again Tonight"}},
	}
	result := MatchAcrossSeasons(index, 1, "The Long Road", 0, 0, "Some Show")
	if result != nil && result.Method == MethodCrossSeason && result.Confidence < AutoAcceptConfidence {
		t.Fatalf("cross-season result below threshold: %+v", result)
	}
}

func TestMatchAcrossSeasonsPassesThroughHintedCandidate(t *testing.T) {
	// Only the hinted season produces a (low) candidate; it is surfaced as a
	// last resort for interactive routing.
	index := EpisodeIndex{
		1: {{Number: 3, Title: "Road Trip Adventure"}},
	}
	result := MatchAcrossSeasons(index, 1, "Road Trip Night", 0, 0, "Some Show")
	if result == nil {
		t.Fatal("expected hinted-season passthrough")
	}
	if result.Season != 1 || result.Confidence >= AutoAcceptConfidence {
		t.Fatalf("expected low-confidence hinted candidate: %+v", result)
	}
}
