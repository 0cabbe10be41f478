package textutil

import "testing"

func TestNormalizeSeriesNameStripsSeasonSuffixes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Show: Season 2", "Show"},
		{"Show (Season 2)", "Show"},
		{"Show S2", "Show"},
		{"Show - Season 2", "Show"},
		{"Show – Season 12", "Show"},
		{"Show Season 2", "Show"},
		{"Show", "Show"},
		{"CS2", "CS2"},
		{"The Office (Season 3)", "The Office"},
	}
	for _, tc := range cases {
		if got := NormalizeSeriesName(tc.in); got != tc.want {
			t.Fatalf("NormalizeSeriesName(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSeriesNameIdempotent(t *testing.T) {
	inputs := []string{
		"Show: Season 2",
		"Two and a Half Men: Season 1",
		"Breaking Bad S5",
		"Show – Season 2 Season 3",
		"  Padded  ",
	}
	for _, in := range inputs {
		once := NormalizeSeriesName(in)
		twice := NormalizeSeriesName(once)
		if once != twice {
			t.Fatalf("NormalizeSeriesName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeSeriesNameFoldsUnicodePunctuation(t *testing.T) {
	if got := NormalizeSeriesName("Grey’s Anatomy"); got != "Grey's Anatomy" {
		t.Fatalf("expected ASCII apostrophe, got %q", got)
	}
	if got := NormalizeSeriesName("Show — Season 4"); got != "Show" {
		t.Fatalf("expected em dash handled, got %q", got)
	}
}

func TestHasAlphanumeric(t *testing.T) {
	if HasAlphanumeric("***") {
		t.Fatal("punctuation-only name should not count as alphanumeric")
	}
	if !HasAlphanumeric("S4C") {
		t.Fatal("expected letters to count")
	}
	if HasAlphanumeric("") {
		t.Fatal("empty string should not count")
	}
}

func TestStripFillerWords(t *testing.T) {
	if got := StripFillerWords("Classic Doctor Who"); got != "Doctor Who" {
		t.Fatalf("StripFillerWords=%q want %q", got, "Doctor Who")
	}
	if got := StripFillerWords("Doctor Who"); got != "Doctor Who" {
		t.Fatalf("expected no-op, got %q", got)
	}
}
