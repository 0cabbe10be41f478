package textutil

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The One With the Embryos", "the one with the embryos"},
		{"Hero's  Journey!", "heros journey"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.in); got != tc.want {
			t.Fatalf("NormalizeTitle(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeBaseTitle(t *testing.T) {
	if got := NormalizeBaseTitle("Finale, Pt. 2"); got != "finale" {
		t.Fatalf("NormalizeBaseTitle=%q want %q", got, "finale")
	}
}

func TestCleanEpisodeTitleStripsSeasonEpisodePrefix(t *testing.T) {
	got := CleanEpisodeTitle("Two and a Half Men: Season 1 Episode 3: Go East on Sunset", "Two and a Half Men")
	if got.Title != "Go East on Sunset" || got.IsGeneric || got.IsPilot {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestCleanEpisodeTitleStripsSeriesDashPrefix(t *testing.T) {
	got := CleanEpisodeTitle("Two and a Half Men - Pilot", "Two and a Half Men")
	if got.Title != "Pilot" || !got.IsPilot {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestCleanEpisodeTitleKeepsLegitimateDashes(t *testing.T) {
	got := CleanEpisodeTitle("Goodbye - Hello", "Completely Different Show")
	if got.Title != "Goodbye - Hello" {
		t.Fatalf("dash title should survive, got %+v", got)
	}
}

func TestCleanEpisodeTitleFlagsGeneric(t *testing.T) {
	got := CleanEpisodeTitle("Episode 3", "Some Show")
	if !got.IsGeneric {
		t.Fatalf("expected generic flag, got %+v", got)
	}
	got = CleanEpisodeTitle("", "Some Show")
	if !got.IsGeneric {
		t.Fatalf("empty title should be generic, got %+v", got)
	}
}

func TestCleanEpisodeTitleDetectsPilot(t *testing.T) {
	for _, in := range []string{"Pilot", "(Pilot)", "pilot"} {
		got := CleanEpisodeTitle(in, "Some Show")
		if !got.IsPilot || got.Title != "Pilot" {
			t.Fatalf("CleanEpisodeTitle(%q)=%+v want pilot", in, got)
		}
	}
}

func TestIsTitlePrefix(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"The One", "The One With the Embryos", true},
		{"The One With the Embryos", "The One", false},
		{"Unbrea Kimmy", "Unbreakable Kimmy Schmidt", true},
		{"of it", "off iteration", false}, // short tokens must match exactly
		{"totally", "different", false},
		{"", "anything", false},
	}
	for _, tc := range cases {
		if got := IsTitlePrefix(tc.a, tc.b); got != tc.want {
			t.Fatalf("IsTitlePrefix(%q,%q)=%v want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
