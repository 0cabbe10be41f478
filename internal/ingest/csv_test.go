package ingest

import (
	"strings"
	"testing"
)

var testDateFormats = []string{"1/2/06", "2006-01-02"}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		`Title,Date`,
		`"Two and a Half Men: Season 1: Pilot","1/2/24"`,
		`"The Wire: Season 2: Collateral Damage","2024-01-03"`,
		`"Some Movie","1/4/24"`,
	}, "\n")

	items, err := ReadCSV(strings.NewReader(input), CSVOptions{
		DateFormats: testDateFormats,
		Source:      "netflix",
	})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	first := items[0]
	if first.SeriesName != "Two and a Half Men" || first.SeasonHint != 1 || first.EpisodeTitle != "Pilot" {
		t.Fatalf("unexpected first item: %+v", first)
	}
	if first.WatchedOn != "2024-01-02" || first.Source != "netflix" {
		t.Fatalf("unexpected first item date/source: %+v", first)
	}
	if first.MediaType != MediaTypeSeries {
		t.Fatalf("episode row must be labeled series: %+v", first)
	}

	if items[1].WatchedOn != "2024-01-03" {
		t.Fatalf("iso date not accepted: %+v", items[1])
	}

	standalone := items[2]
	if standalone.SeriesName != "Some Movie" || standalone.EpisodeTitle != "" || standalone.SeasonHint != 0 {
		t.Fatalf("unexpected standalone item: %+v", standalone)
	}
	if standalone.MediaType != MediaTypeMovie {
		t.Fatalf("standalone row must be labeled movie: %+v", standalone)
	}
}

func TestReadCSVFixesAllCapsSeriesNames(t *testing.T) {
	input := "Title,Date\n\"THE OFFICE: Season 2: The Dundies\",\"1/2/24\"\n"
	items, err := ReadCSV(strings.NewReader(input), CSVOptions{
		DateFormats: testDateFormats,
		Source:      "netflix",
	})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(items) != 1 || items[0].SeriesName != "The Office" {
		t.Fatalf("all-caps export name not fixed: %+v", items)
	}
	if items[0].EpisodeTitle != "The Dundies" {
		t.Fatalf("episode title must keep its export casing: %+v", items[0])
	}
}

func TestReadCSVRejectsBadDate(t *testing.T) {
	input := "Title,Date\n\"Show: Season 1: Ep\",\"yesterday\"\n"
	if _, err := ReadCSV(strings.NewReader(input), CSVOptions{DateFormats: testDateFormats}); err == nil {
		t.Fatal("expected date parse error")
	}
}

func TestReadCSVSkipsEmptyTitles(t *testing.T) {
	input := "Title,Date\n\"\",\"1/2/24\"\n\"Show: Season 1: Ep\",\"1/2/24\"\n"
	items, err := ReadCSV(strings.NewReader(input), CSVOptions{DateFormats: testDateFormats})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected empty title dropped, got %+v", items)
	}
}

func TestParseExportTitle(t *testing.T) {
	tests := []struct {
		title   string
		series  string
		season  int
		episode string
	}{
		{"Show: Season 3: The Finale", "Show", 3, "The Finale"},
		{"Show: Part 2: Chapter Nine", "Show", 2, "Chapter Nine"},
		{"Show: Limited Series: Episode One", "Show", 1, "Episode One"},
		{"Show: The Finale", "Show", 0, "The Finale"},
		{"Show: Season 1: Title: With Colon", "Show", 1, "Title: With Colon"},
		{"Standalone Film", "Standalone Film", 0, ""},
	}
	for _, tt := range tests {
		series, season, episode := ParseExportTitle(tt.title)
		if series != tt.series || season != tt.season || episode != tt.episode {
			t.Errorf("ParseExportTitle(%q) = (%q, %d, %q), want (%q, %d, %q)",
				tt.title, series, season, episode, tt.series, tt.season, tt.episode)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("THE OFFICE"); got != "The Office" {
		t.Fatalf("DisplayName=%q", got)
	}
	if got := DisplayName("The Wire"); got != "The Wire" {
		t.Fatalf("mixed case must pass through, got %q", got)
	}
	if got := DisplayName("M*A*S*H"); got != "M*A*S*H" {
		t.Fatalf("DisplayName=%q", got)
	}
}
