package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// historyRow is one row of a viewing-activity CSV export.
type historyRow struct {
	Title string `csv:"Title"`
	Date  string `csv:"Date"`
}

// CSVOptions configures viewing-activity parsing.
type CSVOptions struct {
	// DateFormats are tried in order against each row's date column.
	DateFormats []string
	// Source labels the items, e.g. "netflix".
	Source string
}

// ReadCSV parses a viewing-activity export into raw items, newest rows first
// as exported. Rows whose date matches none of the formats are rejected; a
// malformed file is an error, not a partial result.
func ReadCSV(r io.Reader, opts CSVOptions) ([]Item, error) {
	if len(opts.DateFormats) == 0 {
		return nil, fmt.Errorf("no csv date formats configured")
	}
	rows := make([]historyRow, 0)
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse viewing history csv: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for i, row := range rows {
		title := strings.TrimSpace(row.Title)
		if title == "" {
			continue
		}
		watchedOn, err := parseDate(row.Date, opts.DateFormats)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		seriesName, seasonHint, episodeTitle := ParseExportTitle(title)
		// Standalone rows with no season or episode segment are films or
		// one-off specials the export lists under a bare title.
		mediaType := MediaTypeSeries
		if seasonHint == 0 && episodeTitle == "" {
			mediaType = MediaTypeMovie
		}
		items = append(items, Item{
			SeriesName:   DisplayName(seriesName),
			SeasonHint:   seasonHint,
			EpisodeTitle: episodeTitle,
			WatchedOn:    watchedOn,
			Source:       opts.Source,
			MediaType:    mediaType,
		})
	}
	return items, nil
}

func parseDate(raw string, formats []string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, format := range formats {
		if parsed, err := time.Parse(format, raw); err == nil {
			return parsed.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", raw)
}
