package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HasWatch reports whether a watch event with the dedupe key already exists.
func (s *Store) HasWatch(ctx context.Context, dedupeKey string) (bool, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM watch_events WHERE dedupe_key = ?", dedupeKey).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check watch event: %w", err)
	}
	return count > 0, nil
}

// RecordWatch inserts a watch event. When the dedupe key already exists the
// insert is skipped and existed is true.
func (s *Store) RecordWatch(ctx context.Context, event WatchEvent) (existed bool, err error) {
	ctx = ensureContext(ctx)
	if event.SeriesID == "" {
		return false, errors.New("watch event requires a series id")
	}
	if event.DedupeKey == "" {
		return false, errors.New("watch event requires a dedupe key")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_, err = s.execWithRetry(ctx,
		"INSERT OR IGNORE INTO watch_events "+
			"(id, series_id, season, episode, raw_title, watched_on, source, method, confidence, dedupe_key, created_at) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		event.ID, event.SeriesID, event.Season, event.Episode, event.RawTitle,
		event.WatchedOn, event.Source, event.Method, event.Confidence, event.DedupeKey,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("record watch event: %w", err)
	}
	var storedID string
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM watch_events WHERE dedupe_key = ?", event.DedupeKey).Scan(&storedID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, errors.New("watch event vanished after insert")
	}
	if err != nil {
		return false, fmt.Errorf("confirm watch event: %w", err)
	}
	return storedID != event.ID, nil
}

// RecentWatches returns the newest watch events joined with their series
// names, newest first.
func (s *Store) RecentWatches(ctx context.Context, limit int) ([]WatchEvent, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT w.id, w.series_id, s.name, w.season, w.episode, w.raw_title, w.watched_on, w.source, w.method, w.confidence, w.dedupe_key "+
			"FROM watch_events w JOIN series s ON s.id = w.series_id "+
			"ORDER BY w.created_at DESC, w.id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list watch events: %w", err)
	}
	defer rows.Close()

	var events []WatchEvent
	for rows.Next() {
		var event WatchEvent
		if err := rows.Scan(&event.ID, &event.SeriesID, &event.SeriesName, &event.Season, &event.Episode,
			&event.RawTitle, &event.WatchedOn, &event.Source, &event.Method, &event.Confidence, &event.DedupeKey); err != nil {
			return nil, fmt.Errorf("scan watch event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// WatchCountBySeries returns the number of watch events per series name.
func (s *Store) WatchCountBySeries(ctx context.Context) (map[string]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT s.name, COUNT(1) FROM watch_events w JOIN series s ON s.id = w.series_id GROUP BY s.name")
	if err != nil {
		return nil, fmt.Errorf("count watch events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan watch count: %w", err)
		}
		counts[name] = count
	}
	return counts, rows.Err()
}
