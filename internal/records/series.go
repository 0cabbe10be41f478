package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rewatch/internal/logging"
)

// UpsertSeries inserts a series keyed by its normalized name, or refreshes
// the stored identity when the normalized name already exists. The returned
// value carries the store-assigned id.
func (s *Store) UpsertSeries(ctx context.Context, series Series) (Series, error) {
	ctx = ensureContext(ctx)
	if series.NormalizedName == "" {
		return Series{}, errors.New("series normalized name required")
	}
	existing, err := s.LookupSeries(ctx, series.NormalizedName)
	if err != nil {
		return Series{}, err
	}
	if existing != nil {
		series.ID = existing.ID
		_, err := s.execWithRetry(ctx,
			"UPDATE series SET catalog_id = ?, name = ?, first_air_year = ? WHERE id = ?",
			series.CatalogID, series.Name, series.FirstAirYear, series.ID)
		if err != nil {
			return Series{}, fmt.Errorf("update series: %w", err)
		}
		return series, nil
	}

	series.ID = uuid.NewString()
	_, err = s.execWithRetry(ctx,
		"INSERT INTO series (id, catalog_id, name, normalized_name, first_air_year, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		series.ID, series.CatalogID, series.Name, series.NormalizedName, series.FirstAirYear,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return Series{}, fmt.Errorf("insert series: %w", err)
	}
	s.logger.Debug("stored series",
		logging.String(logging.FieldSeries, series.Name),
		logging.Int64("catalog_id", series.CatalogID))
	return series, nil
}

// LookupSeries fetches the series with the exact normalized name, or nil when
// none exists.
func (s *Store) LookupSeries(ctx context.Context, normalizedName string) (*Series, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT id, catalog_id, name, normalized_name, first_air_year FROM series WHERE normalized_name = ?",
		normalizedName)
	var series Series
	err := row.Scan(&series.ID, &series.CatalogID, &series.Name, &series.NormalizedName, &series.FirstAirYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup series: %w", err)
	}
	return &series, nil
}

// SeriesByID fetches a series by its store id, or nil when none exists.
func (s *Store) SeriesByID(ctx context.Context, id string) (*Series, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT id, catalog_id, name, normalized_name, first_air_year FROM series WHERE id = ?", id)
	var series Series
	err := row.Scan(&series.ID, &series.CatalogID, &series.Name, &series.NormalizedName, &series.FirstAirYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup series by id: %w", err)
	}
	return &series, nil
}

// FuzzySearchSeries returns stored series whose normalized name contains, or
// is contained by, the query. Candidates for interactive confirmation, never
// auto-accepted.
func (s *Store) FuzzySearchSeries(ctx context.Context, normalizedName string) ([]Series, error) {
	ctx = ensureContext(ctx)
	if normalizedName == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, catalog_id, name, normalized_name, first_air_year FROM series "+
			"WHERE instr(normalized_name, ?) > 0 OR instr(?, normalized_name) > 0 "+
			"ORDER BY name",
		normalizedName, normalizedName)
	if err != nil {
		return nil, fmt.Errorf("fuzzy search series: %w", err)
	}
	defer rows.Close()

	var results []Series
	for rows.Next() {
		var series Series
		if err := rows.Scan(&series.ID, &series.CatalogID, &series.Name, &series.NormalizedName, &series.FirstAirYear); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		results = append(results, series)
	}
	return results, rows.Err()
}

// ListSeries returns every stored series ordered by name.
func (s *Store) ListSeries(ctx context.Context) ([]Series, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, catalog_id, name, normalized_name, first_air_year FROM series ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var results []Series
	for rows.Next() {
		var series Series
		if err := rows.Scan(&series.ID, &series.CatalogID, &series.Name, &series.NormalizedName, &series.FirstAirYear); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		results = append(results, series)
	}
	return results, rows.Err()
}

// ReplaceEpisodes swaps the full episode index for a series in one
// transaction.
func (s *Store) ReplaceEpisodes(ctx context.Context, seriesID string, episodes []Episode) error {
	ctx = ensureContext(ctx)
	if seriesID == "" {
		return errors.New("series id required")
	}
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin episode tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM episodes WHERE series_id = ?", seriesID); err != nil {
			return fmt.Errorf("clear episodes: %w", err)
		}
		for _, episode := range episodes {
			id := episode.ID
			if id == "" {
				id = uuid.NewString()
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO episodes (id, series_id, season, episode, title, air_date) VALUES (?, ?, ?, ?, ?, ?)",
				id, seriesID, episode.Season, episode.Episode, episode.Title, episode.AirDate)
			if err != nil {
				return fmt.Errorf("insert episode s%02de%02d: %w", episode.Season, episode.Episode, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit episodes: %w", err)
		}
		return nil
	})
}

// EpisodeIndex returns the stored episode index for a series, ordered by
// season then episode.
func (s *Store) EpisodeIndex(ctx context.Context, seriesID string) ([]Episode, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, season, episode, title, air_date FROM episodes WHERE series_id = ? ORDER BY season, episode",
		seriesID)
	if err != nil {
		return nil, fmt.Errorf("load episode index: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var episode Episode
		if err := rows.Scan(&episode.ID, &episode.Season, &episode.Episode, &episode.Title, &episode.AirDate); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, episode)
	}
	return episodes, rows.Err()
}
