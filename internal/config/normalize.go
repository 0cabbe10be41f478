package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeJellyfin()
	c.normalizeImport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.NotesDir) == "" {
		c.Paths.NotesDir = defaultNotesDir
	}
	if c.Paths.NotesDir, err = ExpandPath(c.Paths.NotesDir); err != nil {
		return fmt.Errorf("paths.notes_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	if key, ok := os.LookupEnv("TMDB_API_KEY"); ok && strings.TrimSpace(c.TMDB.APIKey) == "" {
		c.TMDB.APIKey = key
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

func (c *Config) normalizeJellyfin() {
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	c.Jellyfin.UserID = strings.TrimSpace(c.Jellyfin.UserID)
}

func (c *Config) normalizeImport() {
	c.Import.DefaultSource = strings.TrimSpace(c.Import.DefaultSource)
	if c.Import.DefaultSource == "" {
		c.Import.DefaultSource = defaultSource
	}
	if len(c.Import.CSVDateFormats) == 0 {
		c.Import.CSVDateFormats = append([]string{}, defaultCSVDateFormats...)
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
