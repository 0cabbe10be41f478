package notes

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rewatch/internal/logging"
	"rewatch/internal/textutil"
)

// Note is the content of one watch note.
type Note struct {
	Series       string
	Season       int
	Episode      int
	EpisodeTitle string
	WatchedOn    string // YYYY-MM-DD
	Source       string
}

// frontmatter is the YAML block at the top of each note file.
type frontmatter struct {
	Type      string `yaml:"type"`
	Series    string `yaml:"series"`
	Season    int    `yaml:"season"`
	Episode   int    `yaml:"episode"`
	Title     string `yaml:"title,omitempty"`
	WatchedOn string `yaml:"watched"`
	Source    string `yaml:"source,omitempty"`
}

// Store writes notes under a single directory, one file per series.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a note store rooted at dir.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("notes directory required")
	}
	return &Store{dir: dir, logger: logging.NewComponentLogger(logger, "notes")}, nil
}

// Write creates the note file for one watch event. created is false when a
// note for the same episode and date already exists; the existing file is
// left untouched.
func (s *Store) Write(note Note) (path string, created bool, err error) {
	if note.Series == "" {
		return "", false, errors.New("note requires a series")
	}
	if note.WatchedOn == "" {
		return "", false, errors.New("note requires a watch date")
	}

	seriesDir := filepath.Join(s.dir, textutil.SanitizeFileName(note.Series))
	if err := os.MkdirAll(seriesDir, 0o755); err != nil {
		return "", false, fmt.Errorf("ensure notes directory: %w", err)
	}
	path = filepath.Join(seriesDir, s.fileName(note))

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("check note: %w", err)
	}

	content, err := render(note)
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", false, fmt.Errorf("write note: %w", err)
	}
	s.logger.Debug("wrote note",
		logging.String(logging.FieldSeries, note.Series),
		logging.String("path", path))
	return path, true, nil
}

func (s *Store) fileName(note Note) string {
	name := fmt.Sprintf("s%02de%02d", note.Season, note.Episode)
	if note.EpisodeTitle != "" {
		name += " - " + textutil.SanitizeFileName(note.EpisodeTitle)
	}
	return fmt.Sprintf("%s - %s.md", name, note.WatchedOn)
}

func render(note Note) ([]byte, error) {
	meta := frontmatter{
		Type:      "watch",
		Series:    note.Series,
		Season:    note.Season,
		Episode:   note.Episode,
		Title:     note.EpisodeTitle,
		WatchedOn: note.WatchedOn,
		Source:    note.Source,
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close frontmatter: %w", err)
	}
	buf.WriteString("---\n\n")
	heading := note.EpisodeTitle
	if heading == "" {
		heading = fmt.Sprintf("Episode %d", note.Episode)
	}
	fmt.Fprintf(&buf, "# %s s%02de%02d: %s\n", note.Series, note.Season, note.Episode, heading)
	return buf.Bytes(), nil
}
