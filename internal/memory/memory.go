package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"rewatch/internal/logging"
)

// Alias maps a raw platform series name to a canonical identity.
type Alias struct {
	CanonicalName string `json:"canonicalName"`
	CanonicalID   int64  `json:"canonicalId"`
}

// SkipEntry records why a raw series name must never be resolved.
type SkipEntry struct {
	Reason    string    `json:"reason"`
	SkippedAt time.Time `json:"skippedAt"`
}

// EpisodeMapping pins a raw episode key to a canonical season and episode.
type EpisodeMapping struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// document is the on-disk JSON shape.
type document struct {
	SeriesAliases         map[string]Alias                     `json:"seriesAliases"`
	SkippedSeries         map[string]SkipEntry                 `json:"skippedSeries"`
	ManualEpisodeMappings map[string]map[string]EpisodeMapping `json:"manualEpisodeMappings"`
	SkippedEpisodes       map[string][]string                  `json:"skippedEpisodes"`
}

func newDocument() document {
	return document{
		SeriesAliases:         make(map[string]Alias),
		SkippedSeries:         make(map[string]SkipEntry),
		ManualEpisodeMappings: make(map[string]map[string]EpisodeMapping),
		SkippedEpisodes:       make(map[string][]string),
	}
}

// Store is the durable decision memory. Safe for concurrent readers within a
// process; cross-process writes are serialized by a file lock.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
	doc    document
}

// Open loads the decision memory at path, creating an empty document when the
// file does not exist yet.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("memory path required")
	}
	s := &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "memory"),
		doc:    newDocument(),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read decision memory: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse decision memory %s: %w", path, err)
	}
	if doc.SeriesAliases == nil {
		doc.SeriesAliases = make(map[string]Alias)
	}
	if doc.SkippedSeries == nil {
		doc.SkippedSeries = make(map[string]SkipEntry)
	}
	if doc.ManualEpisodeMappings == nil {
		doc.ManualEpisodeMappings = make(map[string]map[string]EpisodeMapping)
	}
	if doc.SkippedEpisodes == nil {
		doc.SkippedEpisodes = make(map[string][]string)
	}
	s.doc = doc
	s.logger.Debug("loaded decision memory",
		logging.String("path", path),
		logging.Int("aliases", len(doc.SeriesAliases)),
		logging.Int("skipped_series", len(doc.SkippedSeries)))
	return s, nil
}

// save rewrites the whole document atomically. Callers hold s.mu.
func (s *Store) save() error {
	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock decision memory: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode decision memory: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure memory directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".decisions-*.json")
	if err != nil {
		return fmt.Errorf("create temp memory file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp memory file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp memory file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp memory file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace decision memory: %w", err)
	}
	return nil
}

// LookupAlias returns the canonical identity recorded for a raw series name.
func (s *Store) LookupAlias(rawName string) (Alias, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alias, ok := s.doc.SeriesAliases[strings.TrimSpace(rawName)]
	return alias, ok
}

// SaveAlias records rawName -> canonical. Saving an alias whose raw name
// case-insensitively equals the canonical name is a silent no-op.
func (s *Store) SaveAlias(rawName, canonicalName string, canonicalID int64) error {
	rawName = strings.TrimSpace(rawName)
	canonicalName = strings.TrimSpace(canonicalName)
	if rawName == "" || canonicalName == "" {
		return errors.New("alias requires raw and canonical names")
	}
	if strings.EqualFold(rawName, canonicalName) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SeriesAliases[rawName] = Alias{CanonicalName: canonicalName, CanonicalID: canonicalID}
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info("saved series alias",
		logging.String(logging.FieldRawName, rawName),
		logging.String(logging.FieldSeries, canonicalName))
	return nil
}

// RemoveAlias deletes an alias; the corrective path for a bad mapping.
func (s *Store) RemoveAlias(rawName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.SeriesAliases[rawName]; !ok {
		return fmt.Errorf("no alias for %q", rawName)
	}
	delete(s.doc.SeriesAliases, rawName)
	return s.save()
}

// Aliases returns a snapshot of all aliases sorted by raw name.
func (s *Store) Aliases() []AliasEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]AliasEntry, 0, len(s.doc.SeriesAliases))
	for raw, alias := range s.doc.SeriesAliases {
		entries = append(entries, AliasEntry{RawName: raw, Alias: alias})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RawName < entries[j].RawName })
	return entries
}

// AliasEntry pairs a raw name with its alias for listings.
type AliasEntry struct {
	RawName string
	Alias   Alias
}

// IsSkipped reports whether a raw series name was marked never-resolve.
func (s *Store) IsSkipped(rawName string) (SkipEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.doc.SkippedSeries[strings.TrimSpace(rawName)]
	return entry, ok
}

// MarkSkipped records a raw series name as never-resolve.
func (s *Store) MarkSkipped(rawName, reason string) error {
	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return errors.New("skip requires a raw name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SkippedSeries[rawName] = SkipEntry{Reason: reason, SkippedAt: time.Now().UTC()}
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info("marked series skipped",
		logging.String(logging.FieldRawName, rawName),
		logging.String("reason", reason))
	return nil
}

// RemoveSkipped deletes a series skip entry.
func (s *Store) RemoveSkipped(rawName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.SkippedSeries[rawName]; !ok {
		return fmt.Errorf("no skip entry for %q", rawName)
	}
	delete(s.doc.SkippedSeries, rawName)
	return s.save()
}

// SkippedSeries returns a snapshot of skip entries sorted by raw name.
func (s *Store) SkippedSeries() []SkipListEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]SkipListEntry, 0, len(s.doc.SkippedSeries))
	for raw, entry := range s.doc.SkippedSeries {
		entries = append(entries, SkipListEntry{RawName: raw, Entry: entry})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RawName < entries[j].RawName })
	return entries
}

// SkipListEntry pairs a raw name with its skip entry for listings.
type SkipListEntry struct {
	RawName string
	Entry   SkipEntry
}

// LookupManualEpisode returns a previously recorded manual mapping.
func (s *Store) LookupManualEpisode(seriesName, rawKey string) (EpisodeMapping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mappings, ok := s.doc.ManualEpisodeMappings[seriesName]
	if !ok {
		return EpisodeMapping{}, false
	}
	mapping, ok := mappings[rawKey]
	return mapping, ok
}

// SaveManualEpisode records a human episode pick for a raw episode key.
func (s *Store) SaveManualEpisode(seriesName, rawKey string, mapping EpisodeMapping) error {
	if seriesName == "" || rawKey == "" {
		return errors.New("manual episode mapping requires series and key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.ManualEpisodeMappings[seriesName] == nil {
		s.doc.ManualEpisodeMappings[seriesName] = make(map[string]EpisodeMapping)
	}
	s.doc.ManualEpisodeMappings[seriesName][rawKey] = mapping
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info("saved manual episode mapping",
		logging.String(logging.FieldSeries, seriesName),
		logging.String(logging.FieldEpisodeKey, rawKey),
		logging.Int("season", mapping.Season),
		logging.Int("episode", mapping.Episode))
	return nil
}

// RemoveManualEpisode deletes one manual mapping.
func (s *Store) RemoveManualEpisode(seriesName, rawKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mappings := s.doc.ManualEpisodeMappings[seriesName]
	if _, ok := mappings[rawKey]; !ok {
		return fmt.Errorf("no manual mapping for %q / %q", seriesName, rawKey)
	}
	delete(mappings, rawKey)
	if len(mappings) == 0 {
		delete(s.doc.ManualEpisodeMappings, seriesName)
	}
	return s.save()
}

// ManualEpisodes returns the manual mappings for a series, sorted by raw key.
func (s *Store) ManualEpisodes(seriesName string) []ManualEpisodeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mappings := s.doc.ManualEpisodeMappings[seriesName]
	entries := make([]ManualEpisodeEntry, 0, len(mappings))
	for key, mapping := range mappings {
		entries = append(entries, ManualEpisodeEntry{RawKey: key, Mapping: mapping})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RawKey < entries[j].RawKey })
	return entries
}

// ManualEpisodeEntry pairs a raw episode key with its mapping for listings.
type ManualEpisodeEntry struct {
	RawKey  string
	Mapping EpisodeMapping
}

// IsEpisodeSkipped reports whether a raw episode key was skipped for a series.
func (s *Store) IsEpisodeSkipped(seriesName, rawKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, key := range s.doc.SkippedEpisodes[seriesName] {
		if key == rawKey {
			return true
		}
	}
	return false
}

// MarkEpisodeSkipped records a raw episode key as skipped for a series.
func (s *Store) MarkEpisodeSkipped(seriesName, rawKey string) error {
	if seriesName == "" || rawKey == "" {
		return errors.New("episode skip requires series and key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.doc.SkippedEpisodes[seriesName] {
		if key == rawKey {
			return nil
		}
	}
	s.doc.SkippedEpisodes[seriesName] = append(s.doc.SkippedEpisodes[seriesName], rawKey)
	sort.Strings(s.doc.SkippedEpisodes[seriesName])
	return s.save()
}
