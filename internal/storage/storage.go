// Package storage persists aggregation output as one JSON document per
// entity, plus a sorted summary and the not-matched title list.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
)

// File and directory names under the output directory.
const (
	countriesDirName   = "countries"
	continentsDirName  = "continents"
	summaryFileName    = "owid_summary.json"
	notMatchedFileName = "not_matched_files.txt"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store reads and writes entity files under one output directory.
type Store struct {
	outputDir string
	log       logger.Interface
}

// New creates a store rooted at outputDir.
func New(outputDir string, log logger.Interface) *Store {
	return &Store{outputDir: outputDir, log: log}
}

// CountriesDir is where per-country JSON files live.
func (s *Store) CountriesDir() string { return filepath.Join(s.outputDir, countriesDirName) }

// ContinentsDir is where per-continent JSON files live.
func (s *Store) ContinentsDir() string { return filepath.Join(s.outputDir, continentsDirName) }

// WriteCountries writes one {ISO3}.json per country.
func (s *Store) WriteCountries(countries map[string]*domain.CountryRecord) error {
	dir := s.CountriesDir()
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create countries dir: %w", err)
	}

	s.log.Info("writing country files", "count", len(countries), "dir", dir)
	for iso3, record := range countries {
		if err := writeJSON(filepath.Join(dir, iso3+".json"), record); err != nil {
			return err
		}
	}
	return nil
}

// WriteContinents writes one JSON file per continent, with spaces in
// the name replaced by underscores.
func (s *Store) WriteContinents(continents map[string]*domain.ContinentRecord) error {
	dir := s.ContinentsDir()
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create continents dir: %w", err)
	}

	s.log.Info("writing continent files", "count", len(continents), "dir", dir)
	for name, record := range continents {
		fileName := strings.ReplaceAll(name, " ", "_") + ".json"
		if err := writeJSON(filepath.Join(dir, fileName), record); err != nil {
			return err
		}
	}
	return nil
}

// CountrySummary is one country's entry in the summary document.
type CountrySummary struct {
	ISO3       string `json:"iso3"`
	Country    string `json:"country"`
	GraphCount int    `json:"graph_count"`
	MapCount   int    `json:"map_count"`
}

// ContinentSummary is one continent's entry in the summary document.
type ContinentSummary struct {
	Continent string `json:"continent"`
	MapCount  int    `json:"map_count"`
}

// Summary aggregates per-entity counts for one fetch run.
type Summary struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Countries   []CountrySummary   `json:"countries"`
	Continents  []ContinentSummary `json:"continents"`
}

// WriteSummary writes the summary document, entities sorted by key.
func (s *Store) WriteSummary(
	runID string,
	countries map[string]*domain.CountryRecord,
	continents map[string]*domain.ContinentRecord,
) error {
	if err := os.MkdirAll(s.outputDir, dirPerm); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	summary := Summary{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Countries:   []CountrySummary{},
		Continents:  []ContinentSummary{},
	}

	for _, iso3 := range sortedKeys(countries) {
		record := countries[iso3]
		summary.Countries = append(summary.Countries, CountrySummary{
			ISO3:       iso3,
			Country:    record.Country,
			GraphCount: len(record.Graphs),
			MapCount:   len(record.Maps),
		})
	}
	for _, name := range sortedKeys(continents) {
		summary.Continents = append(summary.Continents, ContinentSummary{
			Continent: name,
			MapCount:  len(continents[name].Maps),
		})
	}

	path := filepath.Join(s.outputDir, summaryFileName)
	s.log.Info("writing summary", "path", path)
	return writeJSON(path, summary)
}

// WriteNotMatched writes the unmatched title list, one per line. An
// empty list removes any file left over from a previous run so the
// output directory always reflects the latest run.
func (s *Store) WriteNotMatched(titles []string) error {
	path := filepath.Join(s.outputDir, notMatchedFileName)
	if len(titles) == 0 {
		s.log.Info("no unmatched files to write")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		return nil
	}
	if err := os.MkdirAll(s.outputDir, dirPerm); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	s.log.Info("writing unmatched titles", "count", len(titles), "path", path)

	content := strings.Join(titles, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ListCountryFiles returns the country JSON paths in sorted order.
func (s *Store) ListCountryFiles() ([]string, error) {
	return listJSONFiles(s.CountriesDir())
}

// ListContinentFiles returns the continent JSON paths in sorted order.
func (s *Store) ListContinentFiles() ([]string, error) {
	return listJSONFiles(s.ContinentsDir())
}

// LoadCountry parses one persisted country record.
func (s *Store) LoadCountry(path string) (*domain.CountryRecord, error) {
	var record domain.CountryRecord
	if err := readJSON(path, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// LoadContinent parses one persisted continent record.
func (s *Store) LoadContinent(path string) (*domain.ContinentRecord, error) {
	var record domain.ContinentRecord
	if err := readJSON(path, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
