package storage_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
	"github.com/MrIbrahem/OWID-categories/internal/storage"
)

func sampleCountries() map[string]*domain.CountryRecord {
	can := domain.NewCountryRecord("CAN", "Canada")
	can.Graphs = append(can.Graphs, domain.GraphEntry{
		Title: "Agriculture share gdp, 1997 to 2021, CAN.svg",
		Indicator: "Agriculture share gdp", StartYear: 1997, EndYear: 2021,
	})
	deu := domain.NewCountryRecord("DEU", "Germany")
	deu.Maps = append(deu.Maps, domain.MapEntry{
		Title: "Life expectancy, Germany, 1990.svg", Year: 1990, Region: "Germany",
	})
	return map[string]*domain.CountryRecord{"CAN": can, "DEU": deu}
}

func sampleContinents() map[string]*domain.ContinentRecord {
	na := domain.NewContinentRecord("North America")
	na.Maps = append(na.Maps, domain.ContinentMapEntry{
		Title: "Some indicator, North America, 2015.svg", Year: 2015,
	})
	return map[string]*domain.ContinentRecord{"North America": na}
}

func TestWriteAndLoadCountries(t *testing.T) {
	store := storage.New(t.TempDir(), logger.NewNoop())
	require.NoError(t, store.WriteCountries(sampleCountries()))

	paths, err := store.ListCountryFiles()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "CAN.json", filepath.Base(paths[0]))
	assert.Equal(t, "DEU.json", filepath.Base(paths[1]))

	record, err := store.LoadCountry(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "CAN", record.ISO3)
	assert.Equal(t, "Canada", record.Country)
	require.Len(t, record.Graphs, 1)
	assert.Equal(t, 1997, record.Graphs[0].StartYear)
	assert.NotNil(t, record.Unknowns)
}

func TestWriteContinents_UnderscoresInFileName(t *testing.T) {
	store := storage.New(t.TempDir(), logger.NewNoop())
	require.NoError(t, store.WriteContinents(sampleContinents()))

	paths, err := store.ListContinentFiles()
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "North_America.json", filepath.Base(paths[0]))

	record, err := store.LoadContinent(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "North America", record.Continent)
	assert.Len(t, record.Maps, 1)
}

func TestWriteSummary_SortedByKey(t *testing.T) {
	dir := t.TempDir()
	store := storage.New(dir, logger.NewNoop())
	require.NoError(t, store.WriteSummary("run-1", sampleCountries(), sampleContinents()))

	data, err := os.ReadFile(filepath.Join(dir, "owid_summary.json"))
	require.NoError(t, err)

	var summary storage.Summary
	require.NoError(t, json.Unmarshal(data, &summary))

	assert.Equal(t, "run-1", summary.RunID)
	require.Len(t, summary.Countries, 2)
	assert.Equal(t, "CAN", summary.Countries[0].ISO3)
	assert.Equal(t, 1, summary.Countries[0].GraphCount)
	assert.Equal(t, "DEU", summary.Countries[1].ISO3)
	assert.Equal(t, 1, summary.Countries[1].MapCount)
	require.Len(t, summary.Continents, 1)
	assert.Equal(t, "North America", summary.Continents[0].Continent)
}

func TestWriteNotMatched(t *testing.T) {
	dir := t.TempDir()
	store := storage.New(dir, logger.NewNoop())

	require.NoError(t, store.WriteNotMatched([]string{"a.png", "b.png"}))
	data, err := os.ReadFile(filepath.Join(dir, "not_matched_files.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a.png\nb.png\n", string(data))
}

func TestWriteNotMatched_EmptyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	store := storage.New(dir, logger.NewNoop())

	require.NoError(t, store.WriteNotMatched(nil))
	_, err := os.Stat(filepath.Join(dir, "not_matched_files.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteNotMatched_EmptyRemovesStaleFile(t *testing.T) {
	dir := t.TempDir()
	store := storage.New(dir, logger.NewNoop())

	// A previous run left unmatched titles behind; a clean run must not
	// leave them looking current.
	require.NoError(t, store.WriteNotMatched([]string{"old.png"}))
	require.NoError(t, store.WriteNotMatched(nil))

	_, err := os.Stat(filepath.Join(dir, "not_matched_files.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadCountry_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := storage.New(dir, logger.NewNoop())

	path := filepath.Join(dir, "BAD.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.LoadCountry(path)
	assert.Error(t, err)
}
