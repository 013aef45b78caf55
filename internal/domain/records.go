// Package domain defines the shared data model for classified Commons
// files and their per-country and per-continent aggregates.
package domain

// GraphEntry is a single range-form graph file belonging to a country.
type GraphEntry struct {
	Title     string `json:"title"`
	Indicator string `json:"indicator"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	FilePage  string `json:"file_page"`
}

// MapEntry is a single-year map file belonging to a country.
type MapEntry struct {
	Title     string `json:"title"`
	Indicator string `json:"indicator"`
	Year      int    `json:"year"`
	Region    string `json:"region"`
	FilePage  string `json:"file_page"`
}

// ContinentMapEntry is a single-year map file belonging to a continent.
type ContinentMapEntry struct {
	Title     string `json:"title"`
	Indicator string `json:"indicator"`
	Year      int    `json:"year"`
	FilePage  string `json:"file_page"`
}

// CountryRecord aggregates all classified files for one ISO3 code.
// Country is empty when the code is not present in the lookup table.
type CountryRecord struct {
	ISO3     string       `json:"iso3"`
	Country  string       `json:"country"`
	Graphs   []GraphEntry `json:"graphs"`
	Maps     []MapEntry   `json:"maps"`
	Unknowns []string     `json:"unknowns"`
}

// ContinentRecord aggregates all classified files for one continent.
type ContinentRecord struct {
	Continent string              `json:"continent"`
	Maps      []ContinentMapEntry `json:"maps"`
}

// NewCountryRecord creates an empty record for the given code and
// display name. Slices are initialized so the persisted JSON always
// carries every field.
func NewCountryRecord(iso3, country string) *CountryRecord {
	return &CountryRecord{
		ISO3:     iso3,
		Country:  country,
		Graphs:   []GraphEntry{},
		Maps:     []MapEntry{},
		Unknowns: []string{},
	}
}

// NewContinentRecord creates an empty record for the given continent.
func NewContinentRecord(continent string) *ContinentRecord {
	return &ContinentRecord{
		Continent: continent,
		Maps:      []ContinentMapEntry{},
	}
}
