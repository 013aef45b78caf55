package domain

import "strings"

// Kind identifies which grammar a file title matched.
type Kind string

const (
	// KindGraph is a range-form title ("<indicator>, <start> to <end>, <ISO3>.svg").
	KindGraph Kind = "graph"
	// KindMap is a single-locator title whose region is a country.
	KindMap Kind = "map"
	// KindContinentMap is a single-locator title whose region is a continent.
	KindContinentMap Kind = "continent_map"
	// KindUnmatched is a title that matched neither grammar.
	KindUnmatched Kind = "unmatched"
)

// Classification is the typed result of parsing one file title.
// Fields beyond Kind, Title and FilePage are populated per kind:
// graphs carry ISO3 and the year range, maps carry Region, Year and an
// ISO3 that is empty when the region could not be resolved, continent
// maps carry Continent and Year.
type Classification struct {
	Kind      Kind
	Title     string
	FilePage  string
	Indicator string
	ISO3      string
	Region    string
	Continent string
	StartYear int
	EndYear   int
	Year      int
}

// commonsFileBase is the page URL prefix for files on Commons.
const commonsFileBase = "https://commons.wikimedia.org/wiki/"

// FilePageURL builds the Commons page URL for a file title.
func FilePageURL(title string) string {
	return commonsFileBase + strings.ReplaceAll(title, " ", "_")
}
