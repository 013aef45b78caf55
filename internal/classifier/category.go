package classifier

// EntityKind distinguishes country entities from continent entities
// when building category names.
type EntityKind string

const (
	// EntityCountry applies country-name normalization.
	EntityCountry EntityKind = "country"
	// EntityContinent passes the entity name through unchanged.
	EntityContinent EntityKind = "continent"
)

// FilesType selects which family of categories to build.
type FilesType string

const (
	// FilesGraphs selects "... graphs of ..." categories.
	FilesGraphs FilesType = "graphs"
	// FilesMaps selects "... maps of ..." categories.
	FilesMaps FilesType = "maps"
)

// Parent categories, used as the category link inside a freshly created
// category page.
const (
	parentByCountry   = "Our World in Data graphs by country"
	parentByContinent = "Our World in Data graphs by continent"
)

// predefinedCategories is the whole-name override table, checked before
// any normalization.
var predefinedCategories = map[FilesType]map[string]string{
	FilesGraphs: {
		"World": "Category:Our World in Data graphs of the world",
	},
	FilesMaps: {
		"World": "Category:Our World in Data maps of the world",
	},
}

// countriesWithThe lists country names that take a "the" article in
// running English text. The list is frozen; "Vatican" covers the
// variant name used in OWID country codes alongside "Vatican City".
var countriesWithThe = map[string]struct{}{
	"Democratic Republic of Congo": {},
	"Dominican Republic":           {},
	"Philippines":                  {},
	"Netherlands":                  {},
	"United Arab Emirates":         {},
	"United Kingdom":               {},
	"United States":                {},
	"Czech Republic":               {},
	"Central African Republic":     {},
	"Maldives":                     {},
	"Seychelles":                   {},
	"Bahamas":                      {},
	"Marshall Islands":             {},
	"Solomon Islands":              {},
	"Comoros":                      {},
	"Gambia":                       {},
	"Vatican City":                 {},
	"Vatican":                      {},
}

// NormalizeCountryName prefixes "the " where proper English usage
// requires it; all other names pass through unchanged.
func NormalizeCountryName(country string) string {
	if _, ok := countriesWithThe[country]; ok {
		return "the " + country
	}
	return country
}

// BuildCategoryName builds the category for an entity, e.g.
// "Category:Our World in Data graphs of the United Kingdom". An
// unrecognized files type falls back to graphs.
func BuildCategoryName(entity string, kind EntityKind, files FilesType) string {
	if _, ok := predefinedCategories[files]; !ok {
		files = FilesGraphs
	}
	if predefined, ok := predefinedCategories[files][entity]; ok {
		return predefined
	}

	name := entity
	if kind == EntityCountry {
		name = NormalizeCountryName(entity)
	}

	return "Category:Our World in Data " + string(files) + " of " + name
}

// ParentCategory returns the parent category an entity's category page
// is filed under.
func ParentCategory(kind EntityKind) string {
	if kind == EntityContinent {
		return parentByContinent
	}
	return parentByCountry
}
