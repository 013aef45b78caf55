// Package classifier turns OWID Commons file titles into typed
// classifications and builds the category names used to tag them.
//
// Two grammars exist. Range-form titles name a graph spanning a year
// range ("Agriculture share gdp, 1997 to 2021, CAN.svg"); single-locator
// titles name a map of one region in one year ("Life expectancy,
// Canada, 1990.svg"). The range grammar is tried first: it requires two
// numeric groups joined by the literal "to", so trying it first keeps
// titles containing the word "to" elsewhere unambiguous.
package classifier

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
)

// Lookup resolves country display names to ISO3 codes.
type Lookup interface {
	ISO3ForCountry(name string) (string, bool)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(name string) (string, bool)

// ISO3ForCountry calls the wrapped function.
func (f LookupFunc) ISO3ForCountry(name string) (string, bool) { return f(name) }

var (
	// graphPattern matches the trailing "<start> to <end>, <code>.svg"
	// segment of a range-form title.
	graphPattern = regexp.MustCompile(`,\s*(\d+)\s+to\s+(\d+),\s*(\w+)\.svg$`)

	// mapPattern matches the trailing "<Region>, <year>.svg" segment of
	// a single-locator title. The region starts with an uppercase letter
	// and may contain letters, spaces, parentheses and hyphens; the
	// hyphen sits last in the class so it is literal, not a range.
	mapPattern = regexp.MustCompile(`,\s*([A-Z][A-Za-z ()-]+),\s*(\d+)\.svg$`)

	// iso3Pattern validates the trailing code of a range-form title.
	// Malformed codes classify the title as unmatched rather than
	// minting a spurious country.
	iso3Pattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// continentNames is the fixed set of region names treated as
// continents rather than resolved through the country lookup.
var continentNames = map[string]struct{}{
	"Africa":        {},
	"Antarctica":    {},
	"Asia":          {},
	"Europe":        {},
	"North America": {},
	"South America": {},
	"Oceania":       {},
	"Americas":      {},
	"World":         {},
}

// filePrefix marks a title in the File namespace.
const filePrefix = "File:"

// Classifier parses file titles. It is stateless apart from its
// collaborators and safe for concurrent use.
type Classifier struct {
	lookup Lookup
	log    logger.Interface
}

// New creates a classifier backed by the given country lookup.
func New(lookup Lookup, log logger.Interface) *Classifier {
	return &Classifier{lookup: lookup, log: log}
}

// Classify parses one title. Grammars are tried in fixed order, range
// form first; a title matching neither comes back as KindUnmatched.
func (c *Classifier) Classify(title string) domain.Classification {
	if m := graphPattern.FindStringSubmatch(title); m != nil {
		return c.classifyGraph(title, m)
	}
	if m := mapPattern.FindStringSubmatch(title); m != nil {
		return c.classifyMap(title, m)
	}
	return domain.Classification{Kind: domain.KindUnmatched, Title: title}
}

func (c *Classifier) classifyGraph(title string, m []string) domain.Classification {
	code := m[3]
	if !iso3Pattern.MatchString(code) {
		c.log.Debug("range-form title with malformed code", "title", title, "code", code)
		return domain.Classification{Kind: domain.KindUnmatched, Title: title}
	}

	startYear, err1 := strconv.Atoi(m[1])
	endYear, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return domain.Classification{Kind: domain.KindUnmatched, Title: title}
	}

	return domain.Classification{
		Kind:      domain.KindGraph,
		Title:     title,
		FilePage:  domain.FilePageURL(title),
		Indicator: indicatorOf(title),
		ISO3:      strings.ToUpper(code),
		StartYear: startYear,
		EndYear:   endYear,
	}
}

func (c *Classifier) classifyMap(title string, m []string) domain.Classification {
	region := strings.TrimSpace(m[1])
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.Classification{Kind: domain.KindUnmatched, Title: title}
	}

	if _, ok := continentNames[region]; ok {
		return domain.Classification{
			Kind:      domain.KindContinentMap,
			Title:     title,
			FilePage:  domain.FilePageURL(title),
			Indicator: indicatorOf(title),
			Continent: region,
			Year:      year,
		}
	}

	// Unresolved regions still come back as maps with an empty ISO3;
	// the aggregator routes those to the not-matched list.
	iso3, ok := c.lookup.ISO3ForCountry(region)
	if !ok {
		c.log.Debug("could not resolve region", "title", title, "region", region)
		iso3 = ""
	}

	return domain.Classification{
		Kind:      domain.KindMap,
		Title:     title,
		FilePage:  domain.FilePageURL(title),
		Indicator: indicatorOf(title),
		ISO3:      iso3,
		Region:    region,
		Year:      year,
	}
}

// indicatorOf extracts the indicator: everything before the first comma
// once the File: prefix is stripped. A title without a comma is all
// indicator.
func indicatorOf(title string) string {
	base := strings.TrimPrefix(title, filePrefix)
	if i := strings.Index(base, ","); i != -1 {
		base = base[:i]
	}
	return strings.TrimSpace(base)
}
