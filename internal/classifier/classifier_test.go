package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrIbrahem/OWID-categories/internal/classifier"
	"github.com/MrIbrahem/OWID-categories/internal/countries"
	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
)

func newClassifier() *classifier.Classifier {
	return classifier.New(classifier.LookupFunc(countries.ISO3ForCountry), logger.NewNoop())
}

func TestClassify_Graph(t *testing.T) {
	c := newClassifier()

	result := c.Classify("Agriculture share gdp, 1997 to 2021, CAN.svg")
	require.Equal(t, domain.KindGraph, result.Kind)
	assert.Equal(t, "CAN", result.ISO3)
	assert.Equal(t, "Agriculture share gdp", result.Indicator)
	assert.Equal(t, 1997, result.StartYear)
	assert.Equal(t, 2021, result.EndYear)
	assert.Equal(t,
		"https://commons.wikimedia.org/wiki/Agriculture_share_gdp,_1997_to_2021,_CAN.svg",
		result.FilePage)
}

func TestClassify_GraphLowercaseCodeUppercased(t *testing.T) {
	c := newClassifier()

	result := c.Classify("Some indicator, 2000 to 2010, can.svg")
	require.Equal(t, domain.KindGraph, result.Kind)
	assert.Equal(t, "CAN", result.ISO3)
}

func TestClassify_GraphMalformedCodeUnmatched(t *testing.T) {
	c := newClassifier()

	// Codes that are not exactly three letters do not create countries.
	for _, title := range []string{
		"Some indicator, 2000 to 2010, CANADA.svg",
		"Some indicator, 2000 to 2010, C1N.svg",
		"Some indicator, 2000 to 2010, CA.svg",
	} {
		result := c.Classify(title)
		assert.Equal(t, domain.KindUnmatched, result.Kind, title)
		assert.Equal(t, title, result.Title)
	}
}

func TestClassify_GraphWithFilePrefix(t *testing.T) {
	c := newClassifier()

	result := c.Classify("File:Agriculture share gdp, 1997 to 2021, CAN.svg")
	require.Equal(t, domain.KindGraph, result.Kind)
	assert.Equal(t, "Agriculture share gdp", result.Indicator)
}

func TestClassify_ContinentMap(t *testing.T) {
	c := newClassifier()

	result := c.Classify("Some indicator, Africa, 2015.svg")
	require.Equal(t, domain.KindContinentMap, result.Kind)
	assert.Equal(t, "Africa", result.Continent)
	assert.Equal(t, "Some indicator", result.Indicator)
	assert.Equal(t, 2015, result.Year)
}

func TestClassify_AllContinentNames(t *testing.T) {
	c := newClassifier()

	for _, continent := range []string{
		"Africa", "Antarctica", "Asia", "Europe",
		"North America", "South America", "Oceania", "Americas", "World",
	} {
		result := c.Classify("Indicator, " + continent + ", 2020.svg")
		assert.Equal(t, domain.KindContinentMap, result.Kind, continent)
		assert.Equal(t, continent, result.Continent)
	}
}

func TestClassify_CountryMap(t *testing.T) {
	c := newClassifier()

	result := c.Classify("Life expectancy, Canada, 1990.svg")
	require.Equal(t, domain.KindMap, result.Kind)
	assert.Equal(t, "CAN", result.ISO3)
	assert.Equal(t, "Canada", result.Region)
	assert.Equal(t, "Life expectancy", result.Indicator)
	assert.Equal(t, 1990, result.Year)
}

func TestClassify_MapRegionWithParentheses(t *testing.T) {
	c := newClassifier()

	result := c.Classify("Population growth, Micronesia (country), 2005.svg")
	require.Equal(t, domain.KindMap, result.Kind)
	assert.Equal(t, "FSM", result.ISO3)
	assert.Equal(t, "Micronesia (country)", result.Region)
}

func TestClassify_MapRegionWithHyphen(t *testing.T) {
	c := newClassifier()

	result := c.Classify("Child mortality, Guinea-Bissau, 2019.svg")
	require.Equal(t, domain.KindMap, result.Kind)
	assert.Equal(t, "GNB", result.ISO3)
}

func TestClassify_MapUnresolvedRegion(t *testing.T) {
	c := newClassifier()

	result := c.Classify("Some indicator, Atlantis, 2015.svg")
	require.Equal(t, domain.KindMap, result.Kind)
	assert.Empty(t, result.ISO3)
	assert.Equal(t, "Atlantis", result.Region)
}

func TestClassify_Unmatched(t *testing.T) {
	c := newClassifier()

	for _, title := range []string{
		"Some other file.png",
		"No commas here.svg",
		"Indicator, lowercase region, 2015.svg",
		"",
	} {
		result := c.Classify(title)
		assert.Equal(t, domain.KindUnmatched, result.Kind, title)
		assert.Equal(t, title, result.Title)
	}
}

func TestClassify_RangeTriedBeforeSingleLocator(t *testing.T) {
	c := newClassifier()

	// A range-form title whose indicator contains the word "to" must
	// still classify as a graph.
	result := c.Classify("Access to electricity, 1990 to 2020, KEN.svg")
	require.Equal(t, domain.KindGraph, result.Kind)
	assert.Equal(t, "Access to electricity", result.Indicator)
	assert.Equal(t, "KEN", result.ISO3)
}

func TestClassify_IndicatorIsFirstSegment(t *testing.T) {
	c := newClassifier()

	// Extra commas in the middle: the trailing pattern still anchors at
	// the end and the indicator is the first comma-delimited segment.
	result := c.Classify("Deaths, all causes, Canada, 2001.svg")
	require.Equal(t, domain.KindMap, result.Kind)
	assert.Equal(t, "Deaths", result.Indicator)
	assert.Equal(t, 2001, result.Year)
}

func TestClassify_YearsRoundTrip(t *testing.T) {
	c := newClassifier()

	// end < start is not rejected; both years parse exactly as written.
	result := c.Classify("Indicator, 2020 to 1990, FRA.svg")
	require.Equal(t, domain.KindGraph, result.Kind)
	assert.Equal(t, 2020, result.StartYear)
	assert.Equal(t, 1990, result.EndYear)
}
