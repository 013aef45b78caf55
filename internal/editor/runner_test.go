package editor_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/editor"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
)

// fakeSite implements wiki.Site in memory.
type fakeSite struct {
	pages        map[string]string // title -> wikitext, presence means the page exists
	memberCounts map[string]int
	saves        []savedEdit
}

type savedEdit struct {
	title   string
	text    string
	summary string
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		pages:        make(map[string]string),
		memberCounts: make(map[string]int),
	}
}

func (f *fakeSite) PageExists(_ context.Context, title string) (bool, error) {
	_, ok := f.pages[title]
	return ok, nil
}

func (f *fakeSite) GetPageText(_ context.Context, title string) (string, bool, error) {
	text, ok := f.pages[title]
	return text, ok, nil
}

func (f *fakeSite) SavePage(_ context.Context, title, text, summary string) error {
	f.pages[title] = text
	f.saves = append(f.saves, savedEdit{title: title, text: text, summary: summary})
	return nil
}

func (f *fakeSite) CategoryMemberCount(_ context.Context, category string) (int, error) {
	return f.memberCounts[category], nil
}

func newRunner(site *fakeSite, opts editor.Options) *editor.Runner {
	return editor.NewRunner(site, logger.NewNoop(), time.Millisecond, opts)
}

func africaRecord() *domain.ContinentRecord {
	return &domain.ContinentRecord{
		Continent: "Africa",
		Maps: []domain.ContinentMapEntry{
			{Title: "Some indicator, Africa, 2015.svg", Year: 2015},
			{Title: "Another indicator, Africa, 2016.svg", Year: 2016},
		},
	}
}

const africaCategory = "Category:Our World in Data graphs of Africa"

func TestProcessContinent_TagsPagesAndBootstrapsCategory(t *testing.T) {
	site := newFakeSite()
	site.pages["Some indicator, Africa, 2015.svg"] = "A description."
	site.pages["Another indicator, Africa, 2016.svg"] = "Another description."

	stats, err := newRunner(site, editor.Options{}).ProcessContinent(context.Background(), africaRecord())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Added)
	assert.Zero(t, stats.Skipped)
	assert.Zero(t, stats.Errors)

	// Category page bootstrapped first, with parent link and sort key.
	require.NotEmpty(t, site.saves)
	assert.Equal(t, africaCategory, site.saves[0].title)
	assert.Equal(t, "[[Category:Our World in Data graphs by continent|Africa]]", site.saves[0].text)
	assert.Equal(t, "Create category for OWID graphs", site.saves[0].summary)

	// Both files tagged with deterministic summaries.
	require.Len(t, site.saves, 3)
	assert.Equal(t, "Add "+africaCategory, site.saves[1].summary)
	assert.True(t, strings.HasSuffix(site.pages["Some indicator, Africa, 2015.svg"],
		"\n[["+africaCategory+"]]\n"))
}

func TestProcessContinent_SkipsAlreadyTagged(t *testing.T) {
	site := newFakeSite()
	site.pages[africaCategory] = "existing category page"
	site.pages["Some indicator, Africa, 2015.svg"] = "Text.\n[[" + africaCategory + "]]\n"
	site.pages["Another indicator, Africa, 2016.svg"] = "Text."

	stats, err := newRunner(site, editor.Options{}).ProcessContinent(context.Background(), africaRecord())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, site.saves, 1)
}

func TestProcessContinent_MissingPageCountsAsError(t *testing.T) {
	site := newFakeSite()
	site.pages[africaCategory] = "existing category page"
	site.pages["Some indicator, Africa, 2015.svg"] = "Text."
	// The 2016 file does not exist.

	stats, err := newRunner(site, editor.Options{}).ProcessContinent(context.Background(), africaRecord())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Errors)
}

func TestProcessContinent_DryRunMakesNoEdits(t *testing.T) {
	site := newFakeSite()
	site.pages["Some indicator, Africa, 2015.svg"] = "Text."
	site.pages["Another indicator, Africa, 2016.svg"] = "Text."

	stats, err := newRunner(site, editor.Options{DryRun: true}).
		ProcessContinent(context.Background(), africaRecord())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Added)
	assert.Empty(t, site.saves)
}

func TestProcessContinent_SkipsWhenCategoryFullEnough(t *testing.T) {
	site := newFakeSite()
	site.memberCounts[africaCategory] = 10

	stats, err := newRunner(site, editor.Options{FilesPerEntity: 5}).
		ProcessContinent(context.Background(), africaRecord())
	require.NoError(t, err)

	assert.Zero(t, stats.Added)
	assert.Zero(t, stats.Skipped)
	assert.Zero(t, stats.Errors)
	assert.Empty(t, site.saves)
}

func TestProcessContinent_FilesPerEntityCapsWork(t *testing.T) {
	site := newFakeSite()
	site.pages[africaCategory] = "existing"
	site.pages["Some indicator, Africa, 2015.svg"] = "Text."
	site.pages["Another indicator, Africa, 2016.svg"] = "Text."

	stats, err := newRunner(site, editor.Options{FilesPerEntity: 1}).
		ProcessContinent(context.Background(), africaRecord())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Added)
	require.Len(t, site.saves, 1)
	assert.Equal(t, "Some indicator, Africa, 2015.svg", site.saves[0].title)
}

func TestProcessCountry_SplitsGraphsAndMaps(t *testing.T) {
	site := newFakeSite()
	site.pages["Agriculture share gdp, 1997 to 2021, CAN.svg"] = "Graph text."
	site.pages["Life expectancy, Canada, 1990.svg"] = "Map text."

	record := &domain.CountryRecord{
		ISO3:    "CAN",
		Country: "Canada",
		Graphs: []domain.GraphEntry{
			{Title: "Agriculture share gdp, 1997 to 2021, CAN.svg"},
		},
		Maps: []domain.MapEntry{
			{Title: "Life expectancy, Canada, 1990.svg"},
		},
	}

	stats, err := newRunner(site, editor.Options{}).ProcessCountry(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Added)

	assert.Contains(t, site.pages["Agriculture share gdp, 1997 to 2021, CAN.svg"],
		"[[Category:Our World in Data graphs of Canada]]")
	assert.Contains(t, site.pages["Life expectancy, Canada, 1990.svg"],
		"[[Category:Our World in Data maps of Canada]]")

	// Both category pages bootstrapped under the country parent.
	assert.Equal(t, "[[Category:Our World in Data graphs by country|Canada]]",
		site.pages["Category:Our World in Data graphs of Canada"])
	assert.Equal(t, "[[Category:Our World in Data graphs by country|Canada]]",
		site.pages["Category:Our World in Data maps of Canada"])
}

func TestProcessCountry_MissingDisplayNameIsError(t *testing.T) {
	record := &domain.CountryRecord{ISO3: "XYZ", Graphs: []domain.GraphEntry{{Title: "x"}}}

	stats, err := newRunner(newFakeSite(), editor.Options{}).
		ProcessCountry(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Errors)
	assert.Zero(t, stats.Added)
}

func TestProcessContinent_Cancellation(t *testing.T) {
	site := newFakeSite()
	site.pages[africaCategory] = "existing"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(site, editor.Options{}).ProcessContinent(ctx, africaRecord())
	require.ErrorIs(t, err, context.Canceled)
}
