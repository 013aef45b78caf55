// Package aggregator folds classified titles into per-country and
// per-continent records.
package aggregator

import (
	"context"

	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
)

// Reverse resolves ISO3 codes back to country display names.
type Reverse interface {
	CountryForISO3(code string) (string, bool)
}

// ReverseFunc adapts a plain function to the Reverse interface.
type ReverseFunc func(code string) (string, bool)

// CountryForISO3 calls the wrapped function.
func (f ReverseFunc) CountryForISO3(code string) (string, bool) { return f(code) }

// TitleClassifier parses one file title.
type TitleClassifier interface {
	Classify(title string) domain.Classification
}

// Result is the output of one aggregation pass. Grouping is
// order-independent by key; within one entity, entries appear in input
// order. NotMatched holds unmatched titles and maps whose region could
// not be resolved, verbatim and in input order.
type Result struct {
	Countries  map[string]*domain.CountryRecord
	Continents map[string]*domain.ContinentRecord
	NotMatched []string
	Stats      domain.AggregateStats
}

// Aggregator groups classified titles by entity.
type Aggregator struct {
	classifier TitleClassifier
	reverse    Reverse
	log        logger.Interface
}

// New creates an aggregator.
func New(c TitleClassifier, reverse Reverse, log logger.Interface) *Aggregator {
	return &Aggregator{classifier: c, reverse: reverse, log: log}
}

// Aggregate iterates titles once, in order. The context is checked each
// iteration so large inputs stay responsive to cancellation.
func (a *Aggregator) Aggregate(ctx context.Context, titles []string) (*Result, error) {
	result := &Result{
		Countries:  make(map[string]*domain.CountryRecord),
		Continents: make(map[string]*domain.ContinentRecord),
		NotMatched: []string{},
	}

	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c := a.classifier.Classify(title)
		switch c.Kind {
		case domain.KindUnmatched:
			result.Stats.Unmatched++
			result.NotMatched = append(result.NotMatched, title)

		case domain.KindContinentMap:
			record, ok := result.Continents[c.Continent]
			if !ok {
				record = domain.NewContinentRecord(c.Continent)
				result.Continents[c.Continent] = record
			}
			record.Maps = append(record.Maps, domain.ContinentMapEntry{
				Title:     c.Title,
				Indicator: c.Indicator,
				Year:      c.Year,
				FilePage:  c.FilePage,
			})
			result.Stats.ContinentMaps++

		case domain.KindMap:
			if c.ISO3 == "" {
				result.Stats.UnresolvedRegions++
				result.NotMatched = append(result.NotMatched, title)
				continue
			}
			record := a.countryRecord(result, c.ISO3)
			record.Maps = append(record.Maps, domain.MapEntry{
				Title:     c.Title,
				Indicator: c.Indicator,
				Year:      c.Year,
				Region:    c.Region,
				FilePage:  c.FilePage,
			})
			result.Stats.Maps++

		case domain.KindGraph:
			record := a.countryRecord(result, c.ISO3)
			record.Graphs = append(record.Graphs, domain.GraphEntry{
				Title:     c.Title,
				Indicator: c.Indicator,
				StartYear: c.StartYear,
				EndYear:   c.EndYear,
				FilePage:  c.FilePage,
			})
			result.Stats.Graphs++
		}
	}

	a.log.Info("classification complete",
		"graphs", result.Stats.Graphs,
		"maps", result.Stats.Maps,
		"continent_maps", result.Stats.ContinentMaps,
		"unmatched", result.Stats.Unmatched,
		"unresolved_regions", result.Stats.UnresolvedRegions,
		"countries", len(result.Countries),
		"continents", len(result.Continents),
	)

	return result, nil
}

// countryRecord returns the record for a code, creating it on first
// encounter. An ISO3 missing from the reverse lookup still gets a
// record; the empty display name is a diagnostic, not a failure.
func (a *Aggregator) countryRecord(result *Result, iso3 string) *domain.CountryRecord {
	if record, ok := result.Countries[iso3]; ok {
		return record
	}
	name, ok := a.reverse.CountryForISO3(iso3)
	if !ok {
		a.log.Warn("unknown ISO3 code", "iso3", iso3)
	}
	record := domain.NewCountryRecord(iso3, name)
	result.Countries[iso3] = record
	return record
}
