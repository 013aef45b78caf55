package editor

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrIbrahem/OWID-categories/internal/classifier"
	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
	"github.com/MrIbrahem/OWID-categories/internal/wiki"
)

// Options controls one categorization run.
type Options struct {
	// DryRun suppresses all mutating calls; decisions are still
	// computed and reported.
	DryRun bool
	// FilesPerEntity caps the number of pages touched per entity. When
	// the target category already has at least this many members the
	// entity is skipped without touching it. Zero means no cap.
	FilesPerEntity int
}

// Runner sequences category-tagging edits against a live wiki. Edits
// are serialized and spaced by a minimum inter-edit delay.
type Runner struct {
	site    wiki.Site
	limiter *rate.Limiter
	log     logger.Interface
	opts    Options
}

// NewRunner creates a runner. editDelay is the minimum gap between
// consecutive mutating calls.
func NewRunner(site wiki.Site, log logger.Interface, editDelay time.Duration, opts Options) *Runner {
	if editDelay <= 0 {
		editDelay = 100 * time.Millisecond
	}
	return &Runner{
		site:    site,
		limiter: rate.NewLimiter(rate.Every(editDelay), 1),
		log:     log,
		opts:    opts,
	}
}

// ProcessCountry tags all of a country's graph and map files. Graph
// entries go into the graphs category, map entries into the maps
// category. Per-item failures are counted, never fatal.
func (r *Runner) ProcessCountry(ctx context.Context, record *domain.CountryRecord) (domain.EditStats, error) {
	var stats domain.EditStats

	if record.Country == "" {
		r.log.Error("country record has no display name", "iso3", record.ISO3)
		stats.Errors++
		return stats, nil
	}

	graphTitles := make([]string, 0, len(record.Graphs))
	for _, g := range record.Graphs {
		graphTitles = append(graphTitles, g.Title)
	}
	mapTitles := make([]string, 0, len(record.Maps))
	for _, m := range record.Maps {
		mapTitles = append(mapTitles, m.Title)
	}

	groups := []struct {
		files  classifier.FilesType
		titles []string
	}{
		{classifier.FilesGraphs, graphTitles},
		{classifier.FilesMaps, mapTitles},
	}

	for _, group := range groups {
		if len(group.titles) == 0 {
			continue
		}
		category := classifier.BuildCategoryName(record.Country, classifier.EntityCountry, group.files)
		err := r.tagGroup(ctx, category, classifier.ParentCategory(classifier.EntityCountry),
			record.Country, group.titles, &stats)
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// ProcessContinent tags a continent's map files. The category keeps the
// graphs-style continent naming ("Our World in Data graphs of Africa").
func (r *Runner) ProcessContinent(ctx context.Context, record *domain.ContinentRecord) (domain.EditStats, error) {
	var stats domain.EditStats

	if record.Continent == "" {
		r.log.Error("continent record has no name")
		stats.Errors++
		return stats, nil
	}
	if len(record.Maps) == 0 {
		return stats, nil
	}

	titles := make([]string, 0, len(record.Maps))
	for _, m := range record.Maps {
		titles = append(titles, m.Title)
	}

	category := classifier.BuildCategoryName(record.Continent, classifier.EntityContinent, classifier.FilesGraphs)
	err := r.tagGroup(ctx, category, classifier.ParentCategory(classifier.EntityContinent),
		record.Continent, titles, &stats)
	return stats, err
}

// tagGroup ensures the category exists and tags each title with it.
func (r *Runner) tagGroup(
	ctx context.Context,
	category, parentCategory, sortKey string,
	titles []string,
	stats *domain.EditStats,
) error {
	if r.opts.FilesPerEntity > 0 {
		count, err := r.site.CategoryMemberCount(ctx, category)
		if err != nil {
			r.log.Error("failed to count category members", "category", category, "error", err)
			stats.Errors++
			return nil
		}
		if count >= r.opts.FilesPerEntity {
			r.log.Info("skipping: category already has enough files",
				"category", category, "members", count, "requested", r.opts.FilesPerEntity)
			return nil
		}
		if len(titles) > r.opts.FilesPerEntity {
			titles = titles[:r.opts.FilesPerEntity]
		}
	}

	r.log.Info("processing category", "category", category, "files", len(titles))

	if !r.ensureCategory(ctx, category, parentCategory, sortKey, stats) {
		return nil
	}

	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.tagPage(ctx, title, category, stats)
	}
	return nil
}

// ensureCategory bootstraps the category page when missing. Returns
// false when the group should be abandoned.
func (r *Runner) ensureCategory(ctx context.Context, category, parentCategory, sortKey string, stats *domain.EditStats) bool {
	exists, err := r.site.PageExists(ctx, category)
	if err != nil {
		r.log.Error("failed to check category page", "category", category, "error", err)
		stats.Errors++
		return false
	}

	decision := CreateCategory(exists, parentCategory, sortKey)
	if decision.Action != ActionApply {
		return true
	}

	if r.opts.DryRun {
		r.log.Info("[dry run] would create category page", "category", category)
		return true
	}

	if err := r.save(ctx, category, decision); err != nil {
		r.log.Error("failed to create category page", "category", category, "error", err)
		stats.Errors++
		return false
	}

	r.log.Info("created category page", "category", category)
	return true
}

// tagPage applies the add-category decision to one page.
func (r *Runner) tagPage(ctx context.Context, title, category string, stats *domain.EditStats) {
	text, exists, err := r.site.GetPageText(ctx, title)
	if err != nil {
		r.log.Error("failed to fetch page", "title", title, "error", err)
		stats.Errors++
		return
	}

	decision := AddCategory(exists, text, category)
	switch decision.Action {
	case ActionAlreadyPresent:
		r.log.Debug("category already on page", "title", title)
		stats.Skipped++

	case ActionPageMissing:
		r.log.Warn("page does not exist", "title", title)
		stats.Errors++

	case ActionApply:
		if r.opts.DryRun {
			r.log.Info("[dry run] would add category", "title", title, "category", category)
			stats.Added++
			return
		}
		if err := r.save(ctx, title, decision); err != nil {
			r.log.Error("failed to save page", "title", title, "error", err)
			stats.Errors++
			return
		}
		r.log.Info("added category", "title", title, "category", category)
		stats.Added++
	}
}

// save waits out the inter-edit delay, then commits the decision.
func (r *Runner) save(ctx context.Context, title string, decision Decision) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	return r.site.SavePage(ctx, title, decision.NewText, decision.Summary)
}
