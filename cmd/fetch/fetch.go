// Package fetch implements the fetch command. It lists the members of
// the source category, classifies every title, and writes the grouped
// results to disk for the categorize commands to consume.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cmdcommon "github.com/MrIbrahem/OWID-categories/cmd/common"
	"github.com/MrIbrahem/OWID-categories/internal/aggregator"
	"github.com/MrIbrahem/OWID-categories/internal/classifier"
	"github.com/MrIbrahem/OWID-categories/internal/config"
	"github.com/MrIbrahem/OWID-categories/internal/countries"
	"github.com/MrIbrahem/OWID-categories/internal/members"
	"github.com/MrIbrahem/OWID-categories/internal/storage"
)

// Command returns the fetch command for use in the root command.
func Command() *cobra.Command {
	var (
		source   string
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and classify the OWID upload category",
		Long: `Fetch lists every file in the source category, classifies each
title as a year-range graph, a single-year map, or a continent map, and
writes per-country and per-continent JSON files plus a run summary.
Titles that match no pattern are written to not_matched_files.txt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			if source != "" {
				deps.Config.Fetch.Source = source
			}
			if category != "" {
				deps.Config.Fetch.Category = category
			}

			return run(cmd.Context(), deps, limit)
		},
	}

	cmd.Flags().StringVar(&source, "source", "",
		"member listing source: api or petscan (default from config)")
	cmd.Flags().StringVar(&category, "category", "",
		"source category to enumerate (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0,
		"classify at most this many titles, 0 for all")

	return cmd
}

func run(ctx context.Context, deps cmdcommon.CommandDeps, limit int) error {
	start := time.Now()
	log := deps.Logger
	cfg := deps.Config
	runID := uuid.NewString()

	log.Info("starting fetch run",
		"run_id", runID,
		"category", cfg.Fetch.Category,
		"source", cfg.Fetch.Source,
		"output", cfg.Output.Dir,
	)

	fetcher, err := newFetcher(deps)
	if err != nil {
		return err
	}

	titles, err := fetcher.FetchMembers(ctx, cfg.Fetch.Category)
	if err != nil {
		return fmt.Errorf("fetch category members: %w", err)
	}
	if limit > 0 && len(titles) > limit {
		log.Info("limiting titles", "total", len(titles), "limit", limit)
		titles = titles[:limit]
	}

	agg := aggregator.New(
		classifier.New(classifier.LookupFunc(countries.ISO3ForCountry), log),
		aggregator.ReverseFunc(countries.CountryForISO3),
		log,
	)
	result, err := agg.Aggregate(ctx, titles)
	if err != nil {
		return fmt.Errorf("aggregate titles: %w", err)
	}

	store := storage.New(cfg.Output.Dir, log)
	if err := store.WriteCountries(result.Countries); err != nil {
		return fmt.Errorf("write country files: %w", err)
	}
	if err := store.WriteContinents(result.Continents); err != nil {
		return fmt.Errorf("write continent files: %w", err)
	}
	if err := store.WriteSummary(runID, result.Countries, result.Continents); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := store.WriteNotMatched(result.NotMatched); err != nil {
		return fmt.Errorf("write unmatched list: %w", err)
	}

	cmdcommon.LogRunDuration(log, start)
	return nil
}

// newFetcher builds the listing adapter named by fetch.source.
func newFetcher(deps cmdcommon.CommandDeps) (members.Fetcher, error) {
	policy := deps.RetryPolicy()

	switch deps.Config.Fetch.Source {
	case config.SourceAPI:
		return members.NewAPIFetcher(deps.Logger,
			members.WithAPIURL(deps.Config.Wiki.APIURL),
			members.WithAPIPolicy(policy),
		), nil
	case config.SourcePetScan:
		return members.NewPetScanFetcher(deps.Logger,
			members.WithPetScanURL(deps.Config.Fetch.PetScanURL),
			members.WithPetScanPolicy(policy),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", cmdcommon.ErrUnknownSource, deps.Config.Fetch.Source)
	}
}
