// Package categorize implements the categorize command. It reads the
// per-entity JSON files a fetch run produced and adds the matching
// category to each file page on Commons.
package categorize

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cmdcommon "github.com/MrIbrahem/OWID-categories/cmd/common"
	"github.com/MrIbrahem/OWID-categories/internal/domain"
	"github.com/MrIbrahem/OWID-categories/internal/editor"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
	"github.com/MrIbrahem/OWID-categories/internal/storage"
	"github.com/MrIbrahem/OWID-categories/internal/wiki"
)

// runFlags holds the flags shared by the countries and continents
// subcommands.
type runFlags struct {
	dryRun         bool
	limit          int
	filesPerEntity int
}

// entitySpec describes one entity kind for the shared run skeleton.
type entitySpec struct {
	name    string
	list    func(store *storage.Store) ([]string, error)
	process func(ctx context.Context, store *storage.Store, runner *editor.Runner, path string) (domain.EditStats, error)
}

// Command returns the categorize command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Add categories to classified OWID files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(countriesCommand())
	cmd.AddCommand(continentsCommand())
	return cmd
}

func countriesCommand() *cobra.Command {
	var flags runFlags

	spec := entitySpec{
		name: "country",
		list: func(store *storage.Store) ([]string, error) {
			return store.ListCountryFiles()
		},
		process: func(ctx context.Context, store *storage.Store, runner *editor.Runner, path string) (domain.EditStats, error) {
			record, err := store.LoadCountry(path)
			if err != nil {
				return domain.EditStats{}, err
			}
			return runner.ProcessCountry(ctx, record)
		},
	}

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Tag per-country graph and map files",
		Long: `Countries reads every country JSON file from the output directory
and adds the country's graphs or maps category to each file page,
creating the category page first when it does not exist yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags, spec)
		},
	}

	addRunFlags(cmd, &flags, spec.name)
	return cmd
}

func continentsCommand() *cobra.Command {
	var flags runFlags

	spec := entitySpec{
		name: "continent",
		list: func(store *storage.Store) ([]string, error) {
			return store.ListContinentFiles()
		},
		process: func(ctx context.Context, store *storage.Store, runner *editor.Runner, path string) (domain.EditStats, error) {
			record, err := store.LoadContinent(path)
			if err != nil {
				return domain.EditStats{}, err
			}
			return runner.ProcessContinent(ctx, record)
		},
	}

	cmd := &cobra.Command{
		Use:   "continents",
		Short: "Tag per-continent map files",
		Long: `Continents reads every continent JSON file from the output
directory and adds the continent's category to each file page, creating
the category page first when it does not exist yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags, spec)
		},
	}

	addRunFlags(cmd, &flags, spec.name)
	return cmd
}

func addRunFlags(cmd *cobra.Command, flags *runFlags, entity string) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"compute decisions without saving any edit")
	cmd.Flags().IntVar(&flags.limit, "limit", 0,
		fmt.Sprintf("process at most this many %s files, 0 for all", entity))
	cmd.Flags().IntVar(&flags.filesPerEntity, "files-per-"+entity, 0,
		fmt.Sprintf("cap pages tagged per %s, 0 for no cap", entity))
}

// run wires the shared skeleton: config, login, runner, entity loop,
// final summary.
func run(ctx context.Context, flags runFlags, spec entitySpec) error {
	deps, err := cmdcommon.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	log := deps.Logger
	defer func() { _ = log.Sync() }()

	cfg := deps.Config
	if !flags.dryRun && !cfg.Wiki.HasCredentials() {
		return wiki.ErrMissingCredentials
	}

	start := time.Now()
	store := storage.New(cfg.Output.Dir, log)

	client := wiki.NewClient(log,
		wiki.WithAPIURL(cfg.Wiki.APIURL),
		wiki.WithUserAgent(cfg.Wiki.UserAgent),
	)
	if !flags.dryRun {
		if err := client.Login(ctx, cfg.Wiki.Username, cfg.Wiki.Password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	runner := editor.NewRunner(client, log, cfg.Wiki.EditDelay, editor.Options{
		DryRun:         flags.dryRun,
		FilesPerEntity: flags.filesPerEntity,
	})

	paths, err := spec.list(store)
	if err != nil {
		return fmt.Errorf("list %s files: %w", spec.name, err)
	}
	if flags.limit > 0 && len(paths) > flags.limit {
		log.Info("limiting entities", "total", len(paths), "limit", flags.limit)
		paths = paths[:flags.limit]
	}

	log.Info("starting categorization",
		"entity", spec.name, "files", len(paths), "dry_run", flags.dryRun)

	stats, err := processAll(ctx, spec, store, runner, log, paths)

	log.Info("categorization complete",
		"dry_run", flags.dryRun,
		"added", stats.Added,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"entities_processed", stats.EntitiesProcessed,
		"entities_skipped", stats.EntitiesSkipped,
	)
	cmdcommon.LogRunDuration(log, start)

	return err
}

// processAll folds every entity file into one run total. A file that
// fails to parse is counted and skipped; only context cancellation
// stops the loop.
func processAll(
	ctx context.Context,
	spec entitySpec,
	store *storage.Store,
	runner *editor.Runner,
	log logger.Interface,
	paths []string,
) (domain.EditStats, error) {
	var stats domain.EditStats

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		entityStats, err := spec.process(ctx, store, runner, path)
		if err != nil {
			if ctx.Err() != nil {
				return stats, err
			}
			log.Error("failed to process entity file", "path", path, "error", err)
			stats.Errors++
			continue
		}
		stats.Add(entityStats)
	}

	return stats, nil
}
