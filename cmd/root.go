// Package cmd implements the command-line interface for the OWID
// Commons categorizer. It provides the root command plus subcommands
// for fetching category members and applying category edits.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrIbrahem/OWID-categories/cmd/categorize"
	"github.com/MrIbrahem/OWID-categories/cmd/fetch"
	"github.com/MrIbrahem/OWID-categories/internal/config"
	"github.com/MrIbrahem/OWID-categories/internal/members"
	"github.com/MrIbrahem/OWID-categories/internal/wiki"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "owid-categories",
		Short: "Classify and categorize OWID files on Wikimedia Commons",
		Long: `owid-categories classifies Our World in Data file titles on
Wikimedia Commons into per-country and per-continent groups, then adds
the matching category to each file page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so credentials are visible to viper.
	_ = godotenv.Load()

	// Parse flags early so --config is known before viper reads it.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(fetch.Command())
	rootCmd.AddCommand(categorize.Command())
}

// initConfig reads the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()

	setDefaults()

	// The config file is optional, but a file that exists and fails to
	// parse must abort rather than silently run on defaults.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if debug || viper.GetBool("app.debug") {
		viper.Set("app.debug", true)
		viper.Set("logger.level", "debug")
	}

	return nil
}

// bindEnvVars maps environment variables to config keys. Credentials
// only ever come from the environment, never from the config file.
func bindEnvVars() error {
	binds := map[string][]string{
		"wiki.username":     {"WM_USERNAME"},
		"wiki.password":     {"WM_PASSWORD", "PASSWORD"},
		"logger.level":      {"LOG_LEVEL"},
		"logger.encoding":   {"LOG_FORMAT"},
		"app.environment":   {"APP_ENV"},
		"output.dir":        {"OUTPUT_DIR"},
		"fetch.source":      {"FETCH_SOURCE"},
		"fetch.petscan_url": {"PETSCAN_URL"},
	}
	for key, envs := range binds {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "owid-categories",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"encoding":    "json",
		"development": false,
	})

	viper.SetDefault("wiki", map[string]any{
		"api_url":    wiki.DefaultAPIEndpoint,
		"user_agent": wiki.DefaultUserAgent,
		"edit_delay": "100ms",
	})

	viper.SetDefault("fetch", map[string]any{
		"category":    "Category:Uploaded_by_OWID_importer_tool",
		"source":      config.SourceAPI,
		"petscan_url": members.DefaultPetScanURL,
	})

	viper.SetDefault("retry", map[string]any{
		"max_attempts":  5,
		"initial_delay": "1s",
		"max_delay":     "60s",
	})

	viper.SetDefault("output", map[string]any{
		"dir": "output",
	})
}
