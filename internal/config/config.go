// Package config assembles the application configuration. It is built
// once at process start from viper (config file, environment, defaults)
// and passed into components; nothing reads configuration ambiently.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration struct.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Wiki   WikiConfig
	Fetch  FetchConfig
	Retry  RetryConfig
	Output OutputConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level       string
	Encoding    string
	Development bool
}

// WikiConfig holds Commons API settings and bot credentials.
// Credentials come from the environment (WM_USERNAME / WM_PASSWORD),
// usually via a .env file.
type WikiConfig struct {
	APIURL    string
	UserAgent string
	Username  string
	Password  string
	// EditDelay is the minimum gap between consecutive wiki edits.
	EditDelay time.Duration
}

// FetchConfig holds member-listing settings.
type FetchConfig struct {
	// Category is the source category to enumerate.
	Category string
	// Source selects the listing adapter: "api" or "petscan".
	Source string
	// PetScanURL is the PetScan instance to query.
	PetScanURL string
}

// RetryConfig holds the backoff policy for listing calls.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// OutputConfig holds on-disk output settings.
type OutputConfig struct {
	Dir string
}

// Listing adapter names.
const (
	SourceAPI     = "api"
	SourcePetScan = "petscan"
)

// Load builds the Config from viper's current state.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:        viper.GetString("app.name"),
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
		},
		Logger: LoggerConfig{
			Level:       viper.GetString("logger.level"),
			Encoding:    viper.GetString("logger.encoding"),
			Development: viper.GetBool("logger.development"),
		},
		Wiki: WikiConfig{
			APIURL:    viper.GetString("wiki.api_url"),
			UserAgent: viper.GetString("wiki.user_agent"),
			Username:  viper.GetString("wiki.username"),
			Password:  viper.GetString("wiki.password"),
			EditDelay: viper.GetDuration("wiki.edit_delay"),
		},
		Fetch: FetchConfig{
			Category:   viper.GetString("fetch.category"),
			Source:     viper.GetString("fetch.source"),
			PetScanURL: viper.GetString("fetch.petscan_url"),
		},
		Retry: RetryConfig{
			MaxAttempts:  viper.GetInt("retry.max_attempts"),
			InitialDelay: viper.GetDuration("retry.initial_delay"),
			MaxDelay:     viper.GetDuration("retry.max_delay"),
		},
		Output: OutputConfig{
			Dir: viper.GetString("output.dir"),
		},
	}
}

// HasCredentials reports whether both credential values are present.
func (c *WikiConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
