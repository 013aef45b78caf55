// Package common provides shared initialization for command implementations.
package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrIbrahem/OWID-categories/internal/config"
	"github.com/MrIbrahem/OWID-categories/internal/logger"
	"github.com/MrIbrahem/OWID-categories/internal/retry"
)

// ErrUnknownSource is returned when fetch.source names no known adapter.
var ErrUnknownSource = errors.New("unknown fetch source")

// CommandDeps holds the dependencies every command starts from.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps loads the configuration and builds the logger.
func NewCommandDeps() (CommandDeps, error) {
	cfg := config.Load()

	log, err := logger.New(&logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Development: cfg.Logger.Development,
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	return CommandDeps{Logger: log, Config: cfg}, nil
}

// RetryPolicy builds the backoff policy from config, falling back to
// the default for unset fields.
func (d CommandDeps) RetryPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	if d.Config.Retry.MaxAttempts > 0 {
		policy.MaxAttempts = d.Config.Retry.MaxAttempts
	}
	if d.Config.Retry.InitialDelay > 0 {
		policy.InitialDelay = d.Config.Retry.InitialDelay
	}
	if d.Config.Retry.MaxDelay > 0 {
		policy.MaxDelay = d.Config.Retry.MaxDelay
	}
	return policy
}

// LogRunDuration logs how long a command took.
func LogRunDuration(log logger.Interface, start time.Time) {
	log.Info("run finished", "duration", time.Since(start).Round(time.Millisecond).String())
}
