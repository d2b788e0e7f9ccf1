// Package logging provides structured logging for the dreamdwell catalog using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("properties", 12).Msg("Catalog synced")
//
//	ctx := logging.WithOperation(ctx, "submit")
//	logging.FromContext(ctx).Debug().Str("property_id", id).Msg("Updating property")
package logging

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	SetDefault(NewLoggerFromConfig(ConfigFromEnv()))
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and NO_COLOR. DEBUG
// set to anything selects the debug level when LOG_LEVEL is unset.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		cfg.Output = output
	}
	return cfg
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
	log.Logger = logger
}
