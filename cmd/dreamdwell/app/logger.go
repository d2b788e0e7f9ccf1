package app

import (
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/pkg/logging"
)

var cliLevels = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// NewLogger builds the CLI logger. An explicit --log-level wins over -v and
// -q, and -q wins when both shortcuts are given. Conflicts and unknown
// levels are reported through the returned logger itself.
func NewLogger(config *Config) zerolog.Logger {
	level, warning := resolveLevel(config)
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     level.String(),
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level <= zerolog.DebugLevel,
	})
	if warning != "" {
		logger.Warn().Str("log_level", config.LogLevel).Msg(warning)
	}
	return logger
}

func resolveLevel(config *Config) (zerolog.Level, string) {
	switch {
	case config.LogLevel != "":
		if level, ok := cliLevels[config.LogLevel]; ok {
			return level, ""
		}
		return zerolog.InfoLevel, "unknown log level, using info"
	case config.Verbose && config.Quiet:
		return zerolog.WarnLevel, "both --verbose and --quiet given, using --quiet"
	case config.Verbose:
		return zerolog.DebugLevel, ""
	case config.Quiet:
		return zerolog.WarnLevel, ""
	default:
		return zerolog.InfoLevel, ""
	}
}
