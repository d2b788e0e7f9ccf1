package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// logFilePermissions is used when Output names a file.
const logFilePermissions = 0o644

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error or off.
	Level string

	// Format is json, console or auto. Auto picks console for a terminal
	// on stderr.
	Format string

	// Output is stderr, stdout, discard or a file path.
	Output string

	// TimeFormat for console timestamps: kitchen, rfc3339, unix or a layout.
	TimeFormat string

	NoColor bool

	// AddCaller includes file:line; always on at debug and below.
	AddCaller bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig builds a logger and sets zerolog's global level to
// match it.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	out := openOutput(cfg.Output)
	if useConsole(cfg.Format, out) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Configure replaces the default logger with one built from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// openOutput falls back to stderr when a log file cannot be opened.
func openOutput(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePermissions)
	if err != nil {
		return os.Stderr
	}
	return file
}

func useConsole(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case "console", "pretty":
		return true
	case "", "auto":
		f, ok := out.(*os.File)
		return ok && f == os.Stderr && isatty.IsTerminal(f.Fd())
	}
	return false
}

var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"":         zerolog.InfoLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"disabled": zerolog.Disabled,
	"none":     zerolog.Disabled,
	"off":      zerolog.Disabled,
}

// parseLevel maps unknown names to info.
func parseLevel(name string) zerolog.Level {
	if level, ok := levels[strings.ToLower(name)]; ok {
		return level
	}
	if level, err := zerolog.ParseLevel(name); err == nil {
		return level
	}
	return zerolog.InfoLevel
}

var timeFormats = map[string]string{
	"":        time.Kitchen,
	"kitchen": time.Kitchen,
	"rfc3339": time.RFC3339,
	"unix":    "",
	"epoch":   "",
}

func parseTimeFormat(name string) string {
	if layout, ok := timeFormats[strings.ToLower(name)]; ok {
		return layout
	}
	if strings.Contains(name, "2006") || strings.Contains(name, "15:04") {
		return name
	}
	return time.Kitchen
}
