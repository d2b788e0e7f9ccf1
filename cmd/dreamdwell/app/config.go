package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dreamdwell/dreamdwell/internal/transport"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "DREAMDWELL"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Property API
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Offline bool

	// Session
	IDToken string
	Theme   string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by ApplyFlags)
// 2. Environment variables (DREAMDWELL_*, LOG_*)
// 3. .env files
// 4. Config file (~/.dreamdwell.yaml or ./.dreamdwell.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file. A missing
// explicit file is an error; a missing default file is not.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", remote.DefaultBaseURL)
	v.SetDefault("timeout", transport.DefaultHTTPTimeout)
	v.SetDefault("theme", "light")

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".dreamdwell")
		// missing default config is fine
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL: v.GetString("base_url"),
		APIKey:  v.GetString("api_key"),
		Timeout: v.GetDuration("timeout"),
		Offline: v.GetBool("offline"),

		IDToken: v.GetString("id_token"),
		Theme:   v.GetString("theme"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}
	if config.LogFormat == "" {
		config.LogFormat = "auto"
	}
	if config.LogOutput == "" {
		config.LogOutput = "stderr"
	}
	if config.Timeout < 0 {
		return nil, errors.NewConfigError("timeout", "must not be negative", nil)
	}

	return config, nil
}

// ApplyFlags overlays the flags the user set on the command line. Empty
// string flags leave the loaded value alone.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	strs := map[string]*string{
		"format":    &c.Format,
		"log-level": &c.LogLevel,
		"base-url":  &c.BaseURL,
	}
	bools := map[string]*bool{
		"verbose":  &c.Verbose,
		"quiet":    &c.Quiet,
		"no-color": &c.NoColor,
		"offline":  &c.Offline,
	}

	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return errors.NewConfigError("flags", name, err)
		}
		if v != "" {
			*dst = v
		}
	}
	for name, dst := range bools {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetBool(name)
		if err != nil {
			return errors.NewConfigError("flags", name, err)
		}
		*dst = v
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files.
// Existing variables win over .env.local, which wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
