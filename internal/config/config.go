// Package config loads fosdem-speakers settings from flags, environment
// variables and an optional YAML file.
//
// Precedence follows viper: explicit flags, then FOSDEM_SPEAKERS_* environment
// variables, then the config file, then the built-in defaults. With no file
// and no environment the defaults reproduce the plain command-line behaviour.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys
const (
	KeyDataDir    = "data_dir"
	KeyFromYear   = "years.from"
	KeyToYear     = "years.to"
	KeyBaseURL    = "fetch.base_url"
	KeyDelay      = "fetch.delay"
	KeyTimeout    = "fetch.timeout"
	KeyUserAgent  = "fetch.user_agent"
	KeyNamesTable = "names.table"
	KeyFormat     = "output.format"
	KeySort       = "output.sort"
	KeyVerbose    = "verbose"
)

// Defaults
const (
	DefaultDataDir   = "."
	DefaultFromYear  = 2023
	DefaultToYear    = 2013
	DefaultBaseURL   = "https://fosdem.org"
	DefaultDelay     = 50 * time.Millisecond
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "fosdem-speakers/1.0 (github.com/EdwardBetts/fosdem-speakers)"
	DefaultFormat    = "text"
	DefaultSort      = "ratio"

	EnvPrefix  = "FOSDEM_SPEAKERS"
	ConfigName = ".fosdem-speakers"
)

// Config is the resolved configuration for a run
type Config struct {
	DataDir    string
	FromYear   int
	ToYear     int
	BaseURL    string
	Delay      time.Duration
	Timeout    time.Duration
	UserAgent  string
	NamesTable string
	Format     string
	Sort       string
	Verbose    bool
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyFromYear, DefaultFromYear)
	v.SetDefault(KeyToYear, DefaultToYear)
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyDelay, DefaultDelay)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyNamesTable, "")
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeySort, DefaultSort)
	v.SetDefault(KeyVerbose, false)
}

// Init wires environment variables and reads the config file. An explicit
// cfgFile must exist; otherwise ./.fosdem-speakers.yaml and
// $HOME/.fosdem-speakers.yaml are tried and silently skipped when absent.
// It returns the config file used, if any.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}

	return v.ConfigFileUsed(), nil
}

// Load resolves and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DataDir:    v.GetString(KeyDataDir),
		FromYear:   v.GetInt(KeyFromYear),
		ToYear:     v.GetInt(KeyToYear),
		BaseURL:    strings.TrimSpace(v.GetString(KeyBaseURL)),
		Delay:      v.GetDuration(KeyDelay),
		Timeout:    v.GetDuration(KeyTimeout),
		UserAgent:  v.GetString(KeyUserAgent),
		NamesTable: v.GetString(KeyNamesTable),
		Format:     strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		Sort:       strings.ToLower(strings.TrimSpace(v.GetString(KeySort))),
		Verbose:    v.GetBool(KeyVerbose),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot use
func (c *Config) Validate() error {
	if c.FromYear <= 0 || c.ToYear <= 0 {
		return fmt.Errorf("invalid year range: %d to %d", c.FromYear, c.ToYear)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%s must not be empty", KeyBaseURL)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%s must not be negative", KeyDelay)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", KeyTimeout)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", c.Format)
	}
	return nil
}
