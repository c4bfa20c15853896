// Package config provides configuration management for the brand scraper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Built-in defaults, used when neither the settings file, the environment
// nor a flag provides a value.
const (
	DefaultConfigFile     = "config/settings.yaml"
	DefaultBaseURL        = "https://www.faire.com/api"
	DefaultTimeoutSeconds = 10.0
	DefaultUserAgent      = "FaireBrandScraper/1.0 (+https://bitbash.dev)"
	DefaultMaxResponseKb  = 10240
	DefaultInputFile      = "data/input_brands.txt"
	DefaultOutputFile     = "data/sample_output.json"
	DefaultLogLevel       = "info"
	DefaultLogEncoding    = "console"

	// EnvPrefix prefixes every environment override, e.g. BRANDSCRAPER_SCRAPER_BASE_URL.
	EnvPrefix     = "BRANDSCRAPER"
	// ConfigFileEnv selects the settings file when --config is not given.
	ConfigFileEnv = EnvPrefix + "_CONFIG"
)

// Flag names understood by RegisterFlags and LoadConfig.
const (
	FlagConfig    = "config"
	FlagBaseURL   = "base-url"
	FlagTimeout   = "timeout"
	FlagUserAgent = "user-agent"
	FlagLogLevel  = "log-level"
	FlagSummary   = "summary"
)

// flagKeys maps flags onto configuration keys.
var flagKeys = map[string]string{
	FlagBaseURL:   "scraper.base_url",
	FlagTimeout:   "scraper.timeout_seconds",
	FlagUserAgent: "scraper.user_agent",
	FlagLogLevel:  "logging.level",
	FlagSummary:   "report.summary",
}

// Configuration validation errors.
var (
	ErrMissingBaseURL     = errors.New("scraper.base_url is required")
	ErrInvalidBaseURL     = errors.New("scraper.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout     = errors.New("scraper.timeout_seconds must be greater than 0")
	ErrMissingUserAgent   = errors.New("scraper.user_agent is required")
	ErrInvalidMaxResponse = errors.New("scraper.max_response_kb must be at least 1")
	ErrMissingInputFile   = errors.New("input_file is required")
	ErrMissingOutputFile  = errors.New("output_file is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogEncoding = errors.New("logging.encoding must be 'console' or 'json'")
	ErrConfigFileRequired = errors.New("config file path is required")
)

// Config represents the complete scraper configuration.
type Config struct {
	Scraper    ScraperConfig `mapstructure:"scraper" yaml:"scraper"`
	InputFile  string        `mapstructure:"input_file" yaml:"input_file"`
	OutputFile string        `mapstructure:"output_file" yaml:"output_file"`
	Logging    LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Report     ReportConfig  `mapstructure:"report" yaml:"report"`
}

// ScraperConfig contains the storefront API settings.
type ScraperConfig struct {
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	UserAgent      string  `mapstructure:"user_agent" yaml:"user_agent"`
	TimeoutSeconds float64 `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxResponseKb  int     `mapstructure:"max_response_kb" yaml:"max_response_kb"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
}

// ReportConfig defines what is printed after a run.
type ReportConfig struct {
	Summary bool `mapstructure:"summary" yaml:"summary"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scraper.base_url", DefaultBaseURL)
	v.SetDefault("scraper.timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("scraper.user_agent", DefaultUserAgent)
	v.SetDefault("scraper.max_response_kb", DefaultMaxResponseKb)
	v.SetDefault("input_file", DefaultInputFile)
	v.SetDefault("output_file", DefaultOutputFile)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.encoding", DefaultLogEncoding)
	v.SetDefault("report.summary", false)
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", DefaultConfigFile, "Path to the settings file (YAML or JSON)")
	fs.String(FlagBaseURL, DefaultBaseURL, "Storefront API base URL")
	fs.Float64(FlagTimeout, DefaultTimeoutSeconds, "Per-request timeout in seconds")
	fs.String(FlagUserAgent, DefaultUserAgent, "User-Agent header sent with every request")
	fs.String(FlagLogLevel, DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.Bool(FlagSummary, false, "Print a summary table of the scraped brands")
}

// ResolveConfigPath picks the settings file: an explicit --config flag,
// then the BRANDSCRAPER_CONFIG variable, then the flag default.
func ResolveConfigPath(fs *pflag.FlagSet) string {
	flag := fs.Lookup(FlagConfig)
	if flag != nil && flag.Changed {
		return flag.Value.String()
	}

	if env, ok := os.LookupEnv(ConfigFileEnv); ok && env != "" {
		return env
	}

	if flag != nil {
		return flag.Value.String()
	}

	return DefaultConfigFile
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	return nil
}

// LoadConfig loads configuration with the precedence
// flags > environment > settings file > built-in defaults.
// fs may be nil when no flags take part.
func LoadConfig(configPath string, fs *pflag.FlagSet) (*Config, error) {
	if configPath == "" {
		return nil, ErrConfigFileRequired
	}

	v := viper.New()
	SetDefaults(v)

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}

			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyOverrides replaces the input and output paths with explicit values.
// Empty arguments leave the configured paths in place.
func (c *Config) ApplyOverrides(inputFile, outputFile string) {
	if inputFile != "" {
		c.InputFile = inputFile
	}

	if outputFile != "" {
		c.OutputFile = outputFile
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scraper.BaseURL) == "" {
		return ErrMissingBaseURL
	}

	u, err := url.Parse(c.Scraper.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.Scraper.BaseURL)
	}

	if c.Scraper.TimeoutSeconds <= 0 {
		return ErrInvalidTimeout
	}

	if strings.TrimSpace(c.Scraper.UserAgent) == "" {
		return ErrMissingUserAgent
	}

	if c.Scraper.MaxResponseKb < 1 {
		return ErrInvalidMaxResponse
	}

	if c.InputFile == "" {
		return ErrMissingInputFile
	}

	if c.OutputFile == "" {
		return ErrMissingOutputFile
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Encoding != "console" && c.Logging.Encoding != "json" {
		return ErrInvalidLogEncoding
	}

	return nil
}

// GetTimeout returns the per-request timeout.
func (s *ScraperConfig) GetTimeout() time.Duration {
	return time.Duration(s.TimeoutSeconds * float64(time.Second))
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, Timeout: %s, Input: %s, Output: %s}",
		c.Scraper.BaseURL,
		c.Scraper.GetTimeout(),
		c.InputFile,
		c.OutputFile,
	)
}
