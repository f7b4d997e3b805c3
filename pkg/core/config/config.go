// ============================================================================
// meinDENKWERK (mDW) - dateutil
// ============================================================================
//
// Package:     config
// Description: Typed configuration loaded from TOML or YAML with defaults,
//              DATEUTIL_* environment overrides and validation
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	mdwlog "github.com/msto63/mdw-dateutil/foundation/core/log"
	"github.com/msto63/mdw-dateutil/foundation/utils/datex"
)

// EnvPrefix prefixes all environment overrides
const EnvPrefix = "DATEUTIL_"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	DateUtil DateUtilConfig `toml:"dateutil" yaml:"dateutil"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Metrics  MetricsConfig  `toml:"metrics" yaml:"metrics"`
	Output   OutputConfig   `toml:"output" yaml:"output"`

	// source is the file the configuration was read from, empty for defaults
	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// DateUtilConfig holds the behaviour of the date operations
type DateUtilConfig struct {
	// UTCParsing is "strict" or "lenient"
	UTCParsing     string `toml:"utc_parsing" yaml:"utc_parsing"`
	DefaultPattern string `toml:"default_pattern" yaml:"default_pattern"`
}

// ServerConfig holds gRPC server settings
type ServerConfig struct {
	Host             string   `toml:"host" yaml:"host"`
	Port             int      `toml:"port" yaml:"port"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	ShutdownTimeout  Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Host    string `toml:"host" yaml:"host"`
	Port    int    `toml:"port" yaml:"port"`
	Path    string `toml:"path" yaml:"path"`
}

// OutputConfig holds CLI output settings
type OutputConfig struct {
	// Format is "text" or "json"
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
		Server:  ServerConfig{EnableReflection: true},
		Output:  OutputConfig{Color: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML (.toml) or YAML (.yaml, .yml) file.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
				WithCode(mdwerror.CodeMissingConfig).
				WithDetail("path", path)
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		err = fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}
	cfg.source = path

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadFromEnv loads configuration from DATEUTIL_CONFIG or a default location.
// When no file exists the defaults are used. Environment overrides are
// applied and the result is validated.
func LoadFromEnv() (*Config, error) {
	return LoadOrDefault("")
}

// LoadOrDefault loads path if set, otherwise behaves like LoadFromEnv
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path == "" {
		path = findDefaultFile()
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths returns the locations searched when no path is given
func DefaultPaths() []string {
	paths := []string{
		"./configs/dateutil.toml",
		"./dateutil.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dateutil", "config.toml"))
	}
	return paths
}

func findDefaultFile() string {
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Source returns the file the configuration was loaded from, or "" for defaults
func (c *Config) Source() string {
	return c.source
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "dateutil"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}

	// DateUtil
	if c.DateUtil.UTCParsing == "" {
		c.DateUtil.UTCParsing = datex.UTCStrict.String()
	}
	if c.DateUtil.DefaultPattern == "" {
		c.DateUtil.DefaultPattern = datex.DefaultPattern
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9170
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}

	// Metrics
	if c.Metrics.Host == "" {
		c.Metrics.Host = "0.0.0.0"
	}
	if c.Metrics.Port == 0 {
		c.Metrics.Port = 9171
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.Name = os.ExpandEnv(c.General.Name)
	c.Server.Host = os.ExpandEnv(c.Server.Host)
	c.Metrics.Host = os.ExpandEnv(c.Metrics.Host)
}

// applyEnv overrides settings from DATEUTIL_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(name, v, err)
		}
		*dst = n
		return nil
	}
	flag := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(name, v, err)
		}
		*dst = b
		return nil
	}

	str("LOG_LEVEL", &c.General.LogLevel)
	str("LOG_FORMAT", &c.General.LogFormat)
	str("ENVIRONMENT", &c.General.Environment)
	str("UTC_PARSING", &c.DateUtil.UTCParsing)
	str("DEFAULT_PATTERN", &c.DateUtil.DefaultPattern)
	str("SERVER_HOST", &c.Server.Host)
	str("METRICS_HOST", &c.Metrics.Host)
	str("METRICS_PATH", &c.Metrics.Path)
	str("OUTPUT", &c.Output.Format)

	if err := num("SERVER_PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := num("METRICS_PORT", &c.Metrics.Port); err != nil {
		return err
	}
	if err := flag("METRICS_ENABLED", &c.Metrics.Enabled); err != nil {
		return err
	}
	return flag("COLOR", &c.Output.Color)
}

func envError(name, value string, err error) error {
	return mdwerror.Wrap(err, "invalid environment override").
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("variable", EnvPrefix+name).
		WithDetail("value", value)
}

// Validate checks the configuration for values the services cannot use
func (c *Config) Validate() error {
	var problems []string

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_level: %v", err))
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_format: %v", err))
	}
	if _, err := c.UTCParsing(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port: %d out of range", c.Server.Port))
	}
	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			problems = append(problems, fmt.Sprintf("metrics.port: %d out of range", c.Metrics.Port))
		}
		if c.Metrics.Port == c.Server.Port && c.Metrics.Host == c.Server.Host {
			problems = append(problems, "metrics.port: collides with server.port")
		}
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			problems = append(problems, fmt.Sprintf("metrics.path: %q must start with /", c.Metrics.Path))
		}
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("output.format: %q (want text or json)", c.Output.Format))
	}

	if len(problems) > 0 {
		return mdwerror.New("invalid configuration: " + strings.Join(problems, "; ")).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("problems", problems)
	}
	return nil
}

// UTCParsing returns the configured datex parsing mode
func (c *Config) UTCParsing() (datex.UTCParsing, error) {
	mode, err := datex.ParseUTCParsing(c.DateUtil.UTCParsing)
	if err != nil {
		return mode, mdwerror.Wrap(err, "dateutil.utc_parsing").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("value", c.DateUtil.UTCParsing)
	}
	return mode, nil
}

// ServerAddress returns the gRPC listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MetricsAddress returns the metrics listen address
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Metrics.Host, c.Metrics.Port)
}
