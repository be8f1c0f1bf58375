package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultListen          = ":3000"
	DefaultUpstreamOrigin  = "https://localhost:8443"
	DefaultServerURL       = "http://localhost:3000"
	DefaultHealthPath      = "/api/health"
	DefaultHealthInterval  = 60 * time.Second
	DefaultHealthTimeout   = 3 * time.Second
	DefaultUpstreamTimeout = 30 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPageSize        = 10
	MaxPageSize            = 1000
	DefaultLocale          = "en"
	DefaultOutputFormat    = "table"
	DefaultCacheTTLSeconds = 3600

	configFileName = "config.yaml"
	configFilePerm = 0600
)

// Output formats accepted by listing commands.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// Validation errors.
var (
	ErrInvalidListen       = errors.New("server.listen must not be empty")
	ErrInvalidOrigin       = errors.New("upstream.origin must be an absolute http or https URL")
	ErrInvalidHealthURL    = errors.New("health.url must be an absolute http or https URL")
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrInvalidPageSize     = fmt.Errorf("dashboard.page_size must be between 1 and %d", MaxPageSize)
	ErrInvalidOutputFormat = errors.New("output.default_format must be table, json, or ndjson")
	ErrInvalidLogLevel     = errors.New("logging.level is not a valid level")
	ErrInvalidLogFormat    = errors.New("logging.format must be console or json")
	ErrUnknownKey          = errors.New("unknown configuration key")
)

// Config is the pipewatch configuration.
//
// YAML Location: ~/.pipewatch/config.yaml (or $PIPEWATCH_HOME/config.yaml).
type Config struct {
	Server    ServerConfig    `yaml:"server"    json:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"  json:"upstream"`
	Health    HealthConfig    `yaml:"health"    json:"health"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard"`
	Output    OutputConfig    `yaml:"output"    json:"output"`
	Logging   LoggingConfig   `yaml:"logging"   json:"logging"`
}

// ServerConfig configures the HTTP server started by "pipewatch serve".
type ServerConfig struct {
	Listen          string        `yaml:"listen"                     json:"listen"`
	ReadTimeout     time.Duration `yaml:"read_timeout,omitempty"     json:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `yaml:"write_timeout,omitempty"    json:"write_timeout,omitempty"`
	IdleTimeout     time.Duration `yaml:"idle_timeout,omitempty"     json:"idle_timeout,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty" json:"shutdown_timeout,omitempty"`
}

// HealthConfig configures the health poller used by the dashboard and status commands.
type HealthConfig struct {
	// URL is the health endpoint to probe. Empty means DashboardConfig.ServerURL + /api/health.
	URL      string        `yaml:"url,omitempty"      json:"url,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty" json:"interval,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"  json:"timeout,omitempty"`
}

// DashboardConfig configures the CLI and TUI renderers.
type DashboardConfig struct {
	// ServerURL is the base URL of a running "pipewatch serve".
	ServerURL string      `yaml:"server_url" json:"server_url"`
	PageSize  int         `yaml:"page_size"  json:"page_size"`
	Locale    string      `yaml:"locale"     json:"locale"`
	Cache     CacheConfig `yaml:"cache"      json:"cache"`
}

// CacheConfig configures the on-disk snapshot of the last live listing.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"             json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"         json:"ttl_seconds"`
	Directory  string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// OutputConfig configures listing output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Defaults returns a Config populated with default values only.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:          DefaultListen,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Upstream: UpstreamConfig{
			Origin:  DefaultUpstreamOrigin,
			Timeout: DefaultUpstreamTimeout,
			Routes:  DefaultRoutes(),
		},
		Health: HealthConfig{
			Interval: DefaultHealthInterval,
			Timeout:  DefaultHealthTimeout,
		},
		Dashboard: DashboardConfig{
			ServerURL: DefaultServerURL,
			PageSize:  DefaultPageSize,
			Locale:    DefaultLocale,
			Cache: CacheConfig{
				Enabled:    true,
				TTLSeconds: DefaultCacheTTLSeconds,
			},
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// New loads the configuration: defaults, then the config file (if present), then environment
// overrides. A malformed config file is logged and ignored.
func New() *Config {
	cfg := Defaults()

	path, err := GetConfigPath()
	if err == nil {
		if loadErr := cfg.LoadFile(path); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			logger := GetLogger()
			logger.Warn().
				Str("component", "config").
				Err(loadErr).
				Str("path", path).
				Msg("ignoring unreadable config file")
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.ApplyDefaults()
	return cfg
}

// Load reads path strictly: a missing or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.ApplyDefaults()
	return cfg, nil
}

// LoadFile unmarshals path onto c. Keys absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Save writes c to path as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies PIPEWATCH_* environment variables on top of c.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PIPEWATCH_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv("PIPEWATCH_UPSTREAM_ORIGIN"); v != "" {
		c.Upstream.Origin = v
	}
	if v := os.Getenv("PIPEWATCH_UPSTREAM_VERIFY_TLS"); v != "" {
		if verify, err := strconv.ParseBool(v); err == nil {
			c.Upstream.VerifyTLS = verify
		}
	}
	if v := os.Getenv("PIPEWATCH_SERVER_URL"); v != "" {
		c.Dashboard.ServerURL = v
	}
	if v := os.Getenv("PIPEWATCH_HEALTH_URL"); v != "" {
		c.Health.URL = v
	}
	if v := os.Getenv("PIPEWATCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PIPEWATCH_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("PIPEWATCH_OUTPUT_FORMAT"); v != "" {
		c.Output.DefaultFormat = v
	}
}

// ApplyDefaults fills zero values left behind by partial files or shallow merges.
func (c *Config) ApplyDefaults() {
	d := Defaults()

	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}
	fillDuration(&c.Server.ReadTimeout, d.Server.ReadTimeout)
	fillDuration(&c.Server.WriteTimeout, d.Server.WriteTimeout)
	fillDuration(&c.Server.IdleTimeout, d.Server.IdleTimeout)
	fillDuration(&c.Server.ShutdownTimeout, d.Server.ShutdownTimeout)

	if c.Upstream.Origin == "" {
		c.Upstream.Origin = d.Upstream.Origin
	}
	fillDuration(&c.Upstream.Timeout, d.Upstream.Timeout)
	if len(c.Upstream.Routes) == 0 {
		c.Upstream.Routes = d.Upstream.Routes
	}

	fillDuration(&c.Health.Interval, d.Health.Interval)
	fillDuration(&c.Health.Timeout, d.Health.Timeout)

	if c.Dashboard.ServerURL == "" {
		c.Dashboard.ServerURL = d.Dashboard.ServerURL
	}
	if c.Dashboard.PageSize == 0 {
		c.Dashboard.PageSize = d.Dashboard.PageSize
	}
	if c.Dashboard.Locale == "" {
		c.Dashboard.Locale = d.Dashboard.Locale
	}
	if c.Dashboard.Cache.TTLSeconds == 0 {
		c.Dashboard.Cache.TTLSeconds = d.Dashboard.Cache.TTLSeconds
	}

	if c.Output.DefaultFormat == "" {
		c.Output.DefaultFormat = d.Output.DefaultFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

func fillDuration(dst *time.Duration, def time.Duration) {
	if *dst == 0 {
		*dst = def
	}
}

// HealthURL returns the URL the health poller probes.
func (c *Config) HealthURL() string {
	if c.Health.URL != "" {
		return c.Health.URL
	}
	return strings.TrimRight(c.Dashboard.ServerURL, "/") + DefaultHealthPath
}

// Validate checks the configuration for values the server and renderers cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Listen) == "" {
		return ErrInvalidListen
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"upstream.timeout":        c.Upstream.Timeout,
		"health.interval":         c.Health.Interval,
		"health.timeout":          c.Health.Timeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s: %w, got %s", name, ErrInvalidDuration, d)
		}
	}

	if err := c.Upstream.Validate(); err != nil {
		return err
	}
	if !isHTTPURL(c.HealthURL()) {
		return fmt.Errorf("%w: %q", ErrInvalidHealthURL, c.HealthURL())
	}
	if c.Dashboard.PageSize < 1 || c.Dashboard.PageSize > MaxPageSize {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, c.Dashboard.PageSize)
	}

	switch c.Output.DefaultFormat {
	case OutputTable, OutputJSON, OutputNDJSON:
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w, got %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

// isHTTPURL reports whether raw is an absolute http(s) URL with a host.
func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Flatten returns every leaf setting as a dotted key mapped to its YAML value.
func (c *Config) Flatten() (map[string]string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	var tree map[string]interface{}
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	flat := make(map[string]string)
	flattenInto(flat, "", tree)
	return flat, nil
}

func flattenInto(flat map[string]string, prefix string, node interface{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, child := range v {
			name := key
			if prefix != "" {
				name = prefix + "." + key
			}
			flattenInto(flat, name, child)
		}
	case []interface{}:
		for i, child := range v {
			flattenInto(flat, fmt.Sprintf("%s.%d", prefix, i), child)
		}
	default:
		flat[prefix] = fmt.Sprint(v)
	}
}

// Get returns the value of a dotted key such as "dashboard.page_size".
func (c *Config) Get(key string) (string, error) {
	flat, err := c.Flatten()
	if err != nil {
		return "", err
	}
	value, ok := flat[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return value, nil
}

// SortedKeys returns the keys of a flattened config in order.
func SortedKeys(flat map[string]string) []string {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
