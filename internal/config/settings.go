package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings
const envPrefix = "FINPLAN"

// Settings holds CLI and service settings. Precedence: flags, FINPLAN_*
// environment variables, settings file, defaults.
type Settings struct {
	Log    LogSettings    `mapstructure:"log"`
	Output OutputSettings `mapstructure:"output"`
	Server ServerSettings `mapstructure:"server"`
	Watch  WatchSettings  `mapstructure:"watch"`
}

// LogSettings configures the zap logger
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputSettings configures report rendering
type OutputSettings struct {
	Format string `mapstructure:"format"`
}

// ServerSettings configures the HTTP service
type ServerSettings struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxRequestBody int           `mapstructure:"max_request_body"`
}

// WatchSettings configures the watch command
type WatchSettings struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Defaults
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultOutputFormat   = "console"
	DefaultServerAddr     = ":8080"
	DefaultReadTimeout    = 10 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultMaxRequestBody = 1 << 20
	DefaultWatchDebounce  = 250 * time.Millisecond
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// newViper builds a viper instance with YAML file type, FINPLAN_ env prefix
// and a "." → "_" key replacer, so server.addr reads FINPLAN_SERVER_ADDR.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only resolves keys viper knows about
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.max_request_body", DefaultMaxRequestBody)
	v.SetDefault("watch.debounce", DefaultWatchDebounce)
	return v
}

// LoadSettings reads the optional settings file at path, merges FINPLAN_*
// overrides, applies defaults and validates. An empty path skips the file.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read settings file %q: %w", path, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal settings: %w", err)
	}

	ApplyDefaults(s)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return s, nil
}

// DefaultSettings returns settings with every default applied
func DefaultSettings() *Settings {
	s := &Settings{}
	ApplyDefaults(s)
	return s
}

// ApplyDefaults fills zero-valued fields
func ApplyDefaults(s *Settings) {
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
	if s.Log.Format == "" {
		s.Log.Format = DefaultLogFormat
	}
	if s.Output.Format == "" {
		s.Output.Format = DefaultOutputFormat
	}
	if s.Server.Addr == "" {
		s.Server.Addr = DefaultServerAddr
	}
	if s.Server.ReadTimeout == 0 {
		s.Server.ReadTimeout = DefaultReadTimeout
	}
	if s.Server.WriteTimeout == 0 {
		s.Server.WriteTimeout = DefaultWriteTimeout
	}
	if s.Server.MaxRequestBody == 0 {
		s.Server.MaxRequestBody = DefaultMaxRequestBody
	}
	if s.Watch.Debounce == 0 {
		s.Watch.Debounce = DefaultWatchDebounce
	}
}

// Validate checks settings values. Output format names are checked by the
// output registry when the formatter is resolved.
func (s *Settings) Validate() error {
	s.Log.Level = strings.ToLower(s.Log.Level)
	if !contains(validLogLevels, s.Log.Level) {
		return fmt.Errorf("log.level must be one of %v, got %q", validLogLevels, s.Log.Level)
	}
	s.Log.Format = strings.ToLower(s.Log.Format)
	if !contains(validLogFormats, s.Log.Format) {
		return fmt.Errorf("log.format must be one of %v, got %q", validLogFormats, s.Log.Format)
	}
	if s.Server.ReadTimeout < 0 || s.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}
	if s.Server.MaxRequestBody < 0 {
		return fmt.Errorf("server.max_request_body cannot be negative")
	}
	if s.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce cannot be negative")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
