package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tunables. Values come from defaults, then the config
// file, then PROCSWEEP_* environment variables, in increasing precedence.
type Config struct {
	Refresh RefreshConfig `mapstructure:"refresh"`
	Layout  LayoutConfig  `mapstructure:"layout"`
	Debug   DebugConfig   `mapstructure:"debug"`
}

// RefreshConfig controls the two background refresh loops.
type RefreshConfig struct {
	// ProcessPollMs is the process watcher's tick interval in milliseconds.
	ProcessPollMs int `mapstructure:"process_poll_ms"`
	// FilePollMs is the file watcher's tick interval in milliseconds.
	FilePollMs int `mapstructure:"file_poll_ms"`
	// RerenderDelayMs is the minimum gap between full process-table
	// refreshes. The cheap liveness tick runs much more often than the
	// expensive full enumeration needs to.
	RerenderDelayMs int `mapstructure:"rerender_delay_ms"`
	// StatusDurationMs is how long transient status messages stay visible.
	StatusDurationMs int `mapstructure:"status_duration_ms"`
	// ShowKernelThreads includes kernel threads in the process table.
	ShowKernelThreads bool `mapstructure:"show_kernel_threads"`
}

// LayoutConfig controls orientation and the geometry fallback.
type LayoutConfig struct {
	// LandscapeDivisor picks side-by-side layout when columns divided by
	// this value exceeds the line count.
	LandscapeDivisor int `mapstructure:"landscape_divisor"`
	// FallbackColumns and FallbackLines are used when the terminal size
	// cannot be determined.
	FallbackColumns int `mapstructure:"fallback_columns"`
	FallbackLines   int `mapstructure:"fallback_lines"`
}

// DebugConfig controls the deferred diagnostic log.
type DebugConfig struct {
	// Log queues diagnostic messages in memory and prints them after the
	// UI exits.
	Log bool `mapstructure:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Refresh: RefreshConfig{
			ProcessPollMs:     500,
			FilePollMs:        500,
			RerenderDelayMs:   5000,
			StatusDurationMs:  3000,
			ShowKernelThreads: false,
		},
		Layout: LayoutConfig{
			LandscapeDivisor: 3,
			FallbackColumns:  80,
			FallbackLines:    24,
		},
		Debug: DebugConfig{
			Log: false,
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	d := Default()
	viper.SetDefault("refresh.process_poll_ms", d.Refresh.ProcessPollMs)
	viper.SetDefault("refresh.file_poll_ms", d.Refresh.FilePollMs)
	viper.SetDefault("refresh.rerender_delay_ms", d.Refresh.RerenderDelayMs)
	viper.SetDefault("refresh.status_duration_ms", d.Refresh.StatusDurationMs)
	viper.SetDefault("refresh.show_kernel_threads", d.Refresh.ShowKernelThreads)
	viper.SetDefault("layout.landscape_divisor", d.Layout.LandscapeDivisor)
	viper.SetDefault("layout.fallback_columns", d.Layout.FallbackColumns)
	viper.SetDefault("layout.fallback_lines", d.Layout.FallbackLines)
	viper.SetDefault("debug.log", d.Debug.Log)
}

// Load reads the config file (if present) and environment overrides, then
// unmarshals into a Config. A missing config file is not an error.
func Load() (*Config, error) {
	SetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())
	viper.SetEnvPrefix("procsweep")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

// normalize clamps nonsensical values back to defaults so a bad config
// file degrades rather than wedging the refresh loops.
func (c *Config) normalize() {
	d := Default()
	if c.Refresh.ProcessPollMs <= 0 {
		c.Refresh.ProcessPollMs = d.Refresh.ProcessPollMs
	}
	if c.Refresh.FilePollMs <= 0 {
		c.Refresh.FilePollMs = d.Refresh.FilePollMs
	}
	if c.Refresh.RerenderDelayMs < 0 {
		c.Refresh.RerenderDelayMs = d.Refresh.RerenderDelayMs
	}
	if c.Refresh.StatusDurationMs <= 0 {
		c.Refresh.StatusDurationMs = d.Refresh.StatusDurationMs
	}
	if c.Layout.LandscapeDivisor <= 0 {
		c.Layout.LandscapeDivisor = d.Layout.LandscapeDivisor
	}
	if c.Layout.FallbackColumns <= 0 {
		c.Layout.FallbackColumns = d.Layout.FallbackColumns
	}
	if c.Layout.FallbackLines <= 0 {
		c.Layout.FallbackLines = d.Layout.FallbackLines
	}
}

// ProcessPoll returns the process watcher tick interval.
func (c *RefreshConfig) ProcessPoll() time.Duration {
	return time.Duration(c.ProcessPollMs) * time.Millisecond
}

// FilePoll returns the file watcher tick interval.
func (c *RefreshConfig) FilePoll() time.Duration {
	return time.Duration(c.FilePollMs) * time.Millisecond
}

// RerenderDelay returns the minimum gap between full process refreshes.
func (c *RefreshConfig) RerenderDelay() time.Duration {
	return time.Duration(c.RerenderDelayMs) * time.Millisecond
}

// StatusDuration returns how long status messages stay visible.
func (c *RefreshConfig) StatusDuration() time.Duration {
	return time.Duration(c.StatusDurationMs) * time.Millisecond
}

// ConfigDir returns the user's config directory for procsweep.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "procsweep")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".procsweep"
	}
	return filepath.Join(home, ".config", "procsweep")
}
