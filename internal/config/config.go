package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DataDirEnv = "KENSHO_DATA_DIR"

	ProfileStandard = "standard"
	ProfileWide     = "wide"

	defaultTick           = 250 * time.Millisecond
	minTick               = 100 * time.Millisecond
	maxTick               = time.Second
	defaultSaveDelay      = 300 * time.Millisecond
	defaultNotifyTimeout  = 10 * time.Second
	defaultMaxClocks      = 4
	wideMaxClocks         = 6
	defaultMinutes        = 10
	defaultLabel          = "Mindful Session"
	defaultSound          = "chime"
	defaultDataDirName    = ".kensho"
	defaultConfigFileName = "config.toml"
)

// Duration accepts Go duration strings such as "250ms" or "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return d.UnmarshalText([]byte(s))
}

type Notifications struct {
	Enabled *bool    `toml:"enabled" yaml:"enabled"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

type Config struct {
	Profile        string        `toml:"profile" yaml:"profile"`
	TickInterval   Duration      `toml:"tick_interval" yaml:"tick_interval"`
	SaveDelay      Duration      `toml:"save_delay" yaml:"save_delay"`
	MaxClocks      int           `toml:"max_clocks" yaml:"max_clocks"`
	DefaultMinutes int           `toml:"default_minutes" yaml:"default_minutes"`
	DefaultLabel   string        `toml:"default_label" yaml:"default_label"`
	DefaultSound   string        `toml:"default_sound" yaml:"default_sound"`
	DataDir        string        `toml:"data_dir" yaml:"data_dir"`
	Journal        *bool         `toml:"journal" yaml:"journal"`
	// HoldWhenLocked freezes the clocks while the session is locked or asleep.
	HoldWhenLocked bool          `toml:"hold_when_locked" yaml:"hold_when_locked"`
	Notifications  Notifications `toml:"notifications" yaml:"notifications"`
}

// SetDefault fills unset values and clamps out-of-range ones.
func (c *Config) SetDefault() {
	if c.Profile != ProfileWide {
		c.Profile = ProfileStandard
	}

	switch {
	case c.TickInterval.Duration <= 0:
		c.TickInterval.Duration = defaultTick
	case c.TickInterval.Duration < minTick:
		c.TickInterval.Duration = minTick
	case c.TickInterval.Duration > maxTick:
		c.TickInterval.Duration = maxTick
	}
	if c.SaveDelay.Duration <= 0 {
		c.SaveDelay.Duration = defaultSaveDelay
	}

	if c.MaxClocks <= 0 {
		c.MaxClocks = defaultMaxClocks
		if c.Profile == ProfileWide {
			c.MaxClocks = wideMaxClocks
		}
	}
	c.MaxClocks = min(c.MaxClocks, wideMaxClocks)

	if c.DefaultMinutes <= 0 {
		c.DefaultMinutes = defaultMinutes
	}
	if strings.TrimSpace(c.DefaultLabel) == "" {
		c.DefaultLabel = defaultLabel
	}
	if c.DefaultSound == "" {
		c.DefaultSound = defaultSound
	}
	c.DataDir = resolveDataDir(c.DataDir)

	if c.Journal == nil {
		enabled := true
		c.Journal = &enabled
	}
	if c.Notifications.Enabled == nil {
		enabled := true
		c.Notifications.Enabled = &enabled
	}
	if c.Notifications.Timeout.Duration <= 0 {
		c.Notifications.Timeout.Duration = defaultNotifyTimeout
	}
}

// resolveDataDir prefers KENSHO_DATA_DIR, then the configured directory, then
// ~/.kensho. A leading ~ is expanded.
func resolveDataDir(configured string) string {
	dir := os.Getenv(DataDirEnv)
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		dir = filepath.Join("~", defaultDataDirName)
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}

func (c *Config) NotificationsEnabled() bool {
	return c.Notifications.Enabled == nil || *c.Notifications.Enabled
}

func (c *Config) JournalEnabled() bool {
	return c.Journal == nil || *c.Journal
}

func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "kensho.log")
}

// DefaultPath is $XDG_CONFIG_HOME/kensho/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(resolveDataDir(""), defaultConfigFileName)
	}
	return filepath.Join(dir, "kensho", defaultConfigFileName)
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.SetDefault()
	return c
}

var AppConfig = Default()

// LoadConfigFromFile reads path into AppConfig. YAML is used for .yaml and
// .yml files, TOML otherwise. A missing file leaves the defaults in place.
func LoadConfigFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			AppConfig = Default()
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadConfigFromYAML(data)
	default:
		return LoadConfigFromBytes(data)
	}
}

// LoadConfigFromBytes parses TOML.
func LoadConfigFromBytes(data []byte) error {
	var config Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		var strict *toml.StrictMissingError
		if !errors.As(err, &strict) {
			return fmt.Errorf("parse config: %w", err)
		}
		return fmt.Errorf("parse config: %s", strict.String())
	}
	config.SetDefault()
	AppConfig = config
	return nil
}

// LoadConfigFromYAML parses YAML.
func LoadConfigFromYAML(data []byte) error {
	var config Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	config.SetDefault()
	AppConfig = config
	return nil
}
