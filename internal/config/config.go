// Package config loads the rackula user configuration.
//
// Configuration is a TOML file at $RACKULA_CONFIG, or
// $XDG_CONFIG_HOME/rackula/config.toml (default ~/.config/rackula/config.toml).
// A missing file is not an error; every setting has a default.
//
//	[rack]
//	name = "Rack"
//	height = 42
//	width = 19
//
//	[history]
//	depth = 50
//	backend = "file"   # file, redis or none
//	ttl = "720h"
//
//	[redis]
//	addr = "localhost:6379"
//	namespace = "rackula:"
//
//	[drop]
//	slot_height = 22
//
//	[catalog]
//	paths = ["~/.config/rackula/devices"]
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/history"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
	"github.com/tangramor/Rackula-sub001/pkg/rack/drop"
	"github.com/tangramor/Rackula-sub001/pkg/session"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "RACKULA_CONFIG"

const appName = "rackula"

// Journal backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full user configuration.
type Config struct {
	Rack    RackConfig    `toml:"rack"`
	History HistoryConfig `toml:"history"`
	Redis   RedisConfig   `toml:"redis"`
	Drop    DropConfig    `toml:"drop"`
	Catalog CatalogConfig `toml:"catalog"`
}

// RackConfig holds the settings for new and reset racks.
type RackConfig struct {
	Name   string `toml:"name" validate:"max=100"`
	Height int    `toml:"height" validate:"gte=1,lte=100"`
	Width  int    `toml:"width" validate:"oneof=10 19 21 23"`
}

// HistoryConfig controls undo depth and the journal backend.
type HistoryConfig struct {
	Depth   int      `toml:"depth" validate:"gte=1,lte=10000"`
	Backend string   `toml:"backend" validate:"oneof=file redis none"`
	TTL     Duration `toml:"ttl"`
}

// RedisConfig is used when the history backend is redis.
type RedisConfig struct {
	Addr      string `toml:"addr" validate:"omitempty,hostname_port"`
	Password  string `toml:"password"`
	DB        int    `toml:"db" validate:"gte=0,lte=15"`
	Namespace string `toml:"namespace"`
}

// DropConfig tunes pointer-to-slot conversion.
type DropConfig struct {
	SlotHeight float64 `toml:"slot_height" validate:"gt=0"`
}

// CatalogConfig lists device-type library files or directories loaded on
// every run.
type CatalogConfig struct {
	Paths []string `toml:"paths"`
}

// Duration is a time.Duration written as a string in TOML, e.g. "720h".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rack: RackConfig{
			Name:   rack.DefaultName,
			Height: rack.DefaultHeight,
			Width:  int(rack.DefaultWidth),
		},
		History: HistoryConfig{
			Depth:   history.DefaultMaxDepth,
			Backend: BackendFile,
			TTL:     Duration{session.DefaultTTL},
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			Namespace: appName + ":",
		},
		Drop: DropConfig{SlotHeight: drop.DefaultSlotHeight},
	}
}

var validate = validator.New()

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.New(errors.ErrCodeInvalidInput, "config: %s fails %q (value %v)",
				strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config.")), fe.Tag(), fe.Value())
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "config")
	}
	if c.History.Backend == BackendRedis && c.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "config: redis.addr is required when history.backend is redis")
	}
	return nil
}

// LayoutDefaults converts the rack section to layout defaults.
func (c Config) LayoutDefaults() layout.Defaults {
	return layout.Defaults{Name: c.Rack.Name, Height: c.Rack.Height, Width: rack.Width(c.Rack.Width)}
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config from [Path]. A missing file yields [Default].
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	for i, p := range cfg.Catalog.Paths {
		cfg.Catalog.Paths[i] = expandHome(p)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
