package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Rack.Height != rack.DefaultHeight || cfg.History.Depth != 50 || cfg.History.Backend != BackendFile {
		t.Errorf("missing file should give defaults, got %+v", cfg)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
[rack]
name = "Lab"
height = 24
width = 10

[history]
depth = 200
backend = "redis"
ttl = "48h"

[redis]
addr = "cache.internal:6380"
db = 2

[drop]
slot_height = 18.5

[catalog]
paths = ["/srv/devices", "~/devices"]
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Rack.Name != "Lab" || cfg.Rack.Height != 24 || cfg.Rack.Width != 10 {
		t.Errorf("rack = %+v", cfg.Rack)
	}
	if cfg.History.Depth != 200 || cfg.History.TTL.Duration != 48*time.Hour {
		t.Errorf("history = %+v", cfg.History)
	}
	if cfg.Redis.Addr != "cache.internal:6380" || cfg.Redis.DB != 2 || cfg.Redis.Namespace != "rackula:" {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Drop.SlotHeight != 18.5 {
		t.Errorf("slot height = %v", cfg.Drop.SlotHeight)
	}
	home, _ := os.UserHomeDir()
	if cfg.Catalog.Paths[0] != "/srv/devices" || cfg.Catalog.Paths[1] != filepath.Join(home, "devices") {
		t.Errorf("catalog paths = %v", cfg.Catalog.Paths)
	}

	d := cfg.LayoutDefaults()
	if d.Name != "Lab" || d.Height != 24 || d.Width != rack.Width10 {
		t.Errorf("LayoutDefaults() = %+v", d)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"bad toml", "[rack\nheight = 1", errors.ErrCodeInvalidFormat},
		{"height too large", "[rack]\nheight = 101", errors.ErrCodeInvalidInput},
		{"unsupported width", "[rack]\nwidth = 20", errors.ErrCodeInvalidInput},
		{"unknown backend", "[history]\nbackend = \"s3\"", errors.ErrCodeInvalidInput},
		{"zero depth", "[history]\ndepth = 0", errors.ErrCodeInvalidInput},
		{"bad ttl", "[history]\nttl = \"soon\"", errors.ErrCodeInvalidFormat},
		{"unknown key", "[rack]\ncolour = \"red\"", errors.ErrCodeInvalidInput},
		{"redis without addr", "[history]\nbackend = \"redis\"\n[redis]\naddr = \"\"", errors.ErrCodeInvalidInput},
		{"negative slot height", "[drop]\nslot_height = -1", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadFile() err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvPath, "/etc/rackula.toml")
		if p, _ := Path(); p != "/etc/rackula.toml" {
			t.Errorf("Path() = %q", p)
		}
	})
	t.Run("xdg", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if p, _ := Path(); p != filepath.Join("/tmp/xdg", "rackula", "config.toml") {
			t.Errorf("Path() = %q", p)
		}
	})
	t.Run("home", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		home, _ := os.UserHomeDir()
		if p, _ := Path(); p != filepath.Join(home, ".config", "rackula", "config.toml") {
			t.Errorf("Path() = %q", p)
		}
	})
}

func TestLoadUsesEnv(t *testing.T) {
	t.Setenv(EnvPath, writeConfig(t, "[rack]\nheight = 12"))
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rack.Height != 12 {
		t.Errorf("Load() height = %d, want 12", cfg.Rack.Height)
	}
}
