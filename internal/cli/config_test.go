package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fleckenm/netplot/pkg/pipeline"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Defaults.Layout != "" || cfg.Server.Addr != "" {
		t.Errorf("missing file should yield zero config: %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[defaults]
layout = "spring"
formats = ["html", "png"]
colorscale = "Viridis"

[cache]
redis_url = "redis://localhost:6379/0"

[server]
addr = ":9090"
mongo_uri = "mongodb://localhost:27017"
mongo_database = "graphs"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Defaults.Layout != "spring" {
		t.Errorf("Layout = %q", cfg.Defaults.Layout)
	}
	if len(cfg.Defaults.Formats) != 2 || cfg.Defaults.Formats[0] != "html" {
		t.Errorf("Formats = %v", cfg.Defaults.Formats)
	}
	if cfg.Defaults.Colorscale != "Viridis" {
		t.Errorf("Colorscale = %q", cfg.Defaults.Colorscale)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MongoDatabase != "graphs" {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[defaults\nlayout="), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed TOML should error")
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	c := &CLI{Config: Config{Defaults: DefaultsConfig{
		Layout:     "circular",
		Formats:    []string{"html"},
		Colorscale: "Viridis",
	}}}

	opts := pipeline.Options{}
	c.applyConfigDefaults(&opts)
	if opts.Layout != "circular" || opts.Colorscale != "Viridis" || len(opts.Formats) != 1 {
		t.Errorf("config defaults not applied: %+v", opts)
	}

	// Flags win over config
	opts = pipeline.Options{}
	opts.Layout = "spring"
	c.applyConfigDefaults(&opts)
	if opts.Layout != "spring" {
		t.Errorf("flag value overridden: %q", opts.Layout)
	}
}
