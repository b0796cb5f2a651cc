package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/godot-bridge/lifecycle"
)

// isolate runs the test in an empty directory with no config file set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(FileEnv, "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Errorf("Load() = %+v, want %+v", c, Default())
	}
	if c.Variant.Size != 24 || !c.Log.HostSink || c.Variant.DisableDestroy {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if l, _ := c.MinimumLevel(); l != lifecycle.LevelScene {
		t.Errorf("MinimumLevel = %s", l)
	}
	if l, _ := c.ZapLevel(); l != zapcore.InfoLevel {
		t.Errorf("ZapLevel = %s", l)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	yaml := []byte("log:\n  level: debug\n  host_sink: false\nvariant:\n  disable_destroy: true\nextension:\n  minimum_level: core\n")
	if err := os.WriteFile(filepath.Join(dir, "gdbridge.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GDBRIDGE_LOG_LEVEL", "warn")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Log.Level != "warn" {
		t.Errorf("env did not override file: level = %q", c.Log.Level)
	}
	if c.Log.HostSink || !c.Variant.DisableDestroy {
		t.Errorf("file values not applied: %+v", c)
	}
	if l, _ := c.MinimumLevel(); l != lifecycle.LevelCore {
		t.Errorf("MinimumLevel = %s", l)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	os.WriteFile(path, []byte("log:\n  development: true\n"), 0o644)
	t.Setenv(FileEnv, path)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Log.Development {
		t.Error("explicit file not read")
	}

	t.Setenv(FileEnv, filepath.Join(dir, "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("missing explicit file expected error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad minimum level", func(c *Config) { c.Extension.MinimumLevel = "physics" }},
		{"zero variant size", func(c *Config) { c.Variant.Size = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GDBRIDGE_EXTENSION_MINIMUM_LEVEL", "nowhere")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid minimum level")
	}
}
