package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "server:\n  address: 127.0.0.1\n  port: 9999\nworker:\n  count: 4\n  max_request_body: 2MB\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != "127.0.0.1" || cfg.Server.Port != 9999 {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Worker.Count != 4 {
		t.Fatalf("Worker.Count = %d, want 4", cfg.Worker.Count)
	}
	if cfg.Worker.MaxRequestBody.Int64() != 2_000_000 {
		t.Fatalf("MaxRequestBody = %d, want 2000000", cfg.Worker.MaxRequestBody.Int64())
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Defaults()
	t.Setenv("WEBCORE_ADDR", "10.0.0.5:7000")
	t.Setenv("WEBCORE_WORKERS", "8")
	t.Setenv("WEBCORE_STATIC_DIRS", "./a, ./b")

	if !ApplyEnvOverrides(cfg) {
		t.Fatal("expected env overrides to be applied")
	}
	if cfg.Server.Address != "10.0.0.5" || cfg.Server.Port != 7000 {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Worker.Count != 8 {
		t.Fatalf("Worker.Count = %d, want 8", cfg.Worker.Count)
	}
	if len(cfg.Static.Dirs) != 2 || cfg.Static.Dirs[0] != "./a" || cfg.Static.Dirs[1] != "./b" {
		t.Fatalf("Static.Dirs = %v", cfg.Static.Dirs)
	}
}

func TestDurationUnmarshal(t *testing.T) {
	var holder struct {
		D Duration `yaml:"d"`
	}
	if err := yaml.Unmarshal([]byte("d: 250ms"), &holder); err != nil {
		t.Fatal(err)
	}
	if holder.D.Duration().Milliseconds() != 250 {
		t.Fatalf("Duration = %v, want 250ms", holder.D.Duration())
	}
}

func TestSizeBytesUnmarshal(t *testing.T) {
	var holder struct {
		S SizeBytes `yaml:"s"`
	}
	if err := yaml.Unmarshal([]byte("s: 1KB"), &holder); err != nil {
		t.Fatal(err)
	}
	if holder.S.Int64() != 1000 {
		t.Fatalf("SizeBytes = %d, want 1000", holder.S.Int64())
	}
}
