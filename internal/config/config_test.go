package config

import (
	"os"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Batch.MaxRows != 200_000 {
		t.Errorf("MaxRows = %d, want 200000", cfg.Batch.MaxRows)
	}
}

func TestLoadFromParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.toml"
	content := []byte(`
[batch]
max_rows = 50000
enabled = false

[storage]
backend = "s3"
bucket = "otlp-archive"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Batch.MaxRows != 50_000 {
		t.Errorf("MaxRows = %d, want 50000", cfg.Batch.MaxRows)
	}
	if cfg.Batch.IsEnabled() {
		t.Errorf("IsEnabled() = true, want false")
	}
	if cfg.Storage.Backend != "s3" || cfg.Storage.Bucket != "otlp-archive" {
		t.Errorf("Storage = %+v, want backend=s3 bucket=otlp-archive", cfg.Storage)
	}
}

func TestEnvLayerOverridesFileLayer(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.toml"
	if err := os.WriteFile(path, []byte("[batch]\nmax_rows = 50000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(envPrefix+"CONFIG", path)
	t.Setenv(envPrefix+"BATCH_MAX_ROWS", "999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Batch.MaxRows != 999 {
		t.Errorf("MaxRows = %d, want 999 (env should win over file)", cfg.Batch.MaxRows)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "ftp"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for unrecognized backend")
	}
}
