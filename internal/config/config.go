// Package config provides configuration file and environment support for
// otlp2parquetd.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const envPrefix = "OTLP2PARQUET_"

// Config is the full otlp2parquetd configuration, assembled by layering
// environment variables over a config file over built-in defaults (spec
// §6: "layered, earlier wins").
type Config struct {
	Batch   BatchConfig   `toml:"batch"`
	Storage StorageConfig `toml:"storage"`
	Host    HostConfig    `toml:"host"`
	Parquet ParquetConfig `toml:"parquet"`
}

// BatchConfig holds the accumulator's flush thresholds (spec §4.4).
type BatchConfig struct {
	MaxRows    int   `toml:"max_rows"`
	MaxBytes   int   `toml:"max_bytes"`
	MaxAgeSecs int   `toml:"max_age_secs"`
	Enabled    *bool `toml:"enabled"`
}

// IsEnabled returns whether batching is enabled (defaults to true).
func (b BatchConfig) IsEnabled() bool {
	if b.Enabled == nil {
		return true
	}
	return *b.Enabled
}

// MaxAge returns the configured max age as a time.Duration.
func (b BatchConfig) MaxAge() time.Duration {
	return time.Duration(b.MaxAgeSecs) * time.Second
}

// StorageConfig selects and configures the object storage backend.
type StorageConfig struct {
	Backend     string `toml:"backend"` // fs | s3 | r2
	Bucket      string `toml:"bucket"`
	Region      string `toml:"region"`
	Endpoint    string `toml:"endpoint"`
	AccessKeyID string `toml:"access_key_id"`
	SecretKey   string `toml:"secret_key"`
	PathPrefix  string `toml:"path_prefix"`
	// BaseDir is the filesystem backend's root directory.
	BaseDir string `toml:"base_dir"`
}

// HostConfig holds the HTTP host-layer settings.
type HostConfig struct {
	ListenAddr      string `toml:"listen_addr"`
	LogLevel        string `toml:"log_level"`
	LogFormat       string `toml:"log_format"` // text | json
	MaxPayloadBytes int64  `toml:"max_payload_bytes"`
}

// ParquetConfig holds Parquet writer settings initialized once at
// startup (spec §6: "PARQUET_ROW_GROUP_SIZE — initialized once at
// startup").
type ParquetConfig struct {
	RowGroupSize int `toml:"row_group_size"`
}

// Default returns the built-in platform defaults (layer 4).
func Default() *Config {
	return &Config{
		Batch: BatchConfig{
			MaxRows:    200_000,
			MaxBytes:   128 * 1024 * 1024,
			MaxAgeSecs: 10,
		},
		Storage: StorageConfig{
			Backend: "fs",
			BaseDir: filepath.Join(ConfigDir(), "data"),
		},
		Host: HostConfig{
			ListenAddr:      ":4318",
			LogLevel:        "info",
			LogFormat:       "text",
			MaxPayloadBytes: 8 * 1024 * 1024,
		},
		Parquet: ParquetConfig{
			RowGroupSize: 32 * 1024,
		},
	}
}

// ConfigDir returns the otlp2parquet config directory: XDG_CONFIG_HOME
// /otlp2parquet, or ~/.config/otlp2parquet.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "otlp2parquet")
}

// ConfigPath returns the default config file location (layer 3).
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFrom reads and merges a TOML config file over the built-in
// defaults. A missing file is not an error — callers fall through to
// layer 4.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Load assembles the final Config by applying spec §6's four layers in
// priority order: environment variables, then OTLP2PARQUET_CONFIG (or
// inline OTLP2PARQUET_CONFIG_CONTENT), then the default config file
// location, then built-in defaults.
func Load() (*Config, error) {
	cfg, err := loadFileLayer()
	if err != nil {
		return nil, err
	}
	applyEnvLayer(cfg)
	return cfg, nil
}

func loadFileLayer() (*Config, error) {
	if content := os.Getenv(envPrefix + "CONFIG_CONTENT"); content != "" {
		cfg := Default()
		if err := toml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, fmt.Errorf("config: parse %sCONFIG_CONTENT: %w", envPrefix, err)
		}
		return cfg, nil
	}
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		return LoadFrom(path)
	}
	return LoadFrom(ConfigPath())
}

// applyEnvLayer overlays recognized OTLP2PARQUET_* environment variables
// on top of the file-derived config, per spec §6's recognized-options
// table. Env vars take precedence over everything else.
func applyEnvLayer(cfg *Config) {
	if v, ok := envInt(envPrefix + "BATCH_MAX_ROWS"); ok {
		cfg.Batch.MaxRows = v
	}
	if v, ok := envInt(envPrefix + "BATCH_MAX_BYTES"); ok {
		cfg.Batch.MaxBytes = v
	}
	if v, ok := envInt(envPrefix + "BATCH_MAX_AGE_SECS"); ok {
		cfg.Batch.MaxAgeSecs = v
	}
	if v, ok := envBool(envPrefix + "BATCH_ENABLED"); ok {
		cfg.Batch.Enabled = &v
	}
	if v, ok := envInt64(envPrefix + "MAX_PAYLOAD_BYTES"); ok {
		cfg.Host.MaxPayloadBytes = v
	}

	if v := os.Getenv(envPrefix + "STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(envPrefix + "STORAGE_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_REGION"); v != "" {
		cfg.Storage.Region = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.AccessKeyID = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_PATH_PREFIX"); v != "" {
		cfg.Storage.PathPrefix = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_BASE_DIR"); v != "" {
		cfg.Storage.BaseDir = v
	}

	if v := os.Getenv(envPrefix + "LISTEN_ADDR"); v != "" {
		cfg.Host.ListenAddr = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Host.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		cfg.Host.LogFormat = strings.ToLower(v)
	}
	if v, ok := envInt(envPrefix + "PARQUET_ROW_GROUP_SIZE"); ok {
		cfg.Parquet.RowGroupSize = v
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt64(key string) (int64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate checks the assembled config for the combinations that can
// only be judged once every layer has been applied (spec §7:
// ConfigError, "invalid or incomplete configuration at startup").
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "fs":
		if c.Storage.BaseDir == "" {
			return fmt.Errorf("config: storage.base_dir is required for the fs backend")
		}
	case "s3", "r2":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("config: storage.bucket is required for the %s backend", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("config: unrecognized storage.backend %q (want fs, s3, or r2)", c.Storage.Backend)
	}
	if c.Host.LogFormat != "text" && c.Host.LogFormat != "json" {
		return fmt.Errorf("config: unrecognized host.log_format %q (want text or json)", c.Host.LogFormat)
	}
	if c.Batch.MaxRows <= 0 || c.Batch.MaxBytes <= 0 || c.Batch.MaxAgeSecs <= 0 {
		return fmt.Errorf("config: batch thresholds must be positive")
	}
	return nil
}
