// Package config loads envstash configuration from a YAML file with
// ENVSTASH_* environment overrides. The result is an explicit struct handed
// to the orchestrator; no component reads ambient environment variables for
// coordination.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"envstash/pkg/errors"
)

// Cache backend types
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Installer kinds
const (
	InstallerConda = "conda"
	InstallerPip   = "pip"
)

// Config is the complete envstash configuration, flattened into a single
// manageable structure.
type Config struct {
	// Provisioning inputs
	SpecPath  string `yaml:"spec_path"`  // environment spec file
	TargetDir string `yaml:"target_dir"` // instance-local ephemeral storage root

	// Cache store
	CacheBackend string `yaml:"cache_backend"` // "local" or "s3"
	CacheRoot    string `yaml:"cache_root"`    // shared filesystem path (local backend)

	// S3 backend (ignored for local backend)
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
	S3UseSSL    bool   `yaml:"s3_use_ssl"`

	// Builder
	Installer    string        `yaml:"installer"`     // "conda" or "pip"
	BootstrapURL string        `yaml:"bootstrap_url"` // base runtime download location
	BuildTimeout time.Duration `yaml:"build_timeout"` // 0 = rely on scheduler walltime only

	// Restore-failure policy: when true a failed restore falls through to a
	// full rebuild; when false (default) the instance fails closed.
	RebuildOnRestoreFailure bool `yaml:"rebuild_on_restore_failure"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// GetDefaults returns a config with sensible defaults
func GetDefaults() *Config {
	return &Config{
		CacheBackend:            BackendLocal,
		CacheRoot:               "/shared/envstash",
		Installer:               InstallerConda,
		BootstrapURL:            "https://micro.mamba.pm/api/micromamba/linux-64/latest",
		S3UseSSL:                true,
		RebuildOnRestoreFailure: false,
		LogLevel:                "INFO",
	}
}

// LoadConfig loads configuration from the given path (or the
// ENVSTASH_CONFIG path when empty), applies environment overrides, and
// validates the result. A missing config file is not an error; defaults
// plus overrides apply.
func LoadConfig(path string) (*Config, error) {
	cfg := GetDefaults()

	if path == "" {
		path = os.Getenv("ENVSTASH_CONFIG")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.WrapConfigError("file", "", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapConfigError("file", "", fmt.Errorf("parse %s: %w", path, err))
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENVSTASH_CACHE_ROOT"); v != "" {
		cfg.CacheRoot = v
	}
	if v := os.Getenv("ENVSTASH_CACHE_BACKEND"); v != "" {
		cfg.CacheBackend = v
	}
	if v := os.Getenv("ENVSTASH_TARGET_DIR"); v != "" {
		cfg.TargetDir = v
	}
	if v := os.Getenv("ENVSTASH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ENVSTASH_S3_ENDPOINT"); v != "" {
		cfg.S3Endpoint = v
	}
	if v := os.Getenv("ENVSTASH_S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("ENVSTASH_S3_ACCESS_KEY"); v != "" {
		cfg.S3AccessKey = v
	}
	if v := os.Getenv("ENVSTASH_S3_SECRET_KEY"); v != "" {
		cfg.S3SecretKey = v
	}
}

// Validate checks the configuration for internal consistency
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case BackendLocal:
		if c.CacheRoot == "" {
			return errors.WrapConfigError("cache", "cache_root", errors.ErrInvalidConfig)
		}
	case BackendS3:
		if c.S3Endpoint == "" {
			return errors.WrapConfigError("cache", "s3_endpoint", errors.ErrInvalidConfig)
		}
		if c.S3Bucket == "" {
			return errors.WrapConfigError("cache", "s3_bucket", errors.ErrInvalidConfig)
		}
	default:
		return errors.WrapConfigError("cache", "cache_backend",
			fmt.Errorf("%w: unknown backend %q", errors.ErrInvalidConfig, c.CacheBackend))
	}

	switch c.Installer {
	case InstallerConda, InstallerPip:
	default:
		return errors.WrapConfigError("builder", "installer",
			fmt.Errorf("%w: unknown installer %q", errors.ErrInvalidConfig, c.Installer))
	}

	return nil
}
