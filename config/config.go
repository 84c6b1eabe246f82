// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/urlutil"
)

// File names and environment variables.
const (
	FileName    = ".weburl.yaml"
	EnvConfig   = "WEBURL_CONFIG"
	EnvLocation = "WEBURL_LOCATION"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNotFound is returned when an explicitly requested file does not exist.
	ErrNotFound = errors.New("configuration file not found")
)

var log = logutil.NewLogger("config")

// Config is the weburl CLI configuration.
type Config struct {
	// Location is the current document address used as base and for origin checks.
	Location string `yaml:"location,omitempty"`
	// DefaultScheme is prepended to bare hosts such as "example.com".
	DefaultScheme string `yaml:"defaultScheme,omitempty"`
	// Output is "default" or "json".
	Output         string      `yaml:"output,omitempty"`
	Strict         bool        `yaml:"strict,omitempty"`
	Debug          bool        `yaml:"debug,omitempty"`
	StructuredLogs bool        `yaml:"structuredLogs,omitempty"`
	Metrics        bool        `yaml:"metrics,omitempty"`
	Cache          CacheConfig `yaml:"cache,omitempty"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `yaml:"-"`
}

// CacheConfig sizes the parse cache. MaxEntries 0 disables it.
type CacheConfig struct {
	MaxEntries int           `yaml:"maxEntries,omitempty"`
	TTL        time.Duration `yaml:"ttl,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultScheme: "https",
		Output:        "default",
	}
}

// Validate checks field values. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	switch c.Output {
	case "", "default", "json":
	default:
		errs = append(errs, fmt.Errorf("output must be default or json, got %q", c.Output))
	}

	switch c.DefaultScheme {
	case "", "http", "https":
	default:
		errs = append(errs, fmt.Errorf("defaultScheme must be http or https, got %q", c.DefaultScheme))
	}

	if c.Location != "" {
		if _, err := (urlutil.Anchor{}).Parse(c.Location, ""); err != nil {
			errs = append(errs, fmt.Errorf("location must be an absolute URL: %w", err))
		}
	}

	if c.Cache.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.maxEntries must not be negative, got %d", c.Cache.MaxEntries))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Load reads the configuration. The file is chosen in this order: path, the
// WEBURL_CONFIG environment variable, FileName in the working directory,
// then FileName in the user's home directory. A missing file is an error
// only when it was named explicitly. Environment overrides are applied and
// the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, explicit := locate(path)
	if file != "" {
		if err := cfg.readFile(file, explicit); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		if cfg.Source != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Source, err)
		}
		return nil, err
	}
	return cfg, nil
}

func locate(path string) (file string, explicit bool) {
	if path != "" {
		return path, true
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return env, true
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName, false
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, false
		}
	}
	return "", false
}

func (c *Config) readFile(path string, explicit bool) error {
	if err := validatePath(path); err != nil {
		return err
	}

	// #nosec G304 -- path validated by validatePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && explicit {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := checkPermissions(path); err != nil {
		log.Warn("configuration file is writable by others", "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	c.Source = path
	log.Debug("configuration loaded", "path", path)
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLocation)); v != "" {
		c.Location = v
	}
	if v := os.Getenv(logutil.EnvDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
}
