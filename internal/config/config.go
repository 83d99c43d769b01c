// Package config loads huntdiff settings from a YAML or TOML file, with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dacharyc/huntdiff"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings shared by the huntdiff commands.
type Config struct {
	IgnoreCase       bool   `yaml:"ignore_case" toml:"ignore_case" env:"HUNTDIFF_IGNORE_CASE"`
	IgnoreSpace      bool   `yaml:"ignore_space" toml:"ignore_space" env:"HUNTDIFF_IGNORE_SPACE"`
	IgnoreInnerSpace bool   `yaml:"ignore_inner_space" toml:"ignore_inner_space" env:"HUNTDIFF_IGNORE_INNER_SPACE"`
	Color            string `yaml:"color" toml:"color" env:"HUNTDIFF_COLOR"`
	Jobs             int    `yaml:"jobs" toml:"jobs" env:"HUNTDIFF_JOBS"` // parallel file diffs; 0 means GOMAXPROCS
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Color: ColorAuto}
}

// Options returns the comparison settings for huntdiff.Diff.
func (c Config) Options() huntdiff.Options {
	return huntdiff.Options{
		IgnoreSpace:      c.IgnoreSpace,
		IgnoreInnerSpace: c.IgnoreInnerSpace,
		IgnoreCase:       c.IgnoreCase,
	}
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be %s, %s or %s, got %q", ErrInvalid, ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalid, c.Jobs)
	}
	return nil
}

// DefaultPath returns $HOME/.huntdiff.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".huntdiff.yaml")
}

// Load reads a configuration file on top of Default. Files ending in
// ".toml" are decoded as TOML, anything else as YAML. Environment
// variables named in the `env` struct tags override file values.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default plus environment
// overrides when path is empty or the file does not exist.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return Default(), fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	cfg := Default()
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides sets struct fields from environment variables.
// It uses the `env` struct tag to determine the env var name.
func applyEnvOverrides(v any) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := val.Field(i)

		envTag := field.Tag.Get("env")
		if envTag == "" || !fieldVal.CanSet() {
			continue
		}
		envVal, ok := os.LookupEnv(envTag)
		if !ok {
			continue
		}

		switch fieldVal.Kind() {
		case reflect.String:
			fieldVal.SetString(envVal)
		case reflect.Int:
			if n, err := strconv.Atoi(strings.TrimSpace(envVal)); err == nil {
				fieldVal.SetInt(int64(n))
			}
		case reflect.Bool:
			if b, err := strconv.ParseBool(strings.TrimSpace(envVal)); err == nil {
				fieldVal.SetBool(b)
			}
		}
	}
}
