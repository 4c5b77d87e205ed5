// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Options configure a Context
type Options struct {
	// Number of color components in effect before any change
	ColorSamples int `toml:"color_samples" yaml:"color_samples"`

	// Refuse to redeclare a built-in declaration
	StrictRedeclare bool `toml:"strict_redeclare" yaml:"strict_redeclare"`

	// Resolve references with a scheme as absolute even when it matches
	// the base scheme
	StrictURI bool `toml:"strict_uri" yaml:"strict_uri"`

	// Largest parameter value, in bytes; zero leaves only the platform limit
	MaxParameterBytes uint64 `toml:"max_parameter_bytes" yaml:"max_parameter_bytes"`

	// Base URI archive references are resolved against. Empty leaves
	// references as given.
	BaseURI string `toml:"base_uri" yaml:"base_uri"`

	ResolverCacheSize int `toml:"resolver_cache_size" yaml:"resolver_cache_size"`

	// zerolog level name applied to the logger given to Context.WithLogger
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		ColorSamples:      3,
		StrictRedeclare:   false,
		StrictURI:         true,
		MaxParameterBytes: 1 << 30,
		ResolverCacheSize: 128,
		LogLevel:          "warn",
	}
}

// Validate reports the first unusable option
func (o Options) Validate() error {
	switch {
	case o.ColorSamples < 1:
		return fmt.Errorf("ri: color_samples must be at least 1, not %d", o.ColorSamples)
	case o.ResolverCacheSize < 0:
		return fmt.Errorf("ri: resolver_cache_size must not be negative")
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed LogLevel. An empty level is treated as "warn".
func (o Options) Level() (zerolog.Level, error) {
	if o.LogLevel == "" {
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(o.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("ri: log_level: %w", err)
	}
	return l, nil
}

// LoadOptions decodes options in format ("toml" or "yaml") from r. Keys not
// present keep their default values.
func LoadOptions(r io.Reader, format string) (Options, error) {
	o := DefaultOptions()

	switch strings.ToLower(format) {
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(&o); err != nil {
			return Options{}, fmt.Errorf("ri: decoding toml options: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&o); err != nil && err != io.EOF {
			return Options{}, fmt.Errorf("ri: decoding yaml options: %w", err)
		}
	default:
		return Options{}, fmt.Errorf("ri: unknown options format %q", format)
	}

	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// LoadOptionsFile reads options from path, choosing the format from its
// extension
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, err
	}
	defer f.Close()

	return LoadOptions(f, strings.TrimPrefix(filepath.Ext(path), "."))
}
