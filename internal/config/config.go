// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package config resolves bsonview settings from built-in defaults, a TOML
// file, a .env file, the environment and command line flags, in that order.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/AramilRey/js-bson/bson/bsonoptions"
	"github.com/AramilRey/js-bson/internal/logger"
	"github.com/AramilRey/js-bson/internal/render"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the resolved settings of one bsonview run.
type Config struct {
	Hex      bool
	Format   string
	Indent   bool
	Color    string
	MaxDepth int
	// StrictLength ends each top-level document at its declared length.
	StrictLength bool
	Summary      bool
	// LogLevel is empty when no level was configured, leaving the
	// per-component environment variables of the logger in charge.
	LogLevel string
	Palette  render.Palette
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:   FormatText,
		Color:    ColorAuto,
		MaxDepth: bsonoptions.DefaultMaxDepth,
		Palette:  render.DefaultPalette(),
	}
}

// Overrides is one configuration layer. Nil fields leave the setting from the
// layers below unchanged.
type Overrides struct {
	Hex          *bool   `toml:"hex"`
	Format       *string `toml:"format"`
	Indent       *bool   `toml:"indent"`
	Color        *string `toml:"color"`
	MaxDepth     *int    `toml:"max_depth"`
	StrictLength *bool   `toml:"strict_length"`
	Summary      *bool   `toml:"summary"`
	LogLevel     *string `toml:"log_level"`
	// Palette maps palette entry names such as "key" or "suspicious" to SGR
	// parameters.
	Palette map[string]string `toml:"palette"`
}

// Apply copies every set field of o into c.
func (c *Config) Apply(o Overrides) error {
	if o.Hex != nil {
		c.Hex = *o.Hex
	}
	if o.Format != nil {
		c.Format = strings.ToLower(strings.TrimSpace(*o.Format))
	}
	if o.Indent != nil {
		c.Indent = *o.Indent
	}
	if o.Color != nil {
		c.Color = strings.ToLower(strings.TrimSpace(*o.Color))
	}
	if o.MaxDepth != nil {
		c.MaxDepth = *o.MaxDepth
	}
	if o.StrictLength != nil {
		c.StrictLength = *o.StrictLength
	}
	if o.Summary != nil {
		c.Summary = *o.Summary
	}
	if o.LogLevel != nil {
		c.LogLevel = strings.TrimSpace(*o.LogLevel)
	}
	for name, sgr := range o.Palette {
		entry := paletteEntry(&c.Palette, name)
		if entry == nil {
			return errors.Errorf("unknown palette entry %q", name)
		}
		*entry = sgr
	}
	return nil
}

func paletteEntry(p *render.Palette, name string) *string {
	switch strings.ToLower(name) {
	case "length":
		return &p.Length
	case "type":
		return &p.Type
	case "key":
		return &p.Key
	case "string":
		return &p.String
	case "ok":
		return &p.OK
	case "punct":
		return &p.Punct
	case "comment":
		return &p.Comment
	case "suspicious":
		return &p.Suspicious
	}
	return nil
}

// Validate reports the first setting that bsonview cannot use.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Errorf("format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.MaxDepth < 1 {
		return errors.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.LogLevel != "" {
		if _, ok := logger.ParseLevel(c.LogLevel); !ok {
			return errors.Errorf("unknown log level %q", c.LogLevel)
		}
	}
	return errors.Wrap(c.Palette.Validate(), "invalid palette")
}

// ReadFile reads a TOML configuration file.
func ReadFile(path string) (Overrides, error) {
	var o Overrides
	data, err := os.ReadFile(path)
	if err != nil {
		return o, errors.Wrap(err, "reading config file")
	}
	if err := toml.Unmarshal(data, &o); err != nil {
		return o, errors.Wrapf(err, "parsing config file %s", path)
	}
	return o, nil
}

// Sources names every layer Load resolves.
type Sources struct {
	// File is a TOML configuration file. Empty means none.
	File string
	// EnvFile is a .env file. Empty means none.
	EnvFile string
	// Lookup reads the environment. Nil means os.LookupEnv.
	Lookup func(string) (string, bool)
	// Flags holds the settings given explicitly on the command line.
	Flags Overrides
}

// Env returns a lookup over the environment layered on top of the variables
// of EnvFile. The process environment is never changed.
func (src Sources) Env() (func(string) (string, bool), error) {
	lookup := src.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if src.EnvFile == "" {
		return lookup, nil
	}
	vars, err := godotenv.Read(src.EnvFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading env file")
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

// Load resolves and validates the configuration from src.
func Load(src Sources) (Config, error) {
	cfg := Default()

	var layers []Overrides
	if src.File != "" {
		o, err := ReadFile(src.File)
		if err != nil {
			return cfg, err
		}
		layers = append(layers, o)
	}
	lookup, err := src.Env()
	if err != nil {
		return cfg, err
	}
	env, err := FromEnv(lookup)
	if err != nil {
		return cfg, errors.Wrap(err, "environment")
	}
	layers = append(layers, env, src.Flags)

	for _, o := range layers {
		if err := cfg.Apply(o); err != nil {
			return cfg, err
		}
	}
	return cfg, errors.Wrap(cfg.Validate(), "invalid configuration")
}
