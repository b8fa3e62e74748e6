// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/AramilRey/js-bson/bson/bsoninspect"
	"github.com/AramilRey/js-bson/bson/bsonoptions"
	"github.com/AramilRey/js-bson/internal/config"
	"github.com/AramilRey/js-bson/internal/lineio"
	"github.com/AramilRey/js-bson/internal/logger"
	"github.com/AramilRey/js-bson/internal/render"
	"github.com/AramilRey/js-bson/internal/summary"
)

// Exit codes.
const (
	exitOK    = 0
	exitIO    = 1
	exitUsage = 2
)

// environment is everything bsonview takes from the process.
type environment struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	terminal  bool
	lookupEnv func(string) (string, bool)
}

const (
	flagHex          = "hex"
	flagFormat       = "format"
	flagIndent       = "indent"
	flagColor        = "color"
	flagMaxDepth     = "max-depth"
	flagStrictLength = "strict-length"
	flagConfig       = "config"
	flagEnvFile      = "env-file"
	flagSummary      = "summary"
	flagLogLevel     = "log-level"
)

func newApp(env environment) *cli.App {
	return &cli.App{
		Name:      "bsonview",
		Usage:     "show the structure of BSON documents and flag malformed bytes",
		UsageText: "bsonview [flags] [file ...]\n\nEach input line holds one document. With no file, or with -, standard input is read.",
		Reader:    env.stdin,
		Writer:    env.stdout,
		ErrWriter: env.stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: flagHex, Aliases: []string{"x"}, Usage: "read each line as hexadecimal text; lines starting with # are comments"},
			&cli.StringFlag{Name: flagFormat, Usage: "output `FORMAT`: text or json"},
			&cli.BoolFlag{Name: flagIndent, Usage: "indent json output"},
			&cli.StringFlag{Name: flagColor, Usage: "color `WHEN`: auto, always or never"},
			&cli.IntFlag{Name: flagMaxDepth, Usage: "deepest container nesting to decode"},
			&cli.BoolFlag{Name: flagStrictLength, Usage: "end each document at its declared length and report the rest of the line as trailing bytes"},
			&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Usage: "read settings from TOML `FILE`"},
			&cli.StringFlag{Name: flagEnvFile, Usage: "read BSONVIEW_* settings from .env `FILE`"},
			&cli.BoolFlag{Name: flagSummary, Usage: "print counts and length statistics to standard error at the end"},
			&cli.StringFlag{Name: flagLogLevel, Usage: "log `LEVEL` for every component: off, info or debug"},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return cli.Exit(err.Error(), exitUsage)
		},
		// Exit codes are returned by run rather than by calling os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return view(c, env)
		},
	}
}

// run executes bsonview with the given command line and returns its exit
// code.
func run(args []string, env environment) int {
	err := newApp(env).Run(args)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(env.stderr, "bsonview: %v\n", err)

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitUsage
}

// flagOverrides collects the flags that were given explicitly.
func flagOverrides(c *cli.Context) config.Overrides {
	var o config.Overrides
	if c.IsSet(flagHex) {
		v := c.Bool(flagHex)
		o.Hex = &v
	}
	if c.IsSet(flagFormat) {
		v := c.String(flagFormat)
		o.Format = &v
	}
	if c.IsSet(flagIndent) {
		v := c.Bool(flagIndent)
		o.Indent = &v
	}
	if c.IsSet(flagColor) {
		v := c.String(flagColor)
		o.Color = &v
	}
	if c.IsSet(flagMaxDepth) {
		v := c.Int(flagMaxDepth)
		o.MaxDepth = &v
	}
	if c.IsSet(flagStrictLength) {
		v := c.Bool(flagStrictLength)
		o.StrictLength = &v
	}
	if c.IsSet(flagSummary) {
		v := c.Bool(flagSummary)
		o.Summary = &v
	}
	if c.IsSet(flagLogLevel) {
		v := c.String(flagLogLevel)
		o.LogLevel = &v
	}
	return o
}

// newLogger builds the logger from the configured level, falling back to the
// BSONVIEW_LOG_* variables that lookup finds.
func newLogger(cfg config.Config, lookup func(string) (string, bool), w io.Writer) *logger.Logger {
	var levels map[logger.Component]logger.Level
	if lvl, ok := logger.ParseLevel(cfg.LogLevel); ok {
		levels = map[logger.Component]logger.Level{logger.ComponentAll: lvl}
	}
	return logger.NewWithWriter(w, lookup, levels)
}

func newRenderer(cfg config.Config, env environment) render.Renderer {
	color := cfg.Color == config.ColorAlways || (cfg.Color == config.ColorAuto && env.terminal)
	if cfg.Format == config.FormatJSON {
		return render.NewJSON(env.stdout, render.JSONOptions{Indent: cfg.Indent, Color: color && cfg.Indent})
	}
	if !color {
		return render.NewText(env.stdout, render.NoColor)
	}
	return render.NewText(env.stdout, cfg.Palette)
}

func view(c *cli.Context, env environment) error {
	src := config.Sources{
		File:    c.String(flagConfig),
		EnvFile: c.String(flagEnvFile),
		Lookup:  env.lookupEnv,
		Flags:   flagOverrides(c),
	}
	cfg, err := config.Load(src)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	lookup, err := src.Env()
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	opts := bsonoptions.Inspect().SetMaxDepth(cfg.MaxDepth).SetStrictLength(cfg.StrictLength)
	v := &viewer{
		dec: bsoninspect.NewDecoder(opts),
		out: newRenderer(cfg, env),
		log: newLogger(cfg, lookup, env.stderr),
		sum: &summary.Summary{},
	}
	mode := lineio.ModeBinary
	if cfg.Hex {
		mode = lineio.ModeHex
	}

	names := c.Args().Slice()
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		if err := v.viewFile(name, env.stdin, mode); err != nil {
			return cli.Exit(err.Error(), exitIO)
		}
	}

	if cfg.Summary {
		v.sum.Log(v.log)
		if _, err := v.sum.WriteTo(env.stderr); err != nil {
			return cli.Exit(err.Error(), exitIO)
		}
	}
	return nil
}
