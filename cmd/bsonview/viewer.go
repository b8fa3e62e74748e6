// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/AramilRey/js-bson/bson/bsoninspect"
	"github.com/AramilRey/js-bson/internal/lineio"
	"github.com/AramilRey/js-bson/internal/logger"
	"github.com/AramilRey/js-bson/internal/render"
	"github.com/AramilRey/js-bson/internal/summary"
)

// viewer feeds input lines through the decoder into a renderer.
type viewer struct {
	dec *bsoninspect.Decoder
	out render.Renderer
	log *logger.Logger
	sum *summary.Summary
}

func (v *viewer) viewFile(name string, stdin io.Reader, mode lineio.Mode) error {
	if name == "-" {
		return v.viewReader("<stdin>", stdin, mode)
	}
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()
	return v.viewReader(name, f, mode)
}

func (v *viewer) viewReader(name string, r io.Reader, mode lineio.Mode) error {
	lines := lineio.NewReader(r, mode)
	for {
		line, err := lines.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "%s", name)
		}
		if err := v.viewLine(name, line); err != nil {
			v.log.Error(logger.ComponentRender, err, "output failed", "file", name, "line", line.Number)
			return err
		}
	}
}

func (v *viewer) viewLine(name string, line lineio.Line) error {
	switch line.Kind {
	case lineio.LineComment:
		v.sum.AddComment()
		v.log.Print(logger.LevelDebug, logger.ComponentInput, "comment", "file", name, "line", line.Number)
		return v.out.Comment(line.Number, line.Text)
	case lineio.LineEmpty:
		v.sum.AddEmpty()
		v.log.Print(logger.LevelDebug, logger.ComponentInput, "empty line", "file", name, "line", line.Number)
		return v.out.Empty(line.Number)
	case lineio.LineInvalid:
		v.sum.AddInvalid()
		v.log.Print(logger.LevelInfo, logger.ComponentInput, "skipping line", "file", name, "line", line.Number, "error", line.Err)
		return v.out.Invalid(line.Number, line.Text, line.Err)
	}

	v.out.Begin(line.Number)
	res := v.dec.Decode(line.Data, v.out)
	v.sum.AddDocument(res)
	if v.log.LevelComponentEnabled(logger.LevelDebug, logger.ComponentDecode) {
		kinds := make([]string, 0, len(res.Errors))
		for _, derr := range res.Errors {
			kinds = append(kinds, derr.Kind.String())
		}
		v.log.Print(logger.LevelDebug, logger.ComponentDecode, "decoded document",
			"file", name,
			"line", line.Number,
			"bytes", len(line.Data),
			"declared", res.Length,
			"elements", res.Elements,
			"terminated", res.Terminated,
			"anomalies", kinds,
		)
	}
	return v.out.End(res)
}
