// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package render

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/tidwall/pretty"

	"github.com/AramilRey/js-bson/bson/bsoninspect"
)

// JSONOptions controls the layout of JSON output.
type JSONOptions struct {
	// Indent formats each record over several lines. Records are compact
	// single lines otherwise.
	Indent bool
	// Color adds ANSI colors to indented output.
	Color bool
}

// jsonEvent is the wire form of a bsoninspect.Event.
type jsonEvent struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Depth  int    `json:"depth"`
	Hex    string `json:"hex"`
	Text   string `json:"text,omitempty"`
	Length *int32 `json:"length,omitempty"`
	Type   string `json:"type,omitempty"`
	Array  bool   `json:"array,omitempty"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
}

type jsonRecord struct {
	Line    int         `json:"line"`
	Events  []jsonEvent `json:"events,omitempty"`
	Errors  *int        `json:"errors,omitempty"`
	Comment string      `json:"comment,omitempty"`
	Empty   bool        `json:"empty,omitempty"`
	Invalid string      `json:"invalid,omitempty"`
}

// JSON renders each input line as one JSON object. Documents carry their
// events as an array.
type JSON struct {
	w      io.Writer
	opts   JSONOptions
	line   int
	events []jsonEvent
}

var _ Renderer = (*JSON)(nil)

// NewJSON returns a JSON renderer writing to w.
func NewJSON(w io.Writer, opts JSONOptions) *JSON {
	return &JSON{w: w, opts: opts}
}

// Begin implements the Renderer interface.
func (j *JSON) Begin(line int) {
	j.line = line
	j.events = j.events[:0]
}

// Emit implements the bsoninspect.Sink interface.
func (j *JSON) Emit(ev bsoninspect.Event) {
	je := jsonEvent{
		Kind:   ev.Kind.String(),
		Offset: ev.Offset,
		Depth:  ev.Depth,
		Hex:    hex.EncodeToString(ev.Raw),
		Text:   ev.Text,
		Array:  ev.Array,
		Valid:  ev.Valid,
	}
	switch ev.Kind {
	case bsoninspect.EventLength:
		if ev.Raw != nil {
			n := ev.Length
			je.Length = &n
		}
	case bsoninspect.EventTypeTag:
		je.Type = ev.Type.String()
	}
	if ev.Err != nil {
		je.Error = ev.Err.Error()
	}
	j.events = append(j.events, je)
}

// End implements the Renderer interface.
func (j *JSON) End(res bsoninspect.Result) error {
	n := len(res.Errors)
	return j.write(jsonRecord{Line: j.line, Events: j.events, Errors: &n})
}

// Comment implements the Renderer interface.
func (j *JSON) Comment(line int, text string) error {
	return j.write(jsonRecord{Line: line, Comment: text})
}

// Empty implements the Renderer interface.
func (j *JSON) Empty(line int) error {
	return j.write(jsonRecord{Line: line, Empty: true})
}

// Invalid implements the Renderer interface.
func (j *JSON) Invalid(line int, _ string, cause error) error {
	return j.write(jsonRecord{Line: line, Invalid: cause.Error()})
}

func (j *JSON) write(rec jsonRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrapf(err, "encoding line %d", rec.Line)
	}
	if j.opts.Indent {
		b = pretty.Pretty(b)
		if j.opts.Color {
			b = pretty.Color(b, nil)
		}
	} else {
		b = append(pretty.Ugly(b), '\n')
	}
	_, err = j.w.Write(b)
	return errors.Wrapf(err, "writing line %d", rec.Line)
}
