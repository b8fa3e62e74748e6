// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package render

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/AramilRey/js-bson/bson/bsoninspect"
)

// Text renders each document as a single line of space separated tokens.
// Suspicious tokens are painted with the Suspicious color and followed by the
// name of the anomaly in angle brackets.
type Text struct {
	w     io.Writer
	style styles
	buf   bytes.Buffer
	sep   bool
}

var _ Renderer = (*Text)(nil)

// NewText returns a Text renderer writing to w. Pass NoColor for plain output.
func NewText(w io.Writer, palette Palette) *Text {
	return &Text{w: w, style: palette.styles()}
}

// Begin implements the Renderer interface.
func (t *Text) Begin(int) {
	t.buf.Reset()
	t.sep = false
}

func (t *Text) token(c *color.Color, s string) {
	if t.sep {
		t.buf.WriteByte(' ')
	}
	t.buf.WriteString(paint(c, s))
	t.sep = true
}

// glue writes s directly after the previous token.
func (t *Text) glue(c *color.Color, s string) {
	t.buf.WriteString(paint(c, s))
	t.sep = true
}

// Emit implements the bsoninspect.Sink interface.
func (t *Text) Emit(ev bsoninspect.Event) {
	pick := func(c *color.Color) *color.Color {
		if ev.Valid {
			return c
		}
		return t.style.suspicious
	}

	switch ev.Kind {
	case bsoninspect.EventLength:
		if ev.Raw == nil {
			t.token(pick(t.style.length), "?")
		} else {
			t.token(pick(t.style.length), strconv.FormatInt(int64(ev.Length), 10))
		}
	case bsoninspect.EventTypeTag:
		t.token(pick(t.style.typ), ev.Type.Hex())
	case bsoninspect.EventKey:
		if ev.Err == nil || ev.Text != "" {
			t.token(pick(t.style.key), strconv.Quote(ev.Text))
		} else {
			t.token(pick(t.style.key), hex.EncodeToString(ev.Raw))
		}
		t.glue(t.style.punct, ":")
	case bsoninspect.EventString:
		t.token(pick(t.style.str), strconv.Quote(ev.Text))
	case bsoninspect.EventRawHex:
		if len(ev.Raw) > 0 {
			t.token(pick(t.style.ok), hex.EncodeToString(ev.Raw))
		}
	case bsoninspect.EventOpenContainer:
		if ev.Array {
			t.token(pick(t.style.punct), "[")
		} else {
			t.token(pick(t.style.punct), "{")
		}
	case bsoninspect.EventCloseContainer:
		if ev.Array {
			t.token(t.style.punct, "]")
		} else {
			t.token(t.style.punct, "}")
		}
	case bsoninspect.EventTrailingBytes:
		t.token(t.style.suspicious, hex.EncodeToString(ev.Raw))
	}

	if ev.Err != nil {
		t.token(t.style.suspicious, "<"+ev.Err.Kind.String()+">")
	}
}

// End implements the Renderer interface.
func (t *Text) End(bsoninspect.Result) error {
	t.buf.WriteByte('\n')
	_, err := t.w.Write(t.buf.Bytes())
	t.buf.Reset()
	return errors.Wrap(err, "writing document")
}

// Comment implements the Renderer interface.
func (t *Text) Comment(_ int, text string) error {
	_, err := fmt.Fprintln(t.w, paint(t.style.comment, text))
	return errors.Wrap(err, "writing comment")
}

// Empty implements the Renderer interface.
func (t *Text) Empty(int) error {
	_, err := fmt.Fprintln(t.w, paint(t.style.comment, NoDocument))
	return errors.Wrap(err, "writing notice")
}

// Invalid implements the Renderer interface.
func (t *Text) Invalid(_ int, _ string, cause error) error {
	_, err := fmt.Fprintln(t.w, paint(t.style.suspicious, "(invalid input: "+cause.Error()+")"))
	return errors.Wrap(err, "writing notice")
}
