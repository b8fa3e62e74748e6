// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package lineio splits an input stream into one BSON document per line.
package lineio

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
)

// Mode selects how a line is turned into document bytes.
type Mode int

const (
	// ModeBinary treats each line as raw document bytes.
	ModeBinary Mode = iota
	// ModeHex treats each line as hexadecimal text.
	ModeHex
)

// Kind classifies an input line.
type Kind int

// These constants are the kinds of line a Reader yields.
const (
	LineDocument Kind = iota + 1
	LineEmpty
	LineComment
	LineInvalid
)

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case LineDocument:
		return "document"
	case LineEmpty:
		return "empty"
	case LineComment:
		return "comment"
	case LineInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Line is one framed input line. Data holds the document bytes of a
// LineDocument, Text the verbatim text of a LineComment and Err the reason a
// line is LineInvalid.
type Line struct {
	Number int
	Kind   Kind
	Data   []byte
	Text   string
	Err    error
}

// Reader yields the lines of an input stream. Lines are not limited in length.
type Reader struct {
	br   *bufio.Reader
	mode Mode
	n    int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, mode Mode) *Reader {
	return &Reader{br: bufio.NewReader(r), mode: mode}
}

// Next returns the next line. It returns io.EOF once the input is exhausted;
// a final line without a newline is still returned.
func (r *Reader) Next() (Line, error) {
	b, err := r.br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return Line{}, errors.Wrapf(err, "reading line %d", r.n+1)
	}
	if err == io.EOF && len(b) == 0 {
		return Line{}, io.EOF
	}
	r.n++
	b = bytes.TrimSuffix(b, []byte{'\n'})

	if r.mode == ModeHex {
		return r.hexLine(b), nil
	}
	if len(b) == 0 {
		return Line{Number: r.n, Kind: LineEmpty}, nil
	}
	return Line{Number: r.n, Kind: LineDocument, Data: b}, nil
}

func (r *Reader) hexLine(b []byte) Line {
	trimmed := bytes.TrimSpace(b)
	switch {
	case len(trimmed) == 0:
		return Line{Number: r.n, Kind: LineEmpty}
	case trimmed[0] == '#':
		return Line{Number: r.n, Kind: LineComment, Text: string(bytes.TrimSuffix(b, []byte{'\r'}))}
	}

	data := make([]byte, hex.DecodedLen(len(trimmed)))
	if _, err := hex.Decode(data, trimmed); err != nil {
		return Line{Number: r.n, Kind: LineInvalid, Text: string(trimmed), Err: errors.Wrapf(err, "line %d is not hex", r.n)}
	}
	return Line{Number: r.n, Kind: LineDocument, Data: data}
}
