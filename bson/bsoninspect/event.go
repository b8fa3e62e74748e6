// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

import (
	"fmt"

	"github.com/AramilRey/js-bson/bson/bsontype"
)

// EventKind identifies what part of a document an Event describes.
type EventKind uint8

// These constants are the kinds of events emitted to a Sink.
const (
	// EventLength is an int32 length field. Length holds its value.
	EventLength EventKind = iota + 1
	// EventTypeTag is an element type byte. Type holds its value.
	EventTypeTag
	// EventKey is an element key including its 0x00. Text holds the key
	// when it is valid UTF-8.
	EventKey
	// EventString is a decoded string or cstring. Text holds the string
	// without its 0x00; Raw includes it.
	EventString
	// EventRawHex is an uninterpreted run of bytes: numeric payloads, object
	// IDs, binary data, terminators, and strings that could not be decoded.
	EventRawHex
	// EventOpenContainer starts a document or array; Array tells which.
	EventOpenContainer
	// EventCloseContainer ends a document or array; Array tells which.
	EventCloseContainer
	// EventTrailingBytes holds the bytes of a scope left uninterpreted after
	// decoding of that scope stopped.
	EventTrailingBytes
)

var eventKindNames = map[EventKind]string{
	EventLength:         "length",
	EventTypeTag:        "type",
	EventKey:            "key",
	EventString:         "string",
	EventRawHex:         "raw",
	EventOpenContainer:  "open",
	EventCloseContainer: "close",
	EventTrailingBytes:  "trailing",
}

// String implements the fmt.Stringer interface.
func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one token of an inspected document. Raw aliases the input passed
// to Decode; a Sink that keeps events beyond the lifetime of that input must
// copy it.
type Event struct {
	Kind   EventKind
	Offset int
	Depth  int
	Raw    []byte
	Text   string
	Length int32
	Type   bsontype.Type
	Array  bool
	Valid  bool
	Err    *DecodeError
}

// Sink receives the events of an inspected document in input order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts an ordinary function into a Sink.
type SinkFunc func(Event)

// Emit implements the Sink interface.
func (f SinkFunc) Emit(ev Event) { f(ev) }

type discard struct{}

func (discard) Emit(Event) {}

// Recorder is a Sink that keeps every event it receives.
type Recorder struct {
	Events []Event
}

// Emit implements the Sink interface.
func (r *Recorder) Emit(ev Event) { r.Events = append(r.Events, ev) }

// Reset discards the recorded events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

// Bytes concatenates the Raw bytes of the recorded events. For a single
// Decode call this reproduces the input.
func (r *Recorder) Bytes() []byte {
	var n int
	for _, ev := range r.Events {
		n += len(ev.Raw)
	}
	out := make([]byte, 0, n)
	for _, ev := range r.Events {
		out = append(out, ev.Raw...)
	}
	return out
}

// Errors returns the errors attached to the recorded events.
func (r *Recorder) Errors() []*DecodeError {
	var errs []*DecodeError
	for _, ev := range r.Events {
		if ev.Err != nil {
			errs = append(errs, ev.Err)
		}
	}
	return errs
}
