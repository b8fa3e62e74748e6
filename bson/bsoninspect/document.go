// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

import (
	"github.com/AramilRey/js-bson/bson/bsonoptions"
)

// Result summarises one call to Decode.
type Result struct {
	// Length is the declared length of the top-level document. It is only
	// meaningful when LengthValid is true.
	Length      int32
	LengthValid bool
	// Terminated is true when the top-level document reached its terminator.
	Terminated bool
	// Elements counts the element type bytes read at every depth.
	Elements int
	// Errors holds every anomaly in input order.
	Errors []*DecodeError
}

// OK reports whether the document decoded without any anomaly.
func (r Result) OK() bool { return r.Terminated && len(r.Errors) == 0 }

// Decoder inspects BSON documents. A Decoder holds no per-document state and
// may be used concurrently.
type Decoder struct {
	maxDepth     int
	strictLength bool
}

// NewDecoder constructs a Decoder from the given options.
func NewDecoder(opts ...*bsonoptions.InspectOptions) *Decoder {
	o := bsonoptions.MergeInspectOptions(opts...)
	return &Decoder{maxDepth: *o.MaxDepth, strictLength: *o.StrictLength}
}

// Decode inspects src as one top-level document and emits its events to sink.
// By default the whole of src belongs to the document: bytes that follow the
// terminator are decoded as further elements, as happens when the declared
// length is shorter than the input. With strict length, a usable declared
// length shorter than src ends the document there and the rest of src is
// reported as trailing bytes flagged LengthMismatch. A nil sink discards
// events.
func (d *Decoder) Decode(src []byte, sink Sink) Result {
	if sink == nil {
		sink = discard{}
	}
	in := &inspector{sink: sink, maxDepth: d.maxDepth}
	c := newCursor(src)
	if n, ok := c.peekInt32(); d.strictLength && ok && n >= minDocumentSize && int(n) < len(src) {
		var doc cursor
		doc, c = c.sub(int(n))
		in.result.Terminated = in.document(doc, 0, false, true)
		raw, _ := c.take(c.remaining())
		in.report(Event{Kind: EventTrailingBytes, Offset: c.off, Raw: raw},
			newError(LengthMismatch, "%d bytes after declared length %d", len(raw), n))
		return in.result
	}
	in.result.Terminated = in.document(c, 0, false, true)
	return in.result
}

// Decode inspects src with a Decoder constructed from opts.
func Decode(src []byte, sink Sink, opts ...*bsonoptions.InspectOptions) Result {
	return NewDecoder(opts...).Decode(src, sink)
}

// inspector carries the state of one Decode call.
type inspector struct {
	sink     Sink
	maxDepth int
	result   Result
}

// report fills in the position of derr, records it and emits ev.
func (in *inspector) report(ev Event, derr *DecodeError) {
	if derr != nil {
		derr.Offset = ev.Offset
		derr.Depth = ev.Depth
		ev.Err = derr
		in.result.Errors = append(in.result.Errors, derr)
	}
	ev.Valid = derr == nil && ev.Kind != EventTrailingBytes
	in.sink.Emit(ev)
}

// trailing reports whatever is left of a scope as one opaque run and returns
// the exhausted cursor.
func (in *inspector) trailing(c cursor, depth int) cursor {
	if c.remaining() == 0 {
		return c
	}
	raw, rest := c.take(c.remaining())
	in.report(Event{Kind: EventTrailingBytes, Offset: c.off, Depth: depth, Raw: raw}, nil)
	return rest
}

// document decodes c as a single document at the given depth and reports
// whether its terminator was reached. All of c belongs to the document; any
// bytes not interpreted are reported as trailing bytes.
func (in *inspector) document(c cursor, depth int, array, top bool) bool {
	start := c.off
	n, raw, c, derr := readLength(c, selfInclusive)
	if derr == nil && n < minDocumentSize {
		derr = newError(LengthOutOfRange, "document length %d is below %d", n, minDocumentSize)
	}
	if top {
		in.result.Length, in.result.LengthValid = n, derr == nil
	}
	in.report(Event{Kind: EventLength, Offset: start, Depth: depth, Raw: raw, Length: n}, derr)
	if derr != nil {
		in.trailing(c, depth)
		return false
	}

	in.report(Event{Kind: EventOpenContainer, Offset: c.off, Depth: depth, Array: array}, nil)
	done := true
	for c.remaining() >= 2 {
		var ok bool
		if c, ok = in.element(c, depth+1); !ok {
			done = false
			break
		}
	}

	if done {
		switch c.remaining() {
		case 0:
			in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth}, newError(MissingTerminator, ""))
			done = false
		case 1:
			off := c.off
			var term []byte
			term, c = c.take(1)
			switch {
			case term[0] != 0x00:
				derr = newError(BadTerminatorByte, "0x%02x", term[0])
				done = false
			case c.off-start != int(n):
				derr = newError(LengthMismatch, "declared %d, terminator ends at %d", n, c.off-start)
			}
			in.report(Event{Kind: EventRawHex, Offset: off, Depth: depth, Raw: term}, derr)
		}
	}

	c = in.trailing(c, depth)
	in.report(Event{Kind: EventCloseContainer, Offset: c.off, Depth: depth, Array: array}, nil)
	return done
}

// nested decodes c as a document or array embedded at depth, refusing to
// descend past the configured maximum.
func (in *inspector) nested(c cursor, depth int, array bool) bool {
	if depth > in.maxDepth {
		in.report(Event{Kind: EventOpenContainer, Offset: c.off, Depth: depth, Array: array},
			newError(NestingTooDeep, "limit is %d", in.maxDepth))
		c = in.trailing(c, depth)
		in.report(Event{Kind: EventCloseContainer, Offset: c.off, Depth: depth, Array: array}, nil)
		return false
	}
	return in.document(c, depth, array, false)
}
