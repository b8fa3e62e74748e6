// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

import (
	"unicode/utf8"

	"github.com/AramilRey/js-bson/bson/bsontype"
)

// element decodes the element at the front of c, which must hold at least one
// byte. It returns the cursor after the element and false when decoding of
// the enclosing document has to stop.
func (in *inspector) element(c cursor, depth int) (cursor, bool) {
	in.result.Elements++

	off := c.off
	tag, c := c.take(1)
	t := bsontype.Type(tag[0])
	minSize, known := bsontype.MinPayloadSize(t)
	if !known {
		in.report(Event{Kind: EventTypeTag, Offset: off, Depth: depth, Raw: tag, Type: t}, newError(UnknownType, "%s", t.Hex()))
		return c, false
	}
	in.report(Event{Kind: EventTypeTag, Offset: off, Depth: depth, Raw: tag, Type: t}, nil)

	idx := c.indexByte(0x00)
	if idx < 0 {
		raw, rest := c.take(c.remaining())
		ev := Event{Kind: EventKey, Offset: c.off, Depth: depth, Raw: raw}
		if utf8.Valid(raw) {
			ev.Text = string(raw)
		}
		in.report(ev, newError(UnterminatedKey, ""))
		return rest, false
	}

	key, rest := c.take(idx + 1)
	ev := Event{Kind: EventKey, Offset: c.off, Depth: depth, Raw: key}
	if utf8.Valid(key[:idx]) {
		ev.Text = string(key[:idx])
		in.report(ev, nil)
	} else {
		in.report(ev, newError(InvalidUTF8, "key"))
	}
	c = rest

	if c.remaining() < minSize {
		in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth},
			newError(PayloadTooShort, "%s needs %d bytes, have %d", t, minSize, c.remaining()))
		return c, false
	}
	if minSize == 0 {
		return c, true
	}
	return in.value(c, t, depth)
}

// value dispatches to the payload rule for t.
func (in *inspector) value(c cursor, t bsontype.Type, depth int) (cursor, bool) {
	switch t {
	case bsontype.EmbeddedDocument:
		return in.container(c, depth, false)
	case bsontype.Array:
		return in.container(c, depth, true)
	case bsontype.Double, bsontype.DateTime, bsontype.Timestamp, bsontype.Int64:
		return in.fixed(c, 8, depth), true
	case bsontype.ObjectID:
		return in.fixed(c, 12, depth), true
	case bsontype.Int32:
		return in.fixed(c, 4, depth), true
	case bsontype.Boolean:
		return in.boolean(c, depth), true
	case bsontype.Binary:
		return in.binary(c, depth)
	case bsontype.String, bsontype.JavaScript, bsontype.Symbol:
		return in.readString(c, depth)
	case bsontype.Regex:
		return in.regex(c, depth)
	case bsontype.CodeWithScope:
		return in.codeWithScope(c, depth)
	case bsontype.DBPointer:
		return in.dbPointer(c, depth)
	case bsontype.Undefined, bsontype.Null, bsontype.MaxKey, bsontype.MinKey:
		return c, true
	default:
		// MinPayloadSize rejects every other type before dispatch.
		in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth}, newError(UnknownType, "%s has no payload rule", t.Hex()))
		return c, false
	}
}

// container decodes an embedded document or array. The length is only used
// to bound the slice handed to the document decoder, which validates it.
func (in *inspector) container(c cursor, depth int, array bool) (cursor, bool) {
	span := c.remaining()
	if n, ok := c.peekInt32(); ok && n >= lengthSize && int(n) <= span {
		span = int(n)
	}
	doc, rest := c.sub(span)
	return rest, in.nested(doc, depth, array)
}

func (in *inspector) fixed(c cursor, width, depth int) cursor {
	raw, rest := c.take(width)
	in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth, Raw: raw}, nil)
	return rest
}

func (in *inspector) boolean(c cursor, depth int) cursor {
	raw, rest := c.take(1)
	var derr *DecodeError
	if raw[0] > 0x01 {
		derr = newError(InvalidBoolean, "0x%02x", raw[0])
	}
	in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth, Raw: raw}, derr)
	return rest
}

func (in *inspector) binary(c cursor, depth int) (cursor, bool) {
	n, raw, c, derr := readLength(c, binaryAdjustment)
	in.report(Event{Kind: EventLength, Offset: c.off - len(raw), Depth: depth, Raw: raw, Length: n}, derr)
	if derr != nil {
		return c, false
	}

	off := c.off
	subtype, c := c.take(1)
	in.report(Event{Kind: EventRawHex, Offset: off, Depth: depth, Raw: subtype}, nil)

	payload, rest := c.sub(int(n))
	if subtype[0] == bsontype.BinaryOld {
		in.oldBinary(payload, depth)
	} else {
		in.report(Event{Kind: EventRawHex, Offset: payload.off, Depth: depth, Raw: payload.buf}, nil)
	}
	return rest, true
}

// oldBinary checks the inner length that subtype 0x02 repeats at the start of
// its payload. A mismatch is flagged and the payload is still shown.
func (in *inspector) oldBinary(p cursor, depth int) {
	if p.remaining() < lengthSize {
		in.report(Event{Kind: EventRawHex, Offset: p.off, Depth: depth, Raw: p.buf},
			newError(BinarySubtypeLengthMismatch, "payload of %d bytes cannot hold an inner length", p.remaining()))
		return
	}

	raw, rest := p.take(lengthSize)
	inner := readi32(raw)
	var derr *DecodeError
	if int(inner) != rest.remaining() {
		derr = newError(BinarySubtypeLengthMismatch, "inner length %d, payload has %d", inner, rest.remaining())
	}
	in.report(Event{Kind: EventLength, Offset: p.off, Depth: depth, Raw: raw, Length: inner}, derr)
	in.report(Event{Kind: EventRawHex, Offset: rest.off, Depth: depth, Raw: rest.buf}, nil)
}

func (in *inspector) regex(c cursor, depth int) (cursor, bool) {
	c, ok := in.readCString(c, depth, "regex pattern")
	if !ok {
		return c, false
	}
	return in.readCString(c, depth, "regex options")
}

// codeWithScope decodes the code string and scope document inside a body
// bounded by the outer length.
func (in *inspector) codeWithScope(c cursor, depth int) (cursor, bool) {
	start := c.off
	n, raw, c, derr := readLength(c, selfInclusive)
	if derr == nil && n < minCodeWithScopeSize {
		derr = newError(CodeWithScopeTooShort, "length %d is below %d", n, minCodeWithScopeSize)
	}
	in.report(Event{Kind: EventLength, Offset: start, Depth: depth, Raw: raw, Length: n}, derr)
	if derr != nil {
		return c, false
	}

	body, rest := c.sub(int(n) - lengthSize)
	body, ok := in.readString(body, depth)
	if !ok {
		in.trailing(body, depth)
		return rest, false
	}
	return rest, in.nested(body, depth, false)
}

func (in *inspector) dbPointer(c cursor, depth int) (cursor, bool) {
	c, ok := in.readString(c, depth)
	if !ok {
		return c, false
	}
	// The object ID must leave room for the enclosing terminator.
	if c.remaining() < 13 {
		in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth},
			newError(PayloadTooShort, "dbPointer needs 12 object ID bytes before the terminator, have %d", c.remaining()))
		return c, false
	}
	return in.fixed(c, 12, depth), true
}
