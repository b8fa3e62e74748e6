// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

import "unicode/utf8"

// readString inspects a length-prefixed, null-terminated string. It returns
// false only when the length field is unusable; an unterminated or non UTF-8
// body is reported as raw bytes and decoding continues after it.
func (in *inspector) readString(c cursor, depth int) (cursor, bool) {
	n, raw, rest, derr := readLength(c, 0)
	if derr == nil && n == 0 {
		derr = newError(LengthOutOfRange, "string length must count the terminating null")
	}
	in.report(Event{Kind: EventLength, Offset: c.off, Depth: depth, Raw: raw, Length: n}, derr)
	if derr != nil {
		return rest, false
	}

	off := rest.off
	body, rest := rest.take(int(n))
	text := body[:n-1]
	switch {
	case body[n-1] != 0x00:
		in.report(Event{Kind: EventRawHex, Offset: off, Depth: depth, Raw: body},
			newError(UnterminatedString, "last byte is 0x%02x", body[n-1]))
	case !utf8.Valid(text):
		in.report(Event{Kind: EventRawHex, Offset: off, Depth: depth, Raw: body}, newError(InvalidUTF8, ""))
	default:
		in.report(Event{Kind: EventString, Offset: off, Depth: depth, Raw: body, Text: string(text)}, nil)
	}
	return rest, true
}

// readCString inspects a null-terminated string with no length prefix. If no
// terminator exists the rest of the scope is reported as the unterminated
// string and false is returned.
func (in *inspector) readCString(c cursor, depth int, what string) (cursor, bool) {
	idx := c.indexByte(0x00)
	if idx < 0 {
		raw, rest := c.take(c.remaining())
		in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth, Raw: raw},
			newError(UnterminatedString, "%s has no terminating null", what))
		return rest, false
	}

	raw, rest := c.take(idx + 1)
	if !utf8.Valid(raw[:idx]) {
		in.report(Event{Kind: EventRawHex, Offset: c.off, Depth: depth, Raw: raw}, newError(InvalidUTF8, "%s", what))
		return rest, true
	}
	in.report(Event{Kind: EventString, Offset: c.off, Depth: depth, Raw: raw, Text: string(raw[:idx])}, nil)
	return rest, true
}
