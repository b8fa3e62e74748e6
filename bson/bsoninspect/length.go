// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

const (
	// lengthSize is the width of every BSON length field.
	lengthSize = 4

	// Document and code with scope lengths count their own length field, so
	// they are checked against the bytes that remain before the field.
	selfInclusive = lengthSize

	// A binary length excludes the subtype byte that follows the field.
	binaryAdjustment = -1

	minDocumentSize      = 5
	minCodeWithScopeSize = 14
)

// readLength reads a little-endian int32 from the front of c and checks that
// 0 <= n <= remaining+adjustment, where remaining counts the bytes after the
// field. If fewer than four bytes are available nothing is consumed. A length
// that is out of range is still consumed and returned together with the error
// so that it can be reported; the caller must not rely on it.
func readLength(c cursor, adjustment int) (int32, []byte, cursor, *DecodeError) {
	if c.remaining() < lengthSize {
		return 0, nil, c, newError(TruncatedLength, "need %d bytes, have %d", lengthSize, c.remaining())
	}
	raw, rest := c.take(lengthSize)
	n := readi32(raw)
	if limit := rest.remaining() + adjustment; n < 0 || int(n) > limit {
		return n, raw, rest, newError(LengthOutOfRange, "length %d outside [0, %d]", n, limit)
	}
	return n, raw, rest, nil
}
