// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

import "bytes"

// cursor is the undecoded remainder of a scope. off is the absolute offset
// of buf[0] within the original input.
type cursor struct {
	buf []byte
	off int
}

func newCursor(src []byte) cursor { return cursor{buf: src} }

func (c cursor) remaining() int { return len(c.buf) }

// take splits off the first n bytes. The caller must ensure n <= remaining().
// The returned prefix has its capacity clipped so appending to it can never
// write into the rest of the input.
func (c cursor) take(n int) ([]byte, cursor) {
	return c.buf[:n:n], cursor{buf: c.buf[n:], off: c.off + n}
}

// sub narrows the first n bytes into a cursor of their own and returns it
// alongside the cursor for what follows.
func (c cursor) sub(n int) (cursor, cursor) {
	head, rest := c.take(n)
	return cursor{buf: head, off: c.off}, rest
}

func (c cursor) indexByte(b byte) int { return bytes.IndexByte(c.buf, b) }

func (c cursor) peekInt32() (int32, bool) {
	if len(c.buf) < 4 {
		return 0, false
	}
	return readi32(c.buf), true
}

// readi32 is a helper function for reading an int32 from slice of bytes.
func readi32(b []byte) int32 {
	_ = b[3] // bounds check hint to compiler; see golang.org/issue/14808
	return int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16 | int32(b[3])<<24
}
