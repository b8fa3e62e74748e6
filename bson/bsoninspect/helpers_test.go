// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

import (
	"bytes"
	"fmt"

	"github.com/AramilRey/js-bson/bson/bsontype"
)

func appendi32(dst []byte, i32 int32) []byte {
	return append(dst, byte(i32), byte(i32>>8), byte(i32>>16), byte(i32>>24))
}

func concat(parts ...[]byte) []byte { return bytes.Join(parts, nil) }

// buildDoc frames elems as a document with a correct length and terminator.
func buildDoc(elems ...[]byte) []byte {
	body := concat(elems...)
	dst := appendi32(nil, int32(len(body)+5))
	dst = append(dst, body...)
	return append(dst, 0x00)
}

func buildElem(t bsontype.Type, key string, payload ...[]byte) []byte {
	dst := append([]byte{byte(t)}, key...)
	dst = append(dst, 0x00)
	return append(dst, concat(payload...)...)
}

func buildString(s string) []byte {
	dst := appendi32(nil, int32(len(s)+1))
	dst = append(dst, s...)
	return append(dst, 0x00)
}

func buildCString(s string) []byte { return append([]byte(s), 0x00) }

func buildCodeWithScope(code string, scope []byte) []byte {
	s := buildString(code)
	dst := appendi32(nil, int32(4+len(s)+len(scope)))
	return concat(dst, s, scope)
}

func buildBinary(subtype byte, data []byte) []byte {
	if subtype == bsontype.BinaryOld {
		inner := appendi32(nil, int32(len(data)))
		return concat(appendi32(nil, int32(len(data)+4)), []byte{subtype}, inner, data)
	}
	return concat(appendi32(nil, int32(len(data))), []byte{subtype}, data)
}

func repeat(b byte, n int) []byte { return bytes.Repeat([]byte{b}, n) }

func raw(b ...byte) []byte { return b }

func errorKinds(errs []*DecodeError) []ErrorKind {
	kinds := make([]ErrorKind, 0, len(errs))
	for _, err := range errs {
		kinds = append(kinds, err.Kind)
	}
	return kinds
}

// wellFormed returns documents that exercise every recognised type.
func wellFormed() map[string][]byte {
	oid := repeat(0xAB, 12)
	return map[string][]byte{
		"empty": buildDoc(),
		"scalars": buildDoc(
			buildElem(bsontype.Double, "d", repeat(0x01, 8)),
			buildElem(bsontype.ObjectID, "_id", oid),
			buildElem(bsontype.Boolean, "t", raw(0x01)),
			buildElem(bsontype.Boolean, "f", raw(0x00)),
			buildElem(bsontype.DateTime, "when", repeat(0x02, 8)),
			buildElem(bsontype.Int32, "i", repeat(0x03, 4)),
			buildElem(bsontype.Timestamp, "ts", repeat(0x04, 8)),
			buildElem(bsontype.Int64, "l", repeat(0x05, 8)),
		),
		"empty payloads": buildDoc(
			buildElem(bsontype.Undefined, "u"),
			buildElem(bsontype.Null, "n"),
			buildElem(bsontype.MaxKey, "max"),
			buildElem(bsontype.MinKey, "min"),
		),
		"strings": buildDoc(
			buildElem(bsontype.String, "s", buildString("hello, world")),
			buildElem(bsontype.String, "empty", buildString("")),
			buildElem(bsontype.String, "utf8", buildString("héllo ☃")),
			buildElem(bsontype.JavaScript, "js", buildString("function() {}")),
			buildElem(bsontype.Symbol, "sym", buildString("sym")),
			buildElem(bsontype.Regex, "re", buildCString("^a.*b$"), buildCString("im")),
			buildElem(bsontype.Regex, "empty re", buildCString(""), buildCString("")),
		),
		"binary": buildDoc(
			buildElem(bsontype.Binary, "generic", buildBinary(bsontype.BinaryGeneric, raw(1, 2, 3))),
			buildElem(bsontype.Binary, "empty", buildBinary(bsontype.BinaryGeneric, nil)),
			buildElem(bsontype.Binary, "old", buildBinary(bsontype.BinaryOld, raw(4, 5, 6, 7))),
			buildElem(bsontype.Binary, "uuid", buildBinary(0x04, repeat(0x11, 16))),
		),
		"nested": buildDoc(
			buildElem(bsontype.EmbeddedDocument, "doc", buildDoc(
				buildElem(bsontype.Array, "arr", buildDoc(
					buildElem(bsontype.Int32, "0", repeat(0x00, 4)),
					buildElem(bsontype.EmbeddedDocument, "1", buildDoc()),
				)),
			)),
			buildElem(bsontype.Array, "empty", buildDoc()),
		),
		"code with scope": buildDoc(
			buildElem(bsontype.CodeWithScope, "cws", buildCodeWithScope("return x;", buildDoc(
				buildElem(bsontype.Int32, "x", repeat(0x07, 4)),
			))),
			buildElem(bsontype.CodeWithScope, "empty", buildCodeWithScope("", buildDoc())),
		),
		"dbpointer": buildDoc(
			buildElem(bsontype.DBPointer, "ref", buildString("db.coll"), oid),
		),
	}
}

// unbalanced returns a description of the first container event that does
// not pair up, or "" when every open has a matching close.
func unbalanced(events []Event) string {
	var open []Event
	for _, ev := range events {
		switch ev.Kind {
		case EventOpenContainer:
			open = append(open, ev)
		case EventCloseContainer:
			if len(open) == 0 {
				return fmt.Sprintf("close at %d without open", ev.Offset)
			}
			top := open[len(open)-1]
			if top.Array != ev.Array || top.Depth != ev.Depth {
				return fmt.Sprintf("close at %d does not match open at %d", ev.Offset, top.Offset)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return fmt.Sprintf("%d containers left open, innermost at %d", len(open), open[len(open)-1].Offset)
	}
	return ""
}

// nestedArrays wraps an empty document in depth arrays.
func nestedArrays(depth int) []byte {
	doc := buildDoc()
	for i := 0; i < depth; i++ {
		doc = buildDoc(buildElem(bsontype.Array, "0", doc))
	}
	return doc
}
