// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsoninspect

import "fmt"

// ErrorKind classifies a decoding anomaly.
type ErrorKind int

// These constants enumerate every anomaly the inspector reports.
const (
	_ ErrorKind = iota
	// TruncatedLength means fewer than four bytes remained for a length field.
	TruncatedLength
	// LengthOutOfRange means a length field is negative, too small for its
	// construct, or larger than the bytes that follow it.
	LengthOutOfRange
	// MissingTerminator means a document ran out of bytes before its 0x00.
	MissingTerminator
	// BadTerminatorByte means the final byte of a document is not 0x00.
	BadTerminatorByte
	// UnknownType means an element type byte is not a recognised type.
	UnknownType
	// UnterminatedKey means no 0x00 ends the element key.
	UnterminatedKey
	// PayloadTooShort means fewer bytes remain than the element type needs.
	PayloadTooShort
	// InvalidBoolean means a boolean byte is neither 0x00 nor 0x01.
	InvalidBoolean
	// UnterminatedString means a string or cstring is missing its 0x00.
	UnterminatedString
	// InvalidUTF8 means string or key bytes are not valid UTF-8.
	InvalidUTF8
	// BinarySubtypeLengthMismatch means an old binary (subtype 0x02) inner
	// length disagrees with its payload.
	BinarySubtypeLengthMismatch
	// CodeWithScopeTooShort means a code with scope length is below 14.
	CodeWithScopeTooShort
	// NestingTooDeep means containers are nested beyond the configured depth.
	NestingTooDeep
	// LengthMismatch means a document's terminator is not where its declared
	// length puts it, or that input continues past a strict top-level length.
	LengthMismatch
)

var errorKindNames = map[ErrorKind]string{
	TruncatedLength:             "truncated length",
	LengthOutOfRange:            "length out of range",
	MissingTerminator:           "missing terminator",
	BadTerminatorByte:           "bad terminator byte",
	UnknownType:                 "unknown type",
	UnterminatedKey:             "unterminated key",
	PayloadTooShort:             "payload too short",
	InvalidBoolean:              "invalid boolean",
	UnterminatedString:          "unterminated string",
	InvalidUTF8:                 "invalid UTF-8",
	BinarySubtypeLengthMismatch: "binary subtype length mismatch",
	CodeWithScopeTooShort:       "code with scope too short",
	NestingTooDeep:              "nesting too deep",
	LengthMismatch:              "length mismatch",
}

// String implements the fmt.Stringer interface.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError describes one anomaly found while inspecting a document. Offset
// is the position in the input of the event the error is attached to.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
	Depth  int
	Detail string
}

func newError(kind ErrorKind, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// Is reports whether target is a *DecodeError of the same kind, so that
// errors.Is(err, &DecodeError{Kind: PayloadTooShort}) matches regardless of
// position.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}
