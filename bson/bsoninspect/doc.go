// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsoninspect walks a BSON encoded byte slice and reports its
// structure as a sequence of events, tolerating malformed input.
//
// Unlike the Read* functions of a BSON library, which return false as soon as
// a value cannot be read, the inspector reports everything it can decode and
// marks everything it cannot. Each length field, type tag, key and payload is
// emitted to a Sink as an Event carrying the exact input bytes it accounts
// for, and each anomaly is attached to exactly one event as a *DecodeError.
// When an anomaly leaves the structure of a document unknown, decoding of that
// document stops and the bytes that were not interpreted are emitted as a
// single EventTrailingBytes event.
//
// Concatenating the Raw bytes of every event emitted for an input reproduces
// the input. Every EventOpenContainer is matched by a later
// EventCloseContainer at the same depth.
//
// Values are not interpreted. Numbers, object IDs and binary payloads are
// reported as raw bytes; only lengths, strings and keys are decoded.
package bsoninspect
