// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package render turns inspection events into output for a terminal or for
// other programs.
package render

import (
	"github.com/AramilRey/js-bson/bson/bsoninspect"
)

// Renderer writes one output record per input line. Events of a document are
// delivered through Emit between Begin and End.
type Renderer interface {
	bsoninspect.Sink

	// Begin starts the record for the document on the given input line.
	Begin(line int)
	// End finishes the current document record and writes it.
	End(res bsoninspect.Result) error
	// Comment writes a comment line verbatim.
	Comment(line int, text string) error
	// Empty writes the notice for a line holding no document.
	Empty(line int) error
	// Invalid writes the notice for a line that could not be turned into
	// document bytes.
	Invalid(line int, text string, err error) error
}

// NoDocument is the notice written for empty lines.
const NoDocument = "(no document)"
