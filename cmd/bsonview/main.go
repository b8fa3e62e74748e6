// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command bsonview prints the structure of BSON documents, one document per
// input line, flagging every byte that does not decode cleanly.
package main

import (
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	fd := os.Stdout.Fd()
	os.Exit(run(os.Args, environment{
		stdin:     os.Stdin,
		stdout:    colorable.NewColorable(os.Stdout),
		stderr:    colorable.NewColorable(os.Stderr),
		terminal:  isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		lookupEnv: os.LookupEnv,
	}))
}
