// Copyright (C) MongoDB, Inc. 2023-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import "strings"

// DiffToInfo is the number of levels that come before the "Info" level. This
// ensures that "Info" is the 0th level passed to the sink.
const DiffToInfo = 1

// Level is an enumeration representing the supported log severity levels.
type Level int

const (
	// LevelOff suppresses logging.
	LevelOff Level = iota

	// LevelInfo enables logging of informational messages: anomalies in the
	// input and end-of-run summaries.
	LevelInfo

	// LevelDebug enables logging of debug messages, such as one record per
	// decoded document.
	LevelDebug
)

// LevelLiteral are the logging levels accepted in environment variables and
// configuration files.
type LevelLiteral string

const (
	LevelLiteralOff       LevelLiteral = "off"
	LevelLiteralEmergency LevelLiteral = "emergency"
	LevelLiteralAlert     LevelLiteral = "alert"
	LevelLiteralCritical  LevelLiteral = "critical"
	LevelLiteralError     LevelLiteral = "error"
	LevelLiteralWarning   LevelLiteral = "warn"
	LevelLiteralNotice    LevelLiteral = "notice"
	LevelLiteralInfo      LevelLiteral = "info"
	LevelLiteralDebug     LevelLiteral = "debug"
	LevelLiteralTrace     LevelLiteral = "trace"
)

// Level returns the Level associated with the literal. Unknown literals map to
// LevelOff.
func (llevel LevelLiteral) Level() Level {
	switch llevel {
	case LevelLiteralEmergency, LevelLiteralAlert, LevelLiteralCritical,
		LevelLiteralError, LevelLiteralWarning, LevelLiteralNotice, LevelLiteralInfo:
		return LevelInfo
	case LevelLiteralDebug, LevelLiteralTrace:
		return LevelDebug
	default:
		return LevelOff
	}
}

func (llevel LevelLiteral) equalFold(str string) bool {
	return strings.EqualFold(string(llevel), str)
}

func allLevelLiterals() []LevelLiteral {
	return []LevelLiteral{
		LevelLiteralOff,
		LevelLiteralEmergency,
		LevelLiteralAlert,
		LevelLiteralCritical,
		LevelLiteralError,
		LevelLiteralWarning,
		LevelLiteralNotice,
		LevelLiteralInfo,
		LevelLiteralDebug,
		LevelLiteralTrace,
	}
}

// ParseLevel checks if the given string is a valid level literal. If it is,
// the Level and true are returned.
func ParseLevel(str string) (Level, bool) {
	for _, llevel := range allLevelLiterals() {
		if llevel.equalFold(strings.TrimSpace(str)) {
			return llevel.Level(), true
		}
	}

	return LevelOff, false
}
