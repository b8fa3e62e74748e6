// Copyright (C) MongoDB, Inc. 2023-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package logger provides the component and level based logger used by the
// bsonview command.
package logger

import (
	"io"
	"os"
)

// LogSink represents a logging implementation. This interface is a subset of
// the logr.LogSink interface so that sinks built for logr can be used as-is.
type LogSink interface {
	// Info logs a non-error message with the given key/value pairs. The level
	// argument is provided for optional logging.
	Info(level int, msg string, keysAndValues ...interface{})

	// Error logs an error, with the given message and key/value pairs.
	Error(err error, msg string, keysAndValues ...interface{})
}

// KeyComponent is the key under which every record carries its component.
const KeyComponent = "component"

// Logger represents the configuration for the internal logger. Logging is
// synchronous: a record is handed to the sink before Print returns.
type Logger struct {
	ComponentLevels map[Component]Level // Log levels for each component.
	Sink            LogSink             // LogSink for log printing.
}

// New will construct a new logger. If any of the given options are the zero
// value, the logger will use the default values: a logrus sink writing to
// os.Stderr and levels from the process environment. lookup reads the
// BSONVIEW_LOG_* variables.
func New(sink LogSink, lookup func(string) (string, bool), componentLevels map[Component]Level) *Logger {
	if sink == nil {
		sink = NewLogrusSink(os.Stderr)
	}
	return &Logger{
		ComponentLevels: selectComponentLevels(lookup, componentLevels),
		Sink:            sink,
	}
}

// NewWithWriter constructs a logger whose default sink writes to w.
func NewWithWriter(w io.Writer, lookup func(string) (string, bool), componentLevels map[Component]Level) *Logger {
	return New(NewLogrusSink(w), lookup, componentLevels)
}

// LevelComponentEnabled will return true if the given Level is enabled for the
// given Component. A nil logger has every component disabled.
func (logger *Logger) LevelComponentEnabled(level Level, component Component) bool {
	if logger == nil || level == LevelOff {
		return false
	}
	if component == ComponentAll {
		for _, l := range logger.ComponentLevels {
			if l >= level {
				return true
			}
		}
		return false
	}
	return logger.ComponentLevels[component] >= level
}

// Print prints a message with the given level and component if that
// combination is enabled.
func (logger *Logger) Print(level Level, component Component, msg string, keysAndValues ...interface{}) {
	if !logger.LevelComponentEnabled(level, component) {
		return
	}

	kv := append([]interface{}{KeyComponent, component.String()}, keysAndValues...)
	logger.Sink.Info(int(level)-DiffToInfo, msg, kv...)
}

// Error logs an error for the given component. Errors are printed whenever any
// level is enabled for the component.
func (logger *Logger) Error(component Component, err error, msg string, keysAndValues ...interface{}) {
	if !logger.LevelComponentEnabled(LevelInfo, component) {
		return
	}

	kv := append([]interface{}{KeyComponent, component.String()}, keysAndValues...)
	logger.Sink.Error(err, msg, kv...)
}
