// Copyright (C) MongoDB, Inc. 2023-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// LogrusSink writes records through a logrus.Logger and is the default sink
// for the logger.
type LogrusSink struct {
	log *logrus.Logger
}

// Compile-time check to ensure LogrusSink implements the LogSink interface.
var _ LogSink = &LogrusSink{}

// NewLogrusSink creates a LogrusSink writing text records to out. Level
// filtering happens in the Logger, so the logrus level is fully open.
func NewLogrusSink(out io.Writer) *LogrusSink {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return NewLogrusSinkFromLogger(log)
}

// NewLogrusSinkFromLogger wraps an existing logrus.Logger.
func NewLogrusSinkFromLogger(log *logrus.Logger) *LogrusSink {
	return &LogrusSink{log: log}
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		f[key] = keysAndValues[i+1]
	}
	return f
}

// Info writes msg at logrus info level for level 0 and debug level above it.
func (s *LogrusSink) Info(level int, msg string, keysAndValues ...interface{}) {
	entry := s.log.WithFields(fields(keysAndValues))
	if level > 0 {
		entry.Debug(msg)
		return
	}
	entry.Info(msg)
}

// Error writes msg with err at logrus error level.
func (s *LogrusSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.log.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}
