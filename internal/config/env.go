// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package config

import (
	"strconv"

	"github.com/pkg/errors"
)

const (
	envVarHex          = "BSONVIEW_HEX"
	envVarFormat       = "BSONVIEW_FORMAT"
	envVarIndent       = "BSONVIEW_INDENT"
	envVarColor        = "BSONVIEW_COLOR"
	envVarMaxDepth     = "BSONVIEW_MAX_DEPTH"
	envVarStrictLength = "BSONVIEW_STRICT_LENGTH"
	envVarSummary      = "BSONVIEW_SUMMARY"
	envVarLogLevel     = "BSONVIEW_LOG_LEVEL"
)

// FromEnv builds a layer from the BSONVIEW_* variables that lookup finds.
func FromEnv(lookup func(string) (string, bool)) (Overrides, error) {
	var o Overrides
	var err error

	if o.Hex, err = envBool(lookup, envVarHex); err != nil {
		return o, err
	}
	if o.Indent, err = envBool(lookup, envVarIndent); err != nil {
		return o, err
	}
	if o.Summary, err = envBool(lookup, envVarSummary); err != nil {
		return o, err
	}
	if o.StrictLength, err = envBool(lookup, envVarStrictLength); err != nil {
		return o, err
	}
	if v, ok := lookup(envVarMaxDepth); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, errors.Wrapf(err, "%s", envVarMaxDepth)
		}
		o.MaxDepth = &n
	}
	o.Format = envString(lookup, envVarFormat)
	o.Color = envString(lookup, envVarColor)
	o.LogLevel = envString(lookup, envVarLogLevel)
	return o, nil
}

func envBool(lookup func(string) (string, bool), key string) (*bool, error) {
	v, ok := lookup(key)
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", key)
	}
	return &b, nil
}

func envString(lookup func(string) (string, bool), key string) *string {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	return &v
}
