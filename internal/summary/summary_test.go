// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package summary

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AramilRey/js-bson/bson/bsoninspect"
	"github.com/AramilRey/js-bson/internal/logger"
)

func decodeHex(t *testing.T, s string) bsoninspect.Result {
	t.Helper()
	src, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return bsoninspect.Decode(src, nil)
}

func filled(t *testing.T) *Summary {
	t.Helper()
	var s Summary
	s.AddDocument(decodeHex(t, "05000000 00"))
	s.AddDocument(decodeHex(t, "0c000000 10 6100 01000000 00"))
	s.AddDocument(decodeHex(t, "09000000 08 6200 02 00"))
	s.AddDocument(decodeHex(t, "0500"))
	s.AddEmpty()
	s.AddComment()
	s.AddComment()
	s.AddInvalid()
	return &s
}

func TestSummaryCounts(t *testing.T) {
	s := filled(t)
	assert.Equal(t, 4, s.Documents)
	assert.Equal(t, 2, s.Anomalous)
	assert.Equal(t, 1, s.Empty)
	assert.Equal(t, 2, s.Comments)
	assert.Equal(t, 1, s.Invalid)
	assert.Equal(t, map[bsoninspect.ErrorKind]int{
		bsoninspect.TruncatedLength: 1,
		bsoninspect.InvalidBoolean:  1,
	}, s.Kinds)

	ls, err := s.Lengths()
	require.NoError(t, err)
	assert.Equal(t, 3, ls.Count)
	assert.Equal(t, 5.0, ls.Min)
	assert.Equal(t, 12.0, ls.Max)
	assert.InDelta(t, 26.0/3, ls.Mean, 1e-9)
	assert.Equal(t, 9.0, ls.Median)
}

func TestSummaryWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := filled(t).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	want := `documents: 4 (2 with anomalies)
empty lines: 1
comments: 2
invalid lines: 1
anomalies:
  truncated length: 1
  invalid boolean: 1
declared lengths: min 5B, max 12B, mean 8.667B, median 9B
`
	assert.Equal(t, want, buf.String())
}

func TestSummaryEmpty(t *testing.T) {
	var s Summary
	ls, err := s.Lengths()
	require.NoError(t, err)
	assert.Zero(t, ls.Count)

	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "documents: 0 (0 with anomalies)\nempty lines: 0\ncomments: 0\ninvalid lines: 0\n", buf.String())
}

type brokenWriter struct{ calls int }

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("pipe closed")
}

func TestSummaryWriteError(t *testing.T) {
	w := &brokenWriter{}
	_, err := filled(t).WriteTo(w)
	require.Error(t, err)
	assert.Equal(t, "writing summary: pipe closed", err.Error())
	assert.Equal(t, 1, w.calls)
}

type captureSink struct {
	msgs []string
	kvs  [][]interface{}
}

func (s *captureSink) Info(_ int, msg string, kv ...interface{}) {
	s.msgs = append(s.msgs, msg)
	s.kvs = append(s.kvs, kv)
}

func (s *captureSink) Error(_ error, msg string, kv ...interface{}) {
	s.msgs = append(s.msgs, msg)
	s.kvs = append(s.kvs, kv)
}

func TestSummaryLog(t *testing.T) {
	sink := &captureSink{}
	l := logger.New(sink, nil, map[logger.Component]logger.Level{logger.ComponentAll: logger.LevelInfo})
	filled(t).Log(l)

	require.Equal(t, []string{"summary"}, sink.msgs)
	kv := sink.kvs[0]
	fields := make(map[string]interface{})
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i].(string)] = kv[i+1]
	}
	assert.Equal(t, "decode", fields[logger.KeyComponent])
	assert.Equal(t, 4, fields["documents"])
	assert.Equal(t, 2, fields["anomalous"])
	assert.Equal(t, 1, fields["invalid boolean"])
	assert.Equal(t, 9.0, fields["medianLength"])
}

func TestSummaryLogDisabled(t *testing.T) {
	sink := &captureSink{}
	l := logger.New(sink, nil, map[logger.Component]logger.Level{logger.ComponentAll: logger.LevelOff})
	filled(t).Log(l)
	assert.Empty(t, sink.msgs)
}
