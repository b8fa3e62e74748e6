// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package summary tallies what a bsonview run has seen.
package summary

import (
	"fmt"
	"io"
	"sort"

	"github.com/docker/go-units"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/AramilRey/js-bson/bson/bsoninspect"
	"github.com/AramilRey/js-bson/internal/logger"
)

// Summary counts input lines and anomalies. The zero value is ready to use.
type Summary struct {
	Documents int
	Empty     int
	Comments  int
	Invalid   int
	// Anomalous counts documents with at least one anomaly.
	Anomalous int
	Kinds     map[bsoninspect.ErrorKind]int

	lengths []float64
}

// AddDocument records the result of decoding one document.
func (s *Summary) AddDocument(res bsoninspect.Result) {
	s.Documents++
	if !res.OK() {
		s.Anomalous++
	}
	for _, derr := range res.Errors {
		if s.Kinds == nil {
			s.Kinds = make(map[bsoninspect.ErrorKind]int)
		}
		s.Kinds[derr.Kind]++
	}
	if res.LengthValid {
		s.lengths = append(s.lengths, float64(res.Length))
	}
}

// AddEmpty records an empty line.
func (s *Summary) AddEmpty() { s.Empty++ }

// AddComment records a comment line.
func (s *Summary) AddComment() { s.Comments++ }

// AddInvalid records a line that could not be turned into document bytes.
func (s *Summary) AddInvalid() { s.Invalid++ }

// LengthStats describes the declared lengths of the documents whose length
// field was usable.
type LengthStats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Lengths computes statistics over the recorded declared lengths. Count is
// zero when there are none.
func (s *Summary) Lengths() (LengthStats, error) {
	ls := LengthStats{Count: len(s.lengths)}
	if ls.Count == 0 {
		return ls, nil
	}

	var err error
	if ls.Min, err = stats.Min(s.lengths); err != nil {
		return ls, errors.Wrap(err, "min length")
	}
	if ls.Max, err = stats.Max(s.lengths); err != nil {
		return ls, errors.Wrap(err, "max length")
	}
	if ls.Mean, err = stats.Mean(s.lengths); err != nil {
		return ls, errors.Wrap(err, "mean length")
	}
	if ls.Median, err = stats.Median(s.lengths); err != nil {
		return ls, errors.Wrap(err, "median length")
	}
	return ls, nil
}

func (s *Summary) sortedKinds() []bsoninspect.ErrorKind {
	kinds := make([]bsoninspect.ErrorKind, 0, len(s.Kinds))
	for k := range s.Kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// WriteTo writes a human readable report to w.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	ls, err := s.Lengths()
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	fmt.Fprintf(cw, "documents: %d (%d with anomalies)\n", s.Documents, s.Anomalous)
	fmt.Fprintf(cw, "empty lines: %d\n", s.Empty)
	fmt.Fprintf(cw, "comments: %d\n", s.Comments)
	fmt.Fprintf(cw, "invalid lines: %d\n", s.Invalid)
	if len(s.Kinds) > 0 {
		fmt.Fprintln(cw, "anomalies:")
		for _, k := range s.sortedKinds() {
			fmt.Fprintf(cw, "  %s: %d\n", k, s.Kinds[k])
		}
	}
	if ls.Count > 0 {
		fmt.Fprintf(cw, "declared lengths: min %s, max %s, mean %s, median %s\n",
			units.HumanSize(ls.Min), units.HumanSize(ls.Max), units.HumanSize(ls.Mean), units.HumanSize(ls.Median))
	}
	return cw.n, errors.Wrap(cw.err, "writing summary")
}

// Log prints the report through l at info level.
func (s *Summary) Log(l *logger.Logger) {
	kv := []interface{}{
		"documents", s.Documents,
		"anomalous", s.Anomalous,
		"empty", s.Empty,
		"comments", s.Comments,
		"invalid", s.Invalid,
	}
	for _, k := range s.sortedKinds() {
		kv = append(kv, k.String(), s.Kinds[k])
	}
	if ls, err := s.Lengths(); err != nil {
		l.Error(logger.ComponentDecode, err, "summarizing lengths")
	} else if ls.Count > 0 {
		kv = append(kv, "minLength", ls.Min, "maxLength", ls.Max, "meanLength", ls.Mean, "medianLength", ls.Median)
	}
	l.Print(logger.LevelInfo, logger.ComponentDecode, "summary", kv...)
}

// countingWriter remembers the first write error so a report can be written
// without checking every line.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
