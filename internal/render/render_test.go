// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package render

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AramilRey/js-bson/bson/bsoninspect"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func renderDoc(t *testing.T, r Renderer, line int, src []byte) {
	t.Helper()
	r.Begin(line)
	res := bsoninspect.Decode(src, r)
	require.NoError(t, r.End(res))
}

func TestTextDocuments(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "05000000 00", "5 { 00 }\n"},
		{"int32", "0c000000 10 6100 01000000 00", `12 { \x10 "a": 01000000 00 }` + "\n"},
		{"string", "12000000 02 7300 06000000 68656c6c6f00 00", `18 { \x02 "s": 6 "hello" 00 }` + "\n"},
		{"array", "14000000 04 6100 0c000000 10 3000 07000000 00 00",
			`20 { \x04 "a": 12 [ \x10 "0": 07000000 00 ] 00 }` + "\n"},
		{"invalid boolean", "09000000 08 6200 02 00", `9 { \x08 "b": 02 <invalid boolean> 00 }` + "\n"},
		{"truncated length", "0500", "? <truncated length> 0500\n"},
		{"bad terminator", "05000000 01", "5 { 01 <bad terminator byte> }\n"},
		{"payload too short", "0a000000 01 6400 0102 00", `10 { \x01 "d": <payload too short> 010200 }` + "\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderDoc(t, NewText(&buf, NoColor), 1, mustHex(t, tc.doc))
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("output differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf, NoColor)
	require.NoError(t, r.Comment(1, "# hello"))
	require.NoError(t, r.Empty(2))
	require.NoError(t, r.Invalid(3, "zz", errors.New("line 3 is not hex")))
	assert.Equal(t, "# hello\n(no document)\n(invalid input: line 3 is not hex)\n", buf.String())
}

func TestTextColor(t *testing.T) {
	var buf bytes.Buffer
	p := DefaultPalette()
	renderDoc(t, NewText(&buf, p), 1, mustHex(t, "09000000 08 6200 02 00"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[36m9\x1b["), "got %q", out)
	assert.Contains(t, out, "\x1b[1;31m02\x1b[")
	assert.Contains(t, out, "\x1b[1;31m<invalid boolean>\x1b[")
	assert.Contains(t, out, "\x1b[33m\"b\"\x1b[")
	assert.Contains(t, out, "\x1b[1m:\x1b[")
	assert.True(t, strings.HasSuffix(out, "\n"))

	buf.Reset()
	require.NoError(t, NewText(&buf, p).Comment(1, "# c"))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[2m# c\x1b["), "got %q", buf.String())

	// An empty entry leaves its tokens plain.
	p.Length = ""
	buf.Reset()
	renderDoc(t, NewText(&buf, p), 1, mustHex(t, "05000000 00"))
	assert.True(t, strings.HasPrefix(buf.String(), "5 "), "got %q", buf.String())
}

func TestTextWriteError(t *testing.T) {
	r := NewText(failWriter{}, NoColor)
	r.Begin(1)
	res := bsoninspect.Decode(mustHex(t, "0500000000"), r)
	err := r.End(res)
	require.Error(t, err)
	assert.Equal(t, "writing document: closed", err.Error())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPaletteValidate(t *testing.T) {
	require.NoError(t, DefaultPalette().Validate())
	require.NoError(t, NoColor.Validate())

	p := DefaultPalette()
	p.Key = "1;bold"
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `palette entry "key"`)
}

func TestJSONDocument(t *testing.T) {
	var buf bytes.Buffer
	renderDoc(t, NewJSON(&buf, JSONOptions{}), 4, mustHex(t, "09000000 08 6200 02 00"))

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is one line")

	var rec jsonRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, 4, rec.Line)
	require.NotNil(t, rec.Errors)
	assert.Equal(t, 1, *rec.Errors)

	var kinds []string
	for _, ev := range rec.Events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []string{"length", "open", "type", "key", "raw", "raw", "close"}, kinds)

	require.NotNil(t, rec.Events[0].Length)
	assert.Equal(t, int32(9), *rec.Events[0].Length)
	assert.Equal(t, "09000000", rec.Events[0].Hex)
	assert.Equal(t, "boolean", rec.Events[2].Type)
	assert.Equal(t, "b", rec.Events[3].Text)

	flagged := rec.Events[4]
	assert.False(t, flagged.Valid)
	assert.Equal(t, "invalid boolean at offset 7: 0x02", flagged.Error)
	assert.Equal(t, 7, flagged.Offset)
	assert.Equal(t, 1, flagged.Depth)
}

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSON(&buf, JSONOptions{})
	require.NoError(t, r.Comment(1, "# c"))
	require.NoError(t, r.Empty(2))
	require.NoError(t, r.Invalid(3, "zz", errors.New("bad")))
	want := `{"line":1,"comment":"# c"}` + "\n" +
		`{"line":2,"empty":true}` + "\n" +
		`{"line":3,"invalid":"bad"}` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONIndent(t *testing.T) {
	var plain, colored bytes.Buffer
	src := mustHex(t, "05000000 00")
	renderDoc(t, NewJSON(&plain, JSONOptions{Indent: true}), 1, src)
	renderDoc(t, NewJSON(&colored, JSONOptions{Indent: true, Color: true}), 1, src)

	assert.Contains(t, plain.String(), "\n  \"line\": 1,")
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")

	var rec jsonRecord
	require.NoError(t, json.Unmarshal(plain.Bytes(), &rec))
	assert.Len(t, rec.Events, 4)
}
