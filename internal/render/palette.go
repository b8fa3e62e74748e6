// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package render

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Palette holds the ANSI SGR parameters used for each class of token, such as
// "1;31" for bold red. An empty parameter leaves the token uncolored.
type Palette struct {
	Length     string
	Type       string
	Key        string
	String     string
	OK         string
	Punct      string
	Comment    string
	Suspicious string
}

// NoColor disables coloring.
var NoColor = Palette{}

// DefaultPalette returns the built-in colors.
func DefaultPalette() Palette {
	return Palette{
		Length:     "36",
		Type:       "35",
		Key:        "33",
		String:     "32",
		OK:         "",
		Punct:      "1",
		Comment:    "2",
		Suspicious: "1;31",
	}
}

func (p Palette) entries() map[string]string {
	return map[string]string{
		"length": p.Length, "type": p.Type, "key": p.Key, "string": p.String,
		"ok": p.OK, "punct": p.Punct, "comment": p.Comment, "suspicious": p.Suspicious,
	}
}

// Validate checks that every entry is a list of numeric SGR parameters.
func (p Palette) Validate() error {
	for name, sgr := range p.entries() {
		if _, err := parseSGR(sgr); err != nil {
			return errors.Wrapf(err, "palette entry %q", name)
		}
	}
	return nil
}

func parseSGR(sgr string) ([]color.Attribute, error) {
	if sgr == "" {
		return nil, nil
	}
	var attrs []color.Attribute
	for _, param := range strings.Split(sgr, ";") {
		n, err := strconv.ParseUint(param, 10, 8)
		if err != nil {
			return nil, errors.Errorf("%q is not an SGR parameter list", sgr)
		}
		attrs = append(attrs, color.Attribute(n))
	}
	return attrs, nil
}

// styles holds one painter per palette entry. A nil painter leaves text as
// it is.
type styles struct {
	length, typ, key, str, ok, punct, comment, suspicious *color.Color
}

func newStyle(sgr string) *color.Color {
	attrs, err := parseSGR(sgr)
	if err != nil || len(attrs) == 0 {
		return nil
	}
	c := color.New(attrs...)
	// Whether to color is decided by the caller, not by the color package's
	// terminal detection.
	c.EnableColor()
	return c
}

func (p Palette) styles() styles {
	return styles{
		length:     newStyle(p.Length),
		typ:        newStyle(p.Type),
		key:        newStyle(p.Key),
		str:        newStyle(p.String),
		ok:         newStyle(p.OK),
		punct:      newStyle(p.Punct),
		comment:    newStyle(p.Comment),
		suspicious: newStyle(p.Suspicious),
	}
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}
