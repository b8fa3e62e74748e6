// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonoptions

// DefaultMaxDepth is the nesting depth at which the inspector stops
// descending into embedded documents, arrays and code-with-scope bodies.
const DefaultMaxDepth = 200

// InspectOptions represents all possible options for structural inspection.
type InspectOptions struct {
	MaxDepth *int // Specifies how deeply nested containers may be. Defaults to 200.

	// Specifies whether a top-level document ends at its declared length. When false, the
	// whole input belongs to the document. Defaults to false.
	StrictLength *bool
}

// Inspect creates a new *InspectOptions
func Inspect() *InspectOptions {
	return &InspectOptions{}
}

// SetMaxDepth specifies how deeply nested containers may be. Values below 1 are treated as 1.
func (i *InspectOptions) SetMaxDepth(depth int) *InspectOptions {
	i.MaxDepth = &depth
	return i
}

// SetStrictLength specifies whether a top-level document ends at its declared length. Bytes
// after it are then reported as trailing bytes instead of being decoded as further elements.
func (i *InspectOptions) SetStrictLength(strict bool) *InspectOptions {
	i.StrictLength = &strict
	return i
}

// MergeInspectOptions combines the given *InspectOptions into a single *InspectOptions in a last one wins fashion.
func MergeInspectOptions(opts ...*InspectOptions) *InspectOptions {
	depth := DefaultMaxDepth
	strict := false
	i := &InspectOptions{
		MaxDepth:     &depth,
		StrictLength: &strict,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.MaxDepth != nil {
			d := *opt.MaxDepth
			if d < 1 {
				d = 1
			}
			i.MaxDepth = &d
		}
		if opt.StrictLength != nil {
			i.StrictLength = opt.StrictLength
		}
	}

	return i
}
