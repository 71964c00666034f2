// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package blockdemo holds the types of the worked example from the system
// this module implements, which cmd/blockdemo runs: encode a struct, select a nested
// field by both the typed and the reflective façade, extract an
// authenticated proof for just that field, and verify it independently of
// the original block.
package blockdemo

import (
	"github.com/luxfi/contentblock/archive"
	"github.com/luxfi/contentblock/cid"
)

// BStruct is the innermost archived type: a bool and a uint32, entirely
// fixed-layout.
type BStruct struct {
	Prefix bool
	Number uint32
}

// Field implements cid.Selectable for BStruct.
func (BStruct) Field(root cid.CID, name string) (cid.CID, error) {
	span, err := archive.SpanOf[BStruct](fieldName(name))
	if err != nil {
		return cid.CID{}, cid.InvalidField("BStruct", name)
	}
	return cid.Slice(root, span)
}

// AStruct is the outer archived type. Text is variable-length, which
// makes AStruct's archived layout not FixedLayout — selecting through
// AStruct still works (Block.Deref always has the complete image to
// resolve Text from), but a Slice carrying only a narrow AStruct window
// could never Deref it; see archive.ViewSlice.
type AStruct struct {
	Boolean bool
	Nested  BStruct
	Link    cid.CID
	Text    string
}

// Field implements cid.Selectable for AStruct.
func (AStruct) Field(root cid.CID, name string) (cid.CID, error) {
	span, err := archive.SpanOf[AStruct](fieldName(name))
	if err != nil {
		return cid.CID{}, cid.InvalidField("AStruct", name)
	}
	return cid.Slice(root, span)
}

// fieldName maps the demo's lower_snake_case field names onto this
// module's exported Go field names, so both façades can be driven by the
// same string keys the original example used.
func fieldName(name string) string {
	switch name {
	case "boolean":
		return "Boolean"
	case "nested":
		return "Nested"
	case "link":
		return "Link"
	case "text":
		return "Text"
	case "prefix":
		return "Prefix"
	case "number":
		return "Number"
	default:
		return name
	}
}
