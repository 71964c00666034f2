// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cid

import "fmt"

// ErrInvalidField is returned by a Selectable implementation when asked to
// resolve a field name its archived layout does not know about.
var ErrInvalidField = fmt.Errorf("cid: invalid field")

// Selectable is the reflective selector façade (spec.md §4.1, §4.4): an
// alternative to the typed Query[T] façade for consumers that only know a
// field name at runtime. Implementations map a field name to the
// statically-known byte span of that field within the archived layout of
// the receiver's type, then call Slice.
//
// Both façades MUST produce identical CIDs for identical logical
// selections (spec.md §4.4); in practice every Selectable implementation
// is a thin string-keyed dispatch over the same span table that backs the
// typed façade's Select calls, so this holds by construction rather than
// by coincidence.
type Selectable interface {
	// Field resolves a field name to a sub-CID of root. ErrInvalidField
	// (or an error wrapping it) is returned for an unrecognised name.
	Field(root CID, name string) (CID, error)
}

// InvalidField builds the canonical ErrInvalidField error for a given type
// name and field, for Selectable implementations to return verbatim.
func InvalidField(typeName, field string) error {
	return fmt.Errorf("%w: %s.%s", ErrInvalidField, typeName, field)
}
