// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package archive

import "errors"

// Sentinel errors for the archiver. Follows the teacher repo's own idiom
// (see types/errors.go in the source tree this module was adapted from):
// plain stdlib errors.New values, wrapped with fmt.Errorf("...: %w", ...)
// at the call site rather than through a third-party errors library.
var (
	// ErrBufferTooSmall is returned by Archive when the destination buffer
	// cannot hold the archived image. Spec error kind: BufferTooSmall.
	ErrBufferTooSmall = errors.New("archive: buffer too small")

	// ErrUnsupportedType is returned when a field's Go type has no defined
	// archived representation.
	ErrUnsupportedType = errors.New("archive: unsupported type")

	// ErrUnknownField is returned by Layout.FieldSpan for a name the type
	// does not declare. Surfaces to callers as cid.ErrInvalidField.
	ErrUnknownField = errors.New("archive: unknown field")

	// ErrNotFixedLayout is returned by ViewSlice when T's archived layout
	// contains a variable-length field and so cannot be safely
	// reinterpreted from a narrow, non-contiguous-with-its-image window.
	ErrNotFixedLayout = errors.New("archive: type is not fixed-layout")

	// ErrShortBuffer is returned when a view's backing bytes are shorter
	// than the layout they are asked to represent.
	ErrShortBuffer = errors.New("archive: buffer shorter than layout")

	// ErrMalformed is returned when a variable-length descriptor points
	// outside the bounds of the image it was read from.
	ErrMalformed = errors.New("archive: malformed tail reference")
)
