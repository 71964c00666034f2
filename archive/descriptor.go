// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package archive

// Descriptor is the archived representation of a variable-length field: an
// inline (offset, length) pair pointing at bytes appended to the tail of
// the image. It is itself a plain fixed-layout struct (two uint64s), so
// selecting a variable-length field through either façade yields a
// Query[Descriptor] / a verified Descriptor window rather than the logical
// string or []byte directly — satisfying spec.md §4.3's requirement that
// composing through a variable-length field must not let a caller
// reinterpret an unverified tail as a typed value.
//
// A Descriptor is only meaningful against the complete image it was read
// from. Resolving it into actual payload bytes is a second, independent
// operation: slice [Offset, Offset+Length) out of the block-level CID and
// decode that as Bytes. See Block.Extract and Slice.Deref for the two
// hops.
type Descriptor struct {
	Offset uint64
	Length uint64
}

// Bytes is the archived representation of a bare byte payload: the entire
// verified window is the value, with no head/tail split. It is what a
// Descriptor's second hop is decoded as.
type Bytes []byte
