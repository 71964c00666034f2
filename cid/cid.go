// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cid implements the content identifier and selector algebra
// described in §3 and §4.1 of the system specification: a value type
// binding a Merkle root, a byte offset and a length, composable by
// intersecting with a field span.
package cid

import (
	"bytes"
	"encoding/hex"
	"fmt"

	safemath "github.com/luxfi/contentblock/utils/math"
)

// Size is the byte width of a tree-hash root.
const Size = 32

// CurrentVersion is the only CID format this package recognises.
// Non-zero values are reserved; verifiers that encounter them must reject
// the CID without attempting hash verification (spec §8 scenario 6).
const CurrentVersion uint8 = 0

// EmptyHash is the fixed tree-hash of the empty byte string. It is also
// exported as treehash.EmptyHash; both must agree. Package treehash checks
// its copy at init time against its own hash primitive, and block_test.go
// checks that an empty Block's CID equals Default().
var EmptyHash = [Size]byte{
	0xaf, 0x13, 0x49, 0xb9, 0xf5, 0xf9, 0xa1, 0xa6,
	0xa0, 0x40, 0x4d, 0xea, 0x36, 0xdc, 0xc9, 0x49,
	0x9b, 0xcb, 0x25, 0xc9, 0xad, 0xc1, 0x12, 0xb7,
	0xcc, 0x9a, 0x93, 0xca, 0xe4, 0x1f, 0x32, 0x62,
}

// CID is the only value that crosses trust boundaries: "the bytes
// [start..start+len) under Merkle root hash". It is a plain value type:
// copyable, orderable, hashable (as a Go map key via [32]byte), and has a
// canonical diagnostic text form.
type CID struct {
	Version uint8
	Hash    [Size]byte
	Start   uint64
	Len     uint64
}

// New returns a fresh whole-block CID: start=0, covering len bytes under
// root. This is the only constructor that may set Start to anything but a
// prior CID's Start+range.Start; everywhere else composition flows through
// Slice.
func New(root [Size]byte, length uint64) CID {
	return CID{Version: CurrentVersion, Hash: root, Start: 0, Len: length}
}

// Default returns the distinguished empty-block CID: version 0, the fixed
// empty tree-hash, start=0, len=0.
func Default() CID {
	return CID{Version: CurrentVersion, Hash: EmptyHash, Start: 0, Len: 0}
}

// Range is a half-open byte range [Start, End) relative to whatever CID it
// is applied to via Slice.
type Range struct {
	Start uint64
	End   uint64
}

// Slice sub-addresses c by r. The hash and version never change; the
// result's Start is c.Start+r.Start and its Len is r.End-r.Start.
//
// Slice does NOT check that the new range lies within the original block:
// the result may be unverifiable, but it stays syntactically well-formed.
// Verification (package slice) is where an out-of-bounds range actually
// fails. This mirrors the open question in spec.md §9: early validation at
// the whole-block case is deliberately not performed here.
//
// Slice returns an error when r.End < r.Start, or when the arithmetic to
// compute the new start would overflow u64 — the latter a condition the
// original Rust source could not even express, since it operated over
// in-memory usize ranges, but which a public Go API accepting
// attacker-controlled offsets must guard against.
func Slice(c CID, r Range) (CID, error) {
	if r.End < r.Start {
		return CID{}, fmt.Errorf("cid: invalid range [%d..%d)", r.Start, r.End)
	}
	length := r.End - r.Start
	start, err := safemath.Add64(c.Start, r.Start)
	if err != nil {
		return CID{}, fmt.Errorf("cid: slice start overflow: %w", err)
	}
	return CID{
		Version: c.Version,
		Hash:    c.Hash,
		Start:   start,
		Len:     length,
	}, nil
}

// MustSlice panics wherever Slice would return an error (a reversed range
// or overflow). Reserved for callers that have already
// bounds-checked the range (e.g. composing two spans derived from the
// same archived type), mirroring the Rust source's infallible Cid::slice.
func MustSlice(c CID, r Range) CID {
	out, err := Slice(c, r)
	if err != nil {
		panic(err)
	}
	return out
}

// End returns Start+Len, i.e. the exclusive end of the byte range this CID
// addresses within its block.
func (c CID) End() (uint64, error) {
	return safemath.Add64(c.Start, c.Len)
}

// IsEmpty reports whether c is the distinguished empty-block CID.
func (c CID) IsEmpty() bool {
	return c == Default()
}

// Compare orders CIDs lexicographically by (hash, start, len, version), as
// required by spec.md §3.
func (c CID) Compare(other CID) int {
	if d := bytes.Compare(c.Hash[:], other.Hash[:]); d != 0 {
		return d
	}
	if c.Start != other.Start {
		if c.Start < other.Start {
			return -1
		}
		return 1
	}
	if c.Len != other.Len {
		if c.Len < other.Len {
			return -1
		}
		return 1
	}
	switch {
	case c.Version < other.Version:
		return -1
	case c.Version > other.Version:
		return 1
	default:
		return 0
	}
}

// String renders the canonical diagnostic form hex(hash)[start..start+len].
// This form is for logs and error messages only; it is never parsed back.
func (c CID) String() string {
	end := c.Start + c.Len
	return fmt.Sprintf("%s[%d..%d]", hex.EncodeToString(c.Hash[:]), c.Start, end)
}
