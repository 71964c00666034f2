// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package slice is the untrusted, sub-range side of the system: given a
// CID and a proof obtained from somewhere (a network peer, a cache, a
// Block.Extract call on the other side of a process boundary), it
// verifies the proof authenticates exactly the range the CID claims
// before allowing the caller anywhere near the bytes.
package slice

import (
	"fmt"

	"github.com/luxfi/contentblock/archive"
	"github.com/luxfi/contentblock/blockcfg"
	"github.com/luxfi/contentblock/cid"
	"github.com/luxfi/contentblock/treehash"
)

// Slice is a verified, authenticated byte window: the caller's guarantee
// that these bytes are exactly [id.Start, id.Start+id.Len) of the image
// rooted at id.Hash, and nothing else.
type Slice[T any] struct {
	window []byte
	id     cid.CID
}

// Decode verifies proof against id, returning a Slice[T] over the
// authenticated window on success. It rejects a CID of any version other
// than cid.CurrentVersion before attempting verification at all (spec.md
// §8 scenario 6: a future wire version must not be silently accepted).
func Decode[T any](id cid.CID, proof []byte) (Slice[T], error) {
	if id.Version != cid.CurrentVersion {
		return Slice[T]{}, fmt.Errorf("slice: unsupported cid version %d", id.Version)
	}
	window, err := treehash.VerifyStream(proof, id.Hash, id.Start, id.Len)
	if err != nil {
		return Slice[T]{}, fmt.Errorf("slice: decode %s: %w", id, err)
	}
	return Slice[T]{window: window, id: id}, nil
}

// DecodeWithConfig is Decode, additionally rejecting a proof larger than
// cfg.MaxProofSize before attempting to parse it at all — a cheap guard
// against a peer claiming an implausible leaf count to force wasted work.
func DecodeWithConfig[T any](id cid.CID, proof []byte, cfg blockcfg.Config) (Slice[T], error) {
	if len(proof) > cfg.MaxProofSize {
		return Slice[T]{}, fmt.Errorf("slice: proof of %d bytes exceeds configured maximum of %d", len(proof), cfg.MaxProofSize)
	}
	return Decode[T](id, proof)
}

// Cid returns the CID this slice was verified against.
func (s Slice[T]) Cid() cid.CID {
	return s.id
}

// Len returns the size, in bytes, of the verified window.
func (s Slice[T]) Len() int {
	return len(s.window)
}

// Deref reinterprets the verified window as a T. It fails with
// archive.ErrNotFixedLayout if T's archived layout contains a
// variable-length field: a narrow window, unlike a whole Block, has no
// tail to resolve such a field's payload from.
func (s Slice[T]) Deref() (archive.Archived[T], error) {
	return archive.ViewSlice[T](s.window)
}

// Select narrows s to the sub-field of T at span, using U's expected type,
// independent of whether callers prefer the typed Query façade or a
// Selectable implementation: both ultimately call cid.Select or
// cid.Slice, and this is the authenticated-data-in-hand equivalent for
// code that already holds a Slice and wants to recurse into one of its
// fields without a further network round trip, when that field's bytes
// are already inside the current window (i.e. it is not a descriptor to
// a variable-length field — see archive.Descriptor).
func Select[T, U any](s Slice[T], span archive.Span) (Slice[U], error) {
	start, end := span.Start, span.End
	if start < 0 || end > len(s.window) || start > end {
		return Slice[U]{}, fmt.Errorf("slice: span [%d..%d) outside window of %d bytes", start, end, len(s.window))
	}
	nextID, err := cid.Slice(s.id, span.Range())
	if err != nil {
		return Slice[U]{}, err
	}
	return Slice[U]{window: s.window[start:end], id: nextID}, nil
}
