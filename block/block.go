// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block is the trusted, whole-image side of the system: a holder
// that has the complete archived bytes of a value in hand, can produce its
// CID, and can produce authenticated proofs for any sub-range of it for a
// remote party (package slice) to verify without ever holding the whole
// image itself.
package block

import (
	"fmt"

	"github.com/luxfi/contentblock/archive"
	"github.com/luxfi/contentblock/blockcfg"
	"github.com/luxfi/contentblock/cid"
	"github.com/luxfi/contentblock/treehash"
)

// Block is a content-addressed, locally complete archived image of a T.
type Block[T any] struct {
	image    []byte
	outboard []byte
	id       cid.CID
}

// New wraps an already-archived image, computing its tree-hash outboard
// and whole-block CID. Most callers want Encode instead; New is for
// reconstructing a Block from bytes received over some other channel that
// are already known to be a valid archived T.
func New[T any](image []byte) (Block[T], error) {
	root, outboard, err := treehash.Outboard(image)
	if err != nil {
		return Block[T]{}, err
	}
	return Block[T]{
		image:    image,
		outboard: outboard,
		id:       cid.New(root, uint64(len(image))),
	}, nil
}

// Encode archives value into a fresh Block[T]. scratch is a caller-owned
// buffer sized generously enough to hold the archived image; Encode trims
// it to the bytes actually written.
func Encode[T any](value T, scratch []byte) (Block[T], error) {
	n, err := archive.Archive(scratch, value)
	if err != nil {
		return Block[T]{}, fmt.Errorf("block: encode: %w", err)
	}
	return New[T](scratch[:n])
}

// EncodeWithConfig is Encode with the scratch buffer sized from cfg
// instead of supplied by the caller.
func EncodeWithConfig[T any](value T, cfg blockcfg.Config) (Block[T], error) {
	return Encode[T](value, make([]byte, cfg.ScratchSize))
}

// Cid returns the block's whole-image content identifier.
func (b Block[T]) Cid() cid.CID {
	return b.id
}

// Len returns the size, in bytes, of the archived image.
func (b Block[T]) Len() int {
	return len(b.image)
}

// Extract produces an authenticated proof for the sub-range [start,
// start+len) of the archived image, for a remote Slice.Decode call to
// verify against b.Cid() sliced the same way.
func (b Block[T]) Extract(start, length uint64) ([]byte, error) {
	proof, err := treehash.Extract(b.image, b.outboard, start, length)
	if err != nil {
		return nil, fmt.Errorf("block: extract: %w", err)
	}
	return proof, nil
}

// Deref reinterprets the complete archived image as a T without copying
// it, beyond what decoding variable-length fields requires.
func (b Block[T]) Deref() (archive.Archived[T], error) {
	return archive.ViewFull[T](b.image)
}

// Query returns a typed selector over this block's whole-image CID.
func (b Block[T]) Query() cid.Query[T] {
	return cid.NewQuery[T](b.id)
}
