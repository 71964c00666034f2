// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package treehash is the Tree Hasher collaborator spec.md §6 treats as an
// external primitive: it commits a byte image to a single Merkle root and
// later produces, and verifies, an authenticated proof for an arbitrary
// sub-range of that image without disclosing the rest of it.
//
// The shape is the one bao (the Rust source's streaming BLAKE3 verified
// encoding) popularised: fixed-size chunks, a binary tree over chunk
// hashes built by repeated left-biased bisection, and domain-separated
// leaf/parent hashing so a leaf's hash can never collide with a parent's.
// It is grounded on github.com/zeebo/blake3, already an indirect
// dependency of the teacher's own go.mod, used here as a keyless hash
// rather than through its tree-mode API: the domain separation and the
// slice-proof framing are this package's own, not a reimplementation of
// BLAKE3's native tree mode, since this package does not need wire
// compatibility with any other bao implementation, only internal
// consistency and the one external invariant spec.md fixes: the hash of
// the empty image is the well known BLAKE3 hash of the empty string.
package treehash

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// ChunkSize is the size, in bytes, of a leaf of the hash tree. The final
// chunk of an image may be shorter.
const ChunkSize = 1024

const (
	tagLeaf   byte = 0x00
	tagParent byte = 0x01
)

// EmptyHash is the fixed tree-hash of the zero-length image. Package cid
// defines the identical constant for use in CID values; the two are
// checked against each other by block_test.go (an empty Block's CID must
// equal cid.Default()) rather than imported from one another, keeping this
// package free of any dependency on cid.
var EmptyHash = [32]byte{
	0xaf, 0x13, 0x49, 0xb9, 0xf5, 0xf9, 0xa1, 0xa6,
	0xa0, 0x40, 0x4d, 0xea, 0x36, 0xdc, 0xc9, 0x49,
	0x9b, 0xcb, 0x25, 0xc9, 0xad, 0xc1, 0x12, 0xb7,
	0xcc, 0x9a, 0x93, 0xca, 0xe4, 0x1f, 0x32, 0x62,
}

func init() {
	if got := blake3.Sum256(nil); got != EmptyHash {
		panic("treehash: EmptyHash does not match the BLAKE3 hash of the empty string")
	}
}

func leafHash(chunk []byte) [32]byte {
	h := blake3.New()
	h.Write([]byte{tagLeaf})
	h.Write(chunk)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func parentHash(left, right [32]byte) [32]byte {
	h := blake3.New()
	h.Write([]byte{tagParent})
	h.Write(left[:])
	h.Write(right[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// numChunks returns how many ChunkSize leaves an image of the given
// length splits into. A zero-length image has zero chunks.
func numChunks(length uint64) uint64 {
	if length == 0 {
		return 0
	}
	return (length + ChunkSize - 1) / ChunkSize
}

// largestPowerOfTwoBelow returns the largest power of two strictly less
// than n, for n > 1. This is bao's bisection rule: the left subtree is
// always a full power-of-two run of chunks.
func largestPowerOfTwoBelow(n uint64) uint64 {
	p := uint64(1)
	for p*2 < n {
		p *= 2
	}
	return p
}

// merge folds a slice of leaf hashes into a single root, recursively
// bisecting at the largest power-of-two split.
func merge(hashes [][32]byte) [32]byte {
	if len(hashes) == 1 {
		return hashes[0]
	}
	split := largestPowerOfTwoBelow(uint64(len(hashes)))
	left := merge(hashes[:split])
	right := merge(hashes[split:])
	return parentHash(left, right)
}

func leafHashesOf(image []byte) [][32]byte {
	n := numChunks(uint64(len(image)))
	hashes := make([][32]byte, n)
	for i := uint64(0); i < n; i++ {
		start := i * ChunkSize
		end := start + ChunkSize
		if end > uint64(len(image)) {
			end = uint64(len(image))
		}
		hashes[i] = leafHash(image[start:end])
	}
	return hashes
}

// Root computes the tree-hash of image without producing an outboard.
func Root(image []byte) [32]byte {
	if len(image) == 0 {
		return EmptyHash
	}
	return merge(leafHashesOf(image))
}

// Outboard commits image to a root hash and returns an outboard encoding
// — the per-leaf hashes needed to later produce a slice proof without
// rehashing the whole image. The outboard is not itself authenticated; it
// is trusted local side information, generated and kept alongside image
// by whoever holds the complete block.
func Outboard(image []byte) (root [32]byte, outboard []byte, err error) {
	if len(image) == 0 {
		return EmptyHash, encodeOutboard(0, nil), nil
	}
	hashes := leafHashesOf(image)
	return merge(hashes), encodeOutboard(uint64(len(image)), hashes), nil
}

func encodeOutboard(length uint64, hashes [][32]byte) []byte {
	buf := make([]byte, 8+len(hashes)*32)
	binary.BigEndian.PutUint64(buf[0:8], length)
	for i, h := range hashes {
		copy(buf[8+i*32:8+(i+1)*32], h[:])
	}
	return buf
}

func decodeOutboard(outboard []byte) (length uint64, hashes [][32]byte, err error) {
	if len(outboard) < 8 {
		return 0, nil, fmt.Errorf("%w: outboard header", ErrTruncated)
	}
	length = binary.BigEndian.Uint64(outboard[0:8])
	rest := outboard[8:]
	if len(rest)%32 != 0 {
		return 0, nil, fmt.Errorf("%w: outboard body", ErrMalformed)
	}
	n := len(rest) / 32
	hashes = make([][32]byte, n)
	for i := 0; i < n; i++ {
		copy(hashes[i][:], rest[i*32:(i+1)*32])
	}
	return length, hashes, nil
}
