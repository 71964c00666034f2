// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package treehash

import (
	"encoding/binary"
	"fmt"
)

// Proof wire format (all integers big-endian uint64):
//
//	TotalLen
//	Start
//	Len
//	NumLeaves
//	for each leaf index in [0, NumLeaves):
//	  marker byte: 1 = raw chunk follows, 0 = hash-only
//	  if raw:   chunkLen uint64, chunkLen bytes
//	  if hash:  32 bytes
//
// Every leaf outside [Start, Start+Len) is disclosed only as its hash, so
// a proof never leaks bytes the caller did not ask for; every leaf inside
// the range is disclosed as raw bytes, which the verifier re-hashes and
// checks against what Extract's in-range leaves would have to hash to for
// the reconstructed root to match — i.e. tampering with a disclosed chunk
// is caught by VerifyStream the same way tampering with a withheld leaf's
// claimed hash would be.

// Extract produces a proof for the sub-range [start, start+length) of the
// image outboard commits to. It returns ErrOversizedRange if the range
// does not fit within the committed image length.
func Extract(image, outboard []byte, start, length uint64) ([]byte, error) {
	total, hashes, err := decodeOutboard(outboard)
	if err != nil {
		return nil, err
	}
	if total != uint64(len(image)) {
		return nil, fmt.Errorf("%w: outboard commits to %d bytes, image has %d", ErrMalformed, total, len(image))
	}
	end, ok := addOK(start, length)
	if !ok || end > total {
		return nil, ErrOversizedRange
	}

	cStart, cEnd := chunkRange(start, end, total)

	buf := make([]byte, 0, 32+len(hashes)*8)
	buf = appendU64(buf, total)
	buf = appendU64(buf, start)
	buf = appendU64(buf, length)
	buf = appendU64(buf, uint64(len(hashes)))

	for i := range hashes {
		ci := uint64(i)
		if ci >= cStart && ci < cEnd {
			cs, ce := ci*ChunkSize, ci*ChunkSize+ChunkSize
			if ce > total {
				ce = total
			}
			chunk := image[cs:ce]
			buf = append(buf, 1)
			buf = appendU64(buf, uint64(len(chunk)))
			buf = append(buf, chunk...)
		} else {
			buf = append(buf, 0)
			buf = append(buf, hashes[i][:]...)
		}
	}
	return buf, nil
}

// VerifyStream checks a proof against an expected root and the caller's
// requested [start, start+length) range, returning exactly those bytes on
// success. It rejects a proof whose declared range does not match the
// requested one, whose root does not match, or whose structure is
// malformed or truncated.
func VerifyStream(proof []byte, root [32]byte, start, length uint64) ([]byte, error) {
	r := &reader{buf: proof}

	total, err := r.u64()
	if err != nil {
		return nil, err
	}
	pStart, err := r.u64()
	if err != nil {
		return nil, err
	}
	pLen, err := r.u64()
	if err != nil {
		return nil, err
	}
	if pStart != start || pLen != length {
		return nil, fmt.Errorf("%w: proof is for [%d..%d), requested [%d..%d)", ErrMalformed, pStart, pStart+pLen, start, start+length)
	}
	end, ok := addOK(start, length)
	if !ok || end > total {
		return nil, ErrOversizedRange
	}

	numLeaves, err := r.u64()
	if err != nil {
		return nil, err
	}
	if numLeaves != numChunks(total) {
		return nil, fmt.Errorf("%w: leaf count %d inconsistent with length %d", ErrMalformed, numLeaves, total)
	}
	// Every leaf takes at least its marker byte, so a leaf count larger than
	// the bytes left cannot be honest; reject it before allocating for it.
	if numLeaves > uint64(len(r.buf)-r.pos) {
		return nil, fmt.Errorf("%w: %d leaves claimed, %d proof bytes left", ErrTruncated, numLeaves, len(r.buf)-r.pos)
	}

	cStart, cEnd := chunkRange(start, end, total)

	hashes := make([][32]byte, numLeaves)
	var out []byte

	for i := uint64(0); i < numLeaves; i++ {
		marker, err := r.byte()
		if err != nil {
			return nil, err
		}
		switch marker {
		case 1:
			chunkLen, err := r.u64()
			if err != nil {
				return nil, err
			}
			chunk, err := r.bytes(int(chunkLen))
			if err != nil {
				return nil, err
			}
			hashes[i] = leafHash(chunk)
			if i >= cStart && i < cEnd {
				out = append(out, chunk...)
			}
		case 0:
			h, err := r.bytes(32)
			if err != nil {
				return nil, err
			}
			copy(hashes[i][:], h)
			if i >= cStart && i < cEnd {
				return nil, fmt.Errorf("%w: in-range leaf %d not disclosed", ErrMalformed, i)
			}
		default:
			return nil, fmt.Errorf("%w: leaf marker %d", ErrMalformed, marker)
		}
	}

	var computed [32]byte
	if total == 0 {
		computed = EmptyHash
	} else {
		computed = merge(hashes)
	}
	if computed != root {
		return nil, ErrAuthFailure
	}

	lo := start - cStart*ChunkSize
	hi := lo + length
	if hi > uint64(len(out)) || lo > hi {
		return nil, fmt.Errorf("%w: trim range outside disclosed chunks", ErrMalformed)
	}
	return out[lo:hi], nil
}

func chunkRange(start, end, total uint64) (cStart, cEnd uint64) {
	cStart = start / ChunkSize
	if end == start {
		return cStart, cStart
	}
	cEnd = (end + ChunkSize - 1) / ChunkSize
	if cEnd > numChunks(total) {
		cEnd = numChunks(total)
	}
	return cStart, cEnd
}

func addOK(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

func appendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.buf)-r.pos {
		return nil, ErrTruncated
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}
