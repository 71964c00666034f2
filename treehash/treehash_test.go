// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package treehash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyHashConstant(t *testing.T) {
	require.Equal(t, EmptyHash, Root(nil))
	require.Equal(t, EmptyHash, Root([]byte{}))
}

func TestRootStableForSameImage(t *testing.T) {
	image := make([]byte, 5*ChunkSize+37)
	for i := range image {
		image[i] = byte(i)
	}
	require.Equal(t, Root(image), Root(image))
}

func TestRootChangesWithContent(t *testing.T) {
	a := bytes.Repeat([]byte{0x01}, ChunkSize*3)
	b := bytes.Repeat([]byte{0x01}, ChunkSize*3)
	b[ChunkSize+5] ^= 0xFF
	require.NotEqual(t, Root(a), Root(b))
}

func TestExtractAndVerifyRoundTrip(t *testing.T) {
	image := make([]byte, 10*ChunkSize+123)
	for i := range image {
		image[i] = byte(i * 7)
	}
	root, outboard, err := Outboard(image)
	require.NoError(t, err)

	start, length := uint64(ChunkSize+10), uint64(2*ChunkSize+50)
	proof, err := Extract(image, outboard, start, length)
	require.NoError(t, err)

	got, err := VerifyStream(proof, root, start, length)
	require.NoError(t, err)
	require.Equal(t, image[start:start+length], got)
}

func TestExtractEmptyRange(t *testing.T) {
	image := make([]byte, 4*ChunkSize)
	root, outboard, err := Outboard(image)
	require.NoError(t, err)

	proof, err := Extract(image, outboard, 0, 0)
	require.NoError(t, err)
	got, err := VerifyStream(proof, root, 0, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestExtractWholeEmptyImage(t *testing.T) {
	root, outboard, err := Outboard(nil)
	require.NoError(t, err)
	require.Equal(t, EmptyHash, root)

	proof, err := Extract(nil, outboard, 0, 0)
	require.NoError(t, err)
	got, err := VerifyStream(proof, root, 0, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestExtractOversizedRangeRejected(t *testing.T) {
	image := make([]byte, ChunkSize)
	_, outboard, err := Outboard(image)
	require.NoError(t, err)
	_, err = Extract(image, outboard, 0, ChunkSize+1)
	require.ErrorIs(t, err, ErrOversizedRange)
}

func TestVerifyRejectsTamperedChunk(t *testing.T) {
	image := make([]byte, 6*ChunkSize)
	for i := range image {
		image[i] = byte(i)
	}
	root, outboard, err := Outboard(image)
	require.NoError(t, err)

	start, length := uint64(0), uint64(ChunkSize)
	proof, err := Extract(image, outboard, start, length)
	require.NoError(t, err)

	tampered := make([]byte, len(proof))
	copy(tampered, proof)
	tampered[100] ^= 0xFF // corrupt a byte within the disclosed chunk payload

	_, err = VerifyStream(tampered, root, start, length)
	require.ErrorIs(t, err, ErrAuthFailure)
}

func TestVerifyRejectsWrongRoot(t *testing.T) {
	image := make([]byte, 3*ChunkSize)
	_, outboard, err := Outboard(image)
	require.NoError(t, err)
	proof, err := Extract(image, outboard, 0, ChunkSize)
	require.NoError(t, err)

	var wrongRoot [32]byte
	wrongRoot[0] = 0xFF
	_, err = VerifyStream(proof, wrongRoot, 0, ChunkSize)
	require.ErrorIs(t, err, ErrAuthFailure)
}

func TestVerifyRejectsMismatchedRequestedRange(t *testing.T) {
	image := make([]byte, 3*ChunkSize)
	root, outboard, err := Outboard(image)
	require.NoError(t, err)
	proof, err := Extract(image, outboard, 0, ChunkSize)
	require.NoError(t, err)

	_, err = VerifyStream(proof, root, 10, ChunkSize)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyRejectsTruncatedProof(t *testing.T) {
	image := make([]byte, 3*ChunkSize)
	root, outboard, err := Outboard(image)
	require.NoError(t, err)
	proof, err := Extract(image, outboard, 0, ChunkSize)
	require.NoError(t, err)

	_, err = VerifyStream(proof[:len(proof)-5], root, 0, ChunkSize)
	require.Error(t, err)
}

func TestProofDoesNotDiscloseOutOfRangeChunks(t *testing.T) {
	// Each chunk is filled with its own byte value, so no chunk's bytes
	// repeat those of the disclosed chunk 0.
	image := make([]byte, 4*ChunkSize)
	for i := range image {
		image[i] = byte(i / ChunkSize)
	}
	_, outboard, err := Outboard(image)
	require.NoError(t, err)

	proof, err := Extract(image, outboard, 0, ChunkSize)
	require.NoError(t, err)

	// The other three chunks' raw bytes must not appear verbatim in the
	// proof; only their leaf hashes should.
	require.False(t, bytes.Contains(proof, image[ChunkSize:2*ChunkSize]))
}
