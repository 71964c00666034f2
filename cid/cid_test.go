// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsEmpty(t *testing.T) {
	require.True(t, Default().IsEmpty())
	require.Equal(t, EmptyHash, Default().Hash)
	require.Equal(t, uint64(0), Default().Len)
}

func TestNewWholeBlock(t *testing.T) {
	var root [Size]byte
	root[0] = 0xAB
	c := New(root, 128)
	require.Equal(t, uint64(0), c.Start)
	require.Equal(t, uint64(128), c.Len)
	require.Equal(t, CurrentVersion, c.Version)
}

func TestSliceComposesOffsets(t *testing.T) {
	var root [Size]byte
	root[0] = 0x01
	whole := New(root, 100)

	outer, err := Slice(whole, Range{Start: 10, End: 30})
	require.NoError(t, err)
	require.Equal(t, uint64(10), outer.Start)
	require.Equal(t, uint64(20), outer.Len)

	inner, err := Slice(outer, Range{Start: 5, End: 15})
	require.NoError(t, err)
	require.Equal(t, uint64(15), inner.Start) // 10 + 5
	require.Equal(t, uint64(10), inner.Len)   // 15 - 5
	require.Equal(t, whole.Hash, inner.Hash)
}

func TestSliceAssociativity(t *testing.T) {
	// Selecting [5,15) then [2,8) within that must equal selecting the
	// single composed range [7,13) directly off the original.
	var root [Size]byte
	root[1] = 0x02
	whole := New(root, 100)

	a, err := Slice(whole, Range{Start: 5, End: 15})
	require.NoError(t, err)
	b, err := Slice(a, Range{Start: 2, End: 8})
	require.NoError(t, err)

	direct, err := Slice(whole, Range{Start: 7, End: 13})
	require.NoError(t, err)

	require.Equal(t, direct, b)
}

func TestSliceInvalidRange(t *testing.T) {
	whole := New([Size]byte{}, 100)
	_, err := Slice(whole, Range{Start: 20, End: 10})
	require.Error(t, err)
}

func TestSliceOverflow(t *testing.T) {
	whole := CID{Hash: [Size]byte{}, Start: ^uint64(0) - 1, Len: 10}
	_, err := Slice(whole, Range{Start: 5, End: 10})
	require.Error(t, err)
}

func TestMustSlicePanicsOnOverflow(t *testing.T) {
	whole := CID{Hash: [Size]byte{}, Start: ^uint64(0) - 1, Len: 10}
	require.Panics(t, func() {
		MustSlice(whole, Range{Start: 5, End: 10})
	})
}

func TestCompareOrdersByHashThenStartThenLen(t *testing.T) {
	low := CID{Hash: [Size]byte{0x01}, Start: 0, Len: 10}
	high := CID{Hash: [Size]byte{0x02}, Start: 0, Len: 10}
	require.Negative(t, low.Compare(high))
	require.Positive(t, high.Compare(low))
	require.Zero(t, low.Compare(low))

	earlier := CID{Hash: [Size]byte{0x01}, Start: 0, Len: 10}
	later := CID{Hash: [Size]byte{0x01}, Start: 5, Len: 10}
	require.Negative(t, earlier.Compare(later))

	shorter := CID{Hash: [Size]byte{0x01}, Start: 5, Len: 1}
	require.Negative(t, shorter.Compare(later))
}

func TestStringFormat(t *testing.T) {
	c := CID{Hash: [Size]byte{0xde, 0xad}, Start: 1, Len: 2}
	require.Contains(t, c.String(), "dead")
	require.Contains(t, c.String(), "[1..3]")
}

func TestEndOverflow(t *testing.T) {
	c := CID{Start: ^uint64(0), Len: 1}
	_, err := c.End()
	require.Error(t, err)
}
