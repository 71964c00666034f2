// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package archive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type innerFixed struct {
	Prefix bool
	Number uint32
}

type outerMixed struct {
	Boolean bool
	Nested  innerFixed
	Text    string
}

type allFixed struct {
	A uint8
	B int16
	C uint32
	D int64
	E float32
	F float64
	G [4]byte
}

func TestLayoutFixedAllScalars(t *testing.T) {
	layout, err := LayoutOf[allFixed]()
	require.NoError(t, err)
	require.True(t, layout.FixedLayout)
	require.Equal(t, 1+2+4+8+4+8+4, layout.Size)
}

func TestLayoutNotFixedWithStringField(t *testing.T) {
	layout, err := LayoutOf[outerMixed]()
	require.NoError(t, err)
	require.False(t, layout.FixedLayout)
}

func TestArchiveRoundTripFixed(t *testing.T) {
	v := allFixed{A: 7, B: -3, C: 99, D: -123456, E: 1.5, F: 2.25, G: [4]byte{1, 2, 3, 4}}
	buf := make([]byte, 64)
	n, err := Archive(buf, v)
	require.NoError(t, err)

	view, err := ViewFull[allFixed](buf[:n])
	require.NoError(t, err)
	got, err := view.Value()
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestArchiveRoundTripVariableLength(t *testing.T) {
	v := outerMixed{
		Boolean: true,
		Nested:  innerFixed{Prefix: true, Number: 42},
		Text:    "hello world",
	}
	buf := make([]byte, 128)
	n, err := Archive(buf, v)
	require.NoError(t, err)

	view, err := ViewFull[outerMixed](buf[:n])
	require.NoError(t, err)
	got, err := view.Value()
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestArchiveBufferTooSmall(t *testing.T) {
	v := outerMixed{Text: "this will not fit"}
	buf := make([]byte, 2)
	_, err := Archive(buf, v)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestViewSliceRejectsNonFixedLayout(t *testing.T) {
	_, err := ViewSlice[outerMixed](make([]byte, 64))
	require.ErrorIs(t, err, ErrNotFixedLayout)
}

func TestViewSliceAcceptsFixedLayout(t *testing.T) {
	v := innerFixed{Prefix: true, Number: 7}
	buf := make([]byte, 16)
	n, err := Archive(buf, v)
	require.NoError(t, err)

	view, err := ViewSlice[innerFixed](buf[:n])
	require.NoError(t, err)
	got, err := view.Value()
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestSpanOfIsPositionStableAcrossValues(t *testing.T) {
	s1, err := SpanOf[innerFixed]("Number")
	require.NoError(t, err)
	require.Equal(t, 1, int(s1.Start))
	require.Equal(t, 5, int(s1.End))

	a := innerFixed{Prefix: false, Number: 1}
	b := innerFixed{Prefix: true, Number: 999999}
	bufA := make([]byte, 16)
	bufB := make([]byte, 16)
	nA, err := Archive(bufA, a)
	require.NoError(t, err)
	nB, err := Archive(bufB, b)
	require.NoError(t, err)

	// The same field, at the same span, regardless of either value: only
	// the bytes within the span differ, not the span itself.
	windowA := bufA[:nA][s1.Start:s1.End]
	windowB := bufB[:nB][s1.Start:s1.End]
	require.NotEqual(t, windowA, windowB)

	viewA, err := ViewSlice[uint32](windowA)
	require.NoError(t, err)
	gotA, err := viewA.Value()
	require.NoError(t, err)
	require.Equal(t, uint32(1), gotA)

	viewB, err := ViewSlice[uint32](windowB)
	require.NoError(t, err)
	gotB, err := viewB.Value()
	require.NoError(t, err)
	require.Equal(t, uint32(999999), gotB)
}

func TestFieldSpanUnknownField(t *testing.T) {
	_, err := SpanOf[innerFixed]("Missing")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestRawStringLeaf(t *testing.T) {
	buf := make([]byte, 16)
	n, err := Archive(buf, "abc")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	view, err := ViewFull[string](buf[:n])
	require.NoError(t, err)
	got, err := view.Value()
	require.NoError(t, err)
	require.Equal(t, "abc", got)
}

func TestMalformedDescriptorRejected(t *testing.T) {
	type withText struct {
		Text string
	}
	data := withText{Text: "hi"}
	buf := make([]byte, 32)
	n, err := Archive(buf, data)
	require.NoError(t, err)

	// Corrupt the descriptor's length so it claims more bytes than exist.
	corrupted := make([]byte, n)
	copy(corrupted, buf[:n])
	for i := 8; i < 16; i++ {
		corrupted[i] = 0xFF
	}

	view, err := ViewFull[withText](corrupted)
	require.NoError(t, err)
	_, err = view.Value()
	require.ErrorIs(t, err, ErrMalformed)
}
