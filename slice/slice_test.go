// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package slice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/contentblock/archive"
	"github.com/luxfi/contentblock/block"
	"github.com/luxfi/contentblock/blockcfg"
)

type pair struct {
	A uint32
	B uint32
}

func TestDecodeThenSelectSubField(t *testing.T) {
	v := pair{A: 1, B: 2}
	b, err := block.Encode[pair](v, make([]byte, 64))
	require.NoError(t, err)

	proof, err := b.Extract(0, uint64(b.Len()))
	require.NoError(t, err)
	whole, err := Decode[pair](b.Cid(), proof)
	require.NoError(t, err)

	bSpan, err := archive.SpanOf[pair]("B")
	require.NoError(t, err)
	span := archive.Span{Start: int(bSpan.Start), End: int(bSpan.End)}

	bField, err := Select[pair, uint32](whole, span)
	require.NoError(t, err)

	view, err := bField.Deref()
	require.NoError(t, err)
	got, err := view.Value()
	require.NoError(t, err)
	require.Equal(t, uint32(2), got)
}

func TestSelectRejectsOutOfBoundsSpan(t *testing.T) {
	v := pair{A: 1, B: 2}
	b, err := block.Encode[pair](v, make([]byte, 64))
	require.NoError(t, err)
	proof, err := b.Extract(0, uint64(b.Len()))
	require.NoError(t, err)
	whole, err := Decode[pair](b.Cid(), proof)
	require.NoError(t, err)

	_, err = Select[pair, uint32](whole, archive.Span{Start: 0, End: 1000})
	require.Error(t, err)
}

func TestDecodeWithConfigRejectsOversizedProof(t *testing.T) {
	v := pair{A: 1, B: 2}
	b, err := block.Encode[pair](v, make([]byte, 64))
	require.NoError(t, err)
	proof, err := b.Extract(0, uint64(b.Len()))
	require.NoError(t, err)

	cfg := blockcfg.DefaultConfig
	cfg.MaxProofSize = 1
	_, err = DecodeWithConfig[pair](b.Cid(), proof, cfg)
	require.Error(t, err)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	v := pair{A: 1, B: 2}
	b, err := block.Encode[pair](v, make([]byte, 64))
	require.NoError(t, err)
	proof, err := b.Extract(0, uint64(b.Len()))
	require.NoError(t, err)

	id := b.Cid()
	id.Version = 9
	_, err = Decode[pair](id, proof)
	require.Error(t, err)
}
