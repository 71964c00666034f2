// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package math is the overflow-checked arithmetic the cid package composes
// CID ranges with. Narrowed from the teacher's own utils/math package down
// to the one operation actually called: package cid only ever needs checked
// addition (cid.Slice's one subtraction, End-Start, comes after its own
// End >= Start check), so the rest of the teacher's helpers were trimmed
// rather than carried as dead weight.
package math

import (
	"errors"
	"math"
)

// ErrOverflow is returned when an arithmetic operation would wrap past
// math.MaxUint64.
var ErrOverflow = errors.New("overflow")

// Add64 returns a + b with overflow detection.
func Add64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}
