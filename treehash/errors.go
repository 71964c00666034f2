// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package treehash

import "errors"

var (
	// ErrAuthFailure is returned by VerifyStream when the root recomputed
	// from a proof does not match the expected root.
	ErrAuthFailure = errors.New("treehash: authentication failure")

	// ErrTruncated is returned when a proof ends before its header says it
	// should.
	ErrTruncated = errors.New("treehash: truncated proof")

	// ErrMalformed is returned when a proof's structure cannot be parsed,
	// or its declared range does not match the range the caller asked to
	// verify.
	ErrMalformed = errors.New("treehash: malformed proof")

	// ErrOversizedRange is returned when the requested [start, start+len)
	// range exceeds the image length a proof or outboard commits to.
	ErrOversizedRange = errors.New("treehash: range exceeds image length")
)
