// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package blockcfg collects the small set of tunables around encoding and
// proof production, using the same fluent sticky-error Builder shape the
// teacher repo's own config package uses for its (much larger) parameter
// set.
package blockcfg

import "fmt"

// Config holds the tunables block.Encode and slice.Decode callers may want
// to override away from the defaults.
type Config struct {
	// ScratchSize is the size of the buffer block.Encode allocates to
	// archive a value into before trimming to the bytes actually written.
	ScratchSize int

	// MaxProofSize caps the size of a proof slice.Decode will attempt to
	// parse, as a defence against a malicious peer claiming an enormous
	// leaf count in a proof header before any of it is verified.
	MaxProofSize int
}

// DefaultConfig is the configuration used when callers do not supply one.
var DefaultConfig = Config{
	ScratchSize:  64 * 1024,
	MaxProofSize: 16 * 1024 * 1024,
}

// Builder fluently constructs a Config, same sticky-error shape as the
// teacher's config.Builder: any error from an intermediate With call is
// remembered and returned by Build, so call sites can chain without
// checking after every step.
type Builder struct {
	config Config
	err    error
}

// NewBuilder returns a Builder seeded with DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig}
}

// WithScratchSize overrides the encode scratch buffer size.
func (b *Builder) WithScratchSize(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		b.err = fmt.Errorf("blockcfg: scratch size must be positive, got %d", n)
		return b
	}
	b.config.ScratchSize = n
	return b
}

// WithMaxProofSize overrides the maximum accepted proof size.
func (b *Builder) WithMaxProofSize(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		b.err = fmt.Errorf("blockcfg: max proof size must be positive, got %d", n)
		return b
	}
	b.config.MaxProofSize = n
	return b
}

// Build returns the constructed Config, or the first error any With call
// recorded.
func (b *Builder) Build() (Config, error) {
	if b.err != nil {
		return Config{}, b.err
	}
	return b.config, nil
}
