// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cid

// Query is the typed selector façade (spec.md §4.1). It pairs a CID with a
// static type tag T so that callers cannot compose selector spans of one
// type onto a CID that is meant to address another. T carries no runtime
// footprint: it is a phantom type parameter, the Go equivalent of the
// Rust source's PhantomData<T>.
type Query[T any] struct {
	cid CID
}

// NewQuery wraps an existing CID as a Query of type T. Callers assert that
// the bytes cid addresses do, in fact, archive a T; NewQuery itself does
// not and cannot check this.
func NewQuery[T any](c CID) Query[T] {
	return Query[T]{cid: c}
}

// CID returns the underlying CID.
func (q Query[T]) CID() CID {
	return q.cid
}

// Select narrows q to a statically-known byte span within T's archived
// layout, producing a Query of the span's declared type U. Callers obtain
// span from the archive package's layout computation for T, never by hand.
//
// Select can only fail the way Slice can: a reversed span, or u64
// overflow composing the new range. It never validates the span against T's actual layout size —
// that is the archive package's job when the span is computed, not this
// package's job when it is applied.
func Select[T, U any](q Query[T], span Range) (Query[U], error) {
	next, err := Slice(q.cid, span)
	if err != nil {
		return Query[U]{}, err
	}
	return Query[U]{cid: next}, nil
}
