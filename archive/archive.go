// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package archive

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// Archive writes the archived image of v into buf, returning the number of
// bytes written. buf must be at least as large as the final image; callers
// that do not know the size in advance can probe with a generous scratch
// buffer, as block.Encode does.
//
// The image layout is: a fixed-size head (T's Layout.Size bytes, empty for
// a KindRaw T) followed by a tail holding the payload bytes of every
// variable-length field in field order. This mirrors the head/tail split
// rkyv produces, without rkyv's unsafe pointer casts: every read back out
// goes through view.go's explicit decode instead.
func Archive[T any](buf []byte, v T) (int, error) {
	layout, err := LayoutOf[T]()
	if err != nil {
		return 0, err
	}

	if layout.Kind == KindRaw {
		data := rawBytes(reflect.ValueOf(v))
		if len(buf) < len(data) {
			return 0, fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, len(data), len(buf))
		}
		copy(buf, data)
		return len(data), nil
	}

	if layout.Kind != KindStruct {
		// A bare scalar or byte array: the head is the whole image.
		if len(buf) < layout.Size {
			return 0, fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, layout.Size, len(buf))
		}
		dst := buf[:layout.Size]
		if layout.Kind == KindArray {
			reflect.Copy(reflect.ValueOf(dst), reflect.ValueOf(v))
		} else if err := writeScalar(dst, layout.Kind, reflect.ValueOf(v)); err != nil {
			return 0, err
		}
		return layout.Size, nil
	}

	w := &writer{buf: buf, tail: layout.Size}
	if err := w.writeValue(reflect.ValueOf(v), layout, 0); err != nil {
		return 0, err
	}
	return w.tail, nil
}

// writer accumulates a head/tail image in a caller-owned buffer. tail is
// the next free offset for variable-length payload data; it only ever
// grows, so field order in a struct determines tail layout order.
type writer struct {
	buf  []byte
	tail int
}

func (w *writer) reserveTail(n int) (int, error) {
	start := w.tail
	end := start + n
	if end > len(w.buf) {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, end, len(w.buf))
	}
	w.tail = end
	return start, nil
}

func (w *writer) span(base int, span Span, n int) ([]byte, error) {
	start, end := base+span.Start, base+span.Start+n
	if end > len(w.buf) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, end, len(w.buf))
	}
	return w.buf[start:end], nil
}

// writeValue writes rv (of the given struct layout) with its head starting
// at absolute offset base within w.buf, appending any variable-length
// payloads to the shared tail.
func (w *writer) writeValue(rv reflect.Value, layout *Layout, base int) error {
	if base+layout.Size > len(w.buf) {
		return fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, base+layout.Size, len(w.buf))
	}

	for _, f := range layout.Fields {
		fv := rv.Field(f.Index)

		switch f.Kind {
		case KindBytes:
			data := rawBytes(fv)
			off, err := w.reserveTail(len(data))
			if err != nil {
				return err
			}
			copy(w.buf[off:off+len(data)], data)
			dst, err := w.span(base, f.Span, descriptorSize)
			if err != nil {
				return err
			}
			binary.BigEndian.PutUint64(dst[0:8], uint64(off))
			binary.BigEndian.PutUint64(dst[8:16], uint64(len(data)))

		case KindArray:
			dst, err := w.span(base, f.Span, f.Sub.Size)
			if err != nil {
				return err
			}
			reflect.Copy(reflect.ValueOf(dst), fv)

		case KindStruct:
			if err := w.writeValue(fv, f.Sub, base+f.Span.Start); err != nil {
				return err
			}

		default:
			dst, err := w.span(base, f.Span, f.Span.End-f.Span.Start)
			if err != nil {
				return err
			}
			if err := writeScalar(dst, f.Kind, fv); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeScalar(dst []byte, kind Kind, fv reflect.Value) error {
	switch kind {
	case KindBool:
		if fv.Bool() {
			dst[0] = 1
		} else {
			dst[0] = 0
		}
	case KindUint8:
		dst[0] = byte(fv.Uint())
	case KindInt8:
		dst[0] = byte(fv.Int())
	case KindUint16:
		binary.BigEndian.PutUint16(dst, uint16(fv.Uint()))
	case KindInt16:
		binary.BigEndian.PutUint16(dst, uint16(fv.Int()))
	case KindUint32:
		binary.BigEndian.PutUint32(dst, uint32(fv.Uint()))
	case KindInt32:
		binary.BigEndian.PutUint32(dst, uint32(fv.Int()))
	case KindFloat32:
		binary.BigEndian.PutUint32(dst, math.Float32bits(float32(fv.Float())))
	case KindUint64:
		binary.BigEndian.PutUint64(dst, fv.Uint())
	case KindInt64:
		binary.BigEndian.PutUint64(dst, uint64(fv.Int()))
	case KindFloat64:
		binary.BigEndian.PutUint64(dst, math.Float64bits(fv.Float()))
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedType, kind)
	}
	return nil
}

func rawBytes(fv reflect.Value) []byte {
	if fv.Kind() == reflect.String {
		return []byte(fv.String())
	}
	return fv.Bytes()
}
