// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package archive

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// Archived is a verified byte window paired with the layout needed to
// decode it on demand. It is the analogue of the Rust source's
// archived_value::<T>, but where that function reinterprets memory in
// place via an unsafe pointer cast, Value here performs an explicit
// reflect-based decode of the (already narrow, already verified) window —
// the idiomatic trade in a language without a stable, inspectable struct
// ABI. Either way the guarantee spec.md §5 asks for holds: decoding never
// touches bytes outside the window, so it never forces materialising or
// re-hashing the rest of the block.
type Archived[T any] struct {
	buf    []byte
	layout *Layout
}

// ViewFull wraps a complete archived image of T. Because the full image is
// available, variable-length fields can always be resolved by reading
// their descriptor's (offset, length) directly out of image — so T need
// not be FixedLayout. Used by Block.Deref.
func ViewFull[T any](image []byte) (Archived[T], error) {
	layout, err := LayoutOf[T]()
	if err != nil {
		return Archived[T]{}, err
	}
	if layout.Kind != KindRaw && len(image) < layout.Size {
		return Archived[T]{}, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, layout.Size, len(image))
	}
	return Archived[T]{buf: image, layout: layout}, nil
}

// ViewSlice wraps a narrow, independently verified window — one that may
// not be contiguous with the rest of its block's image. Since there is no
// way to resolve a variable-length field's tail payload from a window that
// does not contain the rest of the block, ViewSlice refuses any structured
// T whose layout is not FixedLayout. A raw T (string, []byte, Bytes) is
// accepted: the whole window is its payload. Used by Slice.Deref.
func ViewSlice[T any](window []byte) (Archived[T], error) {
	layout, err := LayoutOf[T]()
	if err != nil {
		return Archived[T]{}, err
	}
	if layout.Kind != KindRaw && !layout.FixedLayout {
		return Archived[T]{}, ErrNotFixedLayout
	}
	if layout.Kind != KindRaw && len(window) < layout.Size {
		return Archived[T]{}, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, layout.Size, len(window))
	}
	return Archived[T]{buf: window, layout: layout}, nil
}

// Value decodes the archived window into a T.
func (a Archived[T]) Value() (T, error) {
	var zero T
	if a.layout == nil {
		return zero, fmt.Errorf("%w: empty view", ErrShortBuffer)
	}

	out := reflect.New(a.layout.Type).Elem()

	switch a.layout.Kind {
	case KindRaw:
		v, err := decodeRaw(a.layout.Type, a.buf)
		if err != nil {
			return zero, err
		}
		return v.Interface().(T), nil

	case KindStruct:
		if err := readValue(out, a.layout, a.buf, 0); err != nil {
			return zero, err
		}

	case KindArray:
		if len(a.buf) < a.layout.Size {
			return zero, fmt.Errorf("%w: array of %d bytes", ErrShortBuffer, a.layout.Size)
		}
		reflect.Copy(out, reflect.ValueOf(a.buf[:a.layout.Size]))

	default: // a bare scalar at the top level
		if len(a.buf) < a.layout.Size {
			return zero, fmt.Errorf("%w: scalar of %d bytes", ErrShortBuffer, a.layout.Size)
		}
		if err := readScalar(out, a.layout.Kind, a.buf[:a.layout.Size]); err != nil {
			return zero, err
		}
	}
	return out.Interface().(T), nil
}

func decodeRaw(t reflect.Type, data []byte) (reflect.Value, error) {
	if t.Kind() == reflect.String {
		return reflect.ValueOf(string(data)).Convert(t), nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return reflect.ValueOf(cp).Convert(t), nil
}

// readValue decodes layout's head (and, for variable-length fields, the
// tail it references) from buf, where buf is the full image the head's
// descriptors are relative to, and base is layout's head offset in buf.
func readValue(out reflect.Value, layout *Layout, buf []byte, base int) error {
	for _, f := range layout.Fields {
		fv := out.Field(f.Index)
		start, end := base+f.Span.Start, base+f.Span.End

		switch f.Kind {
		case KindBytes:
			if end > len(buf) {
				return fmt.Errorf("%w: descriptor at %d..%d", ErrShortBuffer, start, end)
			}
			off := binary.BigEndian.Uint64(buf[start : start+8])
			length := binary.BigEndian.Uint64(buf[start+8 : start+16])
			payloadEnd := off + length
			if payloadEnd < off || payloadEnd > uint64(len(buf)) {
				return fmt.Errorf("%w: tail [%d..%d) exceeds image of %d bytes", ErrMalformed, off, payloadEnd, len(buf))
			}
			data := buf[off:payloadEnd]
			if fv.Kind() == reflect.String {
				fv.SetString(string(data))
			} else {
				cp := make([]byte, len(data))
				copy(cp, data)
				fv.SetBytes(cp)
			}

		case KindArray:
			if end > len(buf) {
				return fmt.Errorf("%w: array at %d..%d", ErrShortBuffer, start, end)
			}
			reflect.Copy(fv, reflect.ValueOf(buf[start:end]))

		case KindStruct:
			if err := readValue(fv, f.Sub, buf, start); err != nil {
				return err
			}

		default:
			if end > len(buf) {
				return fmt.Errorf("%w: scalar at %d..%d", ErrShortBuffer, start, end)
			}
			if err := readScalar(fv, f.Kind, buf[start:end]); err != nil {
				return err
			}
		}
	}
	return nil
}

func readScalar(fv reflect.Value, kind Kind, src []byte) error {
	switch kind {
	case KindBool:
		fv.SetBool(src[0] != 0)
	case KindUint8:
		fv.SetUint(uint64(src[0]))
	case KindInt8:
		fv.SetInt(int64(int8(src[0])))
	case KindUint16:
		fv.SetUint(uint64(binary.BigEndian.Uint16(src)))
	case KindInt16:
		fv.SetInt(int64(int16(binary.BigEndian.Uint16(src))))
	case KindUint32:
		fv.SetUint(uint64(binary.BigEndian.Uint32(src)))
	case KindInt32:
		fv.SetInt(int64(int32(binary.BigEndian.Uint32(src))))
	case KindFloat32:
		fv.SetFloat(float64(math.Float32frombits(binary.BigEndian.Uint32(src))))
	case KindUint64:
		fv.SetUint(binary.BigEndian.Uint64(src))
	case KindInt64:
		fv.SetInt(int64(binary.BigEndian.Uint64(src)))
	case KindFloat64:
		fv.SetFloat(math.Float64frombits(binary.BigEndian.Uint64(src)))
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedType, kind)
	}
	return nil
}
