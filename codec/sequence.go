package codec

import (
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/wire"
)

// WriteSequence appends items using the known-length iterator framing:
// var_i32(len(items)) followed by each element in order (§4.C).
func WriteSequence[T any](w *wire.Writer, items []T, encode func(w *wire.Writer, v T)) error {
	if len(items) > 1<<31-1 {
		return errs.LengthTooLarge("sequence", len(items))
	}
	w.WriteVarI32(int32(len(items))) //nolint:gosec
	for _, item := range items {
		encode(w, item)
	}

	return nil
}

// WriteSequenceUnknownLength appends the elements produced by next using the
// unknown-length iterator framing: var_i32(-1) followed by a presence byte
// (1 = element follows, 0 = end) before each element. This is the framing an
// unbounded producer (a Go channel or iterator) uses when it cannot size
// itself up front (§4.C).
func WriteSequenceUnknownLength[T any](w *wire.Writer, next func() (T, bool), encode func(w *wire.Writer, v T)) {
	w.WriteVarI32(-1)
	for {
		v, ok := next()
		if !ok {
			w.WriteByte(0)

			return
		}
		w.WriteByte(1)
		encode(w, v)
	}
}

// ReadSequence reverses either framing WriteSequence or
// WriteSequenceUnknownLength produces, so a decoder tolerates a list/vector/
// set migration on the producing side without breaking compatibility
// (§4.C).
func ReadSequence[T any](r *wire.Reader, decode func(r *wire.Reader) (T, error)) ([]T, error) {
	n, err := r.ReadVarI32()
	if err != nil {
		return nil, err
	}

	if n >= 0 {
		out := make([]T, 0, n)
		for i := int32(0); i < n; i++ {
			v, err := decode(r)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}

		return out, nil
	}

	var out []T
	for {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if tag == 0 {
			return out, nil
		}

		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}
