package codec

import (
	"github.com/halvarsen/evolve/wire"
)

// WriteResult appends 0 followed by encodeErr(w, errVal) when ok is false,
// or 1 followed by encodeOk(w, okVal) when ok is true. This tag ordering is
// the inverse of the conventional err/ok bit and must be preserved exactly
// (§4.C).
func WriteResult[T, E any](w *wire.Writer, ok bool, okVal T, errVal E, encodeOk func(w *wire.Writer, v T), encodeErr func(w *wire.Writer, e E)) {
	if !ok {
		w.WriteByte(0)
		encodeErr(w, errVal)

		return
	}
	w.WriteByte(1)
	encodeOk(w, okVal)
}

// ReadResult reverses WriteResult.
func ReadResult[T, E any](r *wire.Reader, decodeOk func(r *wire.Reader) (T, error), decodeErr func(r *wire.Reader) (E, error)) (ok bool, okVal T, errVal E, err error) {
	tag, err := r.ReadByte()
	if err != nil {
		return false, okVal, errVal, err
	}

	if tag == 0 {
		errVal, err = decodeErr(r)

		return false, okVal, errVal, err
	}

	okVal, err = decodeOk(r)

	return true, okVal, errVal, err
}
