package codec

import (
	"github.com/halvarsen/evolve/wire"
)

// WriteOption appends 0 for a nil v, or 1 followed by encode(w, *v) (§4.C).
func WriteOption[T any](w *wire.Writer, v *T, encode func(w *wire.Writer, v T)) {
	if v == nil {
		w.WriteByte(0)

		return
	}
	w.WriteByte(1)
	encode(w, *v)
}

// ReadOption reverses WriteOption, returning a nil pointer for none.
func ReadOption[T any](r *wire.Reader, decode func(r *wire.Reader) (T, error)) (*T, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil //nolint:nilnil
	}

	v, err := decode(r)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
