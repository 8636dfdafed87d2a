package codec

import (
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/wire"
)

// WriteTupleHeader writes the leading version byte for a tuple of the given
// arity: a single 0 byte for arity >= 2, nothing for the transparent arity-1
// case (§4.C). Elements themselves are written by the caller, in order,
// immediately after.
func WriteTupleHeader(w *wire.Writer, arity int) {
	if arity >= 2 {
		w.WriteByte(0)
	}
}

// ReadTupleHeader reverses WriteTupleHeader, failing if a multi-element
// tuple's leading byte is not the expected 0 (a tuple is a structural case
// of the ADT encoding, where this byte is its version).
func ReadTupleHeader(r *wire.Reader, arity int) error {
	if arity < 2 {
		return nil
	}

	b, err := r.ReadByte()
	if err != nil {
		return err
	}
	if b != 0 {
		return errs.DeserializationFailure("tuple: unsupported version byte")
	}

	return nil
}
