package codec

import (
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/wire"
)

// WriteByteSequence appends b as var_u32(length) followed by the raw bytes.
// Unlike the generic sequence framing below, the length here is always
// unsigned-var, a deliberate asymmetry the format preserves for
// compatibility (§4.C).
func WriteByteSequence(w *wire.Writer, b []byte) error {
	if len(b) > 1<<31-1 {
		return errs.LengthTooLarge("byte sequence", len(b))
	}
	w.WriteVarU32(uint32(len(b))) //nolint:gosec
	w.WriteBytes(b)

	return nil
}

// ReadByteSequence reverses WriteByteSequence. The returned slice is a copy;
// it does not alias the reader's input.
func ReadByteSequence(r *wire.Reader) ([]byte, error) {
	n, err := r.ReadVarU32()
	if err != nil {
		return nil, err
	}

	b, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out, nil
}
