package codec

import (
	"unicode/utf8"

	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/wire"
)

// WriteString appends s as var_i32(byte length) followed by its UTF-8
// bytes.
func WriteString(w *wire.Writer, s string) error {
	if len(s) > 1<<31-1 {
		return errs.LengthTooLarge("string", len(s))
	}
	w.WriteVarI32(int32(len(s))) //nolint:gosec
	w.WriteBytes([]byte(s))

	return nil
}

// ReadString reverses WriteString, failing with FailedToDecodeString if the
// bytes are not valid UTF-8.
func ReadString(r *wire.Reader) (string, error) {
	n, err := r.ReadVarI32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", errs.LengthTooLarge("string", int(n))
	}

	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errs.FailedToDecodeString("invalid UTF-8")
	}

	return string(b), nil
}
