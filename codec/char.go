package codec

import (
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/format"
	"github.com/halvarsen/evolve/wire"
)

// WriteChar appends r as a single wire character. The normative encoding
// (format.CharEncodingU16, §6) is one UTF-16 code unit; a rune outside the
// Basic Multilingual Plane fails with UnsupportedCharacter. The 32-bit
// encoding exists only to read data produced by a source-language ancestor
// format that never narrowed to UTF-16 code units.
func WriteChar(w *wire.Writer, r rune, enc format.CharEncoding) error {
	if enc == format.CharEncodingRune32 {
		w.WriteUint32(uint32(r)) //nolint:gosec

		return nil
	}

	if r > 0xFFFF || (r >= 0xD800 && r <= 0xDFFF) {
		return errs.UnsupportedCharacter(r)
	}
	w.WriteUint16(uint16(r))

	return nil
}

// ReadChar reverses WriteChar. In the U16 encoding, a code unit landing in
// the surrogate range fails with FailedToDecodeCharacter since a lone
// surrogate cannot stand for a full character.
func ReadChar(r *wire.Reader, enc format.CharEncoding) (rune, error) {
	if enc == format.CharEncodingRune32 {
		v, err := r.ReadUint32()

		return rune(v), err
	}

	unit, err := r.ReadUint16()
	if err != nil {
		return 0, err
	}
	if unit >= 0xD800 && unit <= 0xDFFF {
		return 0, errs.FailedToDecodeCharacter(unit)
	}

	return rune(unit), nil
}
