// Package codec implements the primitive codec (§4.C): scalars, strings,
// durations, options, results, byte sequences, generic sequences, maps,
// tuples, and the cycle-safe reference protocol, all built on wire.Reader
// and wire.Writer.
package codec

import (
	"github.com/halvarsen/evolve/wire"
)

// WriteU8 appends a single unsigned byte.
func WriteU8(w *wire.Writer, v uint8) { w.WriteByte(v) }

// ReadU8 reads a single unsigned byte.
func ReadU8(r *wire.Reader) (uint8, error) { return r.ReadByte() }

// WriteI8 appends a single signed byte.
func WriteI8(w *wire.Writer, v int8) { w.WriteByte(byte(v)) }

// ReadI8 reads a single signed byte.
func ReadI8(r *wire.Reader) (int8, error) {
	b, err := r.ReadByte()

	return int8(b), err
}

// WriteU16 appends a big-endian uint16.
func WriteU16(w *wire.Writer, v uint16) { w.WriteUint16(v) }

// ReadU16 reads a big-endian uint16.
func ReadU16(r *wire.Reader) (uint16, error) { return r.ReadUint16() }

// WriteI16 appends a big-endian int16.
func WriteI16(w *wire.Writer, v int16) { w.WriteUint16(uint16(v)) }

// ReadI16 reads a big-endian int16.
func ReadI16(r *wire.Reader) (int16, error) {
	v, err := r.ReadUint16()

	return int16(v), err
}

// WriteU32 appends a big-endian uint32.
func WriteU32(w *wire.Writer, v uint32) { w.WriteUint32(v) }

// ReadU32 reads a big-endian uint32.
func ReadU32(r *wire.Reader) (uint32, error) { return r.ReadUint32() }

// WriteI32 appends a big-endian int32 (raw two's complement, not zigzag —
// the var_i32 zigzag encoding is reserved for variable-length fields).
func WriteI32(w *wire.Writer, v int32) { w.WriteUint32(uint32(v)) }

// ReadI32 reads a big-endian int32.
func ReadI32(r *wire.Reader) (int32, error) {
	v, err := r.ReadUint32()

	return int32(v), err
}

// WriteU64 appends a big-endian uint64.
func WriteU64(w *wire.Writer, v uint64) { w.WriteUint64(v) }

// ReadU64 reads a big-endian uint64.
func ReadU64(r *wire.Reader) (uint64, error) { return r.ReadUint64() }

// WriteI64 appends a big-endian int64.
func WriteI64(w *wire.Writer, v int64) { w.WriteUint64(uint64(v)) }

// ReadI64 reads a big-endian int64.
func ReadI64(r *wire.Reader) (int64, error) {
	v, err := r.ReadUint64()

	return int64(v), err
}

// WriteU128 appends a big-endian u128 as two consecutive uint64 halves,
// most-significant half first.
func WriteU128(w *wire.Writer, hi, lo uint64) { w.WriteUint128(hi, lo) }

// ReadU128 reads a big-endian u128.
func ReadU128(r *wire.Reader) (hi, lo uint64, err error) { return r.ReadUint128() }

// WriteI128 appends a big-endian i128 as two consecutive uint64 halves of
// its two's-complement representation, most-significant half first.
func WriteI128(w *wire.Writer, hi int64, lo uint64) { w.WriteUint128(uint64(hi), lo) }

// ReadI128 reads a big-endian i128.
func ReadI128(r *wire.Reader) (hi int64, lo uint64, err error) {
	h, l, err := r.ReadUint128()

	return int64(h), l, err
}

// WriteF32 appends a big-endian IEEE-754 float32.
func WriteF32(w *wire.Writer, v float32) { w.WriteFloat32(v) }

// ReadF32 reads a big-endian IEEE-754 float32.
func ReadF32(r *wire.Reader) (float32, error) { return r.ReadFloat32() }

// WriteF64 appends a big-endian IEEE-754 float64.
func WriteF64(w *wire.Writer, v float64) { w.WriteFloat64(v) }

// ReadF64 reads a big-endian IEEE-754 float64.
func ReadF64(r *wire.Reader) (float64, error) { return r.ReadFloat64() }

// WriteBool appends 0 or 1.
func WriteBool(w *wire.Writer, v bool) {
	if v {
		w.WriteByte(1)

		return
	}
	w.WriteByte(0)
}

// ReadBool reads a byte, treating any non-zero value as true.
func ReadBool(r *wire.Reader) (bool, error) {
	b, err := r.ReadByte()

	return b != 0, err
}

// WriteUnit writes nothing; unit occupies zero bytes on the wire.
func WriteUnit(*wire.Writer) {}

// ReadUnit reads nothing and always succeeds.
func ReadUnit(*wire.Reader) (struct{}, error) { return struct{}{}, nil }
