package wire

import (
	"math"

	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/errs"
)

// Reader is a bounds-checked cursor over a byte slice.
//
// It does not own or copy data; the caller must keep the underlying slice
// alive for the Reader's lifetime.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over data starting at position 0.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if r.Remaining() < n {
		return errs.InputEndedUnexpectedly(n, r.Remaining())
	}
	r.pos += n

	return nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, errs.InputEndedUnexpectedly(1, r.Remaining())
	}
	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// ReadBytes reads and returns the next n bytes.
//
// The returned slice aliases the Reader's underlying data; copy it if the
// caller needs to retain it beyond the data slice's lifetime.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.LengthTooLarge("byte read", n)
	}
	if r.Remaining() < n {
		return nil, errs.InputEndedUnexpectedly(n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// ReadUint128 reads a big-endian u128 as two consecutive uint64 halves,
// most-significant half first.
func (r *Reader) ReadUint128() (hi uint64, lo uint64, err error) {
	hi, err = r.ReadUint64()
	if err != nil {
		return 0, 0, err
	}
	lo, err = r.ReadUint64()
	if err != nil {
		return 0, 0, err
	}

	return hi, lo, nil
}

// ReadFloat32 reads a big-endian IEEE-754 float32.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a big-endian IEEE-754 float64.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// ReadVarU32 reads an unsigned LEB128 value.
func (r *Reader) ReadVarU32() (uint32, error) {
	var result uint32
	var shift uint

	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		if shift >= 35 {
			return 0, errs.LengthTooLarge("var_u32", int(shift))
		}

		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// ReadVarI32 reads an unsigned LEB128 value and reverses zigzag encoding.
func (r *Reader) ReadVarI32() (int32, error) {
	u, err := r.ReadVarU32()
	if err != nil {
		return 0, err
	}

	return int32(u>>1) ^ -int32(u&1), nil
}
