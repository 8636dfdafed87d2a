// Package wire implements the low-level byte encoding shared by every codec
// layer above it: big-endian fixed-width scalars, LEB128/zigzag var-ints,
// and DEFLATE framing for individual values.
package wire

import (
	"math"

	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/internal/pool"
)

// Writer accumulates bytes for a single chunk or value using a pooled
// buffer. It is not safe for concurrent use.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a Writer backed by a chunk-sized pooled buffer.
//
// The wire format is always big-endian; engine is accepted so tests and
// internal callers can exercise the writer against both byte orders.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:    pool.GetChunkBuffer(),
		engine: engine,
	}
}

// Release returns the writer's buffer to the pool. After Release the writer
// must not be used again.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutChunkBuffer(w.buf)
		w.buf = nil
	}
}

// Bytes returns the bytes written so far. The returned slice shares the
// writer's underlying buffer and is invalidated by the next write or by
// Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf.ExtendOrGrow(1)
	w.buf.B[w.buf.Len()-1] = b
}

// WriteBytes appends p verbatim, with no length prefix.
func (w *Writer) WriteBytes(p []byte) {
	w.buf.MustWrite(p)
}

// WriteUint16 appends a big-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// WriteUint32 appends a big-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// WriteUint64 appends a big-endian uint64.
func (w *Writer) WriteUint64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

// WriteUint128 appends a big-endian u128 as two consecutive uint64 halves,
// most-significant half first.
func (w *Writer) WriteUint128(hi, lo uint64) {
	w.WriteUint64(hi)
	w.WriteUint64(lo)
}

// WriteFloat32 appends a big-endian IEEE-754 float32.
func (w *Writer) WriteFloat32(v float32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, math.Float32bits(v))
}

// WriteFloat64 appends a big-endian IEEE-754 float64.
func (w *Writer) WriteFloat64(v float64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// WriteVarU32 appends v using unsigned LEB128.
func (w *Writer) WriteVarU32(v uint32) {
	w.buf.B = AppendVarU32(w.buf.B, v)
}

// WriteVarI32 zigzag-encodes v, then appends it using unsigned LEB128.
func (w *Writer) WriteVarI32(v int32) {
	w.buf.B = AppendVarI32(w.buf.B, v)
}
