package wire

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/halvarsen/evolve/errs"
)

// AppendDeflateFramed DEFLATE-compresses data and appends it to dst framed as:
//
//	var_u32(len(data))        uncompressed length
//	var_u32(len(compressed))  compressed length
//	compressed bytes
//
// The explicit uncompressed length lets a reader pre-size its output buffer
// before inflating.
func AppendDeflateFramed(dst []byte, data []byte) ([]byte, error) {
	var buf bytes.Buffer

	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, errs.CompressionFailure(err)
	}

	if _, err := fw.Write(data); err != nil {
		return nil, errs.CompressionFailure(err)
	}
	if err := fw.Close(); err != nil {
		return nil, errs.CompressionFailure(err)
	}

	compressed := buf.Bytes()

	dst = AppendVarU32(dst, uint32(len(data)))
	dst = AppendVarU32(dst, uint32(len(compressed)))
	dst = append(dst, compressed...)

	return dst, nil
}

// ReadDeflateFramed reads a DEFLATE frame written by AppendDeflateFramed and
// returns the inflated bytes.
func (r *Reader) ReadDeflateFramed() ([]byte, error) {
	uncompressedLen, err := r.ReadVarU32()
	if err != nil {
		return nil, err
	}

	compressedLen, err := r.ReadVarU32()
	if err != nil {
		return nil, err
	}

	compressed, err := r.ReadBytes(int(compressedLen))
	if err != nil {
		return nil, err
	}

	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()

	out := make([]byte, uncompressedLen)
	if _, err := io.ReadFull(fr, out); err != nil {
		return nil, errs.DecompressionFailure(err)
	}

	return out, nil
}
