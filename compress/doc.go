// Package compress provides whole-value compression codecs applied on top of
// the chunked ADT wire format.
//
// Serialized values (the evolution header plus all chunks concatenated) may
// optionally be compressed as a single pass after encoding, trading CPU for
// size. Compression operates on the finished byte stream; it has no
// knowledge of chunk boundaries, field evolution, or dedup tables.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone) returns the input unchanged. Use when the
// caller already compresses at a higher layer, or values are small enough
// that framing overhead would outweigh any savings.
//
// **Zstandard** (format.CompressionZstd) gives the best ratio at moderate
// speed. Preferred for archival storage of serialized values or for values
// with large duplicated string/text payloads.
//
// **S2** (format.CompressionS2) is a Snappy-derived codec tuned for speed
// over ratio. Preferred on hot paths where values are serialized and
// deserialized frequently.
//
// **LZ4** (format.CompressionLZ4) trades compression ratio for very fast
// decompression, useful when values are written once and read often.
//
// # Build Tags
//
// The Zstd codec has two backends selected at build time: a pure-Go
// implementation (klauspost/compress/zstd) used when cgo is disabled, and a
// cgo implementation (valyala/gozstd) used whenever cgo is enabled. Both implement the same Codec interface, so callers never need to
// know which backend is active.
//
// # Memory Management
//
// All codecs avoid retaining references to caller-owned input slices past
// the call; returned slices are newly allocated and owned by the caller,
// except NoOp's, which are the input slice itself.
package compress
