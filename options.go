package evolve

import (
	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/format"
	"github.com/halvarsen/evolve/internal/options"
)

// Options carries the public façade's configuration surface (§4.H):
// encoding variants plus the whole-value compression choice. Its zero value
// is never used directly; build one with defaultOptions and functional
// options.
type Options struct {
	engine             endian.EndianEngine
	charEncoding       format.CharEncoding
	compression        format.CompressionType
	dedupStrings       bool
	sortedConstructors bool
}

func defaultOptions() *Options {
	return &Options{
		engine:       endian.GetBigEndianEngine(),
		charEncoding: format.CharEncodingU16,
		compression:  format.CompressionNone,
	}
}

// Option configures a Serialize or Deserialize call.
type Option = options.Option[*Options]

// WithWireEndian overrides the scalar byte order. The normative wire format
// is always big-endian (§6); this exists only so tests can exercise the
// chunked writer/reader against both byte orders, never for production use.
func WithWireEndian(engine endian.EndianEngine) Option {
	return options.NoError(func(o *Options) { o.engine = engine })
}

// WithCharEncoding32 records a 4-byte Unicode scalar value char mode in
// Options, for data produced by a source-language ancestor format that never
// narrowed characters to UTF-16 code units. Serialize and Deserialize do not
// read this setting: the char width on the wire is whatever a type's own
// MarshalEvolve/UnmarshalEvolve writes and reads.
func WithCharEncoding32() Option {
	return options.NoError(func(o *Options) { o.charEncoding = format.CharEncodingRune32 })
}

// WithCompression wraps the whole serialized envelope (evolution header
// plus chunks) with the given algorithm after Finish, independent of the
// per-value DEFLATE framing of wire.AppendDeflateFramed.
func WithCompression(c format.CompressionType) Option {
	return options.NoError(func(o *Options) { o.compression = c })
}

// WithDedupStrings records the deduplicated-string opt-in in Options.
// Serialize and Deserialize do not read this setting: a string field uses
// the deduplicated encoding only where a type's own MarshalEvolve and
// UnmarshalEvolve write and read it that way. Opt-in only: an older decoder
// that skips a newly added string field never populates the session's
// string table, which would make later duplicate ids diverge (§4.C).
func WithDedupStrings(v bool) Option {
	return options.NoError(func(o *Options) { o.dedupStrings = v })
}

// WithSortedConstructors records the sorted-constructor mode in Options.
// Serialize and Deserialize do not read this setting: a sum type's wire
// indices follow the sorted argument its metadata.NewConstructors call was
// given (lexicographic constructor name instead of source declaration
// order). Sorted indices break compatibility with the default ordering (§9).
func WithSortedConstructors(v bool) Option {
	return options.NoError(func(o *Options) { o.sortedConstructors = v })
}
