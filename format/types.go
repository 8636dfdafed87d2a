// Package format defines the small set of wire-level type tags shared across
// packages: the compression algorithm selector used on whole serialized
// values, and the character-encoding mode selector used by the primitive
// codec's char type.
package format

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CharEncoding selects how the primitive codec represents a single
// character on the wire. The normative wire format (§6) is always
// CharEncodingU16; CharEncodingRune32 exists only for reading data produced
// by a source-language ancestor format that never narrowed to UTF-16 code
// units (see evolve.WithCharEncoding32).
type CharEncoding uint8

const (
	CharEncodingU16    CharEncoding = 0x1 // one UTF-16 code unit, 2 bytes
	CharEncodingRune32 CharEncoding = 0x2 // one Unicode scalar value, 4 bytes
)

func (c CharEncoding) String() string {
	switch c {
	case CharEncodingU16:
		return "U16"
	case CharEncodingRune32:
		return "Rune32"
	default:
		return "Unknown"
	}
}
