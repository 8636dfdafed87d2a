// Package evolve is the public façade (§4.H) over the chunked ADT codec:
// serialize(value) -> []byte, deserialize([]byte) -> T, wrapped with
// whole-value compression and a single tagged error taxonomy.
package evolve

import (
	"github.com/halvarsen/evolve/adt"
	"github.com/halvarsen/evolve/compress"
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/format"
	"github.com/halvarsen/evolve/internal/options"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// Marshaler is implemented by a generated codec's value type: EvolveMetadata
// supplies the type's evolution descriptor once, and MarshalEvolve writes
// its fields and constructor through s.
type Marshaler interface {
	EvolveTypeName() string
	EvolveMetadata() *metadata.Metadata
	MarshalEvolve(s *adt.Serializer) error
}

// Unmarshaler is implemented by a pointer receiver of the generated codec's
// value type, mirroring Marshaler on the read side.
type Unmarshaler interface {
	EvolveTypeName() string
	EvolveMetadata() *metadata.Metadata
	UnmarshalEvolve(d *adt.Deserializer) error
}

// Serialize encodes v, applying opts over the defaults, and returns a fresh
// byte slice: the byte-vector convenience form of §4.H's serialize(value,
// output).
func Serialize(v Marshaler, opts ...Option) ([]byte, error) {
	return SerializeAppend(nil, v, opts...)
}

// SerializeAppend encodes v and appends it to dst, which may be nil.
func SerializeAppend(dst []byte, v Marshaler, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	sess := session.New()
	s := adt.NewSerializer(v.EvolveMetadata(), sess, o.engine)
	if err := v.MarshalEvolve(s); err != nil {
		return nil, err
	}

	envelope, err := s.Finish(nil)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(o.compression)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Compress(envelope)
	if err != nil {
		return nil, errs.CompressionFailure(err)
	}

	dst = append(dst, byte(o.compression))
	dst = append(dst, payload...)

	return dst, nil
}

// Deserialize decodes data into a fresh T, applying opts over the defaults:
// the byte-vector convenience form of §4.H's deserialize(input) -> T.
//
// PT must be a pointer to T implementing Unmarshaler, the same shape
// encoding/gob and encoding/json/v2 use to let a value type's methods live
// on its pointer receiver while the call site names the value type.
func Deserialize[T any, PT interface {
	*T
	Unmarshaler
}](data []byte, opts ...Option) (T, error) {
	var zero T

	o := defaultOptions()
	if err := options.Apply(o, opts...); err != nil {
		return zero, err
	}

	if len(data) == 0 {
		return zero, errs.InputEndedUnexpectedly(1, 0)
	}

	compression := format.CompressionType(data[0])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return zero, err
	}

	envelope, err := codec.Decompress(data[1:])
	if err != nil {
		return zero, errs.DecompressionFailure(err)
	}

	out := new(T)
	pt := PT(out)

	r := wire.NewReader(envelope, o.engine)
	sess := session.New()

	d, err := adt.NewDeserializer(pt.EvolveTypeName(), pt.EvolveMetadata(), sess, r, o.engine)
	if err != nil {
		return zero, err
	}

	if err := pt.UnmarshalEvolve(d); err != nil {
		return zero, err
	}

	return *out, nil
}
