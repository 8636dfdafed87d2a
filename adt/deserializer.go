package adt

import (
	"github.com/halvarsen/evolve/chunk"
	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// Deserializer drives a generated codec's sequence of ReadField,
// ReadOptionalField, and ReadConstructorIndex calls, routing each to the
// region the chunked reader carved for its generation.
type Deserializer struct {
	cr       *chunk.Reader
	meta     *metadata.Metadata
	typeName string
	sess     *session.Session
	engine   endian.EndianEngine

	constructorRead bool
	constructorIdx  uint32
}

// NewDeserializer reads the stored-version byte and evolution header from
// r (via chunk.NewReader) and returns a Deserializer ready to service field
// reads against meta.
func NewDeserializer(typeName string, meta *metadata.Metadata, sess *session.Session, r *wire.Reader, engine endian.EndianEngine) (*Deserializer, error) {
	cr, err := chunk.NewReader(sess, r, engine)
	if err != nil {
		return nil, err
	}

	return &Deserializer{cr: cr, meta: meta, typeName: typeName, sess: sess, engine: engine}, nil
}

// Session returns the session this Deserializer shares dedup/ref state
// through, for generated code that calls codec.ReadRef/ReadDedupString or
// adt.ReadNested directly.
func (d *Deserializer) Session() *session.Session { return d.sess }

// Engine returns the byte-order engine this Deserializer was opened with,
// for constructing a nested Deserializer via adt.ReadNested.
func (d *Deserializer) Engine() endian.EndianEngine { return d.engine }

// ConstructorPayloadReader returns chunk 0's reader, positioned immediately
// after the constructor index (reading it first if this is the first call),
// so the generated dispatcher can read the matching variant's payload
// fields from the same region the serialize side wrote them into (§4.E
// "Constructor write", §4.G "Constructor read").
func (d *Deserializer) ConstructorPayloadReader() (*wire.Reader, error) {
	if _, err := d.ReadConstructorIndex(); err != nil {
		return nil, err
	}

	region, ok := d.cr.RegionReader(0)
	if !ok {
		return nil, errs.DeserializingNonExistingChunk(0)
	}

	return region, nil
}

// ReadConstructorIndex reads var_u32(constructorIndex) exactly once from
// chunk 0, memoizing the result for any further calls against this value
// (§4.G "Constructor read").
func (d *Deserializer) ReadConstructorIndex() (uint32, error) {
	if d.constructorRead {
		return d.constructorIdx, nil
	}

	region, ok := d.cr.RegionReader(0)
	if !ok {
		return 0, errs.DeserializingNonExistingChunk(0)
	}

	idx, err := region.ReadVarU32()
	if err != nil {
		return 0, err
	}

	d.constructorIdx = idx
	d.constructorRead = true

	return idx, nil
}

// ResolveConstructor maps the already-read constructor index to a known
// Constructor, failing with InvalidConstructorID if the index is unknown
// (§4.G, §7).
func (d *Deserializer) ResolveConstructor(ctors *metadata.Constructors) (metadata.Constructor, error) {
	idx, err := d.ReadConstructorIndex()
	if err != nil {
		return metadata.Constructor{}, err
	}

	c, ok := ctors.At(int(idx))
	if !ok {
		return metadata.Constructor{}, errs.InvalidConstructorID(d.typeName, idx)
	}

	return c, nil
}

// chunkFor resolves the region a field named name should be read from,
// applying the §4.G missing-chunk rules shared by ReadField and
// ReadOptionalField: exists=false with a nil error when the stream's stored
// version predates the field's generation, and a DeserializingNonExistingChunk
// error when that generation's region is absent. Removed-field checks are
// made by the callers before chunkFor is consulted.
func (d *Deserializer) chunkFor(name string) (region *wire.Reader, chunkIdx int, exists bool, err error) {
	chunkIdx = d.meta.FieldGeneration(name)
	if d.cr.StoredVersion() < chunkIdx {
		return nil, chunkIdx, false, nil
	}

	region, ok := d.cr.RegionReader(chunkIdx)
	if !ok {
		return nil, chunkIdx, false, errs.DeserializingNonExistingChunk(chunkIdx)
	}

	return region, chunkIdx, true, nil
}

// ReadField reads a required field. decode reads the raw value, without
// any optional wrapper, from the field's region. If the field was first
// declared at a generation newer than this stream's stored version,
// hasDefault selects between returning defaultValue and failing with
// FieldWithoutDefaultValueIsMissing (§4.G step 3).
func ReadField[T any](d *Deserializer, name string, decode func(r *wire.Reader) (T, error), defaultValue T, hasDefault bool) (T, error) {
	var zero T

	if d.cr.IsRemoved(name) {
		return zero, errs.FieldRemovedInSerializedVersion(name)
	}

	region, chunkIdx, exists, err := d.chunkFor(name)
	if err != nil {
		return zero, err
	}
	if !exists {
		if hasDefault {
			return defaultValue, nil
		}

		return zero, errs.FieldWithoutDefaultValueIsMissing(name)
	}

	pos := d.cr.NextPosition(chunkIdx)

	if d.cr.WasMadeOptionalAt(pos) {
		present, err := region.ReadByte()
		if err != nil {
			return zero, err
		}
		if present == 0 {
			return zero, errs.NonOptionalFieldSerializedAsNone(name)
		}
	}

	return decode(region)
}

// ReadRequiredField reads a required field with no default: an older
// stream that predates it fails the read.
func ReadRequiredField[T any](d *Deserializer, name string, decode func(r *wire.Reader) (T, error)) (T, error) {
	var zero T

	return ReadField(d, name, decode, zero, false)
}

// ReadOptionalField reads a field the caller's type declares as an Option.
// A removed field or one from a generation the stream predates yields nil
// rather than an error (§4.G step 1, step 3; evolution laws §8).
func ReadOptionalField[T any](d *Deserializer, name string, decode func(r *wire.Reader) (T, error)) (*T, error) {
	if d.cr.IsRemoved(name) {
		return nil, nil //nolint:nilnil
	}

	region, chunkIdx, exists, err := d.chunkFor(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil //nolint:nilnil
	}

	d.cr.NextPosition(chunkIdx)

	madeOptGen, madeOptional := d.meta.MadeOptionalAtGeneration(name)
	if madeOptional && d.cr.StoredVersion() < madeOptGen {
		v, err := decode(region)
		if err != nil {
			return nil, err
		}

		return &v, nil
	}

	tag, err := region.ReadByte()
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil //nolint:nilnil
	}

	v, err := decode(region)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
