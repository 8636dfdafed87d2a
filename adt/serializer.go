// Package adt implements the ADT driver (§4.G): the stateful field and
// constructor routing that a generated type codec invokes, sitting between
// the chunked writer/reader (§4.E, §4.F) and the caller's per-field encode
// or decode closures.
package adt

import (
	"github.com/halvarsen/evolve/chunk"
	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// Serializer drives a generated codec's sequence of WriteField and
// WriteConstructor calls, routing each to the right generation buffer via
// the underlying chunked writer.
type Serializer struct {
	cw     *chunk.Writer
	meta   *metadata.Metadata
	sess   *session.Session
	engine endian.EndianEngine
}

// NewSerializer opens a Serializer over meta using sess for dedup/ref
// state and engine for scalar byte order.
func NewSerializer(meta *metadata.Metadata, sess *session.Session, engine endian.EndianEngine) *Serializer {
	return &Serializer{cw: chunk.NewWriter(meta, sess, engine), meta: meta, sess: sess, engine: engine}
}

// Session returns the session this Serializer shares dedup/ref state
// through, for generated code that calls codec.WriteRef/WriteDedupString or
// adt.WriteNested directly.
func (s *Serializer) Session() *session.Session { return s.sess }

// Engine returns the byte-order engine this Serializer was opened with, for
// constructing a nested Serializer via adt.WriteNested.
func (s *Serializer) Engine() endian.EndianEngine { return s.engine }

// WriteField routes name to its generation's buffer, lets encode write the
// value there, and records the field's position for FIELD_MADE_OPTIONAL
// header resolution (§4.G serialize side, steps 1-3).
func (s *Serializer) WriteField(name string, encode func(w *wire.Writer)) {
	encode(s.cw.FieldWriter(name))
	s.cw.RecordFieldPosition(name)
}

// WriteConstructor writes var_u32(index) for the named constructor into
// chunk 0, then hands the same chunk-0 writer to writeVariant so the
// variant's fields route through the type's shared metadata (§4.E
// "Constructor write"). Writing a transient constructor fails instead
// (§4.G, §9).
func (s *Serializer) WriteConstructor(typeName string, ctors *metadata.Constructors, name string, writeVariant func(w *wire.Writer)) error {
	idx, ok := ctors.IndexOf(name)
	if !ok {
		return errs.InvalidConstructorName(typeName, name)
	}

	ctor, _ := ctors.At(idx)
	if ctor.Transient {
		return errs.SerializingTransientConstructor(typeName, name)
	}

	w := s.cw.ConstructorWriter()
	w.WriteVarU32(uint32(idx)) //nolint:gosec
	writeVariant(w)

	return nil
}

// Finish completes the underlying chunked writer (§4.E Finish).
func (s *Serializer) Finish(dst []byte) ([]byte, error) {
	return s.cw.Finish(dst)
}
