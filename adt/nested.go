package adt

import (
	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// WriteNested serializes a record- or enum-typed field value as its own
// self-contained ADT payload (stored-version byte, evolution header if any,
// and chunks) and appends the result into w. This is how a generated
// codec embeds one evolvable type inside a field of another: the nested
// value carries its own version independent of the enclosing record's,
// exactly as §6 describes recursively for any "type with version V".
//
// The nested serializer shares sess, so string dedup ids and reference ids
// stay consistent across the whole call tree.
func WriteNested(w *wire.Writer, meta *metadata.Metadata, sess *session.Session, engine endian.EndianEngine, write func(s *Serializer) error) error {
	child := NewSerializer(meta, sess, engine)
	if err := write(child); err != nil {
		return err
	}

	bytes, err := child.Finish(nil)
	if err != nil {
		return err
	}

	w.WriteBytes(bytes)

	return nil
}

// ReadNested decodes a nested value written by WriteNested. It constructs a
// Deserializer directly over r, so reading consumes exactly the bytes the
// nested value owns and leaves r's cursor positioned immediately after —
// no length prefix or sub-region carving is needed, since the chunked
// reader's own header parsing already determines its length (§4.F).
func ReadNested(r *wire.Reader, typeName string, meta *metadata.Metadata, sess *session.Session, engine endian.EndianEngine, read func(d *Deserializer) error) error {
	child, err := NewDeserializer(typeName, meta, sess, r, engine)
	if err != nil {
		return err
	}

	return read(child)
}
