// Package evolution implements the per-generation evolution header codec
// (§4.D): one var_i32-discriminated entry per generation, describing what
// that generation's evolution step contributed to the wire.
package evolution

import (
	"math"

	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// Kind identifies what a single evolution-header entry describes.
type Kind uint8

const (
	// KindUnknown is the reserved/unknown entry (discriminator 0).
	KindUnknown Kind = iota
	// KindFieldAddedToNewChunk carries the byte size of a new generation's
	// buffer. Also used for the Initial step.
	KindFieldAddedToNewChunk
	// KindFieldMadeOptional carries the field position a later writer
	// first wrapped in a boolean presence byte.
	KindFieldMadeOptional
	// KindFieldRemoved carries the deduplicated name of a dropped field.
	KindFieldRemoved
)

// Entry is one decoded (or pending) evolution-header entry.
type Entry struct {
	Kind     Kind
	Size     int                     // KindFieldAddedToNewChunk
	Position metadata.FieldPosition  // KindFieldMadeOptional
	Name     string                  // KindFieldRemoved
}

// WriteEntry appends e's wire discriminator and payload (§4.D):
//
//	0            unknown/reserved
//	-1, position field made optional
//	-2, name     field removed (deduplicated name)
//	size > 0     field added to a new chunk of size bytes
func WriteEntry(w *wire.Writer, sess *session.Session, e Entry) error {
	switch e.Kind {
	case KindFieldAddedToNewChunk:
		if e.Size > math.MaxInt32 {
			return errs.LengthTooLarge("chunk", e.Size)
		}
		w.WriteVarI32(int32(e.Size)) //nolint:gosec
	case KindFieldMadeOptional:
		w.WriteVarI32(-1)
		w.WriteByte(metadata.EncodeFieldPosition(e.Position))
	case KindFieldRemoved:
		w.WriteVarI32(-2)
		session.WriteDedupString(w, sess, e.Name)
	case KindUnknown:
		w.WriteVarI32(0)
	}

	return nil
}

// ReadEntry decodes one evolution-header entry written by WriteEntry.
func ReadEntry(r *wire.Reader, sess *session.Session) (Entry, error) {
	disc, err := r.ReadVarI32()
	if err != nil {
		return Entry{}, err
	}

	switch {
	case disc == 0:
		return Entry{Kind: KindUnknown}, nil
	case disc == -1:
		b, err := r.ReadByte()
		if err != nil {
			return Entry{}, err
		}

		return Entry{Kind: KindFieldMadeOptional, Position: metadata.DecodeFieldPosition(b)}, nil
	case disc == -2:
		name, err := session.ReadDedupString(r, sess)
		if err != nil {
			return Entry{}, err
		}

		return Entry{Kind: KindFieldRemoved, Name: name}, nil
	case disc > 0:
		return Entry{Kind: KindFieldAddedToNewChunk, Size: int(disc)}, nil
	default:
		return Entry{}, errs.DeserializationFailure("evolution header: invalid discriminator")
	}
}
