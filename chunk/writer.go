// Package chunk implements the chunked writer and reader (§4.E, §4.F): the
// per-generation buffering on the write side and the pre-scanned
// per-generation input regions on the read side that let the ADT driver
// route field reads and writes to the right generation.
package chunk

import (
	"math"

	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/evolution"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// Writer buffers per-generation byte streams during serialization and
// emits the stored-version byte, evolution header, and chunks on Finish
// (§4.E).
type Writer struct {
	meta   *metadata.Metadata
	sess   *session.Session
	engine endian.EndianEngine

	direct bool         // version-0 shortcut: write straight to output, no header
	out    *wire.Writer // used only when direct

	buffers        []*wire.Writer
	lastIndex      []int
	fieldPositions map[string]metadata.FieldPosition
}

// NewWriter constructs a Writer over meta. When meta has no evolution
// beyond Initial, it bypasses buffering entirely and writes straight to its
// internal output (§4.E point 4).
func NewWriter(meta *metadata.Metadata, sess *session.Session, engine endian.EndianEngine) *Writer {
	w := &Writer{meta: meta, sess: sess, engine: engine}

	if meta.Version() == 0 {
		w.direct = true
		w.out = wire.NewWriter(engine)

		return w
	}

	w.buffers = make([]*wire.Writer, meta.Generations())
	for i := range w.buffers {
		w.buffers[i] = wire.NewWriter(engine)
	}
	w.lastIndex = make([]int, meta.Generations())
	w.fieldPositions = make(map[string]metadata.FieldPosition)

	return w
}

// FieldWriter returns the wire.Writer a field named name should write its
// value into, per the metadata's generation routing.
func (w *Writer) FieldWriter(name string) *wire.Writer {
	if w.direct {
		return w.out
	}

	return w.buffers[w.meta.FieldGeneration(name)]
}

// ConstructorWriter returns chunk 0's writer, for a sum type's constructor
// index and the selected variant's payload (§4.E "Constructor write").
func (w *Writer) ConstructorWriter() *wire.Writer {
	if w.direct {
		return w.out
	}

	return w.buffers[0]
}

// RecordFieldPosition assigns and remembers this field's FieldPosition,
// used only to resolve a later FIELD_MADE_OPTIONAL header entry for the
// same field name. Must be called once per field write, after the field's
// value has been written via FieldWriter.
func (w *Writer) RecordFieldPosition(name string) {
	if w.direct {
		return
	}

	chunk := w.meta.FieldGeneration(name)
	w.lastIndex[chunk]++
	w.fieldPositions[name] = metadata.FieldPosition{Chunk: chunk, Position: w.lastIndex[chunk]}
}

// Finish appends the stored-version byte (direct path: nothing else), the
// evolution header, and the concatenated generation buffers to dst,
// releasing internal buffers. dst may be nil.
func (w *Writer) Finish(dst []byte) ([]byte, error) {
	dst = append(dst, byte(w.meta.Version())) //nolint:gosec

	if w.direct {
		dst = append(dst, w.out.Bytes()...)
		w.out.Release()

		return dst, nil
	}

	headerWriter := wire.NewWriter(w.engine)
	defer headerWriter.Release()

	for gen, step := range w.meta.Steps() {
		entry, err := w.headerEntryFor(gen, step)
		if err != nil {
			return nil, err
		}
		if err := evolution.WriteEntry(headerWriter, w.sess, entry); err != nil {
			return nil, err
		}
	}

	dst = append(dst, headerWriter.Bytes()...)

	for _, buf := range w.buffers {
		if buf.Len() > math.MaxInt32 {
			return nil, errs.LengthTooLarge("chunk", buf.Len())
		}
		dst = append(dst, buf.Bytes()...)
		buf.Release()
	}

	return dst, nil
}

func (w *Writer) headerEntryFor(gen int, step metadata.Step) (evolution.Entry, error) {
	switch step.Kind {
	case metadata.StepInitial, metadata.StepFieldAdded:
		return evolution.Entry{Kind: evolution.KindFieldAddedToNewChunk, Size: w.buffers[gen].Len()}, nil
	case metadata.StepFieldRemoved, metadata.StepFieldMadeTransient:
		return evolution.Entry{Kind: evolution.KindFieldRemoved, Name: step.Field}, nil
	case metadata.StepFieldMadeOptional:
		// A field made optional and later removed resolves to FIELD_REMOVED
		// in this generation's slot, taking precedence (§4.E, §9).
		if w.meta.IsRemoved(step.Field) {
			return evolution.Entry{Kind: evolution.KindFieldRemoved, Name: step.Field}, nil
		}

		pos, ok := w.fieldPositions[step.Field]
		if !ok {
			return evolution.Entry{}, errs.UnknownFieldReferenceInEvolutionStep(step.Field)
		}

		return evolution.Entry{Kind: evolution.KindFieldMadeOptional, Position: pos}, nil
	default:
		return evolution.Entry{Kind: evolution.KindUnknown}, nil
	}
}
