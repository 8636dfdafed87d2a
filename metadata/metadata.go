// Package metadata derives the immutable, per-type evolution descriptor
// (§3) that the chunked writer, chunked reader, and ADT driver consult to
// route fields to generations and interpret evolution headers.
package metadata

import (
	"github.com/halvarsen/evolve/errs"
)

// StepKind identifies one declared change to a type's schema.
type StepKind uint8

const (
	StepInitial StepKind = iota
	StepFieldAdded
	StepFieldMadeOptional
	StepFieldRemoved
	StepFieldMadeTransient // semantic alias of StepFieldRemoved at the wire level
)

func (k StepKind) String() string {
	switch k {
	case StepInitial:
		return "Initial"
	case StepFieldAdded:
		return "FieldAdded"
	case StepFieldMadeOptional:
		return "FieldMadeOptional"
	case StepFieldRemoved:
		return "FieldRemoved"
	case StepFieldMadeTransient:
		return "FieldMadeTransient"
	default:
		return "Unknown"
	}
}

// Step is one entry in a type's evolution list.
type Step struct {
	Kind  StepKind
	Field string // empty for StepInitial
}

// Initial builds the mandatory first step of every evolution list.
func Initial() Step { return Step{Kind: StepInitial} }

// FieldAdded builds a step recording that field was introduced in this
// generation.
func FieldAdded(field string) Step { return Step{Kind: StepFieldAdded, Field: field} }

// FieldMadeOptional builds a step recording that field was promoted from
// required to Option in this generation.
func FieldMadeOptional(field string) Step { return Step{Kind: StepFieldMadeOptional, Field: field} }

// FieldRemoved builds a step recording that field was dropped in this
// generation.
func FieldRemoved(field string) Step { return Step{Kind: StepFieldRemoved, Field: field} }

// FieldMadeTransient builds a step recording that field was marked
// transient (never serialized) in this generation; wire-compatible with
// FieldRemoved.
func FieldMadeTransient(field string) Step { return Step{Kind: StepFieldMadeTransient, Field: field} }

// MaxSteps is the largest evolution list this format can describe: a
// generation index must fit the single unsigned stored-version byte.
const MaxSteps = 256

// FieldPosition identifies a field's location within its generation,
// correlating FIELD_MADE_OPTIONAL header entries (§4.D) with field reads
// (§4.G). Position 0 is the degenerate/unknown position.
type FieldPosition struct {
	Chunk    int
	Position int
}

// EncodeFieldPosition packs fp into the compact single-byte form used on
// the wire: when Chunk == 0, the byte is -Position (signed-byte two's
// complement); otherwise the byte is Chunk and the decoder assigns
// Position = 0.
func EncodeFieldPosition(fp FieldPosition) byte {
	if fp.Chunk == 0 {
		return byte(int8(-fp.Position)) //nolint:gosec
	}

	return byte(fp.Chunk) //nolint:gosec
}

// DecodeFieldPosition reverses EncodeFieldPosition.
func DecodeFieldPosition(b byte) FieldPosition {
	s := int8(b)
	if s <= 0 {
		return FieldPosition{Chunk: 0, Position: int(-s)}
	}

	return FieldPosition{Chunk: int(s), Position: 0}
}

// Metadata is the immutable evolution descriptor for one record or
// enum-variant payload type, derived once from its declared fields and
// ordered evolution history.
type Metadata struct {
	typeName string
	fields   []string
	steps    []Step
	version  int

	fieldGeneration map[string]int
	madeOptionalAt  map[string]int
	removedFields   map[string]struct{}
}

// New derives Metadata for typeName from its current field set and its
// ordered evolution history. steps[0] must be Initial. fields lists the
// type's present-day declared fields: a FieldAdded or FieldMadeOptional
// step must name one of them, or a field that a FieldRemoved or
// FieldMadeTransient step of the same list drops. A
// FieldRemoved/FieldMadeTransient step is exempt from that check — the field it names was, by definition, dropped
// from the current declaration, whether it was part of the implicit,
// never-explicitly-added version-0 payload or was added and removed within
// this same evolution list — but it still cannot be removed twice (§3
// invariant).
func New(typeName string, fields []string, steps []Step) (*Metadata, error) {
	if len(steps) == 0 || steps[0].Kind != StepInitial {
		return nil, errs.SerializationFailure(typeName + ": evolution steps must begin with Initial")
	}
	if len(steps) > MaxSteps {
		return nil, errs.LengthTooLarge(typeName+" evolution steps", len(steps))
	}

	current := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		current[f] = struct{}{}
	}
	for _, step := range steps {
		if step.Kind == StepFieldRemoved || step.Kind == StepFieldMadeTransient {
			current[step.Field] = struct{}{}
		}
	}

	m := &Metadata{
		typeName:        typeName,
		fields:          fields,
		steps:           steps,
		version:         len(steps) - 1,
		fieldGeneration: make(map[string]int),
		madeOptionalAt:  make(map[string]int),
		removedFields:   make(map[string]struct{}),
	}

	for gen, step := range steps {
		switch step.Kind {
		case StepInitial:
			continue
		case StepFieldAdded:
			if _, ok := current[step.Field]; !ok {
				return nil, errs.UnknownFieldReferenceInEvolutionStep(step.Field)
			}
			m.fieldGeneration[step.Field] = gen
		case StepFieldMadeOptional:
			if _, ok := current[step.Field]; !ok {
				return nil, errs.UnknownFieldReferenceInEvolutionStep(step.Field)
			}
			m.madeOptionalAt[step.Field] = gen
		case StepFieldRemoved, StepFieldMadeTransient:
			if _, already := m.removedFields[step.Field]; already {
				return nil, errs.UnknownFieldReferenceInEvolutionStep(step.Field)
			}
			m.removedFields[step.Field] = struct{}{}
		}
	}

	return m, nil
}

// TypeName returns the name this metadata was derived for.
func (m *Metadata) TypeName() string { return m.typeName }

// Fields returns the type's current (non-removed) declared field names.
func (m *Metadata) Fields() []string { return m.fields }

// Steps returns the ordered evolution list this metadata was derived from.
func (m *Metadata) Steps() []Step { return m.steps }

// Version returns len(Steps())-1, the single-byte stored version.
func (m *Metadata) Version() int { return m.version }

// Generations returns Version()+1, the number of per-generation buffers a
// chunked writer allocates for this type.
func (m *Metadata) Generations() int { return m.version + 1 }

// FieldGeneration returns the generation (chunk index) that routes field,
// 0 if the field was never the subject of a FieldAdded step (i.e. it
// belongs to the original layout).
func (m *Metadata) FieldGeneration(field string) int {
	if gen, ok := m.fieldGeneration[field]; ok {
		return gen
	}

	return 0
}

// MadeOptionalAtGeneration reports the generation at which field was
// promoted from required to Option in this type's own evolution history,
// if any.
func (m *Metadata) MadeOptionalAtGeneration(field string) (int, bool) {
	gen, ok := m.madeOptionalAt[field]

	return gen, ok
}

// IsRemoved reports whether field was the subject of a FieldRemoved or
// FieldMadeTransient step in this type's own evolution history.
func (m *Metadata) IsRemoved(field string) bool {
	_, ok := m.removedFields[field]

	return ok
}

// Fingerprint returns a stable hash of the canonical evolution step list,
// suitable for log correlation between producer and consumer builds. It is
// never consulted by Serialize/Deserialize.
func (m *Metadata) Fingerprint() uint64 {
	return Fingerprint(m.steps)
}
