// Package errs provides the single tagged error taxonomy used throughout evolve.
//
// Every read/write operation fails, if it fails at all, with an error whose
// Kind can be tested via errors.Is against the sentinel values below. Errors
// that carry extra context (a type name, a constructor id, a field name)
// wrap the matching sentinel, so callers that only care about the kind can
// keep using errors.Is while callers that want detail can use errors.As
// against *Error.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a codec error, independent of the
// human-readable message or any attached detail.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInputEndedUnexpectedly
	KindLengthTooLarge
	KindInvalidConstructorID
	KindInvalidConstructorName
	KindUnknownFieldReferenceInEvolutionStep
	KindDeserializingNonExistingChunk
	KindFieldRemovedInSerializedVersion
	KindFieldWithoutDefaultValueIsMissing
	KindNonOptionalFieldSerializedAsNone
	KindSerializingTransientConstructor
	KindInvalidStringID
	KindInvalidRefID
	KindUnsupportedCharacter
	KindFailedToDecodeCharacter
	KindFailedToDecodeString
	KindSerializationFailure
	KindDeserializationFailure
	KindCompressionFailure
	KindDecompressionFailure
)

// Error is the structured error type returned by evolve's codec operations.
// It always has a Kind and a message; Type/Field/ID are populated only when
// the Kind makes them meaningful.
type Error struct {
	Kind  Kind
	Type  string
	Field string
	ID    uint64
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.msg != "" {
		return e.msg
	}

	return e.Kind.String()
}

// Unwrap lets errors.Is(err, errs.ErrFieldRemovedInSerializedVersion) match
// a detailed *Error constructed by FieldRemovedInSerializedVersion(name).
func (e *Error) Unwrap() error {
	return e.cause
}

func (k Kind) String() string {
	switch k {
	case KindInputEndedUnexpectedly:
		return "input ended unexpectedly"
	case KindLengthTooLarge:
		return "length too large"
	case KindInvalidConstructorID:
		return "invalid constructor id"
	case KindInvalidConstructorName:
		return "invalid constructor name"
	case KindUnknownFieldReferenceInEvolutionStep:
		return "unknown field reference in evolution step"
	case KindDeserializingNonExistingChunk:
		return "deserializing non-existing chunk"
	case KindFieldRemovedInSerializedVersion:
		return "field removed in serialized version"
	case KindFieldWithoutDefaultValueIsMissing:
		return "field without default value is missing"
	case KindNonOptionalFieldSerializedAsNone:
		return "non-optional field serialized as none"
	case KindSerializingTransientConstructor:
		return "serializing transient constructor"
	case KindInvalidStringID:
		return "invalid string id"
	case KindInvalidRefID:
		return "invalid ref id"
	case KindUnsupportedCharacter:
		return "unsupported character"
	case KindFailedToDecodeCharacter:
		return "failed to decode character"
	case KindFailedToDecodeString:
		return "failed to decode string"
	case KindSerializationFailure:
		return "serialization failure"
	case KindDeserializationFailure:
		return "deserialization failure"
	case KindCompressionFailure:
		return "compression failure"
	case KindDecompressionFailure:
		return "decompression failure"
	default:
		return "unknown error"
	}
}

// sentinel errors, one per Kind, for errors.Is matching.
var (
	ErrInputEndedUnexpectedly               = &Error{Kind: KindInputEndedUnexpectedly}
	ErrLengthTooLarge                       = &Error{Kind: KindLengthTooLarge}
	ErrInvalidConstructorID                 = &Error{Kind: KindInvalidConstructorID}
	ErrInvalidConstructorName               = &Error{Kind: KindInvalidConstructorName}
	ErrUnknownFieldReferenceInEvolutionStep = &Error{Kind: KindUnknownFieldReferenceInEvolutionStep}
	ErrDeserializingNonExistingChunk        = &Error{Kind: KindDeserializingNonExistingChunk}
	ErrFieldRemovedInSerializedVersion      = &Error{Kind: KindFieldRemovedInSerializedVersion}
	ErrFieldWithoutDefaultValueIsMissing    = &Error{Kind: KindFieldWithoutDefaultValueIsMissing}
	ErrNonOptionalFieldSerializedAsNone     = &Error{Kind: KindNonOptionalFieldSerializedAsNone}
	ErrSerializingTransientConstructor      = &Error{Kind: KindSerializingTransientConstructor}
	ErrInvalidStringID                      = &Error{Kind: KindInvalidStringID}
	ErrInvalidRefID                         = &Error{Kind: KindInvalidRefID}
	ErrUnsupportedCharacter                 = &Error{Kind: KindUnsupportedCharacter}
	ErrFailedToDecodeCharacter              = &Error{Kind: KindFailedToDecodeCharacter}
	ErrFailedToDecodeString                 = &Error{Kind: KindFailedToDecodeString}
	ErrSerializationFailure                 = &Error{Kind: KindSerializationFailure}
	ErrDeserializationFailure               = &Error{Kind: KindDeserializationFailure}
	ErrCompressionFailure                   = &Error{Kind: KindCompressionFailure}
	ErrDecompressionFailure                 = &Error{Kind: KindDecompressionFailure}
)

func wrap(sentinel *Error, msg string) *Error {
	return &Error{Kind: sentinel.Kind, msg: msg, cause: sentinel}
}

// InputEndedUnexpectedly reports a read that ran past the end of the input.
func InputEndedUnexpectedly(need, have int) error {
	return wrap(ErrInputEndedUnexpectedly, fmt.Sprintf("input ended unexpectedly: need %d bytes, have %d", need, have))
}

// LengthTooLarge reports a length/count that does not fit in an int32.
func LengthTooLarge(what string, n int) error {
	return wrap(ErrLengthTooLarge, fmt.Sprintf("%s length %d does not fit in int32", what, n))
}

// InvalidConstructorID reports an unknown sum-type constructor index.
func InvalidConstructorID(typeName string, id uint32) error {
	e := wrap(ErrInvalidConstructorID, fmt.Sprintf("%s: invalid constructor id %d", typeName, id))
	e.Type = typeName
	e.ID = uint64(id)

	return e
}

// InvalidConstructorName reports an unknown sum-type constructor name.
func InvalidConstructorName(typeName, name string) error {
	e := wrap(ErrInvalidConstructorName, fmt.Sprintf("%s: invalid constructor name %q", typeName, name))
	e.Type = typeName
	e.Field = name

	return e
}

// UnknownFieldReferenceInEvolutionStep reports evolution metadata that
// references a field that is neither present in the current type nor
// recorded as removed.
func UnknownFieldReferenceInEvolutionStep(field string) error {
	e := wrap(ErrUnknownFieldReferenceInEvolutionStep, fmt.Sprintf("evolution step references unknown field %q", field))
	e.Field = field

	return e
}

// DeserializingNonExistingChunk reports routing to a generation that has no
// backing sub-region, which indicates a corrupt header or a driver bug.
func DeserializingNonExistingChunk(chunk int) error {
	return wrap(ErrDeserializingNonExistingChunk, fmt.Sprintf("chunk %d does not exist in the decoded stream", chunk))
}

// FieldRemovedInSerializedVersion reports a required-field read of a field
// the writer's evolution history has removed.
func FieldRemovedInSerializedVersion(field string) error {
	e := wrap(ErrFieldRemovedInSerializedVersion, fmt.Sprintf("field %q was removed in the serialized version", field))
	e.Field = field

	return e
}

// FieldWithoutDefaultValueIsMissing reports a required-field read of an
// older stream that predates the field and no default was supplied.
func FieldWithoutDefaultValueIsMissing(field string) error {
	e := wrap(ErrFieldWithoutDefaultValueIsMissing, fmt.Sprintf("field %q is missing and has no default value", field))
	e.Field = field

	return e
}

// NonOptionalFieldSerializedAsNone reports that a field promoted to
// optional was stored as none by an older writer, but the reader's view
// still requires a value.
func NonOptionalFieldSerializedAsNone(field string) error {
	e := wrap(ErrNonOptionalFieldSerializedAsNone, fmt.Sprintf("field %q was serialized as none but is required", field))
	e.Field = field

	return e
}

// SerializingTransientConstructor reports an attempt to write a variant
// marked transient, which must never reach the wire.
func SerializingTransientConstructor(typeName, constructor string) error {
	e := wrap(ErrSerializingTransientConstructor, fmt.Sprintf("%s: constructor %q is transient and cannot be serialized", typeName, constructor))
	e.Type = typeName
	e.Field = constructor

	return e
}

// InvalidStringID reports a dedup-string back-reference to an id that was
// never interned in this session.
func InvalidStringID(id int) error {
	e := wrap(ErrInvalidStringID, fmt.Sprintf("invalid string id %d", id))
	e.ID = uint64(id) //nolint:gosec

	return e
}

// InvalidRefID reports a back-reference to an id that was never stored in
// this session's reference table.
func InvalidRefID(id int) error {
	e := wrap(ErrInvalidRefID, fmt.Sprintf("invalid ref id %d", id))
	e.ID = uint64(id) //nolint:gosec

	return e
}

// UnsupportedCharacter reports a rune outside the Basic Multilingual Plane,
// which cannot be represented as a single UTF-16 code unit.
func UnsupportedCharacter(r rune) error {
	return wrap(ErrUnsupportedCharacter, fmt.Sprintf("character %U is outside the Basic Multilingual Plane", r))
}

// FailedToDecodeCharacter reports a UTF-16 code unit that does not decode
// to a valid character on its own (e.g. an unpaired surrogate).
func FailedToDecodeCharacter(unit uint16) error {
	return wrap(ErrFailedToDecodeCharacter, fmt.Sprintf("failed to decode character from code unit 0x%04x", unit))
}

// FailedToDecodeString reports malformed UTF-8 in a decoded string payload.
func FailedToDecodeString(msg string) error {
	return wrap(ErrFailedToDecodeString, "failed to decode string: "+msg)
}

// SerializationFailure is a catch-all for serialize-side failures that do
// not fit a more specific kind.
func SerializationFailure(msg string) error {
	return wrap(ErrSerializationFailure, msg)
}

// DeserializationFailure is a catch-all for deserialize-side failures that
// do not fit a more specific kind.
func DeserializationFailure(msg string) error {
	return wrap(ErrDeserializationFailure, msg)
}

// CompressionFailure wraps an underlying compressor error.
func CompressionFailure(cause error) error {
	e := wrap(ErrCompressionFailure, fmt.Sprintf("compression failure: %v", cause))
	e.cause = cause

	return e
}

// DecompressionFailure wraps an underlying decompressor error.
func DecompressionFailure(cause error) error {
	e := wrap(ErrDecompressionFailure, fmt.Sprintf("decompression failure: %v", cause))
	e.cause = cause

	return e
}

// Is reports whether target is the sentinel for this error's Kind, so
// errors.Is(err, errs.ErrFieldRemovedInSerializedVersion) works regardless
// of which constructor produced err.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind && other.msg == "" && other.cause == nil
	}

	return false
}
