package codec

import (
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// WriteRef implements the cycle-safe reference protocol (§5, §9): query the
// session's reference table for obj's identity, write its existing id if
// already seen, or write 0 followed by the full payload otherwise. obj
// itself is the identity key — for a pointer type T, that is object address,
// exactly matching the contract's "identity is object address" requirement.
// T must be a comparable type (pointers, interfaces); passing a slice or map
// panics at runtime.
func WriteRef[T any](w *wire.Writer, sess *session.Session, obj T, encode func(w *wire.Writer, v T)) {
	id, isNew := sess.Refs.StoreOrGet(any(obj))
	if !isNew {
		w.WriteVarU32(uint32(id)) //nolint:gosec

		return
	}

	w.WriteVarU32(0)
	encode(w, obj)
}

// ReadRef mirrors WriteRef with try_read_ref for a value whose decode
// cannot be observed by its own nested reads (no direct self-loop): id 0
// means a fresh payload follows, which decode reads and which is then
// remembered under the next id; any other id must already be registered.
// For a graph where a node's own children can reference the node currently
// being decoded, use ReadRefInto instead.
func ReadRef[T any](r *wire.Reader, sess *session.Session, decode func(r *wire.Reader) (T, error)) (T, error) {
	var zero T

	id, err := r.ReadVarU32()
	if err != nil {
		return zero, err
	}

	if id == 0 {
		v, err := decode(r)
		if err != nil {
			return zero, err
		}
		sess.Refs.Remember(v)

		return v, nil
	}

	return lookupRef[T](sess, int(id))
}

// ReadRefInto supports true cyclic graphs: alloc constructs the (typically
// pointer) value before any of its fields are known, fill then decodes
// those fields, and any nested ReadRef/ReadRefInto call that back-references
// this node's id resolves correctly because Remember ran before fill
// started (§5, §8 cyclic-graph round-trip).
func ReadRefInto[T any](r *wire.Reader, sess *session.Session, alloc func() T, fill func(r *wire.Reader, v T) error) (T, error) {
	var zero T

	id, err := r.ReadVarU32()
	if err != nil {
		return zero, err
	}

	if id == 0 {
		v := alloc()
		sess.Refs.Remember(v)

		if err := fill(r, v); err != nil {
			return zero, err
		}

		return v, nil
	}

	return lookupRef[T](sess, int(id))
}

func lookupRef[T any](sess *session.Session, id int) (T, error) {
	var zero T

	obj, err := sess.Refs.Lookup(id)
	if err != nil {
		return zero, err
	}

	v, ok := obj.(T)
	if !ok {
		return zero, errs.DeserializationFailure("ref id resolved to an unexpected type")
	}

	return v, nil
}

// WriteDedupString forwards to session.WriteDedupString: the deduplicated
// string encoding (§4.C) lives in session since it needs direct access to
// the session's string table, but codec re-exports it so generated codecs
// only ever import this package for field-level primitives.
func WriteDedupString(w *wire.Writer, sess *session.Session, s string) {
	session.WriteDedupString(w, sess, s)
}

// ReadDedupString forwards to session.ReadDedupString.
func ReadDedupString(r *wire.Reader, sess *session.Session) (string, error) {
	return session.ReadDedupString(r, sess)
}
