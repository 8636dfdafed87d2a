package session

import (
	"github.com/halvarsen/evolve/wire"
)

// WriteDedupString writes s using the deduplicated string encoding (§4.C):
// a var_i32 prefix that is a fresh string length on first occurrence, or
// the negated id of an already-interned string on repeat.
//
// This mode is opt-in: when used inside an evolvable record and a new
// string field is added, older decoders that skip the field never populate
// the table, producing divergent ids for later duplicates (§4.C).
func WriteDedupString(w *wire.Writer, sess *Session, s string) {
	id, isNew := sess.Strings.Intern(s)
	if isNew {
		w.WriteVarI32(int32(len(s))) //nolint:gosec
		w.WriteBytes([]byte(s))

		return
	}

	w.WriteVarI32(int32(-id))
}

// ReadDedupString reverses WriteDedupString.
func ReadDedupString(r *wire.Reader, sess *Session) (string, error) {
	v, err := r.ReadVarI32()
	if err != nil {
		return "", err
	}

	if v < 0 {
		return sess.Strings.Lookup(int(-v))
	}

	b, err := r.ReadBytes(int(v))
	if err != nil {
		return "", err
	}

	s := string(b)
	sess.Strings.Intern(s)

	return s, nil
}
