// Package session holds the two cross-cutting tables the codec depends on
// (§4.B): a string dedup table and a reference (cycle) table. Both are
// created on session open and dropped on session close; lifetimes never
// span more than one serialize or deserialize call (§5).
package session

import (
	"github.com/halvarsen/evolve/errs"
	"github.com/halvarsen/evolve/internal/hash"
)

// Session is the per-call state a Serializer or Deserializer carries. It is
// not safe for concurrent use; concurrent calls must each open their own
// Session.
type Session struct {
	Strings *StringTable
	Refs    *RefTable
}

// New opens a fresh session with empty string and reference tables.
func New() *Session {
	return &Session{Strings: NewStringTable(), Refs: NewRefTable()}
}

type stringEntry struct {
	text string
	id   int
}

// StringTable interns strings with monotonically increasing ids starting
// at 1, assigning a new id on first occurrence and returning the existing
// one on repeat. Lookup is hash-bucketed and falls back to exact string
// comparison on collision, the same hash-then-verify shape the teacher
// uses for its metric-id collision table.
type StringTable struct {
	byHash map[uint64][]stringEntry
	byID   []string
	nextID int
}

// NewStringTable creates an empty string table.
func NewStringTable() *StringTable {
	return &StringTable{byHash: make(map[uint64][]stringEntry), nextID: 1}
}

// Intern returns the id for s, allocating the next id and storing s if this
// is the first time it has been seen in this table.
func (t *StringTable) Intern(s string) (id int, isNew bool) {
	h := hash.ID(s)
	for _, e := range t.byHash[h] {
		if e.text == s {
			return e.id, false
		}
	}

	id = t.nextID
	t.nextID++
	t.byHash[h] = append(t.byHash[h], stringEntry{text: s, id: id})
	t.byID = append(t.byID, s)

	return id, true
}

// Lookup returns the string stored under id.
func (t *StringTable) Lookup(id int) (string, error) {
	if id < 1 || id > len(t.byID) {
		return "", errs.InvalidStringID(id)
	}

	return t.byID[id-1], nil
}

// RefTable tracks object identity (not value equality) for cycle-safe
// serialization (§5, §9): two structurally equal but distinct objects get
// distinct ids. Keys are the caller-supplied identity value itself (almost
// always a pointer), which Go compares by address, exactly matching the
// "identity is object address" requirement.
type RefTable struct {
	ids    map[any]int
	objs   []any
	nextID int
}

// NewRefTable creates an empty reference table.
func NewRefTable() *RefTable {
	return &RefTable{ids: make(map[any]int), nextID: 1}
}

// StoreOrGet returns the id for obj's identity, allocating the next id and
// recording obj if this is the first time this identity has been seen.
// This is the table half of the cycle-safe reference protocol (§5): the
// caller still decides whether to write the id or the full payload.
func (t *RefTable) StoreOrGet(obj any) (id int, isNew bool) {
	if id, ok := t.ids[obj]; ok {
		return id, false
	}

	id = t.nextID
	t.nextID++
	t.ids[obj] = id
	t.objs = append(t.objs, obj)

	return id, true
}

// Remember registers obj as the next id in this table, for use immediately
// after decoding a fresh ("id == 0") back-reference so later back-edges can
// resolve to the same identity (§5, §8 cyclic-graph round-trip).
func (t *RefTable) Remember(obj any) int {
	id := t.nextID
	t.nextID++
	t.objs = append(t.objs, obj)

	return id
}

// Lookup returns the object identity stored under id.
func (t *RefTable) Lookup(id int) (any, error) {
	if id < 1 || id > len(t.objs) {
		return nil, errs.InvalidRefID(id)
	}

	return t.objs[id-1], nil
}
