package metadata

import "sort"

// Constructor is one named variant of a sum type, as declared in source
// order by a generated codec.
type Constructor struct {
	Name      string
	Transient bool // must never be serialized (§9); write attempts fail
}

// Constructors assigns wire indices to a sum type's variants, either in
// declaration order or, when sorted is requested at codec-generation time,
// by lexicographic name order for cross-language compatibility (§4.E). The
// two orderings are binary-incompatible with each other (§9).
type Constructors struct {
	ordered     []Constructor
	indexByName map[string]int
}

// NewConstructors builds a Constructors table from ctors in declaration
// order, re-indexing lexicographically when sorted is true.
func NewConstructors(ctors []Constructor, sorted bool) *Constructors {
	ordered := make([]Constructor, len(ctors))
	copy(ordered, ctors)

	if sorted {
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })
	}

	idx := make(map[string]int, len(ordered))
	for i, c := range ordered {
		idx[c.Name] = i
	}

	return &Constructors{ordered: ordered, indexByName: idx}
}

// IndexOf returns the wire index assigned to the constructor named name.
func (c *Constructors) IndexOf(name string) (int, bool) {
	i, ok := c.indexByName[name]

	return i, ok
}

// At returns the constructor assigned to wire index i.
func (c *Constructors) At(i int) (Constructor, bool) {
	if i < 0 || i >= len(c.ordered) {
		return Constructor{}, false
	}

	return c.ordered[i], true
}

// Len returns the number of declared constructors.
func (c *Constructors) Len() int { return len(c.ordered) }
