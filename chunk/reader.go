package chunk

import (
	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/evolution"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

// Reader pre-scans the evolution header and establishes per-generation
// input regions (§4.F), so the ADT driver can route field reads to the
// generation each field belongs to.
type Reader struct {
	storedVersion int
	direct        bool

	regions        map[int]*wire.Reader
	madeOptionalAt map[metadata.FieldPosition]struct{}
	removedFields  map[string]struct{}
	lastIndex      map[int]int
}

// NewReader reads the stored-version byte from r, then either operates
// directly on the remaining input (version 0) or reads storedVersion+1
// evolution-header entries and carves per-generation sub-regions of the
// remaining input (§4.F).
func NewReader(sess *session.Session, r *wire.Reader, engine endian.EndianEngine) (*Reader, error) {
	versionByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	cr := &Reader{storedVersion: int(versionByte), lastIndex: make(map[int]int)}

	if cr.storedVersion == 0 {
		cr.direct = true
		cr.regions = map[int]*wire.Reader{0: r}

		return cr, nil
	}

	cr.regions = make(map[int]*wire.Reader)
	cr.madeOptionalAt = make(map[metadata.FieldPosition]struct{})
	cr.removedFields = make(map[string]struct{})

	for gen := 0; gen <= cr.storedVersion; gen++ {
		entry, err := evolution.ReadEntry(r, sess)
		if err != nil {
			return nil, err
		}

		switch entry.Kind {
		case evolution.KindFieldAddedToNewChunk:
			region, err := r.ReadBytes(entry.Size)
			if err != nil {
				return nil, err
			}
			cr.regions[gen] = wire.NewReader(region, engine)
		case evolution.KindFieldMadeOptional:
			cr.madeOptionalAt[entry.Position] = struct{}{}
		case evolution.KindFieldRemoved:
			cr.removedFields[entry.Name] = struct{}{}
		case evolution.KindUnknown:
			// no region, no annotation
		}
	}

	return cr, nil
}

// StoredVersion returns the one-byte version prefix the writer emitted.
func (cr *Reader) StoredVersion() int { return cr.storedVersion }

// IsRemoved reports whether the writer's own evolution history recorded
// name as removed (a FIELD_REMOVED entry appeared at or before
// storedVersion).
func (cr *Reader) IsRemoved(name string) bool {
	_, ok := cr.removedFields[name]

	return ok
}

// RegionReader returns the wire.Reader backing chunk, or ok=false when this
// stream carries no such generation (corrupt header, or a driver routing
// bug — §7 DeserializingNonExistingChunk).
func (cr *Reader) RegionReader(chunkIdx int) (*wire.Reader, bool) {
	r, ok := cr.regions[chunkIdx]

	return r, ok
}

// NextPosition advances and returns the caller's next FieldPosition within
// chunkIdx, for correlating against the parsed FIELD_MADE_OPTIONAL header
// entries (§4.G step 5).
func (cr *Reader) NextPosition(chunkIdx int) metadata.FieldPosition {
	cr.lastIndex[chunkIdx]++

	return metadata.FieldPosition{Chunk: chunkIdx, Position: cr.lastIndex[chunkIdx]}
}

// WasMadeOptionalAt reports whether pos was flagged FIELD_MADE_OPTIONAL
// somewhere in the parsed header, meaning the writer prefixed this exact
// wire position with a presence boolean.
func (cr *Reader) WasMadeOptionalAt(pos metadata.FieldPosition) bool {
	if cr.madeOptionalAt == nil {
		return false
	}
	_, ok := cr.madeOptionalAt[pos]

	return ok
}
