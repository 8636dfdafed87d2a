package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvarsen/evolve/chunk"
	"github.com/halvarsen/evolve/endian"
	"github.com/halvarsen/evolve/metadata"
	"github.com/halvarsen/evolve/session"
	"github.com/halvarsen/evolve/wire"
)

func pointMetadata(t *testing.T) *metadata.Metadata {
	t.Helper()
	m, err := metadata.New("Point", []string{"x", "y"}, []metadata.Step{
		metadata.Initial(),
		metadata.FieldAdded("x"),
		metadata.FieldRemoved("z"),
	})
	require.NoError(t, err)

	return m
}

func TestWriter_PointScenario_MatchesSpecBytes(t *testing.T) {
	// spec §8.1 literal expected bytes for Point{x:1,y:-10}.
	engine := endian.GetBigEndianEngine()
	meta := pointMetadata(t)
	sess := session.New()

	w := chunk.NewWriter(meta, sess, engine)

	yw := w.FieldWriter("y")
	yw.WriteUint32(uint32(int32(-10))) //nolint:gosec
	w.RecordFieldPosition("y")

	xw := w.FieldWriter("x")
	xw.WriteUint32(1)
	w.RecordFieldPosition("x")

	out, err := w.Finish(nil)
	require.NoError(t, err)

	want := []byte{0x02, 0x08, 0x08, 0x03, 0x02, 0x7a, 0xff, 0xff, 0xff, 0xf6, 0x00, 0x00, 0x00, 0x01}
	assert.Equal(t, want, out)
}

func TestWriterReader_PointScenario_RoundTrips(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	meta := pointMetadata(t)

	w := chunk.NewWriter(meta, session.New(), engine)
	w.FieldWriter("y").WriteUint32(uint32(int32(-10))) //nolint:gosec
	w.RecordFieldPosition("y")
	w.FieldWriter("x").WriteUint32(1)
	w.RecordFieldPosition("x")

	out, err := w.Finish(nil)
	require.NoError(t, err)

	r := wire.NewReader(out, engine)
	cr, err := chunk.NewReader(session.New(), r, engine)
	require.NoError(t, err)

	assert.Equal(t, 2, cr.StoredVersion())

	yRegion, ok := cr.RegionReader(meta.FieldGeneration("y"))
	require.True(t, ok)
	y, err := yRegion.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, int32(-10), int32(y)) //nolint:gosec

	xRegion, ok := cr.RegionReader(meta.FieldGeneration("x"))
	require.True(t, ok)
	x, err := xRegion.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), x)

	assert.True(t, cr.IsRemoved("z"))
}

func TestWriter_VersionZero_SkipsHeader(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	meta, err := metadata.New("Unit", []string{"a"}, []metadata.Step{metadata.Initial()})
	require.NoError(t, err)

	w := chunk.NewWriter(meta, session.New(), engine)
	w.FieldWriter("a").WriteUint32(7)
	w.RecordFieldPosition("a")

	out, err := w.Finish(nil)
	require.NoError(t, err)

	// stored version byte 0, then raw payload, no header entries at all.
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x07}, out)
}

func TestMadeOptional_PositionCorrelation(t *testing.T) {
	// A record that added field "a" then made it optional one generation
	// later; an old writer (at version 1, before the optional promotion)
	// wrote "a" as a plain required value. A reader whose own metadata
	// already knows "a" as optional must still read it correctly.
	engine := endian.GetBigEndianEngine()

	oldMeta, err := metadata.New("Rec", []string{"a"}, []metadata.Step{
		metadata.Initial(),
		metadata.FieldAdded("a"),
	})
	require.NoError(t, err)

	w := chunk.NewWriter(oldMeta, session.New(), engine)
	w.FieldWriter("a").WriteUint32(42)
	w.RecordFieldPosition("a")
	out, err := w.Finish(nil)
	require.NoError(t, err)

	newMeta, err := metadata.New("Rec", []string{"a"}, []metadata.Step{
		metadata.Initial(),
		metadata.FieldAdded("a"),
		metadata.FieldMadeOptional("a"),
	})
	require.NoError(t, err)

	r := wire.NewReader(out, engine)
	cr, err := chunk.NewReader(session.New(), r, engine)
	require.NoError(t, err)

	// The new reader's own storedVersion (from this particular stream) is
	// 1, which predates generation 2 where "a" became optional, so no
	// FIELD_MADE_OPTIONAL entry is present and reading it as an optional
	// wraps the raw value directly rather than expecting a presence byte.
	assert.Equal(t, 1, cr.StoredVersion())

	chunkIdx := newMeta.FieldGeneration("a")
	region, ok := cr.RegionReader(chunkIdx)
	require.True(t, ok)

	pos := cr.NextPosition(chunkIdx)
	assert.False(t, cr.WasMadeOptionalAt(pos))

	v, err := region.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v)
}
