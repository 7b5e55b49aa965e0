package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneStoreDedupe(t *testing.T) {
	zs := NewZoneStore()

	added, err := zs.Add([]Position{{0, 0}, {0, 1}}, 1)
	require.NoError(t, err)
	assert.True(t, added)

	// same member set in a different order is the same fact
	added, err = zs.Add([]Position{{0, 1}, {0, 0}}, 1)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, zs.Len())
}

func TestZoneStoreConflict(t *testing.T) {
	zs := NewZoneStore()

	_, err := zs.Add([]Position{{0, 0}, {0, 1}}, 1)
	require.NoError(t, err)

	_, err = zs.Add([]Position{{0, 0}, {0, 1}}, 2)
	var assertion AssertionError
	require.ErrorAs(t, err, &assertion)
}

func TestZoneStoreRejectsImpossibleCounts(t *testing.T) {
	zs := NewZoneStore()

	_, err := zs.Add([]Position{{0, 0}}, 2)
	var assertion AssertionError
	assert.ErrorAs(t, err, &assertion)

	_, err = zs.Add([]Position{{0, 0}}, -1)
	assert.ErrorAs(t, err, &assertion)
}

func TestZoneStoreResolve(t *testing.T) {
	zs := NewZoneStore()

	_, err := zs.Add([]Position{{0, 0}, {0, 1}, {0, 2}}, 2)
	require.NoError(t, err)

	// a flagged member shrinks the zone and its count
	require.NoError(t, zs.Resolve(Position{0, 0}, true))
	z, ok := zs.Lookup([]Position{{0, 1}, {0, 2}})
	require.True(t, ok)
	assert.Equal(t, 1, z.Mines())

	// a safely revealed member shrinks only the zone
	require.NoError(t, zs.Resolve(Position{0, 1}, false))
	z, ok = zs.Lookup([]Position{{0, 2}})
	require.True(t, ok)
	assert.Equal(t, 1, z.Mines())

	// the last member resolved as a mine empties the zone entirely
	require.NoError(t, zs.Resolve(Position{0, 2}, true))
	assert.Equal(t, 0, zs.Len())
}

func TestCombineSubset(t *testing.T) {
	zs := NewZoneStore()

	_, err := zs.Add([]Position{{0, 0}, {0, 1}}, 1)
	require.NoError(t, err)
	_, err = zs.Add([]Position{{0, 0}, {0, 1}, {0, 2}}, 1)
	require.NoError(t, err)

	zones := zs.snapshot()
	grew, err := zs.combine(zones[0], zones[1])
	require.NoError(t, err)
	assert.True(t, grew)

	z, ok := zs.Lookup([]Position{{0, 2}})
	require.True(t, ok)
	assert.Equal(t, 0, z.Mines())
}

func TestCombineOverlapPin(t *testing.T) {
	zs := NewZoneStore()

	// A = {a,b,e1} with 1 mine, B = {a,b,e2} with 2 mines: the overlap
	// is forced to exactly 1, so e1 is safe and e2 is a mine.
	_, err := zs.Add([]Position{{0, 0}, {0, 1}, {0, 2}}, 1)
	require.NoError(t, err)
	_, err = zs.Add([]Position{{0, 1}, {0, 2}, {0, 3}}, 2)
	require.NoError(t, err)

	zones := zs.snapshot()
	grew, err := zs.combine(zones[0], zones[1])
	require.NoError(t, err)
	assert.True(t, grew)

	shared, ok := zs.Lookup([]Position{{0, 1}, {0, 2}})
	require.True(t, ok)
	assert.Equal(t, 1, shared.Mines())

	safe, ok := zs.Lookup([]Position{{0, 0}})
	require.True(t, ok)
	assert.Equal(t, 0, safe.Mines())

	mined, ok := zs.Lookup([]Position{{0, 3}})
	require.True(t, ok)
	assert.Equal(t, 1, mined.Mines())
}

func TestCombineLooseOverlapDerivesNothing(t *testing.T) {
	zs := NewZoneStore()

	// both constraints allow the overlap to hold 0 or 1 mines
	_, err := zs.Add([]Position{{0, 0}, {0, 1}}, 1)
	require.NoError(t, err)
	_, err = zs.Add([]Position{{0, 1}, {0, 2}}, 1)
	require.NoError(t, err)

	zones := zs.snapshot()
	grew, err := zs.combine(zones[0], zones[1])
	require.NoError(t, err)
	assert.False(t, grew)
	assert.Equal(t, 2, zs.Len())
}

func TestRefineZonesRejectsSafeAndMinedConflict(t *testing.T) {
	s, err := NewSolver("? ?\n? ?", 2, mapOracle{})
	require.NoError(t, err)

	// (0,0) provably safe by one zone and provably mined by another
	_, err = s.zones.Add([]Position{{0, 0}, {0, 1}}, 0)
	require.NoError(t, err)
	_, err = s.zones.Add([]Position{{0, 0}, {1, 0}}, 2)
	require.NoError(t, err)

	_, err = s.refineZones()
	var assertion AssertionError
	require.ErrorAs(t, err, &assertion)
}

func TestCombineDisjointDerivesNothing(t *testing.T) {
	zs := NewZoneStore()

	_, err := zs.Add([]Position{{0, 0}}, 1)
	require.NoError(t, err)
	_, err = zs.Add([]Position{{5, 5}}, 0)
	require.NoError(t, err)

	zones := zs.snapshot()
	grew, err := zs.combine(zones[0], zones[1])
	require.NoError(t, err)
	assert.False(t, grew)
}
