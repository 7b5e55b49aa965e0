package sweep

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapOracle answers from a fixed count table; mines are simply absent.
type mapOracle map[Position]int

func (o mapOracle) Reveal(p Position) (int, error) {
	count, ok := o[p]
	if !ok {
		return 0, fmt.Errorf("revealed a mine at %s", p)
	}
	return count, nil
}

func TestSaturationSolvesLocalBoard(t *testing.T) {
	// One mine at (2,0); everything follows from the local rules and
	// the final mine-count argument. The zone store stays untouched.
	s, err := NewSolver("0 0 0\n? ? 0\n? ? 0", 1, mapOracle{
		{1, 0}: 1, {1, 1}: 1, {2, 1}: 1,
	})
	require.NoError(t, err)

	changed, err := s.saturate()
	require.NoError(t, err)
	assert.True(t, changed)

	done, err := s.closeOut()
	require.NoError(t, err)
	assert.True(t, done)

	assert.Equal(t, "0 0 0\n1 1 0\nx 1 0", s.grid.String())
	assert.Zero(t, s.zones.Len())
}

func TestSaturationIsIdempotent(t *testing.T) {
	s, err := NewSolver("0 0 0\n? ? 0\n? ? 0", 1, mapOracle{
		{1, 0}: 1, {1, 1}: 1, {2, 1}: 1,
	})
	require.NoError(t, err)

	changed, err := s.saturate()
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.saturate()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSaturationCascadesLargeZeroArea(t *testing.T) {
	// 1x6 strip: the zero at the far end cascades along the row and
	// the single hint pins the mine.
	s, err := NewSolver("? ? ? ? ? 0", 1, mapOracle{
		{0, 1}: 1, {0, 2}: 0, {0, 3}: 0, {0, 4}: 0, {0, 5}: 0,
	})
	require.NoError(t, err)

	state, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, Solved, state)
	assert.Equal(t, "x 1 0 0 0 0", s.grid.String())
}

func TestSaturationRejectsOverFlaggedHint(t *testing.T) {
	// hint 1 with two flagged neighbors and a hidden one left
	s, err := NewSolver("x 1 x\n? ? ?", 3, mapOracle{})
	require.NoError(t, err)

	_, err = s.saturate()
	var assertion AssertionError
	require.ErrorAs(t, err, &assertion)
}

func TestOracleFailureAborts(t *testing.T) {
	// the open rule fires on a cell the oracle refuses to answer
	s, err := NewSolver("0 ?", 0, mapOracle{})
	require.NoError(t, err)

	state, err := s.Run()
	require.Error(t, err)
	assert.Equal(t, Running, state)
}
