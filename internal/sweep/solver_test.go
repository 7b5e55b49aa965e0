package sweep_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmaxwell/sweeper/internal/keygen"
	"github.com/cmaxwell/sweeper/internal/sweep"
)

// recordingOracle wraps a key-backed oracle and fails the test if the
// solver ever asks about the same cell twice.
type recordingOracle struct {
	t     *testing.T
	inner *keygen.KeyOracle
	seen  map[sweep.Position]bool
}

func newRecordingOracle(t *testing.T, key string) *recordingOracle {
	t.Helper()
	inner, err := keygen.NewKeyOracle(key)
	require.NoError(t, err)
	return &recordingOracle{t: t, inner: inner, seen: make(map[sweep.Position]bool)}
}

func (o *recordingOracle) Reveal(p sweep.Position) (int, error) {
	if o.seen[p] {
		o.t.Errorf("oracle asked about %s twice", p)
	}
	o.seen[p] = true
	return o.inner.Reveal(p)
}

func TestSolveCascade(t *testing.T) {
	key := "1 x 1\n1 1 1\n0 0 0"
	oracle := newRecordingOracle(t, key)

	solution, err := sweep.Solve("? ? ?\n? ? ?\n0 0 0", 1, oracle)
	require.NoError(t, err)
	assert.Equal(t, key, solution)
}

func TestSolveSubsetDeduction(t *testing.T) {
	// {(0,0),(0,1)}:1 sits inside {(0,0),(0,1),(0,2)}:2, which pins a
	// mine on (0,2) and unravels the rest.
	key := "x 2 x 1\n1 2 1 1"
	oracle := newRecordingOracle(t, key)

	solution, err := sweep.Solve("? ? ? ?\n1 2 1 1", 2, oracle)
	require.NoError(t, err)
	assert.Equal(t, key, solution)
}

func TestSolveOverlapDeduction(t *testing.T) {
	// The hints under (0,0)..(0,3) give a 1-count and a 2-count zone
	// overlapping in two cells; the overlap is forced to exactly one
	// mine, clearing (0,0) and flagging (0,3).
	key := "1 x 2 x\n1 1 2 1"
	oracle := newRecordingOracle(t, key)

	solution, err := sweep.Solve("? ? ? ?\n1 1 2 1", 2, oracle)
	require.NoError(t, err)
	assert.Equal(t, key, solution)
}

func TestSolveStuckOnCoinFlip(t *testing.T) {
	// two hints describing the same two cells: a pure 50/50
	oracle := newRecordingOracle(t, "x 1\n1 1")

	solution, err := sweep.Solve("? ?\n1 1", 1, oracle)
	require.NoError(t, err)
	assert.Equal(t, sweep.Unsolved, solution)
}

func TestSolveZeroMines(t *testing.T) {
	oracle := newRecordingOracle(t, "0 0\n0 0")

	solution, err := sweep.Solve("? ?\n? ?", 0, oracle)
	require.NoError(t, err)
	assert.Equal(t, "0 0\n0 0", solution)
}

type failingOracle struct{}

func (failingOracle) Reveal(p sweep.Position) (int, error) {
	return 0, fmt.Errorf("unexpected reveal at %s", p)
}

func TestSolveAllMinesWithoutOracle(t *testing.T) {
	// as many mines as cells: everything is flagged by the global
	// count alone and the oracle is never consulted
	solution, err := sweep.Solve("? ?\n? ?", 4, failingOracle{})
	require.NoError(t, err)
	assert.Equal(t, "x x\nx x", solution)
}

func TestSolveResolvedBoardIsANoop(t *testing.T) {
	board := "x 1\n1 1"
	solution, err := sweep.Solve(board, 1, failingOracle{})
	require.NoError(t, err)
	assert.Equal(t, board, solution)
}

func TestSolveRejectsMalformedInput(t *testing.T) {
	for name, tc := range map[string]struct {
		board string
		mines int
	}{
		"empty":            {"", 0},
		"ragged rows":      {"1 2\n3", 1},
		"unknown token":    {"9 ?", 1},
		"multichar token":  {"10 ?", 1},
		"negative mines":   {"? ?", -1},
		"too many mines":   {"? ?", 3},
		"too many flags":   {"x x", 1},
		"double space":     {"1  ?", 1},
		"resolved but short of mines": {"1 1", 1},
		"more mines than hidden":      {"1 ?", 2},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := sweep.Solve(tc.board, tc.mines, failingOracle{})
			assert.ErrorIs(t, err, sweep.ErrMalformedBoard)
		})
	}
}

func TestSolverProgressReportsRounds(t *testing.T) {
	oracle := newRecordingOracle(t, "1 x 1\n1 1 1\n0 0 0")
	s, err := sweep.NewSolver("? ? ?\n? ? ?\n0 0 0", 1, oracle)
	require.NoError(t, err)

	var rounds []int
	s.Progress = func(round int, grid *sweep.Grid) {
		rounds = append(rounds, round)
		require.NotNil(t, grid)
	}

	state, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, sweep.Solved, state)
	assert.NotEmpty(t, rounds)
	assert.IsIncreasing(t, rounds)
}

func TestSolveErrorsAreAssertions(t *testing.T) {
	// a board whose hints contradict each other outright: the two
	// hints describe the same two hidden cells with different counts
	oracle := newRecordingOracle(t, "x x\n1 2")

	_, err := sweep.Solve("? ?\n1 2", 2, oracle)
	var assertion sweep.AssertionError
	require.ErrorAs(t, err, &assertion)
}

func TestSolveNeverRevealsAMine(t *testing.T) {
	// the mine sits in one of two indistinguishable cells: the solver
	// must open the safe area, then stop instead of guessing into the
	// oracle
	oracle := newRecordingOracle(t, "x 1 0\n1 1 0")

	solution, err := sweep.Solve("? ? 0\n? ? 0", 1, oracle)
	require.NoError(t, err)
	assert.Equal(t, sweep.Unsolved, solution)

	for p := range oracle.seen {
		if _, revealErr := oracle.inner.Reveal(p); revealErr != nil {
			t.Errorf("solver revealed %s: %v", p, revealErr)
		}
	}
}

func TestAssertionErrorIsNotMalformedBoard(t *testing.T) {
	_, err := sweep.Solve("? ?\n1 2", 2, newRecordingOracle(t, "x x\n1 2"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, sweep.ErrMalformedBoard))
}
