package keygen_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmaxwell/sweeper/internal/keygen"
	"github.com/cmaxwell/sweeper/internal/sweep"
)

func TestGenerateContract(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 0))

	for range 20 {
		board, key, err := keygen.Generate(9, 9, 10, r)
		require.NoError(t, err)
		require.NoError(t, keygen.Validate(key))

		assert.Equal(t, 10, strings.Count(key, "x"))
		assert.NotContains(t, board, "x")

		// the board is the key with every non-zero cell hidden
		boardLines := strings.Split(board, "\n")
		keyLines := strings.Split(key, "\n")
		require.Len(t, boardLines, 9)
		require.Len(t, keyLines, 9)
		for i := range keyLines {
			boardCells := strings.Split(boardLines[i], " ")
			keyCells := strings.Split(keyLines[i], " ")
			require.Len(t, boardCells, 9)
			for j, cell := range keyCells {
				if cell == "0" {
					assert.Equal(t, "0", boardCells[j])
				} else {
					assert.Equal(t, "?", boardCells[j])
				}
			}
		}
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	board1, key1, err := keygen.Generate(8, 8, 12, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	board2, key2, err := keygen.Generate(8, 8, 12, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
	assert.Equal(t, board1, board2)
}

func TestGenerateRejectsBadParameters(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))

	_, _, err := keygen.Generate(0, 5, 1, r)
	assert.Error(t, err)
	_, _, err = keygen.Generate(5, 5, -1, r)
	assert.Error(t, err)
	_, _, err = keygen.Generate(5, 5, 25, r)
	assert.Error(t, err)
}

func TestGenerateRejectsDenseBoards(t *testing.T) {
	// 8 mines on 3x3 leaves a single free cell that cannot be a zero
	_, _, err := keygen.Generate(3, 3, 8, rand.New(rand.NewPCG(1, 1)))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, keygen.Validate("1 x 1\n1 1 1\n0 0 0"))
	assert.Error(t, keygen.Validate("2 x\n1 1"), "count off by one")
	assert.Error(t, keygen.Validate("x 1\n1 1"), "no zero cell")
	assert.Error(t, keygen.Validate("1 x\n1"), "ragged rows")
	assert.Error(t, keygen.Validate(""), "empty key")
}

func TestKeyOracle(t *testing.T) {
	oracle, err := keygen.NewKeyOracle("1 x 1\n1 1 1\n0 0 0")
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.MineCount())

	count, err := oracle.Reveal(sweep.Position{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = oracle.Reveal(sweep.Position{Row: 0, Col: 1})
	assert.Error(t, err, "mine")
	_, err = oracle.Reveal(sweep.Position{Row: 3, Col: 0})
	assert.Error(t, err, "out of bounds")
}

// Generated puzzles fed through the solver must never blow up: every
// run ends Solved or Stuck, and a Solved board reproduces its key.
func TestGeneratedPuzzlesSolveSoundly(t *testing.T) {
	r := rand.New(rand.NewPCG(2026, 8))

	solved := 0
	for range 50 {
		board, key, err := keygen.Generate(9, 9, 10, r)
		require.NoError(t, err)

		oracle, err := keygen.NewKeyOracle(key)
		require.NoError(t, err)

		solution, err := sweep.Solve(board, oracle.MineCount(), oracle)
		require.NoError(t, err, "board:\n%s\nkey:\n%s", board, key)

		if solution != sweep.Unsolved {
			assert.Equal(t, key, solution)
			solved++
		}
	}
	// most sparse 9x9 boards are solvable without guessing
	assert.NotZero(t, solved)
}
