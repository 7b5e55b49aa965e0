// Package sweep deduces minesweeper boards by pure logic: local
// saturation of revealed hints, exact mine-count zones combined by set
// algebra, and a global mine-count argument. It never guesses; a board
// it cannot finish comes back with the "?" sentinel.
package sweep

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

// State of a solver run.
type State int8

const (
	Running State = iota
	Solved
	Stuck
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Solved:
		return "solved"
	case Stuck:
		return "stuck"
	default:
		return fmt.Sprintf("State(%d)", int8(s))
	}
}

// Unsolved is what Solve returns for a board that cannot be finished
// without guessing.
const Unsolved = "?"

// Solver drives one board from its starting position to a terminal
// state, asking the oracle only about cells it has proven safe.
type Solver struct {
	grid       *Grid
	oracle     Oracle
	totalMines int
	flagged    int
	zones      *ZoneStore
	queue      deque.Deque[Position]

	// Progress, when set, runs after every round that changed the
	// grid.
	Progress func(round int, grid *Grid)
}

func NewSolver(board string, totalMines int, oracle Oracle) (*Solver, error) {
	grid, err := ParseGrid(board)
	if err != nil {
		return nil, err
	}
	if totalMines < 0 || totalMines > grid.Rows()*grid.Cols() {
		return nil, fmt.Errorf(
			"%w: %d mines on a %dx%d board",
			ErrMalformedBoard, totalMines, grid.Rows(), grid.Cols(),
		)
	}
	if flagged := grid.FlaggedCount(); flagged > totalMines {
		return nil, fmt.Errorf(
			"%w: %d cells pre-flagged but only %d mines",
			ErrMalformedBoard, flagged, totalMines,
		)
	} else if totalMines-flagged > grid.HiddenCount() {
		return nil, fmt.Errorf(
			"%w: %d mines unaccounted for but only %d hidden cells",
			ErrMalformedBoard, totalMines-flagged, grid.HiddenCount(),
		)
	}
	return &Solver{
		grid:       grid,
		oracle:     oracle,
		totalMines: totalMines,
		flagged:    grid.FlaggedCount(),
		zones:      NewZoneStore(),
	}, nil
}

func (s *Solver) Grid() *Grid { return s.grid }

// Run works the board to a terminal state. Each round saturates the
// local rules, checks whether the global mine count settles the rest,
// and otherwise rebuilds and refines the zone store; any change to the
// grid starts the next round. A round that changes nothing means no
// further deduction exists and the run ends Stuck. On error the
// returned state is Running: the run was aborted, not finished.
func (s *Solver) Run() (State, error) {
	for round := 1; ; round++ {
		changed, err := s.saturate()
		if err != nil {
			return Running, err
		}

		done, err := s.closeOut()
		if err != nil {
			return Running, err
		}
		if done {
			s.report(round)
			return Solved, nil
		}
		if changed {
			s.report(round)
			continue
		}

		if err := s.buildZones(); err != nil {
			return Running, err
		}
		refined, err := s.refineZones()
		if err != nil {
			return Running, err
		}
		if !refined {
			return Stuck, nil
		}
		s.report(round)
	}
}

// closeOut finishes the board once the global mine count determines
// every remaining cell: all mines flagged means the rest is safe to
// reveal, and as many hidden cells left as missing mines means they
// are all mines.
func (s *Solver) closeOut() (bool, error) {
	hidden := s.grid.HiddenPositions()
	if len(hidden) == 0 {
		if s.flagged != s.totalMines {
			return false, assertionf(
				"board resolved with %d of %d mines flagged",
				s.flagged, s.totalMines,
			)
		}
		return true, nil
	}
	if s.flagged == s.totalMines {
		for _, p := range hidden {
			if s.grid.At(p).Kind != Hidden {
				continue
			}
			if err := s.open(p); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	if s.totalMines-s.flagged == len(hidden) {
		for _, p := range hidden {
			if err := s.flag(p); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}

func (s *Solver) report(round int) {
	Log.WithFields(logrus.Fields{
		"round":   round,
		"hidden":  s.grid.HiddenCount(),
		"flagged": s.flagged,
		"zones":   s.zones.Len(),
	}).Debug("round complete")
	if s.Progress != nil {
		s.Progress(round, s.grid)
	}
}

// Solve runs the engine over a board with the given total mine count.
// It returns the fully resolved board in the same text format, or
// Unsolved when finishing the board would require a guess.
func Solve(board string, totalMines int, oracle Oracle) (string, error) {
	s, err := NewSolver(board, totalMines, oracle)
	if err != nil {
		return "", err
	}
	state, err := s.Run()
	if err != nil {
		return "", err
	}
	if state != Solved {
		return Unsolved, nil
	}
	return s.grid.String(), nil
}
