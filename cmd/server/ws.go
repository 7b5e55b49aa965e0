package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cmaxwell/sweeper/internal/keygen"
	"github.com/cmaxwell/sweeper/internal/repository"
	"github.com/cmaxwell/sweeper/internal/sweep"
)

type liveUpdate struct {
	Round int    `json:"round"`
	Board string `json:"board"`
}

type liveResult struct {
	State   string  `json:"state"`
	Board   string  `json:"board"`
	SolveMs float64 `json:"solve_ms"`
	Error   string  `json:"error,omitempty"`
}

// handleLiveSolve streams the deduction round by round over a
// websocket, then persists the outcome like the plain solve endpoint.
func (app *application) handleLiveSolve(w http.ResponseWriter, r *http.Request) {
	puzzle := app.fetchPuzzle(w, r)
	if puzzle == nil {
		return
	}

	oracle, err := keygen.NewKeyOracle(puzzle.Key)
	if err != nil {
		app.internalError(w, "stored key is invalid", slog.Any("error", err))
		return
	}

	solver, err := sweep.NewSolver(puzzle.Board, puzzle.MineCount, oracle)
	if err != nil {
		app.internalError(w, "stored board is invalid", slog.Any("error", err))
		return
	}

	conn, err := app.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		app.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	app.logger.Debug("established WS connection")

	solver.Progress = func(round int, grid *sweep.Grid) {
		err := conn.WriteJSON(liveUpdate{Round: round, Board: grid.String()})
		if err != nil {
			app.logger.Warn("unable to stream solver round", slog.Any("error", err))
		}
	}

	start := time.Now()
	state, solveErr := solver.Run()
	solveMs := float64(time.Since(start).Microseconds()) / 1000

	result := liveResult{
		State:   state.String(),
		Board:   solver.Grid().String(),
		SolveMs: solveMs,
	}
	if solveErr != nil {
		result.Error = solveErr.Error()
	} else {
		solved := state == sweep.Solved
		stuck := state == sweep.Stuck
		params := repository.UpdatePuzzleParams{
			Solved:  &solved,
			Stuck:   &stuck,
			SolveMs: &solveMs,
		}
		if solved {
			solution := solver.Grid().String()
			params.Solution = &solution
		}
		if _, err := app.repo.UpdatePuzzle(r.Context(), puzzle.PuzzleId, params); err != nil {
			app.logger.Error("unable to update puzzle", slog.Any("error", err))
		}
	}

	if err := conn.WriteJSON(result); err != nil {
		app.logger.Warn("unable to send solver result", slog.Any("error", err))
		return
	}
	conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}
