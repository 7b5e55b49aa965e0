package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmaxwell/sweeper/internal/keygen"
	"github.com/cmaxwell/sweeper/internal/repository"
	"github.com/cmaxwell/sweeper/internal/sweep"
)

const (
	maxRows = 50
	maxCols = 50
)

func (app *application) handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w)
		return
	}

	dto, err := ParseNewPuzzleDTO(r.Form)
	if err != nil {
		app.badRequest(w)
		return
	}
	if dto.Rows < 1 || dto.Rows > maxRows ||
		dto.Cols < 1 || dto.Cols > maxCols ||
		dto.MineCount < 0 || dto.MineCount >= dto.Rows*dto.Cols {
		app.badRequest(w)
		return
	}

	board, key, err := keygen.Generate(dto.Rows, dto.Cols, dto.MineCount, app.rnd)
	if err != nil {
		app.internalError(w, "unable to generate a puzzle", slog.Any("error", err))
		return
	}

	puzzle, err := app.repo.CreatePuzzle(r.Context(), repository.CreatePuzzleParams{
		PlayerId:  app.authenticatedPlayerId(r),
		RowCount:  dto.Rows,
		ColCount:  dto.Cols,
		MineCount: dto.MineCount,
		Board:     board,
		Key:       key,
	})
	if err != nil {
		app.internalError(w, "unable to insert puzzle", slog.Any("error", err))
		return
	}

	app.replyWith(w, newPuzzleDTO(puzzle))
}

func (app *application) fetchPuzzle(w http.ResponseWriter, r *http.Request) *repository.Puzzle {
	puzzleId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.badRequest(w)
		return nil
	}
	puzzle, err := app.repo.FetchPuzzle(r.Context(), puzzleId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			app.notFound(w)
		} else {
			app.internalError(w, "could not fetch puzzle from db", slog.Any("error", err))
		}
		return nil
	}
	return puzzle
}

func (app *application) handleFetchPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle := app.fetchPuzzle(w, r)
	if puzzle == nil {
		return
	}
	app.replyWith(w, newPuzzleDTO(puzzle))
}

func (app *application) handleSolvePuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle := app.fetchPuzzle(w, r)
	if puzzle == nil {
		return
	}

	oracle, err := keygen.NewKeyOracle(puzzle.Key)
	if err != nil {
		app.internalError(w, "stored key is invalid", slog.Any("error", err))
		return
	}

	start := time.Now()
	solution, err := sweep.Solve(puzzle.Board, puzzle.MineCount, oracle)
	if err != nil {
		app.internalError(w, "solver failed", slog.Any("error", err))
		return
	}
	solveMs := float64(time.Since(start).Microseconds()) / 1000

	solved := solution != sweep.Unsolved
	stuck := !solved
	params := repository.UpdatePuzzleParams{
		Solved:  &solved,
		Stuck:   &stuck,
		SolveMs: &solveMs,
	}
	if solved {
		params.Solution = &solution
	}

	updated, err := app.repo.UpdatePuzzle(r.Context(), puzzle.PuzzleId, params)
	if err != nil {
		app.internalError(w, "unable to update puzzle", slog.Any("error", err))
		return
	}

	app.replyWith(w, newPuzzleDTO(updated))
}
