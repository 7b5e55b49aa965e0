package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Puzzle is one generated board together with its answer key and the
// outcome of the latest deduction run. Key never leaves the server.
type Puzzle struct {
	PuzzleId  int64
	PlayerId  *int64
	RowCount  int
	ColCount  int
	MineCount int
	Board     string
	Key       string
	Solved    bool
	Stuck     bool
	Solution  *string
	SolveMs   *float64
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type CreatePuzzleParams struct {
	PlayerId  *int64
	RowCount  int
	ColCount  int
	MineCount int
	Board     string
	Key       string
}

func (q *Queries) CreatePuzzle(
	ctx context.Context, params CreatePuzzleParams,
) (*Puzzle, error) {
	args := pgx.NamedArgs{
		"row_count":  params.RowCount,
		"col_count":  params.ColCount,
		"mine_count": params.MineCount,
		"board":      params.Board,
		"key":        params.Key,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	} else {
		args["player_id"] = nil
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle (
			player_id, row_count, col_count, mine_count, board, key
		)
		VALUES (
			@player_id, @row_count, @col_count, @mine_count, @board, @key
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

func (q *Queries) FetchPuzzle(ctx context.Context, puzzleId int64) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM puzzle WHERE puzzle_id = $1", puzzleId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

type UpdatePuzzleParams struct {
	Solved   *bool
	Stuck    *bool
	Solution *string
	SolveMs  *float64
}

func (p UpdatePuzzleParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Solved != nil {
		parts = append(parts, "solved = @solved")
		args["solved"] = *p.Solved
	}
	if p.Stuck != nil {
		parts = append(parts, "stuck = @stuck")
		args["stuck"] = *p.Stuck
	}
	if p.Solution != nil {
		parts = append(parts, "solution = @solution")
		args["solution"] = *p.Solution
	}
	if p.SolveMs != nil {
		parts = append(parts, "solve_ms = @solve_ms")
		args["solve_ms"] = *p.SolveMs
	}
	parts = append(parts, "updated_at = now()")

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdatePuzzle(
	ctx context.Context, puzzleId int64, params UpdatePuzzleParams,
) (*Puzzle, error) {
	setClause, args := params.SetClause()
	args["puzzle_id"] = puzzleId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE puzzle SET "+setClause+" WHERE puzzle_id = @puzzle_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}
