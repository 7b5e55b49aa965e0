// custom query
package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type SolveRecord struct {
	PuzzleId  int64   `json:"puzzle_id"`
	Username  *string `json:"username"`
	RowCount  int     `json:"rows"`
	ColCount  int     `json:"cols"`
	MineCount int     `json:"mine_count"`
	SolveMs   float64 `json:"solve_ms"`
}

type SolveRecordFilter struct {
	Username  *string
	RowCount  *int
	ColCount  *int
	MineCount *int
}

func (f SolveRecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.RowCount != nil {
		clauses = append(clauses, "row_count = @row_count")
		args["row_count"] = *f.RowCount
	}
	if f.ColCount != nil {
		clauses = append(clauses, "col_count = @col_count")
		args["col_count"] = *f.ColCount
	}
	if f.MineCount != nil {
		clauses = append(clauses, "mine_count = @mine_count")
		args["mine_count"] = *f.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) GetSolveRecords(
	ctx context.Context, filter SolveRecordFilter,
) ([]SolveRecord, error) {
	query := `
	SELECT
		puzzle_id,
		username,
		row_count,
		col_count,
		mine_count,
		solve_ms
	FROM puzzle
		LEFT OUTER JOIN player using (player_id)
	WHERE
		solved = true
		AND solve_ms IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY solve_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[SolveRecord])
}
