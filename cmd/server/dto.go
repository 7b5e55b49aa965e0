package main

import (
	"github.com/gorilla/schema"

	"github.com/cmaxwell/sweeper/internal/repository"
)

type NewPuzzleDTO struct {
	Rows      int `schema:"rows,required"`
	Cols      int `schema:"cols,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseNewPuzzleDTO(src map[string][]string) (NewPuzzleDTO, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto NewPuzzleDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type RecordsDTO struct {
	Username  *string `schema:"username"`
	Rows      *int    `schema:"rows"`
	Cols      *int    `schema:"cols"`
	MineCount *int    `schema:"mine_count"`
}

func ParseRecordsDTO(src map[string][]string) (RecordsDTO, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto RecordsDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

// PuzzleDTO is the client view of a puzzle. The answer key stays on
// the server.
type PuzzleDTO struct {
	PuzzleId  int64    `json:"puzzle_id"`
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	MineCount int      `json:"mine_count"`
	Board     string   `json:"board"`
	Solved    bool     `json:"solved"`
	Stuck     bool     `json:"stuck"`
	Solution  *string  `json:"solution,omitempty"`
	SolveMs   *float64 `json:"solve_ms,omitempty"`
}

func newPuzzleDTO(p *repository.Puzzle) PuzzleDTO {
	return PuzzleDTO{
		PuzzleId:  p.PuzzleId,
		Rows:      p.RowCount,
		Cols:      p.ColCount,
		MineCount: p.MineCount,
		Board:     p.Board,
		Solved:    p.Solved,
		Stuck:     p.Stuck,
		Solution:  p.Solution,
		SolveMs:   p.SolveMs,
	}
}
