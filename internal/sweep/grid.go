package sweep

import (
	"fmt"
	"strings"
)

// Grid is the rectangular board model. Cells move Hidden → Revealed or
// Hidden → Flagged exactly once; there is no transition back.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// ParseGrid reads the text board format: rows separated by newlines,
// cells by single spaces, tokens 0-8 for revealed counts, ? for hidden
// cells and x for flagged mines.
func ParseGrid(board string) (*Grid, error) {
	if board == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedBoard)
	}
	lines := strings.Split(strings.TrimSuffix(board, "\n"), "\n")
	g := &Grid{rows: len(lines)}
	for r, line := range lines {
		tokens := strings.Split(line, " ")
		if r == 0 {
			g.cols = len(tokens)
		} else if len(tokens) != g.cols {
			return nil, fmt.Errorf(
				"%w: row %d has %d cells, want %d",
				ErrMalformedBoard, r, len(tokens), g.cols,
			)
		}
		for _, token := range tokens {
			cell, err := parseCell(token)
			if err != nil {
				return nil, err
			}
			g.cells = append(g.cells, cell)
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(p Position) bool {
	return 0 <= p.Row && p.Row < g.rows && 0 <= p.Col && p.Col < g.cols
}

func (g *Grid) At(p Position) Cell {
	return g.cells[p.Row*g.cols+p.Col]
}

// Neighbors returns the up to 8 adjacent positions in row-major order.
func (g *Grid) Neighbors(p Position) []Position {
	var (
		fromRow, toRow = max(0, p.Row-1), min(p.Row+1, g.rows-1)
		fromCol, toCol = max(0, p.Col-1), min(p.Col+1, g.cols-1)
		neighbors      = make([]Position, 0, 8)
	)
	for r := fromRow; r <= toRow; r++ {
		for c := fromCol; c <= toCol; c++ {
			if q := (Position{r, c}); q != p {
				neighbors = append(neighbors, q)
			}
		}
	}
	return neighbors
}

func (g *Grid) SetRevealed(p Position, count int) error {
	if cell := g.At(p); cell.Kind != Hidden {
		return assertionf("cannot reveal %s: cell is already resolved", p)
	}
	if count < 0 || count > 8 {
		return assertionf("cannot reveal %s: count %d out of range", p, count)
	}
	g.cells[p.Row*g.cols+p.Col] = Cell{Kind: Revealed, Count: count}
	return nil
}

func (g *Grid) SetFlagged(p Position) error {
	if cell := g.At(p); cell.Kind != Hidden {
		return assertionf("cannot flag %s: cell is already resolved", p)
	}
	g.cells[p.Row*g.cols+p.Col] = Cell{Kind: Flagged}
	return nil
}

func (g *Grid) positions(kind CellKind) []Position {
	var out []Position
	for i, cell := range g.cells {
		if cell.Kind == kind {
			out = append(out, Position{i / g.cols, i % g.cols})
		}
	}
	return out
}

func (g *Grid) HiddenPositions() []Position   { return g.positions(Hidden) }
func (g *Grid) RevealedPositions() []Position { return g.positions(Revealed) }

func (g *Grid) FlaggedCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell.Kind == Flagged {
			count++
		}
	}
	return count
}

func (g *Grid) HiddenCount() int {
	count := 0
	for _, cell := range g.cells {
		if cell.Kind == Hidden {
			count++
		}
	}
	return count
}

// String renders the grid back into the text board format.
func (g *Grid) String() string {
	var b strings.Builder
	for i, cell := range g.cells {
		if i > 0 {
			if i%g.cols == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(cell.token())
	}
	return b.String()
}
