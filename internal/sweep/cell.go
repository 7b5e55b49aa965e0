package sweep

import (
	"fmt"
	"strconv"
)

// Position addresses a board cell; (0,0) is the top-left corner.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func positionCmp(a, b Position) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

type CellKind int8

const (
	Hidden CellKind = iota
	Revealed
	Flagged
)

// Cell is everything known about one position. Count is only
// meaningful once Kind is Revealed and never changes afterwards.
type Cell struct {
	Kind  CellKind
	Count int
}

const (
	tokenHidden = "?"
	tokenMine   = "x"
)

func (c Cell) token() string {
	switch c.Kind {
	case Hidden:
		return tokenHidden
	case Flagged:
		return tokenMine
	default:
		return strconv.Itoa(c.Count)
	}
}

func parseCell(token string) (Cell, error) {
	switch token {
	case tokenHidden:
		return Cell{Kind: Hidden}, nil
	case tokenMine:
		return Cell{Kind: Flagged}, nil
	}
	if len(token) == 1 && '0' <= token[0] && token[0] <= '8' {
		return Cell{Kind: Revealed, Count: int(token[0] - '0')}, nil
	}
	return Cell{}, fmt.Errorf("%w: unknown cell token %q", ErrMalformedBoard, token)
}
