package keygen

import (
	"fmt"
	"strings"

	"github.com/cmaxwell/sweeper/internal/sweep"
)

// KeyOracle answers reveal queries from a ground-truth key. It is the
// capability handed to the solver in place of direct access to the
// answer.
type KeyOracle struct {
	rows  int
	cols  int
	cells []int
}

func NewKeyOracle(key string) (*KeyOracle, error) {
	cells, rows, cols, err := parseKey(key)
	if err != nil {
		return nil, err
	}
	return &KeyOracle{rows: rows, cols: cols, cells: cells}, nil
}

// Reveal returns the adjacency count at p. Asking about a mine or an
// out-of-bounds cell means the caller's deduction went wrong, and
// comes back as an error.
func (o *KeyOracle) Reveal(p sweep.Position) (int, error) {
	if p.Row < 0 || p.Row >= o.rows || p.Col < 0 || p.Col >= o.cols {
		return 0, fmt.Errorf("position %s outside the %dx%d key", p, o.rows, o.cols)
	}
	c := o.cells[p.Row*o.cols+p.Col]
	if c == mine {
		return 0, fmt.Errorf("revealed a mine at %s", p)
	}
	return c, nil
}

func (o *KeyOracle) MineCount() int {
	count := 0
	for _, c := range o.cells {
		if c == mine {
			count++
		}
	}
	return count
}

func parseKey(key string) (cells []int, rows, cols int, err error) {
	if key == "" {
		return nil, 0, 0, fmt.Errorf("empty key")
	}
	lines := strings.Split(strings.TrimSuffix(key, "\n"), "\n")
	rows = len(lines)
	for r, line := range lines {
		tokens := strings.Split(line, " ")
		if r == 0 {
			cols = len(tokens)
		} else if len(tokens) != cols {
			return nil, 0, 0, fmt.Errorf(
				"ragged key: row %d has %d cells, want %d", r, len(tokens), cols,
			)
		}
		for _, token := range tokens {
			switch {
			case token == "x":
				cells = append(cells, mine)
			case len(token) == 1 && '0' <= token[0] && token[0] <= '8':
				cells = append(cells, int(token[0]-'0'))
			default:
				return nil, 0, 0, fmt.Errorf("unknown key token %q", token)
			}
		}
	}
	return cells, rows, cols, nil
}

// Validate checks the generation contract on a key: rectangular shape,
// every count matching its mined neighborhood, and at least one zero
// cell to open from.
func Validate(key string) error {
	cells, rows, cols, err := parseKey(key)
	if err != nil {
		return err
	}
	if !hasZero(cells) {
		return fmt.Errorf("key has no zero cell")
	}
	for i, c := range cells {
		if c == mine {
			continue
		}
		row, col := i/cols, i%cols
		adjacent := 0
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				rr, cc := row+dr, col+dc
				if (dr == 0 && dc == 0) ||
					rr < 0 || rr >= rows || cc < 0 || cc >= cols {
					continue
				}
				if cells[rr*cols+cc] == mine {
					adjacent++
				}
			}
		}
		if adjacent != c {
			return fmt.Errorf(
				"cell (%d,%d) counts %d but has %d mined neighbors",
				row, col, c, adjacent,
			)
		}
	}
	return nil
}
