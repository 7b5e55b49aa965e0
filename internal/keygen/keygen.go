// Package keygen produces puzzle boards together with their answer
// keys, and exposes the key as an oracle for the deduction engine.
package keygen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

// mine marks a mined cell in the internal count layout.
const mine = -1

// maxAttempts bounds the reroll loop; boards dense enough to exhaust
// it have no zero cells to open from and are rejected.
const maxAttempts = 1000

// Generate builds a matching pair: key holds every cell's true content
// (x for mines, adjacency counts otherwise) and board is the player's
// view with every non-zero cell hidden. Layouts without a single zero
// cell give the solver no opening, so such rolls are discarded and
// redrawn.
func Generate(rows, cols, mineCount int, r *rand.Rand) (board, key string, err error) {
	if rows <= 0 || cols <= 0 {
		return "", "", fmt.Errorf("invalid dimensions %dx%d", rows, cols)
	}
	if mineCount < 0 || mineCount >= rows*cols {
		return "", "", fmt.Errorf(
			"mine count %d out of range for a %dx%d board", mineCount, rows, cols,
		)
	}
	for attempt := 1; ; attempt++ {
		if attempt > maxAttempts {
			return "", "", fmt.Errorf(
				"no zero cell in %d layouts of %d mines on %dx%d",
				maxAttempts, mineCount, rows, cols,
			)
		}
		cells := place(rows, cols, mineCount, r)
		if !hasZero(cells) {
			continue
		}
		Log.WithFields(logrus.Fields{
			"rows": rows, "cols": cols, "mines": mineCount, "attempt": attempt,
		}).Debug("layout generated")
		return render(cells, cols, true), render(cells, cols, false), nil
	}
}

// place shuffles mineCount mines over the cells and fills the rest
// with adjacency counts.
func place(rows, cols, mineCount int, r *rand.Rand) []int {
	cells := make([]int, rows*cols)
	for i := range mineCount {
		cells[i] = mine
	}
	r.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	for i, c := range cells {
		if c != mine {
			continue
		}
		row, col := i/cols, i%cols
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				rr, cc := row+dr, col+dc
				if (dr == 0 && dc == 0) ||
					rr < 0 || rr >= rows || cc < 0 || cc >= cols {
					continue
				}
				if j := rr*cols + cc; cells[j] != mine {
					cells[j]++
				}
			}
		}
	}
	return cells
}

func hasZero(cells []int) bool {
	for _, c := range cells {
		if c == 0 {
			return true
		}
	}
	return false
}

// render writes the text grid; with hidden set, everything except zero
// cells comes out as "?".
func render(cells []int, cols int, hidden bool) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			if i%cols == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		switch {
		case c == 0:
			b.WriteByte('0')
		case hidden:
			b.WriteByte('?')
		case c == mine:
			b.WriteByte('x')
		default:
			b.WriteString(strconv.Itoa(c))
		}
	}
	return b.String()
}
