package sweep

import (
	"errors"
	"fmt"
)

// ErrMalformedBoard reports irregular input: ragged rows, an unknown
// cell token, a mine count that cannot match the board. It is returned
// before any deduction happens.
var ErrMalformedBoard = errors.New("malformed board")

// AssertionError signals a broken engine invariant: an oracle answer
// out of range, a cell resolved twice, zones with contradictory
// counts. It never means the board is merely unsolvable.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

func assertionf(format string, args ...any) AssertionError {
	return AssertionError{message: fmt.Sprintf(format, args...)}
}
