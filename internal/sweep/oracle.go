package sweep

// Oracle reveals the true adjacency count of a hidden cell. It is the
// solver's only window into ground truth and is handed in explicitly.
//
// The solver only ever asks about cells it has proven safe, and never
// asks about the same position twice. An implementation that is asked
// to reveal a mine should return an error; the solver treats that as a
// broken deduction, not as a lost game.
type Oracle interface {
	Reveal(p Position) (int, error)
}
