package sweep

import "fmt"

// neighborTally splits the neighbors of a revealed cell into flagged
// and still-hidden ones.
func (s *Solver) neighborTally(p Position) (flagged, hidden []Position) {
	for _, q := range s.grid.Neighbors(p) {
		switch s.grid.At(q).Kind {
		case Flagged:
			flagged = append(flagged, q)
		case Hidden:
			hidden = append(hidden, q)
		}
	}
	return flagged, hidden
}

// saturate applies the two local rules to a fixed point:
//
//	mark rule: count == flagged + hidden → every hidden neighbor is a
//	mine;
//	open rule: count == flagged → every hidden neighbor is safe.
//
// It reports whether the grid changed. A hint smaller than its flag
// count is a contradiction and fails loudly.
func (s *Solver) saturate() (bool, error) {
	changed := false
	for {
		pass := false
		for _, p := range s.grid.RevealedPositions() {
			flagged, hidden := s.neighborTally(p)
			if len(hidden) == 0 {
				continue
			}
			count := s.grid.At(p).Count
			switch {
			case count < len(flagged):
				return changed, assertionf(
					"cell %s counts %d mines but has %d flagged neighbors",
					p, count, len(flagged),
				)
			case count == len(flagged)+len(hidden):
				for _, q := range hidden {
					if s.grid.At(q).Kind != Hidden {
						continue
					}
					if err := s.flag(q); err != nil {
						return changed, err
					}
				}
				pass = true
			case count == len(flagged):
				for _, q := range hidden {
					if s.grid.At(q).Kind != Hidden {
						continue
					}
					if err := s.open(q); err != nil {
						return changed, err
					}
				}
				pass = true
			}
		}
		if !pass {
			return changed, nil
		}
		changed = true
	}
}

// open reveals a proven-safe cell through the oracle. Revealing a zero
// cascades: the zero's neighbors are themselves safe and are fed into
// a FIFO worklist rather than recursed on, so arbitrarily large empty
// areas open without growing the stack.
func (s *Solver) open(p Position) error {
	s.queue.PushBack(p)
	for s.queue.Len() > 0 {
		q := s.queue.PopFront()
		if s.grid.At(q).Kind != Hidden {
			continue // resolved by an earlier cascade step
		}
		count, err := s.oracle.Reveal(q)
		if err != nil {
			return fmt.Errorf("oracle failed at %s: %w", q, err)
		}
		if err := s.grid.SetRevealed(q, count); err != nil {
			return err
		}
		if err := s.zones.Resolve(q, false); err != nil {
			return err
		}
		if count == 0 {
			for _, nb := range s.grid.Neighbors(q) {
				if s.grid.At(nb).Kind == Hidden {
					s.queue.PushBack(nb)
				}
			}
		}
	}
	return nil
}

// flag marks a proven mine without consulting the oracle.
func (s *Solver) flag(p Position) error {
	if err := s.grid.SetFlagged(p); err != nil {
		return err
	}
	s.flagged++
	if s.flagged > s.totalMines {
		return assertionf(
			"flagged %d cells but the board holds %d mines",
			s.flagged, s.totalMines,
		)
	}
	return s.zones.Resolve(p, true)
}
