package sweep

// combine derives whatever exact zones follow from a pair of
// constraints and records them, reporting whether any new zone
// appeared.
//
// Writing A = A' ∪ S, B = B' ∪ S with S = A∩B:
//   - proper subset (A ⊂ B): B−A holds exactly b−a mines;
//   - otherwise the overlap S holds between max(a−|A'|, b−|B'|, 0) and
//     min(a, b, |S|) mines, and only when those bounds meet is the
//     three-way split (S,m), (A',a−m), (B',b−m) exact.
func (zs *ZoneStore) combine(a, b *Zone) (bool, error) {
	shared := a.intersect(b)
	if len(shared) == 0 {
		return false, nil
	}
	aRest := a.minus(b)
	bRest := b.minus(a)
	switch {
	case len(aRest) == 0 && len(bRest) == 0:
		// identical member sets, nothing to learn
		return false, nil
	case len(aRest) == 0:
		return zs.Add(bRest, b.mines-a.mines)
	case len(bRest) == 0:
		return zs.Add(aRest, a.mines-b.mines)
	}
	lower := max(a.mines-len(aRest), b.mines-len(bRest), 0)
	upper := min(a.mines, b.mines, len(shared))
	if lower != upper {
		return false, nil
	}
	grew, err := zs.Add(shared, lower)
	if err != nil {
		return grew, err
	}
	grewA, err := zs.Add(aRest, a.mines-lower)
	if err != nil {
		return grew || grewA, err
	}
	grewB, err := zs.Add(bRest, b.mines-lower)
	return grew || grewA || grewB, err
}

// buildZones rebuilds the store from the current frontier: one zone
// per revealed cell that still has hidden neighbors, counting only the
// mines its flags have not accounted for yet.
func (s *Solver) buildZones() error {
	s.zones = NewZoneStore()
	for _, p := range s.grid.RevealedPositions() {
		flagged, hidden := s.neighborTally(p)
		if len(hidden) == 0 {
			continue
		}
		remaining := s.grid.At(p).Count - len(flagged)
		if _, err := s.zones.Add(hidden, remaining); err != nil {
			return err
		}
	}
	return nil
}

// refineZones runs the zone algebra: saturate the store with pairwise
// derivations, then apply every certain zone (no mines → all safe,
// all mines → flag everything). It reports whether the grid changed;
// any change sends the solver back to local saturation.
func (s *Solver) refineZones() (bool, error) {
	for {
		var safe, mined []Position
		for _, z := range s.zones.snapshot() {
			if z.mines == 0 {
				safe = append(safe, z.Members()...)
			} else if z.mines == z.Size() {
				mined = append(mined, z.Members()...)
			}
		}
		if len(safe)+len(mined) > 0 {
			minedSet := make(map[Position]void, len(mined))
			for _, p := range mined {
				minedSet[p] = void{}
			}
			for _, p := range safe {
				if _, ok := minedSet[p]; ok {
					return false, assertionf(
						"cell %s is both provably safe and provably mined", p,
					)
				}
			}
			for _, p := range mined {
				if s.grid.At(p).Kind != Hidden {
					continue
				}
				if err := s.flag(p); err != nil {
					return false, err
				}
			}
			for _, p := range safe {
				if s.grid.At(p).Kind != Hidden {
					continue
				}
				if err := s.open(p); err != nil {
					return false, err
				}
			}
			return true, nil
		}

		grew := false
		zones := s.zones.snapshot()
		for i, a := range zones {
			for _, b := range zones[i+1:] {
				fresh, err := s.zones.combine(a, b)
				if err != nil {
					return false, err
				}
				grew = grew || fresh
			}
		}
		if !grew {
			return false, nil
		}
	}
}
