package sweep

import (
	"slices"
	"strconv"
	"strings"
)

type void struct{}

// Zone is a set of still-hidden positions holding an exact number of
// mines. The count is exact, never a bound; every deduction downstream
// leans on that.
type Zone struct {
	key   string
	cells map[Position]void
	mines int
}

func newZone(positions []Position, mines int) *Zone {
	z := &Zone{cells: make(map[Position]void, len(positions)), mines: mines}
	for _, p := range positions {
		z.cells[p] = void{}
	}
	z.key = zoneKey(z.cells)
	return z
}

// zoneKey builds the canonical identity of a member set: positions in
// row-major order, rendered as "r.c;" runs. Equal sets always produce
// equal keys.
func zoneKey(cells map[Position]void) string {
	members := make([]Position, 0, len(cells))
	for p := range cells {
		members = append(members, p)
	}
	slices.SortFunc(members, positionCmp)
	var b strings.Builder
	for _, p := range members {
		b.WriteString(strconv.Itoa(p.Row))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(p.Col))
		b.WriteByte(';')
	}
	return b.String()
}

func (z *Zone) Size() int  { return len(z.cells) }
func (z *Zone) Mines() int { return z.mines }

func (z *Zone) contains(p Position) bool {
	_, ok := z.cells[p]
	return ok
}

// Members returns the member positions in row-major order.
func (z *Zone) Members() []Position {
	members := make([]Position, 0, len(z.cells))
	for p := range z.cells {
		members = append(members, p)
	}
	slices.SortFunc(members, positionCmp)
	return members
}

// intersect returns z ∩ other, sorted.
func (z *Zone) intersect(other *Zone) []Position {
	var shared []Position
	for p := range z.cells {
		if other.contains(p) {
			shared = append(shared, p)
		}
	}
	slices.SortFunc(shared, positionCmp)
	return shared
}

// minus returns z − other, sorted.
func (z *Zone) minus(other *Zone) []Position {
	var rest []Position
	for p := range z.cells {
		if !other.contains(p) {
			rest = append(rest, p)
		}
	}
	slices.SortFunc(rest, positionCmp)
	return rest
}

// ZoneStore keeps the current zones keyed by canonical member set and
// indexes every position back to the zones containing it, so resolving
// one cell touches only the zones it belongs to.
type ZoneStore struct {
	zones map[string]*Zone
	byPos map[Position]map[string]*Zone
}

func NewZoneStore() *ZoneStore {
	return &ZoneStore{
		zones: make(map[string]*Zone),
		byPos: make(map[Position]map[string]*Zone),
	}
}

func (zs *ZoneStore) Len() int { return len(zs.zones) }

// Lookup finds the zone with exactly the given member set.
func (zs *ZoneStore) Lookup(positions []Position) (*Zone, bool) {
	cells := make(map[Position]void, len(positions))
	for _, p := range positions {
		cells[p] = void{}
	}
	z, ok := zs.zones[zoneKey(cells)]
	return z, ok
}

// Add records the fact "exactly mines mines among positions". It
// reports whether the store learned something new. A duplicate member
// set with a different count is a contradiction: exact counts cannot
// disagree, so the engine fails loudly instead of picking one.
func (zs *ZoneStore) Add(positions []Position, mines int) (bool, error) {
	if len(positions) == 0 {
		if mines != 0 {
			return false, assertionf("empty zone cannot hold %d mines", mines)
		}
		return false, nil
	}
	if mines < 0 || mines > len(positions) {
		return false, assertionf(
			"zone of %d cells cannot hold %d mines", len(positions), mines,
		)
	}
	z := newZone(positions, mines)
	if existing, ok := zs.zones[z.key]; ok {
		if existing.mines != mines {
			return false, assertionf(
				"conflicting zone counts for %v: %d and %d",
				existing.Members(), existing.mines, mines,
			)
		}
		return false, nil
	}
	zs.insert(z)
	return true, nil
}

func (zs *ZoneStore) insert(z *Zone) {
	zs.zones[z.key] = z
	for p := range z.cells {
		ties, ok := zs.byPos[p]
		if !ok {
			ties = make(map[string]*Zone)
			zs.byPos[p] = ties
		}
		ties[z.key] = z
	}
}

func (zs *ZoneStore) remove(z *Zone) {
	delete(zs.zones, z.key)
	for p := range z.cells {
		delete(zs.byPos[p], z.key)
		if len(zs.byPos[p]) == 0 {
			delete(zs.byPos, p)
		}
	}
}

// Resolve prunes a now-resolved position out of every zone containing
// it, decrementing counts when the cell turned out to be a mine. Zones
// shrunk to nothing are dropped; shrunk zones that collide with an
// existing member set must agree on the count.
func (zs *ZoneStore) Resolve(p Position, mined bool) error {
	ties, ok := zs.byPos[p]
	if !ok {
		return nil
	}
	affected := make([]*Zone, 0, len(ties))
	for _, z := range ties {
		affected = append(affected, z)
	}
	// deterministic rebuild order
	slices.SortFunc(affected, func(a, b *Zone) int {
		return strings.Compare(a.key, b.key)
	})
	for _, z := range affected {
		zs.remove(z)
		mines := z.mines
		if mined {
			mines--
		}
		delete(z.cells, p)
		if mines < 0 || mines > len(z.cells) {
			return assertionf(
				"zone %v broke its count resolving %s", z.Members(), p,
			)
		}
		if len(z.cells) == 0 {
			continue
		}
		z.mines = mines
		z.key = zoneKey(z.cells)
		if existing, ok := zs.zones[z.key]; ok {
			if existing.mines != z.mines {
				return assertionf(
					"conflicting zone counts for %v: %d and %d",
					existing.Members(), existing.mines, z.mines,
				)
			}
			continue
		}
		zs.insert(z)
	}
	return nil
}

// snapshot returns the current zones in canonical key order, so walks
// over the store are reproducible.
func (zs *ZoneStore) snapshot() []*Zone {
	keys := make([]string, 0, len(zs.zones))
	for key := range zs.zones {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	zones := make([]*Zone, len(keys))
	for i, key := range keys {
		zones[i] = zs.zones[key]
	}
	return zones
}
