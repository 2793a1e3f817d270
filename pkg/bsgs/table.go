package bsgs

import "math/big"

// Table is the baby-step side of the search: a lookup from encoded points to
// their step index, holding encode(i*P) -> i for i = 0 .. m-1. It is built
// once per solve, queried read-only during the giant-step loop, and then
// discarded. Memory is O(m), which is what bounds the feasible range width.
type Table struct {
	steps map[string]uint64
	m     uint64
}

// NewTable builds the baby-step table for generator p with m entries. The
// i-th entry is obtained from the (i-1)-th by a single point addition
// starting from the identity, so construction costs m additions rather than
// m scalar multiplications.
func NewTable(p Point, m uint64) (*Table, error) {
	t := &Table{
		steps: make(map[string]uint64, m),
		m:     m,
	}
	current := p.curve.Infinity()
	for i := uint64(0); i < m; i++ {
		t.steps[string(current.Encode())] = i
		var err error
		if current, err = current.Add(p); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Lookup returns the baby-step index of q if it is in the table.
func (t *Table) Lookup(q Point) (uint64, bool) {
	i, ok := t.steps[string(q.Encode())]
	return i, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.steps)
}

// stepCount returns m = ceil(sqrt(width)) for a search of the given width.
func stepCount(width *big.Int) *big.Int {
	m := new(big.Int).Sqrt(width)
	if new(big.Int).Mul(m, m).Cmp(width) < 0 {
		m.Add(m, big.NewInt(1))
	}
	return m
}
