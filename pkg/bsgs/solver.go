package bsgs

import (
	"context"
	"fmt"
	"math/big"
	"sync/atomic"
)

// Solver finds the discrete logarithm of a target point within a bounded
// range. Implement this interface to plug a custom search into the key
// finder client.
type Solver interface {
	// Solve searches for k in rng with k*G = target. It returns nil when no
	// such k exists in the range; errors are reserved for malformed inputs
	// and arithmetic contract violations.
	Solve(ctx context.Context, target Point, rng Range) (*Result, error)

	// Name returns a human-readable name for this solver.
	Name() string
}

// BSGS is the baby-step giant-step solver: O(sqrt(width)) group operations
// and O(sqrt(width)) memory, against the O(width) of a linear scan.
type BSGS struct {
	curve   *Curve
	workers int

	// OnProgress, when set, is called after every giant step with the number
	// of steps taken and the total m. It must be fast; it runs on the search
	// path, and with sharding enabled it runs on every worker goroutine.
	OnProgress func(done, total uint64)
}

// NewBSGS creates a sequential BSGS solver on the given curve.
func NewBSGS(curve *Curve) *BSGS {
	return &BSGS{curve: curve, workers: 1}
}

// WithWorkers shards the giant-step loop across n workers. Values below 2
// keep the sequential loop.
func (s *BSGS) WithWorkers(n int) *BSGS {
	s.workers = n
	return s
}

// WithProgress sets the progress callback.
func (s *BSGS) WithProgress(fn func(done, total uint64)) *BSGS {
	s.OnProgress = fn
	return s
}

// Name returns the name of this solver.
func (s *BSGS) Name() string {
	if s.workers > 1 {
		return fmt.Sprintf("BSGS(workers=%d)", s.workers)
	}
	return "BSGS"
}

// Solve runs the meet-in-the-middle search.
//
// The target is first shifted by -start*G so the unknown offset k' lies in
// [0, width-1]. With m = ceil(sqrt(width)) every such k' decomposes uniquely
// as i + j*m with 0 <= i,j < m: the i side is the precomputed baby-step
// table, the j side is walked by repeatedly subtracting m*G from the shifted
// target. A table hit at (i, j) is verified by recomputing k'*G before the
// absolute key start + k' is returned, so an encoding collision can never
// produce a wrong key.
func (s *BSGS) Solve(ctx context.Context, target Point, rng Range) (*Result, error) {
	if !s.curve.IsOnCurve(target) {
		return nil, &FormatError{Input: "target point", Reason: "not on the curve"}
	}

	width := rng.Width()
	mBig := stepCount(width)
	if !mBig.IsUint64() {
		return nil, &FormatError{Input: "range", Reason: "too wide for an in-memory baby-step table"}
	}
	m := mBig.Uint64()

	// Q' = Q - start*G.
	startG, err := s.curve.G.ScalarMult(rng.Start)
	if err != nil {
		return nil, err
	}
	shifted, err := target.Sub(startG)
	if err != nil {
		return nil, err
	}

	table, err := NewTable(s.curve.G, m)
	if err != nil {
		return nil, err
	}

	// factor = m*G, the giant stride.
	factor, err := s.curve.G.ScalarMult(mBig)
	if err != nil {
		return nil, err
	}

	var steps atomic.Uint64
	steps.Add(m) // table build cost

	var key *big.Int
	if s.workers > 1 {
		key, err = s.solveParallel(ctx, shifted, factor, table, m, width, &steps)
	} else {
		key, err = s.giantSteps(ctx, shifted, factor, table, m, width, &steps)
	}
	if err != nil || key == nil {
		return nil, err
	}
	return &Result{Key: key.Add(key, rng.Start), Steps: steps.Load()}, nil
}

// giantSteps walks candidate = Q' - j*factor for j = 0 .. m-1 by running
// subtraction and probes the table at each step. It returns the relative
// offset k' on a verified hit, nil otherwise.
func (s *BSGS) giantSteps(ctx context.Context, shifted, factor Point, table *Table, m uint64, width *big.Int, steps *atomic.Uint64) (*big.Int, error) {
	negFactor := factor.Negate()
	current := shifted
	for j := uint64(0); j < m; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i, ok := table.Lookup(current); ok {
			return s.verifyHit(shifted, i, j, m, width)
		}
		var err error
		if current, err = current.Add(negFactor); err != nil {
			return nil, err
		}
		steps.Add(1)
		if s.OnProgress != nil {
			s.OnProgress(j+1, m)
		}
	}
	return nil, nil
}

// verifyHit turns a table hit (baby index i, giant index j) into the
// relative offset k' = i + j*m, rejecting it unless k' is inside the range
// and k'*G really equals the shifted target.
func (s *BSGS) verifyHit(shifted Point, i, j, m uint64, width *big.Int) (*big.Int, error) {
	k := new(big.Int).SetUint64(j)
	k.Mul(k, new(big.Int).SetUint64(m))
	k.Add(k, new(big.Int).SetUint64(i))

	// The decomposition can land past the requested range when the true key
	// sits just above it; that is a miss, not a match.
	if k.Cmp(width) >= 0 {
		return nil, nil
	}
	check, err := s.curve.G.ScalarMult(k)
	if err != nil {
		return nil, err
	}
	if !check.Equal(shifted) {
		return nil, nil
	}
	return k, nil
}
