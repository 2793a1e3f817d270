package bsgs

import (
	"context"
	"errors"
	"math/big"
	"testing"
)

func mustRange(t *testing.T, startHex, endHex string) Range {
	t.Helper()
	rng, err := ParseRangeHex(startHex, endHex)
	if err != nil {
		t.Fatalf("ParseRangeHex(%s, %s) failed: %v", startHex, endHex, err)
	}
	return rng
}

func targetFor(t *testing.T, k *big.Int) Point {
	t.Helper()
	p, err := Secp256k1().G.ScalarMult(k)
	if err != nil {
		t.Fatalf("ScalarMult failed: %v", err)
	}
	return p
}

func TestSolveFound(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		key        string
	}{
		{"mid_range", "8000", "ffff", "85f3"},
		{"range_start", "8000", "ffff", "8000"},
		{"range_end", "8000", "ffff", "ffff"},
		{"single_key_range", "85f3", "85f3", "85f3"},
		{"from_zero", "0", "fff", "0"},
		{"puzzle_20", "80000", "fffff", "d2c55"},
	}

	solver := NewBSGS(Secp256k1())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := mustHex(t, tt.key)
			rng := mustRange(t, tt.start, tt.end)

			result, err := solver.Solve(context.Background(), targetFor(t, key), rng)
			if err != nil {
				t.Fatalf("Solve failed: %v", err)
			}
			if result == nil {
				t.Fatalf("key %s not found in [%s, %s]", tt.key, tt.start, tt.end)
			}
			if result.Key.Cmp(key) != 0 {
				t.Errorf("found %x, want %s", result.Key, tt.key)
			}
		})
	}
}

func TestSolveNotFound(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		key        string
	}{
		{"just_below_range", "80000", "fffff", "7ffff"},
		{"just_above_range", "80000", "fffff", "100000"},
		{"far_above_range", "8000", "ffff", "123456789"},
	}

	solver := NewBSGS(Secp256k1())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := mustRange(t, tt.start, tt.end)

			result, err := solver.Solve(context.Background(), targetFor(t, mustHex(t, tt.key)), rng)
			if err != nil {
				t.Fatalf("Solve failed: %v", err)
			}
			if result != nil {
				t.Errorf("key %s is outside [%s, %s] but Solve returned %x", tt.key, tt.start, tt.end, result.Key)
			}
		})
	}
}

func TestSolveExhaustiveSmallRange(t *testing.T) {
	// Every key of a small range must decompose to a unique (i, j) pair and
	// be found; this sweeps all of them.
	solver := NewBSGS(Secp256k1())
	rng := mustRange(t, "60", "9f")

	for k := int64(0x60); k <= 0x9f; k++ {
		key := big.NewInt(k)
		result, err := solver.Solve(context.Background(), targetFor(t, key), rng)
		if err != nil {
			t.Fatalf("Solve(%#x) failed: %v", k, err)
		}
		if result == nil || result.Key.Cmp(key) != 0 {
			t.Fatalf("Solve(%#x) = %v, want %#x", k, result, k)
		}
	}
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	key := mustHex(t, "d2c55")
	rng := mustRange(t, "80000", "fffff")
	target := targetFor(t, key)

	for _, workers := range []int{2, 3, 8} {
		solver := NewBSGS(Secp256k1()).WithWorkers(workers)
		result, err := solver.Solve(context.Background(), target, rng)
		if err != nil {
			t.Fatalf("%s failed: %v", solver.Name(), err)
		}
		if result == nil || result.Key.Cmp(key) != 0 {
			t.Errorf("%s found %v, want d2c55", solver.Name(), result)
		}
	}

	// The miss case must stay a miss under sharding.
	solver := NewBSGS(Secp256k1()).WithWorkers(4)
	result, err := solver.Solve(context.Background(), targetFor(t, mustHex(t, "7ffff")), rng)
	if err != nil {
		t.Fatalf("parallel Solve failed: %v", err)
	}
	if result != nil {
		t.Errorf("parallel solver found %x for an out-of-range key", result.Key)
	}
}

func TestSolveOffCurveTarget(t *testing.T) {
	curve := Secp256k1()
	solver := NewBSGS(curve)

	_, err := solver.Solve(context.Background(), curve.NewPoint(big.NewInt(1), big.NewInt(1)), mustRange(t, "0", "ff"))
	if err == nil {
		t.Fatal("Solve should reject a target that is not on the curve")
	}
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("expected FormatError, got %T: %v", err, err)
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := NewBSGS(Secp256k1())
	_, err := solver.Solve(ctx, targetFor(t, mustHex(t, "d2c55")), mustRange(t, "80000", "fffff"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSolveWorkScalesWithSqrt(t *testing.T) {
	// Table build plus giant steps must stay within a small multiple of
	// m = ceil(sqrt(width)), never approach the width itself.
	rng := mustRange(t, "80000", "fffff")
	m := stepCount(rng.Width()).Uint64()

	solver := NewBSGS(Secp256k1())
	result, err := solver.Solve(context.Background(), targetFor(t, mustHex(t, "fff00")), rng)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result == nil {
		t.Fatal("key fff00 should be in the range")
	}
	if result.Steps > 3*m {
		t.Errorf("solver spent %d steps, want at most 3*m = %d", result.Steps, 3*m)
	}
}

func TestSolveProgressReported(t *testing.T) {
	var calls int
	var last uint64
	solver := NewBSGS(Secp256k1()).WithProgress(func(done, total uint64) {
		calls++
		last = total
	})

	rng := mustRange(t, "8000", "ffff")
	if _, err := solver.Solve(context.Background(), targetFor(t, mustHex(t, "ffff")), rng); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if calls == 0 {
		t.Fatal("progress callback never fired")
	}
	if want := stepCount(rng.Width()).Uint64(); last != want {
		t.Errorf("progress total = %d, want m = %d", last, want)
	}
}
