package bsgs

import (
	"math/big"
	"strings"
)

// Range is an inclusive interval of scalars to search.
type Range struct {
	Start *big.Int
	End   *big.Int
}

// NewRange validates and builds a search range. Both bounds must be
// non-negative and Start must not exceed End.
func NewRange(start, end *big.Int) (Range, error) {
	if start.Sign() < 0 || end.Sign() < 0 {
		return Range{}, &FormatError{Input: "range", Reason: "bounds must be non-negative"}
	}
	if start.Cmp(end) > 0 {
		return Range{}, &FormatError{Input: "range", Reason: "start exceeds end"}
	}
	return Range{Start: new(big.Int).Set(start), End: new(big.Int).Set(end)}, nil
}

// ParseRangeHex builds a range from hex bounds, as supplied on the command
// line. A 0x prefix is tolerated.
func ParseRangeHex(startHex, endHex string) (Range, error) {
	start, ok := new(big.Int).SetString(trimHexPrefix(startHex), 16)
	if !ok {
		return Range{}, &FormatError{Input: "range start", Reason: "not a hex integer"}
	}
	end, ok := new(big.Int).SetString(trimHexPrefix(endHex), 16)
	if !ok {
		return Range{}, &FormatError{Input: "range end", Reason: "not a hex integer"}
	}
	return NewRange(start, end)
}

// Width returns the number of scalars in the range, end - start + 1.
func (r Range) Width() *big.Int {
	w := new(big.Int).Sub(r.End, r.Start)
	return w.Add(w, big.NewInt(1))
}

// Contains reports whether k lies in the range.
func (r Range) Contains(k *big.Int) bool {
	return k.Cmp(r.Start) >= 0 && k.Cmp(r.End) <= 0
}

func trimHexPrefix(s string) string {
	s = strings.TrimPrefix(s, "0x")
	return strings.TrimPrefix(s, "0X")
}

// Result is a successful discrete-log search. A nil *Result from a solver
// means the key is not in the range, which is a legitimate outcome and not
// an error.
type Result struct {
	Key   *big.Int // the scalar k with k*G = target
	Steps uint64   // group operations spent, for rate reporting
}
