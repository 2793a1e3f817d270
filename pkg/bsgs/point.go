package bsgs

import "math/big"

// Point is an immutable element of the curve group: either the point at
// infinity or an affine (x, y) pair. The zero Point is not usable; obtain
// points from Curve.NewPoint, Curve.Infinity, or the group operations, all
// of which return fresh values.
type Point struct {
	curve    *Curve
	x, y     *big.Int
	infinity bool
}

// IsInfinity reports whether p is the identity element.
func (p Point) IsInfinity() bool {
	return p.infinity
}

// X returns a copy of the affine x coordinate. It must not be called on the
// point at infinity.
func (p Point) X() *big.Int {
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the affine y coordinate. It must not be called on the
// point at infinity.
func (p Point) Y() *big.Int {
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same group element.
func (p Point) Equal(q Point) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// Negate returns -p, i.e. (x, -y mod P). The point at infinity is its own
// negation.
func (p Point) Negate() Point {
	if p.infinity {
		return p
	}
	return Point{curve: p.curve, x: new(big.Int).Set(p.x), y: p.curve.field.Neg(p.y)}
}

// Add returns p + q under the chord-and-tangent group law.
func (p Point) Add(q Point) (Point, error) {
	if p.infinity {
		return q, nil
	}
	if q.infinity {
		return p, nil
	}

	f := p.curve.field
	if p.x.Cmp(q.x) == 0 {
		// Same x coordinate: either inverses (vertical chord) or equal.
		if p.y.Cmp(f.Neg(q.y)) == 0 {
			return p.curve.Infinity(), nil
		}
		return p.Double()
	}

	// Chord slope: (qy - py) / (qx - px).
	dx, err := f.Inverse(f.Sub(q.x, p.x))
	if err != nil {
		return Point{}, err
	}
	slope := f.Mul(f.Sub(q.y, p.y), dx)

	rx := f.Sub(f.Sub(f.Mul(slope, slope), p.x), q.x)
	ry := f.Sub(f.Mul(slope, f.Sub(p.x, rx)), p.y)
	return Point{curve: p.curve, x: rx, y: ry}, nil
}

// Double returns 2p by the tangent rule. A point with y = 0 has a vertical
// tangent and no affine double; callers must special-case that to infinity
// before calling, otherwise a DomainError is returned.
func (p Point) Double() (Point, error) {
	if p.infinity {
		return p, nil
	}
	if p.y.Sign() == 0 {
		return Point{}, &DomainError{Op: "double", Reason: "point has y = 0, tangent is vertical"}
	}

	f := p.curve.field
	// Tangent slope: (3x^2 + a) / 2y.
	num := f.Mul(big.NewInt(3), f.Mul(p.x, p.x))
	num = f.Add(num, p.curve.A)
	den, err := f.Inverse(f.Mul(big.NewInt(2), p.y))
	if err != nil {
		return Point{}, err
	}
	slope := f.Mul(num, den)

	rx := f.Sub(f.Mul(slope, slope), f.Mul(big.NewInt(2), p.x))
	ry := f.Sub(f.Mul(slope, f.Sub(p.x, rx)), p.y)
	return Point{curve: p.curve, x: rx, y: ry}, nil
}

// ScalarMult returns k*p via most-significant-bit-first double-and-add.
// k is reduced modulo the group order before use; k = 0 yields infinity and
// a negative k multiplies the negated point.
func (p Point) ScalarMult(k *big.Int) (Point, error) {
	base := p
	e := new(big.Int).Set(k)
	if e.Sign() < 0 {
		base = p.Negate()
		e.Neg(e)
	}
	e.Mod(e, p.curve.N)

	result := p.curve.Infinity()
	for i := e.BitLen() - 1; i >= 0; i-- {
		if !result.infinity {
			if result.y.Sign() == 0 {
				// Vertical tangent: 2*result is the identity.
				result = p.curve.Infinity()
			} else {
				var err error
				if result, err = result.Double(); err != nil {
					return Point{}, err
				}
			}
		}
		if e.Bit(i) == 1 {
			var err error
			if result, err = result.Add(base); err != nil {
				return Point{}, err
			}
		}
	}
	return result, nil
}

// Sub returns p - q.
func (p Point) Sub(q Point) (Point, error) {
	return p.Add(q.Negate())
}

// encodedLen is the size of a non-infinity Encode result: one parity prefix
// byte plus the 32-byte x coordinate.
const encodedLen = 33

// Encode returns a canonical, collision-free serialization of p: the SEC
// compressed form (0x02/0x03 prefix plus big-endian x padded to 32 bytes),
// with the point at infinity mapped to a single zero byte. On the curve the
// x coordinate and the parity of y determine the point, so distinct points
// never collide. This is the key format used by the baby-step table.
func (p Point) Encode() []byte {
	if p.infinity {
		return []byte{0x00}
	}
	out := make([]byte, encodedLen)
	if p.y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	p.x.FillBytes(out[1:])
	return out
}
