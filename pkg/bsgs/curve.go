package bsgs

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Curve holds the short-Weierstrass parameters y^2 = x^3 + A*x + B over GF(P),
// the group order N, and the base point G. Group operations live on Point;
// Curve supplies the field and the constants.
type Curve struct {
	P *big.Int // field prime
	A *big.Int // curve coefficient a
	B *big.Int // curve coefficient b
	N *big.Int // order of the group generated by G
	G Point    // base point

	field *Field
}

var secp256k1Curve *Curve

func init() {
	params := secp256k1.S256().Params()
	c := &Curve{
		P: new(big.Int).Set(params.P),
		A: big.NewInt(0), // secp256k1 has a = 0
		B: new(big.Int).Set(params.B),
		N: new(big.Int).Set(params.N),
	}
	c.field = NewField(c.P)
	c.G = Point{curve: c, x: new(big.Int).Set(params.Gx), y: new(big.Int).Set(params.Gy)}
	secp256k1Curve = c
}

// Secp256k1 returns the secp256k1 curve. Parameters are sourced from the
// decred implementation so the constants cannot drift from the reference.
func Secp256k1() *Curve {
	return secp256k1Curve
}

// Field returns the coordinate field of the curve.
func (c *Curve) Field() *Field {
	return c.field
}

// Infinity returns the identity element of the group.
func (c *Curve) Infinity() Point {
	return Point{curve: c, infinity: true}
}

// NewPoint builds an affine point from its coordinates. It does not check
// that the point is on the curve; use IsOnCurve when the coordinates come
// from outside.
func (c *Curve) NewPoint(x, y *big.Int) Point {
	return Point{curve: c, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// IsOnCurve reports whether p satisfies the curve equation. The point at
// infinity is on every curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.infinity {
		return true
	}
	// y^2 == x^3 + a*x + b (mod P)
	lhs := c.field.Mul(p.y, p.y)
	rhs := c.field.Mul(c.field.Mul(p.x, p.x), p.x)
	rhs = c.field.Add(rhs, c.field.Mul(c.A, p.x))
	rhs = c.field.Add(rhs, c.B)
	return lhs.Cmp(rhs) == 0
}
