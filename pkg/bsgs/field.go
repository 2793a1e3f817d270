package bsgs

import "math/big"

// Field implements modular arithmetic over the prime field GF(P).
// All methods return fresh big.Ints reduced to [0, P-1]; arguments are never
// mutated. The secp256k1 prime is wider than a machine word, so everything
// stays in math/big.
type Field struct {
	P *big.Int
}

// NewField creates a field with the given prime modulus.
func NewField(p *big.Int) *Field {
	return &Field{P: new(big.Int).Set(p)}
}

// Add returns (a + b) mod P.
func (f *Field) Add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, f.P)
}

// Sub returns (a - b) mod P.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, f.P)
}

// Mul returns (a * b) mod P.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, f.P)
}

// Neg returns -a mod P.
func (f *Field) Neg(a *big.Int) *big.Int {
	r := new(big.Int).Neg(a)
	return r.Mod(r, f.P)
}

// Inverse returns a^-1 mod P via the extended Euclidean algorithm.
// Zero has no inverse and yields a DomainError.
func (f *Field) Inverse(a *big.Int) (*big.Int, error) {
	r := new(big.Int).ModInverse(a, f.P)
	if r == nil {
		return nil, &DomainError{Op: "inverse", Reason: "element has no multiplicative inverse"}
	}
	return r, nil
}
