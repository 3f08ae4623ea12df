// Package bn254fp names the BN254 base-field operations (modular square
// root via the p ≡ 3 (mod 4) shortcut, and the Fp2 complex-method square
// root) independently of point (de)compression. Both delegate to
// gnark-crypto's fp.Element/bn254.E2; this package exists so tests and
// callers have a field-level name to reach for without importing the
// point types in crypto/curve.
package bn254fp

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// Modulus is the BN254 base prime p.
func Modulus() *big.Int {
	return fp.Modulus()
}

// Sqrt computes a square root of a mod p using the p ≡ 3 (mod 4) identity
// sqrt(a) = a^((p+1)/4) mod p. Returns (root, true) if a is a quadratic
// residue, (nil, false) otherwise.
func Sqrt(a *big.Int) (*big.Int, bool) {
	var e fp.Element
	e.SetBigInt(a)
	var root fp.Element
	if root.Sqrt(&e) == nil {
		return nil, false
	}
	out := new(big.Int)
	root.BigInt(out)
	return out, true
}

// Fp2Sqrt computes a square root of a0+a1·u in Fp[u]/(u²+1) using the
// complex method: alpha = sqrt(a0²+a1²), then delta = (a0±alpha)/2 solved
// by cases. Returns (x0, x1, true) if a square root exists.
func Fp2Sqrt(a0, a1 *big.Int) (x0, x1 *big.Int, ok bool) {
	var e bn254.E2
	e.A0.SetBigInt(a0)
	e.A1.SetBigInt(a1)
	var root bn254.E2
	if root.Sqrt(&e) == nil {
		return nil, nil, false
	}
	rx0, rx1 := new(big.Int), new(big.Int)
	root.A0.BigInt(rx0)
	root.A1.BigInt(rx1)
	return rx0, rx1, true
}
