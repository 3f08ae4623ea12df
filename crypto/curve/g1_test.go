package curve

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	qt "github.com/frankban/quicktest"
)

func TestG1CompressDecompressRoundTrip(t *testing.T) {
	c := qt.New(t)

	_, _, g1Gen, _ := bn254.Generators()
	for _, k := range []int64{1, 2, 3, 7, 12345, 987654321} {
		var p bn254.G1Affine
		p.ScalarMultiplication(&g1Gen, big.NewInt(k))
		compressed := p.Bytes()

		g, err := DecompressG1(compressed[:])
		c.Assert(err, qt.IsNil)
		c.Assert(g.IsOnCurve(), qt.IsTrue)
		c.Assert(g.IsInfinity(), qt.IsFalse)
		c.Assert(g.Compress(), qt.DeepEquals, compressed[:])
	}
}

func TestG1InfinityRoundTrip(t *testing.T) {
	c := qt.New(t)

	var p bn254.G1Affine // zero value is the identity element
	compressed := p.Bytes()

	g, err := DecompressG1(compressed[:])
	c.Assert(err, qt.IsNil)
	c.Assert(g.IsInfinity(), qt.IsTrue)
	c.Assert(g.Compress(), qt.DeepEquals, compressed[:])
}

func TestDecompressG1RejectsWrongLength(t *testing.T) {
	c := qt.New(t)

	_, err := DecompressG1(make([]byte, 31))
	c.Assert(err, qt.ErrorIs, ErrInvalidPoint)
	_, err = DecompressG1(make([]byte, 64))
	c.Assert(err, qt.ErrorIs, ErrInvalidPoint)
	_, err = DecompressG1(nil)
	c.Assert(err, qt.ErrorIs, ErrInvalidPoint)
}

func TestDecompressG1RejectsNonResidueX(t *testing.T) {
	c := qt.New(t)

	// Find the smallest x whose rhs x^3+3 is a quadratic non-residue:
	// no point with that x exists, so its compressed form must be rejected.
	var x, rhs, three fp.Element
	three.SetUint64(3)
	for i := uint64(1); ; i++ {
		x.SetUint64(i)
		rhs.Square(&x)
		rhs.Mul(&rhs, &x)
		rhs.Add(&rhs, &three)
		if rhs.Legendre() == -1 {
			break
		}
	}

	xb := x.Bytes()
	xb[0] |= 0x80 // "smaller y" compression flag
	_, err := DecompressG1(xb[:])
	c.Assert(err, qt.ErrorIs, ErrNotOnCurve)
}
