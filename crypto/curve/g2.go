package curve

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G2CompressedSize is the wire size of a compressed G2 point.
const G2CompressedSize = 64

// G2 is a decompressed BN254 G2 point.
type G2 struct {
	inner bn254.G2Affine
}

// DecompressG2 decompresses a gnark-compressed G2 point (64 bytes). The
// wire's high-limb-first coordinate order (x1 then x0) is gnark-crypto's
// own G2Affine.SetBytes convention, so no coordinate reordering is needed
// here.
func DecompressG2(b []byte) (*G2, error) {
	if len(b) != G2CompressedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoint, G2CompressedSize, len(b))
	}
	g := new(G2)
	if _, err := g.inner.SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotOnCurve, err)
	}
	return g, nil
}

// Compress re-encodes the point using the same gnark compression convention
// it was decoded from.
func (g *G2) Compress() []byte {
	b := g.inner.Bytes()
	return b[:]
}

// XY returns the Fp2 affine coordinates as (x0, x1, y0, y1) big-endian
// 32-byte limbs, the shape the blob-key ABI tuple encodes.
func (g *G2) XY() (x0, x1, y0, y1 [32]byte) {
	return g.inner.X.A0.Bytes(), g.inner.X.A1.Bytes(), g.inner.Y.A0.Bytes(), g.inner.Y.A1.Bytes()
}

// IsInfinity reports whether the point is the identity element.
func (g *G2) IsInfinity() bool {
	return g.inner.X.IsZero() && g.inner.Y.IsZero()
}

// IsOnCurve reports whether the point satisfies the G2 curve equation
// y^2 = x^3 + b' for the BN254 twist.
func (g *G2) IsOnCurve() bool {
	return g.inner.IsOnCurve()
}

// Affine exposes the underlying gnark-crypto point.
func (g *G2) Affine() bn254.G2Affine {
	return g.inner
}
