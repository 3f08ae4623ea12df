// Package curve decompresses and re-compresses the BN254 G1/G2 points
// that travel on the wire inside a BlobCommitment. The flag bits
// 0x40/0x80/0xC0 in the top of the first byte select infinity, smaller-y
// or larger-y; gnark-crypto's bn254 package defines that convention, so
// this package wraps its SetBytes/Bytes rather than reimplementing the
// square-root and sign-selection arithmetic.
package curve

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G1CompressedSize is the wire size of a compressed G1 point.
const G1CompressedSize = 32

// G1 is a decompressed BN254 G1 point.
type G1 struct {
	inner bn254.G1Affine
}

// DecompressG1 decompresses a gnark-compressed G1 point (32 bytes).
func DecompressG1(b []byte) (*G1, error) {
	if len(b) != G1CompressedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPoint, G1CompressedSize, len(b))
	}
	g := new(G1)
	if _, err := g.inner.SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotOnCurve, err)
	}
	return g, nil
}

// Compress re-encodes the point using the same gnark compression convention
// it was decoded from. compress(decompress(c)) == c for any valid c.
func (g *G1) Compress() []byte {
	b := g.inner.Bytes()
	return b[:]
}

// XY returns the affine x, y coordinates as big-endian 32-byte arrays.
func (g *G1) XY() (x, y [32]byte) {
	xb := g.inner.X.Bytes()
	yb := g.inner.Y.Bytes()
	return xb, yb
}

// IsInfinity reports whether the point is the identity element.
func (g *G1) IsInfinity() bool {
	return g.inner.X.IsZero() && g.inner.Y.IsZero()
}

// IsOnCurve reports whether the point satisfies y^2 = x^3 + 3.
func (g *G1) IsOnCurve() bool {
	return g.inner.IsOnCurve()
}

// Affine exposes the underlying gnark-crypto point for callers that need
// to feed it into further curve arithmetic outside this package's scope
// (e.g. pairing checks performed server-side).
func (g *G1) Affine() bn254.G1Affine {
	return g.inner
}
