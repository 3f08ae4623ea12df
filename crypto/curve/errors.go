package curve

import "errors"

// ErrInvalidPoint is returned when compressed point bytes are malformed
// (wrong length, or the flag bits request infinity on a non-zero x).
var ErrInvalidPoint = errors.New("curve: invalid point encoding")

// ErrNotOnCurve is returned when the decompressed x has no corresponding
// y on the curve (rhs is a non-residue).
var ErrNotOnCurve = errors.New("curve: point is not on curve")
