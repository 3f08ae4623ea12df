// Package header builds the canonical BlobHeader and derives the blob key
// that identifies a dispersed blob. The derivation must be bit-for-bit
// identical to every other client language's implementation, so every
// field is encoded through crypto/codec's fixed-width ABI primitives.
package header

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Layr-Labs/eigenda-client-go/crypto/codec"
	"github.com/Layr-Labs/eigenda-client-go/crypto/curve"
)

// SupportedVersions is the set of blob-header versions this client can
// produce. The disperser may support a wider set; producing a version
// outside this set is refused locally rather than rejected server-side.
var SupportedVersions = map[uint16]bool{0: true}

// BlobCommitment mirrors the disperser's GetBlobCommitment response once
// decompressed: a G1 commitment, a G2 length commitment and length proof,
// and the number of 32-byte symbols in the encoded payload.
type BlobCommitment struct {
	Commitment       *curve.G1
	LengthCommitment *curve.G2
	LengthProof      *curve.G2
	Length           uint32
}

// PaymentHeader is the (account, timestamp, cumulative payment) triple
// that selects and proves a payment method. CumulativePayment is the
// big-endian, leading-zero-stripped wire form; an empty slice means
// "reservation use."
type PaymentHeader struct {
	AccountID         common.Address
	TimestampNs       int64
	CumulativePayment []byte
}

// BlobHeader is the full header whose canonical hash is the blob key.
type BlobHeader struct {
	Version       uint16
	QuorumNumbers []uint8
	Commitment    BlobCommitment
	Payment       PaymentHeader
}

// Validate checks the header invariants the disperser enforces: quorum
// numbers sorted and unique, and a supported version.
func (h *BlobHeader) Validate() error {
	if !SupportedVersions[h.Version] {
		return fmt.Errorf("unsupported blob header version %d", h.Version)
	}
	if len(h.QuorumNumbers) == 0 {
		return fmt.Errorf("quorum numbers must not be empty")
	}
	if !slices.IsSorted(h.QuorumNumbers) {
		return fmt.Errorf("quorum numbers must be sorted")
	}
	for i := 1; i < len(h.QuorumNumbers); i++ {
		if h.QuorumNumbers[i] == h.QuorumNumbers[i-1] {
			return fmt.Errorf("duplicate quorum number %d", h.QuorumNumbers[i])
		}
	}
	return nil
}

// PaymentMetadataHash hashes (account, timestamp, cumulative_payment) as
// the integer value of the cumulative payment, not its stripped-bytes wire
// form.
func PaymentMetadataHash(p PaymentHeader) [32]byte {
	cumulative := new(big.Int).SetBytes(p.CumulativePayment)
	tuple := codec.Concat(
		codec.WordBytes(codec.LeftPadBytes(p.AccountID.Bytes())),
		codec.WordBytes(codec.LeftPadUint(uint64(p.TimestampNs))),
		codec.WordBytes(codec.LeftPadBigInt(cumulative)),
	)
	return [32]byte(ethcrypto.Keccak256(tuple))
}

// commitmentTuple encodes the BlobCommitment fields in their canonical
// order: G1 (x, y), G2 length commitment (x0, x1, y0, y1), G2 length
// proof (x0, x1, y0, y1), length.
func commitmentTuple(c BlobCommitment) []byte {
	cx, cy := c.Commitment.XY()
	lcx0, lcx1, lcy0, lcy1 := c.LengthCommitment.XY()
	lpx0, lpx1, lpy0, lpy1 := c.LengthProof.XY()

	return codec.Concat(
		cx[:], cy[:],
		lcx0[:], lcx1[:], lcy0[:], lcy1[:],
		lpx0[:], lpx1[:], lpy0[:], lpy1[:],
		codec.WordBytes(codec.LeftPadUint(uint64(c.Length))),
	)
}

// BlobKey derives the 32-byte blob key: keccak256 of
// (version, quorum_numbers, blob_commitment, payment_metadata_hash).
// quorum_numbers are packed tightly (one raw byte per quorum, no ABI
// padding) rather than encoded as a fixed-size word array; see DESIGN.md.
func BlobKey(h BlobHeader) ([32]byte, error) {
	if err := h.Validate(); err != nil {
		return [32]byte{}, fmt.Errorf("invalid blob header: %w", err)
	}
	pmHash := PaymentMetadataHash(h.Payment)

	tuple := codec.Concat(
		codec.WordBytes(codec.LeftPadUint(uint64(h.Version))),
		codec.PackedBytes(h.QuorumNumbers),
		commitmentTuple(h.Commitment),
		pmHash[:],
	)
	return [32]byte(ethcrypto.Keccak256(tuple)), nil
}
