package grpcdisperser

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/Layr-Labs/eigenda-client-go/crypto/curve"
)

func TestCommitmentReplyDecommitRoundTrips(t *testing.T) {
	c := qt.New(t)

	g1 := &curve.G1{}
	g2 := &curve.G2{}
	reply := CommitmentReply{
		CommitmentCompressed:       g1.Compress(),
		LengthCommitmentCompressed: g2.Compress(),
		LengthProofCompressed:      g2.Compress(),
		Length:                     4096,
	}

	commitment, err := reply.Decommit()
	c.Assert(err, qt.IsNil)
	c.Assert(commitment.Length, qt.Equals, uint32(4096))
	c.Assert(commitment.Commitment.IsInfinity(), qt.IsTrue)
	c.Assert(commitment.LengthCommitment.IsInfinity(), qt.IsTrue)
	c.Assert(commitment.LengthProof.IsInfinity(), qt.IsTrue)
}

func TestCommitmentReplyDecommitRejectsMalformedPoint(t *testing.T) {
	c := qt.New(t)

	reply := CommitmentReply{
		CommitmentCompressed:       []byte{0x01, 0x02},
		LengthCommitmentCompressed: (&curve.G2{}).Compress(),
		LengthProofCompressed:      (&curve.G2{}).Compress(),
	}
	_, err := reply.Decommit()
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestBlobStatusTerminal(t *testing.T) {
	c := qt.New(t)
	c.Assert(BlobStatusComplete.Terminal(), qt.IsTrue)
	c.Assert(BlobStatusFailed.Terminal(), qt.IsTrue)
	c.Assert(BlobStatusQueued.Terminal(), qt.IsFalse)
	c.Assert(BlobStatusGatheringSignatures.Terminal(), qt.IsFalse)
}
