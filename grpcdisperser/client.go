package grpcdisperser

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/eigenda-client-go/core/header"
)

// DisperserClient is the disperser-facing half of the wire protocol. A
// production build backs this with generated protobuf stubs over the
// channel returned by Dial; callers in this module only depend on the
// interface, so tests substitute an in-memory fake.
type DisperserClient interface {
	// GetBlobCommitment asks the disperser to compute the BN254
	// commitment and length proof for an already-encoded payload.
	GetBlobCommitment(ctx context.Context, encoded []byte) (*CommitmentReply, error)

	// GetPaymentState fetches the caller's payment counters, authenticated
	// by a signature over the request digest (see crypto/signer).
	GetPaymentState(ctx context.Context, account common.Address, timestampNs int64, signature [65]byte) (*PaymentStateReply, error)

	// GetPaymentStateForAllQuorums is the per-quorum variant consumed by
	// an accountant built in advanced mode.
	GetPaymentStateForAllQuorums(ctx context.Context, account common.Address, timestampNs int64, signature [65]byte) (*PerQuorumPaymentStateReply, error)

	// DisperseBlob submits the signed header and encoded payload. The
	// returned blob key is the server's own computation; the caller
	// verifies it against the locally derived key before trusting status.
	DisperseBlob(ctx context.Context, h *header.BlobHeader, encoded []byte, signature [65]byte) (BlobStatus, [32]byte, error)

	// GetBlobStatus polls for the current lifecycle state of a
	// previously dispersed blob.
	GetBlobStatus(ctx context.Context, blobKey [32]byte) (BlobStatus, error)
}

// RetrieverClient is the storage-node-facing half of the protocol.
// Transport and endpoint discovery live with the generated stubs; callers
// obtain a concrete implementation the same way they obtain a
// DisperserClient.
type RetrieverClient interface {
	GetBlob(ctx context.Context, h *header.BlobHeader, referenceBlockNumber uint64, quorumID uint8) ([]byte, error)
}
