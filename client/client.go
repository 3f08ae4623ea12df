// Package client implements the dispersal pipeline itself: encode a
// payload, fetch its commitment, allocate a payment record, build and
// sign the blob header, submit it, and reconcile the server's reported
// blob key and status against the caller's own computation.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/Layr-Labs/eigenda-client-go/core/accountant"
	"github.com/Layr-Labs/eigenda-client-go/core/errs"
	"github.com/Layr-Labs/eigenda-client-go/core/header"
	"github.com/Layr-Labs/eigenda-client-go/crypto/codec"
	"github.com/Layr-Labs/eigenda-client-go/crypto/signer"
	"github.com/Layr-Labs/eigenda-client-go/grpcdisperser"
	"github.com/Layr-Labs/eigenda-client-go/log"
)

// Status is the outcome of a Disperse call: the server's reported
// lifecycle state and the blob key both sides agreed on.
type Status struct {
	State   grpcdisperser.BlobStatus
	BlobKey [32]byte
}

// Client drives one account's dispersal pipeline against one disperser
// connection. It is safe for concurrent use: the accountant guards its
// own state, the signer is immutable, and the RPC client is expected to
// be thread-safe.
type Client struct {
	disperser  grpcdisperser.DisperserClient
	signer     *signer.Signer
	accountant accountant.Accountant
	now        func() time.Time
}

// New builds a Client from its three collaborators. The client's clock is
// time.Now; code inside this package can replace the unexported now field
// with another clock.
func New(disperser grpcdisperser.DisperserClient, s *signer.Signer, a accountant.Accountant) *Client {
	return &Client{disperser: disperser, signer: s, accountant: a, now: time.Now}
}

// Disperse runs one full dispersal: encode, fetch commitment, allocate
// payment, build and sign the header, submit, and verify the server's
// blob key matches before trusting its status.
func (c *Client) Disperse(ctx context.Context, raw []byte, quorums []uint8, version uint16) (Status, error) {
	if len(raw) == 0 {
		return Status{}, errs.New(errs.KindInvalidInput, "raw payload must not be empty")
	}
	if len(quorums) == 0 {
		return Status{}, errs.New(errs.KindInvalidInput, "quorums must not be empty")
	}

	// Frame the payload into field-element-safe words.
	encoded := codec.EncodePayload(raw)

	// The server computes the KZG commitment; decompress it on receipt.
	commitReply, err := c.disperser.GetBlobCommitment(ctx, encoded)
	if err != nil {
		return Status{}, errs.Wrap(errs.KindTransportError, "GetBlobCommitment", err)
	}
	commitment, err := commitReply.Decommit()
	if err != nil {
		return Status{}, errs.Wrap(errs.KindInvalidPoint, "decompress blob commitment", err)
	}

	now := c.now()

	// Resync against the server's payment counters, then allocate a
	// payment record for this blob.
	if err := c.resync(ctx, now); err != nil {
		log.Warnf("accountant resync failed, proceeding with local state: %v", err)
	}
	commit, err := c.accountant.Allocate(ctx, now, len(encoded), quorums)
	if err != nil {
		return Status{}, errs.Wrap(errs.KindInsufficientFunds, "allocate payment", err)
	}

	account := c.signer.AccountID()
	h := header.BlobHeader{
		Version:       version,
		QuorumNumbers: quorums,
		Commitment:    commitment,
		Payment: header.PaymentHeader{
			AccountID:         account,
			TimestampNs:       now.UnixNano(),
			CumulativePayment: commit.CumulativePayment,
		},
	}

	blobKey, err := header.BlobKey(h)
	if err != nil {
		commit.Rollback()
		return Status{}, errs.Wrap(errs.KindInvalidInput, "build blob header", err)
	}

	sig, err := c.signer.SignBlobKey(blobKey)
	if err != nil {
		commit.Rollback()
		return Status{}, errs.Wrap(errs.KindSignatureRejected, "sign blob key", err)
	}

	status, serverBlobKey, err := c.disperser.DisperseBlob(ctx, &h, encoded, sig)
	if err != nil {
		commit.Rollback()
		return Status{}, errs.Wrap(errs.KindTransportError, "DisperseBlob", err)
	}

	// The server computes the same key independently; any mismatch means
	// a codec or field-ordering bug on one side.
	if serverBlobKey != blobKey {
		commit.Rollback()
		return Status{}, errs.New(errs.KindBlobKeyMismatch, fmt.Sprintf("server key %x != local key %x", serverBlobKey, blobKey))
	}

	// Accept non-failure states; roll back and surface anything the
	// server reports as a failure.
	if status == grpcdisperser.BlobStatusFailed {
		commit.Rollback()
		return Status{}, errs.New(errs.KindServerFailure, "disperser rejected blob")
	}

	return Status{State: status, BlobKey: blobKey}, nil
}

func (c *Client) resync(ctx context.Context, now time.Time) error {
	account := c.signer.AccountID()
	sig, err := c.signer.SignPaymentStateRequest(account, now.UnixNano())
	if err != nil {
		return fmt.Errorf("sign payment state request: %w", err)
	}
	reply, err := c.disperser.GetPaymentState(ctx, account, now.UnixNano(), sig)
	if err != nil {
		return fmt.Errorf("GetPaymentState: %w", err)
	}
	state := accountant.PaymentState{}
	if reply.OnchainCumulativePayment != nil {
		state.OnchainCumulativePayment = reply.OnchainCumulativePayment.MathBigInt()
	}
	if reply.CurrentCumulativePayment != nil {
		state.CurrentCumulativePayment = reply.CurrentCumulativePayment.MathBigInt()
	}
	c.accountant.Resync(state)
	return nil
}

// GetBlobStatus polls the disperser for a previously submitted blob's
// current lifecycle state.
func (c *Client) GetBlobStatus(ctx context.Context, blobKey [32]byte) (grpcdisperser.BlobStatus, error) {
	status, err := c.disperser.GetBlobStatus(ctx, blobKey)
	if err != nil {
		return grpcdisperser.BlobStatusUnknown, errs.Wrap(errs.KindTransportError, "GetBlobStatus", err)
	}
	return status, nil
}
