// Package retrieval implements the read side of the pipeline: given a
// header and the reference block number recorded at dispersal time,
// fetch the encoded payload from a storage node and decode it back to
// the caller's original bytes.
package retrieval

import (
	"context"

	"github.com/Layr-Labs/eigenda-client-go/core/errs"
	"github.com/Layr-Labs/eigenda-client-go/core/header"
	"github.com/Layr-Labs/eigenda-client-go/crypto/codec"
	"github.com/Layr-Labs/eigenda-client-go/grpcdisperser"
)

// Client retrieves and decodes previously dispersed blobs. The caller
// owns persisting the header and reference block number from the
// dispersal step; this package has no memory of past dispersals.
type Client struct {
	retriever grpcdisperser.RetrieverClient
}

func New(retriever grpcdisperser.RetrieverClient) *Client {
	return &Client{retriever: retriever}
}

// Retrieve fetches the encoded payload for h from quorumID at
// referenceBlockNumber and decodes it back to the original bytes.
// originalLen is the pre-encoding payload length the caller recorded at
// dispersal time: C2 cannot recover it from the encoded bytes alone,
// since trailing zero padding is indistinguishable from real trailing
// zero content without it.
func (c *Client) Retrieve(ctx context.Context, h *header.BlobHeader, referenceBlockNumber uint64, quorumID uint8, originalLen int) ([]byte, error) {
	encoded, err := c.retriever.GetBlob(ctx, h, referenceBlockNumber, quorumID)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransportError, "GetBlob", err)
	}

	raw, err := codec.DecodePayload(encoded, originalLen)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidInput, "decode retrieved payload", err)
	}
	return raw, nil
}
