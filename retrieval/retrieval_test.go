package retrieval

import (
	"bytes"
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/Layr-Labs/eigenda-client-go/core/header"
	"github.com/Layr-Labs/eigenda-client-go/crypto/codec"
)

type fakeRetriever struct {
	encoded []byte
	err     error
}

func (f *fakeRetriever) GetBlob(ctx context.Context, h *header.BlobHeader, referenceBlockNumber uint64, quorumID uint8) ([]byte, error) {
	return f.encoded, f.err
}

func TestRetrieveDecodesPayload(t *testing.T) {
	c := qt.New(t)

	raw := []byte("Hello, EigenDA!")
	encoded := codec.EncodePayload(raw)

	cl := New(&fakeRetriever{encoded: encoded})
	got, err := cl.Retrieve(context.Background(), &header.BlobHeader{}, 12345, 0, len(raw))
	c.Assert(err, qt.IsNil)
	c.Assert(bytes.Equal(got, raw), qt.IsTrue)
}

func TestRetrieveSurfacesTransportError(t *testing.T) {
	c := qt.New(t)

	cl := New(&fakeRetriever{err: context.DeadlineExceeded})
	_, err := cl.Retrieve(context.Background(), &header.BlobHeader{}, 1, 0, 10)
	c.Assert(err, qt.Not(qt.IsNil))
}
