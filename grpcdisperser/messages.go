// Package grpcdisperser declares the two service boundaries the dispersal
// pipeline talks to, the disperser and the retriever, at the interface
// level only. The generated protobuf stubs and the wire transport they
// would run over are treated as an external collaborator: a production
// build wires a real github.com/Layr-Labs/eigenda/api/grpc/disperser
// client in here; this package fixes the shape that client must satisfy
// and owns the one piece of transport setup that is not generated code,
// dialing the channel.
package grpcdisperser

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/eigenda-client-go/core/header"
	"github.com/Layr-Labs/eigenda-client-go/types"
)

// BlobStatus mirrors the disperser's coarse-grained lifecycle states for
// a submitted blob.
type BlobStatus int

const (
	BlobStatusUnknown BlobStatus = iota
	BlobStatusQueued
	BlobStatusEncoded
	BlobStatusGatheringSignatures
	BlobStatusComplete
	BlobStatusFailed
)

func (s BlobStatus) String() string {
	switch s {
	case BlobStatusQueued:
		return "queued"
	case BlobStatusEncoded:
		return "encoded"
	case BlobStatusGatheringSignatures:
		return "gathering_signatures"
	case BlobStatusComplete:
		return "complete"
	case BlobStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status will never change again.
func (s BlobStatus) Terminal() bool {
	return s == BlobStatusComplete || s == BlobStatusFailed
}

// CommitmentReply is the disperser's response to GetBlobCommitment: the
// BN254 commitment data a BlobHeader embeds, still in its compressed wire
// form exactly as sent on the channel.
type CommitmentReply struct {
	CommitmentCompressed       []byte // 32 bytes, G1
	LengthCommitmentCompressed []byte // 64 bytes, G2
	LengthProofCompressed      []byte // 64 bytes, G2
	Length                     uint32
}

// Decommit decompresses the three points into a header.BlobCommitment.
func (r *CommitmentReply) Decommit() (header.BlobCommitment, error) {
	g1, err := decompressG1(r.CommitmentCompressed)
	if err != nil {
		return header.BlobCommitment{}, err
	}
	lc, err := decompressG2(r.LengthCommitmentCompressed)
	if err != nil {
		return header.BlobCommitment{}, err
	}
	lp, err := decompressG2(r.LengthProofCompressed)
	if err != nil {
		return header.BlobCommitment{}, err
	}
	return header.BlobCommitment{
		Commitment:       g1,
		LengthCommitment: lc,
		LengthProof:      lp,
		Length:           r.Length,
	}, nil
}

// PaymentStateReply is the server's snapshot of one account's global
// payment counters, used both to resync the accountant and to discover
// network-level pricing.
type PaymentStateReply struct {
	OnchainCumulativePayment *types.BigInt
	CurrentCumulativePayment *types.BigInt
	PricePerSymbol           uint64
	MinNumSymbols            uint64
	ReservationPeriodSeconds uint32
	Reservation              *ReservationReply
}

// PerQuorumPaymentStateReply is the per-quorum variant used by advanced
// (quorum-scoped reservation) accounting.
type PerQuorumPaymentStateReply struct {
	OnchainCumulativePayment *types.BigInt
	CurrentCumulativePayment *types.BigInt
	PricePerSymbol           uint64
	MinNumSymbols            uint64
	ReservationPeriodSeconds uint32
	Reservations             map[uint8]ReservationReply
}

// ReservationReply is the wire form of a reservation grant.
type ReservationReply struct {
	SymbolsPerSecond uint64
	StartNs          int64
	EndNs            int64
	QuorumNumbers    []uint8
	QuorumSplits     map[uint8]uint8
}

// Account is a type alias for common.Address (the same type under a
// domain name) so call sites read as domain code rather than raw Ethereum
// plumbing.
type Account = common.Address
