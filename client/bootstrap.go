package client

import (
	"context"
	"math/big"
	"time"

	"github.com/Layr-Labs/eigenda-client-go/core/accountant"
	"github.com/Layr-Labs/eigenda-client-go/core/errs"
	"github.com/Layr-Labs/eigenda-client-go/crypto/signer"
	"github.com/Layr-Labs/eigenda-client-go/grpcdisperser"
	"github.com/Layr-Labs/eigenda-client-go/types"
)

// BootstrapAccountant builds an accountant from the server's view of the
// account's payment state. The server is the only durable copy of that
// state: nothing survives a process restart on the client side, so every
// new process starts by asking the disperser where the counters stand.
// perQuorum selects the advanced accounting mode, where each quorum
// carries its own reservation and period buffer.
func BootstrapAccountant(ctx context.Context, d grpcdisperser.DisperserClient, s *signer.Signer, perQuorum bool) (accountant.Accountant, error) {
	now := time.Now().UnixNano()
	account := s.AccountID()
	sig, err := s.SignPaymentStateRequest(account, now)
	if err != nil {
		return nil, errs.Wrap(errs.KindSignatureRejected, "sign payment state request", err)
	}

	if perQuorum {
		reply, err := d.GetPaymentStateForAllQuorums(ctx, account, now, sig)
		if err != nil {
			return nil, errs.Wrap(errs.KindTransportError, "GetPaymentStateForAllQuorums", err)
		}
		reservations := make(map[uint8]accountant.Reservation, len(reply.Reservations))
		for q, r := range reply.Reservations {
			reservations[q] = reservationFromReply(r)
		}
		a := accountant.NewAdvanced(reply.PricePerSymbol, reply.MinNumSymbols, reply.ReservationPeriodSeconds,
			reservations, bigOrZero(reply.OnchainCumulativePayment))
		a.Resync(accountant.PaymentState{CurrentCumulativePayment: bigOrZero(reply.CurrentCumulativePayment)})
		return a, nil
	}

	reply, err := d.GetPaymentState(ctx, account, now, sig)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransportError, "GetPaymentState", err)
	}
	var reservation *accountant.Reservation
	if reply.Reservation != nil {
		r := reservationFromReply(*reply.Reservation)
		reservation = &r
	}
	a := accountant.NewSimple(reply.PricePerSymbol, reply.MinNumSymbols, reply.ReservationPeriodSeconds,
		reservation, bigOrZero(reply.OnchainCumulativePayment))
	a.Resync(accountant.PaymentState{CurrentCumulativePayment: bigOrZero(reply.CurrentCumulativePayment)})
	return a, nil
}

func reservationFromReply(r grpcdisperser.ReservationReply) accountant.Reservation {
	return accountant.Reservation{
		SymbolsPerSecond: r.SymbolsPerSecond,
		StartNs:          r.StartNs,
		EndNs:            r.EndNs,
		QuorumNumbers:    r.QuorumNumbers,
		QuorumSplits:     r.QuorumSplits,
	}
}

func bigOrZero(v *types.BigInt) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v.MathBigInt()
}
