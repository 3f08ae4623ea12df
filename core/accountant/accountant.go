// Package accountant implements the local payment state machine that
// decides, for each blob about to be dispersed, whether a reservation or
// an on-demand payment covers it, and what to attach to the blob header
// as a result. It mirrors the disperser's own bin-accounting from the
// client's side of the same ledger, so that a well-behaved client never
// gets rejected for a payment it believes is valid.
package accountant

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"
)

// ErrInsufficientFunds is returned when neither an active reservation nor
// the on-demand balance can cover a blob's symbol cost.
var ErrInsufficientFunds = errors.New("accountant: insufficient funds")

// PaymentMethod records which regime covered a dispersal.
type PaymentMethod int

const (
	PaymentReservation PaymentMethod = iota
	PaymentOnDemand
)

func (m PaymentMethod) String() string {
	switch m {
	case PaymentReservation:
		return "reservation"
	case PaymentOnDemand:
		return "on-demand"
	default:
		return "unknown"
	}
}

// Reservation is a pre-paid bandwidth allowance over a fixed set of
// quorums, active during [StartNs, EndNs).
type Reservation struct {
	SymbolsPerSecond uint64
	StartNs          int64
	EndNs            int64
	QuorumNumbers    []uint8
	QuorumSplits     map[uint8]uint8
}

func (r Reservation) activeAt(nowNs int64) bool {
	return nowNs >= r.StartNs && nowNs < r.EndNs
}

func (r Reservation) covers(quorums []uint8) bool {
	if len(quorums) == 0 {
		return false
	}
	allowed := make(map[uint8]bool, len(r.QuorumNumbers))
	for _, q := range r.QuorumNumbers {
		allowed[q] = true
	}
	for _, q := range quorums {
		if !allowed[q] {
			return false
		}
	}
	return true
}

// PeriodRecord is one slot of a reservation's three-slot circular usage
// buffer; Index identifies which period (floor(t_seconds/interval)) the
// slot currently tracks.
type PeriodRecord struct {
	Index        uint32
	UsageSymbols uint64
}

// ledger pairs a reservation with its rolling period-usage buffer.
type ledger struct {
	reservation Reservation
	interval    uint32
	records     [3]PeriodRecord
}

func newLedger(r Reservation, intervalSeconds uint32) *ledger {
	return &ledger{reservation: r, interval: intervalSeconds}
}

func periodIndex(nowNs int64, intervalSeconds uint32) uint32 {
	return uint32(nowNs/int64(time.Second)) / intervalSeconds
}

// slot returns the record tracking period index. Slots are recycled
// lazily: a slot last used for an older period is reset the first time
// a newer period index claims it, which is exactly what makes the
// three-record array behave as a circular buffer rather than a map that
// grows without bound.
func (l *ledger) slot(index uint32) *PeriodRecord {
	pos := int(index % 3)
	if l.records[pos].Index != index {
		l.records[pos] = PeriodRecord{Index: index}
	}
	return &l.records[pos]
}

// tryReserve attempts to charge symbols against the reservation's current
// period, splitting the overflow into the next period when the current
// one cannot absorb it all. It returns whether the charge committed and,
// if so, a function that undoes it.
func (l *ledger) tryReserve(nowNs int64, symbols uint64) (bool, func()) {
	if !l.reservation.activeAt(nowNs) {
		return false, nil
	}
	budgetPerPeriod := l.reservation.SymbolsPerSecond * uint64(l.interval)
	idx := periodIndex(nowNs, l.interval)
	cur := l.slot(idx)

	if cur.UsageSymbols+symbols <= budgetPerPeriod {
		cur.UsageSymbols += symbols
		return true, func() { cur.UsageSymbols -= symbols }
	}

	remainingInCurrent := budgetPerPeriod - cur.UsageSymbols
	overflow := symbols - remainingInCurrent
	if overflow > budgetPerPeriod {
		return false, nil
	}
	next := l.slot(idx + 1)
	if next.UsageSymbols+overflow > budgetPerPeriod {
		return false, nil
	}
	cur.UsageSymbols = budgetPerPeriod
	next.UsageSymbols += overflow
	return true, func() {
		cur.UsageSymbols -= remainingInCurrent
		next.UsageSymbols -= overflow
	}
}

// onDemandState tracks the client's local view of the cumulative-wei
// counter and the on-chain deposit it must not exceed.
type onDemandState struct {
	pricePerSymbol    uint64
	currentCumulative *big.Int
	onchainCumulative *big.Int
}

// tryCharge attempts to extend the cumulative payment counter by
// symbols*pricePerSymbol, refusing if doing so would exceed the on-chain
// deposit. The returned bytes are the new cumulative
// total, big-endian and leading-zero-stripped (empty for zero), which is
// exactly what big.Int.Bytes produces.
func (s *onDemandState) tryCharge(symbols uint64) (bool, []byte, func()) {
	cost := new(big.Int).Mul(new(big.Int).SetUint64(symbols), new(big.Int).SetUint64(s.pricePerSymbol))
	newTotal := new(big.Int).Add(s.currentCumulative, cost)
	if newTotal.Cmp(s.onchainCumulative) > 0 {
		return false, nil, nil
	}
	prev := s.currentCumulative
	s.currentCumulative = newTotal
	return true, newTotal.Bytes(), func() { s.currentCumulative = prev }
}

// symbolCost is the number of 32-byte words in the encoded payload,
// floored at minNumSymbols.
func symbolCost(encodedLen int, minNumSymbols uint64) uint64 {
	symbols := uint64(ceilDiv(encodedLen, 32))
	if symbols < minNumSymbols {
		return minNumSymbols
	}
	return symbols
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Commit is the outcome of a successful Allocate: which payment method
// covered the blob, and, for on-demand, the wire-form cumulative payment
// to place in the header. Rollback undoes the underlying state mutation;
// it is idempotent and safe to call even if the commit was never used.
type Commit struct {
	Method            PaymentMethod
	CumulativePayment []byte

	rollback   func()
	rolledBack bool
}

func (c *Commit) Rollback() {
	if c == nil || c.rolledBack || c.rollback == nil {
		return
	}
	c.rollback()
	c.rolledBack = true
}

// PaymentState is the server's snapshot of the account's payment
// counters, fetched via GetPaymentState before an on-demand dispersal.
type PaymentState struct {
	OnchainCumulativePayment *big.Int
	CurrentCumulativePayment *big.Int
}

// Accountant is the dual-mode payment decision engine. Implementations
// are safe for concurrent use; Allocate and Resync share a single lock
// per account so that a dispersal's bin charge and a concurrent resync
// never interleave.
type Accountant interface {
	// Allocate charges symbols(encodedLen) against a reservation covering
	// quorums if one is active, falling back to on-demand. It returns
	// ErrInsufficientFunds if neither regime can cover the blob.
	Allocate(ctx context.Context, now time.Time, encodedLen int, quorums []uint8) (*Commit, error)
	// Resync advances the local cumulative payment to a higher server
	// value, recovering from payments the client believed failed but the
	// server actually counted, and replaces the on-chain deposit with the
	// server's value whenever the snapshot carries one.
	Resync(state PaymentState)
}

type simpleAccountant struct {
	mu          sync.Mutex
	minSymbols  uint64
	reservation *ledger // nil when the account has no reservation
	onDemand    *onDemandState
}

// NewSimple builds an Accountant for the common case of a single
// reservation (or none) shared across all quorums it names.
func NewSimple(pricePerSymbol, minNumSymbols uint64, reservationPeriodIntervalSeconds uint32, reservation *Reservation, onchainCumulativePayment *big.Int) Accountant {
	a := &simpleAccountant{
		minSymbols: minNumSymbols,
		onDemand: &onDemandState{
			pricePerSymbol:    pricePerSymbol,
			currentCumulative: big.NewInt(0),
			onchainCumulative: new(big.Int).Set(onchainCumulativePayment),
		},
	}
	if reservation != nil {
		a.reservation = newLedger(*reservation, reservationPeriodIntervalSeconds)
	}
	return a
}

func (a *simpleAccountant) Allocate(ctx context.Context, now time.Time, encodedLen int, quorums []uint8) (*Commit, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	symbols := symbolCost(encodedLen, a.minSymbols)
	nowNs := now.UnixNano()

	if a.reservation != nil && a.reservation.reservation.covers(quorums) {
		if committed, rollback := a.reservation.tryReserve(nowNs, symbols); committed {
			return &Commit{Method: PaymentReservation, rollback: rollback}, nil
		}
	}

	if committed, cumulative, rollback := a.onDemand.tryCharge(symbols); committed {
		return &Commit{Method: PaymentOnDemand, CumulativePayment: cumulative, rollback: rollback}, nil
	}

	return nil, ErrInsufficientFunds
}

func (a *simpleAccountant) Resync(state PaymentState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	resync(a.onDemand, state)
}

// resync only ever advances the cumulative counter, never regresses it: a
// lower server value means the server has not yet seen a locally
// committed charge, not that the charge can be forgotten.
func resync(s *onDemandState, state PaymentState) {
	if state.CurrentCumulativePayment != nil && state.CurrentCumulativePayment.Cmp(s.currentCumulative) > 0 {
		s.currentCumulative = new(big.Int).Set(state.CurrentCumulativePayment)
	}
	if state.OnchainCumulativePayment != nil {
		s.onchainCumulative = new(big.Int).Set(state.OnchainCumulativePayment)
	}
}

type advancedAccountant struct {
	mu           sync.Mutex
	minSymbols   uint64
	reservations map[uint8]*ledger
	onDemand     *onDemandState
}

// NewAdvanced builds an Accountant for the per-quorum reservation mode,
// where every quorum in a dispersal must have its own active
// reservation for the reservation path to apply at all.
func NewAdvanced(pricePerSymbol, minNumSymbols uint64, reservationPeriodIntervalSeconds uint32, reservations map[uint8]Reservation, onchainCumulativePayment *big.Int) Accountant {
	rs := make(map[uint8]*ledger, len(reservations))
	for q, r := range reservations {
		rs[q] = newLedger(r, reservationPeriodIntervalSeconds)
	}
	return &advancedAccountant{
		minSymbols:   minNumSymbols,
		reservations: rs,
		onDemand: &onDemandState{
			pricePerSymbol:    pricePerSymbol,
			currentCumulative: big.NewInt(0),
			onchainCumulative: new(big.Int).Set(onchainCumulativePayment),
		},
	}
}

func (a *advancedAccountant) Allocate(ctx context.Context, now time.Time, encodedLen int, quorums []uint8) (*Commit, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	symbols := symbolCost(encodedLen, a.minSymbols)
	nowNs := now.UnixNano()

	ledgers, allCovered := a.quorumLedgers(quorums, nowNs)
	if allCovered {
		rollbacks := make([]func(), 0, len(ledgers))
		ok := true
		for _, l := range ledgers {
			committed, rollback := l.tryReserve(nowNs, symbols)
			if !committed {
				ok = false
				break
			}
			rollbacks = append(rollbacks, rollback)
		}
		if ok {
			return &Commit{Method: PaymentReservation, rollback: func() {
				for _, rb := range rollbacks {
					rb()
				}
			}}, nil
		}
		for _, rb := range rollbacks {
			rb()
		}
	}

	if committed, cumulative, rollback := a.onDemand.tryCharge(symbols); committed {
		return &Commit{Method: PaymentOnDemand, CumulativePayment: cumulative, rollback: rollback}, nil
	}

	return nil, ErrInsufficientFunds
}

func (a *advancedAccountant) quorumLedgers(quorums []uint8, nowNs int64) ([]*ledger, bool) {
	if len(quorums) == 0 {
		return nil, false
	}
	ledgers := make([]*ledger, 0, len(quorums))
	for _, q := range quorums {
		l, ok := a.reservations[q]
		if !ok || !l.reservation.activeAt(nowNs) {
			return nil, false
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, true
}

func (a *advancedAccountant) Resync(state PaymentState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	resync(a.onDemand, state)
}
