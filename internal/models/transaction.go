// Package models defines data structures for foliocore
package models

import "time"

// EventKind is the closed enumeration of canonical transaction kinds.
// Free text from upstream rows is mapped to one of these at the
// ingestion boundary; the ledger core never sees raw strings.
type EventKind string

const (
	EventBuy          EventKind = "buy"
	EventSell         EventKind = "sell"
	EventContribution EventKind = "contribution"
	EventWithdrawal   EventKind = "withdrawal"
	EventInterest     EventKind = "interest"
	EventCharge       EventKind = "charge"
)

// validEventKinds lists all accepted event kinds.
var validEventKinds = map[EventKind]bool{
	EventBuy:          true,
	EventSell:         true,
	EventContribution: true,
	EventWithdrawal:   true,
	EventInterest:     true,
	EventCharge:       true,
}

// ValidEventKind returns true if k is a valid event kind.
func ValidEventKind(k EventKind) bool {
	return validEventKinds[k]
}

// OpensLot returns true if the kind creates a cost lot on a ledger.
func (k EventKind) OpensLot() bool {
	return k == EventBuy || k == EventContribution
}

// ConsumesLots returns true if the kind consumes open lots oldest-first.
func (k EventKind) ConsumesLots() bool {
	return k == EventSell || k == EventWithdrawal
}

// LedgerKey identifies one (instrument, account) ledger. It is a
// comparable value type used directly as a map key, so instrument or
// account names containing delimiter characters cannot collide.
type LedgerKey struct {
	Instrument string `json:"instrument"`
	Account    string `json:"account"`
}

// TransactionEvent is a normalized transaction record. Immutable once
// built; Sequence is the stable tiebreaker for equal effective dates.
type TransactionEvent struct {
	ID            string    `json:"id"`
	Key           LedgerKey `json:"key"`
	Kind          EventKind `json:"kind"`
	Units         float64   `json:"units"`
	Price         float64   `json:"price"`  // unit price or NAV
	Amount        float64   `json:"amount"` // explicit amount when units/price absent
	EffectiveDate time.Time `json:"effective_date"`
	Sequence      int64     `json:"sequence"`
}

// Cost returns the cost of the event: units × price, or the explicit
// amount when no priced units are present.
func (e *TransactionEvent) Cost() float64 {
	if e.Units > 0 && e.Price > 0 {
		return e.Units * e.Price
	}
	return e.Amount
}
