// Package ledger implements FIFO cost-lot tracking per (instrument, account) pair.
package ledger

import (
	"sort"
	"time"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// Epsilon is the threshold below which residual units or cost basis are
// treated as zero and the lot is evicted.
const Epsilon = 1e-8

// Lot is an open cost-basis tranche created by a buy or contribution.
// It is exclusively owned by one ledger and reduced in place by later
// sales on the same ledger.
type Lot struct {
	Units          float64
	CostBasis      float64
	OpenDate       time.Time
	OriginSequence int64
}

// UnitCost returns the per-unit cost of the lot.
func (l *Lot) UnitCost() float64 {
	if l.Units <= Epsilon {
		return 0
	}
	return l.CostBasis / l.Units
}

// ledger stores open lots arena-style: the slice only grows, and head
// marks the oldest lot that still has units. This keeps consumption
// O(1) amortised without reslicing the front on every sale.
type ledger struct {
	lots []Lot
	head int
}

func (lg *ledger) open() []Lot {
	out := make([]Lot, 0, len(lg.lots)-lg.head)
	for i := lg.head; i < len(lg.lots); i++ {
		if lg.lots[i].Units > Epsilon {
			out = append(out, lg.lots[i])
		}
	}
	return out
}

// ApplyResult reports the outcome of applying one event to a ledger.
type ApplyResult struct {
	Opened       *Lot
	Closed       []models.ClosedLot
	DroppedUnits float64 // sale demand that exceeded open units
}

// Book holds the ledgers of one aggregation request. A Book is not
// safe for concurrent use; each request builds its own.
type Book struct {
	logger  *common.Logger
	ledgers map[models.LedgerKey]*ledger
}

// NewBook creates an empty lot book.
func NewBook(logger *common.Logger) *Book {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Book{
		logger:  logger,
		ledgers: make(map[models.LedgerKey]*ledger),
	}
}

// Apply processes a single event against its ledger. Callers that hold
// unordered events should use Replay, which establishes
// (effectiveDate, sequence) order first.
func (b *Book) Apply(event *models.TransactionEvent) ApplyResult {
	lg := b.ledgers[event.Key]
	if lg == nil {
		lg = &ledger{}
		b.ledgers[event.Key] = lg
	}

	switch {
	case event.Kind.OpensLot() && event.Units > Epsilon:
		lot := Lot{
			Units:          event.Units,
			CostBasis:      event.Cost(),
			OpenDate:       event.EffectiveDate,
			OriginSequence: event.Sequence,
		}
		lg.lots = append(lg.lots, lot)
		return ApplyResult{Opened: &lot}

	case event.Kind.ConsumesLots() && event.Units > Epsilon:
		return b.consume(lg, event)
	}

	// Interest and charge events carry no units; nothing to do here.
	return ApplyResult{}
}

// consume satisfies a sale oldest-first, allocating cost proportionally
// and emitting one ClosedLot per lot touched. Demand beyond the open
// units is dropped with a reconciliation warning, never an error.
func (b *Book) consume(lg *ledger, event *models.TransactionEvent) ApplyResult {
	remaining := event.Units
	var closed []models.ClosedLot

	for remaining > Epsilon && lg.head < len(lg.lots) {
		lot := &lg.lots[lg.head]
		if lot.Units <= Epsilon {
			lg.head++
			continue
		}

		take := remaining
		if lot.Units < take {
			take = lot.Units
		}

		costConsumed := take * lot.UnitCost()
		closed = append(closed, models.ClosedLot{
			Key:               event.Key,
			UnitsSold:         take,
			CostBasisConsumed: costConsumed,
			SaleProceeds:      take * event.Price,
			OpenDate:          lot.OpenDate,
			CloseDate:         event.EffectiveDate,
		})

		lot.Units -= take
		lot.CostBasis -= costConsumed
		remaining -= take

		// Eviction is driven by units alone: a zero-cost lot (bonus or
		// free allotment) with units remaining must stay open.
		if lot.Units <= Epsilon {
			lot.Units = 0
			lot.CostBasis = 0
			lg.head++
		}
	}

	result := ApplyResult{Closed: closed}
	if remaining > Epsilon {
		result.DroppedUnits = remaining
		b.logger.Warn().
			Str("instrument", event.Key.Instrument).
			Str("account", event.Key.Account).
			Float64("requested", event.Units).
			Float64("dropped", remaining).
			Msg("Sale exceeds open units, excess dropped")
	}
	return result
}

// Replay sorts events into (effectiveDate, sequence) order and applies
// them all, so out-of-order and backfilled rows land correctly. It
// returns every ClosedLot emitted and the total dropped sale units.
func (b *Book) Replay(events []models.TransactionEvent) (closed []models.ClosedLot, dropped float64) {
	ordered := make([]*models.TransactionEvent, len(events))
	for i := range events {
		ordered[i] = &events[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].EffectiveDate.Equal(ordered[j].EffectiveDate) {
			return ordered[i].EffectiveDate.Before(ordered[j].EffectiveDate)
		}
		return ordered[i].Sequence < ordered[j].Sequence
	})

	for _, ev := range ordered {
		res := b.Apply(ev)
		closed = append(closed, res.Closed...)
		dropped += res.DroppedUnits
	}
	return closed, dropped
}

// OpenLots returns a copy of the open lots for one ledger, oldest first.
func (b *Book) OpenLots(key models.LedgerKey) []Lot {
	lg := b.ledgers[key]
	if lg == nil {
		return nil
	}
	return lg.open()
}

// Keys returns every ledger key the book has seen, in no particular order.
func (b *Book) Keys() []models.LedgerKey {
	keys := make([]models.LedgerKey, 0, len(b.ledgers))
	for k := range b.ledgers {
		keys = append(keys, k)
	}
	return keys
}

// OpenUnits returns the total open units for one ledger.
func (b *Book) OpenUnits(key models.LedgerKey) float64 {
	total := 0.0
	for _, lot := range b.OpenLots(key) {
		total += lot.Units
	}
	return total
}

// OpenCost returns the total open cost basis for one ledger.
func (b *Book) OpenCost(key models.LedgerKey) float64 {
	total := 0.0
	for _, lot := range b.OpenLots(key) {
		total += lot.CostBasis
	}
	return total
}
