package valuation

import (
	"time"

	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// ValueLedger attaches current and previous-close prices to the open
// lots of one ledger, producing a valued Holding. XIRR is derived from
// one negative flow per lot (cost basis at open date) plus the market
// value as a positive flow at now; it is nil when unavailable.
func ValueLedger(key models.LedgerKey, lots []ledger.Lot, currentPrice, previousClose float64, now time.Time) models.Holding {
	var units, invested float64
	for _, lot := range lots {
		units += lot.Units
		invested += lot.CostBasis
	}

	marketValue := units * currentPrice
	dayChange := units * (currentPrice - previousClose)
	gain := marketValue - invested

	h := models.Holding{
		Key:            key,
		Units:          units,
		Invested:       invested,
		MarketValue:    marketValue,
		DayChange:      dayChange,
		UnrealizedGain: gain,
		GainPercent:    percentOf(gain, invested),
		XIRR:           Solve(CashflowSeries(lots, marketValue, now)),
	}
	return h
}

// CashflowSeries builds the XIRR input for a set of open lots: each
// lot contributes its cost basis as an outflow at its open date, and
// the market value enters as a single inflow at now when positive.
func CashflowSeries(lots []ledger.Lot, marketValue float64, now time.Time) []CashflowPoint {
	flows := make([]CashflowPoint, 0, len(lots)+1)
	for _, lot := range lots {
		flows = append(flows, CashflowPoint{Amount: -lot.CostBasis, Date: lot.OpenDate})
	}
	if marketValue > 0 {
		flows = append(flows, CashflowPoint{Amount: marketValue, Date: now})
	}
	return flows
}

// ClosedCashflowSeries builds the XIRR input for realized positions:
// cost basis out at each open date, proceeds in at each close date.
func ClosedCashflowSeries(closed []models.ClosedLot) []CashflowPoint {
	flows := make([]CashflowPoint, 0, len(closed)*2)
	for _, c := range closed {
		flows = append(flows,
			CashflowPoint{Amount: -c.CostBasisConsumed, Date: c.OpenDate},
			CashflowPoint{Amount: c.SaleProceeds, Date: c.CloseDate},
		)
	}
	return flows
}

// percentOf guards the percentage against a near-zero denominator.
func percentOf(gain, invested float64) float64 {
	if invested <= ledger.Epsilon {
		return 0
	}
	return gain / invested * 100
}
