package models

import "time"

// ClosedLot records one FIFO match between a sale and an open lot.
// A single sale spanning several lots emits one ClosedLot per lot touched.
type ClosedLot struct {
	Key               LedgerKey `json:"key"`
	UnitsSold         float64   `json:"units_sold"`
	CostBasisConsumed float64   `json:"cost_basis_consumed"`
	SaleProceeds      float64   `json:"sale_proceeds"`
	OpenDate          time.Time `json:"open_date"`
	CloseDate         time.Time `json:"close_date"`
}

// RealizedGain returns proceeds minus consumed cost basis.
func (c *ClosedLot) RealizedGain() float64 {
	return c.SaleProceeds - c.CostBasisConsumed
}

// Holding is a valued open position for one ledger, derived on every
// valuation pass and never persisted independently.
type Holding struct {
	Key            LedgerKey `json:"key"`
	Category       string    `json:"category,omitempty"` // "equity" or "etf" for tradebook positions
	Units          float64   `json:"units"`
	Invested       float64   `json:"invested"`
	MarketValue    float64   `json:"market_value"`
	DayChange      float64   `json:"day_change"`
	UnrealizedGain float64   `json:"unrealized_gain"`
	GainPercent    float64   `json:"gain_percent"`
	XIRR           *float64  `json:"xirr,omitempty"` // nil = unavailable, distinct from 0
}

// ClosedHolding summarises the fully or partially exited portion of a
// position: units sold, cost consumed, and proceeds realized.
type ClosedHolding struct {
	Key          LedgerKey `json:"key"`
	Category     string    `json:"category,omitempty"`
	Units        float64   `json:"units"`
	Invested     float64   `json:"invested"`
	ClosedValue  float64   `json:"closed_value"`
	RealizedGain float64   `json:"realized_gain"`
	GainPercent  float64   `json:"gain_percent"`
	XIRR         *float64  `json:"xirr,omitempty"`
}
