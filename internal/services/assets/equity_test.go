package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

var testNow = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(common.NewSilentLogger())
}

func TestEquity_OpenAndClosedSplit(t *testing.T) {
	s := newTestService()

	rows := []models.EquityTradeRow{
		{Symbol: "INFY", Account: "zerodha", Quantity: 10, BuyPrice: 1400, BuyDate: "2024-01-10"},
		{Symbol: "TCS", Account: "zerodha", Quantity: 5, BuyPrice: 3500, BuyDate: "2024-02-01",
			SellPrice: 3800, SellDate: "2024-08-01", Charges: 100},
	}
	quotes := []models.InstrumentQuote{
		{Name: "INFY", CurrentPrice: 1500, PreviousClose: 1480},
	}

	result := s.Equity(rows, quotes, nil, 0, testNow)

	require.Len(t, result.Holdings, 1)
	h := result.Holdings[0]
	assert.Equal(t, "INFY", h.Key.Instrument)
	assert.InDelta(t, 14000, h.Invested, 1e-9)
	assert.InDelta(t, 15000, h.MarketValue, 1e-9)
	assert.InDelta(t, 200, h.DayChange, 1e-9) // 10 × (1500 − 1480)

	require.Len(t, result.Closed, 1)
	c := result.Closed[0]
	assert.Equal(t, "TCS", c.Key.Instrument)
	assert.InDelta(t, 17500, c.Invested, 1e-9)
	assert.InDelta(t, 19000, c.ClosedValue, 1e-9)
	assert.InDelta(t, 1400, c.RealizedGain, 1e-9) // (3800−3500)×5 − 100
	require.NotNil(t, c.XIRR)
	assert.Positive(t, *c.XIRR)
}

func TestEquity_AccountTypeTagCarriedToHoldings(t *testing.T) {
	s := newTestService()

	rows := []models.EquityTradeRow{
		{Symbol: "INFY", Account: "zerodha", AccountType: "equity", Quantity: 10, BuyPrice: 1400, BuyDate: "2024-01-10"},
		{Symbol: "NIFTYBEES", Account: "zerodha", AccountType: "ETF", Quantity: 20, BuyPrice: 200, BuyDate: "2024-02-01"},
		{Symbol: "GOLDBEES", Account: "zerodha", AccountType: "etf", Quantity: 30, BuyPrice: 50, BuyDate: "2024-03-01",
			SellPrice: 60, SellDate: "2024-09-01"},
	}

	result := s.Equity(rows, nil, nil, 0, testNow)

	require.Len(t, result.Holdings, 2)
	assert.Equal(t, "equity", result.Holdings[0].Category) // INFY
	assert.Equal(t, "etf", result.Holdings[1].Category)    // NIFTYBEES, tag case-insensitive

	require.Len(t, result.Closed, 1)
	assert.Equal(t, "etf", result.Closed[0].Category)
}

func TestEquity_ChargesSubtractedFromInvested(t *testing.T) {
	s := newTestService()

	rows := []models.EquityTradeRow{
		{Symbol: "INFY", Account: "zerodha", Quantity: 10, BuyPrice: 1000, BuyDate: "2024-01-10"},
	}
	charges := []models.ChargesRow{
		{Account: "zerodha", Year: 2024, OtherCharges: 300, DPCharges: 200},
	}

	result := s.Equity(rows, nil, charges, 500, testNow)
	assert.InDelta(t, 9000, result.Invested, 1e-9, "10000 − 500 charges rows − 500 configured")
}

func TestEquity_ChargesNeverDriveInvestedNegative(t *testing.T) {
	s := newTestService()

	rows := []models.EquityTradeRow{
		{Symbol: "INFY", Account: "zerodha", Quantity: 1, BuyPrice: 100, BuyDate: "2024-01-10"},
	}
	result := s.Equity(rows, nil, nil, 1e6, testNow)
	assert.Zero(t, result.Invested)
}

func TestEquity_UnquotedPositionValuesAtCost(t *testing.T) {
	s := newTestService()

	rows := []models.EquityTradeRow{
		{Symbol: "UNLISTED", Account: "zerodha", Quantity: 10, BuyPrice: 50, BuyDate: "2024-01-10"},
	}
	result := s.Equity(rows, nil, nil, 0, testNow)

	require.Len(t, result.Holdings, 1)
	assert.InDelta(t, 500, result.Holdings[0].MarketValue, 1e-9)
	assert.Zero(t, result.Holdings[0].DayChange)
}

func TestEquity_EmptyInput(t *testing.T) {
	s := newTestService()
	result := s.Equity(nil, nil, nil, 0, testNow)

	assert.Equal(t, models.ClassEquity, result.Class)
	assert.Zero(t, result.Invested)
	assert.Empty(t, result.Holdings)
	assert.Empty(t, result.Closed)
}
