package assets

import (
	"strings"
	"time"

	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
	"github.com/rajatgoyal/foliocore/internal/services/valuation"
)

// Equity aggregates stock and ETF tradebook rows. Rows without a sale
// date are open positions and flow through the FIFO book; rows that
// already carry both buy and sell prices are closed positions and are
// read directly — realized gain = (sell − buy) × quantity minus the
// charges allocated to the row. chargesTotal (configured total plus
// yearly charges rows) is subtracted from the invested value.
func (s *Service) Equity(rows []models.EquityTradeRow, quotes []models.InstrumentQuote, charges []models.ChargesRow, configuredCharges float64, now time.Time) *models.ClassResult {
	result := &models.ClassResult{Class: models.ClassEquity}
	if len(rows) == 0 {
		return result
	}

	qm := quoteMap(quotes)

	var open []models.EquityTradeRow
	categories := make(map[models.LedgerKey]string)
	closedByKey := make(map[models.LedgerKey]*models.ClosedHolding)
	closedLotsByKey := make(map[models.LedgerKey][]models.ClosedLot)

	for _, row := range rows {
		key := models.LedgerKey{Instrument: row.Symbol, Account: row.Account}
		categories[key] = accountCategory(row.AccountType)

		if row.SellDate == "" {
			open = append(open, row)
			continue
		}

		buyDate, okBuy := ledger.ParseDate(row.BuyDate)
		sellDate, okSell := ledger.ParseDate(row.SellDate)
		if !okBuy || !okSell || row.Quantity <= ledger.Epsilon {
			s.logger.Warn().Str("symbol", row.Symbol).Str("account", row.Account).Msg("Skipping malformed closed trade row")
			continue
		}

		ch := closedByKey[key]
		if ch == nil {
			ch = &models.ClosedHolding{Key: key, Category: categories[key]}
			closedByKey[key] = ch
		}

		invested := row.BuyPrice * row.Quantity
		proceeds := row.SellPrice * row.Quantity
		ch.Units += row.Quantity
		ch.Invested += invested
		ch.ClosedValue += proceeds
		ch.RealizedGain += (row.SellPrice-row.BuyPrice)*row.Quantity - row.Charges

		closedLotsByKey[key] = append(closedLotsByKey[key], models.ClosedLot{
			Key:               key,
			UnitsSold:         row.Quantity,
			CostBasisConsumed: invested,
			SaleProceeds:      proceeds,
			OpenDate:          buyDate,
			CloseDate:         sellDate,
		})
	}

	// Open positions replay through the FIFO book and are valued at CMP.
	normalizer := ledger.NewNormalizer(s.logger)
	book := ledger.NewBook(s.logger)
	book.Replay(normalizer.EquityBuyEvents(open))

	for _, key := range book.Keys() {
		lots := book.OpenLots(key)
		if len(lots) == 0 {
			continue
		}
		cmp, lcp := resolvePrices(qm, key.Instrument, lots)
		h := valuation.ValueLedger(key, lots, cmp, lcp, now)
		h.Category = categories[key]
		result.Holdings = append(result.Holdings, h)
		result.Invested += h.Invested
		result.MarketValue += h.MarketValue
		result.DayChange += h.DayChange
	}

	for key, ch := range closedByKey {
		ch.GainPercent = guardPercent(ch.RealizedGain, ch.Invested)
		ch.XIRR = valuation.Solve(valuation.ClosedCashflowSeries(closedLotsByKey[key]))
		result.Closed = append(result.Closed, *ch)
	}

	chargesTotal := configuredCharges
	for _, c := range charges {
		chargesTotal += c.OtherCharges + c.DPCharges
	}
	result.Invested -= chargesTotal
	if result.Invested < 0 {
		result.Invested = 0
	}

	sortHoldings(result)
	return result
}

// resolvePrices looks up CMP and previous close for an instrument,
// falling back to the average unit cost when no quote is available so
// unquoted positions value at cost with zero day change.
func resolvePrices(qm map[string]models.InstrumentQuote, instrument string, lots []ledger.Lot) (cmp, lcp float64) {
	if q, ok := qm[instrument]; ok && q.CurrentPrice > 0 {
		lcp = q.PreviousClose
		if lcp == 0 {
			lcp = q.CurrentPrice
		}
		return q.CurrentPrice, lcp
	}

	var units, cost float64
	for _, lot := range lots {
		units += lot.Units
		cost += lot.CostBasis
	}
	if units <= ledger.Epsilon {
		return 0, 0
	}
	avg := cost / units
	return avg, avg
}

// accountCategory normalizes the tradebook account-type tag. Blank or
// unrecognised tags count as plain equity.
func accountCategory(tag string) string {
	if strings.EqualFold(strings.TrimSpace(tag), "etf") {
		return "etf"
	}
	return "equity"
}

func guardPercent(gain, invested float64) float64 {
	if invested <= ledger.Epsilon {
		return 0
	}
	return gain / invested * 100
}
