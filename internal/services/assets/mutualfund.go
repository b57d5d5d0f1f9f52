package assets

import (
	"time"

	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
	"github.com/rajatgoyal/foliocore/internal/services/valuation"
)

// MutualFund aggregates scheme-based fund transactions. Free-text
// transaction types are classified at normalization; events replay
// through the FIFO book per (scheme, account) and open units are
// valued at the scheme's latest NAV.
func (s *Service) MutualFund(rows []models.FundTransactionRow, quotes []models.InstrumentQuote, now time.Time) *models.ClassResult {
	result := &models.ClassResult{Class: models.ClassMutualFund}
	if len(rows) == 0 {
		return result
	}

	normalizer := ledger.NewNormalizer(s.logger)
	events := normalizer.FundEvents(rows)

	book := ledger.NewBook(s.logger)
	closed, dropped := book.Replay(events)
	if dropped > ledger.Epsilon {
		s.logger.Warn().Float64("units", dropped).Msg("Fund sales exceeded open units")
	}

	s.valueBook(result, book, closed, quoteMap(quotes), lastNAVByScheme(events), now)
	sortHoldings(result)
	return result
}

// valueBook turns a replayed book into holdings and closed records,
// accumulating class totals. Shared by the mutual-fund and
// pension-scheme aggregators.
func (s *Service) valueBook(result *models.ClassResult, book *ledger.Book, closed []models.ClosedLot, qm map[string]models.InstrumentQuote, lastNAV map[string]float64, now time.Time) {
	closedByKey := make(map[models.LedgerKey][]models.ClosedLot)
	for _, c := range closed {
		closedByKey[c.Key] = append(closedByKey[c.Key], c)
	}

	for _, key := range book.Keys() {
		lots := book.OpenLots(key)
		if len(lots) > 0 {
			cmp, lcp := fundPrices(qm, lastNAV, key.Instrument, lots)
			h := valuation.ValueLedger(key, lots, cmp, lcp, now)
			if result.Class == models.ClassPension && h.MarketValue < 0 {
				h.MarketValue = 0
			}
			result.Holdings = append(result.Holdings, h)
			result.Invested += h.Invested
			result.MarketValue += h.MarketValue
			result.DayChange += h.DayChange
		}
	}

	for key, lots := range closedByKey {
		ch := models.ClosedHolding{Key: key}
		for _, c := range lots {
			ch.Units += c.UnitsSold
			ch.Invested += c.CostBasisConsumed
			ch.ClosedValue += c.SaleProceeds
			ch.RealizedGain += c.RealizedGain()
		}
		ch.GainPercent = guardPercent(ch.RealizedGain, ch.Invested)
		ch.XIRR = valuation.Solve(valuation.ClosedCashflowSeries(lots))
		result.Closed = append(result.Closed, ch)
	}
}

// fundPrices resolves a scheme's valuation prices: master quote first,
// then the last transacted NAV (valued at cost of entry, zero day
// change) when the scheme has no quote.
func fundPrices(qm map[string]models.InstrumentQuote, lastNAV map[string]float64, scheme string, lots []ledger.Lot) (cmp, lcp float64) {
	if q, ok := qm[scheme]; ok && q.CurrentPrice > 0 {
		lcp = q.PreviousClose
		if lcp == 0 {
			lcp = q.CurrentPrice
		}
		return q.CurrentPrice, lcp
	}
	if nav, ok := lastNAV[scheme]; ok && nav > 0 {
		return nav, nav
	}
	return resolvePrices(qm, scheme, lots)
}

// lastNAVByScheme records the most recent transacted NAV per scheme.
func lastNAVByScheme(events []models.TransactionEvent) map[string]float64 {
	type stamp struct {
		nav  float64
		date time.Time
		seq  int64
	}
	latest := make(map[string]stamp)
	for _, ev := range events {
		if ev.Price <= 0 {
			continue
		}
		cur, ok := latest[ev.Key.Instrument]
		if !ok || ev.EffectiveDate.After(cur.date) ||
			(ev.EffectiveDate.Equal(cur.date) && ev.Sequence > cur.seq) {
			latest[ev.Key.Instrument] = stamp{nav: ev.Price, date: ev.EffectiveDate, seq: ev.Sequence}
		}
	}
	out := make(map[string]float64, len(latest))
	for k, v := range latest {
		out[k] = v.nav
	}
	return out
}
