package assets

import (
	"time"

	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// Pension aggregates pension-scheme unit transactions. Ledger handling
// matches mutual funds, but valuation uses the scheme-level price map
// and per-scheme market value is floored at zero.
func (s *Service) Pension(rows []models.PensionUnitsRow, prices []models.PensionPriceRow, now time.Time) *models.ClassResult {
	result := &models.ClassResult{Class: models.ClassPension}
	if len(rows) == 0 {
		return result
	}

	normalizer := ledger.NewNormalizer(s.logger)
	events := normalizer.PensionEvents(rows)

	book := ledger.NewBook(s.logger)
	closed, dropped := book.Replay(events)
	if dropped > ledger.Epsilon {
		s.logger.Warn().Float64("units", dropped).Msg("Pension redemptions exceeded open units")
	}

	qm := make(map[string]models.InstrumentQuote, len(prices))
	for _, p := range prices {
		qm[p.Scheme] = models.InstrumentQuote{
			Name:          p.Scheme,
			CurrentPrice:  p.Price,
			PreviousClose: p.PreviousPrice,
		}
	}

	s.valueBook(result, book, closed, qm, lastNAVByScheme(events), now)
	sortHoldings(result)
	return result
}
