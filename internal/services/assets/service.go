// Package assets implements the per-asset-class aggregators.
package assets

import (
	"sort"
	"time"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// Service aggregates raw rows into per-class results. All methods are
// pure over their inputs and tolerate empty slices; a fresh ledger
// book is built per call, so concurrent calls for different users are
// safe.
type Service struct {
	logger *common.Logger
}

// NewService creates an asset aggregation service.
func NewService(logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{logger: logger}
}

// quoteMap indexes instrument quotes by name.
func quoteMap(quotes []models.InstrumentQuote) map[string]models.InstrumentQuote {
	m := make(map[string]models.InstrumentQuote, len(quotes))
	for _, q := range quotes {
		m[q.Name] = q
	}
	return m
}

// monthKey truncates a date to its calendar month.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// sortHoldings orders holdings and closed records by ledger key so
// repeated aggregation of the same inputs yields identical output.
func sortHoldings(result *models.ClassResult) {
	sort.Slice(result.Holdings, func(i, j int) bool {
		return lessKey(result.Holdings[i].Key, result.Holdings[j].Key)
	})
	sort.Slice(result.Closed, func(i, j int) bool {
		return lessKey(result.Closed[i].Key, result.Closed[j].Key)
	})
}

func lessKey(a, b models.LedgerKey) bool {
	if a.Instrument != b.Instrument {
		return a.Instrument < b.Instrument
	}
	return a.Account < b.Account
}
