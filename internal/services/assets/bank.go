package assets

import (
	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// Bank aggregates bank balance observations. No lots apply: the latest
// row per (account, institution, type) per calendar month is the
// balance for that month, summed by type for the most recent month and
// the month before it.
func (s *Service) Bank(rows []models.BankBalanceRow) *models.BankResult {
	result := &models.BankResult{
		ClassResult: models.ClassResult{Class: models.ClassBank},
		ByType:      map[string]float64{},
		PrevByType:  map[string]float64{},
		ByAccount:   map[string]float64{},
	}
	if len(rows) == 0 {
		return result
	}

	type slot struct {
		amount float64
		date   string // parsed date re-formatted; lexical order is chronological
	}
	type cell struct {
		account, institution, typ string
	}

	// month → cell → latest observation
	months := make(map[string]map[cell]slot)
	for _, row := range rows {
		date, ok := ledger.ParseDate(row.Date)
		if !ok || row.Account == "" {
			s.logger.Warn().Str("account", row.Account).Str("institution", row.Institution).Msg("Skipping malformed bank row")
			continue
		}
		mk := monthKey(date)
		c := cell{account: row.Account, institution: row.Institution, typ: row.Type}
		day := date.Format("2006-01-02")

		cells := months[mk]
		if cells == nil {
			cells = make(map[cell]slot)
			months[mk] = cells
		}
		if prev, ok := cells[c]; !ok || day >= prev.date {
			cells[c] = slot{amount: row.Amount, date: day}
		}
	}
	if len(months) == 0 {
		return result
	}

	var latest, prior string
	for mk := range months {
		if mk > latest {
			prior = latest
			latest = mk
		} else if mk > prior {
			prior = mk
		}
	}

	var total, prevTotal float64
	for c, sl := range months[latest] {
		result.ByType[c.typ] += sl.amount
		result.ByAccount[c.account] += sl.amount
		total += sl.amount
	}
	if prior != "" {
		for c, sl := range months[prior] {
			result.PrevByType[c.typ] += sl.amount
			prevTotal += sl.amount
		}
	}

	result.Invested = total
	result.MarketValue = total
	result.MonthDelta = total - prevTotal
	return result
}
