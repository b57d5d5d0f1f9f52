package assets

import (
	"sort"
	"strings"

	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// Provident aggregates provident-fund and fixed-deposit entries into
// per-account running balances. Deposits grow principal, interest
// grows an interest pool, and withdrawals or maturities drain the
// interest pool first, then principal, clamped at zero.
func (s *Service) Provident(rows []models.ProvidentEntryRow) *models.ProvidentResult {
	result := &models.ProvidentResult{
		ClassResult: models.ClassResult{Class: models.ClassProvident},
	}
	if len(rows) == 0 {
		return result
	}

	type entry struct {
		row  models.ProvidentEntryRow
		date string
	}
	byAccount := make(map[string][]entry)
	for _, row := range rows {
		date, ok := ledger.ParseDate(row.Date)
		if !ok || row.Account == "" {
			s.logger.Warn().Str("account", row.Account).Str("kind", row.Kind).Msg("Skipping malformed provident row")
			continue
		}
		byAccount[row.Account] = append(byAccount[row.Account], entry{row: row, date: date.Format("2006-01-02")})
	}

	accounts := make([]string, 0, len(byAccount))
	for account := range byAccount {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	for _, account := range accounts {
		entries := byAccount[account]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].date < entries[j].date })

		var principal, interest float64
		for _, e := range entries {
			kind := strings.ToLower(e.row.Kind)
			switch {
			case strings.Contains(kind, "deposit"):
				principal += e.row.Amount
			case strings.Contains(kind, "interest"):
				interest += e.row.Amount
			case strings.Contains(kind, "withdraw"), strings.Contains(kind, "maturity"):
				remaining := e.row.Amount
				if interest >= remaining {
					interest -= remaining
				} else {
					remaining -= interest
					interest = 0
					principal -= remaining
					if principal < 0 {
						principal = 0
					}
				}
			default:
				s.logger.Warn().Str("account", account).Str("kind", e.row.Kind).Msg("Unknown provident entry kind")
			}
		}

		result.Accounts = append(result.Accounts, models.ProvidentAccount{
			Account:   account,
			Principal: principal,
			Interest:  interest,
			Balance:   principal + interest,
		})
		result.Invested += principal
		result.MarketValue += principal + interest
	}

	return result
}
