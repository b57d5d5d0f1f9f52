package assets

import (
	"sort"

	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// Retirement aggregates employee-retirement-fund entries: running sums
// of contribution components and credited interest, minus withdrawals.
// Balances replay per account in date order, and a withdrawal is
// applied interest-first, then against principal.
func (s *Service) Retirement(rows []models.RetirementContributionRow) *models.RetirementResult {
	result := &models.RetirementResult{
		ClassResult: models.ClassResult{Class: models.ClassRetirement},
	}
	if len(rows) == 0 {
		return result
	}

	type entry struct {
		row  models.RetirementContributionRow
		date string
	}
	byAccount := make(map[string][]entry)
	for _, row := range rows {
		date, ok := ledger.ParseDate(row.Date)
		if !ok {
			s.logger.Warn().Str("account", row.Account).Msg("Skipping malformed retirement row")
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
			row := e.row
			result.EmployeeShare += row.EmployeeShare
			result.EmployerShare += row.EmployerShare
			result.PensionShare += row.PensionShare
			result.Interest += row.Interest

			principal += row.EmployeeShare + row.EmployerShare + row.PensionShare
			interest += row.Interest

			if row.Withdrawal > 0 {
				result.Withdrawn += row.Withdrawal
				remaining := row.Withdrawal
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
			}
		}

		result.Accounts = append(result.Accounts, models.RetirementAccount{
			Account:     account,
			Invested:    principal,
			MarketValue: principal + interest,
		})
		result.Invested += principal
		result.MarketValue += principal + interest
	}

	return result
}
