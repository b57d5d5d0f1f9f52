// Package portfolio merges asset-class aggregates into a single
// cross-asset portfolio view.
package portfolio

import (
	"sort"
	"time"

	"github.com/rajatgoyal/foliocore/internal/ledger"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// otherAccountsBucket collects holdings whose account attribution is
// missing from the source rows.
const otherAccountsBucket = "Other Accounts"

// Inputs carries the per-class aggregates to merge. Any field may be
// nil; a nil class contributes nothing to the merged view.
type Inputs struct {
	Equity     *models.ClassResult
	MutualFund *models.ClassResult
	Pension    *models.ClassResult
	Bank       *models.BankResult
	Retirement *models.RetirementResult
	Provident  *models.ProvidentResult
	Warnings   []string
}

// Aggregate merges the class results into allocation rows, per-account
// summaries, and grand totals. The merge is pure: same inputs always
// produce the same summary (modulo GeneratedAt).
func Aggregate(in Inputs, now time.Time) *models.PortfolioSummary {
	summary := &models.PortfolioSummary{
		Warnings:    in.Warnings,
		GeneratedAt: now,
	}

	classes := []*models.ClassResult{}
	if in.Equity != nil {
		classes = append(classes, in.Equity)
	}
	if in.MutualFund != nil {
		classes = append(classes, in.MutualFund)
	}
	if in.Pension != nil {
		classes = append(classes, in.Pension)
	}
	if in.Bank != nil {
		classes = append(classes, &in.Bank.ClassResult)
	}
	if in.Retirement != nil {
		classes = append(classes, &in.Retirement.ClassResult)
	}
	if in.Provident != nil {
		classes = append(classes, &in.Provident.ClassResult)
	}

	for _, cr := range classes {
		summary.Rows = append(summary.Rows, models.AllocationRow{
			Class:       cr.Class,
			Invested:    cr.Invested,
			MarketValue: cr.MarketValue,
			DayChange:   cr.DayChange,
		})
		summary.TotalInvested += cr.Invested
		summary.TotalMarketValue += cr.MarketValue
		summary.TotalDayChange += cr.DayChange
	}

	for i := range summary.Rows {
		summary.Rows[i].MarketValuePct = share(summary.Rows[i].MarketValue, summary.TotalMarketValue)
		summary.Rows[i].InvestedPct = share(summary.Rows[i].Invested, summary.TotalInvested)
	}

	summary.Profit = summary.TotalMarketValue - summary.TotalInvested
	if summary.TotalInvested > ledger.Epsilon {
		summary.ProfitPercent = summary.Profit / summary.TotalInvested * 100
	}

	summary.Accounts = accountSummaries(in)
	return summary
}

// accountSummaries buckets every holding and balance by its source
// account. Holdings without an account land in a shared bucket.
func accountSummaries(in Inputs) []models.AccountSummary {
	buckets := make(map[string]*models.AccountSummary)

	get := func(account string) *models.AccountSummary {
		if account == "" {
			account = otherAccountsBucket
		}
		as := buckets[account]
		if as == nil {
			as = &models.AccountSummary{
				Account: account,
				Buckets: make(map[models.AssetClass]models.AccountBucket),
			}
			buckets[account] = as
		}
		return as
	}

	add := func(account string, class models.AssetClass, invested, marketValue float64) {
		as := get(account)
		b := as.Buckets[class]
		b.Invested += invested
		b.MarketValue += marketValue
		as.Buckets[class] = b
		as.Invested += invested
		as.MarketValue += marketValue
	}

	addHoldings := func(cr *models.ClassResult) {
		if cr == nil {
			return
		}
		for _, h := range cr.Holdings {
			add(h.Key.Account, cr.Class, h.Invested, h.MarketValue)
		}
	}
	addHoldings(in.Equity)
	addHoldings(in.MutualFund)
	addHoldings(in.Pension)

	if in.Bank != nil {
		for account, amount := range in.Bank.ByAccount {
			add(account, models.ClassBank, amount, amount)
		}
	}
	if in.Retirement != nil {
		for _, a := range in.Retirement.Accounts {
			add(a.Account, models.ClassRetirement, a.Invested, a.MarketValue)
		}
	}
	if in.Provident != nil {
		for _, a := range in.Provident.Accounts {
			add(a.Account, models.ClassProvident, a.Principal, a.Balance)
		}
	}

	out := make([]models.AccountSummary, 0, len(buckets))
	for _, as := range buckets {
		as.Profit = as.MarketValue - as.Invested
		if as.Invested > ledger.Epsilon {
			as.ProfitPercent = as.Profit / as.Invested * 100
		}
		out = append(out, *as)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out
}

func share(part, total float64) float64 {
	if total <= ledger.Epsilon {
		return 0
	}
	return part / total * 100
}
