// Package interfaces defines service contracts for foliocore
package interfaces

import (
	"context"

	"github.com/rajatgoyal/foliocore/internal/models"
)

// TransactionStore fetches raw transaction tables. Each method may
// return an empty slice without error; the aggregation core treats
// empty and partial data as a degraded input, never a failure.
type TransactionStore interface {
	GetEquityTrades(ctx context.Context, userID string) ([]models.EquityTradeRow, error)
	GetFundTransactions(ctx context.Context, userID string) ([]models.FundTransactionRow, error)
	GetPensionTransactions(ctx context.Context, userID string) ([]models.PensionUnitsRow, error)

	SaveEquityTrade(ctx context.Context, userID string, row *models.EquityTradeRow) error
	SaveFundTransaction(ctx context.Context, userID string, row *models.FundTransactionRow) error
	SavePensionTransaction(ctx context.Context, userID string, row *models.PensionUnitsRow) error
}

// QuoteStore fetches master/price rows.
type QuoteStore interface {
	GetQuotes(ctx context.Context) ([]models.InstrumentQuote, error)
	SaveQuote(ctx context.Context, quote *models.InstrumentQuote) error

	GetPensionPrices(ctx context.Context) ([]models.PensionPriceRow, error)
	SavePensionPrice(ctx context.Context, price *models.PensionPriceRow) error
}

// BalanceStore fetches balance-based tables (bank, retirement, provident).
type BalanceStore interface {
	GetBankBalances(ctx context.Context, userID string) ([]models.BankBalanceRow, error)
	GetRetirementRows(ctx context.Context, userID string) ([]models.RetirementContributionRow, error)
	GetProvidentEntries(ctx context.Context, userID string) ([]models.ProvidentEntryRow, error)

	SaveBankBalance(ctx context.Context, userID string, row *models.BankBalanceRow) error
	SaveRetirementRow(ctx context.Context, userID string, row *models.RetirementContributionRow) error
	SaveProvidentEntry(ctx context.Context, userID string, row *models.ProvidentEntryRow) error
}

// ChargesStore fetches yearly account-level charges rows.
type ChargesStore interface {
	GetCharges(ctx context.Context, userID string) ([]models.ChargesRow, error)
	SaveCharges(ctx context.Context, userID string, row *models.ChargesRow) error
}

// SnapshotCache stores computed portfolio summaries with a bounded
// TTL. Entries must be invalidated when underlying data changes.
type SnapshotCache interface {
	Get(userID string) (*models.PortfolioSummary, bool)
	Put(userID string, summary *models.PortfolioSummary) error
	Invalidate(userID string) error
	Close() error
}

// StorageManager coordinates all storage backends
type StorageManager interface {
	Transactions() TransactionStore
	Quotes() QuoteStore
	Balances() BalanceStore
	Charges() ChargesStore
	Close() error
}
