package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/interfaces"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// fakeStorage is an in-memory StorageManager. Setting failTables makes
// the named fetches error so degraded behaviour can be exercised.
type fakeStorage struct {
	equity     []models.EquityTradeRow
	funds      []models.FundTransactionRow
	pension    []models.PensionUnitsRow
	quotes     []models.InstrumentQuote
	prices     []models.PensionPriceRow
	bank       []models.BankBalanceRow
	retirement []models.RetirementContributionRow
	provident  []models.ProvidentEntryRow
	charges    []models.ChargesRow
	failTables map[string]bool
}

func (f *fakeStorage) fail(table string) error {
	if f.failTables[table] {
		return errors.New("backend down")
	}
	return nil
}

func (f *fakeStorage) Transactions() interfaces.TransactionStore { return fakeTransactionStore{f} }
func (f *fakeStorage) Quotes() interfaces.QuoteStore             { return fakeQuoteStore{f} }
func (f *fakeStorage) Balances() interfaces.BalanceStore         { return fakeBalanceStore{f} }
func (f *fakeStorage) Charges() interfaces.ChargesStore          { return fakeChargesStore{f} }
func (f *fakeStorage) Close() error                              { return nil }

type fakeTransactionStore struct{ f *fakeStorage }

func (s fakeTransactionStore) GetEquityTrades(context.Context, string) ([]models.EquityTradeRow, error) {
	return s.f.equity, s.f.fail("equity_trades")
}
func (s fakeTransactionStore) GetFundTransactions(context.Context, string) ([]models.FundTransactionRow, error) {
	return s.f.funds, s.f.fail("fund_transactions")
}
func (s fakeTransactionStore) GetPensionTransactions(context.Context, string) ([]models.PensionUnitsRow, error) {
	return s.f.pension, s.f.fail("pension_transactions")
}
func (s fakeTransactionStore) SaveEquityTrade(context.Context, string, *models.EquityTradeRow) error {
	return nil
}
func (s fakeTransactionStore) SaveFundTransaction(context.Context, string, *models.FundTransactionRow) error {
	return nil
}
func (s fakeTransactionStore) SavePensionTransaction(context.Context, string, *models.PensionUnitsRow) error {
	return nil
}

type fakeQuoteStore struct{ f *fakeStorage }

func (s fakeQuoteStore) GetQuotes(context.Context) ([]models.InstrumentQuote, error) {
	return s.f.quotes, s.f.fail("quotes")
}
func (s fakeQuoteStore) SaveQuote(context.Context, *models.InstrumentQuote) error { return nil }
func (s fakeQuoteStore) GetPensionPrices(context.Context) ([]models.PensionPriceRow, error) {
	return s.f.prices, s.f.fail("pension_prices")
}
func (s fakeQuoteStore) SavePensionPrice(context.Context, *models.PensionPriceRow) error {
	return nil
}

type fakeBalanceStore struct{ f *fakeStorage }

func (s fakeBalanceStore) GetBankBalances(context.Context, string) ([]models.BankBalanceRow, error) {
	return s.f.bank, s.f.fail("bank_balances")
}
func (s fakeBalanceStore) GetRetirementRows(context.Context, string) ([]models.RetirementContributionRow, error) {
	return s.f.retirement, s.f.fail("retirement_rows")
}
func (s fakeBalanceStore) GetProvidentEntries(context.Context, string) ([]models.ProvidentEntryRow, error) {
	return s.f.provident, s.f.fail("provident_entries")
}
func (s fakeBalanceStore) SaveBankBalance(context.Context, string, *models.BankBalanceRow) error {
	return nil
}
func (s fakeBalanceStore) SaveRetirementRow(context.Context, string, *models.RetirementContributionRow) error {
	return nil
}
func (s fakeBalanceStore) SaveProvidentEntry(context.Context, string, *models.ProvidentEntryRow) error {
	return nil
}

type fakeChargesStore struct{ f *fakeStorage }

func (s fakeChargesStore) GetCharges(context.Context, string) ([]models.ChargesRow, error) {
	return s.f.charges, s.f.fail("charges")
}
func (s fakeChargesStore) SaveCharges(context.Context, string, *models.ChargesRow) error {
	return nil
}

// fakeCache is a map-backed SnapshotCache without expiry.
type fakeCache struct {
	entries map[string]*models.PortfolioSummary
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*models.PortfolioSummary)}
}

func (c *fakeCache) Get(userID string) (*models.PortfolioSummary, bool) {
	s, ok := c.entries[userID]
	return s, ok
}

func (c *fakeCache) Put(userID string, summary *models.PortfolioSummary) error {
	c.entries[userID] = summary
	c.puts++
	return nil
}

func (c *fakeCache) Invalidate(userID string) error {
	delete(c.entries, userID)
	return nil
}

func (c *fakeCache) Close() error { return nil }

func newTestPortfolioService(storage *fakeStorage, cache *fakeCache) *Service {
	return NewService(storage, cache, 0, common.NewSilentLogger())
}

func TestSnapshot_MergesAllClasses(t *testing.T) {
	storage := &fakeStorage{
		equity: []models.EquityTradeRow{
			{Symbol: "AAA", Account: "broker-1", Quantity: 10, BuyPrice: 100, BuyDate: "2024-01-05"},
		},
		quotes: []models.InstrumentQuote{
			{Name: "AAA", CurrentPrice: 120, PreviousClose: 118},
		},
		bank: []models.BankBalanceRow{
			{Account: "sb-1", Institution: "Bank A", Type: "savings", Amount: 5000, Date: "2024-12-31"},
		},
	}
	cache := newFakeCache()
	svc := newTestPortfolioService(storage, cache)

	summary, err := svc.Snapshot(context.Background(), "user-1", false)
	require.NoError(t, err)

	assert.InDelta(t, 1000+5000, summary.TotalInvested, 1e-9)
	assert.InDelta(t, 1200+5000, summary.TotalMarketValue, 1e-9)
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, 1, cache.puts)
}

func TestSnapshot_ServesFromCacheUnlessForced(t *testing.T) {
	storage := &fakeStorage{}
	cache := newFakeCache()
	svc := newTestPortfolioService(storage, cache)

	first, err := svc.Snapshot(context.Background(), "user-1", false)
	require.NoError(t, err)

	second, err := svc.Snapshot(context.Background(), "user-1", false)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.puts)

	_, err = svc.Snapshot(context.Background(), "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.puts)
}

func TestSnapshot_DegradesOnFetchFailure(t *testing.T) {
	storage := &fakeStorage{
		bank: []models.BankBalanceRow{
			{Account: "sb-1", Institution: "Bank A", Type: "savings", Amount: 5000, Date: "2024-12-31"},
		},
		failTables: map[string]bool{"equity_trades": true, "quotes": true},
	}
	svc := newTestPortfolioService(storage, newFakeCache())

	summary, err := svc.Snapshot(context.Background(), "user-1", false)
	require.NoError(t, err)

	assert.InDelta(t, 5000, summary.TotalMarketValue, 1e-9)
	assert.Len(t, summary.Warnings, 2)
}

func TestInvalidate_DropsCachedSnapshot(t *testing.T) {
	storage := &fakeStorage{}
	cache := newFakeCache()
	svc := newTestPortfolioService(storage, cache)

	_, err := svc.Snapshot(context.Background(), "user-1", false)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate("user-1"))

	_, ok := cache.Get("user-1")
	assert.False(t, ok)
}

func TestAllocationChart_RendersPNG(t *testing.T) {
	svc := newTestPortfolioService(&fakeStorage{}, newFakeCache())

	summary := Aggregate(Inputs{
		Equity:     classResult(models.ClassEquity, 1000, 1500, 0),
		MutualFund: classResult(models.ClassMutualFund, 2000, 2500, 0),
	}, aggNow)

	png, err := svc.AllocationChart(summary)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestAllocationChart_EmptyPortfolio(t *testing.T) {
	svc := newTestPortfolioService(&fakeStorage{}, newFakeCache())

	_, err := svc.AllocationChart(Aggregate(Inputs{}, aggNow))
	assert.Error(t, err)
}

func TestBuildNotification_Payload(t *testing.T) {
	svc := newTestPortfolioService(&fakeStorage{}, newFakeCache())

	summary := Aggregate(Inputs{
		Equity: classResult(models.ClassEquity, 1000, 1200, -50),
	}, aggNow)

	payload := svc.BuildNotification(summary)
	assert.NotEmpty(t, payload.ID)
	assert.Contains(t, payload.Title, "down")
	assert.Contains(t, payload.Body, "200.00")
	assert.Equal(t, "-50.00", payload.Data["day_change"])
}
