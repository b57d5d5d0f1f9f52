package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/interfaces"
	"github.com/rajatgoyal/foliocore/internal/models"
	"github.com/rajatgoyal/foliocore/internal/services/assets"
)

// Service implements PortfolioService
type Service struct {
	storage           interfaces.StorageManager
	cache             interfaces.SnapshotCache
	assets            *assets.Service
	configuredCharges float64
	logger            *common.Logger
}

// NewService creates a new portfolio service
func NewService(
	storage interfaces.StorageManager,
	cache interfaces.SnapshotCache,
	configuredCharges float64,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:           storage,
		cache:             cache,
		assets:            assets.NewService(logger),
		configuredCharges: configuredCharges,
		logger:            logger,
	}
}

// fetched holds one snapshot of every source table. Tables that failed
// to load stay empty; the failure is recorded as a warning instead.
type fetched struct {
	equityRows     []models.EquityTradeRow
	fundRows       []models.FundTransactionRow
	pensionRows    []models.PensionUnitsRow
	quotes         []models.InstrumentQuote
	pensionPrices  []models.PensionPriceRow
	bankRows       []models.BankBalanceRow
	retirementRows []models.RetirementContributionRow
	providentRows  []models.ProvidentEntryRow
	chargesRows    []models.ChargesRow

	mu       sync.Mutex
	warnings []string
}

func (f *fetched) warn(table string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warnings = append(f.warnings, fmt.Sprintf("%s unavailable: %v", table, err))
}

// Snapshot computes the merged cross-asset summary for one user,
// serving a cached copy when one is fresh and force is false.
func (s *Service) Snapshot(ctx context.Context, userID string, force bool) (*models.PortfolioSummary, error) {
	if !force {
		if cached, ok := s.cache.Get(userID); ok {
			s.logger.Debug().Str("user", userID).Msg("Serving cached portfolio snapshot")
			return cached, nil
		}
	}

	s.logger.Info().Str("user", userID).Bool("force", force).Msg("Computing portfolio snapshot")

	f := s.fetchAll(ctx, userID)
	summary := s.compute(f, time.Now())

	if err := s.cache.Put(userID, summary); err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Failed to cache portfolio snapshot")
	}
	return summary, nil
}

// fetchAll loads every source table concurrently. A table that errors
// degrades to empty with a warning; the snapshot always proceeds.
func (s *Service) fetchAll(ctx context.Context, userID string) *fetched {
	f := &fetched{}
	var wg sync.WaitGroup

	run := func(table string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.logger.Warn().Err(err).Str("table", table).Str("user", userID).Msg("Source table fetch failed, degrading to empty")
				f.warn(table, err)
			}
		}()
	}

	run("equity_trades", func() (err error) {
		f.equityRows, err = s.storage.Transactions().GetEquityTrades(ctx, userID)
		return
	})
	run("fund_transactions", func() (err error) {
		f.fundRows, err = s.storage.Transactions().GetFundTransactions(ctx, userID)
		return
	})
	run("pension_transactions", func() (err error) {
		f.pensionRows, err = s.storage.Transactions().GetPensionTransactions(ctx, userID)
		return
	})
	run("quotes", func() (err error) {
		f.quotes, err = s.storage.Quotes().GetQuotes(ctx)
		return
	})
	run("pension_prices", func() (err error) {
		f.pensionPrices, err = s.storage.Quotes().GetPensionPrices(ctx)
		return
	})
	run("bank_balances", func() (err error) {
		f.bankRows, err = s.storage.Balances().GetBankBalances(ctx, userID)
		return
	})
	run("retirement_rows", func() (err error) {
		f.retirementRows, err = s.storage.Balances().GetRetirementRows(ctx, userID)
		return
	})
	run("provident_entries", func() (err error) {
		f.providentRows, err = s.storage.Balances().GetProvidentEntries(ctx, userID)
		return
	})
	run("charges", func() (err error) {
		f.chargesRows, err = s.storage.Charges().GetCharges(ctx, userID)
		return
	})

	wg.Wait()
	return f
}

func (s *Service) compute(f *fetched, now time.Time) *models.PortfolioSummary {
	in := Inputs{
		Equity:     s.assets.Equity(f.equityRows, f.quotes, f.chargesRows, s.configuredCharges, now),
		MutualFund: s.assets.MutualFund(f.fundRows, f.quotes, now),
		Pension:    s.assets.Pension(f.pensionRows, f.pensionPrices, now),
		Bank:       s.assets.Bank(f.bankRows),
		Retirement: s.assets.Retirement(f.retirementRows),
		Provident:  s.assets.Provident(f.providentRows),
		Warnings:   f.warnings,
	}
	return Aggregate(in, now)
}

// Invalidate drops any cached snapshot for the user.
func (s *Service) Invalidate(userID string) error {
	s.logger.Debug().Str("user", userID).Msg("Invalidating cached portfolio snapshot")
	return s.cache.Invalidate(userID)
}
