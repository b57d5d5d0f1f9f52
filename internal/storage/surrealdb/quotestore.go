package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// QuoteStore persists instrument quotes and pension scheme prices.
// Both tables are shared across users and keyed by name.
type QuoteStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewQuoteStore(db *surrealdb.DB, logger *common.Logger) *QuoteStore {
	return &QuoteStore{db: db, logger: logger}
}

func (s *QuoteStore) GetQuotes(ctx context.Context) ([]models.InstrumentQuote, error) {
	return selectAll[models.InstrumentQuote](ctx, s.db, "quotes")
}

func (s *QuoteStore) SaveQuote(ctx context.Context, quote *models.InstrumentQuote) error {
	return upsertRecord(ctx, s.db, "quotes", quote.Name, quote)
}

func (s *QuoteStore) GetPensionPrices(ctx context.Context) ([]models.PensionPriceRow, error) {
	return selectAll[models.PensionPriceRow](ctx, s.db, "pension_prices")
}

func (s *QuoteStore) SavePensionPrice(ctx context.Context, price *models.PensionPriceRow) error {
	return upsertRecord(ctx, s.db, "pension_prices", price.Scheme, price)
}

func selectAll[T any](ctx context.Context, db *surrealdb.DB, table string) ([]T, error) {
	sql := fmt.Sprintf("SELECT * FROM %s", table)

	results, err := surrealdb.Query[[]T](ctx, db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}
