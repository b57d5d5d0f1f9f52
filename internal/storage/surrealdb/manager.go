// Package surrealdb implements the storage boundary on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	transactionStore *TransactionStore
	quoteStore       *QuoteStore
	balanceStore     *BalanceStore
	chargesStore     *ChargesStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// SurrealDB v3 errors on querying non-existent tables.
	tables := []string{
		"equity_trades", "fund_transactions", "pension_transactions",
		"quotes", "pension_prices",
		"bank_balances", "retirement_rows", "provident_entries", "charges",
	}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}
	m.transactionStore = NewTransactionStore(db, logger)
	m.quoteStore = NewQuoteStore(db, logger)
	m.balanceStore = NewBalanceStore(db, logger)
	m.chargesStore = NewChargesStore(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) Transactions() interfaces.TransactionStore {
	return m.transactionStore
}

func (m *Manager) Quotes() interfaces.QuoteStore {
	return m.quoteStore
}

func (m *Manager) Balances() interfaces.BalanceStore {
	return m.balanceStore
}

func (m *Manager) Charges() interfaces.ChargesStore {
	return m.chargesStore
}

// Close closes the database connection.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close(context.Background())
	}
	return nil
}

// selectByUser runs a user-scoped SELECT and flattens the first result set.
func selectByUser[T any](ctx context.Context, db *surrealdb.DB, table, userID string) ([]T, error) {
	sql := fmt.Sprintf("SELECT * FROM %s WHERE user_id = $user", table)
	vars := map[string]any{"user": userID}

	results, err := surrealdb.Query[[]T](ctx, db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, ":", `\:`)

// compositeKey joins record-key parts with ":" after escaping literal
// delimiters, so distinct tuples never produce the same record ID
// (e.g. ("a:b","c") vs ("a","b:c")).
func compositeKey(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = keyEscaper.Replace(p)
	}
	return strings.Join(escaped, ":")
}

// upsertRecord writes one record, retrying transient failures.
func upsertRecord[T any](ctx context.Context, db *surrealdb.DB, table, recordKey string, record T) error {
	sql := "UPSERT $rid CONTENT $data"
	vars := map[string]any{"rid": newRecordID(table, recordKey), "data": record}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]T](ctx, db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save %s record after retries: %w", table, lastErr)
}
