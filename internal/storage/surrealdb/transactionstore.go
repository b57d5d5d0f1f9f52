package surrealdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

func newRecordID(table, key string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(table, key)
}

// TransactionStore persists raw transaction tables per user.
type TransactionStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTransactionStore(db *surrealdb.DB, logger *common.Logger) *TransactionStore {
	return &TransactionStore{db: db, logger: logger}
}

type equityTradeRecord struct {
	models.EquityTradeRow
	UserID string `json:"user_id"`
}

type fundTransactionRecord struct {
	models.FundTransactionRow
	UserID string `json:"user_id"`
}

type pensionUnitsRecord struct {
	models.PensionUnitsRow
	UserID string `json:"user_id"`
}

func (s *TransactionStore) GetEquityTrades(ctx context.Context, userID string) ([]models.EquityTradeRow, error) {
	records, err := selectByUser[equityTradeRecord](ctx, s.db, "equity_trades", userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.EquityTradeRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.EquityTradeRow)
	}
	return rows, nil
}

func (s *TransactionStore) GetFundTransactions(ctx context.Context, userID string) ([]models.FundTransactionRow, error) {
	records, err := selectByUser[fundTransactionRecord](ctx, s.db, "fund_transactions", userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.FundTransactionRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.FundTransactionRow)
	}
	return rows, nil
}

func (s *TransactionStore) GetPensionTransactions(ctx context.Context, userID string) ([]models.PensionUnitsRow, error) {
	records, err := selectByUser[pensionUnitsRecord](ctx, s.db, "pension_transactions", userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.PensionUnitsRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.PensionUnitsRow)
	}
	return rows, nil
}

func (s *TransactionStore) SaveEquityTrade(ctx context.Context, userID string, row *models.EquityTradeRow) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	return upsertRecord(ctx, s.db, "equity_trades", row.ID, equityTradeRecord{EquityTradeRow: *row, UserID: userID})
}

func (s *TransactionStore) SaveFundTransaction(ctx context.Context, userID string, row *models.FundTransactionRow) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	return upsertRecord(ctx, s.db, "fund_transactions", row.ID, fundTransactionRecord{FundTransactionRow: *row, UserID: userID})
}

func (s *TransactionStore) SavePensionTransaction(ctx context.Context, userID string, row *models.PensionUnitsRow) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	return upsertRecord(ctx, s.db, "pension_transactions", row.ID, pensionUnitsRecord{PensionUnitsRow: *row, UserID: userID})
}
