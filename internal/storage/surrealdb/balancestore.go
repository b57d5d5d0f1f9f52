package surrealdb

import (
	"context"

	"github.com/surrealdb/surrealdb.go"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// BalanceStore persists balance-based tables: bank observations,
// retirement contributions and provident entries. Records carry a
// deterministic key so re-saving the same observation overwrites it.
type BalanceStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewBalanceStore(db *surrealdb.DB, logger *common.Logger) *BalanceStore {
	return &BalanceStore{db: db, logger: logger}
}

type bankBalanceRecord struct {
	models.BankBalanceRow
	UserID string `json:"user_id"`
}

type retirementRecord struct {
	models.RetirementContributionRow
	UserID string `json:"user_id"`
}

type providentRecord struct {
	models.ProvidentEntryRow
	UserID string `json:"user_id"`
}

func (s *BalanceStore) GetBankBalances(ctx context.Context, userID string) ([]models.BankBalanceRow, error) {
	records, err := selectByUser[bankBalanceRecord](ctx, s.db, "bank_balances", userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.BankBalanceRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.BankBalanceRow)
	}
	return rows, nil
}

func (s *BalanceStore) GetRetirementRows(ctx context.Context, userID string) ([]models.RetirementContributionRow, error) {
	records, err := selectByUser[retirementRecord](ctx, s.db, "retirement_rows", userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.RetirementContributionRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.RetirementContributionRow)
	}
	return rows, nil
}

func (s *BalanceStore) GetProvidentEntries(ctx context.Context, userID string) ([]models.ProvidentEntryRow, error) {
	records, err := selectByUser[providentRecord](ctx, s.db, "provident_entries", userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.ProvidentEntryRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.ProvidentEntryRow)
	}
	return rows, nil
}

func (s *BalanceStore) SaveBankBalance(ctx context.Context, userID string, row *models.BankBalanceRow) error {
	key := compositeKey(userID, row.Account, row.Institution, row.Type, row.Date)
	return upsertRecord(ctx, s.db, "bank_balances", key, bankBalanceRecord{BankBalanceRow: *row, UserID: userID})
}

func (s *BalanceStore) SaveRetirementRow(ctx context.Context, userID string, row *models.RetirementContributionRow) error {
	key := compositeKey(userID, row.Account, row.Date)
	return upsertRecord(ctx, s.db, "retirement_rows", key, retirementRecord{RetirementContributionRow: *row, UserID: userID})
}

func (s *BalanceStore) SaveProvidentEntry(ctx context.Context, userID string, row *models.ProvidentEntryRow) error {
	key := compositeKey(userID, row.Account, row.Kind, row.Date)
	return upsertRecord(ctx, s.db, "provident_entries", key, providentRecord{ProvidentEntryRow: *row, UserID: userID})
}
