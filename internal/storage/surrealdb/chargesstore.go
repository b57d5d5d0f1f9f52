package surrealdb

import (
	"context"
	"strconv"

	"github.com/surrealdb/surrealdb.go"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// ChargesStore persists yearly account-level charges rows.
type ChargesStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewChargesStore(db *surrealdb.DB, logger *common.Logger) *ChargesStore {
	return &ChargesStore{db: db, logger: logger}
}

type chargesRecord struct {
	models.ChargesRow
	UserID string `json:"user_id"`
}

func (s *ChargesStore) GetCharges(ctx context.Context, userID string) ([]models.ChargesRow, error) {
	records, err := selectByUser[chargesRecord](ctx, s.db, "charges", userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.ChargesRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.ChargesRow)
	}
	return rows, nil
}

func (s *ChargesStore) SaveCharges(ctx context.Context, userID string, row *models.ChargesRow) error {
	key := compositeKey(userID, row.Account, strconv.Itoa(row.Year))
	return upsertRecord(ctx, s.db, "charges", key, chargesRecord{ChargesRow: *row, UserID: userID})
}
