package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajatgoyal/foliocore/internal/models"
)

func TestBank_LatestRowPerCellPerMonth(t *testing.T) {
	s := newTestService()

	rows := []models.BankBalanceRow{
		{Account: "sav-1", Institution: "HDFC", Type: "savings", Amount: 900, Date: "2024-06-10"},
		{Account: "sav-1", Institution: "HDFC", Type: "savings", Amount: 1000, Date: "2024-06-25"}, // latest in June
		{Account: "sav-1", Institution: "HDFC", Type: "savings", Amount: 800, Date: "2024-05-20"},
		{Account: "fd-1", Institution: "HDFC", Type: "deposit", Amount: 5000, Date: "2024-06-01"},
	}

	result := s.Bank(rows)

	assert.InDelta(t, 1000, result.ByType["savings"], 1e-9, "only the latest June observation counts")
	assert.InDelta(t, 5000, result.ByType["deposit"], 1e-9)
	assert.InDelta(t, 800, result.PrevByType["savings"], 1e-9)
	assert.InDelta(t, 6000, result.MarketValue, 1e-9)
	assert.InDelta(t, 6000-800, result.MonthDelta, 1e-9)
	assert.InDelta(t, 1000, result.ByAccount["sav-1"], 1e-9)
	assert.InDelta(t, 5000, result.ByAccount["fd-1"], 1e-9)
}

func TestBank_SingleMonthHasNoPrior(t *testing.T) {
	s := newTestService()

	result := s.Bank([]models.BankBalanceRow{
		{Account: "sav-1", Institution: "HDFC", Type: "savings", Amount: 1000, Date: "2024-06-25"},
	})

	assert.InDelta(t, 1000, result.MarketValue, 1e-9)
	assert.Empty(t, result.PrevByType)
	assert.InDelta(t, 1000, result.MonthDelta, 1e-9)
}

func TestBank_MalformedRowsSkipped(t *testing.T) {
	s := newTestService()

	result := s.Bank([]models.BankBalanceRow{
		{Account: "", Institution: "HDFC", Type: "savings", Amount: 1000, Date: "2024-06-25"},
		{Account: "sav-1", Institution: "HDFC", Type: "savings", Amount: 1000, Date: "not a date"},
	})

	assert.Zero(t, result.MarketValue)
	assert.Empty(t, result.ByType)
}

func TestBank_EmptyInput(t *testing.T) {
	s := newTestService()
	result := s.Bank(nil)
	assert.Equal(t, models.ClassBank, result.Class)
	assert.Zero(t, result.MarketValue)
}
