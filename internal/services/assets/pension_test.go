package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajatgoyal/foliocore/internal/models"
)

func TestPension_ValuedAgainstSchemePriceMap(t *testing.T) {
	s := newTestService()

	rows := []models.PensionUnitsRow{
		{Scheme: "Scheme E Tier I", Account: "nps-1", Type: "Contribution", Units: 100, NAV: 30, Date: "2024-01-05"},
		{Scheme: "Scheme C Tier I", Account: "nps-1", Type: "Contribution", Units: 50, NAV: 25, Date: "2024-01-05"},
	}
	prices := []models.PensionPriceRow{
		{Scheme: "Scheme E Tier I", Price: 36, PreviousPrice: 35},
		{Scheme: "Scheme C Tier I", Price: 27, PreviousPrice: 27},
	}

	result := s.Pension(rows, prices, testNow)

	require.Len(t, result.Holdings, 2)
	assert.InDelta(t, 100*30+50*25, result.Invested, 1e-9)
	assert.InDelta(t, 100*36+50*27, result.MarketValue, 1e-9)
	assert.InDelta(t, 100*1, result.DayChange, 1e-9)
}

func TestPension_RedemptionConsumesFIFO(t *testing.T) {
	s := newTestService()

	rows := []models.PensionUnitsRow{
		{Scheme: "Scheme E Tier I", Account: "nps-1", Type: "Contribution", Units: 100, NAV: 30, Date: "2024-01-05"},
		{Scheme: "Scheme E Tier I", Account: "nps-1", Type: "Redeem", Units: 40, NAV: 33, Date: "2024-06-05"},
	}
	prices := []models.PensionPriceRow{
		{Scheme: "Scheme E Tier I", Price: 36, PreviousPrice: 36},
	}

	result := s.Pension(rows, prices, testNow)

	require.Len(t, result.Holdings, 1)
	assert.InDelta(t, 60, result.Holdings[0].Units, 1e-9)
	require.Len(t, result.Closed, 1)
	assert.InDelta(t, 40*33-40*30, result.Closed[0].RealizedGain, 1e-9)
}

func TestPension_UnpricedSchemeFallsBackToLastNAV(t *testing.T) {
	s := newTestService()

	rows := []models.PensionUnitsRow{
		{Scheme: "Scheme G Tier II", Account: "nps-1", Type: "Contribution", Units: 100, NAV: 20, Date: "2024-01-05"},
	}

	result := s.Pension(rows, nil, testNow)

	require.Len(t, result.Holdings, 1)
	assert.InDelta(t, 2000, result.Holdings[0].MarketValue, 1e-9)
	assert.GreaterOrEqual(t, result.MarketValue, 0.0)
}
