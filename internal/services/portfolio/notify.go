package portfolio

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rajatgoyal/foliocore/internal/models"
)

// BuildNotification derives a delivery payload summarising the day's
// movement and overall profit. Delivery itself is a collaborator
// concern; this only shapes the payload.
func (s *Service) BuildNotification(summary *models.PortfolioSummary) models.NotificationPayload {
	direction := "up"
	if summary.TotalDayChange < 0 {
		direction = "down"
	}

	return models.NotificationPayload{
		ID:    uuid.New().String(),
		Title: fmt.Sprintf("Portfolio %s %.2f today", direction, summary.TotalDayChange),
		Body: fmt.Sprintf("Value %.2f | Invested %.2f | P/L %.2f (%.2f%%)",
			summary.TotalMarketValue, summary.TotalInvested, summary.Profit, summary.ProfitPercent),
		Icon: "portfolio",
		Data: map[string]string{
			"market_value": fmt.Sprintf("%.2f", summary.TotalMarketValue),
			"invested":     fmt.Sprintf("%.2f", summary.TotalInvested),
			"day_change":   fmt.Sprintf("%.2f", summary.TotalDayChange),
			"profit":       fmt.Sprintf("%.2f", summary.Profit),
		},
	}
}
