package interfaces

import (
	"context"

	"github.com/rajatgoyal/foliocore/internal/models"
)

// PortfolioService produces cross-asset portfolio aggregates.
type PortfolioService interface {
	// Snapshot computes (or serves from the TTL cache) the merged
	// portfolio summary for one user.
	Snapshot(ctx context.Context, userID string, force bool) (*models.PortfolioSummary, error)

	// Invalidate drops any cached snapshot for the user.
	Invalidate(userID string) error

	// AllocationChart renders the asset-class allocation as a PNG.
	AllocationChart(summary *models.PortfolioSummary) ([]byte, error)

	// BuildNotification derives a delivery payload from profit and
	// day-change figures.
	BuildNotification(summary *models.PortfolioSummary) models.NotificationPayload
}
