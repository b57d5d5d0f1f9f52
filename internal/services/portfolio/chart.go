package portfolio

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rajatgoyal/foliocore/internal/models"
)

// classPalette keeps chart colours stable per asset class across
// renders regardless of row order.
var classPalette = map[models.AssetClass]string{
	models.ClassEquity:     "2563eb", // blue-600
	models.ClassMutualFund: "16a34a", // green-600
	models.ClassBank:       "9ca3af", // gray-400
	models.ClassRetirement: "d97706", // amber-600
	models.ClassProvident:  "7c3aed", // violet-600
	models.ClassPension:    "dc2626", // red-600
}

// AllocationChart renders the asset-class allocation as a donut PNG.
// Classes with no market value are omitted. Returns raw PNG bytes.
func (s *Service) AllocationChart(summary *models.PortfolioSummary) ([]byte, error) {
	var values []chart.Value
	for _, row := range summary.Rows {
		if row.MarketValue <= 0 {
			continue
		}
		hex, ok := classPalette[row.Class]
		if !ok {
			hex = "6b7280" // gray-500
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", row.Class, row.MarketValuePct),
			Value: row.MarketValue,
			Style: chart.Style{FillColor: drawing.ColorFromHex(hex)},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no positive allocations to chart")
	}

	graph := chart.DonutChart{
		Title:  "Asset Allocation",
		Width:  600,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
