package dashboard_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/go-inventory-console/api"
	"github.com/openshelf/go-inventory-console/dashboard"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"7", "7.00"},
		{"999.9", "999.90"},
		{"1234.5", "1,234.50"},
		{"1234567.891", "1,234,567.89"},
		{"-1234.5", "-1,234.50"},
		{"100000", "100,000.00"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, dashboard.FormatMoney(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestRenderSummary(t *testing.T) {
	summary := api.DashboardSummary{
		TotalProducts:   120,
		TotalStockValue: decimal.RequireFromString("45678.9"),
		LowStockCount:   3,
		OutOfStockCount: 1,
	}

	rendered := dashboard.RenderSummary(summary)
	require.Contains(t, rendered, "Total Products: 120")
	require.Contains(t, rendered, "45,678.90")
	require.Contains(t, rendered, "Low Stock:      3")
	require.Contains(t, rendered, "Out of Stock:   1")
}

func TestRenderLowStockEmptyShowsHealthyMessage(t *testing.T) {
	rendered := dashboard.RenderLowStock(nil)
	require.Contains(t, rendered, "All stock levels are healthy.")
	require.NotContains(t, rendered, "SKU:")
}

func TestRenderLowStockStatusBadges(t *testing.T) {
	alerts := []api.LowStockAlert{
		{SKU: "SKU-001", Name: "Beans", QuantityInStock: 0, ReorderThreshold: 10},
		{SKU: "SKU-002", Name: "Rice", QuantityInStock: 4, ReorderThreshold: 10},
	}

	rendered := dashboard.RenderLowStock(alerts)
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "Out of Stock")
	require.Contains(t, lines[1], "0 / 10")
	require.Contains(t, lines[2], "Low Stock")
	require.Contains(t, lines[2], "4 / 10")
}

func TestRenderDailySalesNilRendersZeros(t *testing.T) {
	rendered := dashboard.RenderDailySales(nil)
	require.Contains(t, rendered, "Transactions: 0")
	require.Contains(t, rendered, "Items Sold:   0")
	require.Contains(t, rendered, "Revenue:      0.00")
}

func TestRenderDailySales(t *testing.T) {
	summary := &api.DailySalesSummary{
		TransactionCount: 12,
		TotalItemsSold:   48,
		TotalRevenue:     decimal.RequireFromString("1500"),
	}

	rendered := dashboard.RenderDailySales(summary)
	require.Contains(t, rendered, "Transactions: 12")
	require.Contains(t, rendered, "Items Sold:   48")
	require.Contains(t, rendered, "Revenue:      1,500.00")
}

// Rendering the same payload twice yields byte-identical output.
func TestRenderersAreIdempotent(t *testing.T) {
	alerts := []api.LowStockAlert{{SKU: "SKU-001", Name: "Beans", QuantityInStock: 2, ReorderThreshold: 5}}
	summary := api.DashboardSummary{TotalProducts: 9, TotalStockValue: decimal.RequireFromString("10")}

	require.Equal(t, dashboard.RenderLowStock(alerts), dashboard.RenderLowStock(alerts))
	require.Equal(t, dashboard.RenderSummary(summary), dashboard.RenderSummary(summary))
	require.Equal(t, dashboard.RenderDailySales(nil), dashboard.RenderDailySales(nil))
}
