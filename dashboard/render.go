package dashboard

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/openshelf/go-inventory-console/api"
)

// FormatMoney renders a currency amount with exactly two fractional digits
// and comma thousands separators, matching the browser frontend's
// toLocaleString formatting.
func FormatMoney(value decimal.Decimal) string {
	fixed := value.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	integer := parts[0]

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i := 0; i < len(integer); i++ {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(integer[i])
	}
	b.WriteByte('.')
	b.WriteString(parts[1])
	return b.String()
}

// RenderSummary maps the summary metrics to their dashboard section.
func RenderSummary(summary api.DashboardSummary) string {
	var b strings.Builder
	b.WriteString("-- Summary --\n")
	fmt.Fprintf(&b, "Total Products: %d\n", summary.TotalProducts)
	fmt.Fprintf(&b, "Stock Value:    %s\n", FormatMoney(summary.TotalStockValue))
	fmt.Fprintf(&b, "Low Stock:      %d\n", summary.LowStockCount)
	fmt.Fprintf(&b, "Out of Stock:   %d\n", summary.OutOfStockCount)
	return b.String()
}

// RenderLowStock maps the alert list to its dashboard section. An empty list
// renders the healthy message, never an empty table.
func RenderLowStock(alerts []api.LowStockAlert) string {
	var b strings.Builder
	b.WriteString("-- Low Stock Alerts --\n")
	if len(alerts) == 0 {
		b.WriteString("All stock levels are healthy.\n")
		return b.String()
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, alert := range alerts {
		status := "Low Stock"
		if alert.QuantityInStock == 0 {
			status = "Out of Stock"
		}
		fmt.Fprintf(w, "%s\tSKU: %s\t%d / %d\t%s\n",
			alert.Name, alert.SKU, alert.QuantityInStock, alert.ReorderThreshold, status)
	}
	_ = w.Flush()
	return b.String()
}

// RenderDailySales maps today's rollup to its dashboard section. A nil
// summary (no sales recorded today) renders zeros.
func RenderDailySales(summary *api.DailySalesSummary) string {
	var b strings.Builder
	b.WriteString("-- Today's Sales --\n")
	if summary == nil {
		b.WriteString("Transactions: 0\n")
		b.WriteString("Items Sold:   0\n")
		b.WriteString("Revenue:      0.00\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Transactions: %d\n", summary.TransactionCount)
	fmt.Fprintf(&b, "Items Sold:   %d\n", summary.TotalItemsSold)
	fmt.Fprintf(&b, "Revenue:      %s\n", FormatMoney(summary.TotalRevenue))
	return b.String()
}
