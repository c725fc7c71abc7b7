package dashboard

import (
	"fmt"
	"strings"

	"github.com/openshelf/go-inventory-console/api"
	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
)

const (
	// topProductCount is how many best sellers are charted; the backend
	// already sorts the list, so the first entries win.
	topProductCount = 5

	maxLabelRunes       = 20
	truncatedLabelRunes = 18

	defaultChartWidth = 40
)

// BarChart draws the top-products section as a horizontal bar chart. Only one
// chart instance may be live at a time; the controller closes the previous
// instance before creating a new one on refresh.
type BarChart struct {
	width  int
	closed bool
}

func NewBarChart(width int) *BarChart {
	if width <= 0 {
		width = defaultChartWidth
	}
	return &BarChart{width: width}
}

// Render charts at most the first five products in input order, scaled to the
// largest 30-day sold count.
func (c *BarChart) Render(products []api.ProductPerformance) (string, error) {
	if c.closed {
		return "", apperrors.Wrapf(apperrors.ErrInternal, "[BarChart.Render] chart already closed")
	}

	top := products
	if len(top) > topProductCount {
		top = top[:topProductCount]
	}

	var b strings.Builder
	b.WriteString("-- Top Products (Units Sold, 30 days) --\n")
	if len(top) == 0 {
		b.WriteString("No sales recorded.\n")
		return b.String(), nil
	}

	maxSold := 0
	for _, product := range top {
		if product.TotalSold30d > maxSold {
			maxSold = product.TotalSold30d
		}
	}

	for _, product := range top {
		bar := ""
		if maxSold > 0 && product.TotalSold30d > 0 {
			length := product.TotalSold30d * c.width / maxSold
			if length == 0 {
				length = 1
			}
			bar = strings.Repeat("█", length)
		}
		fmt.Fprintf(&b, "%-*s %s %d\n", maxLabelRunes+1, ChartLabel(product.Name), bar, product.TotalSold30d)
	}
	return b.String(), nil
}

// Close disposes the chart. Rendering a closed chart is an error, which keeps
// refresh cycles from leaking a second live instance.
func (c *BarChart) Close() error {
	c.closed = true
	return nil
}

// ChartLabel shortens display names longer than 20 runes to their first 18
// runes plus an ellipsis.
func ChartLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= maxLabelRunes {
		return name
	}
	return string(runes[:truncatedLabelRunes]) + "..."
}
