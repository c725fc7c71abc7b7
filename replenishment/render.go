package replenishment

import (
	"fmt"
	"strings"

	"github.com/openshelf/go-inventory-console/api"
	"github.com/openshelf/go-inventory-console/internal/utils"
)

// ConfidenceLabel is a client-side display heuristic, not a business rule:
// the projected shortage is covered by the suggested order ("high") or not
// ("medium"). The backend knows nothing about it.
func ConfidenceLabel(forecastedDemand, currentStock, suggestedQuantity int) string {
	shortage := forecastedDemand - currentStock
	if shortage < 0 {
		shortage = 0
	}
	if shortage <= suggestedQuantity {
		return "high"
	}
	return "medium"
}

// RenderSuggestions maps the suggestion list to its cards. The list is always
// a full server snapshot, never a locally patched one.
func RenderSuggestions(suggestions []api.Suggestion) string {
	var b strings.Builder
	b.WriteString("-- Replenishment Suggestions --\n")
	if len(suggestions) == 0 {
		b.WriteString("No replenishment suggestions found. Generate new ones.\n")
		return b.String()
	}

	for _, s := range suggestions {
		fmt.Fprintf(&b, "\n#%d %s (SKU: %s, Barcode: %s)\n",
			s.ID, s.ProductName, s.ProductSKU, utils.OrDash(s.ProductBarcode))
		fmt.Fprintf(&b, "  Forecasted Demand: %d units\n", s.ForecastedDemand)
		fmt.Fprintf(&b, "  Current Stock:     %d\n", s.CurrentStock)
		fmt.Fprintf(&b, "  Suggested Order:   %d\n", s.SuggestedQuantity)
		fmt.Fprintf(&b, "  Confidence:        %s\n",
			ConfidenceLabel(s.ForecastedDemand, s.CurrentStock, s.SuggestedQuantity))
		fmt.Fprintf(&b, "  Generated: %s", s.DateGenerated.Format("2006-01-02"))
		if s.IsActedUpon {
			if s.ActedUponAt != nil {
				fmt.Fprintf(&b, " | Acted upon: %s", s.ActedUponAt.Local().Format("2006-01-02 15:04:05"))
			} else {
				b.WriteString(" | Acted upon")
			}
		} else {
			b.WriteString(" | Active")
		}
		b.WriteString("\n")
	}
	return b.String()
}
