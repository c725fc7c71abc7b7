package inventory

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/openshelf/go-inventory-console/api"
	"github.com/openshelf/go-inventory-console/internal/utils"
)

// MovementSign is the display sign convention for a movement type: "-" for
// sale and damage, "+" for everything else. It is a presentation convention
// layered on top of the raw quantity; the backend does not supply it.
func MovementSign(movementType string) string {
	if movementType == "sale" || movementType == "damage" {
		return "-"
	}
	return "+"
}

// RenderMovements maps the movement history to its table. An empty list
// renders the explicit no-movements message, never an empty table.
func RenderMovements(movements []api.Movement) string {
	var b strings.Builder
	b.WriteString("-- Movement History --\n")
	if len(movements) == 0 {
		b.WriteString("No movements found.\n")
		return b.String()
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tProduct\tSKU\tType\tQty\tPrev\tNew\tReference\tReason\tBy")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%d\t%d\t%d\t%s\t%s\t%s\n",
			m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			utils.OrDash(m.ProductName),
			m.ProductSKU,
			m.MovementType,
			MovementSign(m.MovementType), m.Quantity,
			m.PreviousQuantity,
			m.NewQuantity,
			utils.OrDash(m.ReferenceID),
			utils.OrDash(m.Reason),
			utils.OrDefault(m.PerformedBy, "system"),
		)
	}
	_ = w.Flush()
	return b.String()
}

// RenderStockLevel maps one SKU's stock level to its section.
func RenderStockLevel(level api.StockLevel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (SKU: %s)\n", level.Name, level.SKU)
	fmt.Fprintf(&b, "In Stock:  %d\n", level.QuantityInStock)
	fmt.Fprintf(&b, "Threshold: %d\n", level.ReorderThreshold)
	fmt.Fprintf(&b, "Status:    %s\n", level.Status)
	return b.String()
}
