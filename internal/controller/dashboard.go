package controller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/ui"
)

// showDashboard is the landing screen: cart summary plus the latest orders.
func (c *Controller) showDashboard(ctx context.Context) {
	fmt.Fprintln(c.out, "Canteen Companion — type 'help' for commands")

	if n := c.cart.Len(); n > 0 {
		totals := c.cart.Totals()
		fmt.Fprintf(c.out, "Cart: %d item(s), %s\n",
			n, ui.FormatCurrency(totals.Total, c.currency))
	}

	history, err := c.api.OrderHistory(ctx, 3)
	if err != nil {
		// The dashboard stays usable offline; just note the failure.
		c.logger.Warn("could not load recent orders for dashboard", zap.Error(err))
		return
	}

	if len(history.Orders) > 0 {
		fmt.Fprintln(c.out, "Recent orders:")
		for _, order := range history.Orders {
			fmt.Fprintf(c.out, "  %-12s %-10s %s\n",
				order.OrderNumber, order.Status,
				ui.FormatCurrency(order.Total, c.currency))
		}
	}
}
