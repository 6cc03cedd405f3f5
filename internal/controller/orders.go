package controller

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/model"
	"github.com/yourorg/canteen-companion/internal/ui"
)

const historyPageSize = 10

// showOrders fetches and renders recent order history, caching the rows so
// receipt/cancel/reorder can refer to them by number.
func (c *Controller) showOrders(ctx context.Context) {
	history, err := c.api.OrderHistory(ctx, historyPageSize)
	if err != nil {
		c.showError(err)
		return
	}

	if len(history.Orders) == 0 {
		fmt.Fprintln(c.out, "No orders yet.")
		return
	}

	for i, order := range history.Orders {
		fmt.Fprintf(c.out, "%3d. %-12s %-10s %-10s %s\n",
			i+1,
			order.OrderNumber,
			order.Status,
			ui.FormatCurrency(order.Total, c.currency),
			ui.FormatDate(order.CreatedAt))
	}
	if history.HasMore {
		fmt.Fprintln(c.out, "(older orders exist; see the web app for the full list)")
	}

	c.mu.Lock()
	c.orders = history.Orders
	c.mu.Unlock()
}

// order resolves a 1-based order number from the last rendered history.
func (c *Controller) order(arg string) (model.Order, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Order{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 || n > len(c.orders) {
		return model.Order{}, false
	}
	return c.orders[n-1], true
}

// showReceipt fetches full order detail and renders the printable receipt,
// then hands it to the print spooler best-effort.
func (c *Controller) showReceipt(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: receipt <n>")
		return
	}
	ref, ok := c.order(args[0])
	if !ok {
		fmt.Fprintln(c.out, "No such order. Run 'orders' first.")
		return
	}

	order, err := c.api.OrderReceipt(ctx, ref.ID)
	if err != nil {
		c.showError(err)
		return
	}

	document := ui.RenderReceipt(order, c.currency)
	fmt.Fprint(c.out, document)

	if err := ui.Print(document); err != nil {
		c.logger.Debug("receipt not spooled", zap.Error(err))
	}
}

// cancelOrder cancels a pending order after confirmation.
func (c *Controller) cancelOrder(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: cancel <n>")
		return
	}
	ref, ok := c.order(args[0])
	if !ok {
		fmt.Fprintln(c.out, "No such order. Run 'orders' first.")
		return
	}

	confirmed, err := c.prompter.Confirm("Cancel order",
		"Cancel order "+ref.OrderNumber+"? This cannot be undone.")
	if err != nil || !confirmed {
		return
	}

	if err := c.api.CancelOrder(ctx, ref.ID); err != nil {
		c.showError(err)
		return
	}
	c.toaster.Notify("Order "+ref.OrderNumber+" cancelled", ui.SeveritySuccess)
}

// reorder duplicates a past order into a new one and navigates to it.
func (c *Controller) reorder(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: reorder <n>")
		return
	}
	ref, ok := c.order(args[0])
	if !ok {
		fmt.Fprintln(c.out, "No such order. Run 'orders' first.")
		return
	}

	result, err := c.api.Reorder(ctx, ref.ID)
	if err != nil {
		c.showError(err)
		return
	}

	c.toaster.Notify("Order "+ref.OrderNumber+" placed again", ui.SeveritySuccess)
	c.navigate(c.routes.OrderDetailFor(result.OrderID))
}
