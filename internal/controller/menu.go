package controller

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yourorg/canteen-companion/internal/cart"
	"github.com/yourorg/canteen-companion/internal/model"
	"github.com/yourorg/canteen-companion/internal/ui"
)

// showMenu fetches and renders today's menu, caching the items so add/remove
// commands can refer to them by number.
func (c *Controller) showMenu(ctx context.Context) {
	menu, err := c.api.DailyMenu(ctx)
	if err != nil {
		c.showError(err)
		return
	}

	var items []model.MenuItem
	fmt.Fprintf(c.out, "Menu for %s\n", menu.Date)
	if menu.SpecialMessage != "" {
		fmt.Fprintln(c.out, menu.SpecialMessage)
	}
	for _, category := range menu.Categories {
		fmt.Fprintf(c.out, "\n-- %s --\n", category.Name)
		for _, item := range category.Items {
			items = append(items, item)
			marker := " "
			if !item.IsAvailable {
				marker = "*"
			}
			fmt.Fprintf(c.out, "%3d.%s %-28s %s\n",
				len(items), marker, item.Name, ui.FormatCurrency(item.Price, c.currency))
		}
	}
	fmt.Fprintln(c.out, "\n(* = sold out)")

	c.mu.Lock()
	c.menuItems = items
	c.mu.Unlock()
}

// menuItem resolves a 1-based menu number from the last rendered menu.
func (c *Controller) menuItem(arg string) (model.MenuItem, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.MenuItem{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 || n > len(c.menuItems) {
		return model.MenuItem{}, false
	}
	return c.menuItems[n-1], true
}

func (c *Controller) addToCart(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: add <n> [qty]")
		return
	}
	item, ok := c.menuItem(args[0])
	if !ok {
		fmt.Fprintln(c.out, "No such menu item. Run 'menu' first.")
		return
	}
	if !item.IsAvailable {
		c.toaster.Notify(item.Name+" is sold out today", ui.SeverityWarning)
		return
	}

	quantity := 1
	if len(args) > 1 {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(c.out, "Quantity must be a number.")
			return
		}
		quantity = q
	}

	if err := c.cart.Add(item.ID, item.Name, item.Price, quantity); err != nil {
		c.toaster.Notify("Cannot add "+item.Name+": "+err.Error(), ui.SeverityWarning)
		return
	}
	c.toaster.Notify(item.Name+" added to your cart", ui.SeveritySuccess)
}

func (c *Controller) removeFromCart(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: remove <n>")
		return
	}
	item, ok := c.menuItem(args[0])
	if !ok {
		fmt.Fprintln(c.out, "No such menu item. Run 'menu' first.")
		return
	}
	c.cart.Remove(item.ID)
	c.toaster.Notify(item.Name+" removed from your cart", ui.SeverityInfo)
}

func (c *Controller) setQuantity(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: qty <n> <count>")
		return
	}
	item, ok := c.menuItem(args[0])
	if !ok {
		fmt.Fprintln(c.out, "No such menu item. Run 'menu' first.")
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(c.out, "Quantity must be a number.")
		return
	}
	c.cart.SetQuantity(item.ID, quantity)
}

// showCart renders the cart lines and derived totals.
func (c *Controller) showCart() {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(c.out, "Your cart is empty.")
		return
	}

	for _, line := range lines {
		fmt.Fprintf(c.out, "%-28s x%-3d %s\n",
			line.Name, line.Quantity, ui.FormatCurrency(line.Total(), c.currency))
	}

	totals := c.cart.Totals()
	fmt.Fprintf(c.out, "%-20s %s\n", "Subtotal:", ui.FormatCurrency(totals.Subtotal, c.currency))
	fmt.Fprintf(c.out, "%-20s %s\n", "Service fee:", ui.FormatCurrency(totals.ServiceFee, c.currency))
	fmt.Fprintf(c.out, "%-20s %s\n", "Total:", ui.FormatCurrency(totals.Total, c.currency))
}

// checkout confirms and places the order. On success the cart is already
// cleared by the store and the user is redirected to the order's detail page.
func (c *Controller) checkout(ctx context.Context) {
	if c.cart.Len() == 0 {
		c.toaster.Notify("Your cart is empty", ui.SeverityWarning)
		return
	}

	totals := c.cart.Totals()
	ok, err := c.prompter.Confirm("Place order",
		"Pay "+ui.FormatCurrency(totals.Total, c.currency)+" from your wallet?")
	if err != nil || !ok {
		return
	}

	instructions, _ := c.prompter.ReadLine("Special instructions (optional): ")

	orderID, err := c.cart.PlaceOrder(ctx, c.api, instructions)
	if err != nil {
		if err == cart.ErrEmptyCart {
			c.toaster.Notify("Your cart is empty", ui.SeverityWarning)
			return
		}
		c.showError(err)
		return
	}

	c.toaster.Notify("Order placed! Awaiting validation.", ui.SeveritySuccess)
	c.navigate(c.routes.OrderDetailFor(orderID))
}
