package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yourorg/canteen-companion/internal/client"
	"github.com/yourorg/canteen-companion/internal/model"
	"github.com/yourorg/canteen-companion/internal/ui"
)

// topup walks the wallet top-up form. Bad input is rejected locally with a
// field-level message; nothing is sent until the form validates.
func (c *Controller) topup(ctx context.Context) {
	amountStr, err := c.prompter.ReadLine("Amount: ")
	if err != nil {
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Fprintln(c.out, "amount: must be a number")
		return
	}

	method, err := c.prompter.ReadLine("Payment method (mobile_money/orange_money/cash): ")
	if err != nil {
		return
	}
	phone, err := c.prompter.ReadLine("Phone number: ")
	if err != nil {
		return
	}

	result, err := c.api.Topup(ctx, model.TopupRequest{
		Amount:        amount,
		PaymentMethod: method,
		PhoneNumber:   phone,
	})
	if err != nil {
		var vErr *client.ValidationError
		if errors.As(err, &vErr) {
			fmt.Fprintf(c.out, "%s: %s\n", vErr.Field, vErr.Message)
			return
		}
		c.showError(err)
		return
	}

	c.toaster.Notify(
		"Wallet topped up. New balance: "+ui.FormatCurrency(result.NewBalance, c.currency),
		ui.SeveritySuccess)
	c.navigate(c.routes.Wallet)
}
