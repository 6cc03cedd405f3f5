package ui

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/yourorg/canteen-companion/internal/model"
)

const receiptWidth = 40

// RenderReceipt turns an order into a print-ready text document. Pure
// transformation: no network, no state.
func RenderReceipt(order *model.Order, currency string) string {
	var b strings.Builder

	line := strings.Repeat("=", receiptWidth)
	thin := strings.Repeat("-", receiptWidth)

	b.WriteString(line + "\n")
	b.WriteString(center("CANTEEN RECEIPT") + "\n")
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("Order:  %s\n", order.OrderNumber))
	b.WriteString(fmt.Sprintf("Status: %s\n", order.Status))
	if !order.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Date:   %s\n", FormatDate(order.CreatedAt)))
	}
	b.WriteString(thin + "\n")

	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("%-24s x%-3d %s\n",
			truncate(item.Name, 24),
			item.Quantity,
			FormatCurrency(item.Total, "")))
	}

	b.WriteString(thin + "\n")
	b.WriteString(fmt.Sprintf("%-20s %s\n", "Subtotal:", FormatCurrency(order.Subtotal, currency)))
	if !order.ServiceFee.IsZero() {
		b.WriteString(fmt.Sprintf("%-20s %s\n", "Service fee:", FormatCurrency(order.ServiceFee, currency)))
	}
	b.WriteString(fmt.Sprintf("%-20s %s\n", "Total:", FormatCurrency(order.Total, currency)))

	if order.SpecialInstructions != "" {
		b.WriteString(thin + "\n")
		b.WriteString("Note: " + order.SpecialInstructions + "\n")
	}

	b.WriteString(line + "\n")
	b.WriteString(center("Thank you!") + "\n")

	return b.String()
}

// Print hands a rendered document to the platform print spooler. Best-effort:
// when no spooler is available the caller falls back to on-screen display.
func Print(document string) error {
	cmd := exec.Command("lp")
	cmd.Stdin = strings.NewReader(document)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to spool receipt: %w", err)
	}
	return nil
}

func center(s string) string {
	if len(s) >= receiptWidth {
		return s
	}
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
