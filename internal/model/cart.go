package model

import (
	"github.com/shopspring/decimal"
)

// CartLine is one distinct product entry in the cart, keyed by item ID and
// carrying an aggregated quantity.
type CartLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Total returns the line total (unit price times quantity).
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotals holds the derived cart figures. They are advisory only; the
// backend recomputes them when the order is placed.
type CartTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	Total      decimal.Decimal `json:"total"`
}
