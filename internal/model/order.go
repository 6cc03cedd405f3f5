package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses used by the canteen backend.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a single line of a placed order.
type OrderItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Order represents an order as returned by the receipt and history endpoints.
type Order struct {
	ID                  string          `json:"id"`
	OrderNumber         string          `json:"order_number"`
	Status              string          `json:"status"`
	Items               []OrderItem     `json:"items"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	ServiceFee          decimal.Decimal `json:"service_fee"`
	Total               decimal.Decimal `json:"total"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// OrderHistory is one page of the signed-in user's past orders.
type OrderHistory struct {
	Orders  []Order `json:"orders"`
	HasMore bool    `json:"has_more"`
}

// PlaceOrderResult is the backend's answer to a placed order.
type PlaceOrderResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message,omitempty"`
}
