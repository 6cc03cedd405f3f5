package model

import (
	"github.com/shopspring/decimal"
)

// Payment methods accepted for wallet top-ups.
const (
	PaymentMethodMobileMoney = "mobile_money"
	PaymentMethodOrangeMoney = "orange_money"
	PaymentMethodCash        = "cash"
)

// TopupRequest is the wallet top-up form payload.
type TopupRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=mobile_money orange_money cash"`
	PhoneNumber   string          `json:"phone_number" validate:"required,min=9,max=15"`
}

// TopupResult is the backend's answer to a wallet top-up.
type TopupResult struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}
