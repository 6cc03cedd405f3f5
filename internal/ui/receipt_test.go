package ui

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yourorg/canteen-companion/internal/model"
)

func sampleOrder() *model.Order {
	return &model.Order{
		ID:          "ord-9",
		OrderNumber: "ORD-0009",
		Status:      "completed",
		Items: []model.OrderItem{
			{Name: "Rice", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), Total: decimal.NewFromInt(3000)},
			{Name: "Juice", Quantity: 1, UnitPrice: decimal.NewFromInt(500), Total: decimal.NewFromInt(500)},
		},
		Subtotal:   decimal.NewFromInt(3500),
		ServiceFee: decimal.NewFromInt(175),
		Total:      decimal.NewFromInt(3675),
		CreatedAt:  time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestRenderReceipt(t *testing.T) {
	doc := RenderReceipt(sampleOrder(), "XAF")

	assert.Contains(t, doc, "ORD-0009")
	assert.Contains(t, doc, "completed")
	assert.Contains(t, doc, "Rice")
	assert.Contains(t, doc, "x2")
	assert.Contains(t, doc, "3,000")
	assert.Contains(t, doc, "Subtotal:")
	assert.Contains(t, doc, "3,500 XAF")
	assert.Contains(t, doc, "Service fee:")
	assert.Contains(t, doc, "175 XAF")
	assert.Contains(t, doc, "3,675 XAF")
}

func TestRenderReceiptIsPure(t *testing.T) {
	order := sampleOrder()

	first := RenderReceipt(order, "XAF")
	second := RenderReceipt(order, "XAF")

	assert.Equal(t, first, second)
}

func TestRenderReceiptSpecialInstructions(t *testing.T) {
	order := sampleOrder()
	order.SpecialInstructions = "no onions"

	doc := RenderReceipt(order, "XAF")

	assert.Contains(t, doc, "Note: no onions")
}

func TestRenderReceiptOmitsZeroServiceFee(t *testing.T) {
	order := sampleOrder()
	order.ServiceFee = decimal.Zero

	doc := RenderReceipt(order, "XAF")

	assert.NotContains(t, doc, "Service fee:")
}
