package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yourorg/canteen-companion/internal/model"
)

// placeOrderRequest is the wire form of a cart submission.
type placeOrderRequest struct {
	Items               []model.CartLine `json:"items"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
}

// OrderReceipt fetches full order detail for receipt rendering.
func (c *Client) OrderReceipt(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/orders/%s/receipt/", orderID)
	if err := c.get(ctx, path, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PlaceOrder submits the cart snapshot. A 200 whose envelope reports failure
// is surfaced as a *ServerError so callers treat it like any other rejection.
func (c *Client) PlaceOrder(ctx context.Context, lines []model.CartLine, instructions string) (*model.PlaceOrderResult, error) {
	var result model.PlaceOrderResult
	body := placeOrderRequest{Items: lines, SpecialInstructions: instructions}
	if err := c.post(ctx, "/orders/place/", body, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &ServerError{Status: http.StatusOK, Message: result.Message}
	}
	return &result, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/orders/%s/cancel/", orderID)
	if err := c.post(ctx, path, nil, &result); err != nil {
		return err
	}
	if !result.Success {
		return &ServerError{Status: http.StatusOK, Message: result.Message}
	}
	return nil
}

// Reorder duplicates a past order into a fresh one.
func (c *Client) Reorder(ctx context.Context, orderID string) (*model.PlaceOrderResult, error) {
	var result model.PlaceOrderResult
	path := fmt.Sprintf("/orders/%s/reorder/", orderID)
	if err := c.post(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &ServerError{Status: http.StatusOK, Message: result.Message}
	}
	return &result, nil
}

// OrderHistory fetches the most recent orders, newest first.
func (c *Client) OrderHistory(ctx context.Context, limit int) (*model.OrderHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	var history model.OrderHistory
	path := fmt.Sprintf("/orders/history/?limit=%d", limit)
	if err := c.get(ctx, path, &history); err != nil {
		return nil, err
	}
	return &history, nil
}
