package model

import (
	"strings"
)

// Routes is the navigation table the backend publishes at load time. All
// redirect targets are resolved through it rather than assembled inline, so
// the backend stays free to move its pages around.
type Routes struct {
	OrderDetail   string `json:"order_detail"`
	OrderHistory  string `json:"order_history"`
	Notifications string `json:"notifications"`
	Wallet        string `json:"wallet"`
	Menu          string `json:"menu"`
}

// DefaultRoutes mirrors the backend's current URL layout and is used when the
// route table cannot be fetched.
func DefaultRoutes() Routes {
	return Routes{
		OrderDetail:   "/orders/{id}/",
		OrderHistory:  "/orders/history/",
		Notifications: "/notifications/",
		Wallet:        "/payments/wallet/",
		Menu:          "/menu/",
	}
}

// OrderDetailFor resolves the detail page for a placed order.
func (r Routes) OrderDetailFor(orderID string) string {
	return strings.ReplaceAll(r.OrderDetail, "{id}", orderID)
}
