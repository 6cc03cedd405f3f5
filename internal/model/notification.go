package model

import (
	"time"
)

// Notification types pushed by the canteen backend.
const (
	NotificationOrderStatus    = "order_status"
	NotificationOrderReady     = "order_ready"
	NotificationOrderCancelled = "order_cancelled"
	NotificationPaymentSuccess = "payment_success"
	NotificationPaymentFailed  = "payment_failed"
	NotificationMenuUpdate     = "menu_update"
	NotificationSystem         = "system_announcement"
	NotificationLowStock       = "low_stock"
	NotificationWalletTopup    = "wallet_topup"
	NotificationPromotion      = "promotion"
	NotificationMaintenance    = "maintenance"
)

// Notification represents a single notification for the signed-in user
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Priority   string    `json:"priority,omitempty"`
	IsRead     bool      `json:"is_read"`
	ActionURL  string    `json:"action_url,omitempty"`
	ActionText string    `json:"action_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationBatch is the payload of an incremental notification fetch.
// Count is the server-reported unread count and is authoritative over any
// client-side tally.
type NotificationBatch struct {
	Notifications []Notification `json:"notifications"`
	Count         int            `json:"count"`
}

// NotificationPage is one page of the full notification list.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	HasMore       bool           `json:"has_more"`
	NextOffset    int            `json:"next_offset"`
}

// MarkReadResult reports how many notifications a mark-read call touched.
type MarkReadResult struct {
	Success     bool `json:"success"`
	MarkedCount int  `json:"marked_count"`
}
