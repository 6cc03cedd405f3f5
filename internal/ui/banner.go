package ui

import (
	"github.com/yourorg/canteen-companion/internal/model"
)

// BannerSink feeds incoming notifications into the toast stack, the in-page
// transient banner of the web client.
type BannerSink struct {
	toaster *Toaster
}

// NewBannerSink creates a BannerSink on top of a Toaster.
func NewBannerSink(toaster *Toaster) *BannerSink {
	return &BannerSink{toaster: toaster}
}

// Deliver shows one notification as a banner.
func (b *BannerSink) Deliver(n model.Notification) {
	b.toaster.Notify(n.Title+": "+n.Message, severityFor(n.Type))
}

// severityFor maps notification types onto banner severities.
func severityFor(notificationType string) Severity {
	switch notificationType {
	case model.NotificationPaymentSuccess, model.NotificationOrderReady, model.NotificationWalletTopup:
		return SeveritySuccess
	case model.NotificationPaymentFailed, model.NotificationOrderCancelled:
		return SeverityError
	case model.NotificationLowStock, model.NotificationMaintenance:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// UnreadBadge tracks the unread-count indicator shown in the header.
type UnreadBadge struct {
	onUpdate func(count int)
}

// NewUnreadBadge creates a badge invoking onUpdate on every change.
func NewUnreadBadge(onUpdate func(count int)) *UnreadBadge {
	return &UnreadBadge{onUpdate: onUpdate}
}

// SetUnread updates the indicator with the server-reported count.
func (u *UnreadBadge) SetUnread(count int) {
	if u.onUpdate != nil {
		u.onUpdate(count)
	}
}
