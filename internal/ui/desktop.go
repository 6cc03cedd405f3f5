package ui

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/model"
)

// DesktopNotifier delivers notifications to the native OS notification
// surface. Delivery is best-effort: if the desktop does not support it, or
// the user disabled it, records are silently skipped.
type DesktopNotifier struct {
	enabled bool
	logger  *zap.Logger
}

// NewDesktopNotifier creates a DesktopNotifier. Pass enabled=false when the
// user has not granted desktop notifications.
func NewDesktopNotifier(enabled bool, logger *zap.Logger) *DesktopNotifier {
	return &DesktopNotifier{enabled: enabled, logger: logger}
}

// Deliver shows one native notification.
func (d *DesktopNotifier) Deliver(n model.Notification) {
	if !d.enabled {
		return
	}
	if err := beeep.Notify(n.Title, n.Message, ""); err != nil {
		d.logger.Warn("desktop notification failed",
			zap.String("id", n.ID),
			zap.Error(err))
	}
}
