package controller

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yourorg/canteen-companion/internal/model"
	"github.com/yourorg/canteen-companion/internal/ui"
)

// showNotifications renders the notification list. With more=true it
// continues from the last offset instead of starting over.
func (c *Controller) showNotifications(ctx context.Context, more bool) {
	c.mu.Lock()
	offset := 0
	if more {
		offset = c.nextOffset
	}
	c.mu.Unlock()

	page, err := c.api.LoadMoreNotifications(ctx, offset)
	if err != nil {
		c.showError(err)
		return
	}

	if len(page.Notifications) == 0 {
		fmt.Fprintln(c.out, "No notifications.")
		return
	}

	now := time.Now()
	for i, n := range page.Notifications {
		marker := "•"
		if n.IsRead {
			marker = " "
		}
		fmt.Fprintf(c.out, "%3d.%s [%s] %s — %s (%s)\n",
			offset+i+1, marker, n.Type, n.Title, n.Message,
			ui.FormatRelative(n.CreatedAt, now))
	}
	if page.HasMore {
		fmt.Fprintln(c.out, "('more' to load older ones)")
	}

	c.mu.Lock()
	if more {
		c.notifications = append(c.notifications, page.Notifications...)
	} else {
		c.notifications = page.Notifications
	}
	c.nextOffset = page.NextOffset
	c.mu.Unlock()
}

// notification resolves a 1-based row number from the rendered list.
func (c *Controller) notification(arg string) (model.Notification, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.Notification{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 || n > len(c.notifications) {
		return model.Notification{}, false
	}
	return c.notifications[n-1], true
}

func (c *Controller) markRead(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: read <n>")
		return
	}
	ref, ok := c.notification(args[0])
	if !ok {
		fmt.Fprintln(c.out, "No such notification. Run 'notifications' first.")
		return
	}

	if err := c.api.MarkRead(ctx, ref.ID); err != nil {
		c.showError(err)
		return
	}
	c.toaster.Notify("Marked as read", ui.SeverityInfo)
}

func (c *Controller) markAllRead(ctx context.Context) {
	result, err := c.api.MarkAllRead(ctx)
	if err != nil {
		c.showError(err)
		return
	}
	c.toaster.Notify(fmt.Sprintf("Marked %d notifications as read", result.MarkedCount), ui.SeverityInfo)
}
