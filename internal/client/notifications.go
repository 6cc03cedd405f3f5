package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yourorg/canteen-companion/internal/model"
)

// NewNotifications fetches notifications created strictly after since. The
// call is deduplicated through singleflight so a manual refresh racing a poll
// tick for the same watermark shares one request.
func (c *Client) NewNotifications(ctx context.Context, since time.Time) (*model.NotificationBatch, error) {
	key := "new:" + since.UTC().Format(time.RFC3339Nano)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		var batch model.NotificationBatch
		path := "/notifications/new/?since=" + url.QueryEscape(since.UTC().Format(time.RFC3339))
		if err := c.get(ctx, path, &batch); err != nil {
			return nil, err
		}
		return &batch, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.NotificationBatch), nil
}

// LoadMoreNotifications fetches one page of the full notification list.
func (c *Client) LoadMoreNotifications(ctx context.Context, offset int) (*model.NotificationPage, error) {
	if offset < 0 {
		offset = 0
	}
	var page model.NotificationPage
	path := fmt.Sprintf("/notifications/load-more/?offset=%d", offset)
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, notificationID string) error {
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/notifications/%s/read/", url.PathEscape(notificationID))
	if err := c.post(ctx, path, nil, &result); err != nil {
		return err
	}
	if !result.Success {
		return &ServerError{Status: http.StatusOK, Message: result.Message}
	}
	return nil
}

// MarkAllRead marks every notification for the user as read.
func (c *Client) MarkAllRead(ctx context.Context) (*model.MarkReadResult, error) {
	var result model.MarkReadResult
	if err := c.post(ctx, "/notifications/mark-all-read/", nil, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &ServerError{Status: http.StatusOK}
	}
	return &result, nil
}
