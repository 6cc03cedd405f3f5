package client

import (
	"context"

	"github.com/yourorg/canteen-companion/internal/model"
)

// DailyMenu fetches today's published menu.
func (c *Client) DailyMenu(ctx context.Context) (*model.DailyMenu, error) {
	var envelope struct {
		Menu model.DailyMenu `json:"menu"`
	}
	if err := c.get(ctx, "/menu/daily-menu/api/", &envelope); err != nil {
		return nil, err
	}
	return &envelope.Menu, nil
}

// Routes fetches the navigation table published by the backend. Callers fall
// back to model.DefaultRoutes when this fails; navigation must keep working
// offline.
func (c *Client) Routes(ctx context.Context) (model.Routes, error) {
	var routes model.Routes
	if err := c.get(ctx, "/routes/", &routes); err != nil {
		return model.Routes{}, err
	}
	return routes, nil
}
