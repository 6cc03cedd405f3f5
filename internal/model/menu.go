package model

import (
	"github.com/shopspring/decimal"
)

// MenuItem is a dish on today's menu.
type MenuItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	IsAvailable     bool            `json:"is_available"`
	IsFeaturedToday bool            `json:"is_featured_today,omitempty"`
	PreparationTime int             `json:"preparation_time,omitempty"`
}

// MenuCategory groups menu items for display.
type MenuCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// DailyMenu is the menu published for a given day.
type DailyMenu struct {
	Date           string         `json:"date"`
	SpecialMessage string         `json:"special_message,omitempty"`
	Categories     []MenuCategory `json:"categories"`
}
