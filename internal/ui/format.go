package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as whole currency units with thousands
// separators, e.g. "12,500 XAF".
func FormatCurrency(amount decimal.Decimal, currency string) string {
	s := amount.Round(0).String()

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}

// FormatDate renders a timestamp the way the canteen pages show it,
// e.g. "Jan 02, 2006 at 3:04 PM".
func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 02, 2006 at 3:04 PM")
}

// FormatRelative renders how long ago a timestamp was, for notification rows.
func FormatRelative(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return strconv.Itoa(m) + " minutes ago"
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return strconv.Itoa(h) + " hours ago"
	default:
		return FormatDate(t)
	}
}
