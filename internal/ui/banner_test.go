package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/canteen-companion/internal/model"
)

func TestBannerSinkDelivers(t *testing.T) {
	toaster := NewToaster(&bytes.Buffer{}, time.Minute)
	defer toaster.Close()
	sink := NewBannerSink(toaster)

	sink.Deliver(model.Notification{
		Type:    model.NotificationOrderReady,
		Title:   "Order ready",
		Message: "Come pick it up",
	})

	active := toaster.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Order ready: Come pick it up", active[0].Message)
	assert.Equal(t, SeveritySuccess, active[0].Severity)
}

func TestSeverityMapping(t *testing.T) {
	assert.Equal(t, SeveritySuccess, severityFor(model.NotificationPaymentSuccess))
	assert.Equal(t, SeverityError, severityFor(model.NotificationPaymentFailed))
	assert.Equal(t, SeverityError, severityFor(model.NotificationOrderCancelled))
	assert.Equal(t, SeverityWarning, severityFor(model.NotificationMaintenance))
	assert.Equal(t, SeverityInfo, severityFor(model.NotificationSystem))
	assert.Equal(t, SeverityInfo, severityFor("unknown_type"))
}

func TestUnreadBadge(t *testing.T) {
	var got []int
	badge := NewUnreadBadge(func(count int) { got = append(got, count) })

	badge.SetUnread(3)
	badge.SetUnread(0)

	assert.Equal(t, []int{3, 0}, got)
}
