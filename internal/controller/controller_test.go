package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/cart"
	"github.com/yourorg/canteen-companion/internal/model"
	"github.com/yourorg/canteen-companion/internal/poller"
	"github.com/yourorg/canteen-companion/internal/ui"
)

// fakeAPI scripts the backend for controller tests.
type fakeAPI struct {
	menu        *model.DailyMenu
	history     *model.OrderHistory
	receipt     *model.Order
	page        *model.NotificationPage
	placeResult *model.PlaceOrderResult
	placeErr    error
	placedLines []model.CartLine
	cancelled   []string
	reordered   []string
	markedRead  []string
	markedAll   bool
	topupReq    *model.TopupRequest
}

func (f *fakeAPI) PlaceOrder(_ context.Context, lines []model.CartLine, _ string) (*model.PlaceOrderResult, error) {
	f.placedLines = lines
	if f.placeErr != nil {
		return nil, f.placeErr
	}
	return f.placeResult, nil
}

func (f *fakeAPI) DailyMenu(context.Context) (*model.DailyMenu, error) {
	if f.menu == nil {
		return nil, errors.New("no menu")
	}
	return f.menu, nil
}

func (f *fakeAPI) OrderReceipt(context.Context, string) (*model.Order, error) {
	if f.receipt == nil {
		return nil, errors.New("not found")
	}
	return f.receipt, nil
}

func (f *fakeAPI) CancelOrder(_ context.Context, orderID string) error {
	f.cancelled = append(f.cancelled, orderID)
	return nil
}

func (f *fakeAPI) Reorder(_ context.Context, orderID string) (*model.PlaceOrderResult, error) {
	f.reordered = append(f.reordered, orderID)
	return &model.PlaceOrderResult{Success: true, OrderID: "ord-new"}, nil
}

func (f *fakeAPI) OrderHistory(context.Context, int) (*model.OrderHistory, error) {
	if f.history == nil {
		return &model.OrderHistory{}, nil
	}
	return f.history, nil
}

func (f *fakeAPI) LoadMoreNotifications(context.Context, int) (*model.NotificationPage, error) {
	if f.page == nil {
		return &model.NotificationPage{}, nil
	}
	return f.page, nil
}

func (f *fakeAPI) MarkRead(_ context.Context, id string) error {
	f.markedRead = append(f.markedRead, id)
	return nil
}

func (f *fakeAPI) MarkAllRead(context.Context) (*model.MarkReadResult, error) {
	f.markedAll = true
	return &model.MarkReadResult{Success: true, MarkedCount: 2}, nil
}

func (f *fakeAPI) Topup(_ context.Context, req model.TopupRequest) (*model.TopupResult, error) {
	f.topupReq = &req
	return &model.TopupResult{Success: true, NewBalance: decimal.NewFromInt(5000)}, nil
}

// nullFetcher keeps the poller quiet during controller tests.
type nullFetcher struct{}

func (nullFetcher) NewNotifications(context.Context, time.Time) (*model.NotificationBatch, error) {
	return &model.NotificationBatch{}, nil
}

type testHarness struct {
	ctrl *Controller
	api  *fakeAPI
	cart *cart.Store
	out  *bytes.Buffer
}

func newHarness(t *testing.T, api *fakeAPI, input string) *testHarness {
	t.Helper()
	out := &bytes.Buffer{}
	store := cart.NewStore(&nullStorage{}, decimal.NewFromFloat(0.05), zap.NewNop())
	toaster := ui.NewToaster(out, time.Minute)
	t.Cleanup(toaster.Close)

	ctrl := New(Options{
		API:      api,
		Cart:     store,
		Poller:   poller.New(nullFetcher{}, time.Minute, time.Now(), zap.NewNop()),
		Toaster:  toaster,
		Prompter: ui.NewPrompter(strings.NewReader(input), out),
		Routes:   model.DefaultRoutes(),
		Currency: "XAF",
		Out:      out,
		Logger:   zap.NewNop(),
	})
	return &testHarness{ctrl: ctrl, api: api, cart: store, out: out}
}

type nullStorage struct{}

func (nullStorage) Load() ([]model.CartLine, error) { return nil, nil }
func (nullStorage) Save([]model.CartLine) error     { return nil }

func sampleMenu() *model.DailyMenu {
	return &model.DailyMenu{
		Date: "2026-03-01",
		Categories: []model.MenuCategory{
			{
				Name: "Mains",
				Items: []model.MenuItem{
					{ID: "rice", Name: "Rice", Price: decimal.NewFromInt(1500), IsAvailable: true},
					{ID: "soup", Name: "Soup", Price: decimal.NewFromInt(2000), IsAvailable: false},
				},
			},
		},
	}
}

func TestMenuAndAddToCart(t *testing.T) {
	h := newHarness(t, &fakeAPI{menu: sampleMenu()}, "")
	ctx := context.Background()

	h.ctrl.showMenu(ctx)
	h.ctrl.addToCart([]string{"1", "2"})

	lines := h.cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "rice", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Contains(t, h.out.String(), "Rice")
}

func TestAddSoldOutItem(t *testing.T) {
	h := newHarness(t, &fakeAPI{menu: sampleMenu()}, "")

	h.ctrl.showMenu(context.Background())
	h.ctrl.addToCart([]string{"2"})

	assert.Equal(t, 0, h.cart.Len())
	assert.Contains(t, h.out.String(), "sold out")
}

func TestAddWithoutMenu(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, "")

	h.ctrl.addToCart([]string{"1"})

	assert.Equal(t, 0, h.cart.Len())
	assert.Contains(t, h.out.String(), "Run 'menu' first")
}

func TestCheckoutPlacesOrderAndNavigates(t *testing.T) {
	api := &fakeAPI{menu: sampleMenu(), placeResult: &model.PlaceOrderResult{Success: true, OrderID: "ord-7"}}
	// "y" confirms, next line is empty special instructions.
	h := newHarness(t, api, "y\n\n")
	ctx := context.Background()

	h.ctrl.showMenu(ctx)
	h.ctrl.addToCart([]string{"1"})
	h.ctrl.checkout(ctx)

	require.Len(t, api.placedLines, 1)
	assert.Equal(t, 0, h.cart.Len(), "cart clears after successful order")
	assert.Contains(t, h.out.String(), "/orders/ord-7/")
}

func TestCheckoutDeclined(t *testing.T) {
	api := &fakeAPI{menu: sampleMenu()}
	h := newHarness(t, api, "n\n")
	ctx := context.Background()

	h.ctrl.showMenu(ctx)
	h.ctrl.addToCart([]string{"1"})
	h.ctrl.checkout(ctx)

	assert.Nil(t, api.placedLines, "declined confirm must not place an order")
	assert.Equal(t, 1, h.cart.Len())
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	api := &fakeAPI{menu: sampleMenu(), placeErr: errors.New("connection refused")}
	h := newHarness(t, api, "y\n\n")
	ctx := context.Background()

	h.ctrl.showMenu(ctx)
	h.ctrl.addToCart([]string{"1"})
	h.ctrl.checkout(ctx)

	assert.Equal(t, 1, h.cart.Len(), "failed order must not clear the cart")
}

func TestCancelOrderNeedsConfirmation(t *testing.T) {
	api := &fakeAPI{history: &model.OrderHistory{Orders: []model.Order{
		{ID: "o1", OrderNumber: "ORD-1", Status: "pending", Total: decimal.NewFromInt(1000)},
	}}}
	h := newHarness(t, api, "n\n")
	ctx := context.Background()

	h.ctrl.showOrders(ctx)
	h.ctrl.cancelOrder(ctx, []string{"1"})

	assert.Empty(t, api.cancelled)
}

func TestCancelOrderConfirmed(t *testing.T) {
	api := &fakeAPI{history: &model.OrderHistory{Orders: []model.Order{
		{ID: "o1", OrderNumber: "ORD-1", Status: "pending", Total: decimal.NewFromInt(1000)},
	}}}
	h := newHarness(t, api, "y\n")
	ctx := context.Background()

	h.ctrl.showOrders(ctx)
	h.ctrl.cancelOrder(ctx, []string{"1"})

	assert.Equal(t, []string{"o1"}, api.cancelled)
}

func TestReorderNavigatesToNewOrder(t *testing.T) {
	api := &fakeAPI{history: &model.OrderHistory{Orders: []model.Order{
		{ID: "o1", OrderNumber: "ORD-1", Status: "completed", Total: decimal.NewFromInt(1000)},
	}}}
	h := newHarness(t, api, "")
	ctx := context.Background()

	h.ctrl.showOrders(ctx)
	h.ctrl.reorder(ctx, []string{"1"})

	assert.Equal(t, []string{"o1"}, api.reordered)
	assert.Contains(t, h.out.String(), "/orders/ord-new/")
}

func TestNotificationsMarkRead(t *testing.T) {
	api := &fakeAPI{page: &model.NotificationPage{Notifications: []model.Notification{
		{ID: "n1", Type: model.NotificationOrderReady, Title: "Ready", Message: "now", CreatedAt: time.Now()},
	}}}
	h := newHarness(t, api, "")
	ctx := context.Background()

	h.ctrl.showNotifications(ctx, false)
	h.ctrl.markRead(ctx, []string{"1"})

	assert.Equal(t, []string{"n1"}, api.markedRead)
}

func TestTopupForm(t *testing.T) {
	api := &fakeAPI{}
	h := newHarness(t, api, "500\nmobile_money\n677000000\n")

	h.ctrl.topup(context.Background())

	require.NotNil(t, api.topupReq)
	assert.True(t, api.topupReq.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "mobile_money", api.topupReq.PaymentMethod)
	assert.Contains(t, h.out.String(), "5,000 XAF")
}

func TestTopupRejectsGarbageAmount(t *testing.T) {
	api := &fakeAPI{}
	h := newHarness(t, api, "lots\n")

	h.ctrl.topup(context.Background())

	assert.Nil(t, api.topupReq)
	assert.Contains(t, h.out.String(), "amount: must be a number")
}

func TestDispatchUnknownCommand(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, "")

	quit := h.ctrl.dispatch(context.Background(), "frobnicate")

	assert.False(t, quit)
	assert.Contains(t, h.out.String(), "Unknown command")
}

func TestDispatchQuit(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, "")
	assert.True(t, h.ctrl.dispatch(context.Background(), "quit"))
	assert.True(t, h.ctrl.dispatch(context.Background(), "exit"))
}
