package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/cart"
	"github.com/yourorg/canteen-companion/internal/client"
	"github.com/yourorg/canteen-companion/internal/model"
	"github.com/yourorg/canteen-companion/internal/poller"
	"github.com/yourorg/canteen-companion/internal/ui"
)

// API is the slice of the backend client the controllers use.
type API interface {
	cart.OrderPlacer
	DailyMenu(ctx context.Context) (*model.DailyMenu, error)
	OrderReceipt(ctx context.Context, orderID string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
	Reorder(ctx context.Context, orderID string) (*model.PlaceOrderResult, error)
	OrderHistory(ctx context.Context, limit int) (*model.OrderHistory, error)
	LoadMoreNotifications(ctx context.Context, offset int) (*model.NotificationPage, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context) (*model.MarkReadResult, error)
	Topup(ctx context.Context, req model.TopupRequest) (*model.TopupResult, error)
}

// Controller binds terminal commands to the API client, the cart store, the
// poller and the presentation layer. One instance drives the whole session.
type Controller struct {
	api      API
	cart     *cart.Store
	poller   *poller.Poller
	toaster  *ui.Toaster
	prompter *ui.Prompter
	routes   model.Routes
	currency string
	out      io.Writer
	logger   *zap.Logger

	idleAfter time.Duration

	mu            sync.Mutex
	lastActivity  time.Time
	menuItems     []model.MenuItem
	orders        []model.Order
	notifications []model.Notification
	nextOffset    int
}

// Options carries everything a Controller needs, constructed once at startup.
type Options struct {
	API       API
	Cart      *cart.Store
	Poller    *poller.Poller
	Toaster   *ui.Toaster
	Prompter  *ui.Prompter
	Routes    model.Routes
	Currency  string
	Out       io.Writer
	IdleAfter time.Duration
	Logger    *zap.Logger
}

// New creates a Controller.
func New(opts Options) *Controller {
	return &Controller{
		api:          opts.API,
		cart:         opts.Cart,
		poller:       opts.Poller,
		toaster:      opts.Toaster,
		prompter:     opts.Prompter,
		routes:       opts.Routes,
		currency:     opts.Currency,
		out:          opts.Out,
		idleAfter:    opts.IdleAfter,
		logger:       opts.Logger,
		lastActivity: time.Now(),
	}
}

// Run starts the poller and drives the command loop until the context is
// cancelled or the user quits.
func (c *Controller) Run(ctx context.Context) error {
	c.poller.Start()
	defer c.poller.Stop()

	if c.idleAfter > 0 {
		go c.watchIdle(ctx)
	}

	c.showDashboard(ctx)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line, err := c.prompter.ReadLine("canteen> ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}
		c.touch()

		if quit := c.dispatch(ctx, line); quit {
			return nil
		}
	}
}

// dispatch runs one command. It returns true when the session should end.
func (c *Controller) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		c.showHelp()
	case "dashboard":
		c.showDashboard(ctx)
	case "menu":
		c.showMenu(ctx)
	case "add":
		c.addToCart(args)
	case "remove":
		c.removeFromCart(args)
	case "qty":
		c.setQuantity(args)
	case "cart":
		c.showCart()
	case "checkout":
		c.checkout(ctx)
	case "orders":
		c.showOrders(ctx)
	case "receipt":
		c.showReceipt(ctx, args)
	case "cancel":
		c.cancelOrder(ctx, args)
	case "reorder":
		c.reorder(ctx, args)
	case "notifications":
		c.showNotifications(ctx, false)
	case "more":
		c.showNotifications(ctx, true)
	case "read":
		c.markRead(ctx, args)
	case "readall":
		c.markAllRead(ctx)
	case "refresh":
		c.poller.Poll(ctx)
	case "topup":
		c.topup(ctx)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command %q. Type 'help'.\n", cmd)
	}
	return false
}

func (c *Controller) showHelp() {
	fmt.Fprintln(c.out, `Commands:
  dashboard              show recent orders and cart summary
  menu                   show today's menu
  add <n> [qty]          add menu item n to the cart
  remove <n>             remove menu item n from the cart
  qty <n> <count>        change quantity of menu item n
  cart                   show the cart
  checkout               place the order
  orders                 show order history
  receipt <n>            print receipt for order n
  cancel <n>             cancel order n
  reorder <n>            repeat order n
  notifications          list notifications
  more                   load more notifications
  read <n>               mark notification n read
  readall                mark everything read
  refresh                check for new notifications now
  topup                  top up the wallet
  quit                   exit`)
}

// touch records user activity and wakes the poller if idling suspended it.
// This is the visibility coupling: an idle session is a hidden page.
func (c *Controller) touch() {
	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()

	if !c.poller.Running() {
		c.poller.Start()
	}
}

// watchIdle suspends the poller after a stretch with no user activity and
// leaves restarting to the next touch.
func (c *Controller) watchIdle(ctx context.Context) {
	ticker := time.NewTicker(c.idleAfter / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			idle := time.Since(c.lastActivity)
			c.mu.Unlock()

			if idle >= c.idleAfter && c.poller.Running() {
				c.logger.Debug("session idle, suspending poller",
					zap.Duration("idle", idle))
				c.poller.Stop()
			}
		case <-ctx.Done():
			return
		}
	}
}

// navigate announces where the web client would redirect, resolved through
// the route table.
func (c *Controller) navigate(target string) {
	fmt.Fprintf(c.out, "→ %s\n", target)
}

func (c *Controller) showError(err error) {
	c.logger.Error("operation failed", zap.Error(err))
	c.toaster.Notify(client.UserMessage(err), ui.SeverityError)
}
