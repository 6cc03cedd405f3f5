package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/model"
)

// Errors returned by the cart store.
var (
	ErrInvalidLine = errors.New("unit price and quantity must be positive")
	ErrEmptyCart   = errors.New("cart is empty")
)

// OrderPlacer submits a cart snapshot to the backend. Satisfied by
// *client.Client.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, lines []model.CartLine, instructions string) (*model.PlaceOrderResult, error)
}

// Store owns the shopping cart: an in-memory list of lines mirrored to
// persistent storage, with totals derived on every read. At most one line
// exists per item ID; quantities are always at least one.
type Store struct {
	mu       sync.Mutex
	lines    []model.CartLine
	storage  Storage
	feeRate  decimal.Decimal
	logger   *zap.Logger
	onChange func()
}

// NewStore creates a Store rehydrated from storage. A snapshot that cannot be
// read is logged and treated as an empty cart rather than failing startup.
func NewStore(storage Storage, feeRate decimal.Decimal, logger *zap.Logger) *Store {
	s := &Store{
		storage: storage,
		feeRate: feeRate,
		logger:  logger,
	}

	lines, err := storage.Load()
	if err != nil {
		logger.Warn("failed to rehydrate cart, starting empty", zap.Error(err))
		return s
	}
	s.lines = lines
	return s
}

// OnChange registers a hook invoked after every successful mutation, used to
// refresh cart displays.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Add puts quantity units of an item in the cart. If a line for the item
// already exists its quantity is incremented, never duplicated. A non-positive
// price or quantity is rejected without touching the cart.
func (s *Store) Add(itemID, name string, unitPrice decimal.Decimal, quantity int) error {
	if unitPrice.LessThanOrEqual(decimal.Zero) || quantity <= 0 {
		return ErrInvalidLine
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, model.CartLine{
			ItemID:    itemID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
		})
	}

	s.persistLocked()
	s.notifyLocked()
	return nil
}

// Remove deletes the line for itemID. Removing an absent item is a no-op.
func (s *Store) Remove(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked()
			s.notifyLocked()
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line entirely; a line is never kept at zero. Setting a
// quantity on an absent item is a no-op.
func (s *Store) SetQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.Remove(itemID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity = quantity
			s.persistLocked()
			s.notifyLocked()
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.lines = nil
	s.persistLocked()
	s.notifyLocked()
}

// Lines returns a copy of the current cart lines.
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of distinct lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Totals derives the current cart figures: subtotal, the percentage service
// fee, and their sum, each rounded to the whole currency unit for display.
// The backend remains authoritative for billing.
func (s *Store) Totals() model.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, line := range s.lines {
		subtotal = subtotal.Add(line.Total())
	}
	fee := subtotal.Mul(s.feeRate)

	return model.CartTotals{
		Subtotal:   subtotal.Round(0),
		ServiceFee: fee.Round(0),
		Total:      subtotal.Add(fee).Round(0),
	}
}

// PlaceOrder submits the current snapshot. On success the cart is cleared and
// the new order's ID returned for navigation; on any failure the cart and its
// persisted snapshot are left untouched so the user can retry.
func (s *Store) PlaceOrder(ctx context.Context, api OrderPlacer, instructions string) (string, error) {
	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return "", ErrEmptyCart
	}
	snapshot := make([]model.CartLine, len(s.lines))
	copy(snapshot, s.lines)
	s.mu.Unlock()

	result, err := api.PlaceOrder(ctx, snapshot, instructions)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	return result.OrderID, nil
}

// persistLocked mirrors the current lines to storage. Failures are logged and
// swallowed; losing a write costs at most one snapshot.
func (s *Store) persistLocked() {
	lines := make([]model.CartLine, len(s.lines))
	copy(lines, s.lines)
	if err := s.storage.Save(lines); err != nil {
		s.logger.Error("failed to persist cart snapshot", zap.Error(err))
	}
}

func (s *Store) notifyLocked() {
	if s.onChange != nil {
		s.onChange()
	}
}
